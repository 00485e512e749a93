package orient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkspaceSearch(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()
	pets := ws.AddDirectory("Pets API")
	ws.AddDirectory("Users API")
	ws.Store.Insert(&Location{ID: "a", Name: "List pets", URL: "https://example.com/pets"})
	ws.Store.Insert(&Location{ID: "b", Name: "Create user", URL: "https://example.com/users"})

	matches := ws.Search("pets")
	assert.Len(t, matches.Directories, 1)
	assert.Equal(t, pets.ID, matches.Directories[0].ID)
	assert.Len(t, matches.Locations, 1)
	assert.Equal(t, "a", matches.Locations[0].ID)

	// case-insensitive
	matches = ws.Search("PETS")
	assert.Len(t, matches.Locations, 1)

	// regular expression
	matches = ws.Search("^(List|Create)")
	assert.Len(t, matches.Locations, 2)

	matches = ws.Search("no such thing")
	assert.Empty(t, matches.Directories)
	assert.Empty(t, matches.Locations)
}

func TestWorkspaceSearchInvalidPatternFallsBackToSubstring(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()
	ws.Store.Insert(&Location{ID: "a", Name: "weird [name]"})

	matches := ws.Search("[name")
	assert.Len(t, matches.Locations, 1)
	assert.Equal(t, "a", matches.Locations[0].ID)
}
