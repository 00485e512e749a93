package orient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orienthq/go-orient/pkg/request"
)

func TestNewLocation(t *testing.T) {
	t.Parallel()
	loc := NewLocation("my request", "https://example.com", MethodPost)
	assert.NotEmpty(t, loc.ID)
	assert.Equal(t, "my request", loc.Name)
	assert.Equal(t, "https://example.com", loc.URL)
	assert.Equal(t, MethodPost, loc.Method)
	assert.Equal(t, ContentTypeJSON, loc.ContentType)
	assert.Empty(t, loc.Params)
	assert.Empty(t, loc.FormParams)
	// one blank header row, ready for editing
	assert.Equal(t, request.Values{{}}, loc.Header)

	other := NewLocation("my request", "https://example.com", MethodPost)
	assert.NotEqual(t, loc.ID, other.ID)
}

func TestLocationClone(t *testing.T) {
	t.Parallel()
	loc := NewLocation("original", "https://example.com", MethodGet)
	loc.Params = request.Values{{Key: "x", Value: "1"}}

	clone := loc.Clone()
	assert.Equal(t, loc, clone)

	clone.Name = "changed"
	clone.Params[0].Value = "2"
	assert.Equal(t, "original", loc.Name)
	assert.Equal(t, "1", loc.Params[0].Value)
}
