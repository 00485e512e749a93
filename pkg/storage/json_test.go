package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orienthq/go-orient/pkg/orient"
)

func testRepository(t *testing.T) *JSONRepository {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewJSONRepository(t.TempDir(), logger)
}

func TestSaveAndLoadWorkspace(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)

	ws := orient.NewWorkspace()
	dir := ws.AddDirectory("apis")
	loc, err := ws.AddLocation(dir.ID)
	assert.NoError(t, err)

	assert.NoError(t, repo.SaveWorkspace("main", ws))

	loaded, err := repo.LoadWorkspace("main")
	assert.NoError(t, err)
	assert.Equal(t, ws.Store.IDs(), loaded.Store.IDs())
	loadedLoc, found := loaded.Store.Get(loc.ID)
	assert.True(t, found)
	assert.Equal(t, loc, loadedLoc)
	loadedDir, found := loaded.Directory(dir.ID)
	assert.True(t, found)
	assert.Equal(t, dir, loadedDir)
}

func TestLoadWorkspaceNotFound(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)
	_, err := repo.LoadWorkspace("missing")
	assert.ErrorAs(t, err, &WorkspaceNotFoundError{})
	assert.Equal(t, `workspace "missing" not found`, err.Error())
}

func TestListWorkspaces(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)

	names, err := repo.ListWorkspaces()
	assert.NoError(t, err)
	assert.Empty(t, names)

	assert.NoError(t, repo.SaveWorkspace("beta", orient.NewWorkspace()))
	assert.NoError(t, repo.SaveWorkspace("alpha", orient.NewWorkspace()))

	names, err = repo.ListWorkspaces()
	assert.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestDeleteWorkspace(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)
	assert.NoError(t, repo.SaveWorkspace("main", orient.NewWorkspace()))
	assert.NoError(t, repo.DeleteWorkspace("main"))

	_, err := repo.LoadWorkspace("main")
	assert.ErrorAs(t, err, &WorkspaceNotFoundError{})
	assert.ErrorAs(t, repo.DeleteWorkspace("main"), &WorkspaceNotFoundError{})
}

func TestSaveWorkspaceOverwrites(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)

	ws := orient.NewWorkspace()
	assert.NoError(t, repo.SaveWorkspace("main", ws))
	ws.AddDirectory("added later")
	assert.NoError(t, repo.SaveWorkspace("main", ws))

	loaded, err := repo.LoadWorkspace("main")
	assert.NoError(t, err)
	assert.Len(t, loaded.Directories, 1)
}

func TestWorkspaceNameValidation(t *testing.T) {
	t.Parallel()
	repo := testRepository(t)
	ws := orient.NewWorkspace()

	for _, name := range []string{"", "../escape", "a/b", `a\b`, "null\x00byte"} {
		assert.Error(t, repo.SaveWorkspace(name, ws), name)
		_, err := repo.LoadWorkspace(name)
		assert.Error(t, err, name)
		assert.Error(t, repo.DeleteWorkspace(name), name)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.json")

	assert.NoError(t, atomicWriteFile(path, []byte("old"), 0o644))
	assert.NoError(t, atomicWriteFile(path, []byte("new"), 0o644))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// a failed write leaves no temp file behind
	assert.Error(t, atomicWriteFile(filepath.Join(dir, "nodir", "test.json"), []byte("x"), 0o644))
	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}
