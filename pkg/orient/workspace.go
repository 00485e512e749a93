package orient

import (
	"fmt"

	"github.com/google/uuid"
)

// Workspace combines the collection store with the directory tree built on
// top of it. It is owned by a single goroutine, typically the interactive
// loop, and is not safe for concurrent use.
type Workspace struct {
	Store       *CollectionStore      `json:"buffers"`
	Directories map[string]*Directory `json:"directory"`
}

func NewWorkspace() *Workspace {
	return &Workspace{
		Store:       NewCollectionStore(),
		Directories: make(map[string]*Directory),
	}
}

// AddDirectory creates an empty leaf directory. An empty name gets a
// generated "new N" placeholder.
func (w *Workspace) AddDirectory(name string) *Directory {
	if name == "" {
		name = fmt.Sprintf("new %d", len(w.Directories)+1)
	}
	dir := &Directory{
		ID:   uuid.NewString(),
		Name: name,
		Leaf: true,
	}
	w.Directories[dir.ID] = dir
	return dir
}

func (w *Workspace) RenameDirectory(id, name string) error {
	dir, found := w.Directories[id]
	if !found {
		return DirectoryNotFoundError{ID: id}
	}
	dir.Name = name
	return nil
}

// RemoveDirectory deletes the directory only. Its Locations stay in the
// store, orphaned, until removed individually or attached elsewhere.
func (w *Workspace) RemoveDirectory(id string) {
	delete(w.Directories, id)
}

func (w *Workspace) Directory(id string) (*Directory, bool) {
	dir, found := w.Directories[id]
	return dir, found
}

// AddLocation creates a new Location seeded with an example GET request and
// attaches it to the given directory.
func (w *Workspace) AddLocation(dirID string) (*Location, error) {
	dir, found := w.Directories[dirID]
	if !found {
		return nil, DirectoryNotFoundError{ID: dirID}
	}
	loc := NewLocation("Item get", "https://httpbin.org/get", MethodGet)
	w.Store.Insert(loc)
	dir.Locations = append(dir.Locations, loc.ID)
	return loc, nil
}

// RemoveLocation detaches the Location from the directory and deletes it from
// the store.
func (w *Workspace) RemoveLocation(dirID, locID string) {
	if dir, found := w.Directories[dirID]; found {
		dir.Detach(locID)
	}
	w.Store.Remove(locID)
}

// Attach moves the Location under the given directory. A Location belongs to
// at most one directory, so it is detached from any previous one first.
func (w *Workspace) Attach(dirID, locID string) error {
	dir, found := w.Directories[dirID]
	if !found {
		return DirectoryNotFoundError{ID: dirID}
	}
	if _, found := w.Store.Get(locID); !found {
		return LocationNotFoundError{ID: locID}
	}
	for _, other := range w.Directories {
		other.Detach(locID)
	}
	dir.Locations = append(dir.Locations, locID)
	return nil
}

// Merge inserts the imported directories and their Locations. No
// deduplication is done, entries with matching IDs are overwritten, so a
// repeated import of the same collection replaces the previous state.
func (w *Workspace) Merge(collections []ImportedCollection) {
	for _, col := range collections {
		for _, loc := range col.Locations {
			w.Store.Insert(loc)
		}
		w.Directories[col.Directory.ID] = col.Directory
	}
}
