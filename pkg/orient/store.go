package orient

import (
	"sort"
)

// CollectionStore owns every Location in a workspace, keyed by ID.
// Directories reference Locations by ID only, the store is the single owner.
type CollectionStore struct {
	buffers map[string]*Location
}

func NewCollectionStore() *CollectionStore {
	return &CollectionStore{buffers: make(map[string]*Location)}
}

// Insert adds the Location, replacing any existing Location with the same ID.
func (s *CollectionStore) Insert(loc *Location) {
	s.buffers[loc.ID] = loc
}

// Get returns the Location with the given ID, if present.
func (s *CollectionStore) Get(id string) (*Location, bool) {
	loc, found := s.buffers[id]
	return loc, found
}

// Remove deletes the Location with the given ID.
// Directory references to it are not touched, detaching is the caller's job.
func (s *CollectionStore) Remove(id string) {
	delete(s.buffers, id)
}

func (s *CollectionStore) Len() int {
	return len(s.buffers)
}

// IDs returns all Location IDs in ascending order.
func (s *CollectionStore) IDs() []string {
	ids := make([]string, 0, len(s.buffers))
	for id := range s.buffers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ForEach visits all Locations in ascending ID order.
func (s *CollectionStore) ForEach(fn func(loc *Location)) {
	for _, id := range s.IDs() {
		fn(s.buffers[id])
	}
}

func (s *CollectionStore) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.buffers)
}

func (s *CollectionStore) UnmarshalJSON(data []byte) error {
	s.buffers = make(map[string]*Location)
	return json.Unmarshal(data, &s.buffers)
}
