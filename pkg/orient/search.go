package orient

import (
	"sort"
	"strings"

	"github.com/umisama/go-regexpcache"
)

// Matches is the result of a workspace search.
// Both slices are ordered by ID for deterministic output.
type Matches struct {
	Directories []*Directory
	Locations   []*Location
}

// Search returns directories and Locations whose names match the pattern,
// case-insensitively. The pattern is a regular expression; an invalid
// pattern degrades to a plain substring match instead of failing.
func (w *Workspace) Search(pattern string) Matches {
	match := matcherFor(pattern)

	out := Matches{}
	for _, id := range w.directoryIDs() {
		if dir := w.Directories[id]; match(dir.Name) {
			out.Directories = append(out.Directories, dir)
		}
	}
	w.Store.ForEach(func(loc *Location) {
		if match(loc.Name) {
			out.Locations = append(out.Locations, loc)
		}
	})
	return out
}

func matcherFor(pattern string) func(string) bool {
	re, err := regexpcache.Compile("(?i)" + pattern)
	if err != nil {
		needle := strings.ToLower(pattern)
		return func(name string) bool {
			return strings.Contains(strings.ToLower(name), needle)
		}
	}
	return re.MatchString
}

func (w *Workspace) directoryIDs() []string {
	ids := make([]string, 0, len(w.Directories))
	for id := range w.Directories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
