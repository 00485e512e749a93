package orient

import (
	"github.com/google/uuid"
	"github.com/keboola/go-utils/pkg/deepcopy"

	"github.com/orienthq/go-orient/pkg/request"
)

// NewLocation creates a Location with a fresh ID and defaults suitable for
// editing: JSON body mode and one blank header row.
func NewLocation(name, url string, method Method) *Location {
	return &Location{
		ID:          uuid.NewString(),
		Name:        name,
		URL:         url,
		Method:      method,
		Params:      request.Values{},
		FormParams:  request.Values{},
		Header:      request.Values{{}},
		ContentType: ContentTypeJSON,
	}
}

// Clone returns a deep copy of the Location, so edits to one copy never leak
// into the other.
func (l *Location) Clone() *Location {
	return deepcopy.Copy(l).(*Location)
}
