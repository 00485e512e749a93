package orient

import (
	"net/http"
	"strings"

	"github.com/orienthq/go-orient/pkg/request"
)

// Method is the HTTP method of a Location.
type Method string

const (
	MethodGet    = Method(http.MethodGet)
	MethodPost   = Method(http.MethodPost)
	MethodPut    = Method(http.MethodPut)
	MethodPatch  = Method(http.MethodPatch)
	MethodDelete = Method(http.MethodDelete)
	MethodHead   = Method(http.MethodHead)
)

// ParseMethod normalizes a method string, case-insensitively.
// Unrecognized values map to GET.
func ParseMethod(v string) Method {
	switch strings.ToUpper(strings.TrimSpace(v)) {
	case http.MethodPost:
		return MethodPost
	case http.MethodPut:
		return MethodPut
	case http.MethodPatch:
		return MethodPatch
	case http.MethodDelete:
		return MethodDelete
	case http.MethodHead:
		return MethodHead
	default:
		return MethodGet
	}
}

func (m Method) String() string {
	return string(m)
}

// ContentType selects which part of a Location forms the request body.
type ContentType string

const (
	// ContentTypeJSON sends the raw Body string as "application/json".
	ContentTypeJSON = ContentType("json")
	// ContentTypeFormURLEncoded sends FormParams as "application/x-www-form-urlencoded".
	ContentTypeFormURLEncoded = ContentType("form-url-encoded")
	// ContentTypeFormData is reserved for multipart bodies.
	ContentTypeFormData = ContentType("form-data")
)

// Location is a stored request specification.
// Params, FormParams and Header keep user-defined pair order.
type Location struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	URL         string         `json:"url"`
	Method      Method         `json:"method"`
	Params      request.Values `json:"params"`
	Body        string         `json:"body"`
	FormParams  request.Values `json:"form_params"`
	Header      request.Values `json:"header"`
	ContentType ContentType    `json:"content_type"`
}

// Directory is a named group of Locations. It references its members by ID,
// the Locations themselves live in the CollectionStore.
type Directory struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Parent    string   `json:"parent"`
	Leaf      bool     `json:"leaf"`
	Locations []string `json:"locations"`
}

// Contains reports whether the directory references the given Location ID.
func (d *Directory) Contains(locationID string) bool {
	for _, id := range d.Locations {
		if id == locationID {
			return true
		}
	}
	return false
}

// Detach removes the given Location ID from the directory, keeping the order
// of the remaining references.
func (d *Directory) Detach(locationID string) {
	out := d.Locations[:0]
	for _, id := range d.Locations {
		if id != locationID {
			out = append(out, id)
		}
	}
	d.Locations = out
}
