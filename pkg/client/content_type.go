package client

import (
	"github.com/umisama/go-regexpcache"
)

const (
	// ContentTypeApplicationJSON is the JSON content type forced for JSON bodies.
	ContentTypeApplicationJSON = "application/json"
	// ContentTypeFormURLEncoded is the content type of URL encoded form bodies.
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
	// ContentTypeApplicationJSONRegexp matches JSON content types, including suffixed variants like "application/hal+json".
	ContentTypeApplicationJSONRegexp = `^application/([a-zA-Z0-9\.\-]+\+)?json`
)

// IsJSONContentType returns true if the content type is a JSON variant.
func IsJSONContentType(contentType string) bool {
	return regexpcache.MustCompile(ContentTypeApplicationJSONRegexp).MatchString(contentType)
}
