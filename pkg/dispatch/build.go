package dispatch

import (
	"github.com/orienthq/go-orient/pkg/orient"
	"github.com/orienthq/go-orient/pkg/request"
)

// buildRequest maps a Location to an outbound request.
//
// Non-empty header pairs are attached for every method. GET attaches the
// non-empty params as a query string, order preserved. POST body depends on
// the content type: JSON sends the raw Body text, form-url-encoded sends the
// non-empty form params as the body plus the non-empty params as a query
// string. Other methods go out bare. Pairs with an empty key are editor
// placeholder rows and are skipped everywhere.
func buildRequest(sender request.Sender, loc *orient.Location) request.HTTPRequest {
	req := request.NewHTTPRequest(sender).
		WithMethod(loc.Method.String()).
		WithURL(loc.URL)

	for _, pair := range loc.Header.NonEmpty() {
		req = req.AndHeader(pair.Key, pair.Value)
	}

	switch loc.Method {
	case orient.MethodGet:
		req = req.WithQueryParams(loc.Params.NonEmpty())
	case orient.MethodPost:
		switch loc.ContentType {
		case orient.ContentTypeJSON:
			req = req.WithJSONBody(loc.Body)
		case orient.ContentTypeFormURLEncoded:
			req = req.
				WithQueryParams(loc.Params.NonEmpty()).
				WithFormBody(loc.FormParams.NonEmpty())
		case orient.ContentTypeFormData:
			// multipart is not implemented, the request goes out bare
		}
	}

	return req
}
