package dispatch

import (
	jsonlib "encoding/json"
	"net/http"
	"sort"
	"unicode/utf8"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/orienthq/go-orient/pkg/request"
)

// Snapshot is an immutable record of one completed exchange.
type Snapshot struct {
	URL         string         `json:"url"`
	Status      int            `json:"status"`
	StatusText  string         `json:"status_text"`
	ContentType string         `json:"content_type"`
	Headers     request.Values `json:"headers"`
	Body        string         `json:"body"`
	Length      int            `json:"length"`
}

// newSnapshot records a completed response. The body has already been read
// and decoded by the client. A body that is not valid UTF-8 text is replaced
// by an empty string. Length prefers a parseable Content-Length header and
// falls back to the decoded body byte length. URL is the final request URL,
// dispatched query string included; configuredURL is its fallback when the
// transport did not expose the sent request.
func newSnapshot(configuredURL string, response request.HTTPResponse, body []byte) *Snapshot {
	url := configuredURL
	if raw := response.RawRequest(); raw != nil && raw.URL != nil {
		url = raw.URL.String()
	}
	text := ""
	if utf8.Valid(body) {
		text = string(body)
	}
	return &Snapshot{
		URL:         url,
		Status:      response.StatusCode(),
		StatusText:  http.StatusText(response.StatusCode()),
		ContentType: response.ResponseHeader().Get("Content-Type"),
		Headers:     flattenHeader(response.ResponseHeader()),
		Body:        text,
		Length:      bodyLength(response.ResponseHeader(), body),
	}
}

// FormattedBody returns the body re-indented when it is a JSON object,
// with the key order of the wire form preserved. Anything else is returned
// verbatim.
func (s *Snapshot) FormattedBody() string {
	m := orderedmap.New()
	if err := jsonlib.Unmarshal([]byte(s.Body), m); err != nil {
		return s.Body
	}
	// standard json library, jsoniter does not compact custom MarshalJSON output
	pretty, err := jsonlib.MarshalIndent(m, "", "  ")
	if err != nil {
		return s.Body
	}
	return string(pretty)
}

func bodyLength(header http.Header, body []byte) int {
	// a zero Content-Length counts as absent, like a malformed one
	if v, err := cast.ToIntE(header.Get("Content-Length")); err == nil && v > 0 {
		return v
	}
	return len(body)
}

// flattenHeader converts the response header map to ordered pairs. net/http
// does not expose wire order, so pairs are sorted by canonical name for a
// deterministic result; values of a repeated header keep their order.
func flattenHeader(header http.Header) request.Values {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(request.Values, 0, len(header))
	for _, name := range names {
		for _, value := range header[name] {
			out = append(out, request.Pair{Key: name, Value: value})
		}
	}
	return out
}
