package dispatch

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orienthq/go-orient/pkg/request"
)

func TestSnapshotFormattedBody(t *testing.T) {
	t.Parallel()

	// key order of the wire form is preserved, not sorted
	s := &Snapshot{Body: `{"zebra":1,"alpha":{"b":2,"a":3}}`}
	assert.Equal(t, "{\n  \"zebra\": 1,\n  \"alpha\": {\n    \"b\": 2,\n    \"a\": 3\n  }\n}", s.FormattedBody())

	// non-JSON body is returned verbatim
	s = &Snapshot{Body: "plain text"}
	assert.Equal(t, "plain text", s.FormattedBody())

	s = &Snapshot{Body: ""}
	assert.Equal(t, "", s.FormattedBody())
}

func TestFlattenHeader(t *testing.T) {
	t.Parallel()
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	header.Add("Set-Cookie", "a=1")
	header.Add("Set-Cookie", "b=2")
	header.Set("Cache-Control", "no-store")

	assert.Equal(t, request.Values{
		{Key: "Cache-Control", Value: "no-store"},
		{Key: "Content-Type", Value: "application/json"},
		{Key: "Set-Cookie", Value: "a=1"},
		{Key: "Set-Cookie", Value: "b=2"},
	}, flattenHeader(header))
}

func TestBodyLength(t *testing.T) {
	t.Parallel()
	header := make(http.Header)
	assert.Equal(t, 4, bodyLength(header, []byte("body")))

	header.Set("Content-Length", "100")
	assert.Equal(t, 100, bodyLength(header, []byte("body")))

	// malformed header falls back to the read length
	header.Set("Content-Length", "not a number")
	assert.Equal(t, 4, bodyLength(header, []byte("body")))

	// a zero header is treated as absent
	header.Set("Content-Length", "0")
	assert.Equal(t, 4, bodyLength(header, []byte("body")))
}
