package trace_test

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/orienthq/go-orient/pkg/client"
	. "github.com/orienthq/go-orient/pkg/client/trace"
	"github.com/orienthq/go-orient/pkg/request"
)

func TestLogTracer(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", `https://example.com`, httpmock.NewStringResponder(200, "hello"))

	var logs strings.Builder
	c = c.AndTrace(LogTracer(&logs))

	ctx := context.Background()
	var out string
	_, _, err := request.NewHTTPRequest(c).WithGet("https://example.com").WithResult(&out).Send(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "hello", out)

	out1 := logs.String()
	assert.Contains(t, out1, `HTTP_REQUEST[0001] START GET "https://example.com"`)
	assert.Contains(t, out1, `HTTP_REQUEST[0001] DONE  GET "https://example.com" | 200`)
	assert.Contains(t, out1, `HTTP_REQUEST[0001] BODY  GET "https://example.com" | 5 bytes`)
}

func TestClientTrace_Compose(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", `https://example.com`, httpmock.NewStringResponder(200, "hello"))

	var logs strings.Builder
	c = c.
		AndTrace(func(ctx context.Context, reqDef request.HTTPRequest) (context.Context, *ClientTrace) {
			return ctx, &ClientTrace{
				HTTPRequestDone: func(r *http.Response, err error) {
					logs.WriteString("first ")
				},
			}
		}).
		AndTrace(func(ctx context.Context, reqDef request.HTTPRequest) (context.Context, *ClientTrace) {
			return ctx, &ClientTrace{
				HTTPRequestDone: func(r *http.Response, err error) {
					logs.WriteString("second ")
				},
				RequestProcessed: func(result any, err error) {
					s := spew.NewDefaultConfig()
					s.DisablePointerAddresses = true
					s.DisableCapacities = true
					logs.WriteString(fmt.Sprintf("processed result=%s err=%v", strings.TrimSpace(s.Sdump(result)), err))
				},
			}
		})

	ctx := context.Background()
	var out string
	_, _, err := request.NewHTTPRequest(c).WithGet("https://example.com").WithResult(&out).Send(ctx)
	assert.NoError(t, err)

	// hooks from both factories run, registration order is preserved
	assert.Contains(t, logs.String(), "first second ")
	assert.Contains(t, logs.String(), `processed result=(*string)`)
}
