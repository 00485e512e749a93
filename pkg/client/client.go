// Package client provides a configurable HTTP client, the default
// implementation of the request.Sender interface.
//
// Use request.NewHTTPRequest to define immutable HTTP requests and send them
// through the Client.
//
// The Client is based on the standard net/http package and adds tracing
// hooks, content-encoding decoding and optional retries. Retries are
// disabled by default, see NoRetry.
//
// Unlike a typical API client, the Client does not convert HTTP error
// statuses to Go errors: a 4xx/5xx response is a valid completion and is
// returned to the caller as-is. Only transport-level failures (connect,
// timeout, TLS, cancellation) produce an error.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/orienthq/go-orient/pkg/client/counter"
	"github.com/orienthq/go-orient/pkg/client/decode"
	"github.com/orienthq/go-orient/pkg/client/trace"
	"github.com/orienthq/go-orient/pkg/request"
)

const userAgent = "go-orient"

// Client is a default and configurable implementation of the request.Sender interface by Go native http.Client.
// It supports tracing/telemetry and opt-in retry.
type Client struct {
	transport      http.RoundTripper
	baseURL        *url.URL
	header         http.Header
	retry          RetryConfig
	traceFactories []trace.Factory
}

// New creates a new HTTP Client with retries disabled.
func New() Client {
	c := Client{transport: DefaultTransport(), header: make(http.Header), retry: NoRetry()}
	c.header.Set("User-Agent", userAgent)
	c.header.Set("Accept-Encoding", "gzip, br")
	return c
}

// WithBaseURL returns a clone of the Client with base url set.
func (c Client) WithBaseURL(baseURLStr string) Client {
	baseURL, err := url.Parse(baseURLStr)
	if err != nil {
		panic(fmt.Errorf(`base url "%s" is not valid: %w`, baseURLStr, err))
	}
	c.baseURL = baseURL
	return c
}

// WithUserAgent returns a clone of the Client with user agent set.
func (c Client) WithUserAgent(v string) Client {
	c.header = c.header.Clone()
	c.header.Set("User-Agent", v)
	return c
}

// WithHeader returns a clone of the Client with a common header set.
func (c Client) WithHeader(key, value string) Client {
	c.header = c.header.Clone()
	c.header.Set(key, value)
	return c
}

// WithHeaders returns a clone of the Client with common headers set.
func (c Client) WithHeaders(headers map[string]string) Client {
	c.header = c.header.Clone()
	for k, v := range headers {
		c.header.Set(k, v)
	}
	return c
}

// WithTransport returns a clone of the Client with a HTTP transport set.
func (c Client) WithTransport(transport http.RoundTripper) Client {
	if transport == nil || transport == http.RoundTripper(nil) {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	c.transport = transport
	return c
}

// WithRetry returns a clone of the Client with retry config set.
func (c Client) WithRetry(retry RetryConfig) Client {
	c.retry = retry
	return c
}

// AndTrace returns a clone of the Client with an additional trace factory.
// Hooks from all registered factories are composed.
func (c Client) AndTrace(fn trace.Factory) Client {
	c.traceFactories = append(c.traceFactories[:len(c.traceFactories):len(c.traceFactories)], fn)
	return c
}

// Send method sends HTTP request and returns HTTP response, it implements the request.Sender interface.
func (c Client) Send(ctx context.Context, reqDef request.HTTPRequest) (res *http.Response, result any, err error) {
	// Method cannot be called on an empty value
	if c.transport == nil {
		panic(fmt.Errorf("client value is not initialized"))
	}

	// If the method is not set, a panic occurs. So we get the value first.
	method := reqDef.Method()

	// Init trace
	var clientTrace *trace.ClientTrace
	for _, fn := range c.traceFactories {
		var t *trace.ClientTrace
		ctx, t = fn(ctx, reqDef)
		if t != nil {
			t.Compose(clientTrace)
			clientTrace = t
		}
	}
	if clientTrace != nil {
		ctx = httptrace.WithClientTrace(ctx, &clientTrace.ClientTrace)
	}

	// Convert to absolute url
	var reqURL *url.URL
	if c.baseURL == nil {
		reqURL, err = url.Parse(reqDef.URL())
	} else {
		reqURL, err = c.baseURL.Parse(reqDef.URL())
	}
	if err != nil {
		return nil, nil, err
	}

	// Layer query parameters on top of any query baked into the URL,
	// in definition order.
	if params := reqDef.QueryParams(); len(params) > 0 {
		if reqURL.RawQuery == "" {
			reqURL.RawQuery = params.Encode()
		} else {
			reqURL.RawQuery += "&" + params.Encode()
		}
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, nil, err
	}

	// Global headers
	for k, values := range c.header {
		for _, v := range values {
			req.Header.Set(k, v)
		}
	}

	// Request headers
	for k, values := range reqDef.RequestHeader() {
		req.Header.Del(k) // clear global values
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	// Body
	if reqDef.RequestBody() != nil {
		// GetBody factory is used for requests when a redirect/retry requires reading the body more than once.
		req.GetBody = func() (io.ReadCloser, error) {
			if body, err := requestBody(reqDef); err == nil {
				return body, nil
			} else {
				return nil, fmt.Errorf(`request %s "%s": cannot prepare request body: %w`, req.Method, req.URL.String(), err)
			}
		}
		req.Body, err = req.GetBody()
		if err != nil {
			return nil, nil, err
		}
	}

	// Setup native client
	nativeClient := http.Client{
		Timeout:   c.retry.TotalRequestTimeout,
		Transport: roundTripper{ctx: ctx, retry: c.retry, trace: clientTrace, wrapped: c.transport}, // wrapped transport for trace/retry
	}

	// Send request
	startedAt := time.Now()
	res, err = nativeClient.Do(req)

	// Trace request processed
	if clientTrace != nil && clientTrace.RequestProcessed != nil {
		defer func() {
			clientTrace.RequestProcessed(result, err)
		}()
	}

	// Handle send error
	if err != nil {
		return nil, nil, handleSendError(startedAt, c.retry.TotalRequestTimeout, req, err)
	}

	// Load response body into the result definition, any HTTP status is a valid completion
	if result, err = handleResponseBody(res, reqDef.ResultDef(), clientTrace); err != nil {
		err = fmt.Errorf(`cannot process request %s "%s": %w`, req.Method, req.URL.String(), err)
	}

	return res, result, err
}

func requestBody(r request.HTTPRequest) (io.ReadCloser, error) {
	contentType := r.RequestHeader().Get("Content-Type")
	body := r.RequestBody()
	if v, ok := body.(string); ok {
		return io.NopCloser(strings.NewReader(v)), nil
	}
	if v, ok := body.([]byte); ok {
		return io.NopCloser(bytes.NewReader(v)), nil
	}
	if v, ok := body.(io.ReadSeekCloser); ok {
		// io.ReadSeekCloser stream
		if _, err := v.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return v, nil
	}
	if v, ok := body.(io.ReadSeeker); ok {
		// io.ReadSeeker stream
		if _, err := v.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		return io.NopCloser(v), nil
	}
	if body != nil && IsJSONContentType(contentType) {
		// Json body
		c, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf(`cannot encode JSON body: %w`, err)
		}
		return io.NopCloser(bytes.NewReader(c)), nil
	}
	// empty body
	return nil, nil
}

func handleResponseBody(r *http.Response, resultDef any, clientTrace *trace.ClientTrace) (result any, err error) {
	// Decode content encoding
	body, err := decode.Decode(r.Body, r.Header.Get("Content-Encoding"))
	if err != nil {
		return nil, err
	}

	// Count decoded bytes, report to the trace when the body is closed
	onClose := counter.OnClose(nil)
	if clientTrace != nil && clientTrace.ResponseBodyDone != nil {
		onClose = clientTrace.ResponseBodyDone
	}
	reader := counter.NewReadCloser(body, onClose)
	defer reader.Close()

	switch v := resultDef.(type) {
	case nil:
		// No result definition, discard the body so the connection can be reused
		_, err = io.Copy(io.Discard, reader)
	case *[]byte:
		var bodyBytes []byte
		if bodyBytes, err = io.ReadAll(reader); err == nil {
			*v = bodyBytes
			result = v
		}
	case *string:
		var bodyBytes []byte
		if bodyBytes, err = io.ReadAll(reader); err == nil {
			*v = string(bodyBytes)
			result = v
		}
	case io.WriteCloser:
		if _, err = io.Copy(v, reader); err == nil {
			err = v.Close()
		}
		result = v
	case io.Writer:
		_, err = io.Copy(v, reader)
		result = v
	default:
		return nil, fmt.Errorf(`unsupported result type %T`, resultDef)
	}

	if err != nil {
		return nil, fmt.Errorf(`cannot read response body: %w`, err)
	}
	return result, nil
}

func handleSendError(startedAt time.Time, clientTimeout time.Duration, req *http.Request, err error) error {
	// Timeout
	var netErr net.Error
	if deadline, ok := req.Context().Deadline(); ok && errors.Is(err, context.DeadlineExceeded) {
		err = urlError(req, fmt.Errorf("timeout after %s", deadline.Sub(startedAt)))
	} else if errors.Is(err, context.Canceled) {
		err = urlError(req, fmt.Errorf("canceled after %s", time.Since(startedAt)))
	} else if errors.As(err, &netErr) && netErr.Timeout() {
		if strings.Contains(err.Error(), "Client.Timeout exceeded") {
			err = urlError(req, fmt.Errorf("timeout after %s", clientTimeout))
		} else {
			err = urlError(req, fmt.Errorf("timeout after %s", time.Since(startedAt)))
		}
	}

	// Url error
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf(`request %s "%s" failed: %w`, strings.ToUpper(urlErr.Op), urlErr.URL, urlErr.Err)
	}

	return err
}

// roundTripper wraps a http.RoundTripper and adds trace and retry functionality.
type roundTripper struct {
	ctx     context.Context
	trace   *trace.ClientTrace
	retry   RetryConfig
	wrapped http.RoundTripper
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	state := rt.retry.NewBackoff()
	attempt := 0
	for {
		// Trace request start
		if rt.trace != nil && rt.trace.HTTPRequestStart != nil {
			rt.trace.HTTPRequestStart(req)
		}

		// Send
		res, err := rt.wrapped.RoundTrip(req)

		// Trace request done
		if rt.trace != nil && rt.trace.HTTPRequestDone != nil {
			rt.trace.HTTPRequestDone(res, err)
		}

		// Check if we should retry
		if rt.retry.Condition == nil || !rt.retry.Condition(res, err) || attempt >= rt.retry.Count {
			// No retry
			return res, err
		}

		// Get next delay
		delay := state.NextBackOff()
		if delay == backoff.Stop {
			// Stop
			return res, err
		}

		// Trace retry
		attempt++
		if rt.trace != nil && rt.trace.HTTPRequestRetry != nil {
			rt.trace.HTTPRequestRetry(attempt, delay)
		}

		// Rewind body before retry
		if req.GetBody != nil {
			req.Body, err = req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("cannot rewind body: %w", err)
			}
		}

		// Wait
		select {
		case <-req.Context().Done():
			// context is canceled
			return nil, req.Context().Err()
		case <-time.NewTimer(delay).C:
			// time elapsed, retry
		}
	}
}

func urlError(req *http.Request, err error) *url.Error {
	return &url.Error{Op: req.Method, URL: req.URL.String(), Err: err}
}
