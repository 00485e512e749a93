package client

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/net/http2"
)

func TestDefaultTransport(t *testing.T) {
	t.Parallel()
	transport, ok := DefaultTransport().(*http.Transport)
	assert.True(t, ok)
	assert.True(t, transport.ForceAttemptHTTP2)
	assert.Equal(t, TLSHandshakeTimeout, transport.TLSHandshakeTimeout)
	assert.Equal(t, ResponseHeaderTimeout, transport.ResponseHeaderTimeout)
	assert.Equal(t, MaxConnectionsPerHost, transport.MaxConnsPerHost)
	assert.Equal(t, MaxConnectionsPerHost, transport.MaxIdleConnsPerHost)
	assert.NotNil(t, transport.DialContext)
	assert.NotNil(t, transport.Proxy)
}

func TestHTTP2Transport(t *testing.T) {
	t.Parallel()
	transport, ok := HTTP2Transport().(*http2.Transport)
	assert.True(t, ok)
	assert.NotNil(t, transport.DialTLS)

	// usable as a client transport
	c := New().WithTransport(transport)
	assert.Equal(t, transport, c.transport)
}

func TestDialer(t *testing.T) {
	t.Parallel()
	dialer := Dialer()
	assert.Equal(t, DialTimeout, dialer.Timeout)
	assert.Equal(t, KeepAlive, dialer.KeepAlive)
}
