package client

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// Transport limits. A dispatched request carries no other timeout, so these
// per-phase bounds are what stops a request against a dead or stuck server.
const (
	// DialTimeout limits establishing the TCP connection.
	DialTimeout = 5 * time.Second
	// KeepAlive is the probe interval on idle connections.
	KeepAlive = 30 * time.Second
	// TLSHandshakeTimeout limits the TLS handshake.
	TLSHandshakeTimeout = 5 * time.Second
	// ResponseHeaderTimeout limits waiting for the status line and headers
	// after the request has been written. Body reads are not bounded, a
	// large download is allowed to take its time.
	ResponseHeaderTimeout = 30 * time.Second
	// MaxConnectionsPerHost caps open connections to a single host, a whole
	// directory run against one server fits within it.
	MaxConnectionsPerHost = 16
)

// DefaultTransport is the transport used by New.
// HTTP2 is negotiated when the server offers it.
func DefaultTransport() http.RoundTripper {
	dialer := Dialer()
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		MaxConnsPerHost:       MaxConnectionsPerHost,
		MaxIdleConnsPerHost:   MaxConnectionsPerHost,
	}
}

// HTTP2Transport speaks HTTP2 only, for servers known to support it.
// Opt in via Client.WithTransport.
func HTTP2Transport() http.RoundTripper {
	dialer := Dialer()
	return &http2.Transport{
		DialTLS: func(network, addr string, cfg *tls.Config) (net.Conn, error) {
			return tls.DialWithDialer(dialer, network, addr, cfg)
		},
		ReadIdleTimeout:  10 * time.Second,
		PingTimeout:      5 * time.Second,
		WriteByteTimeout: 10 * time.Second,
	}
}

// Dialer is shared by both transports.
func Dialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   DialTimeout,
		KeepAlive: KeepAlive,
	}
}
