// Package counter provides a byte-counting reader for HTTP bodies.
// The client uses it to measure the decoded size of each response body,
// the value is reported through the trace hooks.
package counter

import (
	"errors"
	"io"
)

// ReadCloser wraps an io.ReadCloser (a request/response body) and counts the bytes read from it.
// Optionally, an OnClose callback can be registered.
type ReadCloser struct {
	wrapped io.ReadCloser
	onClose OnClose
	bytes   int64
	readErr error
}

// OnClose is called when the reader is closed, with the total bytes read.
type OnClose func(bytes int64, err error)

func NewReadCloser(wrapped io.ReadCloser, onClose OnClose) *ReadCloser {
	return &ReadCloser{wrapped: wrapped, onClose: onClose}
}

// Bytes returns the number of bytes read so far.
func (w *ReadCloser) Bytes() int64 {
	return w.bytes
}

func (w *ReadCloser) Read(b []byte) (int, error) {
	n, err := w.wrapped.Read(b)
	w.bytes += int64(n)
	w.readErr = err
	return n, err
}

func (w *ReadCloser) Close() error {
	closeErr := w.wrapped.Close()
	if w.onClose != nil {
		// Prefer read error before close error for onClose callback, it is usually more useful
		var onCloseErr error
		if !errors.Is(w.readErr, io.EOF) {
			onCloseErr = w.readErr
		} else if closeErr != nil {
			onCloseErr = closeErr
		}
		w.onClose(w.bytes, onCloseErr)
	}
	return closeErr
}
