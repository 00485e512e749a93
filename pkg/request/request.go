// Package request provides immutable definitions of outbound HTTP requests,
// see the NewHTTPRequest function.
//
// Requests are sent using the Sender interface.
// The client.Client is a default implementation of the request.Sender
// interface based on the standard net/http package.
//
// Query parameters and form bodies are represented by the ordered Values
// type, so the encoded output preserves the order in which pairs were
// defined. This matters for a request workbench: the wire format must match
// what the user typed, not a sorted normalization of it.
package request
