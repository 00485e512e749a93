package request

import (
	"net/url"
	"strings"
)

// Pair is one key/value item of an ordered sequence.
type Pair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Values is an ordered sequence of key/value pairs.
// Unlike url.Values, encoding preserves the definition order and duplicate
// keys are kept as separate pairs.
type Values []Pair

// Add returns a copy of the values with the pair appended.
func (v Values) Add(key, value string) Values {
	out := v.Clone()
	return append(out, Pair{Key: key, Value: value})
}

// Get returns the value of the first pair with the given key.
func (v Values) Get(key string) string {
	for _, p := range v {
		if p.Key == key {
			return p.Value
		}
	}
	return ""
}

// NonEmpty returns only pairs with a non-empty key.
// Pairs with an empty key are editor placeholders, they never reach the wire.
func (v Values) NonEmpty() Values {
	out := make(Values, 0, len(v))
	for _, p := range v {
		if p.Key != "" {
			out = append(out, p)
		}
	}
	return out
}

// Encode returns the pairs in "URL encoded" form ("foo=bar&baz=qux"),
// in definition order.
func (v Values) Encode() string {
	var b strings.Builder
	for _, p := range v {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Clone returns a deep copy of the values.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	copy(out, v)
	return out
}
