package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/orienthq/go-orient/pkg/request"
)

func TestValues_EncodePreservesOrder(t *testing.T) {
	t.Parallel()
	v := Values{
		{Key: "zebra", Value: "1"},
		{Key: "alpha", Value: "2"},
		{Key: "zebra", Value: "3"},
	}
	assert.Equal(t, "zebra=1&alpha=2&zebra=3", v.Encode())
}

func TestValues_EncodeEscaping(t *testing.T) {
	t.Parallel()
	v := Values{{Key: "a b", Value: "c&d=e"}}
	assert.Equal(t, "a+b=c%26d%3De", v.Encode())
}

func TestValues_NonEmpty(t *testing.T) {
	t.Parallel()
	v := Values{
		{Key: "", Value: "ignored"},
		{Key: "foo", Value: "bar"},
		{Key: "", Value: ""},
		{Key: "baz", Value: ""},
	}
	assert.Equal(t, Values{{Key: "foo", Value: "bar"}, {Key: "baz", Value: ""}}, v.NonEmpty())
}

func TestValues_AddDoesNotModifyOriginal(t *testing.T) {
	t.Parallel()
	a := Values{{Key: "foo", Value: "bar"}}
	b := a.Add("baz", "qux")
	assert.Len(t, a, 1)
	assert.Len(t, b, 2)
	assert.Equal(t, "bar", b.Get("foo"))
	assert.Equal(t, "qux", b.Get("baz"))
	assert.Equal(t, "", a.Get("baz"))
}
