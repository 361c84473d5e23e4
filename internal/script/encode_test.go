package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRoundTrip(t *testing.T) {
	doc := mustParse(t, sampleScript)
	reparsed, err := Parse(Encode(doc))
	require.NoError(t, err)
	assert.True(t, Equal(doc, reparsed), "re-parsed document differs from original")
}

func TestEncodeRoundTripTwiceIsStable(t *testing.T) {
	doc := mustParse(t, sampleScript)
	once := Encode(doc)
	reparsed, err := Parse(once)
	require.NoError(t, err)
	assert.Equal(t, once, Encode(reparsed), "encoding is not a fixed point")
}

func TestEncodeEscapesStrings(t *testing.T) {
	doc := NewDict()
	doc.Set("msg", String("line1\nline2\t\"quoted\" back\\slash"))

	out := Encode(doc)
	assert.Equal(t, "msg = \"line1\\nline2\\t\\\"quoted\\\" back\\\\slash\"\n", out)

	reparsed, err := Parse(out)
	require.NoError(t, err)
	v, _ := reparsed.Get("msg")
	assert.Equal(t, String("line1\nline2\t\"quoted\" back\\slash"), v)
}

func TestEncodeNumbers(t *testing.T) {
	doc := NewDict()
	doc.Set("whole", Float(2.0))
	doc.Set("frac", Float(2.2))
	doc.Set("neg", Integer(-42))

	out := Encode(doc)
	assert.Equal(t, "whole = 2.0\nfrac = 2.2\nneg = -42\n", out)
}

func TestEncodeKeepsInsertionOrder(t *testing.T) {
	doc := mustParse(t, "z = 1\na = 2\nm = 3\n")
	assert.Equal(t, "z = 1\na = 2\nm = 3\n", Encode(doc))
}

func TestEncodeNestedLayout(t *testing.T) {
	doc := mustParse(t, `a = {1, b = 2, "x"}`)
	out := Encode(doc)
	assert.Equal(t, "a = {\n\t1,\n\t\n\t\tb=2\n\t,\n\t\"x\"\n}\n", out)

	reparsed, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, Equal(doc, reparsed))
}

func TestEqualIgnoresDictOrder(t *testing.T) {
	a := NewDict()
	a.Set("x", Integer(1))
	a.Set("y", Integer(2))

	b := NewDict()
	b.Set("y", Integer(2))
	b.Set("x", Integer(1))

	assert.True(t, Equal(a, b))

	b.Set("x", Integer(3))
	assert.False(t, Equal(a, b))
}
