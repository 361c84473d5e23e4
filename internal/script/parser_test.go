package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleScript mirrors one block of a real engine dump.
const sampleScript = `astver = 2.0
ast = {
	block_00000 = {
		{"savetitle", text="俺たちの新しい日常"},
		{"bg", time=2000, file="bg001a", path=":bg/"},
		{"text"},
		text = {
			vo = {
				{"vo", file="fem_hiy_00052", ch="hiy"},
			},
			ja = {
				{
					name = {"妃愛"},
					"「お兄、あさー……むふー……」",
					{"rt2"},
				},
			},
		},
		linknext = "block_00001",
		line = 18,
	},
}
`

func mustParse(t *testing.T, src string) *Dict {
	t.Helper()
	doc, err := Parse(src)
	require.NoError(t, err)
	return doc
}

func TestParseSampleScript(t *testing.T) {
	doc := mustParse(t, sampleScript)

	assert.Equal(t, []string{"astver", "ast"}, doc.Keys())

	astver, ok := doc.Get("astver")
	require.True(t, ok)
	assert.Equal(t, Float(2.0), astver)

	astValue, ok := doc.Get("ast")
	require.True(t, ok)
	astArray, ok := astValue.(Array)
	require.True(t, ok)
	require.Len(t, astArray, 1)

	// The block wrapper is a single-key dictionary around the item array.
	wrapper, ok := astArray[0].(*Dict)
	require.True(t, ok)
	require.Equal(t, []string{"block_00000"}, wrapper.Keys())

	blockValue, _ := wrapper.Get("block_00000")
	items, ok := blockValue.(Array)
	require.True(t, ok)
	require.Len(t, items, 6)

	// {"savetitle", text="..."} is an array holding a bare string and a
	// single-key dictionary.
	first, ok := items[0].(Array)
	require.True(t, ok)
	require.Len(t, first, 2)
	assert.Equal(t, String("savetitle"), first[0])
	titleDict, ok := first[1].(*Dict)
	require.True(t, ok)
	title, _ := titleDict.Get("text")
	assert.Equal(t, String("俺たちの新しい日常"), title)

	// linknext and line arrive as single-key dictionaries among the items.
	link, ok := items[4].(*Dict)
	require.True(t, ok)
	target, _ := link.Get("linknext")
	assert.Equal(t, String("block_00001"), target)

	lineEntry, ok := items[5].(*Dict)
	require.True(t, ok)
	lineNo, _ := lineEntry.Get("line")
	assert.Equal(t, Integer(18), lineNo)
}

func TestParseBareIdentifierIsString(t *testing.T) {
	doc := mustParse(t, "mode = fullscreen")
	v, _ := doc.Get("mode")
	assert.Equal(t, String("fullscreen"), v)
}

func TestParseIdentifierChainWrapsDictionaries(t *testing.T) {
	// a = b = 1 nests as {a: {b: 1}} with each step a single-key dict.
	doc := mustParse(t, "a = b = 1")
	outer, _ := doc.Get("a")
	outerDict, ok := outer.(*Dict)
	require.True(t, ok)
	inner, _ := outerDict.Get("b")
	assert.Equal(t, Integer(1), inner)
}

func TestParseTrailingAndExtraCommas(t *testing.T) {
	doc := mustParse(t, "a = {1, 2,, 3,}")
	v, _ := doc.Get("a")
	assert.Equal(t, Array{Integer(1), Integer(2), Integer(3)}, v)
}

func TestParseEmptyArray(t *testing.T) {
	doc := mustParse(t, "a = {}")
	v, _ := doc.Get("a")
	assert.Equal(t, Array{}, v)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code ParseCode
	}{
		{"top level non-identifier", `= 1`, ExpectedIdentifier},
		{"stray equal in array", `a = {=}`, UnexpectedToken},
		{"close brace at value position", `a = }`, UnexpectedToken},
		{"truncated after equal", `a =`, UnexpectedEndOfInput},
		{"truncated after identifier value", `a = {b`, UnexpectedEndOfInput},
		{"unclosed array", `a = {1, 2`, UnexpectedEndOfInput},
		{"lone identifier", `a`, UnexpectedEndOfInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "want ParseError, got %v", err)
			assert.Equal(t, tt.code, parseErr.Code)
		})
	}
}

func TestParseLexErrorPassesThrough(t *testing.T) {
	_, err := Parse(`a = "unterminated`)
	var lexErr *LexError
	require.True(t, errors.As(err, &lexErr))
	assert.Equal(t, UnterminatedString, lexErr.Code)
}
