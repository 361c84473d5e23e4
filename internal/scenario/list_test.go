package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoundTrip(t *testing.T) {
	lines := []string{
		"「お兄、あさー……むふー……」",
		"line with \"quotes\" and\nnewline",
		"",
	}

	data, err := EncodeList(lines)
	require.NoError(t, err)

	decoded, err := DecodeList(data)
	require.NoError(t, err)
	assert.Equal(t, lines, decoded)
}

func TestDecodeListRejectsNonSequence(t *testing.T) {
	_, err := DecodeList([]byte("key: value\n"))
	assert.Error(t, err)
}

func TestDecodeListEmpty(t *testing.T) {
	decoded, err := DecodeList([]byte("[]\n"))
	require.NoError(t, err)
	assert.Empty(t, decoded)
}
