package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictSetKeepsPositionOnOverwrite(t *testing.T) {
	d := NewDict()
	d.Set("a", Integer(1))
	d.Set("b", Integer(2))
	d.Set("a", Integer(3))

	assert.Equal(t, []string{"a", "b"}, d.Keys())
	v, ok := d.Get("a")
	require.True(t, ok)
	assert.Equal(t, Integer(3), v)
}

func TestDictRetain(t *testing.T) {
	d := NewDict()
	d.Set("text", String("dialogue"))
	d.Set("linknext", String("block_00001"))
	d.Set("line", Integer(18))

	d.Retain(func(key string) bool {
		return key == "linknext" || key == "line"
	})

	assert.Equal(t, []string{"linknext", "line"}, d.Keys())
	_, ok := d.Get("text")
	assert.False(t, ok)
	assert.Equal(t, 2, d.Len())
}
