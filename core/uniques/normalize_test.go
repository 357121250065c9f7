package uniques

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"[+1] Movement", "[] movement"},
		{"[+2] Sight <for [Mounted] units>", "[] sight"},
		{"[+15]% Strength <when attacking> <vs cities>", "[]% strength"},
		{"Cannot be purchased", "cannot be purchased"},
		{"  Can build [Farm] improvements on tiles  ", "can build [] improvements on tiles"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestParse_KeepsDisplay(t *testing.T) {
	a := Parse("[+2] Sight <for [Mounted] units>")
	assert.Equal(t, Key("[] sight"), a.Key)
	assert.Equal(t, "[+2] Sight <for [Mounted] units>", a.Display)
}

func TestNewList(t *testing.T) {
	l := NewList([]string{"[+1] Movement", "", "  ", "[+3] Movement", "Cannot be purchased"})

	assert.Len(t, l, 2)
	assert.Equal(t, "[+1] Movement", l[Key("[] movement")])
	assert.True(t, l.Contains("[+5] Movement <in [Forest] tiles>"))
	assert.True(t, l.Has("cannot be purchased"))
	assert.False(t, l.Contains("Ignores terrain cost"))
	assert.Equal(t, []Key{"[] movement", "cannot be purchased"}, l.Keys())
}

func TestLoadList(t *testing.T) {
	t.Run("EmptyPath", func(t *testing.T) {
		l, err := LoadList("")
		require.NoError(t, err)
		assert.Empty(t, l)
	})

	t.Run("FromFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "uniques.txt")
		require.NoError(t, os.WriteFile(path, []byte("[+1] Movement\n\nNo defensive terrain bonus\n"), 0644))

		l, err := LoadList(path)
		require.NoError(t, err)
		assert.Len(t, l, 2)
		assert.True(t, l.Contains("No defensive terrain bonus"))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadList(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}

func TestList_Suggest(t *testing.T) {
	l := NewList([]string{"[+1] Movement", "[+1] Sight", "No defensive terrain bonus"})

	hint, ok := l.Suggest("[+2] Movment")
	require.True(t, ok)
	assert.Equal(t, "[+1] Movement", hint)

	hint, ok = l.Suggest("No defensive terain bonus <when attacking>")
	require.True(t, ok)
	assert.Equal(t, "No defensive terrain bonus", hint)

	_, ok = l.Suggest("Can transform to [Roirraw] <in [Friendly Land] tiles>")
	assert.False(t, ok)

	_, ok = List(nil).Suggest("[+1] Movement")
	assert.False(t, ok)
}
