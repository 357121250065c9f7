package ruleset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ruleset-combiner/core/uniques"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver_Modes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		mode string
		keep bool
	}{
		{mode: ResolverReject, keep: false},
		{mode: ResolverAccept, keep: true},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			res, err := NewResolver(Config{Resolver: tt.mode}, nil, nil, nil)
			require.NoError(t, err)
			assert.Nil(t, res.Memo)

			keep, err := res.Resolver.Resolve(ctx, "Homebrew ability")
			require.NoError(t, err)
			assert.Equal(t, tt.keep, keep)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := NewResolver(Config{Resolver: "ask-later"}, nil, nil, nil)
		assert.ErrorContains(t, err, "ask-later")
	})
}

func TestNewResolver_Decisions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decisions.yaml")
	require.NoError(t, uniques.SaveDecisions(path, map[string]bool{"Keep me": true, "Drop me": false}))

	res, err := NewResolver(Config{Resolver: ResolverAccept, DecisionsFile: path}, nil, nil, nil)
	require.NoError(t, err)

	keep, err := res.Resolver.Resolve(ctx, "Drop me")
	require.NoError(t, err)
	assert.False(t, keep, "saved decision wins over the mode")

	keep, err = res.Resolver.Resolve(ctx, "Something else")
	require.NoError(t, err)
	assert.True(t, keep)
}

func TestNewResolver_MissingDecisions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := NewResolver(Config{Resolver: ResolverReject, DecisionsFile: path}, nil, nil, nil)
	assert.NoError(t, err)

	_, err = NewResolver(Config{Resolver: ResolverLookup, DecisionsFile: path}, nil, nil, nil)
	assert.Error(t, err, "lookup mode needs its decisions file")
}

func TestResolution_PromptAndSave(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "decisions.yaml")
	require.NoError(t, uniques.SaveDecisions(path, map[string]bool{"Old answer": true}))

	var out bytes.Buffer
	cfg := Config{Resolver: ResolverPrompt, DecisionsFile: path}
	known := uniques.NewList([]string{"[+1] Sight"})
	res, err := NewResolver(cfg, known, strings.NewReader("maybe\nn\n"), &out)
	require.NoError(t, err)
	require.NotNil(t, res.Memo)

	keep, err := res.Resolver.Resolve(ctx, "[+2] Sight")
	require.NoError(t, err)
	assert.False(t, keep)
	assert.Contains(t, out.String(), "[+1] Sight")

	keep, err = res.Resolver.Resolve(ctx, "[+2] Sight")
	require.NoError(t, err)
	assert.False(t, keep, "answers are memoized")

	require.NoError(t, res.Save(path))
	saved, err := uniques.LoadDecisions(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"Old answer": true, "[+2] Sight": false}, saved)
}

func TestResolution_SaveNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.yaml")
	res, err := NewResolver(Config{Resolver: ResolverPrompt}, nil, strings.NewReader("y\n"), &bytes.Buffer{})
	require.NoError(t, err)

	_, err = res.Resolver.Resolve(context.Background(), "Homebrew ability")
	require.NoError(t, err)
	require.NoError(t, res.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Homebrew ability")

	assert.NoError(t, (&Resolution{}).Save(path), "nothing to save without a memo")
}
