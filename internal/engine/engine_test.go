package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdsouza/halcyon/internal/board"
)

func TestNewEngineDefaultsHashAndThreads(t *testing.T) {
	e := New(context.Background(), Options{})
	assert.Equal(t, 32, e.opts.HashMB)
	assert.Greater(t, e.opts.Threads, 0)
}

func TestEngineNameIncludesVersion(t *testing.T) {
	e := New(context.Background(), Options{})
	assert.True(t, strings.HasPrefix(e.Name(), "Halcyon "))
}

func TestEngineSearchFindsMateInOne(t *testing.T) {
	pos, err := board.ParseFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)

	e := New(context.Background(), Options{HashMB: 1, Threads: 1})
	move, _ := e.Search(context.Background(), pos, nil, fixedDepth(1), nil)
	assert.Equal(t, "a1a8", move.String())
}

func TestEngineClearResetsTables(t *testing.T) {
	pos := board.NewPosition()
	e := New(context.Background(), Options{HashMB: 1, Threads: 1})
	e.Search(context.Background(), pos, nil, fixedDepth(4), nil)
	e.Clear()
	_, found := e.tt.Probe(pos.Hash)
	assert.False(t, found, "clearing the table should drop every stored entry")
}
