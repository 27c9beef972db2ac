package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdsouza/halcyon/internal/board"
)

func TestStagedGeneratorDoesNotGenerateBeforeTTStage(t *testing.T) {
	pos := board.NewPosition()
	ttMove := board.NewMove(board.E2, board.E4)

	gen := NewStagedMoveGenerator(pos, NewMoveOrderer(), 0, ttMove)
	move, ok := gen.Next()

	require.True(t, ok)
	assert.Equal(t, ttMove, move)
	assert.False(t, gen.capturesReady, "the TT move should be returned without generating captures")
	assert.False(t, gen.quietsReady, "the TT move should be returned without generating quiet moves")
}

func TestStagedGeneratorDefersQuietsUntilKillerStage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	gen := NewStagedMoveGenerator(pos, NewMoveOrderer(), 0, board.NoMove)

	move, ok := gen.Next()
	require.True(t, ok)
	assert.True(t, move.IsCapture(pos), "the only good capture on the board should come out first")
	assert.True(t, gen.capturesReady)
	assert.False(t, gen.quietsReady, "quiet moves must not be generated while a capture stage still has entries")
}

func TestStagedGeneratorYieldsEveryLegalMoveExactlyOnce(t *testing.T) {
	pos := board.NewPosition()
	gen := NewStagedMoveGenerator(pos, NewMoveOrderer(), 0, board.NoMove)

	seen := map[board.Move]int{}
	for {
		m, ok := gen.Next()
		if !ok {
			break
		}
		seen[m]++
	}

	legal := pos.GenerateLegalMoves()
	assert.Equal(t, legal.Len(), len(seen), "staged generator should produce as many distinct moves as GenerateLegalMoves")
	for i := 0; i < legal.Len(); i++ {
		m := legal.Get(i)
		assert.Equal(t, 1, seen[m], "move %v should be yielded exactly once", m)
	}
}
