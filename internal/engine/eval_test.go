package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdsouza/halcyon/internal/board"
)

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	pos := board.NewPosition()
	assert.Equal(t, 0, Evaluate(pos, nil)-tempoBonus, "a fresh board should be materially even before the tempo bonus")
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	fens := []string{
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/5k2/8/3P4/8/2K5/8/8 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		pos, err := board.ParseFEN(fen)
		assert.NoError(t, err)

		mirrored := pos.Mirror()

		got := Evaluate(pos, nil)
		mirroredScore := Evaluate(mirrored, nil)
		assert.Equal(t, got, mirroredScore, "evaluating a position and its color-flipped mirror should agree for fen %q", fen)
	}
}

func TestEvaluateInsufficientMaterialIsZero(t *testing.T) {
	pos, err := board.ParseFEN("8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	assert.NoError(t, err)
	assert.Equal(t, 0, Evaluate(pos, nil))
}

func TestEvaluateRewardsMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/4Q3/4K3 w - - 0 1")
	assert.NoError(t, err)
	score := Evaluate(pos, nil)
	assert.Greater(t, score, 800, "a lone extra queen should be worth close to its material value")
}

func TestPawnTableCachesAcrossEquivalentPositions(t *testing.T) {
	posA, err := board.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 w - - 0 1")
	assert.NoError(t, err)
	posB, err := board.ParseFEN("4k3/8/8/8/8/8/4P3/4K3 b - - 0 1")
	assert.NoError(t, err)

	pt := NewPawnTable(1)
	mgA, egA := pawnStructure(posA, pt)
	mgB, egB := pawnStructure(posB, pt)
	assert.Equal(t, mgA, mgB)
	assert.Equal(t, egA, egB)

	_, _, found := pt.Probe(posA.PawnKey)
	assert.True(t, found, "the second probe should have been served from the cache")
}

func TestKingDangerTableIsMonotonicAndBounded(t *testing.T) {
	for i := 1; i < 128; i++ {
		assert.GreaterOrEqual(t, kingDangerTable[i], kingDangerTable[i-1], "danger penalty should never decrease as the index grows")
	}
	assert.Less(t, kingDangerTable[127], int(katMax)+1)
}
