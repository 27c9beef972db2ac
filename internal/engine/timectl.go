package engine

import (
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/kdsouza/halcyon/internal/board"
)

// Limits bounds a single search. Fields are optional because a caller may
// mix a hard depth or node cap with a clock-based allocation, or specify
// neither and let the search run until told to stop.
type Limits struct {
	Depth        lang.Optional[int]
	Nodes        lang.Optional[uint64]
	MoveTimeMs   lang.Optional[int64]
	RemainingMs  lang.Optional[int64]
	IncrementMs  lang.Optional[int64]
	MovesToGo    lang.Optional[int]
	PlyFromStart int
	// RootMoves, when non-empty, restricts the search to considering only
	// these moves at the root (e.g. a UCI "searchmoves" restriction).
	RootMoves []board.Move
}

// AllocateMs computes how long, in milliseconds, the current move should
// be allowed to think, given the clock state in l. It returns false if l
// carries no time control at all (fixed-depth or infinite search).
//
// The allocation splits remaining time across an estimate of the moves
// left in the game: moves-to-go when the controller reports one,
// otherwise a sudden-death estimate that assumes the game has at least
// 40 moves left but fewer than 60 still to play from the current ply.
// Half of any increment is added on top, and the result is capped below
// the remaining clock by a safety margin so a slow move never loses on
// time.
func (l Limits) AllocateMs() (int64, bool) {
	if ms, ok := l.MoveTimeMs.V(); ok {
		return ms, true
	}

	remaining, ok := l.RemainingMs.V()
	if !ok {
		return 0, false
	}

	var increment int64
	if v, ok := l.IncrementMs.V(); ok {
		increment = v
	}

	var divisor int
	if mtg, ok := l.MovesToGo.V(); ok && mtg > 0 {
		divisor = mtg + 1
	} else {
		divisor = 60 - l.PlyFromStart
		if divisor < 40 {
			divisor = 40
		}
	}

	allocated := remaining/int64(divisor) + increment/2

	if ceiling := remaining - 25; allocated > ceiling {
		allocated = ceiling
	}
	if allocated < 0 {
		allocated = 0
	}
	return allocated, true
}
