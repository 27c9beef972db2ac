package engine

import (
	"context"
	"fmt"
	"runtime"

	"github.com/seekerror/build"

	"github.com/kdsouza/halcyon/internal/board"
)

var version = build.NewVersion(0, 1, 0)

// Options configures an Engine at construction time. It is passed by value
// and never mutated afterward; changing a running engine's table size or
// thread count means building a new one.
type Options struct {
	// HashMB is the transposition table size in megabytes.
	HashMB int
	// Threads is the number of Lazy-SMP workers. Zero means one worker per
	// logical CPU.
	Threads int
	// Contempt is subtracted from the score of a position the engine would
	// otherwise evaluate as an exact draw, in centipawns from the side to
	// move's perspective, so a positive value makes a draw look slightly
	// worse than neutral. Zero plays draws at face value.
	Contempt int
}

func (o Options) String() string {
	return fmt.Sprintf("{hash=%dMB threads=%d contempt=%d}", o.HashMB, o.Threads, o.Contempt)
}

// Engine ties a transposition table, pawn cache, and Lazy-SMP pool together
// behind the construction-time Options that sized them.
type Engine struct {
	opts  Options
	tt    *Table
	pawns *PawnTable
	pool  *Pool
}

// New builds an Engine from opts. A zero Options gives a 32MB table, one
// worker per CPU, and no contempt.
func New(ctx context.Context, opts Options) *Engine {
	if opts.HashMB <= 0 {
		opts.HashMB = 32
	}
	if opts.Threads <= 0 {
		opts.Threads = runtime.GOMAXPROCS(0)
	}

	tt := NewTable(ctx, opts.HashMB)
	pawns := NewPawnTable(1)
	pool := NewPool(tt, pawns, opts.Threads)
	pool.SetContempt(opts.Contempt)

	return &Engine{
		opts:  opts,
		tt:    tt,
		pawns: pawns,
		pool:  pool,
	}
}

// Name returns the engine name and version, the way a UCI "id" response or
// a log line would report it.
func (e *Engine) Name() string {
	return fmt.Sprintf("Halcyon %v", version)
}

// Search finds the best move for pos under limits, reporting progress
// through onIteration after every completed depth.
func (e *Engine) Search(ctx context.Context, pos *board.Position, rootHistory []uint64, limits Limits, onIteration func(Stats)) (board.Move, Stats) {
	return e.pool.Search(ctx, pos, rootHistory, limits, onIteration)
}

// Stop cooperatively halts any in-progress Search call.
func (e *Engine) Stop() {
	e.pool.Stop()
}

// Clear empties the transposition table and pawn cache, as a UCI "ucinewgame"
// command would trigger between unrelated games.
func (e *Engine) Clear() {
	e.tt.Clear()
	e.pawns.Clear()
}

// Evaluate returns the static evaluation of pos from the side to move's
// perspective, subtracting contempt when the position is drawn by rule.
func (e *Engine) Evaluate(pos *board.Position) int {
	score := Evaluate(pos, e.pawns)
	if e.opts.Contempt != 0 && pos.IsDrawByRule50OrMaterial() {
		score -= e.opts.Contempt
	}
	return score
}
