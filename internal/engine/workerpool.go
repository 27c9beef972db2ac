package engine

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"golang.org/x/sync/errgroup"

	"github.com/kdsouza/halcyon/internal/board"
)

// Pool runs a Lazy-SMP search: every worker searches the same root through
// the same iterative-deepening loop against a shared transposition table
// and pawn cache, so a worker that reaches a position first leaves
// information behind for the others even though none of them coordinate
// directly. Only worker 0's result is reported; the rest exist purely to
// seed the shared tables from different move orderings.
type Pool struct {
	tt       *Table
	pawns    *PawnTable
	workers  []*Worker
	contempt int

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPool allocates n workers (n >= 1) sharing tt and pawns.
func NewPool(tt *Table, pawns *PawnTable, n int) *Pool {
	if n < 1 {
		n = 1
	}
	workers := make([]*Worker, n)
	for i := range workers {
		workers[i] = NewWorker(tt, pawns)
	}
	return &Pool{tt: tt, pawns: pawns, workers: workers}
}

// SetContempt installs the contempt value every worker applies to its
// search-time draw score.
func (p *Pool) SetContempt(contempt int) {
	p.contempt = contempt
}

// Stop cooperatively halts any in-progress Search call. Idempotent and
// safe to call from a goroutine other than the one running Search.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}

// Search runs iterative deepening from pos up to the depth or time bound
// given by limits, reporting progress through onIteration after every
// completed depth (onIteration may be nil). It returns the best move and
// final search statistics found before the bound was hit or the search
// was stopped.
func (p *Pool) Search(ctx context.Context, pos *board.Position, rootHistory []uint64, limits Limits, onIteration func(Stats)) (board.Move, Stats) {
	p.tt.NewGeneration()
	nodeLimit, _ := limits.Nodes.V()
	for _, w := range p.workers {
		w.orderer.Clear()
		w.configureLimits(nodeLimit, limits.RootMoves)
		w.setContempt(p.contempt)
	}

	wctx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	if ms, ok := limits.AllocateMs(); ok {
		var timeoutCancel context.CancelFunc
		wctx, timeoutCancel = context.WithTimeout(wctx, time.Duration(ms)*time.Millisecond)
		defer timeoutCancel()
	}

	maxDepth := MaxPly - 1
	if d, ok := limits.Depth.V(); ok && d < maxDepth {
		maxDepth = d
	}

	start := time.Now()

	var g errgroup.Group
	for i := 1; i < len(p.workers); i++ {
		worker := p.workers[i]
		startDepth := 1 + i%3
		g.Go(func() error {
			helperSearch(wctx, worker, pos, rootHistory, startDepth, maxDepth)
			return nil
		})
	}

	main := p.workers[0]
	var bestMove board.Move
	var stats Stats
	prevScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		if contextx.IsCancelled(wctx) {
			break
		}

		move, score := searchWithAspiration(wctx, main, pos, rootHistory, depth, prevScore)
		if main.stopped.Load() {
			break
		}

		bestMove = move
		prevScore = score

		var nodes uint64
		for _, w := range p.workers {
			nodes += w.Nodes()
		}
		elapsed := time.Since(start)
		nps := uint64(0)
		if elapsed > 0 {
			nps = uint64(float64(nodes) / elapsed.Seconds())
		}

		bound := ExactBound
		if score <= prevScore-1 {
			bound = UpperBound
		}

		stats = Stats{
			Depth:    depth,
			SelDepth: main.seldepth,
			Score:    score,
			Nodes:    nodes,
			NPS:      nps,
			TimeMs:   elapsed.Milliseconds(),
			PV:       main.PV(),
			Bound:    bound,
		}
		if onIteration != nil {
			onIteration(stats)
		}
		logw.Debugf(ctx, "%v", stats)

		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			break
		}
		if nodeLimit != 0 && nodes >= nodeLimit {
			break
		}
	}

	cancel()
	p.mu.Lock()
	p.cancel = nil
	p.mu.Unlock()

	_ = g.Wait()
	return bestMove, stats
}

// searchWithAspiration runs one iterative-deepening depth with a narrow
// window around the previous iteration's score once the search is deep
// enough for that score to be trustworthy, widening (doubling) the
// window and re-searching whenever the result falls outside it.
func searchWithAspiration(ctx context.Context, w *Worker, pos *board.Position, rootHistory []uint64, depth, prevScore int) (board.Move, int) {
	if depth < 4 {
		return w.SearchDepth(ctx, pos, rootHistory, depth)
	}

	const initialWindow = 25
	alpha, beta := prevScore-initialWindow, prevScore+initialWindow

	for {
		move, score := w.searchWindow(ctx, pos, rootHistory, depth, alpha, beta)
		if w.stopped.Load() {
			return move, score
		}
		if score <= alpha {
			alpha -= (beta - alpha)
			if alpha < -Infinity {
				alpha = -Infinity
			}
			continue
		}
		if score >= beta {
			beta += (beta - alpha)
			if beta > Infinity {
				beta = Infinity
			}
			continue
		}
		return move, score
	}
}

// helperSearch runs a plain, unreported iterative-deepening loop for a
// Lazy-SMP helper worker: its only purpose is to populate the shared
// transposition table from a different starting depth than the main
// worker, so the two explore the move tree in a different order.
func helperSearch(ctx context.Context, w *Worker, pos *board.Position, rootHistory []uint64, startDepth, maxDepth int) {
	for depth := startDepth; depth <= maxDepth; depth++ {
		if contextx.IsCancelled(ctx) {
			return
		}
		w.SearchDepth(ctx, pos, rootHistory, depth)
		if w.stopped.Load() {
			return
		}
	}
}
