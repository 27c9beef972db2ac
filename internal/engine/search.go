package engine

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/kdsouza/halcyon/internal/board"
)

// Search-wide constants. Infinity must exceed any real evaluation plus the
// deepest possible mate distance; MateScore is the score awarded for a
// mate found at the root, decremented by one per ply it takes to deliver
// so shallower mates are always preferred.
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// lmrTable holds precomputed late-move-reduction amounts indexed by
// [depth][moveNumber], following a logarithmic curve: reductions grow
// slowly at first and more aggressively once many moves have already
// been tried without improving alpha.
var lmrTable [64][64]int

func init() {
	for d := 1; d < 64; d++ {
		for m := 1; m < 64; m++ {
			lmrTable[d][m] = int(0.4 + math.Log(float64(d))*math.Log(float64(m))/2.0)
		}
	}
}

// pvLine is a triangular principal-variation table: pvLine.moves[ply] holds
// the best line found starting at ply, truncated to pvLine.length[ply].
type pvLine struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

func (pv *pvLine) update(ply int, m board.Move) {
	pv.moves[ply][ply] = m
	for j := ply + 1; j < pv.length[ply+1]; j++ {
		pv.moves[ply][j] = pv.moves[ply+1][j]
	}
	pv.length[ply] = pv.length[ply+1]
}

func (pv *pvLine) line() []board.Move {
	out := make([]board.Move, pv.length[0])
	copy(out, pv.moves[0][:pv.length[0]])
	return out
}

// Stats is a snapshot of one completed or in-progress iterative-deepening
// pass, in the shape UCI-style consumers expect to report.
type Stats struct {
	Depth    int
	SelDepth int
	Score    int
	Nodes    uint64
	NPS      uint64
	TimeMs   int64
	PV       []board.Move
	Bound    Bound
}

// String renders stats the way a console search log would, formatting
// large node counts with thousands separators.
func (s Stats) String() string {
	pv := ""
	for i, m := range s.PV {
		if i > 0 {
			pv += " "
		}
		pv += m.String()
	}
	return fmt.Sprintf("depth %d seldepth %d score %s nodes %s nps %s time %dms pv %s",
		s.Depth, s.SelDepth, formatScore(s.Score), humanize.Comma(int64(s.Nodes)), humanize.Comma(int64(s.NPS)), s.TimeMs, pv)
}

func formatScore(score int) string {
	if score > MateScore-MaxPly {
		return fmt.Sprintf("mate %d", (MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return fmt.Sprintf("mate -%d", (MateScore+score+1)/2)
	}
	return fmt.Sprintf("cp %d", score)
}

// aborted is returned up the call stack when a search is cancelled
// mid-tree. It is not a Go error: callers filter it at the outermost
// entry point rather than propagating it as a failure.
const aborted = -Infinity - 1

// Worker runs a single-threaded alpha-beta search against a shared
// transposition table and pawn cache. Several Workers searching the same
// root concurrently (see workerpool.go) share both caches but keep their
// own move ordering state and undo stack, matching the teacher's
// per-thread Searcher layout generalized to multiple threads.
type Worker struct {
	pos       *board.Position
	rootMoves []uint64 // Board.RootHistory() at the moment the search began
	tt        *Table
	pawns     *PawnTable
	orderer   *MoveOrderer

	nodes     uint64
	nodeLimit uint64 // 0 means unlimited
	rootOnly  []board.Move
	contempt  int
	seldepth  int
	pv        pvLine

	undoStack [MaxPly]board.UndoInfo

	stopped atomic.Bool
}

// NewWorker returns a Worker bound to shared tt and pawns tables.
func NewWorker(tt *Table, pawns *PawnTable) *Worker {
	return &Worker{tt: tt, pawns: pawns, orderer: NewMoveOrderer()}
}

// Nodes reports how many nodes this worker has visited during its current
// or most recently completed search.
func (w *Worker) Nodes() uint64 { return w.nodes }

// configureLimits sets the node budget and root-move restriction a
// subsequent search should honor. A zero nodeLimit means unlimited; an
// empty rootOnly means every legal root move is considered.
func (w *Worker) configureLimits(nodeLimit uint64, rootOnly []board.Move) {
	w.nodeLimit = nodeLimit
	w.rootOnly = rootOnly
}

// setContempt installs the contempt, in centipawns from the side-to-move's
// perspective; a drawn position reports its negation instead of flat zero
// (see drawScore). A positive
// value makes the worker treat draws as slightly worse than neutral,
// discouraging it from steering into one it believes it can avoid.
func (w *Worker) setContempt(contempt int) {
	w.contempt = contempt
}

// allowsRootMove reports whether m may be played at the search root, given
// any restriction configureLimits installed.
func (w *Worker) allowsRootMove(m board.Move) bool {
	if len(w.rootOnly) == 0 {
		return true
	}
	for _, rm := range w.rootOnly {
		if rm == m {
			return true
		}
	}
	return false
}

// SearchDepth runs a single fixed-depth search from pos, honoring ctx
// cancellation, and returns the best move and its score; the worker's
// principal variation is then available from PV. rootHistory supplies the game positions
// since the last irreversible move, so in-tree repetition checks see
// repeats that span the search root.
func (w *Worker) SearchDepth(ctx context.Context, pos *board.Position, rootHistory []uint64, depth int) (board.Move, int) {
	return w.searchWindow(ctx, pos, rootHistory, depth, -Infinity, Infinity)
}

// searchWindow resets the worker against pos and searches depth within
// [alpha, beta], returning the move and score found at the root.
func (w *Worker) searchWindow(ctx context.Context, pos *board.Position, rootHistory []uint64, depth, alpha, beta int) (board.Move, int) {
	w.pos = pos.Copy()
	w.rootMoves = rootHistory
	w.nodes = 0
	w.seldepth = 0
	w.stopped.Store(false)

	score := w.negamax(ctx, depth, 0, alpha, beta, false)

	var best board.Move
	if w.pv.length[0] > 0 {
		best = w.pv.moves[0][0]
	}
	return best, score
}

// PV returns the principal variation from the worker's last search.
func (w *Worker) PV() []board.Move { return w.pv.line() }

// isRepetition reports whether the current position occurred earlier in
// rootHistory, the game positions since the last irreversible move. This
// lets a draw by repetition be recognized even when only part of the
// repeated cycle lies before the search root and the rest was reached
// inside the current search tree.
func (w *Worker) isRepetition(ply int) bool {
	hash := w.pos.Hash
	count := 0
	for _, h := range w.rootMoves {
		if h == hash {
			count++
		}
	}
	return count >= 1 && ply > 0
}

func (w *Worker) isDraw(ply int) bool {
	if w.pos.IsDrawByRule50OrMaterial() {
		return true
	}
	if w.isRepetition(ply) {
		return true
	}
	return false
}

// drawScore returns the value a drawn position should report from the
// side to move's perspective, shading it away from flat zero by the
// configured contempt so the search prefers a playable position over a
// known draw whenever one is available.
func (w *Worker) drawScore() int {
	return -w.contempt
}

// negamax performs fail-soft alpha-beta search with the reductions and
// prunings named for this engine: null-move pruning, razoring at shallow
// depth, reverse futility pruning of quiet moves near the leaves, and
// late-move reductions once several quiet moves have already failed to
// raise alpha. It deliberately omits the wider technique set a top
// engine would add on top of these (probcut, multi-cut, singular
// extensions, correction history, tablebases): this is the set spec
// names, not everything the teacher's worker does.
func (w *Worker) negamax(ctx context.Context, depth, ply int, alpha, beta int, wasNull bool) int {
	if w.nodes&4095 == 0 && contextx.IsCancelled(ctx) {
		w.stopped.Store(true)
		return aborted
	}
	w.nodes++
	if w.nodeLimit != 0 && w.nodes >= w.nodeLimit {
		w.stopped.Store(true)
		return aborted
	}

	w.pv.length[ply] = ply
	if ply > w.seldepth {
		w.seldepth = ply
	}

	if ply > 0 && w.isDraw(ply) {
		return w.drawScore()
	}
	if ply >= MaxPly-1 {
		return Evaluate(w.pos, w.pawns)
	}

	pvNode := beta-alpha > 1
	inCheck := w.pos.InCheck()

	var ttMove board.Move
	if entry, found := w.tt.Probe(w.pos.Hash); found {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth && !pvNode {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case ExactBound:
				return score
			case LowerBound:
				if score >= beta {
					return score
				}
			case UpperBound:
				if score <= alpha {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return w.quiescence(ctx, ply, alpha, beta)
	}

	staticEval := Evaluate(w.pos, w.pawns)

	// Reverse futility / razoring: when the static evaluation is so far
	// outside the window that no quiet improvement at this depth could
	// plausibly close the gap, resolve with a quiescence search (or the
	// static eval itself) instead of searching the full move list.
	if !inCheck && !pvNode {
		if depth <= 6 {
			margin := 85 * depth
			if staticEval-margin >= beta {
				return staticEval
			}
		}
		if depth <= 3 {
			razorMargin := 300 + 200*depth*depth
			if staticEval+razorMargin <= alpha {
				score := w.quiescence(ctx, ply, alpha, beta)
				if score <= alpha {
					return score
				}
			}
		}
	}

	// Null-move pruning: if passing the turn entirely still leaves the
	// opponent unable to reach beta, the position is almost certainly won
	// regardless of what move is actually played here. Skipped in check
	// (a null move would leave our own king hanging), when we hold no
	// material beyond pawns (zugzwang risk makes the null move unsound),
	// and when the previous ply was itself a null move (two consecutive
	// null moves are a no-op that tells the search nothing new).
	if !inCheck && !pvNode && !wasNull && depth >= 3 && ply > 0 && w.pos.HasNonPawnMaterial() {
		R := 3 + depth/4
		if R > depth-1 {
			R = depth - 1
		}
		undo := w.pos.MakeNullMove()
		score := -w.negamax(ctx, depth-1-R, ply+1, -beta, -beta+1, true)
		w.pos.UnmakeNullMove(undo)
		if w.stopped.Load() {
			return aborted
		}
		if score >= beta {
			return score
		}
	}

	futilityPrune := false
	if !inCheck && !pvNode && depth <= 5 {
		margin := []int{0, 150, 250, 450, 650, 900}[depth]
		if staticEval+margin <= alpha {
			futilityPrune = true
		}
	}

	gen := NewStagedMoveGenerator(w.pos, w.orderer, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	bound := UpperBound
	legalMoves := 0

	for {
		move, ok := gen.Next()
		if !ok {
			break
		}

		if ply == 0 && !w.allowsRootMove(move) {
			continue
		}

		isCapture := move.IsCapture(w.pos)
		isPromotion := move.IsPromotion()
		isQuiet := !isCapture && !isPromotion

		if futilityPrune && isQuiet && legalMoves > 0 && !w.pos.GivesCheck(move) {
			continue
		}

		w.undoStack[ply] = w.pos.MakeMove(move)
		if !w.undoStack[ply].Valid {
			w.pos.UnmakeMove(move, w.undoStack[ply])
			continue
		}
		legalMoves++

		givesCheck := w.pos.InCheck()

		var score int
		newDepth := depth - 1
		if givesCheck {
			newDepth++
		}

		if legalMoves == 1 {
			score = -w.negamax(ctx, newDepth, ply+1, -beta, -alpha, false)
		} else {
			reduction := 0
			if depth >= 3 && isQuiet && !inCheck && !givesCheck {
				d, m := depth, legalMoves
				if d > 63 {
					d = 63
				}
				if m > 63 {
					m = 63
				}
				reduction = lmrTable[d][m]
				if move == ttMove {
					reduction--
				}
				if reduction < 0 {
					reduction = 0
				}
				if reduction > newDepth-1 {
					reduction = newDepth - 1
				}
			}

			score = -w.negamax(ctx, newDepth-reduction, ply+1, -alpha-1, -alpha, false)
			if w.stopped.Load() {
				w.pos.UnmakeMove(move, w.undoStack[ply])
				return aborted
			}
			if score > alpha && (reduction > 0 || pvNode) {
				score = -w.negamax(ctx, newDepth, ply+1, -beta, -alpha, false)
			}
		}

		w.pos.UnmakeMove(move, w.undoStack[ply])

		if w.stopped.Load() {
			return aborted
		}

		if score > bestScore {
			bestScore = score
			bestMove = move

			if score > alpha {
				alpha = score
				bound = ExactBound
				w.pv.update(ply, move)
			}
		}

		if alpha >= beta {
			bound = LowerBound
			if isQuiet {
				w.orderer.UpdateKillers(move, ply)
				w.orderer.UpdateHistory(move, depth, true)
			}
			break
		}
	}

	if legalMoves == 0 {
		// A root-move restriction can legitimately empty this node's move
		// list even though the position itself has legal moves; that is
		// not checkmate or stalemate, just nothing left to report.
		if ply == 0 && len(w.rootOnly) != 0 && w.pos.HasLegalMoves() {
			return 0
		}
		if inCheck {
			return -MateScore + ply
		}
		return 0
	}

	w.tt.Store(w.pos.Hash, depth, AdjustScoreToTT(bestScore, ply), bound, bestMove)
	return bestScore
}

// quiescence extends the search along captures (and, when in check,
// every legal reply) until the position is quiet, avoiding the horizon
// effect where a fixed-depth cutoff stops mid-exchange.
func (w *Worker) quiescence(ctx context.Context, ply, alpha, beta int) int {
	if w.nodes&4095 == 0 && contextx.IsCancelled(ctx) {
		w.stopped.Store(true)
		return aborted
	}
	w.nodes++
	if w.nodeLimit != 0 && w.nodes >= w.nodeLimit {
		w.stopped.Store(true)
		return aborted
	}
	if ply > w.seldepth {
		w.seldepth = ply
	}
	if ply >= MaxPly-1 {
		return Evaluate(w.pos, w.pawns)
	}

	inCheck := w.pos.InCheck()
	standPat := Evaluate(w.pos, w.pawns)

	if !inCheck {
		if standPat >= beta {
			return standPat
		}
		if standPat > alpha {
			alpha = standPat
		}
		if standPat+board.PieceValue[board.Queen] < alpha {
			return alpha
		}
	}

	var moves *board.MoveList
	if inCheck {
		moves = w.pos.GenerateLegalMoves()
	} else {
		moves = w.pos.GenerateCaptures()
	}

	best := standPat
	if inCheck {
		best = -Infinity
	}

	for i := 0; i < moves.Len(); i++ {
		move := moves.Get(i)

		if !inCheck && w.pos.SEE(move) < 0 {
			continue
		}

		undo := w.pos.MakeMove(move)
		if !undo.Valid {
			w.pos.UnmakeMove(move, undo)
			continue
		}

		score := -w.quiescence(ctx, ply+1, -beta, -alpha)
		w.pos.UnmakeMove(move, undo)

		if w.stopped.Load() {
			return aborted
		}

		if score > best {
			best = score
			if score > alpha {
				alpha = score
			}
		}
		if alpha >= beta {
			break
		}
	}

	if inCheck && moves.Len() == 0 {
		return -MateScore + ply
	}
	return best
}
