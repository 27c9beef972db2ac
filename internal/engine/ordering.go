package engine

import "github.com/kdsouza/halcyon/internal/board"

// MoveOrderer carries the state that move ordering needs across an entire
// search: killer moves per ply and a history table for quiet moves, aged
// (halved) between searches rather than cleared outright so long games
// keep some of what they learned.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [64][64]int
}

// NewMoveOrderer returns an orderer with empty killer slots and history.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear ages the orderer for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for i := range mo.history {
		for j := range mo.history[i] {
			mo.history[i][j] /= 2
		}
	}
}

// UpdateKillers records m as a killer at ply, bumping the previous first
// killer down to second.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory applies a depth-squared bonus or penalty to a quiet
// move's history score, matching the teacher's depth^2 weighting.
func (mo *MoveOrderer) UpdateHistory(m board.Move, depth int, good bool) {
	from, to := m.From(), m.To()
	bonus := depth * depth
	if good {
		mo.history[from][to] += bonus
		if mo.history[from][to] > 400000 {
			for i := range mo.history {
				for j := range mo.history[i] {
					mo.history[i][j] /= 2
				}
			}
		}
	} else {
		mo.history[from][to] -= bonus
		if mo.history[from][to] < -400000 {
			mo.history[from][to] = -400000
		}
	}
}

// historyOf returns the current history score for a quiet move.
func (mo *MoveOrderer) historyOf(m board.Move) int {
	return mo.history[m.From()][m.To()]
}

// stage names one phase of the lazy move iterator below.
type stage int

const (
	stageTT stage = iota
	stageGoodCaptures
	stageKillers
	stageQuiets
	stageBadCaptures
	stageDone
)

// StagedMoveGenerator lazily yields legal moves from a position in the
// order search wants to try them: the transposition table's recorded
// best move first, then captures that don't lose material (by SEE) sorted
// MVV/LVA, then killer moves, then quiet moves sorted by history score,
// and finally captures that do lose material. Each bucket is only
// generated and scored the first time Next() actually reaches that
// stage, so a cutoff on the TT move or an early capture never pays for
// generating or sorting the stages behind it — the TT stage in
// particular never touches move generation at all, since the caller may
// take a cutoff on the hash move alone.
type StagedMoveGenerator struct {
	pos     *board.Position
	orderer *MoveOrderer
	ply     int
	ttMove  board.Move

	capturesReady bool
	quietsReady   bool
	goodSorted    bool
	badSorted     bool
	quietsSorted  bool

	goodCaptures []board.Move
	badCaptures  []board.Move
	killerMoves  []board.Move
	quiets       []board.Move

	stage stage
	idx   int
}

// NewStagedMoveGenerator prepares a staged iterator over pos's legal
// moves. ttMove may be board.NoMove.
func NewStagedMoveGenerator(pos *board.Position, orderer *MoveOrderer, ply int, ttMove board.Move) *StagedMoveGenerator {
	return &StagedMoveGenerator{pos: pos, orderer: orderer, ply: ply, ttMove: ttMove}
}

// prepareCaptures splits every legal capture and promotion into
// the good/bad-by-SEE buckets, leaving both unsorted. Called the first
// time Next() reaches the good-captures stage.
func (g *StagedMoveGenerator) prepareCaptures() {
	if g.capturesReady {
		return
	}
	g.capturesReady = true

	moves := g.pos.GenerateCaptures()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m == g.ttMove {
			continue
		}
		if g.pos.SEE(m) >= 0 {
			g.goodCaptures = append(g.goodCaptures, m)
		} else {
			g.badCaptures = append(g.badCaptures, m)
		}
	}
}

// prepareQuiets splits every legal non-capture into the killer and
// plain-quiet buckets, leaving the quiets unsorted. Called the first
// time Next() reaches the killers stage, so a search that cuts off on a
// capture never generates the full legal move list at all.
func (g *StagedMoveGenerator) prepareQuiets() {
	if g.quietsReady {
		return
	}
	g.quietsReady = true

	killer0, killer1 := board.NoMove, board.NoMove
	if g.ply < MaxPly {
		killer0, killer1 = g.orderer.killers[g.ply][0], g.orderer.killers[g.ply][1]
	}

	moves := g.pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m == g.ttMove || m.IsCapture(g.pos) || m.IsPromotion() {
			continue
		}
		if m == killer0 || m == killer1 {
			g.killerMoves = append(g.killerMoves, m)
		} else {
			g.quiets = append(g.quiets, m)
		}
	}
}

// Next returns the next move in stage order, or (NoMove, false) once
// every stage is exhausted.
func (g *StagedMoveGenerator) Next() (board.Move, bool) {
	for {
		switch g.stage {
		case stageTT:
			g.stage = stageGoodCaptures
			if g.ttMove != board.NoMove && g.pos.IsPseudoLegalMove(g.ttMove) {
				return g.ttMove, true
			}
		case stageGoodCaptures:
			g.prepareCaptures()
			if !g.goodSorted {
				// MVV/LVA: most valuable victim first, cheapest attacker
				// breaking ties.
				scores := make([]int, len(g.goodCaptures))
				for i, m := range g.goodCaptures {
					victim := 0
					if m.IsEnPassant() {
						victim = board.PieceValue[board.Pawn]
					} else if p := g.pos.PieceAt(m.To()); p != board.NoPiece {
						victim = board.PieceValue[p.Type()]
					}
					scores[i] = victim*10 - board.PieceValue[g.pos.PieceAt(m.From()).Type()]
				}
				insertionSortDesc(g.goodCaptures, scores)
				g.goodSorted = true
			}
			if g.idx < len(g.goodCaptures) {
				m := g.goodCaptures[g.idx]
				g.idx++
				return m, true
			}
			g.idx = 0
			g.stage = stageKillers
		case stageKillers:
			g.prepareQuiets()
			if g.idx < len(g.killerMoves) {
				m := g.killerMoves[g.idx]
				g.idx++
				return m, true
			}
			g.idx = 0
			g.stage = stageQuiets
		case stageQuiets:
			g.prepareQuiets()
			if !g.quietsSorted {
				sortByHistory(g.orderer, g.quiets)
				g.quietsSorted = true
			}
			if g.idx < len(g.quiets) {
				m := g.quiets[g.idx]
				g.idx++
				return m, true
			}
			g.idx = 0
			g.stage = stageBadCaptures
		case stageBadCaptures:
			g.prepareCaptures()
			if !g.badSorted {
				sortBySEE(g.pos, g.badCaptures)
				g.badSorted = true
			}
			if g.idx < len(g.badCaptures) {
				m := g.badCaptures[g.idx]
				g.idx++
				return m, true
			}
			g.stage = stageDone
		default:
			return board.NoMove, false
		}
	}
}

func sortBySEE(pos *board.Position, moves []board.Move) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = pos.SEE(m)
	}
	insertionSortDesc(moves, scores)
}

func sortByHistory(mo *MoveOrderer, moves []board.Move) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = mo.historyOf(m)
	}
	insertionSortDesc(moves, scores)
}

// insertionSortDesc sorts moves by scores descending. Move lists at a
// single node rarely exceed a few dozen entries, so insertion sort beats
// a general-purpose sort on constant factors the way the teacher's
// selection sort does for the same reason.
func insertionSortDesc(moves []board.Move, scores []int) {
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for j >= 0 && scores[j] < s {
			moves[j+1] = moves[j]
			scores[j+1] = scores[j]
			j--
		}
		moves[j+1] = m
		scores[j+1] = s
	}
}
