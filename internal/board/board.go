package board

// Board wraps a Position with the move and hash history needed to answer
// game-level draw questions that a single Position cannot: threefold
// repetition spans the whole game, not just the current search tree, so
// the history has to survive across searches rather than living on the
// call stack the way UndoInfo does.
type Board struct {
	pos     Position
	history []historyEntry
}

type historyEntry struct {
	hash          uint64
	halfMoveClock int
	move          Move
	undo          UndoInfo
	irreversible  bool
}

// NewBoard returns a Board at the standard starting position.
func NewBoard() *Board {
	pos := NewPosition()
	return &Board{pos: *pos, history: rootHistoryEntry(pos)}
}

// NewBoardFromFEN parses fen into a Board whose history starts at fen.
func NewBoardFromFEN(fen string) (*Board, error) {
	pos, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Board{pos: *pos, history: rootHistoryEntry(pos)}, nil
}

// rootHistoryEntry seeds history with the starting position itself so that
// a repetition spanning the game root (ply 0) counts correctly: without
// it, a position that recurs at ply 0 and twice more afterward would only
// be seen to repeat twice, not three times.
func rootHistoryEntry(pos *Position) []historyEntry {
	return []historyEntry{{hash: pos.Hash, irreversible: true}}
}

// Position returns the current position. The returned pointer aliases the
// Board's internal state; callers must not retain it across a Push/Pop.
func (b *Board) Position() *Position { return &b.pos }

// Decode resolves a packed Move against the current position, recovering
// the full move record (moving piece, team, captured piece, and derived
// flags) that the compact encoding leaves implicit.
func (b *Board) Decode(m Move) MoveInfo { return b.pos.Decode(m) }

// Push makes m and records it in history for later repetition lookup and
// Pop. Pawn moves, captures, and castling clear the repetition window
// since they're irreversible: positions before them can never recur.
func (b *Board) Push(m Move) {
	piece := b.pos.PieceAt(m.From())
	irreversible := piece.Type() == Pawn || m.IsCapture(&b.pos) || m.IsCastling()

	undo := b.pos.MakeMove(m)
	b.history = append(b.history, historyEntry{
		hash:          b.pos.Hash,
		halfMoveClock: b.pos.HalfMoveClock,
		move:          m,
		undo:          undo,
		irreversible:  irreversible,
	})
}

// Pop reverses the most recent Push. It is a no-op at the game root, since
// the root's synthetic history entry carries no move to unmake.
func (b *Board) Pop() {
	if len(b.history) <= 1 {
		return
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	b.pos.UnmakeMove(last.move, last.undo)
}

// Len returns the number of moves played since the Board was created.
func (b *Board) Len() int { return len(b.history) - 1 }

// IsRepetitionDraw reports whether the current position has occurred
// twice before since the last irreversible move (pawn move, capture, or
// castle), making this occurrence the third and a legal claim under the
// threefold repetition rule. This walks the Board's full game history,
// unlike a search-local repetition check which only sees positions
// reached within the current search tree (see RootHistory for that case).
func (b *Board) IsRepetitionDraw() bool {
	if len(b.history) == 0 {
		return false
	}
	// The current position is itself b.history[len-1]; start one entry
	// before it so a lone trivial self-match doesn't get counted as a
	// repetition. Two further matches among earlier entries means the
	// position has now occurred three times in total.
	target := b.pos.Hash
	count := 0
	for i := len(b.history) - 2; i >= 0; i-- {
		e := b.history[i]
		if e.hash == target {
			count++
			if count >= 2 {
				return true
			}
		}
		if e.irreversible {
			break
		}
	}
	return false
}

// RootHistory returns the Zobrist hashes of every position since the last
// irreversible move, oldest first. Search passes this to its in-tree
// repetition check so that a position repeated once on the path from the
// game root plus once more within the search tree is still recognized as
// a draw, without the search needing its own copy of the whole game log.
func (b *Board) RootHistory() []uint64 {
	hashes := make([]uint64, 0, len(b.history))
	for i := len(b.history) - 1; i >= 0; i-- {
		e := b.history[i]
		hashes = append(hashes, e.hash)
		if e.irreversible {
			break
		}
	}
	for i, j := 0, len(hashes)-1; i < j; i, j = i+1, j-1 {
		hashes[i], hashes[j] = hashes[j], hashes[i]
	}
	return hashes
}

// IsDraw reports whether the current position is a draw by any rule: rule
//50, insufficient material, repetition, or stalemate.
func (b *Board) IsDraw() bool {
	return b.pos.IsDrawByRule50OrMaterial() || b.IsRepetitionDraw() || b.pos.IsStalemate()
}

// Mirror returns a new Position with colors swapped and the board flipped
// vertically: White's pieces become Black's and vice versa, square s
// becomes s.Mirror(), and the side to move is swapped too. Used to verify
// evaluation symmetry: a side-to-move-relative evaluation gives a position
// and its mirror equal scores.
func (p *Position) Mirror() *Position {
	mirrored := &Position{
		SideToMove:     p.SideToMove.Other(),
		EnPassant:      NoSquare,
		HalfMoveClock:  p.HalfMoveClock,
		FullMoveNumber: p.FullMoveNumber,
	}
	mirrored.KingSquare[White] = NoSquare
	mirrored.KingSquare[Black] = NoSquare

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				mirrored.setPiece(NewPiece(pt, c.Other()), sq.Mirror())
			}
		}
	}

	if p.EnPassant != NoSquare {
		mirrored.EnPassant = p.EnPassant.Mirror()
	}

	if p.CastlingRights&WhiteKingSideCastle != 0 {
		mirrored.CastlingRights |= BlackKingSideCastle
	}
	if p.CastlingRights&WhiteQueenSideCastle != 0 {
		mirrored.CastlingRights |= BlackQueenSideCastle
	}
	if p.CastlingRights&BlackKingSideCastle != 0 {
		mirrored.CastlingRights |= WhiteKingSideCastle
	}
	if p.CastlingRights&BlackQueenSideCastle != 0 {
		mirrored.CastlingRights |= WhiteQueenSideCastle
	}

	mirrored.updateOccupied()
	mirrored.findKings()
	mirrored.Hash = mirrored.ComputeHash()
	mirrored.PawnKey = mirrored.ComputePawnKey()

	return mirrored
}
