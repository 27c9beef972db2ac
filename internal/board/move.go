package board

import "fmt"

// Move is a move packed into 16 bits for cheap storage in move lists,
// killer slots, history tables, and transposition table entries:
//
//	bits 0-5:   from square (0-63)
//	bits 6-11:  to square (0-63)
//	bits 12-13: promotion piece (0=Knight, 1=Bishop, 2=Rook, 3=Queen)
//	bits 14-15: flags (0=normal, 1=promotion, 2=en passant, 3=castling)
//
// Decode against a Board to recover the full MoveInfo record (moving
// piece, captured piece, and so on) when that detail is needed.
type Move uint16

// Move flags.
const (
	FlagNormal    uint16 = 0 << 14
	FlagPromotion uint16 = 1 << 14
	FlagEnPassant uint16 = 2 << 14
	FlagCastling  uint16 = 3 << 14
)

// NoMove is the zero value, used as a sentinel for "no move".
const NoMove Move = 0

// NewMove creates a normal (non-promotion, non-castling, non-ep) move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move.
func NewPromotion(from, to Square, promo PieceType) Move {
	promoIdx := promo - Knight
	return Move(from) | Move(to)<<6 | Move(promoIdx)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling creates a castling move, encoded as the king's own movement.
func NewCastling(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagCastling)
}

// From returns the move's origin square.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the move's destination square.
func (m Move) To() Square { return Square((m >> 6) & 0x3F) }

// Flag returns the move's flag bits.
func (m Move) Flag() uint16 { return uint16(m) & 0xC000 }

// Promotion returns the promotion piece type; only meaningful if
// IsPromotion reports true.
func (m Move) Promotion() PieceType { return PieceType((m>>12)&3) + Knight }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m.Flag() == FlagPromotion }

// IsCastling reports whether m is a castling move.
func (m Move) IsCastling() bool { return m.Flag() == FlagCastling }

// IsEnPassant reports whether m is an en passant capture.
func (m Move) IsEnPassant() bool { return m.Flag() == FlagEnPassant }

// IsCapture reports whether m captures a piece on pos.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return !pos.IsEmpty(m.To())
}

// IsQuiet reports whether m is neither a capture nor a promotion on pos.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String returns long algebraic notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		promoChars := []byte{'n', 'b', 'r', 'q'}
		s += string(promoChars[m.Promotion()-Knight])
	}
	return s
}

// ParseMove parses a long algebraic move string against pos, resolving
// which flag (castling, en passant, promotion) applies from board state.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.PieceAt(from)
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastling(from, to), nil
	}
	if pt == Pawn && to == pos.EnPassant {
		return NewEnPassant(from, to), nil
	}
	return NewMove(from, to), nil
}

// MoveInfo is the fully decoded form of a Move: the compact record spec
// consumers (SAN-style reporting, PV display, engine tracing) want instead
// of re-deriving piece identity from board state by hand.
type MoveInfo struct {
	From      Square
	To        Square
	Piece     Piece
	Team      Color
	Captured  Piece
	Promotion PieceType
	EnPassant bool
	Castling  bool
}

// Decode resolves m against the current position into its full record.
// The packed Move alone only carries geometry; Decode fills in the piece
// identity and captured piece from board state.
func (p *Position) Decode(m Move) MoveInfo {
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)

	info := MoveInfo{
		From:      from,
		To:        to,
		Piece:     piece,
		Team:      piece.Color(),
		Promotion: NoPieceType,
		EnPassant: m.IsEnPassant(),
		Castling:  m.IsCastling(),
	}

	if m.IsPromotion() {
		info.Promotion = m.Promotion()
	}

	if m.IsEnPassant() {
		capSq := to
		if piece.Color() == White {
			capSq = to - 8
		} else {
			capSq = to + 8
		}
		info.Captured = p.PieceAt(capSq)
	} else {
		info.Captured = p.PieceAt(to)
	}

	return info
}

// MoveList is a fixed-capacity move buffer that avoids per-call allocation
// during move generation.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList returns an empty MoveList.
func NewMoveList() *MoveList { return &MoveList{} }

// Add appends m to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves currently in the list.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Set overwrites the move at index i.
func (ml *MoveList) Set(i int, m Move) { ml.moves[i] = m }

// Swap exchanges the moves at i and j, used by in-place move ordering.
func (ml *MoveList) Swap(i, j int) { ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i] }

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() { ml.count = 0 }

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the populated prefix of the list's backing array.
func (ml *MoveList) Slice() []Move { return ml.moves[:ml.count] }

// UndoInfo carries everything MakeMove mutates, for UnmakeMove to reverse
// without recomputing from scratch.
type UndoInfo struct {
	CapturedPiece  Piece
	CastlingRights CastlingRights
	EnPassant      Square
	HalfMoveClock  int
	Hash           uint64
	PawnKey        uint64
	Checkers       Bitboard
	Valid          bool
}
