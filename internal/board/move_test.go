package board

import "testing"

func TestMovePackRoundTrip(t *testing.T) {
	cases := []Move{
		NewMove(E2, E4),
		NewPromotion(A7, A8, Queen),
		NewPromotion(H7, G8, Knight),
		NewEnPassant(D5, C6),
		NewCastling(E1, G1),
	}

	if cases[0].From() != E2 || cases[0].To() != E4 {
		t.Errorf("normal move decode: from=%v to=%v", cases[0].From(), cases[0].To())
	}
	if !cases[1].IsPromotion() || cases[1].Promotion() != Queen {
		t.Errorf("promotion decode failed: %v", cases[1])
	}
	if !cases[3].IsEnPassant() {
		t.Errorf("en passant flag lost in pack: %v", cases[3])
	}
	if !cases[4].IsCastling() {
		t.Errorf("castling flag lost in pack: %v", cases[4])
	}
}

func TestParseMoveResolvesSpecialFlags(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	m, err := ParseMove("e5d6", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !m.IsEnPassant() {
		t.Error("e5d6 should resolve to an en passant capture")
	}
}

func TestParseMoveResolvesPromotion(t *testing.T) {
	pos, err := ParseFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m, err := ParseMove("a7a8q", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if !m.IsPromotion() || m.Promotion() != Queen {
		t.Errorf("a7a8q should decode to a queen promotion, got %v", m)
	}
}

func TestDecodeRecoversCapturedPiece(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(E4, D5)
	info := pos.Decode(m)
	if info.Captured.Type() != Pawn || info.Captured.Color() != Black {
		t.Errorf("Decode: captured = %v, want black pawn", info.Captured)
	}
	if info.Piece.Type() != Pawn || info.Team != White {
		t.Errorf("Decode: moving piece = %v team %v, want white pawn", info.Piece, info.Team)
	}
}

func TestMoveStringFormat(t *testing.T) {
	if got := NewMove(E2, E4).String(); got != "e2e4" {
		t.Errorf("String() = %q, want %q", got, "e2e4")
	}
	if got := NewPromotion(A7, A8, Queen).String(); got != "a7a8q" {
		t.Errorf("String() = %q, want %q", got, "a7a8q")
	}
	if got := NoMove.String(); got != "0000" {
		t.Errorf("NoMove.String() = %q, want %q", got, "0000")
	}
}
