package board

import "testing"

func TestCheckmate(t *testing.T) {
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if !pos.IsCheckmate() {
		t.Error("expected checkmate, got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate position reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if pos.IsCheckmate() {
		t.Error("king can capture the rook, expected not checkmate")
	}
}

func TestStalemate(t *testing.T) {
	// Black king on a8, no black pieces, white king b6 and queen c7: a8 is
	// not attacked but every king move is, and there's no other piece to
	// move.
	pos, err := ParseFEN("k7/2Q5/1K6/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if !pos.IsStalemate() {
		t.Error("expected stalemate, got false")
	}
	if pos.InCheck() {
		t.Error("stalemate position must not be in check")
	}
}

func TestDoubleCheckOnlyKingMovesLegal(t *testing.T) {
	// White king e1, black rook e8 (check along file) and black bishop
	// giving a simultaneous diagonal check: any legal reply must move the
	// king.
	pos, err := ParseFEN("4r3/8/8/8/8/2b5/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !pos.InCheck() {
		t.Fatal("expected position to be in check")
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if pos.PieceAt(m.From()).Type() != King {
			t.Errorf("double check: non-king move %v reported legal", m)
		}
	}
}
