package board

import "testing"

func TestPinnedPieceCannotMoveOffLine(t *testing.T) {
	// White king e1, white bishop e2 pinned by black rook e8. The bishop
	// has pseudo-legal diagonal moves, none of which stay on the e-file.
	pos, err := ParseFEN("4r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pinned := pos.ComputePinned()
	if pinned&SquareBB(E2) == 0 {
		t.Fatal("expected bishop on e2 to be pinned")
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.From() == E2 {
			t.Errorf("pinned bishop has illegal move %v", m)
		}
	}
}

func TestPinnedRookCanMoveAlongPinLine(t *testing.T) {
	pos, err := ParseFEN("4r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	found := false
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.From() == E2 && m.To() == E8 {
			found = true
		}
	}
	if !found {
		t.Error("pinned rook should still be able to capture the pinning rook along the file")
	}
}

func TestSEEWinningCapture(t *testing.T) {
	// White pawn takes black queen, defended only by a king far away:
	// should read as a large material gain.
	pos, err := ParseFEN("4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(E4, D5)
	if see := pos.SEE(m); see != PieceValue[Queen] {
		t.Errorf("SEE = %d, want %d", see, PieceValue[Queen])
	}
}

func TestSEEDefendedCapture(t *testing.T) {
	// White pawn captures a knight defended by the c6 pawn: the pawn wins
	// the knight and is then recaptured, so the exchange nets the knight's
	// value minus the pawn's.
	pos, err := ParseFEN("4k3/8/2p5/3n4/4P3/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(E4, D5)
	want := PieceValue[Knight] - PieceValue[Pawn]
	if see := pos.SEE(m); see != want {
		t.Errorf("SEE = %d, want %d", see, want)
	}
}

func TestGivesCheck(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/4Q3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	m := NewMove(E2, E7)
	if !pos.GivesCheck(m) {
		t.Error("queen move to e7 should give check to king on e8")
	}
}

func TestInsufficientMaterialSignatures(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		want bool
	}{
		{"KvK", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"KNvK", "4k3/8/8/8/8/8/8/3NK3 w - - 0 1", true},
		{"KBvK", "4k3/8/8/8/8/8/8/3BK3 w - - 0 1", true},
		{"KNNvK", "4k3/8/8/8/8/8/8/2NNK3 w - - 0 1", true},
		{"KBvKB same colour", "2b1k3/8/8/8/8/8/8/3BK3 w - - 0 1", true},
		{"KBvKB opposite colour", "3bk3/8/8/8/8/8/8/3BK3 w - - 0 1", false},
		{"KRvK not a draw", "4k3/8/8/8/8/8/8/3RK3 w - - 0 1", false},
		{"KQvK not a draw", "4k3/8/8/8/8/8/8/3QK3 w - - 0 1", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := pos.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCastlingThroughCheckIsIllegal(t *testing.T) {
	// Black rook on d4 covers d1, the square the king must cross to reach
	// c1 on the queenside, so O-O-O must not be generated even though the
	// king itself isn't currently in check.
	pos, err := ParseFEN("4k3/8/8/8/3r4/8/8/R3K3 w Q - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.InCheck() {
		t.Fatal("test setup: king should not be in check")
	}
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.IsCastling() {
			t.Errorf("castling move %v should be illegal: king passes through an attacked square", m)
		}
	}
}
