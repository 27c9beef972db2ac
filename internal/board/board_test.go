package board

import "testing"

func TestRepetitionDrawAfterThreeOccurrences(t *testing.T) {
	b := NewBoard()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

	// Each full cycle returns to the starting position; the third time it
	// recurs (after two cycles) the game is drawn by repetition.
	for cycle := 0; cycle < 2; cycle++ {
		for _, s := range shuffle {
			m, err := ParseMove(s, b.Position())
			if err != nil {
				t.Fatalf("ParseMove(%q): %v", s, err)
			}
			b.Push(m)
		}
	}

	if !b.IsRepetitionDraw() {
		t.Error("expected repetition draw after the position recurred a third time")
	}
}

func TestNoRepetitionDrawAfterIrreversibleMove(t *testing.T) {
	b := NewBoard()
	for _, s := range []string{"g1f3", "g8f6", "f3g1"} {
		m, err := ParseMove(s, b.Position())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		b.Push(m)
	}
	// A pawn push is irreversible and should reset the repetition window.
	m, err := ParseMove("e2e4", b.Position())
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	b.Push(m)

	if b.IsRepetitionDraw() {
		t.Error("repetition window should have been cleared by the pawn push")
	}
}

func TestPushPopRestoresPosition(t *testing.T) {
	b := NewBoard()
	before := b.Position().Hash

	m, err := ParseMove("e2e4", b.Position())
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	b.Push(m)
	if b.Position().Hash == before {
		t.Fatal("hash did not change after push")
	}

	b.Pop()
	if b.Position().Hash != before {
		t.Errorf("hash after pop = %016x, want %016x", b.Position().Hash, before)
	}
}

func TestMirrorNegatesMaterialAndFlipsSide(t *testing.T) {
	pos, err := ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	mirrored := pos.Mirror()

	if mirrored.SideToMove != pos.SideToMove.Other() {
		t.Error("mirror must flip side to move")
	}
	if mirrored.Material() != -pos.Material() {
		t.Errorf("mirror material = %d, want %d", mirrored.Material(), -pos.Material())
	}
	if mirrored.PieceAt(pos.KingSquare[White].Mirror()).Type() != King ||
		mirrored.PieceAt(pos.KingSquare[White].Mirror()).Color() != Black {
		t.Error("white king should map to a black king on the mirrored square")
	}
}

func TestRootHistoryStopsAtIrreversibleMove(t *testing.T) {
	b := NewBoard()
	for _, s := range []string{"e2e4", "e7e5", "g1f3"} {
		m, err := ParseMove(s, b.Position())
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		b.Push(m)
	}

	// The window includes the irreversible e7e5 reply (the last position
	// before which nothing can recur) plus the reversible knight move.
	hashes := b.RootHistory()
	if len(hashes) != 2 {
		t.Errorf("RootHistory length = %d, want 2", len(hashes))
	}
}
