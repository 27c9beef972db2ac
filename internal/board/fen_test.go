package board

import "testing"

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1bnr/pppp1ppp/8/4p3/4P2k/5N2/PPPP1PPP/RNBQKB1R w KQ - 2 4",
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := pos.ToFEN(); got != fen {
			t.Errorf("round trip mismatch: got %q, want %q", got, fen)
		}
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1", // only 7 fields worth of ranks
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); err == nil {
			t.Errorf("ParseFEN(%q): expected error, got nil", fen)
		}
	}
}

func TestComputeHashMatchesIncremental(t *testing.T) {
	pos := NewPosition()
	moves := []string{"e2e4", "e7e5", "g1f3", "b8c6"}

	for _, s := range moves {
		m, err := ParseMove(s, pos)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		pos.MakeMove(m)
		if got, want := pos.Hash, pos.ComputeHash(); got != want {
			t.Errorf("after %s: incremental hash %016x != recomputed %016x", s, got, want)
		}
		if got, want := pos.PawnKey, pos.ComputePawnKey(); got != want {
			t.Errorf("after %s: incremental pawn key %016x != recomputed %016x", s, got, want)
		}
	}
}

func TestEnPassantHashOnlyWhenCapturable(t *testing.T) {
	// d7d5 played against a position where no white pawn can capture en
	// passant: the hash must equal the hash of the same position reached
	// without any en passant square set.
	withEP, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/8/8/PPPPPPPP/RNBQKBNR w KQkq d6 0 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	withoutEP, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if withEP.Hash != withoutEP.Hash {
		t.Errorf("hash differs despite no pawn able to capture en passant: %016x vs %016x",
			withEP.Hash, withoutEP.Hash)
	}
}

func TestPawnKeyIncludesKingSquares(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/8/8/4K3/7k w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	before := pos.PawnKey

	m, err := ParseMove("e2e3", pos)
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	pos.MakeMove(m)

	if pos.PawnKey == before {
		t.Error("king move must change the pawn/king structure key")
	}
	if got, want := pos.PawnKey, pos.ComputePawnKey(); got != want {
		t.Errorf("incremental pawn key %016x != recomputed %016x", got, want)
	}
}
