package board

// IsLegal reports whether m is legal given pinned, the bitboard of the side
// to move's pieces pinned to their own king (see ComputePinned). Callers
// generating many moves from the same position should compute pinned once
// and pass it to every call rather than recomputing per move.
func (p *Position) IsLegal(m Move, pinned Bitboard) bool {
	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	ksq := p.KingSquare[us]

	if m.IsEnPassant() {
		// An en passant capture can expose the king along the fourth or
		// fifth rank once both pawns vanish from it, a case the pin
		// bitboard doesn't model. Rare enough that a make/unmake check
		// here is simpler than special-casing the rank scan.
		undo := p.MakeMove(m)
		if !undo.Valid {
			return false
		}
		attacked := p.IsSquareAttacked(ksq, them)
		p.UnmakeMove(m, undo)
		return !attacked
	}

	if from == ksq {
		if m.IsCastling() {
			return true // squares already vetted during generation
		}
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(to, them, occ) == 0
	}

	if checkers := p.Checkers; checkers != 0 {
		if checkers.PopCount() > 1 {
			return false // double check: only a king move can be legal
		}
		checkerSq := checkers.LSB()
		if to != checkerSq && !Between(checkerSq, ksq).IsSet(to) {
			return false
		}
	}

	if pinned&SquareBB(from) != 0 {
		return Aligned(ksq, from, to)
	}

	return true
}

// IsPseudoLegalMove reports whether m could plausibly belong to the
// pseudo-legal move list for p, without regenerating the whole list. Used
// to validate a move recovered from a transposition table entry or a
// packed killer slot before trusting it.
func (p *Position) IsPseudoLegalMove(m Move) bool {
	if m == NoMove {
		return false
	}
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return false
	}
	if !p.IsEmpty(to) && p.PieceAt(to).Color() == p.SideToMove {
		return false
	}

	ml := p.GeneratePseudoLegalMoves()
	return ml.Contains(m)
}

// GivesCheck reports whether making m would place the opponent in check.
// Used by search to decide whether a quiet move still deserves quiescence
// or extension treatment.
func (p *Position) GivesCheck(m Move) bool {
	undo := p.MakeMove(m)
	if !undo.Valid {
		return false
	}
	check := p.InCheck()
	p.UnmakeMove(m, undo)
	return check
}

// SEE returns the static exchange evaluation of m: the net material result
// (from the mover's perspective, in centipawns) of resolving every capture
// on the destination square in least-valuable-attacker order, assuming
// both sides recapture only when it's profitable to do so.
func (p *Position) SEE(m Move) int {
	from := m.From()
	to := m.To()

	attacker := p.PieceAt(from)
	if attacker == NoPiece {
		return 0
	}

	var capturedValue int
	if m.IsEnPassant() {
		capturedValue = PieceValue[Pawn]
	} else {
		victim := p.PieceAt(to)
		if victim == NoPiece {
			return 0
		}
		capturedValue = PieceValue[victim.Type()]
	}

	if m.IsPromotion() {
		capturedValue += PieceValue[m.Promotion()] - PieceValue[Pawn]
	}

	return p.seeSwap(to, from, attacker, capturedValue)
}

func (p *Position) seeSwap(target, excludeFrom Square, firstAttacker Piece, initialGain int) int {
	var gain [32]int
	d := 0
	gain[d] = initialGain

	occupied := p.AllOccupied &^ SquareBB(excludeFrom)
	attackerValue := PieceValue[firstAttacker.Type()]
	side := firstAttacker.Color().Other()

	for {
		d++
		gain[d] = attackerValue - gain[d-1]
		if gain[d] <= -gain[d-1] {
			break
		}

		attackerSq, attackerPiece := p.leastValuableAttacker(target, side, occupied)
		if attackerSq == NoSquare {
			break
		}

		occupied &^= SquareBB(attackerSq)
		attackerValue = PieceValue[attackerPiece.Type()]
		side = side.Other()
	}

	for d--; d > 0; d-- {
		gain[d-1] = -maxInt(-gain[d-1], gain[d])
	}

	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking target
// given occupied, recomputing slider attacks so that x-rayed attackers
// revealed mid-exchange are picked up.
func (p *Position) leastValuableAttacker(target Square, side Color, occupied Bitboard) (Square, Piece) {
	if attackers := p.Pieces[side][Pawn] & PawnAttacks(target, side.Other()) & occupied; attackers != 0 {
		return attackers.LSB(), NewPiece(Pawn, side)
	}
	if attackers := p.Pieces[side][Knight] & KnightAttacks(target) & occupied; attackers != 0 {
		return attackers.LSB(), NewPiece(Knight, side)
	}

	bishopAtk := BishopAttacks(target, occupied)
	if attackers := p.Pieces[side][Bishop] & bishopAtk & occupied; attackers != 0 {
		return attackers.LSB(), NewPiece(Bishop, side)
	}

	rookAtk := RookAttacks(target, occupied)
	if attackers := p.Pieces[side][Rook] & rookAtk & occupied; attackers != 0 {
		return attackers.LSB(), NewPiece(Rook, side)
	}

	if attackers := p.Pieces[side][Queen] & (bishopAtk | rookAtk) & occupied; attackers != 0 {
		return attackers.LSB(), NewPiece(Queen, side)
	}

	if attackers := p.Pieces[side][King] & KingAttacks(target) & occupied; attackers != 0 {
		return attackers.LSB(), NewPiece(King, side)
	}

	return NoSquare, NoPiece
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
