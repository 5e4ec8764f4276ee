package board

// Perft counts leaf nodes of the legal move tree to the given depth. It is
// the standard cross-check for move generation and apply/undo correctness.
func Perft(p *Position, depth int) int {
	if depth <= 0 {
		return 1
	}

	moves := GetMovesBuffer()
	defer ReleaseMovesBuffer(moves)
	AppendPseudoLegalMoves(p, p.SideToMove, moves)

	total := 0
	for _, move := range *moves {
		if !p.Apply(move) {
			continue
		}
		if depth == 1 {
			total++
		} else {
			total += Perft(p, depth-1)
		}
		p.Undo()
	}
	return total
}

// PerftSplit returns the per-root-move leaf counts, keyed by the move's
// coordinate string. Useful for diffing against another engine's divide
// output when a perft total disagrees.
func PerftSplit(p *Position, depth int) map[string]int {
	result := map[string]int{}
	if depth <= 0 {
		return result
	}
	for _, move := range LegalMoves(p, p.SideToMove) {
		if !p.Apply(move) {
			continue
		}
		result[move.String()] = Perft(p, depth-1)
		p.Undo()
	}
	return result
}
