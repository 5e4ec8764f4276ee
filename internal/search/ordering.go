package search

import (
	"sort"

	"github.com/gambitchess/gambit/internal/board"
	"github.com/gambitchess/gambit/internal/eval"
	. "github.com/gambitchess/gambit/internal/helpers"
)

const maxPly = 128

// moveHistory tracks killer moves and history scores across one search.
// Killers are the last two quiet moves that caused a cutoff at each ply;
// history rewards (from, to) squares that keep cutting off, weighted toward
// deep cutoffs.
type moveHistory struct {
	killers [maxPly][2]board.Move
	scores  map[fromTo]float64
}

type fromTo struct {
	from board.Coord
	to   board.Coord
}

func newMoveHistory() *moveHistory {
	return &moveHistory{scores: map[fromTo]float64{}}
}

func (h *moveHistory) reset() {
	h.killers = [maxPly][2]board.Move{}
	h.scores = map[fromTo]float64{}
}

func (h *moveHistory) recordCutoff(move board.Move, depth int, ply int) {
	if move.IsCapture {
		return
	}
	h.scores[fromTo{move.From, move.To}] += float64(depth * depth)
	if ply >= maxPly {
		return
	}
	if h.killers[ply][0] != move {
		h.killers[ply][1] = h.killers[ply][0]
		h.killers[ply][0] = move
	}
}

func (h *moveHistory) isKiller(move board.Move, ply int) bool {
	if ply >= maxPly {
		return false
	}
	return h.killers[ply][0] == move || h.killers[ply][1] == move
}

// victimValue is the material at stake on the destination square; an
// en-passant capture's victim is always a pawn.
func victimValue(p *board.Position, move board.Move) float64 {
	if move.IsEnPassant {
		return eval.MaterialValue(board.Pawn)
	}
	return eval.MaterialValue(p.At(move.To).Type())
}

// moveScore ranks moves in strict tiers: the hash move, then promotions,
// then captures (most valuable victim first, least valuable attacker as the
// tiebreak), then killers, then quiet moves by history score.
func (h *moveHistory) moveScore(p *board.Position, move board.Move, hashMove Optional[board.Move], ply int) float64 {
	if hashMove.HasValue() && move == hashMove.Value() {
		return 1_000_000
	}
	if move.Promotion.HasValue() {
		return 100_000 + eval.MaterialValue(move.Promotion.Value())
	}
	if move.IsCapture {
		// The attacker tiebreak uses the piece-type ordinal, not material,
		// so a king capture still sits inside the capture tier.
		return 10_000 + 10*victimValue(p, move) - float64(move.Piece)
	}
	score := h.scores[fromTo{move.From, move.To}]
	if h.isKiller(move, ply) {
		score += 5_000
	}
	return score
}

// orderMoves sorts best-first in moveScore's tiers: hash move, promotions,
// captures, killers, then quiet moves by history. The sort is stable so
// equal movers keep generation order and search stays deterministic.
func (h *moveHistory) orderMoves(p *board.Position, moves []board.Move, hashMove Optional[board.Move], ply int) {
	sort.SliceStable(moves, func(i int, j int) bool {
		return h.moveScore(p, moves[i], hashMove, ply) > h.moveScore(p, moves[j], hashMove, ply)
	})
}
