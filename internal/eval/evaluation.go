package eval

import (
	"math"

	"github.com/gambitchess/gambit/internal/board"
	. "github.com/gambitchess/gambit/internal/helpers"
)

// Evaluator scores positions as a weighted sum of eight terms: material,
// piece placement, king safety, pawn structure, mobility, center control,
// development, and tempo. Scores are centipawn-scaled and antisymmetric:
// Evaluate(p, c) == -Evaluate(p, other(c)).
type Evaluator struct {
	weights Weights
}

func NewEvaluator() *Evaluator {
	return &Evaluator{weights: DefaultWeights()}
}

func NewEvaluatorWithWeights(weights Weights) *Evaluator {
	return &Evaluator{weights: weights}
}

func (e *Evaluator) Weights() Weights {
	return e.weights
}

func (e *Evaluator) UpdateWeights(weights Weights) {
	e.weights = weights
}

func (e *Evaluator) ResetWeights() {
	e.weights = DefaultWeights()
}

// Evaluate scores the position for `c`. Checkmate against `c` is -Inf,
// checkmate delivered by `c` is +Inf, and a stalemate for either side is an
// exact 0. Larger is better for `c`.
func (e *Evaluator) Evaluate(p *board.Position, c board.Color) float64 {
	other := c.Other()
	if p.IsCheckmate(c) {
		return math.Inf(-1)
	}
	if p.IsCheckmate(other) {
		return math.Inf(1)
	}
	if p.IsStalemate(c) || p.IsStalemate(other) {
		return 0
	}

	w := e.weights
	// Material and placement are computed own-minus-opponent already; the
	// remaining terms are one-sided and get differenced here to keep the
	// total antisymmetric.
	return materialScore(p, c)*w.Material +
		positionScore(p, c)*w.Position +
		diff(kingSafetyScore, p, c)*w.KingSafety +
		diff(pawnStructureScore, p, c)*w.PawnStructure +
		diff(mobilityScore, p, c)*w.Mobility +
		diff(centerControlScore, p, c)*w.CenterControl +
		diff(developmentScore, p, c)*w.Development +
		diff(tempoScore, p, c)*w.Tempo
}

// Breakdown reports each term's raw, unweighted value for `c` (material and
// placement as own-minus-opponent, the rest one-sided). Intended for
// analysis output and weight tuning, not for comparing against Evaluate.
type Breakdown struct {
	Material      float64 `json:"material"`
	Position      float64 `json:"position"`
	KingSafety    float64 `json:"king_safety"`
	PawnStructure float64 `json:"pawn_structure"`
	Mobility      float64 `json:"mobility"`
	CenterControl float64 `json:"center_control"`
	Development   float64 `json:"development"`
	Tempo         float64 `json:"tempo"`
}

func (e *Evaluator) Breakdown(p *board.Position, c board.Color) Breakdown {
	return Breakdown{
		Material:      materialScore(p, c),
		Position:      positionScore(p, c),
		KingSafety:    kingSafetyScore(p, c),
		PawnStructure: pawnStructureScore(p, c),
		Mobility:      mobilityScore(p, c),
		CenterControl: centerControlScore(p, c),
		Development:   developmentScore(p, c),
		Tempo:         tempoScore(p, c),
	}
}

func diff(term func(*board.Position, board.Color) float64, p *board.Position, c board.Color) float64 {
	return term(p, c) - term(p, c.Other())
}

func forward(c board.Color) int {
	if c == board.White {
		return -1
	}
	return 1
}

func backRank(c board.Color) int {
	if c == board.White {
		return 7
	}
	return 0
}

func pawnRank(c board.Color) int {
	if c == board.White {
		return 6
	}
	return 1
}

func materialScore(p *board.Position, c board.Color) float64 {
	score := 0.0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == board.NoPiece {
				continue
			}
			if piece.Color() == c {
				score += MaterialValue(piece.Type())
			} else {
				score -= MaterialValue(piece.Type())
			}
		}
	}
	return score
}

func positionScore(p *board.Position, c board.Color) float64 {
	score := 0.0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == board.NoPiece {
				continue
			}
			value := pieceSquareValue(piece, board.Coord{File: file, Rank: rank})
			if piece.Color() == c {
				score += value
			} else {
				score -= value
			}
		}
	}
	return score
}

// openingPlies bounds the phase during which king centrality and development
// matter; beyond it those terms go quiet.
const openingPlies = 20
const developmentPlies = 30

func kingSafetyScore(p *board.Position, c board.Color) float64 {
	king := p.KingCoord(c)
	if king.IsEmpty() {
		return -1000
	}
	kingAt := king.Value()
	score := 0.0

	// Pawn shield: up to +10 per file for a friendly pawn one or two ranks
	// in front of the king.
	pawn := board.PieceForColor[c][board.Pawn]
	for _, df := range [3]int{-1, 0, 1} {
		file := kingAt.File + df
		if file < 0 || file > 7 {
			continue
		}
		for _, dr := range [2]int{1, 2} {
			shield := board.Coord{File: file, Rank: kingAt.Rank + dr*forward(c)}
			if shield.Valid() && p.At(shield) == pawn {
				score += 10
				break
			}
		}
	}

	// A king lingering on the central files early in the game is exposed.
	if p.PlyCount() < openingPlies && kingAt.File >= 2 && kingAt.File <= 5 {
		score -= 20
	}

	if isCastledSquare(kingAt, c) {
		score += 30
	}
	return score
}

func isCastledSquare(kingAt board.Coord, c board.Color) bool {
	if kingAt.Rank != backRank(c) {
		return false
	}
	return kingAt.File == 6 || kingAt.File == 2
}

func pawnStructureScore(p *board.Position, c board.Color) float64 {
	ownPawn := board.PieceForColor[c][board.Pawn]
	enemyPawn := board.PieceForColor[c.Other()][board.Pawn]

	var own, enemy []board.Coord
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			switch p.Board[rank][file] {
			case ownPawn:
				own = append(own, board.Coord{File: file, Rank: rank})
			case enemyPawn:
				enemy = append(enemy, board.Coord{File: file, Rank: rank})
			}
		}
	}

	score := 0.0
	for _, pawn := range own {
		onFile := 0
		adjacent := false
		for _, other := range own {
			if other.File == pawn.File {
				onFile++
			}
			if other.File == pawn.File-1 || other.File == pawn.File+1 {
				adjacent = true
			}
		}
		// Every pawn on a shared file pays the doubled penalty.
		if onFile > 1 {
			score -= 10 * float64(onFile-1)
		}
		if !adjacent {
			score -= 15
		}

		passed := true
		for _, other := range enemy {
			if AbsDiff(other.File, pawn.File) > 1 {
				continue
			}
			if (other.Rank-pawn.Rank)*forward(c) > 0 {
				passed = false
				break
			}
		}
		if passed {
			// The bonus grows as the pawn advances toward promotion.
			if c == board.White {
				score += 20 + float64(6-pawn.Rank)*10
			} else {
				score += 20 + float64(pawn.Rank-1)*10
			}
		}

		for _, df := range [2]int{-1, 1} {
			support := board.Coord{File: pawn.File + df, Rank: pawn.Rank - forward(c)}
			if support.Valid() && p.At(support) == ownPawn {
				score += 5
			}
		}
	}
	return score
}

var _mobilityWeights = [7]float64{
	0,
	0,   // pawn
	2,   // knight
	1.5, // bishop
	1,   // rook
	0.5, // queen
	0,   // king
}

func mobilityScore(p *board.Position, c board.Color) float64 {
	score := 0.0
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == board.NoPiece || piece.Color() != c {
				continue
			}
			weight := _mobilityWeights[piece.Type()]
			if weight == 0 {
				continue
			}
			score += weight * float64(p.MobilityCount(board.Coord{File: file, Rank: rank}))
		}
	}
	return score
}

var _centerSquares = [4]board.Coord{
	{File: 3, Rank: 3}, {File: 3, Rank: 4},
	{File: 4, Rank: 3}, {File: 4, Rank: 4},
}

func centerControlScore(p *board.Position, c board.Color) float64 {
	score := 0.0
	for _, center := range _centerSquares {
		occupant := p.At(center)
		if occupant != board.NoPiece {
			if occupant.Color() == c {
				score += 10
			} else {
				score -= 5
			}
			continue
		}

		// Empty center squares are scored by the attacker balance.
		net := 0
		for rank := 0; rank < 8; rank++ {
			for file := 0; file < 8; file++ {
				from := board.Coord{File: file, Rank: rank}
				piece := p.At(from)
				if piece == board.NoPiece || !p.CanAttack(from, center) {
					continue
				}
				if piece.Color() == c {
					net++
				} else {
					net--
				}
			}
		}
		score += float64(net) * 2
	}
	return score
}

func developmentScore(p *board.Position, c board.Color) float64 {
	if p.PlyCount() > developmentPlies {
		return 0
	}

	home := backRank(c)
	score := 0.0
	minorHomes := [4]struct {
		file  int
		piece board.PieceType
	}{
		{1, board.Knight}, {6, board.Knight},
		{2, board.Bishop}, {5, board.Bishop},
	}
	for _, h := range minorHomes {
		piece := p.At(board.Coord{File: h.file, Rank: home})
		if piece != board.NoPiece && piece.Type() == h.piece && piece.Color() == c {
			score -= 5
		}
	}

	if king := p.KingCoord(c); king.HasValue() && isCastledSquare(king.Value(), c) {
		score += 20
	}
	return score
}

func tempoScore(p *board.Position, c board.Color) float64 {
	score := 0.0
	if p.SideToMove == c {
		score += 5
	}

	active, total := 0, 0
	home := backRank(c)
	pawns := pawnRank(c)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == board.NoPiece || piece.Color() != c {
				continue
			}
			total++
			onStart := rank == home || (piece.Type() == board.Pawn && rank == pawns)
			if !onStart {
				active++
			}
		}
	}
	if total > 0 {
		score += float64(active) / float64(total) * 10
	}
	return score
}
