package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gambitchess/gambit/internal/board"
	. "github.com/gambitchess/gambit/internal/helpers"
)

func position(t *testing.T, fen string) *board.Position {
	p, err := board.PositionFromFen(fen)
	require.True(t, IsNil(err), "%v", err)
	return p
}

func TestEvaluateIsAntisymmetric(t *testing.T) {
	e := NewEvaluator()
	for _, fen := range []string{
		board.StartingFen,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	} {
		p := position(t, fen)
		white := e.Evaluate(p, board.White)
		black := e.Evaluate(p, board.Black)
		assert.InDelta(t, -black, white, 1e-9, "%v", fen)
	}
}

func TestEvaluateStartingPosition(t *testing.T) {
	e := NewEvaluator()
	p := position(t, board.StartingFen)

	// Everything cancels except the side-to-move tempo bonus.
	assert.InDelta(t, 5.0, e.Evaluate(p, board.White), 1e-9)
	assert.InDelta(t, -5.0, e.Evaluate(p, board.Black), 1e-9)
}

func TestEvaluateCheckmateIsInfinite(t *testing.T) {
	e := NewEvaluator()
	p := position(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1")
	require.True(t, p.IsCheckmate(board.Black))

	assert.True(t, math.IsInf(e.Evaluate(p, board.Black), -1))
	assert.True(t, math.IsInf(e.Evaluate(p, board.White), 1))
}

func TestEvaluateStalemateIsZero(t *testing.T) {
	e := NewEvaluator()
	p := position(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.True(t, p.IsStalemate(board.Black))

	assert.Equal(t, 0.0, e.Evaluate(p, board.Black))
	assert.Equal(t, 0.0, e.Evaluate(p, board.White))
}

func TestMaterialTerm(t *testing.T) {
	e := NewEvaluator()
	p := position(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	b := e.Breakdown(p, board.White)
	assert.Equal(t, 500.0, b.Material)
	assert.Equal(t, -500.0, e.Breakdown(p, board.Black).Material)
}

func TestMaterialDominatesEvaluation(t *testing.T) {
	e := NewEvaluator()
	p := position(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.Greater(t, e.Evaluate(p, board.White), 400.0)
}

func TestKingSafetyTerm(t *testing.T) {
	e := NewEvaluator()

	// Full shield (+30) but a centered king early in the game (-20).
	p := position(t, board.StartingFen)
	assert.Equal(t, 10.0, e.Breakdown(p, board.White).KingSafety)

	// Castled short: shield on f2/g2/h2 (+30) plus the castling bonus (+30).
	p = position(t, "rnbq1rk1/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1RK1 w - - 0 1")
	assert.Equal(t, 60.0, e.Breakdown(p, board.White).KingSafety)
	assert.Equal(t, 60.0, e.Breakdown(p, board.Black).KingSafety)
}

func TestPawnStructureTerm(t *testing.T) {
	e := NewEvaluator()

	// Balanced starting pawns score zero.
	p := position(t, board.StartingFen)
	assert.Equal(t, 0.0, e.Breakdown(p, board.White).PawnStructure)

	// A lone pawn on a4: passed (+40) but isolated (-15).
	p = position(t, "4k3/8/8/8/P7/8/8/4K3 w - - 0 1")
	assert.Equal(t, 25.0, e.Breakdown(p, board.White).PawnStructure)

	// Doubled rook-file pawns: both passed (+40, +30), both doubled (-10
	// each), both isolated (-15 each).
	p = position(t, "4k3/8/8/8/P7/P7/8/4K3 w - - 0 1")
	assert.Equal(t, 20.0, e.Breakdown(p, board.White).PawnStructure)

	// d4 passed (+40) and supported by e3 (+5); e3 passed (+30). Neither is
	// isolated or doubled.
	p = position(t, "4k3/8/8/8/3P4/4P3/8/4K3 w - - 0 1")
	assert.Equal(t, 75.0, e.Breakdown(p, board.White).PawnStructure)
}

func TestMobilityTerm(t *testing.T) {
	e := NewEvaluator()
	p := position(t, board.StartingFen)
	// Two knights with two squares each, weighted x2; sliders are boxed in.
	assert.Equal(t, 8.0, e.Breakdown(p, board.White).Mobility)

	p = position(t, "4k3/8/8/8/3Q4/8/8/4K3 w - - 0 1")
	assert.Equal(t, 27*0.5, e.Breakdown(p, board.White).Mobility)
}

func TestCenterControlTerm(t *testing.T) {
	e := NewEvaluator()
	// The d4 pawn occupies one center square (+10) and attacks e5 (+2).
	p := position(t, "4k3/8/8/8/3P4/8/8/4K3 w - - 0 1")
	assert.Equal(t, 12.0, e.Breakdown(p, board.White).CenterControl)
	assert.Equal(t, -5.0+(-2.0), e.Breakdown(p, board.Black).CenterControl)
}

func TestDevelopmentTerm(t *testing.T) {
	e := NewEvaluator()

	p := position(t, board.StartingFen)
	assert.Equal(t, -20.0, e.Breakdown(p, board.White).Development)

	// Castled with both knights developed: two bishops home (-10) plus the
	// castling bonus (+20).
	p = position(t, "rnbq1rk1/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1RK1 w - - 0 1")
	assert.Equal(t, 10.0, e.Breakdown(p, board.White).Development)
}

func TestDevelopmentGoesQuietAfterOpening(t *testing.T) {
	e := NewEvaluator()
	p := position(t, board.StartingFen)
	line := []string{
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
		"g1f3", "g8f6", "f3g1", "f6g8",
	}
	for _, s := range line {
		move, err := p.MoveFromString(s)
		require.True(t, IsNil(err))
		require.True(t, p.Apply(move))
	}
	require.Greater(t, p.PlyCount(), developmentPlies)
	assert.Equal(t, 0.0, e.Breakdown(p, board.White).Development)
}

func TestTempoTerm(t *testing.T) {
	e := NewEvaluator()
	p := position(t, board.StartingFen)
	assert.Equal(t, 5.0, e.Breakdown(p, board.White).Tempo)
	assert.Equal(t, 0.0, e.Breakdown(p, board.Black).Tempo)

	// All four pieces active: 5 (to move) + 4/4 * 10.
	p = position(t, "8/4k3/8/8/3QK3/8/8/8 w - - 0 1")
	assert.Equal(t, 15.0, e.Breakdown(p, board.White).Tempo)
	assert.Equal(t, 10.0, e.Breakdown(p, board.Black).Tempo)
}

func TestWeightsScaleTerms(t *testing.T) {
	weights := Weights{Material: 2.0}
	e := NewEvaluatorWithWeights(weights)
	p := position(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.Equal(t, 1000.0, e.Evaluate(p, board.White))

	e.ResetWeights()
	assert.Equal(t, DefaultWeights(), e.Weights())

	e.UpdateWeights(weights)
	assert.Equal(t, weights, e.Weights())
}
