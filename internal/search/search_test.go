package search

import (
	"math"
	"testing"
	"time"

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

func TestSearchReturnsALegalMove(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 2})
	p := position(t, board.StartingFen)

	result, err := s.Search(p)
	require.True(t, IsNil(err), "%v", err)

	legal := board.LegalMoves(p, board.White)
	assert.Contains(t,
		MapSlice(legal, func(m board.Move) string { return m.String() }),
		result.Move.String())
	assert.Equal(t, 2, result.Depth)
	assert.Greater(t, result.Stats.NodesSearched, 0)

	// The position comes back untouched.
	assert.Equal(t, board.StartingFen, p.Fen())
}

func TestSearchFindsMateInOne(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 2})
	p := position(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")

	result, err := s.Search(p)
	require.True(t, IsNil(err))
	assert.Equal(t, "a1a8", result.Move.String())
	assert.Equal(t, mateScore-1, result.Score)
}

func TestSearchTakesAHangingQueen(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 3})
	p := position(t, "k7/8/8/3q4/8/8/3R4/K7 w - - 0 1")

	result, err := s.Search(p)
	require.True(t, IsNil(err))
	assert.Equal(t, "d2d5", result.Move.String())
	assert.Greater(t, result.Score, 300.0)
}

func TestSearchErrorsWithoutLegalMoves(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 2})

	// Stalemate.
	p := position(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	_, err := s.Search(p)
	assert.False(t, IsNil(err))

	// Checkmate.
	p = position(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 1 1")
	_, err = s.Search(p)
	assert.False(t, IsNil(err))
}

func TestSearchHonorsTheTimeLimit(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 20, TimeLimit: 50 * time.Millisecond})
	p := position(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	start := time.Now()
	result, err := s.Search(p)
	elapsed := time.Since(start)

	require.True(t, IsNil(err))
	assert.GreaterOrEqual(t, result.Depth, 1)
	assert.NotEqual(t, "", result.Move.String())
	// Allow slack for finishing depth 1 after the deadline.
	assert.Less(t, elapsed, 5*time.Second)
}

func TestSearchIsDeterministic(t *testing.T) {
	p := position(t, "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")

	first := NewSearcher(Options{MaxDepth: 3})
	a, err := first.Search(p)
	require.True(t, IsNil(err))

	second := NewSearcher(Options{MaxDepth: 3})
	b, err := second.Search(p)
	require.True(t, IsNil(err))

	assert.Equal(t, a.Move, b.Move)
	assert.Equal(t, a.Score, b.Score)
	assert.Equal(t, a.Stats.NodesSearched, b.Stats.NodesSearched)
}

func TestSearchUsesTheTranspositionTable(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 4})
	p := position(t, "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4")

	result, err := s.Search(p)
	require.True(t, IsNil(err))
	assert.Greater(t, result.Stats.TranspositionHits, 0)
	assert.Greater(t, result.Stats.QuiescenceNodes, 0)
	assert.Greater(t, result.Stats.Cutoffs, 0)
}

func TestClearTablesResetsCachedState(t *testing.T) {
	s := NewSearcher(Options{MaxDepth: 3})
	p := position(t, board.StartingFen)

	a, err := s.Search(p)
	require.True(t, IsNil(err))

	s.ClearTables()
	b, err := s.Search(p)
	require.True(t, IsNil(err))

	// With caches cleared the second search retraces the first.
	assert.Equal(t, a.Move, b.Move)
	assert.Equal(t, a.Score, b.Score)
}

func TestSearchPrefersMateOverStalemate(t *testing.T) {
	// Qc7 stalemates Black for a score of zero; Qc8 is mate. The search
	// must find the mate.
	s := NewSearcher(Options{MaxDepth: 3})
	p := position(t, "k7/8/1K6/8/8/8/2Q5/8 w - - 0 1")

	result, err := s.Search(p)
	require.True(t, IsNil(err))
	assert.Equal(t, "c2c8", result.Move.String())
	assert.Equal(t, mateScore-1, result.Score)
}

func TestCachedHorizonScoresRespectTheSearchWindow(t *testing.T) {
	// A narrow window lets quiescence stand-pat cut off below the position's
	// true value (White has a hanging queen to take). The cached entry must
	// carry a bound, not an exact score, so a later full-window visit of the
	// same position re-searches instead of returning the clipped value.
	p := position(t, "k7/8/8/3q4/8/8/3R4/K7 w - - 0 1")

	warm := NewSearcher(Options{MaxDepth: 2})
	_, _, completed := warm.negamax(p, 0, 1, -600, -500)
	require.True(t, completed)
	cached, _, completed := warm.negamax(p, 0, 1, math.Inf(-1), math.Inf(1))
	require.True(t, completed)

	fresh := NewSearcher(Options{MaxDepth: 2})
	want, _, completed := fresh.negamax(p, 0, 1, math.Inf(-1), math.Inf(1))
	require.True(t, completed)

	assert.Equal(t, want, cached)
	assert.Greater(t, cached, 300.0)
}

func TestMateScoreTableConversionIsPlyRelative(t *testing.T) {
	// A node at ply 2 sees mate at ply 3 (score mateScore-3). Stored, the
	// entry is one-ply-from-here; probed at ply 3 the same mate is one ply
	// away again, so it reads as mate at ply 4 from that root.
	score := mateScore - 3
	stored := scoreToTable(score, 2)
	assert.Equal(t, score, scoreFromTable(stored, 2))
	assert.Equal(t, mateScore-4, scoreFromTable(stored, 3))

	mated := -(mateScore - 3)
	stored = scoreToTable(mated, 2)
	assert.Equal(t, mated, scoreFromTable(stored, 2))
	assert.Equal(t, -(mateScore - 4), scoreFromTable(stored, 3))

	// Ordinary scores pass through untouched.
	assert.Equal(t, 123.5, scoreToTable(123.5, 7))
	assert.Equal(t, -123.5, scoreFromTable(-123.5, 7))
}

func TestExpiredClockStillYieldsADepthOneMove(t *testing.T) {
	// A deadline that expires before depth 1 completes falls back to one
	// bounded quiescence-free pass over the root moves.
	s := NewSearcher(Options{MaxDepth: 20, TimeLimit: time.Nanosecond})
	p := position(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")

	start := time.Now()
	result, err := s.Search(p)
	require.True(t, IsNil(err))

	assert.Equal(t, 1, result.Depth)
	legal := MapSlice(board.LegalMoves(p, board.White), func(m board.Move) string { return m.String() })
	assert.Contains(t, legal, result.Move.String())
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, DefaultQuiescenceDepth, s.options.QuiescenceDepth)
}

func TestMoveOrderingPrefersHighValueCaptures(t *testing.T) {
	h := newMoveHistory()
	p := position(t, "k2q4/8/8/8/8/8/8/K2R3n w - - 0 1")

	moves := board.LegalMoves(p, board.White)
	h.orderMoves(p, moves, Empty[board.Move](), 0)

	require.NotEmpty(t, moves)
	// Rook takes queen outranks rook takes knight, which outranks every
	// quiet move.
	assert.Equal(t, "d1d8", moves[0].String())
	assert.Equal(t, "d1h1", moves[1].String())
	assert.True(t, moves[0].IsCapture)
}

func TestKillerAndHistoryRecording(t *testing.T) {
	h := newMoveHistory()
	quiet := board.Move{
		From: board.Coord{File: 4, Rank: 6}, To: board.Coord{File: 4, Rank: 4},
		Piece: board.Pawn, Color: board.White,
	}

	h.recordCutoff(quiet, 3, 2)
	assert.True(t, h.isKiller(quiet, 2))
	assert.False(t, h.isKiller(quiet, 3))
	assert.Equal(t, 9.0, h.scores[fromTo{quiet.From, quiet.To}])

	// Captures are ordered by MVV-LVA already and never become killers.
	capture := quiet
	capture.IsCapture = true
	h.recordCutoff(capture, 5, 2)
	assert.False(t, h.isKiller(capture, 2))
	assert.Equal(t, 9.0, h.scores[fromTo{quiet.From, quiet.To}])

	h.reset()
	assert.False(t, h.isKiller(quiet, 2))
	assert.Empty(t, h.scores)
}
