package search

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/gambitchess/gambit/internal/board"
	"github.com/gambitchess/gambit/internal/eval"
	. "github.com/gambitchess/gambit/internal/helpers"
	"github.com/gambitchess/gambit/internal/transposition"
	"github.com/gambitchess/gambit/internal/zobrist"
)

// mateScore is the finite stand-in for checkmate inside the tree; it is
// reduced by the ply distance so nearer mates score higher.
const mateScore = 1_000_000.0

type Options struct {
	MaxDepth        int
	TimeLimit       time.Duration
	QuiescenceDepth int
	TableCapacity   int
	Evaluator       *eval.Evaluator
	Logger          Logger
}

const DefaultMaxDepth = 4
const DefaultTimeLimit = 5 * time.Second
const DefaultQuiescenceDepth = 6

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.TimeLimit <= 0 {
		o.TimeLimit = DefaultTimeLimit
	}
	if o.QuiescenceDepth <= 0 {
		o.QuiescenceDepth = DefaultQuiescenceDepth
	}
	if o.Evaluator == nil {
		o.Evaluator = eval.NewEvaluator()
	}
	if o.Logger == nil {
		o.Logger = &SilentLogger
	}
	return o
}

type Stats struct {
	NodesSearched     int
	QuiescenceNodes   int
	Cutoffs           int
	TranspositionHits int
	DeepestPly        int
}

func (s Stats) String() string {
	return fmt.Sprintf("%v nodes, %v quiescence, %v cutoffs, %v tt hits",
		humanize.Comma(int64(s.NodesSearched)),
		humanize.Comma(int64(s.QuiescenceNodes)),
		humanize.Comma(int64(s.Cutoffs)),
		humanize.Comma(int64(s.TranspositionHits)))
}

type Result struct {
	Move  board.Move
	Score float64
	Depth int
	Stats Stats
}

// Searcher runs iterative-deepening negamax with alpha-beta pruning,
// quiescence at the horizon, a transposition table, and killer/history move
// ordering. It is single-goroutine; the position handed to Search is mutated
// and fully restored.
type Searcher struct {
	options   Options
	evaluator *eval.Evaluator
	hasher    *zobrist.Hasher
	table     *transposition.Table
	history   *moveHistory
	logger    Logger

	stats    Stats
	deadline time.Time
	aborted  bool
}

func NewSearcher(options Options) *Searcher {
	options = options.withDefaults()
	return &Searcher{
		options:   options,
		evaluator: options.Evaluator,
		hasher:    zobrist.NewDefaultHasher(),
		table:     transposition.NewTable(options.TableCapacity),
		history:   newMoveHistory(),
		logger:    options.Logger,
	}
}

// ClearTables drops all cached search state: the transposition table, killer
// moves, and history scores.
func (s *Searcher) ClearTables() {
	s.table.Clear()
	s.history.reset()
}

func (s *Searcher) Stats() Stats {
	return s.stats
}

func (s *Searcher) TableStats() string {
	return s.table.StatsString()
}

// Search finds the best move for the side to move, deepening one ply at a
// time until MaxDepth or the time limit. The result always comes from the
// deepest fully completed iteration; a depth cut short by the clock is
// discarded. An error is returned only when the position has no legal moves.
func (s *Searcher) Search(p *board.Position) (Result, Error) {
	if !p.HasLegalMove(p.SideToMove) {
		return Result{}, Errorf("no legal moves in %v", p.Fen())
	}

	s.stats = Stats{}
	s.aborted = false
	s.deadline = time.Now().Add(s.options.TimeLimit)
	s.table.NextAge()

	result := Result{}
	found := false
	for depth := 1; depth <= s.options.MaxDepth; depth++ {
		score, move, completed := s.negamax(p, depth, 0, math.Inf(-1), math.Inf(1))
		if !completed || move.IsEmpty() {
			s.logger.Printf("depth %v abandoned at the time limit", depth)
			break
		}
		result = Result{Move: move.Value(), Score: score, Depth: depth, Stats: s.stats}
		found = true
		s.logger.Printf("depth %v: %v score %v (%v)", depth, move.Value(), score, s.stats)
	}
	if !found {
		// The clock expired inside depth 1. Finish it without a deadline but
		// also without quiescence, so the overrun stays proportional to the
		// root move count.
		s.deadline = time.Time{}
		s.aborted = false
		qdepth := s.options.QuiescenceDepth
		s.options.QuiescenceDepth = 0
		score, move, _ := s.negamax(p, 1, 0, math.Inf(-1), math.Inf(1))
		s.options.QuiescenceDepth = qdepth
		result = Result{Move: move.Value(), Score: score, Depth: 1, Stats: s.stats}
	}
	result.Stats = s.stats
	return result, NilError
}

func (s *Searcher) outOfTime() bool {
	if s.aborted {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.aborted = true
	}
	return s.aborted
}

// negamax returns the score of the position from the side to move's
// perspective, the best move found, and whether the subtree finished before
// the deadline. Scores from unfinished subtrees must not be trusted.
func (s *Searcher) negamax(p *board.Position, depth int, ply int, alpha float64, beta float64) (float64, Optional[board.Move], bool) {
	if s.outOfTime() {
		return 0, Empty[board.Move](), false
	}
	s.stats.NodesSearched++
	if ply > s.stats.DeepestPly {
		s.stats.DeepestPly = ply
	}

	hash := s.hasher.Hash(p)
	hashMove := Empty[board.Move]()
	if entry, ok := s.table.Get(hash); ok {
		hashMove = Some(entry.Move)
		if entry.Depth >= depth && ply > 0 {
			cached := scoreFromTable(entry.Score, ply)
			usable := false
			switch entry.Bound {
			case transposition.ExactBound:
				usable = true
			case transposition.LowerBound:
				usable = cached >= beta
			case transposition.UpperBound:
				usable = cached <= alpha
			}
			if usable {
				s.stats.TranspositionHits++
				return cached, hashMove, true
			}
		}
	}

	c := p.SideToMove
	moves := board.GetMovesBuffer()
	defer board.ReleaseMovesBuffer(moves)
	board.AppendLegalMoves(p, c, moves)

	if len(*moves) == 0 {
		if p.IsInCheck(c) {
			return -(mateScore - float64(ply)), Empty[board.Move](), true
		}
		return 0, Empty[board.Move](), true
	}

	if depth <= 0 {
		// Quiescence is fail-soft over the inherited window, so its score is
		// only exact when it landed strictly inside (alpha, beta).
		score, completed := s.quiescence(p, ply, s.options.QuiescenceDepth, alpha, beta)
		if completed {
			s.table.Put(hash, 0, scoreToTable(score, ply), boundForWindow(score, alpha, beta), board.Move{})
		}
		return score, Empty[board.Move](), completed
	}

	s.history.orderMoves(p, *moves, hashMove, ply)

	origAlpha := alpha
	best := math.Inf(-1)
	bestMove := Empty[board.Move]()
	for _, move := range *moves {
		if !p.Apply(move) {
			continue
		}
		score, _, completed := s.negamax(p, depth-1, ply+1, -beta, -alpha)
		p.Undo()
		if !completed {
			return 0, Empty[board.Move](), false
		}
		score = -score

		if score > best {
			best = score
			bestMove = Some(move)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			s.history.recordCutoff(move, depth, ply)
			break
		}
	}

	storedMove := board.Move{}
	if bestMove.HasValue() {
		storedMove = bestMove.Value()
	}
	s.table.Put(hash, depth, scoreToTable(best, ply), boundForWindow(best, origAlpha, beta), storedMove)

	return best, bestMove, true
}

func boundForWindow(score float64, alpha float64, beta float64) transposition.Bound {
	if score <= alpha {
		return transposition.UpperBound
	}
	if score >= beta {
		return transposition.LowerBound
	}
	return transposition.ExactBound
}

// Scores at or beyond this magnitude encode a mate distance.
const mateThreshold = mateScore - 2*maxPly

// Mate scores are measured from the root, but the same position can be
// reached at different plies. The table therefore holds them relative to the
// node that stored them; these two convert on the way in and out.
func scoreToTable(score float64, ply int) float64 {
	if score >= mateThreshold {
		return score + float64(ply)
	}
	if score <= -mateThreshold {
		return score - float64(ply)
	}
	return score
}

func scoreFromTable(score float64, ply int) float64 {
	if score >= mateThreshold {
		return score - float64(ply)
	}
	if score <= -mateThreshold {
		return score + float64(ply)
	}
	return score
}

// quiescence keeps resolving captures past the horizon so the evaluation is
// never taken in the middle of an exchange. The side to move may stand pat.
func (s *Searcher) quiescence(p *board.Position, ply int, qdepth int, alpha float64, beta float64) (float64, bool) {
	if s.outOfTime() {
		return 0, false
	}
	s.stats.QuiescenceNodes++

	c := p.SideToMove
	standPat := s.evaluator.Evaluate(p, c)
	if math.IsInf(standPat, -1) {
		return -(mateScore - float64(ply)), true
	}
	if math.IsInf(standPat, 1) {
		return mateScore - float64(ply), true
	}

	if standPat >= beta {
		return standPat, true
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth <= 0 {
		return alpha, true
	}

	captures := board.GetMovesBuffer()
	defer board.ReleaseMovesBuffer(captures)
	board.AppendLegalCaptures(p, c, captures)
	s.history.orderMoves(p, *captures, Empty[board.Move](), ply)

	best := standPat
	for _, move := range *captures {
		if !p.Apply(move) {
			continue
		}
		score, completed := s.quiescence(p, ply+1, qdepth-1, -beta, -alpha)
		p.Undo()
		if !completed {
			return 0, false
		}
		score = -score

		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.stats.Cutoffs++
			break
		}
	}
	return best, true
}
