package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/gambitchess/gambit/internal/board"
	"github.com/gambitchess/gambit/internal/eval"
	. "github.com/gambitchess/gambit/internal/helpers"
	"github.com/gambitchess/gambit/internal/search"
)

func main() {
	fen := flag.String("fen", board.StartingFen, "position to analyze")
	depth := flag.Int("depth", search.DefaultMaxDepth, "maximum search depth")
	limit := flag.Duration("time", search.DefaultTimeLimit, "search time limit")
	weightsPath := flag.String("weights", "", "evaluation weights json file")
	flag.Parse()

	logger := &DefaultLogger

	p, err := board.PositionFromFen(*fen)
	if !IsNil(err) {
		logger.Println(err)
		os.Exit(1)
	}

	weights := eval.DefaultWeights()
	if *weightsPath != "" {
		weights, err = eval.LoadWeights(*weightsPath)
		if !IsNil(err) {
			logger.Println(err)
			os.Exit(1)
		}
	}
	evaluator := eval.NewEvaluatorWithWeights(weights)

	fmt.Println(p.String())
	fmt.Println()
	fmt.Printf("static eval for %v: %v\n", p.SideToMove, evaluator.Evaluate(p, p.SideToMove))
	spew.Dump(evaluator.Breakdown(p, p.SideToMove))

	searcher := search.NewSearcher(search.Options{
		MaxDepth:  *depth,
		TimeLimit: *limit,
		Evaluator: evaluator,
		Logger:    logger,
	})
	result, err := searcher.Search(p)
	if !IsNil(err) {
		logger.Println(err)
		os.Exit(1)
	}

	fmt.Printf("best move %v (depth %v, score %v)\n", result.Move, result.Depth, result.Score)
	fmt.Println(result.Stats)
	fmt.Println(searcher.TableStats())
}
