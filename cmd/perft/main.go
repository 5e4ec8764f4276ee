package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gambitchess/gambit/internal/board"
	. "github.com/gambitchess/gambit/internal/helpers"
)

func main() {
	fen := flag.String("fen", board.StartingFen, "position to count from")
	depth := flag.Int("depth", 5, "perft depth")
	parallel := flag.Bool("parallel", true, "split the root moves across goroutines")
	profileDir := flag.String("profile", "", "write a cpu profile to this directory")
	flag.Parse()

	logger := &DefaultLogger

	if *profileDir != "" {
		defer profile.Start(profile.ProfilePath(*profileDir)).Stop()
	}

	p, err := board.PositionFromFen(*fen)
	if !IsNil(err) {
		logger.Println(err)
		os.Exit(1)
	}

	if *depth <= 0 {
		fmt.Println("perft(0) = 1")
		return
	}

	start := time.Now()
	total := int64(0)

	moves := board.LegalMoves(p, p.SideToMove)
	bar := progressbar.Default(int64(len(moves)), "perft")

	if *parallel && *depth > 1 {
		var group errgroup.Group
		group.SetLimit(runtime.NumCPU())
		for _, move := range moves {
			move := move
			group.Go(func() error {
				child := p.Clone()
				if !child.Apply(move) {
					return fmt.Errorf("failed to apply %v", move)
				}
				atomic.AddInt64(&total, int64(board.Perft(child, *depth-1)))
				return bar.Add(1)
			})
		}
		if err := group.Wait(); err != nil {
			logger.Println(err)
			os.Exit(1)
		}
	} else {
		for _, move := range moves {
			if !p.Apply(move) {
				continue
			}
			total += int64(board.Perft(p, *depth-1))
			p.Undo()
			_ = bar.Add(1)
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("\nperft(%v) = %v in %v (%v nodes/sec)\n",
		*depth,
		humanize.Comma(total),
		elapsed,
		humanize.Comma(int64(float64(total)/elapsed.Seconds())))
}
