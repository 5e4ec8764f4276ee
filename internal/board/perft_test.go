package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPerftStartingPosition(t *testing.T) {
	p := mustPosition(t, StartingFen)
	assert.Equal(t, 20, Perft(p, 1))
	assert.Equal(t, 400, Perft(p, 2))
	assert.Equal(t, 8902, Perft(p, 3))
	assert.Equal(t, StartingFen, p.Fen())
}

func TestPerftKiwipete(t *testing.T) {
	// Position 2 from the chessprogramming wiki perft results.
	p := mustPosition(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	assert.Equal(t, 48, Perft(p, 1))
	assert.Equal(t, 2039, Perft(p, 2))
}

func TestPerftEnPassantAndPromotion(t *testing.T) {
	// Position 3 from the chessprogramming wiki, heavy on en passant.
	p := mustPosition(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	assert.Equal(t, 14, Perft(p, 1))
	assert.Equal(t, 191, Perft(p, 2))
	assert.Equal(t, 2812, Perft(p, 3))

	// Position 4, promotion-heavy.
	p = mustPosition(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1")
	assert.Equal(t, 6, Perft(p, 1))
	assert.Equal(t, 264, Perft(p, 2))
}

func TestPerftSplitSumsToTotal(t *testing.T) {
	p := mustPosition(t, StartingFen)
	split := PerftSplit(p, 2)
	assert.Equal(t, 20, len(split))
	total := 0
	for _, count := range split {
		total += count
	}
	assert.Equal(t, 400, total)
}
