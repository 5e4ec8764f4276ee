package zobrist

import (
	"math/rand"

	"github.com/gambitchess/gambit/internal/board"
)

// DefaultSeed keeps hashes stable across runs so transposition tables and
// tests behave the same everywhere.
const DefaultSeed = 376856915

// Hasher owns one set of Zobrist keys. Two hashers built from the same seed
// produce identical hashes; the transposition table assumes a single hasher
// for its lifetime.
type Hasher struct {
	pieces        [13][8][8]uint64 // [Piece][Rank][File]
	blackToMove   uint64
	castling      [2][2]uint64 // [Color][CastlingSide]
	enPassantFile [8]uint64
}

func NewHasher(seed int64) *Hasher {
	r := rand.New(rand.NewSource(seed))
	h := &Hasher{}
	for piece := board.WP; piece <= board.BK; piece++ {
		for rank := 0; rank < 8; rank++ {
			for file := 0; file < 8; file++ {
				h.pieces[piece][rank][file] = r.Uint64()
			}
		}
	}
	h.blackToMove = r.Uint64()
	for _, c := range [2]board.Color{board.White, board.Black} {
		h.castling[c][board.Kingside] = r.Uint64()
		h.castling[c][board.Queenside] = r.Uint64()
	}
	for file := 0; file < 8; file++ {
		h.enPassantFile[file] = r.Uint64()
	}
	return h
}

func NewDefaultHasher() *Hasher {
	return NewHasher(DefaultSeed)
}

// Hash computes the full-position key: piece placement, side to move,
// castling rights, and the en-passant file.
func (h *Hasher) Hash(p *board.Position) uint64 {
	key := uint64(0)
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece != board.NoPiece {
				key ^= h.pieces[piece][rank][file]
			}
		}
	}
	if p.SideToMove == board.Black {
		key ^= h.blackToMove
	}
	for _, c := range [2]board.Color{board.White, board.Black} {
		if p.CastlingRights[c][board.Kingside] {
			key ^= h.castling[c][board.Kingside]
		}
		if p.CastlingRights[c][board.Queenside] {
			key ^= h.castling[c][board.Queenside]
		}
	}
	if p.EnPassant.HasValue() {
		key ^= h.enPassantFile[p.EnPassant.Value().File]
	}
	return key
}
