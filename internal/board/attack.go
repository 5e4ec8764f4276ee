package board

import (
	. "github.com/gambitchess/gambit/internal/helpers"
)

type offset struct {
	df int
	dr int
}

var knightOffsets = [8]offset{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8]offset{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var rookDirections = [4]offset{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
}

var bishopDirections = [4]offset{
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// pawnForward is the rank delta a pawn of each color advances by. White
// moves toward rank 0 (the stored top row, FEN rank 8).
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// KingCoord locates the king of the given color. Its absence is a caller
// error per the data model, but lookups stay total.
func (p *Position) KingCoord(c Color) Optional[Coord] {
	king := PieceForColor[c][King]
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			if p.Board[rank][file] == king {
				return Some(Coord{File: file, Rank: rank})
			}
		}
	}
	return Empty[Coord]()
}

// IsAttacked reports whether any piece of color `by` attacks target. It
// scans outward from the target square rather than over the whole board.
func (p *Position) IsAttacked(target Coord, by Color) bool {
	// Pawns attack diagonally forward, so an attacking pawn sits one rank
	// behind the target relative to its own direction of travel.
	pawnRank := target.Rank - pawnForward(by)
	for _, df := range [2]int{-1, 1} {
		c := Coord{File: target.File + df, Rank: pawnRank}
		if c.Valid() && p.At(c) == PieceForColor[by][Pawn] {
			return true
		}
	}

	for _, o := range knightOffsets {
		c := Coord{File: target.File + o.df, Rank: target.Rank + o.dr}
		if c.Valid() && p.At(c) == PieceForColor[by][Knight] {
			return true
		}
	}

	for _, o := range kingOffsets {
		c := Coord{File: target.File + o.df, Rank: target.Rank + o.dr}
		if c.Valid() && p.At(c) == PieceForColor[by][King] {
			return true
		}
	}

	rook := PieceForColor[by][Rook]
	queen := PieceForColor[by][Queen]
	for _, d := range rookDirections {
		if first := p.firstAlongRay(target, d); first == rook || first == queen {
			return true
		}
	}

	bishop := PieceForColor[by][Bishop]
	for _, d := range bishopDirections {
		if first := p.firstAlongRay(target, d); first == bishop || first == queen {
			return true
		}
	}

	return false
}

func (p *Position) firstAlongRay(from Coord, d offset) Piece {
	for distance := 1; distance < 8; distance++ {
		c := Coord{File: from.File + d.df * distance, Rank: from.Rank + d.dr * distance}
		if !c.Valid() {
			return NoPiece
		}
		if piece := p.At(c); piece != NoPiece {
			return piece
		}
	}
	return NoPiece
}

// IsInCheck reports whether the king of the given color is attacked.
func (p *Position) IsInCheck(c Color) bool {
	king := p.KingCoord(c)
	if king.IsEmpty() {
		return false
	}
	return p.IsAttacked(king.Value(), c.Other())
}

// CanAttack reports whether the piece on `from` attacks `target`, honoring
// slider blockers. Evaluation's center-control term counts attackers with it.
func (p *Position) CanAttack(from Coord, target Coord) bool {
	piece := p.At(from)
	if piece == NoPiece || from == target {
		return false
	}
	df := target.File - from.File
	dr := target.Rank - from.Rank

	switch piece.Type() {
	case Pawn:
		return dr == pawnForward(piece.Color()) && (df == 1 || df == -1)
	case Knight:
		return (AbsDiff(from.File, target.File) == 2 && AbsDiff(from.Rank, target.Rank) == 1) ||
			(AbsDiff(from.File, target.File) == 1 && AbsDiff(from.Rank, target.Rank) == 2)
	case King:
		return AbsDiff(from.File, target.File) <= 1 && AbsDiff(from.Rank, target.Rank) <= 1
	case Rook:
		return (df == 0 || dr == 0) && p.rayIsClear(from, target)
	case Bishop:
		return AbsDiff(from.File, target.File) == AbsDiff(from.Rank, target.Rank) && p.rayIsClear(from, target)
	case Queen:
		if df == 0 || dr == 0 || AbsDiff(from.File, target.File) == AbsDiff(from.Rank, target.Rank) {
			return p.rayIsClear(from, target)
		}
	}
	return false
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func (p *Position) rayIsClear(from Coord, to Coord) bool {
	d := offset{sign(to.File - from.File), sign(to.Rank - from.Rank)}
	c := Coord{File: from.File + d.df, Rank: from.Rank + d.dr}
	for c != to {
		if !c.Valid() {
			return false
		}
		if p.At(c) != NoPiece {
			return false
		}
		c = Coord{File: c.File + d.df, Rank: c.Rank + d.dr}
	}
	return true
}
