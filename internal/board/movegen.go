package board

import (
	. "github.com/gambitchess/gambit/internal/helpers"
)

var GetMovesBuffer, ReleaseMovesBuffer, StatsMoveBufferPool = CreatePool(
	func() []Move { return make([]Move, 0, 64) },
	func(x *[]Move) { *x = (*x)[:0] },
)

var promotionOrder = [4]PieceType{Queen, Rook, Bishop, Knight}

// AppendPseudoLegalMoves generates every pseudo-legal move for `c` in
// board-scan order: rank-major, file-minor, with a fixed per-piece move
// order. The ordering is deterministic so search results and tests are
// reproducible.
func AppendPseudoLegalMoves(p *Position, c Color, moves *[]Move) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == NoPiece || piece.Color() != c {
				continue
			}
			AppendPieceMoves(p, Coord{File: file, Rank: rank}, moves)
		}
	}
}

// AppendPieceMoves generates pseudo-legal moves for the single piece on
// `from`.
func AppendPieceMoves(p *Position, from Coord, moves *[]Move) {
	piece := p.At(from)
	switch piece.Type() {
	case Pawn:
		appendPawnMoves(p, from, piece.Color(), moves)
	case Knight:
		appendOffsetMoves(p, from, piece, knightOffsets[:], moves)
	case Bishop:
		appendRayMoves(p, from, piece, bishopDirections[:], moves)
	case Rook:
		appendRayMoves(p, from, piece, rookDirections[:], moves)
	case Queen:
		appendRayMoves(p, from, piece, rookDirections[:], moves)
		appendRayMoves(p, from, piece, bishopDirections[:], moves)
	case King:
		appendOffsetMoves(p, from, piece, kingOffsets[:], moves)
		appendCastlingMoves(p, from, piece.Color(), moves)
	}
}

// Pawn moves come out in a fixed order: single push, double push, captures
// (low file first), en passant, then promotions (pushes before captures,
// queen/rook/bishop/knight within each).
func appendPawnMoves(p *Position, from Coord, c Color, moves *[]Move) {
	forward := pawnForward(c)
	startRank := 6
	promotionRank := 0
	if c == Black {
		startRank = 1
		promotionRank = 7
	}

	one := Coord{File: from.File, Rank: from.Rank + forward}
	if one.Valid() && p.At(one) == NoPiece && one.Rank != promotionRank {
		*moves = append(*moves, Move{From: from, To: one, Piece: Pawn, Color: c})
	}

	if from.Rank == startRank {
		two := Coord{File: from.File, Rank: from.Rank + 2*forward}
		if p.At(one) == NoPiece && p.At(two) == NoPiece {
			*moves = append(*moves, Move{From: from, To: two, Piece: Pawn, Color: c})
		}
	}

	for _, df := range [2]int{-1, 1} {
		to := Coord{File: from.File + df, Rank: from.Rank + forward}
		if !to.Valid() || to.Rank == promotionRank {
			continue
		}
		target := p.At(to)
		if target != NoPiece && target.Color() != c {
			*moves = append(*moves, Move{From: from, To: to, Piece: Pawn, Color: c, IsCapture: true})
		}
	}

	if p.EnPassant.HasValue() {
		ep := p.EnPassant.Value()
		if AbsDiff(from.File, ep.File) == 1 && from.Rank == ep.Rank-forward {
			*moves = append(*moves, Move{From: from, To: ep, Piece: Pawn, Color: c, IsEnPassant: true, IsCapture: true})
		}
	}

	if one.Rank == promotionRank {
		if one.Valid() && p.At(one) == NoPiece {
			for _, promotion := range promotionOrder {
				*moves = append(*moves, Move{From: from, To: one, Piece: Pawn, Color: c, Promotion: Some(promotion)})
			}
		}
		for _, df := range [2]int{-1, 1} {
			to := Coord{File: from.File + df, Rank: one.Rank}
			if !to.Valid() {
				continue
			}
			target := p.At(to)
			if target != NoPiece && target.Color() != c {
				for _, promotion := range promotionOrder {
					*moves = append(*moves, Move{From: from, To: to, Piece: Pawn, Color: c, Promotion: Some(promotion), IsCapture: true})
				}
			}
		}
	}
}

func appendOffsetMoves(p *Position, from Coord, piece Piece, offsets []offset, moves *[]Move) {
	for _, o := range offsets {
		to := Coord{File: from.File + o.df, Rank: from.Rank + o.dr}
		if !to.Valid() {
			continue
		}
		target := p.At(to)
		if target == NoPiece {
			*moves = append(*moves, Move{From: from, To: to, Piece: piece.Type(), Color: piece.Color()})
		} else if target.Color() != piece.Color() {
			*moves = append(*moves, Move{From: from, To: to, Piece: piece.Type(), Color: piece.Color(), IsCapture: true})
		}
	}
}

func appendRayMoves(p *Position, from Coord, piece Piece, directions []offset, moves *[]Move) {
	for _, d := range directions {
		for distance := 1; distance < 8; distance++ {
			to := Coord{File: from.File + d.df*distance, Rank: from.Rank + d.dr*distance}
			if !to.Valid() {
				break
			}
			target := p.At(to)
			if target == NoPiece {
				*moves = append(*moves, Move{From: from, To: to, Piece: piece.Type(), Color: piece.Color()})
				continue
			}
			if target.Color() != piece.Color() {
				*moves = append(*moves, Move{From: from, To: to, Piece: piece.Type(), Color: piece.Color(), IsCapture: true})
			}
			break
		}
	}
}

// Castling needs the unbroken rights flag, king and rook on their original
// squares, an empty corridor, and three attack checks: the king may not be
// in check, pass through an attacked square, or land on one.
func appendCastlingMoves(p *Position, from Coord, c Color, moves *[]Move) {
	homeRank := 7
	if c == Black {
		homeRank = 0
	}
	if from != (Coord{File: 4, Rank: homeRank}) {
		return
	}

	enemy := c.Other()

	if p.CastlingRights[c][Kingside] &&
		p.At(_kingsideRookFrom[c]) == PieceForColor[c][Rook] &&
		p.At(Coord{File: 5, Rank: homeRank}) == NoPiece &&
		p.At(Coord{File: 6, Rank: homeRank}) == NoPiece &&
		!p.IsAttacked(from, enemy) &&
		!p.IsAttacked(Coord{File: 5, Rank: homeRank}, enemy) &&
		!p.IsAttacked(Coord{File: 6, Rank: homeRank}, enemy) {
		*moves = append(*moves, Move{
			From: from, To: Coord{File: 6, Rank: homeRank},
			Piece: King, Color: c, IsCastling: true,
		})
	}

	if p.CastlingRights[c][Queenside] &&
		p.At(_queensideRookFrom[c]) == PieceForColor[c][Rook] &&
		p.At(Coord{File: 3, Rank: homeRank}) == NoPiece &&
		p.At(Coord{File: 2, Rank: homeRank}) == NoPiece &&
		p.At(Coord{File: 1, Rank: homeRank}) == NoPiece &&
		!p.IsAttacked(from, enemy) &&
		!p.IsAttacked(Coord{File: 3, Rank: homeRank}, enemy) &&
		!p.IsAttacked(Coord{File: 2, Rank: homeRank}, enemy) {
		*moves = append(*moves, Move{
			From: from, To: Coord{File: 2, Rank: homeRank},
			Piece: King, Color: c, IsCastling: true,
		})
	}
}

// AppendLegalMoves filters pseudo-legal moves through trial apply/undo,
// relying on Apply's self-check gate. When `c` is not the side to move the
// trial runs on a clone so the caller's position is untouched.
func AppendLegalMoves(p *Position, c Color, moves *[]Move) {
	pos := p
	if c != p.SideToMove {
		pos = p.Clone()
		pos.SideToMove = c
	}

	pseudo := GetMovesBuffer()
	defer ReleaseMovesBuffer(pseudo)
	AppendPseudoLegalMoves(pos, c, pseudo)

	for _, move := range *pseudo {
		if pos.Apply(move) {
			pos.Undo()
			*moves = append(*moves, move)
		}
	}
}

func LegalMoves(p *Position, c Color) []Move {
	moves := []Move{}
	AppendLegalMoves(p, c, &moves)
	return moves
}

// AppendLegalCaptures is the quiescence feed: legal moves restricted to
// captures (en passant included).
func AppendLegalCaptures(p *Position, c Color, moves *[]Move) {
	all := GetMovesBuffer()
	defer ReleaseMovesBuffer(all)
	AppendLegalMoves(p, c, all)
	for _, move := range *all {
		if move.IsCapture {
			*moves = append(*moves, move)
		}
	}
}

// HasLegalMove is the single "at least one legal move exists" predicate
// behind checkmate, stalemate, evaluation's terminal short-circuit, and
// search's terminal detection. It early-exits on the first legal move.
func (p *Position) HasLegalMove(c Color) bool {
	pos := p
	if c != p.SideToMove {
		pos = p.Clone()
		pos.SideToMove = c
	}

	pseudo := GetMovesBuffer()
	defer ReleaseMovesBuffer(pseudo)
	AppendPseudoLegalMoves(pos, c, pseudo)

	for _, move := range *pseudo {
		if pos.Apply(move) {
			pos.Undo()
			return true
		}
	}
	return false
}

func (p *Position) IsCheckmate(c Color) bool {
	return p.IsInCheck(c) && !p.HasLegalMove(c)
}

func (p *Position) IsStalemate(c Color) bool {
	return !p.IsInCheck(c) && !p.HasLegalMove(c)
}

// MobilityCount counts pseudo-legal destination squares for the minor and
// major piece on `from`; evaluation weights these per piece type. Pawns and
// kings are not counted.
func (p *Position) MobilityCount(from Coord) int {
	piece := p.At(from)
	count := 0
	countRays := func(directions []offset) {
		for _, d := range directions {
			for distance := 1; distance < 8; distance++ {
				c := Coord{File: from.File + d.df*distance, Rank: from.Rank + d.dr*distance}
				if !c.Valid() {
					break
				}
				target := p.At(c)
				if target == NoPiece {
					count++
					continue
				}
				if target.Color() != piece.Color() {
					count++
				}
				break
			}
		}
	}

	switch piece.Type() {
	case Knight:
		for _, o := range knightOffsets {
			c := Coord{File: from.File + o.df, Rank: from.Rank + o.dr}
			if !c.Valid() {
				continue
			}
			if target := p.At(c); target == NoPiece || target.Color() != piece.Color() {
				count++
			}
		}
	case Bishop:
		countRays(bishopDirections[:])
	case Rook:
		countRays(rookDirections[:])
	case Queen:
		countRays(rookDirections[:])
		countRays(bishopDirections[:])
	}
	return count
}
