package board

import (
	. "github.com/gambitchess/gambit/internal/helpers"
)

// Position is the mutable root aggregate: the grid plus every piece of game
// state a FEN string carries, and the undo history that make/undo search
// relies on. It is never shared between goroutines; search owns one instance
// and mutates-and-reverts it.
type Position struct {
	Board          [8][8]Piece
	SideToMove     Color
	CastlingRights [2][2]bool // [Color][CastlingSide]
	EnPassant      Optional[Coord]
	HalfmoveClock  int
	FullmoveNumber int

	history []undoRecord
}

// undoRecord is a diff, not a snapshot: the moved/captured pieces plus the
// prior values of every field Apply may touch.
type undoRecord struct {
	move           Move
	captured       Piece
	capturedAt     Coord
	rookFrom       Coord
	rookTo         Coord
	movedRook      bool
	castlingRights [2][2]bool
	enPassant      Optional[Coord]
	halfmoveClock  int
	fullmoveNumber int
}

func (p *Position) At(c Coord) Piece {
	if !c.Valid() {
		return NoPiece
	}
	return p.Board[c.Rank][c.File]
}

func (p *Position) set(c Coord, piece Piece) {
	p.Board[c.Rank][c.File] = piece
}

// PlyCount reports how many applied moves have not been undone. Evaluation's
// opening-phase terms key off it.
func (p *Position) PlyCount() int {
	return len(p.history)
}

// Clone copies the position without its history. Use it for non-destructive
// probing; search itself should mutate-and-revert instead.
func (p *Position) Clone() *Position {
	c := *p
	c.history = nil
	return &c
}

var _kingsideRookFrom = [2]Coord{{File: 7, Rank: 7}, {File: 7, Rank: 0}}
var _queensideRookFrom = [2]Coord{{File: 0, Rank: 7}, {File: 0, Rank: 0}}

// Apply executes move and returns whether it stood. Structurally-bad moves
// (off board, empty or enemy source, own-piece destination) are rejected
// without mutating anything. A move that leaves the mover's own king in
// check is fully applied, detected, reverted, and rejected -- this gate is
// what makes trial-apply legality filtering sound.
func (p *Position) Apply(move Move) bool {
	if !move.From.Valid() || !move.To.Valid() {
		return false
	}
	piece := p.At(move.From)
	if piece == NoPiece {
		return false
	}
	if piece.Color() != p.SideToMove || move.Color != p.SideToMove {
		return false
	}
	if piece.Type() != move.Piece {
		return false
	}
	target := p.At(move.To)
	if target != NoPiece && target.Color() == p.SideToMove {
		return false
	}

	record := undoRecord{
		move:           move,
		captured:       target,
		capturedAt:     move.To,
		castlingRights: p.CastlingRights,
		enPassant:      p.EnPassant,
		halfmoveClock:  p.HalfmoveClock,
		fullmoveNumber: p.FullmoveNumber,
	}

	if move.IsEnPassant {
		record.capturedAt = Coord{File: move.To.File, Rank: move.From.Rank}
		record.captured = p.At(record.capturedAt)
		p.set(record.capturedAt, NoPiece)
	}

	p.set(move.From, NoPiece)
	placed := piece
	if move.Promotion.HasValue() {
		placed = PieceForColor[move.Color][move.Promotion.Value()]
	}
	p.set(move.To, placed)

	if move.IsCastling {
		rank := move.From.Rank
		if move.To.File == 6 {
			record.rookFrom = Coord{File: 7, Rank: rank}
			record.rookTo = Coord{File: 5, Rank: rank}
		} else {
			record.rookFrom = Coord{File: 0, Rank: rank}
			record.rookTo = Coord{File: 3, Rank: rank}
		}
		record.movedRook = true
		rook := p.At(record.rookFrom)
		p.set(record.rookFrom, NoPiece)
		p.set(record.rookTo, rook)
	}

	p.updateCastlingRights(move)

	p.EnPassant = Empty[Coord]()
	if move.Piece == Pawn && AbsDiff(move.From.Rank, move.To.Rank) == 2 {
		p.EnPassant = Some(Coord{File: move.From.File, Rank: (move.From.Rank + move.To.Rank) / 2})
	}

	if move.Piece == Pawn || record.captured != NoPiece {
		p.HalfmoveClock = 0
	} else {
		p.HalfmoveClock++
	}
	if p.SideToMove == Black {
		p.FullmoveNumber++
	}
	p.SideToMove = p.SideToMove.Other()

	p.history = append(p.history, record)

	if p.IsInCheck(move.Color) {
		p.Undo()
		return false
	}
	return true
}

func (p *Position) updateCastlingRights(move Move) {
	if move.Piece == King {
		p.CastlingRights[move.Color][Kingside] = false
		p.CastlingRights[move.Color][Queenside] = false
	}
	for _, color := range [2]Color{White, Black} {
		if move.From == _kingsideRookFrom[color] || move.To == _kingsideRookFrom[color] {
			p.CastlingRights[color][Kingside] = false
		}
		if move.From == _queensideRookFrom[color] || move.To == _queensideRookFrom[color] {
			p.CastlingRights[color][Queenside] = false
		}
	}
}

// Undo reverts the most recent applied move. Returns false when there is
// nothing to undo.
func (p *Position) Undo() bool {
	if len(p.history) == 0 {
		return false
	}
	record := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]

	move := record.move
	p.set(move.From, PieceForColor[move.Color][move.Piece])
	p.set(move.To, NoPiece)
	if record.captured != NoPiece {
		p.set(record.capturedAt, record.captured)
	}
	if record.movedRook {
		rook := p.At(record.rookTo)
		p.set(record.rookTo, NoPiece)
		p.set(record.rookFrom, rook)
	}

	p.CastlingRights = record.castlingRights
	p.EnPassant = record.enPassant
	p.HalfmoveClock = record.halfmoveClock
	p.FullmoveNumber = record.fullmoveNumber
	p.SideToMove = move.Color
	return true
}

// MoveFromString converts a 4-5 character coordinate move ("e2e4", "e7e8q")
// into a Move by inspecting the position: capture, en-passant, and castling
// flags are inferred from the board. Legality is still Apply's call.
func (p *Position) MoveFromString(s string) (Move, Error) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, Errorf("invalid move string %q", s)
	}
	from, err := CoordFromString(s[0:2])
	if !IsNil(err) {
		return Move{}, err
	}
	to, err := CoordFromString(s[2:4])
	if !IsNil(err) {
		return Move{}, err
	}
	piece := p.At(from)
	if piece == NoPiece {
		return Move{}, Errorf("no piece on %v", from)
	}

	move := Move{
		From:  from,
		To:    to,
		Piece: piece.Type(),
		Color: piece.Color(),
	}
	if len(s) == 5 {
		promotion := PieceTypeFromByte(s[4])
		if promotion == NoPieceType || promotion == Pawn || promotion == King {
			return Move{}, Errorf("invalid promotion piece %q", s[4])
		}
		move.Promotion = Some(promotion)
	}

	target := p.At(to)
	if target != NoPiece {
		move.IsCapture = true
	} else if piece.Type() == Pawn && from.File != to.File {
		move.IsEnPassant = true
		move.IsCapture = true
	} else if piece.Type() == King && AbsDiff(from.File, to.File) == 2 {
		move.IsCastling = true
	}
	return move, NilError
}

func (p *Position) String() string {
	result := ""
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			result += p.Board[rank][file].String()
		}
		if rank != 7 {
			result += "\n"
		}
	}
	return result
}
