package board

import (
	. "github.com/gambitchess/gambit/internal/helpers"
)

type Color uint8

const (
	White Color = iota
	Black
)

var _colorStrings = [2]string{
	"white", "black",
}

func (c Color) String() string {
	return _colorStrings[c]
}

func (c Color) Other() Color {
	return 1 - c
}

func ColorFromString(s string) (Color, Error) {
	switch s {
	case "w":
		return White, NilError
	case "b":
		return Black, NilError
	default:
		return White, Errorf("invalid color %q", s)
	}
}

type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	return [7]string{
		"?", "p", "n", "b", "r", "q", "k",
	}[p]
}

func PieceTypeFromByte(c byte) PieceType {
	switch c {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	default:
		return NoPieceType
	}
}

// Piece packs (type, color) into one enum so the board grid is a flat array
// of bytes. NoPiece marks an empty square.
type Piece uint8

const (
	NoPiece Piece = iota
	WP
	WN
	WB
	WR
	WQ
	WK
	BP
	BN
	BB
	BR
	BQ
	BK
)

var _pieceTypeLookup = [13]PieceType{
	NoPieceType,
	Pawn, Knight, Bishop, Rook, Queen, King,
	Pawn, Knight, Bishop, Rook, Queen, King,
}

func (p Piece) Type() PieceType {
	return _pieceTypeLookup[p]
}

func (p Piece) Color() Color {
	if p >= BP {
		return Black
	}
	return White
}

var PieceForColor = [2][7]Piece{
	{NoPiece, WP, WN, WB, WR, WQ, WK},
	{NoPiece, BP, BN, BB, BR, BQ, BK},
}

func PieceFromRune(c rune) (Piece, Error) {
	switch c {
	case 'P':
		return WP, NilError
	case 'N':
		return WN, NilError
	case 'B':
		return WB, NilError
	case 'R':
		return WR, NilError
	case 'Q':
		return WQ, NilError
	case 'K':
		return WK, NilError
	case 'p':
		return BP, NilError
	case 'n':
		return BN, NilError
	case 'b':
		return BB, NilError
	case 'r':
		return BR, NilError
	case 'q':
		return BQ, NilError
	case 'k':
		return BK, NilError
	default:
		return NoPiece, Errorf("invalid piece %q", c)
	}
}

func (p Piece) String() string {
	return [13]string{
		" ",
		"P", "N", "B", "R", "Q", "K",
		"p", "n", "b", "r", "q", "k",
	}[p]
}

// Coord addresses a square by (file 0-7, rank 0-7). Rank 0 is the top row as
// stored, matching FEN's rank-8-first ordering, so White's pieces start on
// ranks 6 and 7 and White pawns advance toward rank 0.
type Coord struct {
	File int
	Rank int
}

func (c Coord) Valid() bool {
	return c.File >= 0 && c.File < 8 && c.Rank >= 0 && c.Rank < 8
}

func (c Coord) String() string {
	return string([]byte{byte('a' + c.File), byte('0' + (8 - c.Rank))})
}

func CoordFromString(s string) (Coord, Error) {
	if len(s) != 2 {
		return Coord{}, Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := 8 - int(s[1]-'0')
	c := Coord{file, rank}
	if !c.Valid() {
		return Coord{}, Errorf("square %q out of range", s)
	}
	return c, NilError
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

// Move is a plain value: it carries everything needed to execute it but is
// not self-validating. Legality is Position.Apply's business.
type Move struct {
	From        Coord
	To          Coord
	Piece       PieceType
	Color       Color
	Promotion   Optional[PieceType]
	IsCastling  bool
	IsEnPassant bool
	IsCapture   bool
}

func (m Move) String() string {
	if m.Promotion.HasValue() {
		return m.From.String() + m.To.String() + m.Promotion.Value().String()
	}
	return m.From.String() + m.To.String()
}

func (m Move) DebugString() string {
	if m.IsCapture {
		return m.From.String() + "x" + m.To.String()
	}
	return m.String()
}
