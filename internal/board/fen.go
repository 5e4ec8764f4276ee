package board

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/gambitchess/gambit/internal/helpers"
)

const StartingFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PositionFromFen builds a Position from a 6-field FEN string. Anything
// short of six whitespace-separated fields is rejected; there is no lenient
// mode.
func PositionFromFen(s string) (*Position, Error) {
	fields := strings.Fields(s)
	if len(fields) != 6 {
		return nil, Errorf("wrong number of fields (%v) in fen %q", len(fields), s)
	}

	p := &Position{}

	rank, file := 0, 0
	for _, c := range fields[0] {
		if c == '/' {
			if file != 8 {
				return nil, Errorf("rank %v has %v squares in fen %q", rank, file, s)
			}
			rank++
			file = 0
			if rank > 7 {
				return nil, Errorf("too many ranks in fen %q", s)
			}
		} else if c >= '1' && c <= '8' {
			file += int(c - '0')
		} else if piece, err := PieceFromRune(c); IsNil(err) {
			if file > 7 {
				return nil, Errorf("rank %v overflows in fen %q", rank, s)
			}
			p.Board[rank][file] = piece
			file++
		} else {
			return nil, Errorf("unknown character %q in fen %q", c, s)
		}
	}
	if rank != 7 || file != 8 {
		return nil, Errorf("incomplete board in fen %q", s)
	}

	side, err := ColorFromString(fields[1])
	if !IsNil(err) {
		return nil, Errorf("invalid side to move %q in fen %q", fields[1], s)
	}
	p.SideToMove = side

	for _, c := range fields[2] {
		switch c {
		case '-':
		case 'K':
			p.CastlingRights[White][Kingside] = true
		case 'Q':
			p.CastlingRights[White][Queenside] = true
		case 'k':
			p.CastlingRights[Black][Kingside] = true
		case 'q':
			p.CastlingRights[Black][Queenside] = true
		default:
			return nil, Errorf("invalid castling rights %q in fen %q", fields[2], s)
		}
	}

	if fields[3] != "-" {
		target, err := CoordFromString(fields[3])
		if !IsNil(err) {
			return nil, Errorf("invalid en-passant target %q in fen %q", fields[3], s)
		}
		p.EnPassant = Some(target)
	}

	halfmove, parseErr := strconv.Atoi(fields[4])
	if parseErr != nil || halfmove < 0 {
		return nil, Errorf("invalid halfmove clock %q in fen %q", fields[4], s)
	}
	p.HalfmoveClock = halfmove

	fullmove, parseErr := strconv.Atoi(fields[5])
	if parseErr != nil || fullmove < 1 {
		return nil, Errorf("invalid fullmove number %q in fen %q", fields[5], s)
	}
	p.FullmoveNumber = fullmove

	return p, NilError
}

func fenForBoard(p *Position) string {
	s := ""
	for rank := 0; rank < 8; rank++ {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.Board[rank][file]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				s += fmt.Sprint(empty)
				empty = 0
			}
			s += piece.String()
		}
		if empty > 0 {
			s += fmt.Sprint(empty)
		}
		if rank != 7 {
			s += "/"
		}
	}
	return s
}

func fenForCastling(rights [2][2]bool) string {
	s := ""
	if rights[White][Kingside] {
		s += "K"
	}
	if rights[White][Queenside] {
		s += "Q"
	}
	if rights[Black][Kingside] {
		s += "k"
	}
	if rights[Black][Queenside] {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}

func fenForEnPassant(target Optional[Coord]) string {
	if target.IsEmpty() {
		return "-"
	}
	return target.Value().String()
}

func fenForColor(c Color) string {
	if c == White {
		return "w"
	}
	return "b"
}

// Fen renders the position back to the same 6-field format PositionFromFen
// accepts; round-tripping is lossless.
func (p *Position) Fen() string {
	return fmt.Sprintf("%v %v %v %v %v %v",
		fenForBoard(p),
		fenForColor(p.SideToMove),
		fenForCastling(p.CastlingRights),
		fenForEnPassant(p.EnPassant),
		p.HalfmoveClock,
		p.FullmoveNumber)
}
