package input

import (
	"bytes"
	"strconv"

	"github.com/tomz197/invasion/internal/game"
)

// maxSequenceLen bounds an unterminated escape sequence before it is
// dropped as garbage.
const maxSequenceLen = 32

// token is one decoded keystroke or click.
type token struct {
	key      game.Key
	pointer  bool
	col, row int // Zero-based terminal cell, pointer only
}

// parse decodes buf into tokens. An escape sequence cut off at the end of
// buf is returned as rest so the caller can retry once more bytes arrive.
func parse(buf []byte) (tokens []token, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if k := keyForByte(b); k != game.KeyNone {
				tokens = append(tokens, token{key: k})
			}
			continue
		}

		// Lone escape at the end may be the start of a sequence.
		if i+1 >= len(buf) {
			return tokens, buf[i:]
		}

		switch buf[i+1] {
		case '[':
			if i+2 >= len(buf) {
				return tokens, buf[i:]
			}
			if buf[i+2] == '<' {
				tok, n, complete := parseSGRMouse(buf[i:])
				if !complete {
					return tokens, buf[i:]
				}
				if tok != nil {
					tokens = append(tokens, *tok)
				}
				i += n - 1
				continue
			}
			n, final, complete := scanCSI(buf[i+2:])
			if !complete {
				if len(buf)-i > maxSequenceLen {
					return tokens, nil
				}
				return tokens, buf[i:]
			}
			// Modified arrows such as ESC [1;5C still steer.
			if k := keyForArrow(final); k != game.KeyNone {
				tokens = append(tokens, token{key: k})
			}
			i += 1 + n
		case 'O':
			// SS3 arrows sent in application cursor mode.
			if i+2 >= len(buf) {
				return tokens, buf[i:]
			}
			if k := keyForArrow(buf[i+2]); k != game.KeyNone {
				tokens = append(tokens, token{key: k})
			}
			i += 2
		}
	}
	return tokens, nil
}

// parseSGRMouse decodes ESC [ < b ; x ; y (M|m). It returns the number of
// bytes consumed and false if the sequence is incomplete. Only primary
// button presses produce a token.
func parseSGRMouse(buf []byte) (*token, int, bool) {
	end := bytes.IndexAny(buf, "Mm")
	if end < 0 {
		// Give up on runaway garbage rather than buffering forever.
		if len(buf) > maxSequenceLen {
			return nil, len(buf), true
		}
		return nil, 0, false
	}

	fields := bytes.Split(buf[3:end], []byte{';'})
	n := end + 1
	if len(fields) != 3 || buf[end] != 'M' {
		return nil, n, true
	}
	btn, err1 := strconv.Atoi(string(fields[0]))
	col, err2 := strconv.Atoi(string(fields[1]))
	row, err3 := strconv.Atoi(string(fields[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, n, true
	}
	// Low bits select the button, 32 marks motion, 64 the wheel.
	if btn&3 != 0 || btn&(32|64) != 0 {
		return nil, n, true
	}
	return &token{pointer: true, col: col - 1, row: row - 1}, n, true
}

// scanCSI finds the end of a CSI sequence whose parameter bytes start at
// seq[0]. It returns the bytes consumed and the final byte, or false if
// more input is needed. A malformed sequence ends before the offending
// byte with a zero final.
func scanCSI(seq []byte) (n int, final byte, complete bool) {
	for j, b := range seq {
		switch {
		case b >= 0x20 && b <= 0x3f:
			// Parameter or intermediate byte.
		case b >= 0x40 && b <= 0x7e:
			return j + 1, b, true
		default:
			return j, 0, true
		}
	}
	return 0, 0, false
}

func keyForArrow(b byte) game.Key {
	switch b {
	case 'C':
		return game.KeyRight
	case 'D':
		return game.KeyLeft
	}
	return game.KeyNone
}

func keyForByte(b byte) game.Key {
	switch b {
	case 'q', 'Q', '\x03':
		return game.KeyQuit
	case 'a', 'A', 'j', 'J':
		return game.KeyLeft
	case 'd', 'D', 'l', 'L':
		return game.KeyRight
	case ' ':
		return game.KeyFire
	case 'p', 'P', '\n', '\r':
		return game.KeyStart
	case '1':
		return game.KeyEasy
	case '2':
		return game.KeyMedium
	case '3':
		return game.KeyHard
	}
	return game.KeyNone
}
