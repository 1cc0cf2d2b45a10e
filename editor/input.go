package editor

import (
	"fmt"
	"io"
)

// Key is one decoded keypress. Literal characters are their own value;
// named keys from multi-byte escape sequences sit above the byte range.
type Key int

// Key aliases
const (
	ESCAPE    Key = '\x1b'
	BACKSPACE Key = 127 // ASCII backspace

	ARROW_LEFT Key = iota + 1000
	ARROW_RIGHT
	ARROW_UP
	ARROW_DOWN
	DELETE_KEY
	HOME_KEY
	END_KEY
	PAGE_UP
	PAGE_DOWN
)

// Convert a character to its control key equivalent
func withControlKey(c byte) Key {
	return Key(c & 0x1f) // 0x1f masks down to the control character range
}

// readByte reads a single byte, reporting ok=false on a timed-out read
// (the raw-mode VTIME expiry surfaces as a zero-byte read).
func readByte(in io.Reader) (byte, bool, error) {
	buf := make([]byte, 1)
	n, err := in.Read(buf)
	if n == 1 {
		return buf[0], true, nil
	}
	if err != nil && err != io.EOF {
		return 0, false, fmt.Errorf("reading keyboard input: %w", err)
	}
	return 0, false, nil
}

// readKey blocks until one keypress is available and resolves it to a
// single Key. Escape sequences are decoded with up to two bytes of
// lookahead; if a lookahead read times out the incomplete sequence
// degrades to a plain ESCAPE.
func readKey(in io.Reader) (Key, error) {
	var c byte
	for {
		var ok bool
		var err error
		c, ok, err = readByte(in)
		if err != nil {
			return 0, err
		}
		if ok {
			break
		}
	}

	if c != '\x1b' {
		return Key(c), nil
	}

	seq := make([]byte, 3)
	b, ok, err := readByte(in)
	if err != nil || !ok {
		return ESCAPE, err
	}
	seq[0] = b

	b, ok, err = readByte(in)
	if err != nil || !ok {
		return ESCAPE, err
	}
	seq[1] = b

	switch seq[0] {
	case '[':
		if seq[1] >= '0' && seq[1] <= '9' {
			b, ok, err = readByte(in)
			if err != nil || !ok {
				return ESCAPE, err
			}
			seq[2] = b
			if seq[2] == '~' {
				switch seq[1] {
				case '1', '7':
					return HOME_KEY, nil
				case '3':
					return DELETE_KEY, nil
				case '4', '8':
					return END_KEY, nil
				case '5':
					return PAGE_UP, nil
				case '6':
					return PAGE_DOWN, nil
				}
			}
		} else {
			switch seq[1] {
			case 'A':
				return ARROW_UP, nil
			case 'B':
				return ARROW_DOWN, nil
			case 'C':
				return ARROW_RIGHT, nil
			case 'D':
				return ARROW_LEFT, nil
			case 'H':
				return HOME_KEY, nil
			case 'F':
				return END_KEY, nil
			}
		}
	case 'O':
		switch seq[1] {
		case 'H':
			return HOME_KEY, nil
		case 'F':
			return END_KEY, nil
		}
	}
	return ESCAPE, nil // Unknown escape sequence
}
