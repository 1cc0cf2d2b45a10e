package editor

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal handles terminal-specific operations
type Terminal struct {
	originalTermios *unix.Termios
}

// Enable raw mode for terminal input.
// This allows us to read every input key and position the cursor freely.
func (t *Terminal) EnableRawMode() error {
	// Check if stdin is a terminal
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("not running in a terminal")
	}

	original, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	if err != nil {
		return fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.originalTermios = original

	raw := *original
	// BRKINT: no SIGINT on break condition
	// ICRNL: no CR to NL translation
	// INPCK: no parity checking
	// ISTRIP: keep the 8th bit of each input byte
	// IXON: no software flow control (Ctrl-S/Ctrl-Q)
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// OPOST: no output post-processing
	raw.Oflag &^= unix.OPOST
	// CS8: 8-bit characters
	raw.Cflag |= unix.CS8
	// ECHO: no echo
	// ICANON: no line buffering
	// IEXTEN: no Ctrl-V literal insert
	// ISIG: no SIGINT/SIGTSTP from Ctrl-C/Ctrl-Z
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// Read returns after 100ms even with no bytes available, so the
	// event loop never blocks indefinitely.
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("applying terminal raw mode: %w", err)
	}
	return nil
}

// Restore the original terminal state, disabling raw mode.
func (t *Terminal) Restore() {
	if t != nil && t.originalTermios != nil {
		unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, t.originalTermios)
		t.originalTermios = nil // Prevent multiple restoration attempts
	}
}

// getWindowSize reports the terminal extent as (rows, cols). If the
// size query is not supported it falls back to moving the cursor to the
// bottom-right corner and asking the terminal where it ended up.
func getWindowSize() (int, int, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err == nil && cols > 0 {
		return rows, cols, nil
	}

	if _, err := os.Stdout.Write([]byte(CURSOR_BOTTOM_RIGHT)); err != nil {
		return 0, 0, fmt.Errorf("querying window size: %w", err)
	}
	return getCursorPosition()
}

// getCursorPosition asks the terminal for the current cursor position
// and parses the ESC[{row};{col}R response.
func getCursorPosition() (int, int, error) {
	if _, err := os.Stdout.Write([]byte(CURSOR_GET_POSITION)); err != nil {
		return 0, 0, fmt.Errorf("requesting cursor position: %w", err)
	}

	buf := make([]byte, 0, 32)
	one := make([]byte, 1)
	for len(buf) < 32 {
		n, err := os.Stdin.Read(one)
		if n != 1 || err != nil {
			break
		}
		if one[0] == 'R' {
			break
		}
		buf = append(buf, one[0])
	}
	return parseCursorPosition(buf)
}

// parseCursorPosition decodes the body of a cursor position report,
// the bytes between ESC and the trailing 'R'.
func parseCursorPosition(buf []byte) (int, int, error) {
	if len(buf) < 2 || buf[0] != '\x1b' || buf[1] != '[' {
		return 0, 0, errors.New("malformed cursor position response")
	}
	var rows, cols int
	if _, err := fmt.Sscanf(string(buf[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, fmt.Errorf("parsing cursor position response: %w", err)
	}
	return rows, cols, nil
}
