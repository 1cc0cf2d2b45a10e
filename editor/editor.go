package editor

import (
	"fmt"
	"io"
	"os"
	"time"
)

/*** config ***/

// Config Constants
const (
	KILO_VERSION = "0.0.1"
	TAB_STOP     = 8
	QUIT_TIMES   = 3
)

/*** data ***/

// Editor represents the text editor state
type Editor struct {
	cx, cy            int // cursor position in raw columns / rows
	rx                int // cursor position in rendered columns
	rowOffset         int
	colOffset         int
	screenRows        int
	screenCols        int
	row               []editorRow
	dirty             int // captures if and how much edits are made
	filename          string
	statusMessage     string
	statusMessageTime time.Time
	terminal          *Terminal

	in  io.Reader
	out io.Writer

	quitTimes int
}

// New prepares an empty editor attached to the process terminal.
func New() *Editor {
	return &Editor{
		terminal:  &Terminal{},
		in:        os.Stdin,
		out:       os.Stdout,
		quitTimes: QUIT_TIMES,
	}
}

// UpdateWindowSize measures the terminal and sizes the text area. The
// two bottom screen rows are reserved for the status and message bars.
// The fallback size probe reads a terminal report from stdin, so raw
// mode must already be enabled when this runs.
func (e *Editor) UpdateWindowSize() error {
	rows, cols, err := getWindowSize()
	if err != nil {
		return err
	}
	e.screenRows = rows - 2
	e.screenCols = cols
	return nil
}

// Terminal exposes the raw-mode session so the caller can guarantee its
// restoration on every exit path.
func (e *Editor) Terminal() *Terminal {
	return e.terminal
}

/*** row operations ***/

// AppendRow adds a row holding a copy of s after the last row.
func (e *Editor) AppendRow(s []byte) {
	chars := make([]byte, len(s))
	copy(chars, s)

	row := editorRow{chars: chars}
	row.update()

	e.row = append(e.row, row)
	e.dirty++
}

/*** editor operations ***/

// InsertChar inserts one character at the cursor. On the virtual row
// past the end of the document a new empty row is appended first.
func (e *Editor) InsertChar(c byte) {
	if e.cy == len(e.row) {
		e.AppendRow(nil)
	}
	e.row[e.cy].insertChar(e.cx, c)
	e.cx++
	e.dirty++
}

/*** output ***/

// Scroll recomputes the rendered cursor column and moves the viewport
// offsets the minimal distance needed to keep the cursor visible.
func (e *Editor) Scroll() {
	e.rx = 0
	if e.cy < len(e.row) {
		e.rx = e.row[e.cy].cxToRx(e.cx)
	}

	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}

	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	if e.rx >= e.colOffset+e.screenCols {
		e.colOffset = e.rx - e.screenCols + 1
	}
}

// appendBuffer collects a whole frame so it can be flushed in a single
// write, avoiding flicker from partial updates.
type appendBuffer struct {
	b []byte
}

func (ab *appendBuffer) append(s []byte) {
	ab.b = append(ab.b, s...)
}

func (e *Editor) drawRows(abuf *appendBuffer) {
	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowOffset
		if filerow >= len(e.row) {
			if len(e.row) == 0 && y == e.screenRows/3 {
				welcome := "Kilo editor -- version " + KILO_VERSION
				welcomelen := min(len(welcome), e.screenCols)
				padding := (e.screenCols - welcomelen) / 2
				if padding > 0 {
					abuf.append([]byte("~"))
					padding--
				}
				for i := 0; i < padding; i++ {
					abuf.append([]byte(" "))
				}
				abuf.append([]byte(welcome[:welcomelen]))
			} else {
				abuf.append([]byte("~"))
			}
		} else {
			render := e.row[filerow].render
			lineLen := min(max(len(render)-e.colOffset, 0), e.screenCols)
			if lineLen > 0 {
				abuf.append(render[e.colOffset : e.colOffset+lineLen])
			}
		}

		abuf.append([]byte(CLEAR_LINE))
		abuf.append([]byte("\r\n"))
	}
}

func (e *Editor) drawStatusBar(abuf *appendBuffer) {
	abuf.append([]byte(COLORS_INVERT))

	filename := "[No Name]"
	if e.filename != "" {
		filename = e.filename
		if len(filename) > 20 {
			filename = filename[:20]
		}
	}
	dirtyFlag := ""
	if e.dirty > 0 {
		dirtyFlag = "(modified)"
	}
	status := fmt.Sprintf("%.20s - %d lines %s", filename, len(e.row), dirtyFlag)
	statusLen := min(len(status), e.screenCols)

	rstatus := fmt.Sprintf("%d/%d", e.cy+1, len(e.row))
	rstatusLen := len(rstatus)
	abuf.append([]byte(status[:statusLen]))

	for statusLen < e.screenCols {
		if e.screenCols-statusLen == rstatusLen {
			abuf.append([]byte(rstatus))
			break
		}
		abuf.append([]byte(" "))
		statusLen++
	}

	abuf.append([]byte(COLORS_RESET))
	abuf.append([]byte("\r\n"))
}

func (e *Editor) drawMessageBar(abuf *appendBuffer) {
	abuf.append([]byte(CLEAR_LINE))
	messageLen := min(len(e.statusMessage), e.screenCols)
	if time.Since(e.statusMessageTime) < 5*time.Second {
		abuf.append([]byte(e.statusMessage[:messageLen]))
	}
}

// RefreshScreen assembles one full frame and flushes it in a single
// write: hidden cursor, every visible row, status bar, message bar,
// then the cursor repositioned inside the viewport.
func (e *Editor) RefreshScreen() {
	e.Scroll()

	var abuf appendBuffer

	abuf.append([]byte(CURSOR_HIDE))
	abuf.append([]byte(CURSOR_HOME))

	e.drawRows(&abuf)
	e.drawStatusBar(&abuf)
	e.drawMessageBar(&abuf)

	abuf.append(fmt.Appendf(nil, CURSOR_POSITION_FORMAT, e.cy-e.rowOffset+1, e.rx-e.colOffset+1))
	abuf.append([]byte(CURSOR_SHOW))

	e.out.Write(abuf.b)
}

// SetStatusMessage sets the transient message shown in the bottom bar
// for the next five seconds.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusMessageTime = time.Now()
}

/*** input ***/

// MoveCursor applies one arrow keypress. Left at the start of a row and
// Right at the end of one wrap to the adjacent row; after any move the
// column clamps to the new row's length.
func (e *Editor) MoveCursor(key Key) {
	var row *editorRow
	if e.cy < len(e.row) {
		row = &e.row[e.cy]
	}

	switch key {
	case ARROW_LEFT:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.row[e.cy].chars)
		}
	case ARROW_RIGHT:
		if row != nil && e.cx < len(row.chars) {
			e.cx++
		} else if row != nil && e.cx == len(row.chars) {
			e.cy++
			e.cx = 0
		}
	case ARROW_UP:
		if e.cy != 0 {
			e.cy--
		}
	case ARROW_DOWN:
		if e.cy < len(e.row) {
			e.cy++
		}
	}

	rowlen := 0
	if e.cy < len(e.row) {
		rowlen = len(e.row[e.cy].chars)
	}
	if e.cx > rowlen {
		e.cx = rowlen
	}
}

// ProcessKeypress reads one key and applies it. It reports quit=true
// when the user asked to leave the editor.
func (e *Editor) ProcessKeypress() (quit bool, err error) {
	key, err := readKey(e.in)
	if err != nil {
		return false, err
	}

	switch key {
	case '\r':
		// Line insertion is not implemented

	case withControlKey('q'):
		if e.dirty > 0 && e.quitTimes > 0 {
			e.SetStatusMessage("WARNING: File has unsaved changes. "+
				"Press Ctrl-Q %d more times to quit.", e.quitTimes)
			e.quitTimes--
			return false, nil
		}
		return true, nil

	case withControlKey('s'):
		e.Save()

	case HOME_KEY:
		e.cx = 0

	case END_KEY:
		if e.cy < len(e.row) {
			e.cx = len(e.row[e.cy].chars)
		}

	case BACKSPACE, withControlKey('h'), DELETE_KEY:
		// Character deletion is not implemented

	case PAGE_UP:
		e.cy = e.rowOffset
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(ARROW_UP)
		}

	case PAGE_DOWN:
		e.cy = min(e.rowOffset+e.screenRows-1, len(e.row))
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(ARROW_DOWN)
		}

	case ARROW_LEFT, ARROW_RIGHT, ARROW_UP, ARROW_DOWN:
		e.MoveCursor(key)

	case withControlKey('l'), ESCAPE:
		// Ignored

	default:
		e.InsertChar(byte(key))
	}

	e.quitTimes = QUIT_TIMES // Reset quit countdown after any other key
	return false, nil
}

/*** run loop ***/

// Run drives the editor until the user quits or the input channel
// fails: one full-frame redraw, then one keypress, repeated.
func (e *Editor) Run() error {
	for {
		e.RefreshScreen()
		quit, err := e.ProcessKeypress()
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}
