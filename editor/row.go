package editor

// editorRow holds one line of the document: the raw bytes as loaded or
// typed, and the rendered form with tabs expanded to spaces.
type editorRow struct {
	chars  []byte
	render []byte
}

// update regenerates the rendered form from the raw characters. It must
// run after every mutation of chars, before anything reads render.
func (row *editorRow) update() {
	tabs := 0
	for _, c := range row.chars {
		if c == '\t' {
			tabs++
		}
	}

	// Worst case: every tab expands to a full stop width
	render := make([]byte, 0, len(row.chars)+tabs*(TAB_STOP-1))

	for _, c := range row.chars {
		if c == '\t' {
			render = append(render, ' ')
			for len(render)%TAB_STOP != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}

	row.render = render
}

// cxToRx converts a raw column index into a rendered column index. A tab
// occupies a variable rendered width depending on where it starts, so the
// mapping walks every column up to cx.
func (row *editorRow) cxToRx(cx int) int {
	rx := 0
	for j := 0; j < cx && j < len(row.chars); j++ {
		if row.chars[j] == '\t' {
			rx += (TAB_STOP - 1) - (rx % TAB_STOP)
		}
		rx++
	}
	return rx
}

// insertChar inserts one byte at the given raw column, shifting the
// suffix right. An out-of-range position clamps to the end of the row.
func (row *editorRow) insertChar(at int, c byte) {
	if at < 0 || at > len(row.chars) {
		at = len(row.chars)
	}

	row.chars = append(row.chars, 0)
	copy(row.chars[at+1:], row.chars[at:])
	row.chars[at] = c

	row.update()
}
