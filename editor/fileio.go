package editor

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

/*** file i/o ***/

// rowsToString joins every row's raw bytes with newlines into one
// buffer, each row newline-terminated.
func (e *Editor) rowsToString() []byte {
	var buf bytes.Buffer
	for i := range e.row {
		buf.Write(e.row[i].chars)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Open loads the file at filename into the document, one row per line,
// trailing newline and carriage-return bytes stripped.
func (e *Editor) Open(filename string) error {
	e.filename = filename

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		e.AppendRow(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	e.dirty = 0
	return nil
}

// Save writes the document back to its file. The content goes to a
// temporary file in the same directory first and is renamed over the
// target, so a failed write never leaves a truncated file behind.
// Without a filename it is a no-op.
func (e *Editor) Save() {
	if e.filename == "" {
		return
	}

	buf := e.rowsToString()

	if err := writeFileAtomic(e.filename, buf); err != nil {
		e.SetStatusMessage("Can't save! I/O error: %v", err)
		return
	}

	e.SetStatusMessage("%d bytes written to disk", len(buf))
	e.dirty = 0
}

// writeFileAtomic replaces the file at path with buf via a temp file
// and rename. The temp file lives next to the target so the rename
// stays on one filesystem.
func writeFileAtomic(path string, buf []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
