package main

import (
	"fmt"
	"os"

	"github.com/kgashok/kilo/editor"
)

// die clears the screen, restores the terminal and terminates with a
// non-zero status. A broken terminal or input file cannot self-heal,
// so there is no retry path.
func die(e *editor.Editor, err error) {
	if e != nil {
		e.Terminal().Restore()
	}
	os.Stdout.WriteString("\x1b[2J")
	os.Stdout.WriteString("\x1b[H")
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	e := editor.New()

	if err := e.Terminal().EnableRawMode(); err != nil {
		die(e, err)
	}
	defer e.Terminal().Restore()

	if err := e.UpdateWindowSize(); err != nil {
		die(e, err)
	}

	if len(os.Args) >= 2 {
		if err := e.Open(os.Args[1]); err != nil {
			die(e, err)
		}
	}

	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit")

	if err := e.Run(); err != nil {
		die(e, err)
	}

	// Leave a clean screen behind on a normal quit.
	e.Terminal().Restore()
	os.Stdout.WriteString("\x1b[2J")
	os.Stdout.WriteString("\x1b[H")
}
