package sysutil

import (
	"io"
	"os"
	"os/exec"
	"runtime"
)

// clearSequence moves the cursor home and erases the screen on ANSI
// terminals.
const clearSequence = "\033[H\033[2J"

// ClearTerminal clears the terminal screen written by w. On Windows it runs
// cls; elsewhere it runs clear when available and falls back to the ANSI
// escape sequence.
func ClearTerminal(w io.Writer) {
	name, args := "clear", []string{}
	if runtime.GOOS == "windows" {
		name, args = "cmd", []string{"/c", "cls"}
	}

	if w == os.Stdout {
		if path, err := exec.LookPath(name); err == nil {
			cmd := exec.Command(path, args...)
			cmd.Stdout = w
			if cmd.Run() == nil {
				return
			}
		}
	}

	_, _ = io.WriteString(w, clearSequence)
}
