package display

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/claudewatch/claudewatch/internal/util"
)

// Terminal owns the screen for live mode: alternate-buffer handling,
// cursor visibility and size queries.
type Terminal struct {
	inAlternateScreen bool
}

func NewTerminal() *Terminal {
	return &Terminal{}
}

// Width returns the terminal width, with a fallback when stdout is not
// a terminal.
func (t *Terminal) Width() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < 40 {
		return 80
	}
	return width
}

// EnterAlternateScreen switches to the alternate screen buffer and
// hides the cursor.
func (t *Terminal) EnterAlternateScreen() {
	if t.inAlternateScreen {
		return
	}
	fmt.Print(util.EnterAltScreen + util.HideCursor)
	t.inAlternateScreen = true
}

// ExitAlternateScreen restores the main screen buffer and cursor.
func (t *Terminal) ExitAlternateScreen() {
	if !t.inAlternateScreen {
		return
	}
	fmt.Print(util.ShowCursor + util.ExitAltScreen)
	t.inAlternateScreen = false
}

// Clear clears the screen and homes the cursor.
func (t *Terminal) Clear() {
	fmt.Print(util.ClearScreen + util.MoveCursorHome)
}
