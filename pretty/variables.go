package pretty

import (
	"os"

	"github.com/joshyorko/previewctl/common"
	"github.com/mattn/go-isatty"
)

var (
	Colorless   bool
	Iconic      bool
	Disabled    bool
	Interactive bool
	White       string
	Grey        string
	Red         string
	Green       string
	Yellow      string
	Cyan        string
	Reset       string
	Bold        string
	Faint       string
)

func csi(value string) string {
	return "\x1b[" + value
}

func Setup() {
	stdin := isatty.IsTerminal(os.Stdin.Fd())
	stdout := isatty.IsTerminal(os.Stdout.Fd())
	stderr := isatty.IsTerminal(os.Stderr.Fd())

	if os.Getenv("NO_COLOR") != "" {
		Colorless = true
	}
	if os.Getenv("TERM") == "" || os.Getenv("TERM") == "dumb" {
		Colorless = true
	}

	// The shell needs all three streams attached to a terminal.
	Interactive = stdin && stdout && stderr
	Iconic = Interactive && !Colorless

	visualOutput := stdout && !Colorless

	common.Trace("Interactive mode enabled: %v; colors enabled: %v; icons enabled: %v", Interactive, visualOutput && !Disabled, Iconic)
	if visualOutput && !Disabled {
		White = csi("97m")
		Grey = csi("90m")
		Red = csi("91m")
		Green = csi("92m")
		Yellow = csi("93m")
		Cyan = csi("96m")
		Reset = csi("0m")
		Bold = csi("1m")
		Faint = csi("2m")
	}
}

// Color Conventions:
// - Green: Success messages
// - Yellow: Warnings
// - Red: Errors
// - Bold: Section headers

func Success(message string) {
	common.Stdout("%s%s%s\n", Green, message, Reset)
}

func Header(text string) {
	common.Stdout("%s%s%s\n", Bold, text, Reset)
}
