package pretty

import (
	"fmt"
	"os"
	"strings"

	"github.com/joshyorko/previewctl/common"
	"golang.org/x/term"
)

const (
	defaultWidth = 80
	maxWidth     = 120
)

func Ok() error {
	common.Log("%sOK.%s", Green, Reset)
	return nil
}

func Warning(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sWarning: %s%s", Yellow, format, Reset)
	common.Log(niceform, rest...)
}

func Note(format string, rest ...interface{}) {
	niceform := fmt.Sprintf("%sNote: %s%s", Cyan, format, Reset)
	common.Log(niceform, rest...)
}

func Exit(code int, format string, rest ...interface{}) {
	var niceform string
	if code == 0 {
		niceform = fmt.Sprintf("%s%s%s", Green, format, Reset)
	} else {
		niceform = fmt.Sprintf("%s%s%s", Red, format, Reset)
	}
	panic(common.ExitCode{
		Code:    code,
		Message: fmt.Sprintf(niceform, rest...),
	})
}

func Guard(truth bool, code int, format string, rest ...interface{}) {
	if !truth {
		Exit(code, format, rest...)
	}
}

// Width is the usable terminal width for tables and separators.
func Width() int {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	if width > maxWidth {
		return maxWidth
	}
	return width
}

func Separator() string {
	return strings.Repeat("-", Width())
}
