package common

import "fmt"

type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	Log("%s", it.Message)
}

func (it ExitCode) Error() string {
	return fmt.Sprintf("exit %d: %s", it.Code, it.Message)
}
