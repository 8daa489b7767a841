package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
)

type Kind int

const (
	Unknown Kind = iota
	ConnectionError
	TimeoutError
	RemoteReplyError
	RemoteApiError
)

func (it Kind) String() string {
	switch it {
	case ConnectionError:
		return "ConnectionError"
	case TimeoutError:
		return "TimeoutError"
	case RemoteReplyError:
		return "RemoteReplyError"
	case RemoteApiError:
		return "RemoteApiError"
	}
	return "Error"
}

// Error is the only error type the gateway returns. Code is the remote
// fault code and is only meaningful for RemoteApiError.
type Error struct {
	Kind    Kind
	Op      string
	Code    int
	Message string
	Err     error
}

func (it *Error) Error() string {
	if len(it.Op) > 0 {
		return fmt.Sprintf("%s [%s]: %s", it.Kind, it.Op, it.Message)
	}
	return fmt.Sprintf("%s: %s", it.Kind, it.Message)
}

func (it *Error) Unwrap() error {
	return it.Err
}

func KindOf(err error) Kind {
	var failure *Error
	if errors.As(err, &failure) {
		return failure.Kind
	}
	return Unknown
}

// Describe splits an error into a warning title and message.
func Describe(err error) (string, string) {
	var failure *Error
	if errors.As(err, &failure) {
		return failure.Kind.String(), failure.Message
	}
	return Unknown.String(), err.Error()
}

func replyError(format string, details ...interface{}) *Error {
	return &Error{Kind: RemoteReplyError, Message: fmt.Sprintf(format, details...)}
}

// classify maps transport level failures to connection or timeout errors.
func classify(err error) *Error {
	var failure *Error
	if errors.As(err, &failure) {
		return failure
	}
	kind := ConnectionError
	var network net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &network) && network.Timeout()) {
		kind = TimeoutError
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}
