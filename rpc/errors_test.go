package rpc

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/joshyorko/previewctl/hamlet"
)

func TestClassifyKeepsExistingKinds(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	original := &Error{Kind: RemoteApiError, Message: "nope"}
	must_be.Equal(original, classify(fmt.Errorf("wrapped: %w", original)))
	must_be.Equal(TimeoutError, classify(context.DeadlineExceeded).Kind)
	must_be.Equal(ConnectionError, classify(errors.New("connection refused")).Kind)
}

func TestErrorTextNamesKindAndOperation(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	failure := &Error{Kind: TimeoutError, Op: MethodSetParam, Message: "too slow"}
	must_be.Equal("TimeoutError [node.set_param]: too slow", failure.Error())
	must_be.Equal("ConnectionError: down", (&Error{Kind: ConnectionError, Message: "down"}).Error())
	must_be.Equal(Unknown, KindOf(errors.New("plain")))

	title, message := Describe(errors.New("plain"))
	must_be.Equal("Error", title)
	must_be.Equal("plain", message)
}
