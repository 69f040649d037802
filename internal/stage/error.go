// Package stage defines the result shape shared by every pipeline stage.
package stage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Name identifies the stage that produced a result.
type Name string

const (
	Validate   Name = "validate"
	Fetch      Name = "fetch"
	Transcribe Name = "transcribe"
	Cache      Name = "cache"
	Summarize  Name = "summarize"
	Answer     Name = "answer"
)

// Kind classifies a failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindTool       Kind = "tool"
	KindModel      Kind = "model"
	KindCache      Kind = "cache"
	KindTimeout    Kind = "timeout"
	KindCanceled   Kind = "canceled"
)

// Error is the only error type that crosses a stage boundary.
type Error struct {
	Stage   Name   `json:"stage"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	return "Error: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with a formatted message.
func New(s Name, k Kind, format string, args ...interface{}) *Error {
	return &Error{Stage: s, Kind: k, Message: fmt.Sprintf(format, args...)}
}

// Wrap converts err into an Error for stage s. Context errors are classified as
// timeout or canceled regardless of k. An existing *Error is returned unchanged.
func Wrap(s Name, k Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		k = KindTimeout
	case errors.Is(err, context.Canceled):
		k = KindCanceled
	}
	return &Error{Stage: s, Kind: k, Message: err.Error(), Err: err}
}

// As extracts an *Error from err. Foreign errors are wrapped with KindModel.
func As(s Name, err error) *Error {
	return Wrap(s, KindModel, err)
}

// IsKind reports whether err is a stage Error of kind k.
func IsKind(err error, k Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == k
}

// WithTimeout bounds ctx by d. A zero or negative d leaves ctx unbounded.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
