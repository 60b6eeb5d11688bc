package ui

import (
	"context"
	"errors"
)

// ErrInput is returned when the input stream is closed or fails.
var ErrInput = errors.New("input error")

// UserInterface is what the engine and the shell need from the user.
type UserInterface interface {
	// Display presents a line of text. It must not block.
	Display(message string)
	// DisplayInline presents text without a trailing line break.
	DisplayInline(text string)
	// ReadLine blocks until a line is available and returns it trimmed.
	// It returns ErrInput on stream closure and ctx.Err() on cancellation.
	ReadLine(ctx context.Context) (string, error)
}
