package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// line is one result of the background reader.
type line struct {
	text string
	err  error
}

// Console is a UserInterface over a reader and a writer, usually stdin and stdout.
type Console struct {
	// out receives every message.
	out io.Writer
	// in is scanned line by line by a single background goroutine.
	in *bufio.Scanner
	// lines carries scanned lines to ReadLine.
	lines chan line
	// startOnce starts the reader on the first ReadLine.
	startOnce sync.Once
	// writeMu serializes writes from the shell and engine goroutines.
	writeMu sync.Mutex
}

// NewConsole creates a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		out:   out,
		in:    bufio.NewScanner(in),
		lines: make(chan line),
	}
}

// Display prints the message on a new line.
func (c *Console) Display(message string) {
	c.write("\n" + message)
}

// DisplayInline prints the text as is, so "\r" can redraw the current line.
func (c *Console) DisplayInline(text string) {
	c.write(text)
}

// ReadLine waits for the next line or for ctx to be canceled.
// A line that arrives after cancellation is kept for the next call.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	c.startOnce.Do(func() {
		go c.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", fmt.Errorf("read line: stream closed: %w", ErrInput)
		}

		if l.err != nil {
			return "", l.err
		}

		return strings.TrimSpace(l.text), nil
	}
}

// scan feeds lines to ReadLine until the stream ends.
func (c *Console) scan() {
	defer close(c.lines)

	for c.in.Scan() {
		c.lines <- line{text: c.in.Text()}
	}

	if err := c.in.Err(); err != nil {
		c.lines <- line{err: fmt.Errorf("read line: %w: %w", ErrInput, err)}
	}
}

// write serializes output; write errors on a console are not actionable.
func (c *Console) write(s string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_, _ = io.WriteString(c.out, s)
}
