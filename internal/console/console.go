// Package console implements the terminal prompt used for interactive
// candidate selection.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

// Terminal reads answers line by line from an input stream and writes
// prompts to an output stream. It implements core.Console.
type Terminal struct {
	out       io.Writer
	lines     chan string
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a terminal over the given streams and starts consuming input
// lines. Reads happen on a dedicated goroutine so Prompt can honor context
// cancellation while stdin blocks.
func New(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}

	scanner := bufio.NewScanner(in)
	go func() {
		defer close(t.lines)
		for scanner.Scan() {
			// Check done first so a line never wins over a prior Close.
			select {
			case <-t.done:
				return
			default:
			}
			select {
			case t.lines <- scanner.Text():
			case <-t.done:
				return
			}
		}
	}()

	return t
}

// Close releases the reader goroutine; any pending input line is discarded.
// Prompt calls after Close report io.EOF.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() { close(t.done) })
}

// Say writes one line of output.
func (t *Terminal) Say(text string) {
	fmt.Fprintln(t.out, text)
}

// Prompt writes text and blocks until an input line arrives, the input
// stream ends, or ctx is cancelled.
func (t *Terminal) Prompt(ctx context.Context, text string) (string, error) {
	fmt.Fprint(t.out, text)

	select {
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
