// Package console implements game.Prompter on a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type line struct {
	text string
	err  error
}

// Console reads answers line by line from in and writes to out. A single
// reader goroutine owns in, so Ask returns as soon as its context is done.
// The reader may hold one line ahead of the game; Close releases it.
type Console struct {
	in  io.Reader
	out io.Writer

	start sync.Once
	stop  sync.Once
	lines chan line
	done  chan struct{}
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		lines: make(chan line),
		done:  make(chan struct{}),
	}
}

func (c *Console) Show(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Ask writes prompt and waits for the next line. At end of input, or once
// the console is closed, ok is false and err is nil.
func (c *Console) Ask(ctx context.Context, prompt string) (string, bool, error) {
	select {
	case <-c.done:
		return "", false, nil
	default:
	}
	c.start.Do(func() { go c.read() })

	fmt.Fprint(c.out, prompt)

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", false, ctx.Err()
	case <-c.done:
		fmt.Fprintln(c.out)
		return "", false, nil
	case l, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", false, nil
		}
		if l.err != nil {
			return "", false, fmt.Errorf("reading answer: %w", l.err)
		}
		return l.text, true, nil
	}
}

// Close stops the reader goroutine at its next line. A read already blocked
// on in only returns once in yields data or fails.
func (c *Console) Close() error {
	c.stop.Do(func() { close(c.done) })
	return nil
}

func (c *Console) read() {
	defer close(c.lines)

	sc := bufio.NewScanner(c.in)
	for sc.Scan() {
		select {
		case c.lines <- line{text: strings.TrimRight(sc.Text(), "\r")}:
		case <-c.done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		select {
		case c.lines <- line{err: err}:
		case <-c.done:
		}
	}
}
