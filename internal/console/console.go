// Package console is the text input/output boundary of the game.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiReset = "\x1b[0m"
)

type lineResult struct {
	text string
	err  error
}

// Console reads prompts from in and writes everything else to out. Input is
// read by one goroutine for the lifetime of the Console; Close releases it.
type Console struct {
	in    io.Reader
	out   io.Writer
	color bool

	once      sync.Once
	closeOnce sync.Once
	lines     chan lineResult
	done      chan struct{}
}

// New constructs a Console. Color is enabled only when out is a terminal.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: in, out: out, color: isTerminal(out), done: make(chan struct{})}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// start launches the reader goroutine on first use. The channel is
// unbuffered so each prompt receives exactly one line.
func (c *Console) start() {
	c.once.Do(func() {
		c.lines = make(chan lineResult)
		go c.read()
	})
}

// read has no line length limit, so an oversized line reaches the caller as
// ordinary input.
func (c *Console) read() {
	defer close(c.lines)
	reader := bufio.NewReader(c.in)
	for {
		text, err := reader.ReadString('\n')
		if text != "" && !c.send(lineResult{text: text}) {
			return
		}
		if err != nil {
			c.send(lineResult{err: err})
			return
		}
	}
}

func (c *Console) send(res lineResult) bool {
	select {
	case c.lines <- res:
		return true
	case <-c.done:
		return false
	}
}

// Close stops handing out input. Later prompts return io.EOF. A read already
// blocked on in finishes when in does.
func (c *Console) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// PromptLine writes msg and waits for one line of input. It returns io.EOF
// once input is closed and ctx.Err() if ctx ends first.
func (c *Console) PromptLine(ctx context.Context, msg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-c.done:
		return "", io.EOF
	default:
	}
	c.start()
	fmt.Fprintf(c.out, "%s ", msg)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		return "", io.EOF
	case res, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if res.err != nil {
			fmt.Fprintln(c.out)
			return "", res.err
		}
		return strings.TrimSpace(res.text), nil
	}
}

// Confirm asks a yes/no question until the answer is recognised.
func (c *Console) Confirm(ctx context.Context, msg string) (bool, error) {
	for {
		answer, err := c.PromptLine(ctx, msg+" [y/n]")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.Error("Please answer y or n.")
	}
}

// Log writes one informational line.
func (c *Console) Log(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Error writes one line, in red on a terminal.
func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, c.paint(ansiRed, msg))
}

// Title writes a banner line.
func (c *Console) Title(msg string) {
	rule := strings.Repeat("=", len(msg))
	fmt.Fprintf(c.out, "%s\n%s\n%s\n", rule, c.paint(ansiGreen, msg), rule)
}

// Goodbye writes the farewell message.
func (c *Console) Goodbye() {
	fmt.Fprintln(c.out, c.paint(ansiGreen, "Thanks for playing. Goodbye!"))
}

func (c *Console) paint(code, msg string) string {
	if !c.color {
		return msg
	}
	return code + msg + ansiReset
}
