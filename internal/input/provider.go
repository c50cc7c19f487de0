package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Keys of the answers a run asks for.
const (
	KeyDocument = "document"
	KeyCity     = "city"
	KeyPages    = "pages"
)

// Provider supplies answers to prompts. Prompt returns ctx.Err() when ctx ends before an
// answer arrives.
type Provider interface {
	Prompt(ctx context.Context, key, label string) (string, error)
}

type lineResult struct {
	line string
	err  error
}

// Console reads answers line by line from a reader, echoing labels to a writer.
type Console struct {
	reader *bufio.Reader
	out    io.Writer

	once  sync.Once
	lines chan lineResult
}

// NewConsole creates a console provider. The writer may be nil to suppress prompts.
func NewConsole(in io.Reader, out io.Writer) *Console {
	if out == nil {
		out = io.Discard
	}
	return &Console{reader: bufio.NewReader(in), out: out}
}

// Prompt writes the label and returns the trimmed next line. End of input yields an empty answer.
// A cancelled ctx unblocks a pending read; the line read afterwards goes to the next prompt.
func (c *Console) Prompt(ctx context.Context, _ string, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprint(c.out, label); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	c.once.Do(c.startReader)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-c.lines:
		if !ok {
			return "", nil
		}
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("failed to read answer: %w", res.err)
		}
		return strings.TrimSpace(res.line), nil
	}
}

// startReader reads lines in the background until the reader fails or hits EOF.
func (c *Console) startReader() {
	c.lines = make(chan lineResult, 1)
	go func() {
		defer close(c.lines)
		for {
			line, err := c.reader.ReadString('\n')
			c.lines <- lineResult{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// Static answers prompts from a fixed map keyed by prompt key. Missing keys answer empty.
type Static map[string]string

func (s Static) Prompt(ctx context.Context, key, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(s[key]), nil
}

// Required prompts for key and fails with *UserInputError when the answer is empty.
func Required(ctx context.Context, p Provider, key, label string) (string, error) {
	answer, err := p.Prompt(ctx, key, label)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", &UserInputError{Key: key, Label: label}
	}
	return answer, nil
}
