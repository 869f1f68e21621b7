// Package terminal implements ports.Presenter over plain line-oriented I/O.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

// Presenter reads answers from in and writes prompts to out.
type Presenter struct {
	in  *bufio.Reader
	out io.Writer
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter creates a terminal Presenter.
func NewPresenter(in io.Reader, out io.Writer) *Presenter {
	return &Presenter{in: bufio.NewReader(in), out: out}
}

// RenderSingleChoice prints prompt and reads one line.
func (p *Presenter) RenderSingleChoice(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", prompt)
	return p.readLine(ctx)
}

// RenderList prints a numbered list and reads a choice, either by number or
// by the item text. An empty answer cancels.
func (p *Presenter) RenderList(ctx context.Context, prompt string, items []string) (string, error) {
	if len(items) == 0 {
		return "", ports.ErrSelectionCancelled
	}
	for i, item := range items {
		fmt.Fprintf(p.out, "%3d) %s\n", i+1, item)
	}

	for {
		fmt.Fprintf(p.out, "%s [1-%d]: ", prompt, len(items))
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return "", ports.ErrSelectionCancelled
		}
		if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(items) {
			return items[n-1], nil
		}
		for _, item := range items {
			if strings.EqualFold(item, answer) {
				return item, nil
			}
		}
		fmt.Fprintf(p.out, "%q is not one of the choices\n", answer)
	}
}

// ShowError prints message.
func (p *Presenter) ShowError(_ context.Context, message string) error {
	_, err := fmt.Fprintln(p.out, message)
	return err
}

// ShowCard prints the card text followed by a blank line.
func (p *Presenter) ShowCard(_ context.Context, text string) error {
	_, err := fmt.Fprintf(p.out, "%s\n\n", text)
	return err
}

func (p *Presenter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", ports.ErrSelectionCancelled
	}
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
