// Package rofi implements ports.Presenter on top of rofi's dmenu mode.
package rofi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
)

// Runner executes a menu program with stdin and returns its stdout.
type Runner func(ctx context.Context, name string, args []string, stdin string) (string, error)

// Presenter drives rofi (or any dmenu-compatible program).
type Presenter struct {
	command string
	args    []string
	run     Runner
}

var _ ports.Presenter = (*Presenter)(nil)

// NewPresenter creates a Presenter for the configured menu command.
func NewPresenter(cfg config.FrontendConfig) *Presenter {
	command := cfg.Command
	if command == "" {
		command = "rofi"
	}
	return &Presenter{
		command: command,
		args:    cfg.Args,
		run:     execRunner,
	}
}

// WithRunner replaces the process runner.
func (p *Presenter) WithRunner(run Runner) *Presenter {
	p.run = run
	return p
}

// RenderSingleChoice opens a free-text prompt with no list.
func (p *Presenter) RenderSingleChoice(ctx context.Context, prompt string) (string, error) {
	out, err := p.invoke(ctx, "", "-l", "0", "-p", prompt, "-dmenu")
	if err != nil {
		return "", err
	}
	return out, nil
}

// RenderList shows items one per line and returns the chosen one.
func (p *Presenter) RenderList(ctx context.Context, prompt string, items []string) (string, error) {
	out, err := p.invoke(ctx, strings.Join(items, "\n"), "-dmenu", "-i", "-p", prompt)
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", ports.ErrSelectionCancelled
	}
	return out, nil
}

// ShowError shows message in a dismissable window.
func (p *Presenter) ShowError(ctx context.Context, message string) error {
	_, err := p.invoke(ctx, "", "-e", message)
	if errors.Is(err, ports.ErrSelectionCancelled) {
		return nil
	}
	return err
}

// ShowCard shows the card text in a dismissable window.
func (p *Presenter) ShowCard(ctx context.Context, text string) error {
	return p.ShowError(ctx, text)
}

func (p *Presenter) invoke(ctx context.Context, stdin string, args ...string) (string, error) {
	full := make([]string, 0, len(p.args)+len(args))
	full = append(full, p.args...)
	full = append(full, args...)

	out, err := p.run(ctx, p.command, full, stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\r\n"), nil
}

// execRunner runs the program. rofi exits with status 1 when the user
// dismisses the window.
func execRunner(ctx context.Context, name string, args []string, stdin string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", fmt.Errorf("can't find %s - did you install it?", name)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return "", ports.ErrSelectionCancelled
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return "", fmt.Errorf("running %s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
}
