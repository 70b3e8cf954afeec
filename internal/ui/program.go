package ui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/wlptr/internal/logger"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramConfig holds configuration for running a UI program
type ProgramConfig struct {
	AltScreen bool
	// Input and Output override the terminal, mostly for tests
	Input  io.Reader
	Output io.Writer
	// QuitTimeout bounds how long Run waits for the program after ctx ends
	QuitTimeout time.Duration
}

// DefaultProgramConfig returns default configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		AltScreen:   true,
		QuitTimeout: 2 * time.Second,
	}
}

// ProgramRunner manages the lifecycle of a Bubble Tea program
type ProgramRunner struct {
	config  ProgramConfig
	program *tea.Program
	done    chan struct{} // Signals when the program has exited
}

// NewProgramRunner creates a runner for model
func NewProgramRunner(config ProgramConfig, model tea.Model) *ProgramRunner {
	var opts []tea.ProgramOption
	if config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if config.Input != nil {
		opts = append(opts, tea.WithInput(config.Input))
	}
	if config.Output != nil {
		opts = append(opts, tea.WithOutput(config.Output))
	}

	return &ProgramRunner{
		config:  config,
		program: tea.NewProgram(model, opts...),
		done:    make(chan struct{}),
	}
}

// Run blocks until the program exits or ctx is cancelled
func (r *ProgramRunner) Run(ctx context.Context) error {
	defer close(r.done)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.program.Run()
		errCh <- err
	}()

	var runErr error
	select {
	case runErr = <-errCh:
	case <-ctx.Done():
		r.program.Quit()

		select {
		case runErr = <-errCh:
		case <-time.After(r.config.QuitTimeout):
			logger.Warn("UI did not quit in time, killing it")
			r.program.Kill()
			<-errCh
		}
	}

	if runErr != nil && runErr != tea.ErrProgramKilled {
		return fmt.Errorf("ui program failed: %w", runErr)
	}
	return nil
}

// Send sends a message to the running program
func (r *ProgramRunner) Send(msg tea.Msg) {
	r.program.Send(msg)
}

// Quit asks the program to exit
func (r *ProgramRunner) Quit() {
	r.program.Quit()
}

// Done returns a channel that's closed when the program exits
func (r *ProgramRunner) Done() <-chan struct{} {
	return r.done
}
