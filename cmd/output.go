package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/wlptr/internal/config"
)

// openOutput resolves an output target to a writer and its closer
func openOutput(target string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch target {
	case "", config.TargetStderr:
		return os.Stderr, noop, nil
	case config.TargetStdout:
		return os.Stdout, noop, nil
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open output %s: %w", target, err)
	}
	return f, f.Close, nil
}

// isTerminalTarget reports whether target writes to the terminal
func isTerminalTarget(target string) bool {
	return target == "" || target == config.TargetStderr || target == config.TargetStdout
}
