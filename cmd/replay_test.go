package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/wlptr/internal/pointer"
	"github.com/bnema/wlptr/internal/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTrace(t *testing.T, path string, feed func(h pointer.Handler)) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	rec := trace.NewRecorder(f)
	feed(rec)
	require.NoError(t, rec.Close())
}

func TestReplayCommand(t *testing.T) {
	tmpDir := resetConfig(t)
	tracePath := filepath.Join(tmpDir, "session.trace")
	outPath := filepath.Join(tmpDir, "frames.log")

	writeTrace(t, tracePath, func(h pointer.Handler) {
		h.Enter(1, pointer.FixedFromInt(10), pointer.FixedFromInt(20))
		h.Frame()
		h.Button(2, 50, 272, pointer.ButtonReleased)
		h.Frame()
		h.Frame()
	})

	_, err := executeCommand(rootCmd, "replay", tracePath, "--output", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.SplitAfter(string(data), "\n")
	require.Len(t, lines, 4) // trailing empty element after the last newline
	assert.Equal(t, "pointer frame @ 0: entered 10.000000, 20.000000 \n", lines[0])
	assert.Equal(t, "pointer frame @ 50: button 272 released \n", lines[1])
	assert.Equal(t, "pointer frame @ 0: \n", lines[2])
}

func TestReplayCommandErrors(t *testing.T) {
	tmpDir := resetConfig(t)

	_, err := executeCommand(rootCmd, "replay", filepath.Join(tmpDir, "missing.trace"), "--output", "stdout")
	assert.ErrorContains(t, err, "failed to open trace")

	corrupt := filepath.Join(tmpDir, "corrupt.trace")
	require.NoError(t, os.WriteFile(corrupt, []byte{0x0a, 0x10, 0x08}, 0644))
	_, err = executeCommand(rootCmd, "replay", corrupt, "--output", "stdout")
	assert.ErrorIs(t, err, trace.ErrTruncated)
}

func TestOpenOutput(t *testing.T) {
	w, closeOut, err := openOutput("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)
	assert.NoError(t, closeOut())

	w, closeOut, err = openOutput("stdout")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)
	assert.NoError(t, closeOut())

	path := filepath.Join(t.TempDir(), "out.log")
	w, closeOut, err = openOutput(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, closeOut())

	_, _, err = openOutput(filepath.Join(t.TempDir(), "missing", "dir", "out.log"))
	assert.Error(t, err)

	assert.True(t, isTerminalTarget(""))
	assert.False(t, isTerminalTarget(path))
}
