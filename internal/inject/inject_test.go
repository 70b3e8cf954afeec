package inject

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMouse struct {
	calls []string
	fail  error
}

func (m *fakeMouse) record(call string) error {
	m.calls = append(m.calls, call)
	return m.fail
}

func (m *fakeMouse) Move(x, y int32) error { return m.record("move") }
func (m *fakeMouse) LeftPress() error      { return m.record("left+") }
func (m *fakeMouse) LeftRelease() error    { return m.record("left-") }
func (m *fakeMouse) RightPress() error     { return m.record("right+") }
func (m *fakeMouse) RightRelease() error   { return m.record("right-") }
func (m *fakeMouse) MiddlePress() error    { return m.record("middle+") }
func (m *fakeMouse) MiddleRelease() error  { return m.record("middle-") }
func (m *fakeMouse) Wheel(horizontal bool, delta int32) error {
	if horizontal {
		return m.record("hwheel")
	}
	return m.record("wheel")
}

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("move 10 -5; click left", "scroll -1;hscroll 2", "sleep 10ms", "click MIDDLE")
	require.NoError(t, err)

	expected := []Step{
		{Op: OpMove, DX: 10, DY: -5},
		{Op: OpClick, Button: ButtonLeft},
		{Op: OpScroll, Delta: -1},
		{Op: OpHScroll, Delta: 2},
		{Op: OpSleep, Sleep: 10 * time.Millisecond},
		{Op: OpClick, Button: ButtonMiddle},
	}
	assert.Equal(t, expected, steps)
	assert.Equal(t, "move 10 -5", steps[0].String())
	assert.Equal(t, "click middle", steps[5].String())
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		errIs  error
		errMsg string
	}{
		{name: "empty", script: " ; ", errIs: ErrEmptyScript},
		{name: "unknown step", script: "jump 1", errMsg: "unknown step"},
		{name: "missing argument", script: "move 1", errMsg: "takes 2 argument"},
		{name: "bad number", script: "scroll x", errMsg: "invalid number"},
		{name: "overflow", script: "move 99999999999 0", errMsg: "invalid number"},
		{name: "bad button", script: "click side", errIs: ErrUnknownButton},
		{name: "bad duration", script: "sleep soon", errMsg: "step 1"},
		{name: "negative sleep", script: "sleep -1s", errMsg: "negative sleep"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(tt.script)
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestRun(t *testing.T) {
	steps, err := ParseScript("move 1 1; click left; click right; scroll 1; hscroll -1; click middle")
	require.NoError(t, err)

	m := &fakeMouse{}
	require.NoError(t, Run(context.Background(), m, steps, 0))

	assert.Equal(t, []string{"move", "left+", "left-", "right+", "right-", "wheel", "hwheel", "middle+", "middle-"}, m.calls)
}

func TestRunStopsOnError(t *testing.T) {
	steps, err := ParseScript("move 1 1; move 2 2")
	require.NoError(t, err)

	m := &fakeMouse{fail: errors.New("device gone")}
	err = Run(context.Background(), m, steps, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 1 (move 1 1)")
	assert.Len(t, m.calls, 1)
}

func TestRunHonoursContext(t *testing.T) {
	steps, err := ParseScript("move 1 1; sleep 1h")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err = Run(ctx, &fakeMouse{}, steps, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewVirtualMouseBadDevice(t *testing.T) {
	_, err := NewVirtualMouse("/nonexistent/uinput")
	assert.Error(t, err)
}
