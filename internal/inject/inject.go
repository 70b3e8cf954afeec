// Package inject generates real pointer activity through a uinput virtual
// mouse, so a running watcher receives genuine compositor frames.
package inject

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ThomasT75/uinput"
	"github.com/bnema/wlptr/internal/logger"
)

var (
	// ErrEmptyScript is returned when there is nothing to inject
	ErrEmptyScript = errors.New("empty inject script")
	// ErrUnknownButton is returned for buttons other than left, right and middle
	ErrUnknownButton = errors.New("unknown button")
)

// Mouse is the subset of uinput.Mouse the injector drives
type Mouse interface {
	Move(x, y int32) error
	LeftPress() error
	LeftRelease() error
	RightPress() error
	RightRelease() error
	MiddlePress() error
	MiddleRelease() error
	Wheel(horizontal bool, delta int32) error
}

var _ Mouse = (uinput.Mouse)(nil)

// NewVirtualMouse creates a uinput mouse on device (usually /dev/uinput)
func NewVirtualMouse(device string) (uinput.Mouse, error) {
	mouse, err := uinput.CreateMouse(device, []byte("wlptr virtual mouse"))
	if err != nil {
		return nil, fmt.Errorf("failed to create virtual mouse: %w", err)
	}
	return mouse, nil
}

// Op is an inject step kind
type Op int

const (
	OpMove Op = iota
	OpClick
	OpScroll
	OpHScroll
	OpSleep
)

// Button is a mouse button for click steps
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Step is one scripted action
type Step struct {
	Op     Op
	DX, DY int32
	Button Button
	Delta  int32
	Sleep  time.Duration
}

func (s Step) String() string {
	switch s.Op {
	case OpMove:
		return fmt.Sprintf("move %d %d", s.DX, s.DY)
	case OpClick:
		return "click " + [...]string{"left", "right", "middle"}[s.Button]
	case OpScroll:
		return fmt.Sprintf("scroll %d", s.Delta)
	case OpHScroll:
		return fmt.Sprintf("hscroll %d", s.Delta)
	case OpSleep:
		return "sleep " + s.Sleep.String()
	default:
		return "unknown"
	}
}

// ParseScript parses steps separated by ';' or given as separate strings:
//
//	move DX DY | click left|right|middle | scroll N | hscroll N | sleep DURATION
func ParseScript(parts ...string) ([]Step, error) {
	var steps []Step
	for _, part := range parts {
		for _, raw := range strings.Split(part, ";") {
			fields := strings.Fields(raw)
			if len(fields) == 0 {
				continue
			}
			step, err := parseStep(fields)
			if err != nil {
				return nil, fmt.Errorf("step %d %q: %w", len(steps)+1, strings.TrimSpace(raw), err)
			}
			steps = append(steps, step)
		}
	}
	if len(steps) == 0 {
		return nil, ErrEmptyScript
	}
	return steps, nil
}

func parseStep(fields []string) (Step, error) {
	args := fields[1:]
	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", fields[0], n, len(args))
		}
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "move":
		if err := want(2); err != nil {
			return Step{}, err
		}
		dx, err := parseInt32(args[0])
		if err != nil {
			return Step{}, err
		}
		dy, err := parseInt32(args[1])
		if err != nil {
			return Step{}, err
		}
		return Step{Op: OpMove, DX: dx, DY: dy}, nil

	case "click":
		if err := want(1); err != nil {
			return Step{}, err
		}
		switch strings.ToLower(args[0]) {
		case "left":
			return Step{Op: OpClick, Button: ButtonLeft}, nil
		case "right":
			return Step{Op: OpClick, Button: ButtonRight}, nil
		case "middle":
			return Step{Op: OpClick, Button: ButtonMiddle}, nil
		default:
			return Step{}, fmt.Errorf("%w: %s", ErrUnknownButton, args[0])
		}

	case "scroll", "hscroll":
		if err := want(1); err != nil {
			return Step{}, err
		}
		delta, err := parseInt32(args[0])
		if err != nil {
			return Step{}, err
		}
		op := OpScroll
		if strings.ToLower(fields[0]) == "hscroll" {
			op = OpHScroll
		}
		return Step{Op: op, Delta: delta}, nil

	case "sleep":
		if err := want(1); err != nil {
			return Step{}, err
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return Step{}, err
		}
		if d < 0 {
			return Step{}, fmt.Errorf("negative sleep %s", d)
		}
		return Step{Op: OpSleep, Sleep: d}, nil

	default:
		return Step{}, fmt.Errorf("unknown step %q", fields[0])
	}
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int32(v), nil
}

// Run executes steps on m, waiting delay between them
func Run(ctx context.Context, m Mouse, steps []Step, delay time.Duration) error {
	for i, step := range steps {
		if i > 0 && delay > 0 {
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}

		logger.Debugf("Injecting %s", step)
		if err := apply(ctx, m, step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}
	return nil
}

func apply(ctx context.Context, m Mouse, step Step) error {
	switch step.Op {
	case OpMove:
		return m.Move(step.DX, step.DY)
	case OpClick:
		return click(m, step.Button)
	case OpScroll:
		return m.Wheel(false, step.Delta)
	case OpHScroll:
		return m.Wheel(true, step.Delta)
	case OpSleep:
		return sleep(ctx, step.Sleep)
	default:
		return fmt.Errorf("unknown op %d", step.Op)
	}
}

func click(m Mouse, b Button) error {
	var press, release func() error
	switch b {
	case ButtonLeft:
		press, release = m.LeftPress, m.LeftRelease
	case ButtonRight:
		press, release = m.RightPress, m.RightRelease
	case ButtonMiddle:
		press, release = m.MiddlePress, m.MiddleRelease
	default:
		return fmt.Errorf("%w: %d", ErrUnknownButton, b)
	}
	if err := press(); err != nil {
		return err
	}
	return release()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
