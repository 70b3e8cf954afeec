// Package pointer accumulates wl_pointer sub-events into logical frames.
//
// The compositor delivers a burst of sub-events (enter, motion, button,
// axis...) followed by a frame event. An Accumulator merges the burst into a
// single Event and, on Frame, renders it as one summary line and resets.
package pointer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAxis is returned when a raw axis value is neither vertical nor horizontal
	ErrInvalidAxis = errors.New("invalid pointer axis")
	// ErrInvalidAxisSource is returned for unknown axis source values
	ErrInvalidAxisSource = errors.New("invalid pointer axis source")
	// ErrInvalidButtonState is returned for unknown button state values
	ErrInvalidButtonState = errors.New("invalid pointer button state")
)

// Mask records which sub-event kinds arrived since the last frame
type Mask uint32

const (
	MaskEnter Mask = 1 << iota
	MaskLeave
	MaskMotion
	MaskButton
	MaskAxis
	MaskAxisSource
	MaskAxisStop
	MaskAxisDiscrete
)

// MaskAxisAny is set if any axis related sub-event arrived
const MaskAxisAny = MaskAxis | MaskAxisSource | MaskAxisStop | MaskAxisDiscrete

// Has reports whether every bit of other is set in m
func (m Mask) Has(other Mask) bool {
	return m&other == other
}

// Any reports whether at least one bit of other is set in m
func (m Mask) Any(other Mask) bool {
	return m&other != 0
}

// Axis is a scroll dimension
type Axis uint32

const (
	AxisVertical   Axis = 0
	AxisHorizontal Axis = 1
)

// ParseAxis decodes a wl_pointer.axis value
func ParseAxis(v uint32) (Axis, error) {
	switch Axis(v) {
	case AxisVertical, AxisHorizontal:
		return Axis(v), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidAxis, v)
	}
}

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	default:
		return fmt.Sprintf("axis(%d)", uint32(a))
	}
}

// AxisSource describes the physical origin of an axis event
type AxisSource uint32

const (
	AxisSourceWheel      AxisSource = 0
	AxisSourceFinger     AxisSource = 1
	AxisSourceContinuous AxisSource = 2
	AxisSourceWheelTilt  AxisSource = 3
)

// ParseAxisSource decodes a wl_pointer.axis_source value
func ParseAxisSource(v uint32) (AxisSource, error) {
	switch AxisSource(v) {
	case AxisSourceWheel, AxisSourceFinger, AxisSourceContinuous, AxisSourceWheelTilt:
		return AxisSource(v), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidAxisSource, v)
	}
}

func (s AxisSource) String() string {
	switch s {
	case AxisSourceWheel:
		return "wheel"
	case AxisSourceFinger:
		return "finger"
	case AxisSourceContinuous:
		return "continuous"
	case AxisSourceWheelTilt:
		return "wheel tilt"
	default:
		return fmt.Sprintf("source(%d)", uint32(s))
	}
}

// ButtonState is the wl_pointer.button_state enum
type ButtonState uint32

const (
	ButtonReleased ButtonState = 0
	ButtonPressed  ButtonState = 1
)

// ParseButtonState decodes a wl_pointer.button_state value
func ParseButtonState(v uint32) (ButtonState, error) {
	switch ButtonState(v) {
	case ButtonReleased, ButtonPressed:
		return ButtonState(v), nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidButtonState, v)
	}
}

func (s ButtonState) String() string {
	if s == ButtonReleased {
		return "released"
	}
	return "pressed"
}

// Fixed is the Wayland 24.8 signed fixed point number
type Fixed int32

// FixedFromFloat converts f to fixed point, rounding to the nearest 1/256
func FixedFromFloat(f float64) Fixed {
	if f >= 0 {
		return Fixed(f*256 + 0.5)
	}
	return Fixed(f*256 - 0.5)
}

// FixedFromInt converts a whole number to fixed point
func FixedFromInt(i int32) Fixed {
	return Fixed(i * 256)
}

// Float decodes the fixed point value
func (f Fixed) Float() float64 {
	return float64(f) / 256
}

// AxisState is the per-axis part of an Event
type AxisState struct {
	// Valid is set when the axis received any axis sub-event this frame
	Valid    bool
	Value    Fixed
	Discrete int32
}

// Event is everything that happened to the pointer since the last frame.
// Fields are only meaningful when the matching Mask bit is set.
type Event struct {
	Mask     Mask
	SurfaceX Fixed
	SurfaceY Fixed
	Button   uint32
	State    ButtonState
	Time     uint32
	Serial   uint32
	Axes     [2]AxisState
	Source   AxisSource
}

// Empty reports whether no sub-event has been recorded
func (e Event) Empty() bool {
	return e.Mask == 0
}
