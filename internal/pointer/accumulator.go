package pointer

import (
	"fmt"
	"io"

	"github.com/bnema/wlptr/internal/logger"
)

// Handler receives wl_pointer sub-events in protocol order
type Handler interface {
	Enter(serial uint32, x, y Fixed)
	Leave(serial uint32)
	Motion(time uint32, x, y Fixed)
	Button(serial, time, button uint32, state ButtonState)
	Axis(time uint32, axis Axis, value Fixed)
	AxisSource(source AxisSource)
	AxisStop(time uint32, axis Axis)
	AxisDiscrete(axis Axis, discrete int32)
	Frame()
}

// Frame is a flushed Event together with its rendered line
type Frame struct {
	Event Event
	Line  string
}

// Accumulator merges sub-events into an Event and flushes it on Frame.
// It is not safe for concurrent use; it belongs to the dispatch goroutine.
type Accumulator struct {
	event     Event
	out       io.Writer
	observers []func(Frame)
	frames    uint64
}

// NewAccumulator creates an accumulator writing frame lines to out.
// A nil out discards the lines.
func NewAccumulator(out io.Writer) *Accumulator {
	if out == nil {
		out = io.Discard
	}
	return &Accumulator{out: out}
}

// OnFrame registers fn to be called with every flushed frame
func (a *Accumulator) OnFrame(fn func(Frame)) {
	a.observers = append(a.observers, fn)
}

// Pending returns a copy of the in-progress event
func (a *Accumulator) Pending() Event {
	return a.event
}

// Frames returns how many frames have been flushed
func (a *Accumulator) Frames() uint64 {
	return a.frames
}

func (a *Accumulator) Enter(serial uint32, x, y Fixed) {
	a.event.Mask |= MaskEnter
	a.event.Serial = serial
	a.event.SurfaceX = x
	a.event.SurfaceY = y
}

func (a *Accumulator) Leave(serial uint32) {
	a.event.Mask |= MaskLeave
	a.event.Serial = serial
}

func (a *Accumulator) Motion(time uint32, x, y Fixed) {
	a.event.Mask |= MaskMotion
	a.event.Time = time
	a.event.SurfaceX = x
	a.event.SurfaceY = y
}

func (a *Accumulator) Button(serial, time, button uint32, state ButtonState) {
	a.event.Mask |= MaskButton
	a.event.Serial = serial
	a.event.Time = time
	a.event.Button = button
	a.event.State = state
}

func (a *Accumulator) Axis(time uint32, axis Axis, value Fixed) {
	s := a.axis(axis)
	a.event.Mask |= MaskAxis
	a.event.Time = time
	s.Valid = true
	s.Value = value
}

func (a *Accumulator) AxisSource(source AxisSource) {
	a.event.Mask |= MaskAxisSource
	a.event.Source = source
}

// AxisStop marks the axis as stopped without touching its value
func (a *Accumulator) AxisStop(time uint32, axis Axis) {
	s := a.axis(axis)
	a.event.Mask |= MaskAxisStop
	a.event.Time = time
	s.Valid = true
}

func (a *Accumulator) AxisDiscrete(axis Axis, discrete int32) {
	s := a.axis(axis)
	a.event.Mask |= MaskAxisDiscrete
	s.Valid = true
	s.Discrete = discrete
}

// Frame writes the accumulated event and resets it
func (a *Accumulator) Frame() {
	frame := Frame{Event: a.event, Line: Format(a.event)}

	if _, err := io.WriteString(a.out, frame.Line); err != nil {
		logger.Warnf("Failed to write pointer frame: %v", err)
	}

	a.event = Event{}
	a.frames++

	for _, fn := range a.observers {
		fn(frame)
	}
}

// axis panics on values that did not come through ParseAxis
func (a *Accumulator) axis(axis Axis) *AxisState {
	if axis != AxisVertical && axis != AxisHorizontal {
		panic(fmt.Sprintf("pointer: axis %d out of range", uint32(axis)))
	}
	return &a.event.Axes[axis]
}
