package trace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bnema/wlptr/internal/pointer"
	"google.golang.org/protobuf/encoding/protowire"
)

// Recorder writes every sub-event it receives to a trace stream.
// Write errors are sticky; once one occurs further records are dropped and
// the error is reported by Err and Close.
type Recorder struct {
	w       *bufio.Writer
	buf     []byte
	started bool
	records int
	err     error
}

var _ pointer.Handler = (*Recorder)(nil)

// NewRecorder creates a recorder writing to w
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: bufio.NewWriter(w)}
}

// Records returns the number of records written
func (r *Recorder) Records() int {
	return r.records
}

// Err returns the first write error
func (r *Recorder) Err() error {
	return r.err
}

// Close flushes buffered records. It does not close the underlying writer.
func (r *Recorder) Close() error {
	if r.err != nil {
		return r.err
	}
	if err := r.w.Flush(); err != nil {
		r.err = fmt.Errorf("failed to flush trace: %w", err)
	}
	return r.err
}

func (r *Recorder) write(rec Record) {
	if r.err != nil {
		return
	}

	b := r.buf[:0]
	if !r.started {
		b = protowire.AppendTag(b, streamVersion, protowire.VarintType)
		b = protowire.AppendVarint(b, Version)
		r.started = true
	}
	b = protowire.AppendTag(b, streamRecord, protowire.BytesType)
	b = protowire.AppendBytes(b, rec.append(nil))
	r.buf = b

	if _, err := r.w.Write(b); err != nil {
		r.err = fmt.Errorf("failed to write %s record: %w", rec.Kind, err)
		return
	}
	r.records++

	// Frames are natural flush points so a crash loses at most one frame
	if rec.Kind == KindFrame {
		if err := r.w.Flush(); err != nil {
			r.err = fmt.Errorf("failed to flush trace: %w", err)
		}
	}
}

func (r *Recorder) Enter(serial uint32, x, y pointer.Fixed) {
	r.write(Record{Kind: KindEnter, Serial: serial, X: int32(x), Y: int32(y)})
}

func (r *Recorder) Leave(serial uint32) {
	r.write(Record{Kind: KindLeave, Serial: serial})
}

func (r *Recorder) Motion(time uint32, x, y pointer.Fixed) {
	r.write(Record{Kind: KindMotion, Time: time, X: int32(x), Y: int32(y)})
}

func (r *Recorder) Button(serial, time, button uint32, state pointer.ButtonState) {
	r.write(Record{Kind: KindButton, Serial: serial, Time: time, Button: button, State: uint32(state)})
}

func (r *Recorder) Axis(time uint32, axis pointer.Axis, value pointer.Fixed) {
	r.write(Record{Kind: KindAxis, Time: time, Axis: uint32(axis), Value: int32(value)})
}

func (r *Recorder) AxisSource(source pointer.AxisSource) {
	r.write(Record{Kind: KindAxisSource, Source: uint32(source)})
}

func (r *Recorder) AxisStop(time uint32, axis pointer.Axis) {
	r.write(Record{Kind: KindAxisStop, Time: time, Axis: uint32(axis)})
}

func (r *Recorder) AxisDiscrete(axis pointer.Axis, discrete int32) {
	r.write(Record{Kind: KindAxisDiscrete, Axis: uint32(axis), Discrete: discrete})
}

func (r *Recorder) Frame() {
	r.write(Record{Kind: KindFrame})
}
