// Package trace records pointer sub-event streams and replays them.
//
// A trace is a sequence of protobuf wire fields. The stream starts with a
// version field and continues with one length-delimited record per
// sub-event. Fixed point values are stored raw so a replay reproduces the
// exact frame lines of the recording.
package trace

import (
	"errors"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// Version is the trace format version written by Recorder
const Version = 1

var (
	// ErrTruncated is returned when a trace ends in the middle of a record
	ErrTruncated = errors.New("trace truncated")
	// ErrUnsupportedVersion is returned for traces written by a newer format
	ErrUnsupportedVersion = errors.New("unsupported trace version")
	// ErrUnknownKind is returned for records with an unknown sub-event kind
	ErrUnknownKind = errors.New("unknown record kind")
)

// Kind identifies the sub-event a record carries
type Kind uint64

const (
	KindEnter Kind = iota + 1
	KindLeave
	KindMotion
	KindButton
	KindAxis
	KindAxisSource
	KindAxisStop
	KindAxisDiscrete
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindEnter:
		return "enter"
	case KindLeave:
		return "leave"
	case KindMotion:
		return "motion"
	case KindButton:
		return "button"
	case KindAxis:
		return "axis"
	case KindAxisSource:
		return "axis_source"
	case KindAxisStop:
		return "axis_stop"
	case KindAxisDiscrete:
		return "axis_discrete"
	case KindFrame:
		return "frame"
	default:
		return fmt.Sprintf("kind(%d)", uint64(k))
	}
}

// stream level fields
const (
	streamRecord  protowire.Number = 1
	streamVersion protowire.Number = 15
)

// record fields
const (
	fieldKind     protowire.Number = 1
	fieldSerial   protowire.Number = 2
	fieldTime     protowire.Number = 3
	fieldX        protowire.Number = 4
	fieldY        protowire.Number = 5
	fieldButton   protowire.Number = 6
	fieldState    protowire.Number = 7
	fieldAxis     protowire.Number = 8
	fieldValue    protowire.Number = 9
	fieldSource   protowire.Number = 10
	fieldDiscrete protowire.Number = 11
)

// Record is one decoded sub-event. Raw protocol integers are kept undecoded
// so that Replay can validate them like the live adapter does.
type Record struct {
	Kind     Kind
	Serial   uint32
	Time     uint32
	X        int32
	Y        int32
	Button   uint32
	State    uint32
	Axis     uint32
	Value    int32
	Source   uint32
	Discrete int32
}

func (r Record) append(b []byte) []byte {
	b = appendVarint(b, fieldKind, uint64(r.Kind))
	b = appendVarint(b, fieldSerial, uint64(r.Serial))
	b = appendVarint(b, fieldTime, uint64(r.Time))
	b = appendSint(b, fieldX, r.X)
	b = appendSint(b, fieldY, r.Y)
	b = appendVarint(b, fieldButton, uint64(r.Button))
	b = appendVarint(b, fieldState, uint64(r.State))
	b = appendVarint(b, fieldAxis, uint64(r.Axis))
	b = appendSint(b, fieldValue, r.Value)
	b = appendVarint(b, fieldSource, uint64(r.Source))
	b = appendSint(b, fieldDiscrete, r.Discrete)
	return b
}

// zero fields are omitted, as proto3 does
func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendSint(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, protowire.EncodeZigZag(int64(v)))
}

func decodeRecord(b []byte) (Record, error) {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, wireError(n)
		}
		b = b[n:]

		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return r, wireError(n)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return r, wireError(n)
		}
		b = b[n:]

		switch num {
		case fieldKind:
			r.Kind = Kind(v)
		case fieldSerial:
			r.Serial = uint32(v)
		case fieldTime:
			r.Time = uint32(v)
		case fieldX:
			r.X = int32(protowire.DecodeZigZag(v))
		case fieldY:
			r.Y = int32(protowire.DecodeZigZag(v))
		case fieldButton:
			r.Button = uint32(v)
		case fieldState:
			r.State = uint32(v)
		case fieldAxis:
			r.Axis = uint32(v)
		case fieldValue:
			r.Value = int32(protowire.DecodeZigZag(v))
		case fieldSource:
			r.Source = uint32(v)
		case fieldDiscrete:
			r.Discrete = int32(protowire.DecodeZigZag(v))
		}
	}
	return r, nil
}

func wireError(n int) error {
	err := protowire.ParseError(n)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
