package trace

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bnema/wlptr/internal/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

// feed drives a handler with a representative session
func feed(h pointer.Handler) {
	h.Enter(10, pointer.FixedFromFloat(12.5), pointer.FixedFromFloat(-4.75))
	h.Frame()
	h.Motion(1000, pointer.FixedFromInt(13), pointer.FixedFromInt(-4))
	h.Motion(1001, pointer.FixedFromInt(14), pointer.FixedFromInt(-3))
	h.Frame()
	h.Button(11, 1010, 272, pointer.ButtonPressed)
	h.Frame()
	h.AxisSource(pointer.AxisSourceWheel)
	h.Axis(1020, pointer.AxisVertical, pointer.FixedFromInt(15))
	h.AxisDiscrete(pointer.AxisVertical, 1)
	h.Frame()
	h.AxisSource(pointer.AxisSourceFinger)
	h.AxisStop(1030, pointer.AxisHorizontal)
	h.Frame()
	h.Leave(12)
	h.Frame()
}

func encode(records ...Record) []byte {
	var b []byte
	b = protowire.AppendTag(b, streamVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, Version)
	for _, rec := range records {
		b = protowire.AppendTag(b, streamRecord, protowire.BytesType)
		b = protowire.AppendBytes(b, rec.append(nil))
	}
	return b
}

func TestRecordReplayReproducesFrames(t *testing.T) {
	var live bytes.Buffer
	var stream bytes.Buffer

	rec := NewRecorder(&stream)
	feed(pointer.Multi{pointer.NewAccumulator(&live), rec})
	require.NoError(t, rec.Close())
	assert.Equal(t, 16, rec.Records())

	var replayed bytes.Buffer
	n, err := Replay(&stream, pointer.NewAccumulator(&replayed))
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, live.String(), replayed.String())
	assert.Contains(t, replayed.String(), "pointer frame @ 1020: vertical axis value 15.000000 discrete 1 via wheel \n")
}

func TestDecodeRecordFields(t *testing.T) {
	in := Record{
		Kind:     KindButton,
		Serial:   4,
		Time:     99,
		X:        -512,
		Y:        300,
		Button:   273,
		State:    1,
		Axis:     1,
		Value:    -1,
		Source:   3,
		Discrete: -2,
	}

	records, err := Decode(bytes.NewReader(encode(in)))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, in, records[0])
}

func TestDecodeEmpty(t *testing.T) {
	records, err := Decode(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeTruncated(t *testing.T) {
	data := encode(Record{Kind: KindMotion, Time: 5, X: 256, Y: 256})
	_, err := Decode(bytes.NewReader(data[:len(data)-1]))
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeNewerVersion(t *testing.T) {
	var b []byte
	b = protowire.AppendTag(b, streamVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, Version+1)

	_, err := Decode(bytes.NewReader(b))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	b := encode(Record{Kind: KindFrame})
	b = protowire.AppendTag(b, 7, protowire.BytesType)
	b = protowire.AppendString(b, "annotation")

	records, err := Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReplayRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want error
	}{
		{"axis out of range", Record{Kind: KindAxis, Axis: 2}, pointer.ErrInvalidAxis},
		{"axis stop out of range", Record{Kind: KindAxisStop, Axis: 9}, pointer.ErrInvalidAxis},
		{"discrete out of range", Record{Kind: KindAxisDiscrete, Axis: 3}, pointer.ErrInvalidAxis},
		{"unknown source", Record{Kind: KindAxisSource, Source: 4}, pointer.ErrInvalidAxisSource},
		{"unknown button state", Record{Kind: KindButton, State: 2}, pointer.ErrInvalidButtonState},
		{"unknown kind", Record{Kind: 42}, ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			acc := pointer.NewAccumulator(&out)
			data := encode(Record{Kind: KindLeave, Serial: 1}, tt.rec, Record{Kind: KindFrame})

			n, err := Replay(bytes.NewReader(data), acc)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 1, n)
			assert.Empty(t, out.String())
		})
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRecorderStickyError(t *testing.T) {
	rec := NewRecorder(brokenWriter{})

	// the first frame forces a flush into the broken writer
	rec.Leave(1)
	rec.Frame()
	rec.Leave(2)

	require.Error(t, rec.Err())
	assert.Error(t, rec.Close())
	assert.Contains(t, rec.Err().Error(), "disk full")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "axis_discrete", KindAxisDiscrete.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
