package trace

import (
	"fmt"
	"io"

	"github.com/bnema/wlptr/internal/logger"
	"github.com/bnema/wlptr/internal/pointer"
	"google.golang.org/protobuf/encoding/protowire"
)

// Decode parses a whole trace into records
func Decode(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	var records []Record
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return records, fmt.Errorf("record %d: %w", len(records), wireError(n))
		}
		data = data[n:]

		switch {
		case num == streamVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return records, fmt.Errorf("version: %w", wireError(n))
			}
			data = data[n:]
			if v > Version {
				return records, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
			}

		case num == streamRecord && typ == protowire.BytesType:
			b, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return records, fmt.Errorf("record %d: %w", len(records), wireError(n))
			}
			data = data[n:]
			rec, err := decodeRecord(b)
			if err != nil {
				return records, fmt.Errorf("record %d: %w", len(records), err)
			}
			records = append(records, rec)

		default:
			n = protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return records, fmt.Errorf("record %d: %w", len(records), wireError(n))
			}
			data = data[n:]
		}
	}

	return records, nil
}

// Replay decodes a trace and dispatches it into h. It returns the number of
// records dispatched. Records whose protocol values do not decode are
// rejected and stop the replay.
func Replay(r io.Reader, h pointer.Handler) (int, error) {
	records, err := Decode(r)
	if err != nil {
		return 0, err
	}

	for i, rec := range records {
		if err := Dispatch(rec, h); err != nil {
			return i, fmt.Errorf("record %d: %w", i, err)
		}
	}

	logger.Debugf("Replayed %d trace records", len(records))
	return len(records), nil
}

// Dispatch delivers one record to h
func Dispatch(rec Record, h pointer.Handler) error {
	switch rec.Kind {
	case KindEnter:
		h.Enter(rec.Serial, pointer.Fixed(rec.X), pointer.Fixed(rec.Y))
	case KindLeave:
		h.Leave(rec.Serial)
	case KindMotion:
		h.Motion(rec.Time, pointer.Fixed(rec.X), pointer.Fixed(rec.Y))
	case KindButton:
		state, err := pointer.ParseButtonState(rec.State)
		if err != nil {
			return err
		}
		h.Button(rec.Serial, rec.Time, rec.Button, state)
	case KindAxis:
		axis, err := pointer.ParseAxis(rec.Axis)
		if err != nil {
			return err
		}
		h.Axis(rec.Time, axis, pointer.Fixed(rec.Value))
	case KindAxisSource:
		source, err := pointer.ParseAxisSource(rec.Source)
		if err != nil {
			return err
		}
		h.AxisSource(source)
	case KindAxisStop:
		axis, err := pointer.ParseAxis(rec.Axis)
		if err != nil {
			return err
		}
		h.AxisStop(rec.Time, axis)
	case KindAxisDiscrete:
		axis, err := pointer.ParseAxis(rec.Axis)
		if err != nil {
			return err
		}
		h.AxisDiscrete(axis, rec.Discrete)
	case KindFrame:
		h.Frame()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint64(rec.Kind))
	}
	return nil
}
