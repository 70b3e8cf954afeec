package pointer

// Multi fans every sub-event out to several handlers, in order
type Multi []Handler

func (m Multi) Enter(serial uint32, x, y Fixed) {
	for _, h := range m {
		h.Enter(serial, x, y)
	}
}

func (m Multi) Leave(serial uint32) {
	for _, h := range m {
		h.Leave(serial)
	}
}

func (m Multi) Motion(time uint32, x, y Fixed) {
	for _, h := range m {
		h.Motion(time, x, y)
	}
}

func (m Multi) Button(serial, time, button uint32, state ButtonState) {
	for _, h := range m {
		h.Button(serial, time, button, state)
	}
}

func (m Multi) Axis(time uint32, axis Axis, value Fixed) {
	for _, h := range m {
		h.Axis(time, axis, value)
	}
}

func (m Multi) AxisSource(source AxisSource) {
	for _, h := range m {
		h.AxisSource(source)
	}
}

func (m Multi) AxisStop(time uint32, axis Axis) {
	for _, h := range m {
		h.AxisStop(time, axis)
	}
}

func (m Multi) AxisDiscrete(axis Axis, discrete int32) {
	for _, h := range m {
		h.AxisDiscrete(axis, discrete)
	}
}

func (m Multi) Frame() {
	for _, h := range m {
		h.Frame()
	}
}
