package wayland

import (
	"github.com/bnema/wlptr/internal/logger"
	"github.com/bnema/wlptr/internal/pointer"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// Listener translates wl_pointer events into pointer.Handler calls.
// Raw protocol enums are decoded here; a sub-event carrying a value outside
// its enum is logged and dropped so it never reaches the handler.
type Listener struct {
	h       pointer.Handler
	dropped uint64
}

// NewListener creates a listener forwarding to h
func NewListener(h pointer.Handler) *Listener {
	return &Listener{h: h}
}

// Attach installs the listener's handlers on p
func (l *Listener) Attach(p *client.Pointer) {
	p.SetEnterHandler(l.HandleEnter)
	p.SetLeaveHandler(l.HandleLeave)
	p.SetMotionHandler(l.HandleMotion)
	p.SetButtonHandler(l.HandleButton)
	p.SetAxisHandler(l.HandleAxis)
	p.SetFrameHandler(l.HandleFrame)
	p.SetAxisSourceHandler(l.HandleAxisSource)
	p.SetAxisStopHandler(l.HandleAxisStop)
	p.SetAxisDiscreteHandler(l.HandleAxisDiscrete)
}

// Dropped returns how many malformed sub-events were rejected
func (l *Listener) Dropped() uint64 {
	return l.dropped
}

func (l *Listener) drop(event string, err error) {
	l.dropped++
	logger.Warnf("Dropping malformed %s event: %v", event, err)
}

func (l *Listener) HandleEnter(e client.PointerEnterEvent) {
	logger.Debugf("wl_pointer.enter serial=%d x=%v y=%v", e.Serial, e.SurfaceX, e.SurfaceY)
	l.h.Enter(e.Serial, pointer.FixedFromFloat(float64(e.SurfaceX)), pointer.FixedFromFloat(float64(e.SurfaceY)))
}

func (l *Listener) HandleLeave(e client.PointerLeaveEvent) {
	logger.Debugf("wl_pointer.leave serial=%d", e.Serial)
	l.h.Leave(e.Serial)
}

func (l *Listener) HandleMotion(e client.PointerMotionEvent) {
	logger.Debugf("wl_pointer.motion time=%d x=%v y=%v", e.Time, e.SurfaceX, e.SurfaceY)
	l.h.Motion(e.Time, pointer.FixedFromFloat(float64(e.SurfaceX)), pointer.FixedFromFloat(float64(e.SurfaceY)))
}

func (l *Listener) HandleButton(e client.PointerButtonEvent) {
	state, err := pointer.ParseButtonState(uint32(e.State))
	if err != nil {
		l.drop("button", err)
		return
	}
	logger.Debugf("wl_pointer.button serial=%d time=%d button=%d state=%s", e.Serial, e.Time, e.Button, state)
	l.h.Button(uint32(e.Serial), uint32(e.Time), uint32(e.Button), state)
}

func (l *Listener) HandleAxis(e client.PointerAxisEvent) {
	axis, err := pointer.ParseAxis(uint32(e.Axis))
	if err != nil {
		l.drop("axis", err)
		return
	}
	logger.Debugf("wl_pointer.axis time=%d axis=%s value=%v", e.Time, axis, e.Value)
	l.h.Axis(e.Time, axis, pointer.FixedFromFloat(float64(e.Value)))
}

func (l *Listener) HandleAxisSource(e client.PointerAxisSourceEvent) {
	source, err := pointer.ParseAxisSource(uint32(e.AxisSource))
	if err != nil {
		l.drop("axis_source", err)
		return
	}
	logger.Debugf("wl_pointer.axis_source source=%s", source)
	l.h.AxisSource(source)
}

func (l *Listener) HandleAxisStop(e client.PointerAxisStopEvent) {
	axis, err := pointer.ParseAxis(uint32(e.Axis))
	if err != nil {
		l.drop("axis_stop", err)
		return
	}
	logger.Debugf("wl_pointer.axis_stop time=%d axis=%s", e.Time, axis)
	l.h.AxisStop(e.Time, axis)
}

func (l *Listener) HandleAxisDiscrete(e client.PointerAxisDiscreteEvent) {
	axis, err := pointer.ParseAxis(uint32(e.Axis))
	if err != nil {
		l.drop("axis_discrete", err)
		return
	}
	logger.Debugf("wl_pointer.axis_discrete axis=%s discrete=%d", axis, e.Discrete)
	l.h.AxisDiscrete(axis, int32(e.Discrete))
}

func (l *Listener) HandleFrame(client.PointerFrameEvent) {
	l.h.Frame()
}
