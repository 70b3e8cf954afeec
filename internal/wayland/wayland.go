// Package wayland connects to the compositor and feeds wl_pointer events
// into a pointer.Handler.
package wayland

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/wlptr/internal/logger"
	"github.com/bnema/wlptr/internal/pointer"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// maxSeatVersion is the highest wl_seat version we bind. Version 8 replaces
// axis_discrete with axis_value120, which the accumulator does not model.
const maxSeatVersion = 7

var (
	// ErrNoSeat is returned when the compositor advertises no wl_seat
	ErrNoSeat = errors.New("compositor advertises no wl_seat")
	// ErrNotConnected is returned when running a closed client
	ErrNotConnected = errors.New("wayland client not connected")
)

// Options configures the connection
type Options struct {
	// Display is the socket name; empty means $WAYLAND_DISPLAY
	Display string
}

// SeatInfo contains information about the bound seat
type SeatInfo struct {
	ID          uint32
	Name        string
	Version     uint32
	HasPointer  bool
	HasKeyboard bool
	HasTouch    bool
}

// Client owns the compositor connection and the seat's pointer
type Client struct {
	display  *client.Display
	registry *client.Registry
	seat     *client.Seat
	pointer  *client.Pointer
	listener *Listener
	info     SeatInfo

	closeOnce sync.Once
	closed    bool
}

// Connect opens the display, binds the first seat and attaches h to its
// pointer as soon as the seat reports the pointer capability.
func Connect(ctx context.Context, opts Options, h pointer.Handler) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	display, err := client.Connect(opts.Display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Wayland display: %w", err)
	}

	c := &Client{
		display:  display,
		listener: NewListener(h),
	}

	display.SetErrorHandler(func(e client.DisplayErrorEvent) {
		logger.Errorf("Wayland protocol error: code %d: %s", e.Code, e.Message)
	})

	registry, err := display.GetRegistry()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}
	c.registry = registry
	registry.SetGlobalHandler(c.handleGlobal)
	registry.SetGlobalRemoveHandler(c.handleGlobalRemove)

	// First roundtrip announces globals, the second delivers seat capabilities
	for i := 0; i < 2; i++ {
		if err := c.roundtrip(); err != nil {
			c.Close()
			return nil, err
		}
	}

	if c.seat == nil {
		c.Close()
		return nil, ErrNoSeat
	}

	logger.Infof("Bound seat %q (v%d, pointer: %v)", c.info.Name, c.info.Version, c.info.HasPointer)
	return c, nil
}

// Seat returns what is known about the bound seat
func (c *Client) Seat() SeatInfo {
	return c.info
}

// Listener returns the adapter feeding the handler
func (c *Client) Listener() *Listener {
	return c.listener
}

// Run dispatches compositor events until ctx is cancelled or the connection
// fails. Handlers run on the calling goroutine.
func (c *Client) Run(ctx context.Context) error {
	if c.closed {
		return ErrNotConnected
	}

	stop := context.AfterFunc(ctx, c.closeConn)
	defer stop()

	for {
		if err := c.display.Context().Dispatch(); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("wayland dispatch failed: %w", err)
		}
	}
}

// Close releases the pointer and seat and closes the connection
func (c *Client) Close() {
	if c.pointer != nil {
		if err := c.pointer.Release(); err != nil {
			logger.Debugf("Failed to release pointer: %v", err)
		}
		c.pointer = nil
	}
	if c.seat != nil {
		if err := c.seat.Release(); err != nil {
			logger.Debugf("Failed to release seat: %v", err)
		}
		c.seat = nil
	}
	c.closeConn()
	c.closed = true
}

func (c *Client) closeConn() {
	c.closeOnce.Do(func() {
		if err := c.display.Context().Close(); err != nil {
			logger.Debugf("Failed to close Wayland connection: %v", err)
		}
	})
}

// roundtrip blocks until the compositor has processed every prior request
func (c *Client) roundtrip() error {
	callback, err := c.display.Sync()
	if err != nil {
		return fmt.Errorf("failed to sync display: %w", err)
	}
	defer func() {
		_ = callback.Destroy()
	}()

	done := false
	callback.SetDoneHandler(func(client.CallbackDoneEvent) {
		done = true
	})

	for !done {
		if err := c.display.Context().Dispatch(); err != nil {
			return fmt.Errorf("wayland dispatch failed: %w", err)
		}
	}
	return nil
}

func (c *Client) handleGlobal(e client.RegistryGlobalEvent) {
	if e.Interface != "wl_seat" || c.seat != nil {
		return
	}

	version := e.Version
	if version > maxSeatVersion {
		version = maxSeatVersion
	}
	if version < 5 {
		logger.Warnf("wl_seat v%d has no pointer frames, every sub-event is its own frame", e.Version)
	}

	seat := client.NewSeat(c.display.Context())
	if err := c.registry.Bind(e.Name, e.Interface, version, seat); err != nil {
		logger.Errorf("Failed to bind wl_seat: %v", err)
		return
	}

	c.seat = seat
	c.info = SeatInfo{ID: e.Name, Version: version}
	seat.SetCapabilitiesHandler(c.handleCapabilities)
	seat.SetNameHandler(func(e client.SeatNameEvent) {
		c.info.Name = e.Name
	})
}

func (c *Client) handleGlobalRemove(e client.RegistryGlobalRemoveEvent) {
	if c.seat != nil && e.Name == c.info.ID {
		logger.Warn("Seat removed by compositor")
		c.pointer = nil
		c.seat = nil
		c.info.HasPointer = false
	}
}

func (c *Client) handleCapabilities(e client.SeatCapabilitiesEvent) {
	caps := capabilities(uint32(e.Capabilities))
	c.info.HasPointer = caps.pointer
	c.info.HasKeyboard = caps.keyboard
	c.info.HasTouch = caps.touch

	switch {
	case caps.pointer && c.pointer == nil:
		p, err := c.seat.GetPointer()
		if err != nil {
			logger.Errorf("Failed to get pointer: %v", err)
			return
		}
		c.pointer = p
		c.listener.Attach(p)
		logger.Debug("Pointer capability acquired")

	case !caps.pointer && c.pointer != nil:
		if err := c.pointer.Release(); err != nil {
			logger.Debugf("Failed to release pointer: %v", err)
		}
		c.pointer = nil
		logger.Debug("Pointer capability lost")
	}
}

type seatCaps struct {
	pointer  bool
	keyboard bool
	touch    bool
}

// capabilities decodes the wl_seat.capability bitfield
func capabilities(v uint32) seatCaps {
	return seatCaps{
		pointer:  v&1 != 0,
		keyboard: v&2 != 0,
		touch:    v&4 != 0,
	}
}
