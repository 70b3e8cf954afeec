package ui

import (
	"errors"
	"testing"

	"github.com/bnema/wlptr/internal/pointer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, feed func(a *pointer.Accumulator)) pointer.Frame {
	t.Helper()
	var got pointer.Frame
	acc := pointer.NewAccumulator(nil)
	acc.OnFrame(func(f pointer.Frame) { got = f })
	feed(acc)
	acc.Frame()
	return got
}

func TestFramesModel_KeepsHistory(t *testing.T) {
	m := NewFramesModel(2)

	for i := uint32(1); i <= 3; i++ {
		f := frame(t, func(a *pointer.Accumulator) {
			a.Motion(i, pointer.FixedFromInt(int32(i)), 0)
		})
		m.Update(FrameMsg(f))
	}

	require.Len(t, m.Frames(), 2)
	assert.Equal(t, uint32(2), m.Frames()[0].Event.Time)
	assert.Equal(t, uint32(3), m.Frames()[1].Event.Time)
	assert.Equal(t, uint64(3), m.Total())
}

func TestFramesModel_View(t *testing.T) {
	m := NewFramesModel(10)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 20})

	assert.Contains(t, m.View(), "Waiting for pointer frames")

	m.Update(FrameMsg(frame(t, func(a *pointer.Accumulator) {
		a.Button(1, 5, 272, pointer.ButtonReleased)
	})))
	m.Update(StatusMsg("Seat seat0"))

	view := m.View()
	assert.Contains(t, view, "button 272 released")
	assert.Contains(t, view, "Seat seat0")
	assert.Contains(t, view, "1 frames")
}

func TestFramesModel_Keys(t *testing.T) {
	m := NewFramesModel(10)
	m.Update(FrameMsg(frame(t, func(a *pointer.Accumulator) { a.Leave(1) })))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Nil(t, cmd)
	assert.Empty(t, m.Frames())
	assert.Equal(t, uint64(1), m.Total())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFramesModel_Done(t *testing.T) {
	m := NewFramesModel(10)

	_, cmd := m.Update(DoneMsg{Err: errors.New("connection lost")})
	require.NotNil(t, cmd)
	assert.EqualError(t, m.Err(), "connection lost")
	assert.Contains(t, m.View(), "connection lost")
}

func TestFrameStyle(t *testing.T) {
	assert.Equal(t, ButtonStyle, FrameStyle(pointer.MaskButton|pointer.MaskMotion))
	assert.Equal(t, AxisStyle, FrameStyle(pointer.MaskAxisStop))
	assert.Equal(t, EnterLeaveStyle, FrameStyle(pointer.MaskLeave))
	assert.Equal(t, MotionStyle, FrameStyle(pointer.MaskMotion))
	assert.Equal(t, EmptyFrameStyle, FrameStyle(0))
}
