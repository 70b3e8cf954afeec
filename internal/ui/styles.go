// Package ui provides the live frame view and consistent styling for wlptr
package ui

import (
	"strings"

	"github.com/bnema/wlptr/internal/pointer"
	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary   = lipgloss.Color("39")  // Bright blue
	ColorSecondary = lipgloss.Color("205") // Pink/magenta
	ColorSuccess   = lipgloss.Color("82")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("86")  // Cyan

	ColorText   = lipgloss.Color("252") // Light gray
	ColorSubtle = lipgloss.Color("241") // Medium gray
	ColorMuted  = lipgloss.Color("238") // Dark gray
)

var (
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorMuted).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ControlKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	ControlDescStyle = lipgloss.NewStyle().
				Foreground(ColorText)
)

// Frame line styles, picked by the most significant sub-event in the frame
var (
	EnterLeaveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	ButtonStyle     = lipgloss.NewStyle().Foreground(ColorSecondary).Bold(true)
	AxisStyle       = lipgloss.NewStyle().Foreground(ColorInfo)
	MotionStyle     = TextStyle
	EmptyFrameStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// FrameStyle returns the style used to render a frame with mask m
func FrameStyle(m pointer.Mask) lipgloss.Style {
	switch {
	case m.Any(pointer.MaskButton):
		return ButtonStyle
	case m.Any(pointer.MaskAxisAny):
		return AxisStyle
	case m.Any(pointer.MaskEnter | pointer.MaskLeave):
		return EnterLeaveStyle
	case m.Any(pointer.MaskMotion):
		return MotionStyle
	default:
		return EmptyFrameStyle
	}
}

// FormatFrame renders one frame line without its trailing newline
func FormatFrame(f pointer.Frame) string {
	return FrameStyle(f.Event.Mask).Render(strings.TrimRight(f.Line, " \n"))
}

// FormatControl renders a key binding hint
func FormatControl(key, desc string) string {
	return ControlKeyStyle.Render(key) + " - " + ControlDescStyle.Render(desc)
}

// CreateSeparator creates a horizontal line separator
func CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50
	}
	if char == "" {
		char = "─"
	}
	return lipgloss.NewStyle().
		Foreground(ColorSubtle).
		Render(strings.Repeat(char, width))
}
