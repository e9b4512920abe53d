// Package color names the terminal colors mirai prints with.
package color

import "github.com/charmbracelet/lipgloss"

func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI colors, so output follows the terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

var (
	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")
)

// Fixed colors for blocks that set their own background.
var (
	Light  = New("230")
	Accent = New("62")
)
