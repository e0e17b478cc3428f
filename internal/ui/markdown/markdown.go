// Package markdown renders feedback narratives for the terminal.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// DefaultStyle is the glamour style used for the dark theme.
const DefaultStyle = "dark"

// Render renders md wrapped to width. If the renderer fails the text is
// returned unstyled.
func Render(md string, width int) string {
	return RenderStyle(md, DefaultStyle, width)
}

// RenderStyle renders md with a named glamour style ("dark", "light",
// "notty", ...).
func RenderStyle(md, style string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn().Err(err).Msg("create markdown renderer")
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		log.Warn().Err(err).Msg("render markdown")
		return md
	}
	return strings.TrimRight(out, "\n")
}
