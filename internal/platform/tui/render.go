package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-raycaster/internal/core"
)

// halfBlock draws the upper pixel as foreground and the lower one as background.
const halfBlock = '▀'

// cellColors is the pixel pair shown by one terminal cell.
type cellColors struct {
	top, bottom core.RGB
}

// BlockRenderer converts pixel buffers to truecolor half-block text.
// Each terminal cell shows two vertically stacked pixels. Styles are cached
// across frames since scenes reuse a limited palette.
type BlockRenderer struct {
	styles map[cellColors]lipgloss.Style
}

// maxCachedStyles bounds the style cache; it is reset when exceeded.
const maxCachedStyles = 1 << 14

// NewBlockRenderer creates a renderer with an empty style cache.
func NewBlockRenderer() *BlockRenderer {
	return &BlockRenderer{styles: make(map[cellColors]lipgloss.Style)}
}

// Rows returns the number of terminal rows needed for a buffer height.
func Rows(pixelHeight int) int {
	return (pixelHeight + 1) / 2
}

// Render converts buf to a styled string, one line per pair of pixel rows.
// Adjacent cells with the same colors are grouped into one styled run to
// minimize ANSI escape sequences. An odd last row is shown over black.
func (r *BlockRenderer) Render(buf *core.PixelBuffer) string {
	w, h := buf.Width(), buf.Height()
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(w*Rows(h)*8 + Rows(h))

	run := make([]rune, 0, w)
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < w {
			start := r.colorsAt(buf, x, y)
			run = run[:0]
			for x < w && r.colorsAt(buf, x, y) == start {
				run = append(run, halfBlock)
				x++
			}
			sb.WriteString(r.style(start).Render(string(run)))
		}
	}
	return sb.String()
}

func (r *BlockRenderer) colorsAt(buf *core.PixelBuffer, x, y int) cellColors {
	// Get returns black below the last row.
	return cellColors{top: buf.Get(x, y), bottom: buf.Get(x, y+1)}
}

func (r *BlockRenderer) style(c cellColors) lipgloss.Style {
	if s, ok := r.styles[c]; ok {
		return s
	}
	if len(r.styles) >= maxCachedStyles {
		clear(r.styles)
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.top.Hex())).
		Background(lipgloss.Color(c.bottom.Hex()))
	r.styles[c] = s
	return s
}
