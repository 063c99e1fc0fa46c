package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/galleria/internal/render"
)

// renderGrid lays the surface out row by row. previews maps card ids to
// half-block lines; missing entries fall back to a palette swatch.
func renderGrid(surface *render.Surface, selected, width int, theme Theme, previews func(id string) []string) string {
	styles := theme.Styles()
	if msg := surface.Placeholder(); msg != "" {
		return styles.Placeholder.Render(msg)
	}
	cards := surface.Cards()
	if len(cards) == 0 {
		return styles.Placeholder.Render("Loading...")
	}

	cols := gridColumns(width)
	gap := strings.Repeat(" ", cardGap)
	rows := make([]string, 0, (len(cards)+cols-1)/cols)
	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		row := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				row = append(row, gap)
			}
			var lines []string
			if previews != nil {
				lines = previews(cards[i].ID())
			}
			row = append(row, renderCard(cards[i], i == selected, lines, theme))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}

// renderCard draws one bordered card.
func renderCard(card render.Card, selected bool, preview []string, theme Theme) string {
	styles := theme.Styles()
	p := card.Photo

	var b strings.Builder
	b.WriteString(previewBlock(preview, p.Color()))
	b.WriteString("\n")
	title := styles.Text.Bold(true).Render(truncate(p.Title, CardWidth))
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncate("by "+p.Author, CardWidth)))
	b.WriteString("\n")
	b.WriteString(glyphLine(card, theme))

	border := lipgloss.RoundedBorder()
	borderColor := p.Color()
	if selected {
		border = lipgloss.ThickBorder()
		borderColor = theme.BorderFocus
	}
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(CardWidth).
		Render(b.String())
}

func glyphLine(card render.Card, theme Theme) string {
	styles := theme.Styles()
	glyph := styles.FaintText.Render(card.Glyph())
	if card.Favorited {
		glyph = styles.Heart.Render(card.Glyph())
	}
	return glyph + " " + styles.FaintText.Render(truncate(card.ID(), CardWidth-2))
}

// previewBlock returns exactly PreviewHeight lines of CardWidth cells.
func previewBlock(lines []string, color string) string {
	if len(lines) == 0 {
		return swatch(color, CardWidth, PreviewHeight)
	}
	out := make([]string, PreviewHeight)
	blank := strings.Repeat(" ", CardWidth)
	for i := range out {
		if i < len(lines) {
			out[i] = ansi.Truncate(lines[i], CardWidth, "")
			continue
		}
		out[i] = blank
	}
	return strings.Join(out, "\n")
}

func swatch(color string, width, height int) string {
	line := lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to limit display cells, ending in an ellipsis.
func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	return ansi.Truncate(s, limit, "…")
}

// selectedRowOffset returns the first line of the grid row holding index.
func selectedRowOffset(index, width int) int {
	if index < 0 {
		return 0
	}
	return (index / gridColumns(width)) * cardOuterHeight
}
