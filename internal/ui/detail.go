package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDetail renders the open photo: a large preview when one is cached,
// its metadata and the palette.
func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	card := *m.detail
	p := card.Photo
	width := max(min(m.width-8, 72), CardWidth)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(p.Title, width)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(truncate("by "+p.Author, width)))
	b.WriteString("\n\n")

	b.WriteString(previewBlock(m.previewLines(card.ID()), p.Color()))
	b.WriteString("\n\n")

	b.WriteString(detailRow("id", p.ID, width, m.theme))
	b.WriteString(detailRow("image", p.Src, width, m.theme))
	if p.Link != "" {
		b.WriteString(detailRow("page", p.Link, width, m.theme))
	}

	b.WriteString(styles.MutedText.Render(padLabel("palette")))
	for _, c := range p.Palette {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("   "))
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	glyph := styles.FaintText.Render(card.Glyph() + " not a favorite")
	if card.Favorited {
		glyph = styles.Heart.Render(card.Glyph() + " favorite")
	}
	b.WriteString(glyph)
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("f favorite · y copy URL · esc close"))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessText.Render(m.status))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Color())).
		Padding(1, 2).
		Width(width + 4)

	return m.centered(modal.Render(b.String()))
}

func detailRow(label, value string, width int, theme Theme) string {
	styles := theme.Styles()
	return styles.MutedText.Render(padLabel(label)) +
		styles.Text.Render(truncate(value, max(width-9, 1))) + "\n"
}

func padLabel(label string) string {
	return label + strings.Repeat(" ", max(9-len(label), 1))
}
