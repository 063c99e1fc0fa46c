package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/galleria/internal/gallery"
	"github.com/five82/galleria/internal/render"
)

const logo = "galleria"

// renderHeader renders the top bar: logo, view, mode and counters.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	state := m.ctrl.State()
	sep := styles.FaintText.Render(" │ ")

	parts := []string{
		styles.Logo.Render(logo),
		styles.AccentText.Render(viewLabel(state.View)),
		styles.Text.Render(modeLabel(state)),
	}
	if state.View == gallery.ViewExplore {
		parts = append(parts,
			styles.MutedText.Render(fmt.Sprintf("page %d", state.Page)),
			styles.MutedText.Render(fmt.Sprintf("%d photos", m.ctrl.Gallery().Len())),
		)
	}
	parts = append(parts, styles.Heart.Render(fmt.Sprintf("%s %d", render.GlyphFavorited, m.ctrl.Favorites().Len())))
	if m.ctrl.Loading() {
		parts = append(parts, styles.WarningText.Render("loading…"))
	}

	return styles.Header.Width(m.width).Render(truncate(strings.Join(parts, sep), max(m.width-2, 1)))
}

// renderCommandBar shows the search field while it is focused, otherwise
// the active query.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	if m.searching {
		return m.search.View()
	}
	state := m.ctrl.State()
	if state.Query != "" {
		return styles.MutedText.Render("query: ") + styles.Text.Render(truncate(state.Query, max(m.width-8, 1)))
	}
	return styles.FaintText.Render("press / to search")
}

// renderFooter shows the transient status or the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.status != "" {
		return styles.Footer.Width(m.width).Render(styles.SuccessText.Render(m.status))
	}
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys))
}

func viewLabel(v gallery.View) string {
	if v == gallery.ViewFavorites {
		return "Favorites"
	}
	return "Explore"
}

func modeLabel(s gallery.State) string {
	if s.SearchMode() {
		return fmt.Sprintf("search %q", s.Query)
	}
	return "browse"
}

// centered places content in the middle of the terminal.
func (m Model) centered(content string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
