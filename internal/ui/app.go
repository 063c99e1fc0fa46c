package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/five82/galleria/internal/gallery"
	"github.com/five82/galleria/internal/kv"
	"github.com/five82/galleria/internal/preview"
	"github.com/five82/galleria/internal/render"
)

// ThemeKey is the kv key holding the last selected theme name.
const ThemeKey = "galleria_theme"

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *gallery.Controller
	// Store persists the theme choice. Optional.
	Store kv.Store
	// Previews renders card thumbnails. Optional; cards show a palette
	// swatch without it.
	Previews *preview.Renderer
	// Changes signals that favorites storage was modified elsewhere.
	Changes   <-chan struct{}
	ThemeName string
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	ctrl      *gallery.Controller
	store     kv.Store
	previews  *preview.Renderer
	changes   <-chan struct{}
	clipboard func(string) error

	// UI state
	theme  Theme
	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool

	selected  int
	grid      viewport.Model
	search    textinput.Model
	searching bool
	showHelp  bool
	detail    *render.Card

	status    string
	statusSeq int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	search := textinput.New()
	search.Placeholder = "Search photos"
	search.Prompt = "/ "
	search.CharLimit = 120

	return Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		store:     opts.Store,
		previews:  opts.Previews,
		changes:   opts.Changes,
		clipboard: copyFn,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		search:    search,
	}
}

// SavedTheme returns the persisted theme name, or fallback when none is
// stored or storage cannot be read.
func SavedTheme(ctx context.Context, store kv.Store, fallback string) string {
	if store == nil {
		return fallback
	}
	name, ok, err := store.Get(ctx, ThemeKey)
	if err != nil {
		klog.Warningf("read saved theme: %v", err)
		return fallback
	}
	if !ok || strings.TrimSpace(name) == "" {
		return fallback
	}
	if _, known := themes[name]; !known {
		return fallback
	}
	return name
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		func() tea.Msg { return startMsg{} },
	}
	if m.previews != nil {
		cmds = append(cmds, waitPreviewCmd(m.previews.Results()))
	}
	if m.changes != nil {
		cmds = append(cmds, waitChangeCmd(m.changes))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		gridHeight := max(m.height-chromeHeight, 1)
		if !m.ready {
			m.grid = viewport.New(m.width, gridHeight)
		} else {
			m.grid.Width = m.width
			m.grid.Height = gridHeight
		}
		m.search.Width = max(m.width-4, 10)
		m.help.Width = m.width
		m.ready = true
		m.refreshGrid()
		return m, nil

	case startMsg:
		req := m.ctrl.Start(m.ctx)
		m.selected = 0
		m.refreshGrid()
		return m, fetchCmd(m.ctx, m.ctrl, req)

	case fetchMsg:
		if m.ctrl.Apply(m.ctx, gallery.Result(msg)) {
			m.clampSelection()
			m.requestPreviews()
			m.refreshGrid()
		}
		return m, nil

	case previewMsg:
		m.refreshGrid()
		return m, waitPreviewCmd(m.previews.Results())

	case changedMsg:
		if !m.ctrl.Resync(m.ctx) {
			return m, waitChangeCmd(m.changes)
		}
		klog.V(1).Infof("favorites changed on disk, resynced")
		m.clampSelection()
		m.requestPreviews()
		m.refreshGrid()
		return m, waitChangeCmd(m.changes)

	case clearStatusMsg:
		if int(msg) == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.detail != nil {
		return m.renderDetail()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.detail != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m, m.cycleTheme()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.search.SetValue(m.ctrl.State().Query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.LoadMore):
		req, ok := m.ctrl.LoadMore()
		if !ok {
			if m.ctrl.State().View != gallery.ViewExplore {
				return m, m.setStatus("Load more is only available in Explore")
			}
			return m, nil
		}
		return m, fetchCmd(m.ctx, m.ctrl, req)

	case key.Matches(msg, m.keys.ToggleView):
		m.ctrl.ToggleView()
		m.selected = 0
		m.grid.GotoTop()
		m.refreshGrid()
		return m, nil

	case key.Matches(msg, m.keys.Explore):
		req := m.ctrl.Explore()
		m.selected = 0
		m.grid.GotoTop()
		m.refreshGrid()
		return m, fetchCmd(m.ctx, m.ctrl, req)

	case key.Matches(msg, m.keys.Open):
		if card, ok := m.selectedCard(); ok {
			m.detail = &card
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		_, cmd := m.toggleFavorite(card)
		return m, cmd

	case key.Matches(msg, m.keys.CopyURL):
		card, ok := m.selectedCard()
		if !ok {
			return m, nil
		}
		return m, m.copyURL(card)

	case key.Matches(msg, m.keys.Escape):
		m.status = ""
		return m, nil
	}

	m.handleNavigation(msg)
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape):
		m.searching = false
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		req := m.ctrl.Search(m.search.Value())
		m.selected = 0
		m.grid.GotoTop()
		m.refreshGrid()
		return m, fetchCmd(m.ctx, m.ctrl, req)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.detail = nil
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		card := *m.detail
		on, cmd := m.toggleFavorite(card)
		card.Favorited = on
		m.detail = &card
		return m, cmd

	case key.Matches(msg, m.keys.CopyURL):
		return m, m.copyURL(*m.detail)
	}
	return m, nil
}

// handleNavigation moves the selection within the active grid.
func (m *Model) handleNavigation(msg tea.KeyMsg) {
	count := m.activeSurface().Len()
	if count == 0 {
		return
	}
	cols := gridColumns(m.width)

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected < count-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected+cols < count {
			m.selected += cols
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
	default:
		return
	}
	m.refreshGrid()
}

// toggleFavorite flips card's membership and reports the new state.
func (m *Model) toggleFavorite(card render.Card) (bool, tea.Cmd) {
	on, err := m.ctrl.ToggleFavorite(m.ctx, card.Photo)
	if err != nil {
		return card.Favorited, m.setStatus("Could not save favorite")
	}
	m.clampSelection()
	m.requestPreviews()
	m.refreshGrid()
	if on {
		return on, m.setStatus("Added to favorites")
	}
	return on, m.setStatus("Removed from favorites")
}

func (m *Model) copyURL(card render.Card) tea.Cmd {
	url := strings.TrimSpace(card.Photo.Src)
	if url == "" {
		return m.setStatus("No image URL to copy")
	}
	if err := m.clipboard(url); err != nil {
		klog.Warningf("copy %s to clipboard: %v", card.ID(), err)
		return m.setStatus("Clipboard unavailable")
	}
	return m.setStatus("Copied image URL")
}

func (m *Model) cycleTheme() tea.Cmd {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.refreshGrid()
	if m.store != nil {
		ctx, cancel := context.WithTimeout(m.ctx, persistTimeout)
		defer cancel()
		if err := m.store.Set(ctx, ThemeKey, m.theme.Name); err != nil {
			klog.Warningf("save theme %q: %v", m.theme.Name, err)
		}
	}
	return m.setStatus("Theme: " + m.theme.Name)
}

// setStatus shows msg in the footer until it expires or is replaced.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	m.status = msg
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg(seq)
	})
}

// activeSurface returns the surface of the current view.
func (m Model) activeSurface() *render.Surface {
	if m.ctrl.State().View == gallery.ViewFavorites {
		return m.ctrl.Favorites()
	}
	return m.ctrl.Gallery()
}

func (m Model) selectedCard() (render.Card, bool) {
	return m.activeSurface().Card(m.selected)
}

func (m *Model) clampSelection() {
	count := m.activeSurface().Len()
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// requestPreviews queues thumbnails for every card on both surfaces. The
// renderer skips ids it has already seen.
func (m Model) requestPreviews() {
	if m.previews == nil {
		return
	}
	for _, surface := range []*render.Surface{m.ctrl.Gallery(), m.ctrl.Favorites()} {
		for _, card := range surface.Cards() {
			m.previews.Request(m.ctx, card.ID(), card.Photo.Src)
		}
	}
}

func (m Model) previewLines(id string) []string {
	if m.previews == nil {
		return nil
	}
	lines, _ := m.previews.Lookup(id)
	return lines
}

// refreshGrid re-renders the active surface and scrolls the selection into view.
func (m *Model) refreshGrid() {
	if !m.ready {
		return
	}
	m.grid.SetContent(renderGrid(m.activeSurface(), m.selected, m.width, m.theme, m.previewLines))

	top := selectedRowOffset(m.selected, m.width)
	bottom := top + cardOuterHeight
	switch {
	case top < m.grid.YOffset:
		m.grid.SetYOffset(top)
	case bottom > m.grid.YOffset+m.grid.Height:
		m.grid.SetYOffset(bottom - m.grid.Height)
	}
}

// renderMain renders the header, command bar, grid and footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.grid.View())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())

	return b.String()
}

// Messages

type startMsg struct{}

type fetchMsg gallery.Result

type previewMsg preview.Result

type changedMsg struct{}

type clearStatusMsg int

// Commands

func fetchCmd(ctx context.Context, ctrl *gallery.Controller, req gallery.Request) tea.Cmd {
	return func() tea.Msg {
		return fetchMsg(ctrl.Fetch(ctx, req))
	}
}

func waitPreviewCmd(results <-chan preview.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return previewMsg(res)
	}
}

func waitChangeCmd(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
