// Package tui is the terminal frontend: a bubbletea app around the chart
// pipeline, with block-by-block keyboard navigation instead of the
// browser's hover and click.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumipallolabs/corpusmap/internal/cache"
	"github.com/lumipallolabs/corpusmap/internal/core"
	"github.com/lumipallolabs/corpusmap/internal/loader"
	"github.com/lumipallolabs/corpusmap/internal/logging"
	"github.com/lumipallolabs/corpusmap/internal/model"
	"github.com/lumipallolabs/corpusmap/internal/prefs"
)

// Config holds the TUI's startup settings
type Config struct {
	Version string
	DataDir string
	TaxPath string
	Watch   bool
	NoCache bool
}

// Message types for Bubble Tea
type (
	loadStartMsg struct{}
	dataLoadedMsg struct {
		records []model.Record
		tax     model.Taxonomy
		err     error
	}
	watchChangedMsg struct{}
	watchReadyMsg   struct {
		ch <-chan struct{}
	}
)

// App is the main TUI application model
type App struct {
	// Chart pipeline (business logic)
	ctrl *core.Controller

	// Persistence
	prefs *prefs.Manager
	snaps *cache.Cache

	// UI components
	header  Header
	treemap TreemapPanel
	help    HelpOverlay
	keys    KeyMap
	cfg     Config

	// UI state
	err     error
	loading bool

	// Watch channel (for continuing to listen after each event)
	watchCh <-chan struct{}

	// Dimensions
	width  int
	height int
}

// NewApp creates a new application instance around a chart controller
func NewApp(ctrl *core.Controller, cfg Config) App {
	pm := prefs.NewManager()
	if err := pm.Load(); err != nil {
		logging.Debug.Printf("tui: loading prefs: %v", err)
	}

	app := App{
		ctrl:    ctrl,
		prefs:   pm,
		snaps:   cache.New(cache.DefaultDir()),
		header:  NewHeader(cfg.Version, cfg.DataDir, ctrl.UseBreadcrumbs()),
		treemap: NewTreemapPanel(ctrl),
		help:    NewHelpOverlay(cfg.Version),
		keys:    DefaultKeyMap(),
		cfg:     cfg,
		loading: true,
	}
	app.treemap.SetFocused(true)
	app.header.SetLoading(true)

	return app
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return loadStartMsg{} }}
	if a.cfg.Watch {
		cmds = append(cmds, a.openWatch())
	}
	return tea.Batch(cmds...)
}

// dataset names the cache bucket for the configured data directory
func (a App) dataset() string {
	return filepath.Base(filepath.Clean(a.cfg.DataDir))
}

// loadData reads the data directory off the UI loop
func (a App) loadData() tea.Cmd {
	dir := a.cfg.DataDir
	taxPath := a.cfg.TaxPath
	return func() tea.Msg {
		records, err := loader.LoadDir(dir)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		tax, err := loader.LoadTaxonomy(taxPath)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{records: records, tax: tax}
	}
}

// openWatch starts the directory watcher off the UI loop. The channel
// travels back as a message so it lands on the model bubbletea retains;
// storing it here would only mutate a discarded copy.
func (a App) openWatch() tea.Cmd {
	dir := a.cfg.DataDir
	return func() tea.Msg {
		ch, err := loader.Watch(context.Background(), dir)
		if err != nil {
			logging.Debug.Printf("tui: watch failed: %v", err)
			return nil
		}
		return watchReadyMsg{ch: ch}
	}
}

// listenForWatch creates a command that waits for the next change signal
func (a App) listenForWatch() tea.Cmd {
	if a.watchCh == nil {
		return nil
	}
	ch := a.watchCh
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil // Channel closed
		}
		return watchChangedMsg{}
	}
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case loadStartMsg:
		a.loading = true
		a.header.SetLoading(true)
		return a, a.loadData()

	case dataLoadedMsg:
		return a.finishLoad(msg)

	case watchReadyMsg:
		a.watchCh = msg.ch
		return a, a.listenForWatch()

	case watchChangedMsg:
		logging.Debug.Printf("tui: data directory changed, reloading")
		return a, tea.Batch(
			func() tea.Msg { return loadStartMsg{} },
			a.listenForWatch(),
		)
	}

	return a, nil
}

// finishLoad applies a completed load to the pipeline and persists the
// snapshot for next session's colors and change tracking
func (a App) finishLoad(msg dataLoadedMsg) (tea.Model, tea.Cmd) {
	a.loading = false
	a.header.SetLoading(false)

	if msg.err != nil {
		a.err = msg.err
		return a, nil
	}
	a.err = nil

	var prevRoot *model.Node
	if !a.cfg.NoCache {
		root, colors, err := a.snaps.LoadLatest(a.dataset())
		if err == nil {
			prevRoot = root
			a.ctrl.RestoreColors(colors)
		}
	}

	if err := a.ctrl.SetData(msg.records, msg.tax); err != nil {
		// Empty data renders as the placeholder, not as an app error
		logging.Debug.Printf("tui: %v", err)
	}

	if a.ctrl.HasData() {
		cache.ApplyDiff(a.ctrl.Root(), prevRoot)
		if !a.cfg.NoCache {
			if err := a.snaps.Save(a.dataset(), a.ctrl.Root(), a.ctrl.Colors()); err != nil {
				logging.Debug.Printf("tui: saving snapshot: %v", err)
			}
		}
		a.header.SetTotals(a.ctrl.Total(), len(a.ctrl.Root().Children))
	}

	a.prefs.AddLoad()
	a.prefs.SetDefaultDataDir(a.cfg.DataDir)

	a.treemap.Relayout()
	a.updateTrail()
	a.ctrl.Hover(a.treemap.Selected())
	return a, nil
}

// handleKey handles keyboard input
func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay - any key closes it
	if a.help.IsVisible() {
		a.help.SetVisible(false)
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		if err := a.prefs.Close(); err != nil {
			logging.Debug.Printf("tui: saving prefs: %v", err)
		}
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.Toggle()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(0, -1)
		return a, nil

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(0, 1)
		return a, nil

	case key.Matches(msg, a.keys.Left):
		a.moveSelection(-1, 0)
		return a, nil

	case key.Matches(msg, a.keys.Right):
		a.moveSelection(1, 0)
		return a, nil

	case key.Matches(msg, a.keys.Enter):
		if a.treemap.ZoomIn() {
			a.updateTrail()
			a.ctrl.Hover(a.treemap.Selected())
		}
		return a, nil

	case key.Matches(msg, a.keys.Back):
		if a.treemap.ZoomOut() {
			a.updateTrail()
			a.ctrl.Hover(a.treemap.Selected())
		}
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		if !a.loading {
			return a, func() tea.Msg { return loadStartMsg{} }
		}
		return a, nil
	}

	return a, nil
}

// moveSelection moves the treemap selection and reports the hover
func (a *App) moveSelection(dx, dy int) {
	before := a.treemap.Selected()
	a.treemap.MoveToBlock(dx, dy)
	if sel := a.treemap.Selected(); sel != before {
		a.ctrl.Hover(sel)
	}
}

// updateTrail pushes the current navigation trail into the header
func (a *App) updateTrail() {
	a.header.SetTrail(a.ctrl.Breadcrumb())
}

// updateLayout calculates component sizes
func (a *App) updateLayout() {
	headerHeight := 2
	helpBarHeight := 1
	infoBarHeight := 2

	panelHeight := a.height - headerHeight - helpBarHeight - infoBarHeight
	if panelHeight < 1 {
		panelHeight = 1
	}

	a.header.SetWidth(a.width)
	a.treemap.SetSize(a.width, panelHeight)
	a.help.SetSize(a.width, a.height)
}

// View implements tea.Model
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, a.header.View())

	if a.err != nil {
		errStyle := lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)
		sections = append(sections, errStyle.Render(fmt.Sprintf("Error: %v", a.err)))
	}

	sections = append(sections, a.infoBar())
	sections = append(sections, a.treemap.View())
	sections = append(sections, HelpBar(a.width))
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if a.help.IsVisible() {
		return a.renderOverlay(a.help.View())
	}

	return content
}

// renderOverlay renders an overlay centered on screen
func (a App) renderOverlay(overlay string) string {
	return lipgloss.Place(
		a.width, a.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBackground),
	)
}

// infoBar shows details for the selected block, the terminal stand-in
// for the browser tooltip
func (a App) infoBar() string {
	node := a.treemap.Selected()
	if node == nil {
		return "\n"
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	content := " " + a.buildNodeInfo(node) + " "
	contentWidth := lipgloss.Width(content)
	topBorder := borderStyle.Render("╭" + strings.Repeat("─", contentWidth) + "╮")
	middleLine := borderStyle.Render("│") + content + borderStyle.Render("│")

	return topBorder + "\n" + middleLine
}

// buildNodeInfo creates the info string for a node
func (a App) buildNodeInfo(node *model.Node) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	nameStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	sep := dimStyle.Render(" │ ")

	parts := []string{nameStyle.Render(node.Name)}
	parts = append(parts, sep, dimStyle.Render(FormatValue(node.TotalValue())))

	if total := a.ctrl.Total(); total > 0 {
		parts = append(parts, sep,
			dimStyle.Render(fmt.Sprintf("%.1f%% of total", node.PercentOf(total))))
	}

	if node.IsNew {
		parts = append(parts, sep, NewBadge.Render("NEW"))
	} else if change := node.ValueChange(); change != 0 {
		style := lipgloss.NewStyle().Foreground(ColorGrown)
		sign := "+"
		if change < 0 {
			style = lipgloss.NewStyle().Foreground(ColorShrunk)
			sign = ""
		}
		parts = append(parts, sep, style.Render(sign+FormatValue(change)+" since last load"))
	}

	return strings.Join(parts, "")
}
