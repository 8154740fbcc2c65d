package app

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sinterlabs/fornax/internal/classify"
	"github.com/sinterlabs/fornax/internal/ledger"
	"github.com/sinterlabs/fornax/internal/ui"

	tea "github.com/charmbracelet/bubbletea"

	_ "image/jpeg" // frame previews are JPEG
)

// Model is the root bubbletea model for the fornax classifier TUI.
type Model struct {
	// Session state
	ctl      *classify.Controller
	led      *ledger.Ledger
	frameDir string

	// Current frame preview
	imgName string // frame the preview belongs to
	img     image.Image
	imgErr  error

	// UI state
	width  int
	height int
	status string
}

// New creates a classifier model over a non-empty frame inventory.
func New(frames []string, frameDir string, led *ledger.Ledger) Model {
	return Model{
		ctl:      classify.New(frames, led),
		led:      led,
		frameDir: frameDir,
		status:   fmt.Sprintf("%d of %d frames already classified", led.Len(), len(frames)),
	}
}

// Init returns the initial command: load the first frame.
func (m Model) Init() tea.Cmd {
	return loadFrameCmd(m.frameDir, m.ctl.Current())
}

// loadFrameCmd decodes one frame image off the update loop.
func loadFrameCmd(dir, name string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return FrameLoadedMsg{Name: name, Err: err}
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return FrameLoadedMsg{Name: name, Err: err}
		}
		return FrameLoadedMsg{Name: name, Image: img}
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case FrameLoadedMsg:
		// Drop loads that finish after further navigation.
		if msg.Name != m.ctl.Current() {
			return m, nil
		}
		m.imgName = msg.Name
		m.img = msg.Image
		m.imgErr = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		if s := m.ctl.Handle(classify.Quit{}); s != "" {
			m.status = s
		}
		return m, tea.Quit

	case KeyPrev:
		return m.apply(classify.Navigate{Delta: -1})

	case KeyNext:
		return m.apply(classify.Navigate{Delta: 1})

	case KeyJump10:
		return m.apply(classify.Jump{Delta: 10})

	case KeyJump100:
		return m.apply(classify.Jump{Delta: 100})

	case KeyJump1000:
		return m.apply(classify.Jump{Delta: 1000})

	case KeyHelp, KeyHelpUpper:
		return m.apply(classify.ToggleHelp{})

	case KeyStats, KeyStatsUpper:
		return m.apply(classify.ToggleStats{})
	}

	if _, ok := ledger.CategoryByID(key); ok {
		return m.apply(classify.ClassifyFrame{CategoryID: key})
	}
	if sub, ok := ledger.SubcategoryByID(strings.ToLower(key)); ok {
		return m.apply(classify.SelectSubcategory{ID: sub.ID})
	}

	return m, nil
}

// apply feeds one event to the controller and reloads the preview when
// the cursor moved off the displayed frame.
func (m Model) apply(ev classify.Event) (tea.Model, tea.Cmd) {
	if s := m.ctl.Handle(ev); s != "" {
		m.status = s
	}
	if m.ctl.Current() != m.imgName {
		m.img = nil
		m.imgErr = nil
		return m, loadFrameCmd(m.frameDir, m.ctl.Current())
	}
	return m, nil
}

// categoryPanelWidth returns the width of the right-hand category panel.
func (m Model) categoryPanelWidth() int {
	if m.width == 0 {
		return 34
	}
	return min(34, max(24, m.width/3))
}

// previewWidth returns the width of the frame preview panel.
func (m Model) previewWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(20, m.width-m.categoryPanelWidth()-3)
}

// contentHeight returns the rows available between header and footer.
func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// header, two dividers, status bar, footer
	return max(5, m.height-5)
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string

	// Header
	sections = append(sections, m.renderHeader())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Main content: preview | categories, or an overlay
	sections = append(sections, m.renderMainContent())

	// Divider
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	// Status bar
	sections = append(sections, m.renderStatusBar())

	// Footer
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("FORNAX")
	counter := ui.HeaderStyle.Render(fmt.Sprintf("  Frame: %d/%d", m.ctl.Cursor()+1, m.ctl.Total()))
	name := ui.DimStyle.Render("  " + m.ctl.Current())

	var mark string
	if rec, ok := m.led.Get(m.ctl.Current()); ok {
		mark = "  " + ui.ClassifiedDotStyle.Render("●") + " " + ui.SuccessStyle.Render(classificationLabel(rec))
	} else {
		mark = "  " + ui.WarningStyle.Render("NOT CLASSIFIED")
	}

	return title + counter + name + mark
}

func classificationLabel(rec ledger.Record) string {
	if rec.SubcategoryName != "" {
		return rec.CategoryName + " (" + rec.SubcategoryName + ")"
	}
	return rec.CategoryName
}

func (m Model) renderMainContent() string {
	contentH := m.contentHeight()

	switch m.ctl.Overlay() {
	case classify.OverlayHelp:
		return m.renderHelpOverlay(contentH)
	case classify.OverlayStats:
		return m.renderStatsOverlay(contentH)
	}

	previewW := m.previewWidth()
	panelW := m.categoryPanelWidth()

	preview := m.renderPreviewPanel(previewW, contentH)
	panel := m.renderCategoryPanel(panelW, contentH)

	divider := ui.DividerStyle.Render("│")

	previewLines := strings.Split(preview, "\n")
	panelLines := strings.Split(panel, "\n")

	// Pad to same height
	for len(previewLines) < contentH {
		previewLines = append(previewLines, strings.Repeat(" ", previewW))
	}
	for len(panelLines) < contentH {
		panelLines = append(panelLines, "")
	}

	var rows []string
	for i := 0; i < contentH; i++ {
		rows = append(rows, padRight(previewLines[i], previewW)+divider+panelLines[i])
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderPreviewPanel(width, height int) string {
	switch {
	case m.imgErr != nil:
		return ui.Center(ui.ErrorTextStyle.Render("Error loading image"), width, height)
	case m.img == nil:
		return ui.Center(ui.DimStyle.Render("Loading frame..."), width, height)
	}
	return ui.Center(ui.RenderImage(m.img, width, height), width, height)
}

func (m Model) renderCategoryPanel(width, height int) string {
	var lines []string
	lines = append(lines, padRight(ui.PanelTitleStyle.Render("CATEGORIES"), width))
	lines = append(lines, "")

	var currentID string
	if rec, ok := m.led.Get(m.ctl.Current()); ok {
		currentID = rec.CategoryID
	}

	for _, cat := range ledger.Categories {
		if cat.ID == currentID {
			lines = append(lines, truncateToWidth(ui.SelectedStyle.Render("> "+cat.ID+": "+cat.Name), width))
		} else {
			lines = append(lines, truncateToWidth("  "+cat.ID+": "+cat.Name, width))
		}
	}

	lines = append(lines, "")
	if sub, ok := m.ctl.Pending(); ok {
		lines = append(lines, truncateToWidth(ui.SubcategoryStyle.Render("Subcategory: "+sub.Name), width))
	} else {
		lines = append(lines, truncateToWidth(ui.DimStyle.Render("I/M/F arms a subcategory"), width))
	}

	// Pad to height
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderHelpOverlay(height int) string {
	command := func(key, desc string) string {
		return ui.FooterKeyStyle.Render(key) + ui.FooterDescStyle.Render(": "+desc)
	}

	var lines []string
	lines = append(lines, ui.TitleStyle.Render("KEYBOARD CONTROLS"))
	lines = append(lines, "")
	lines = append(lines, command("◄ ►", "Navigate frames"))
	lines = append(lines, command("0", "No event"))
	lines = append(lines, command("1-5", "Classify frame in category"))
	lines = append(lines, command("I/M/F", "Select subcategory (start/middle/end)"))
	lines = append(lines, command("7", "Jump forward 10 frames"))
	lines = append(lines, command("8", "Jump forward 100 frames"))
	lines = append(lines, command("9", "Jump forward 1000 frames"))
	lines = append(lines, command("H", "Toggle help"))
	lines = append(lines, command("S", "Toggle statistics"))
	lines = append(lines, command("Q", "Quit and save"))
	lines = append(lines, "")
	lines = append(lines, ui.PanelTitleStyle.Render("CATEGORIES"))
	for _, cat := range ledger.Categories {
		lines = append(lines, ui.InfoStyle.Render(cat.ID+": "+cat.Name))
	}
	lines = append(lines, "")
	lines = append(lines, ui.InfoStyle.Render("Press H again to close this help screen"))

	if len(lines) > height {
		lines = lines[:height]
	}
	return ui.Center(strings.Join(lines, "\n"), m.width, height)
}

func (m Model) renderStatsOverlay(height int) string {
	stats := m.led.Stats()
	classified := m.led.Len()
	inventory := m.ctl.Total()

	var lines []string
	lines = append(lines, ui.TitleStyle.Render("CLASSIFICATION STATISTICS"))
	lines = append(lines, "")

	for _, cat := range ledger.Categories {
		header := cat.ID + ": " + cat.Name
		if n := stats.CategoryTotal(cat); n > 0 {
			lines = append(lines, ui.SuccessStyle.Render(fmt.Sprintf("%s (Total: %d)", header, n)))
		} else {
			lines = append(lines, ui.DimStyle.Render(header))
		}
		if cat.ID == ledger.NoEventID {
			continue
		}
		for _, sub := range ledger.Subcategories {
			if n := stats[cat.Name+"_"+sub.Name]; n > 0 {
				lines = append(lines, ui.InfoStyle.Render(fmt.Sprintf("    %s: %d frames", sub.Name, n)))
			}
		}
	}

	var pct float64
	if inventory > 0 {
		pct = float64(classified) / float64(inventory) * 100
	}
	lines = append(lines, "")
	lines = append(lines, ui.HeaderStyle.Render(fmt.Sprintf("Total: %d/%d frames classified (%.1f%%)", classified, inventory, pct)))
	lines = append(lines, ui.InfoStyle.Render("Press S again to close"))

	if len(lines) > height {
		lines = lines[:height]
	}
	return ui.Center(strings.Join(lines, "\n"), m.width, height)
}

func (m Model) renderStatusBar() string {
	if m.status == "" {
		return ""
	}
	return statusStyle(m.status).Render(m.status)
}

// statusStyle colors the status line by what the controller reported.
func statusStyle(s string) lipgloss.Style {
	switch {
	case strings.Contains(s, "WARNING"), strings.Contains(s, "failed"),
		strings.HasPrefix(s, "Not classified"), strings.HasPrefix(s, "Select a subcategory"),
		strings.HasPrefix(s, "Unknown"):
		return ui.ErrorTextStyle
	case strings.HasPrefix(s, "Classified as"), strings.HasPrefix(s, "Classifications saved"):
		return ui.SuccessStyle
	case strings.HasPrefix(s, "Subcategory armed"):
		return ui.SubcategoryStyle
	}
	return ui.InfoStyle
}

func (m Model) renderFooter() string {
	var parts []string

	parts = append(parts, ui.FooterKeyStyle.Render("←/→")+ui.FooterDescStyle.Render(" Navigate"))
	parts = append(parts, ui.FooterKeyStyle.Render("0-5")+ui.FooterDescStyle.Render(" Classify"))
	parts = append(parts, ui.FooterKeyStyle.Render("I/M/F")+ui.FooterDescStyle.Render(" Subcategory"))
	parts = append(parts, ui.FooterKeyStyle.Render("7/8/9")+ui.FooterDescStyle.Render(" Jump"))
	parts = append(parts, ui.FooterKeyStyle.Render("H")+ui.FooterDescStyle.Render(" Help"))
	parts = append(parts, ui.FooterKeyStyle.Render("S")+ui.FooterDescStyle.Render(" Stats"))
	parts = append(parts, ui.FooterKeyStyle.Render("Q")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:width-1]) + "…"
	}
	return s
}
