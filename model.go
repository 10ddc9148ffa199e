package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusConfig focusArea = iota
	focusTimeline
	focusDetail
)

type toastExpiredMsg struct{}

type model struct {
	styles styles
	keys   keyMap
	help   help.Model
	theme  themeState

	host       *hostLink
	controller *dataController
	store      *sourceStore
	events     *eventLogger

	cfg widgetConfig
	// creating mirrors the dashboard "creation" page state: host config
	// pushes are ignored until the user has bound a source.
	creating bool

	panel    *configPanel
	timeline *timelineColumn
	detail   *detailColumn

	picker       *pickerColumn
	pickerTarget pickerTarget
	pickerActive bool

	spinner   spinner.Model
	showHelp  bool
	panelOpen bool
	focus     focusArea

	errorDismissed bool
	toastMessage   string
	toastExpires   time.Time

	uiConfig     *uiConfig
	uiConfigPath string

	logLines []string

	themeCh      <-chan themeNotice
	themeCancel  func()
	configCh     <-chan widgetConfig
	configCancel func()

	width  int
	height int
}

func initialModel(host *hostLink, themeOverride string) *model {
	m := &model{
		host: host,
		keys: newKeyMap(),
		help: help.New(),
		logLines: []string{
			"[INFO] Press c to open the configuration panel and bind a table.",
		},
	}

	cfg, cfgPath := loadUIConfig()
	m.uiConfig = cfg
	m.uiConfigPath = cfgPath

	mode := detectThemeMode(themeOverride)
	if themeOverride == "" && cfg.Theme != "" {
		mode = detectThemeMode(cfg.Theme)
	}
	m.theme = newThemeState(mode)
	m.styles = newStyles(m.theme.Colors)
	setMarkdownMode(mode)

	m.events = newEventLogger(filepath.Join(resolveConfigDir(), "events.ndjson"))
	if store, err := openSourceStore(); err == nil {
		m.store = store
	} else {
		m.logf("[WARN] source store unavailable: %v", err)
	}

	gateway := newBitableGateway(host.bridge, m.logf)
	m.controller = newDataController(gateway)

	m.cfg = cfg.LastSource.toWidgetConfig()
	m.creating = cfg.LastSource == nil

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.spinner.Style = m.styles.statusHint.Bold(true)

	m.panel = newConfigPanel()
	if cfg.ShowLabels != nil {
		m.panel.showLabels = *cfg.ShowLabels
	}
	if cfg.ShowMilestones != nil {
		m.panel.showMilestones = *cfg.ShowMilestones
	}
	m.timeline = newTimelineColumn(m.theme)
	m.timeline.SetDisplay(m.panel.showLabels, m.panel.showMilestones)
	m.detail = newDetailColumn(m.theme)

	m.panelOpen = m.creating
	m.focus = focusTimeline
	if m.panelOpen {
		m.focus = focusConfig
	}

	m.themeCh, m.themeCancel = host.theme.Subscribe()
	m.configCh, m.configCancel = host.config.Subscribe()

	return m
}

func (m *model) logf(format string, args ...any) {
	m.logLines = append(m.logLines, fmt.Sprintf(format, args...))
	if len(m.logLines) > 50 {
		m.logLines = m.logLines[len(m.logLines)-50:]
	}
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.controller.Refresh(m.cfg),
		m.controller.FetchTables(),
		waitForThemeNotice(m.themeCh),
		waitForHostConfig(m.configCh),
	}
	if m.cfg.complete() {
		cmds = append(cmds, m.controller.FetchFields(m.cfg))
	}
	return tea.Batch(cmds...)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case themeChangedMsg:
		m.applyTheme(msg.notice)
		cmds = append(cmds, waitForThemeNotice(m.themeCh))

	case hostConfigMsg:
		cmds = append(cmds, waitForHostConfig(m.configCh))
		if !m.creating {
			cmds = append(cmds, m.applyConfig(msg.config, "host")...)
		}

	case feedClosedMsg:
		// host channel gone; nothing to re-arm

	case toastExpiredMsg:
		if !m.toastExpires.After(time.Now()) {
			m.toastMessage = ""
		}

	case openPickerMsg:
		m.openPicker(msg)

	case pickerChosenMsg:
		m.pickerActive = false
		m.picker = nil
		cmds = append(cmds, m.applyPick(msg)...)

	case displayToggledMsg:
		m.panel.showLabels = msg.labels
		m.panel.showMilestones = msg.stars
		m.timeline.SetDisplay(msg.labels, msg.stars)
		m.persistUIConfig()

	case itemHoveredMsg:
		if msg.prev != nil {
			m.events.ItemHover(*msg.prev, false)
		}
		if msg.next != nil {
			m.events.ItemHover(*msg.next, true)
		}
		m.detail.SetItem(msg.next, m.styles)

	case itemClickedMsg:
		m.events.ItemClick(msg.item, msg.selected)
		m.events.Emit(interactionEvent{Event: eventItemSelect, ItemID: msg.item.ID, Group: msg.item.Group,
			Detail: map[string]string{"selected": fmt.Sprint(msg.selected)}})
		item := msg.item
		m.detail.SetItem(&item, m.styles)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, tea.Batch(append(cmds, cmd)...)
		}
	}

	if m.routeDataMsg(msg) {
		m.syncColumns()
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, m.updateFocused(msg))
	return m, tea.Batch(cmds...)
}

// routeDataMsg feeds controller messages through and records fallbacks.
func (m *model) routeDataMsg(msg tea.Msg) bool {
	if loaded, ok := msg.(rowsLoadedMsg); ok && !loaded.origin.Live {
		m.events.Emit(interactionEvent{Event: eventFetchFallback,
			Detail: map[string]string{"reason": loaded.origin.Reason}})
	}
	handled := m.controller.Apply(msg)
	if handled && m.controller.Error() != "" {
		m.errorDismissed = false
	}
	return handled
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.pickerActive {
		if key.Matches(msg, m.keys.Back) {
			m.pickerActive = false
			m.picker = nil
			return nil, true
		}
		var cmd tea.Cmd
		_, cmd = m.picker.Update(msg)
		return cmd, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.teardown(), true
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return nil, true
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return nil, true
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return nil, true
	case key.Matches(msg, m.keys.ToggleConfig):
		m.panelOpen = !m.panelOpen
		if m.panelOpen {
			m.focus = focusConfig
		} else if m.focus == focusConfig {
			m.focus = focusTimeline
		}
		m.layout()
		return nil, true
	case key.Matches(msg, m.keys.Refresh):
		return tea.Batch(m.controller.Refresh(m.cfg), m.controller.FetchTables()), true
	case key.Matches(msg, m.keys.ToggleTheme):
		// round-trips through the theme feed like a host push
		next := "DARK"
		if m.theme.Mode == themeModeDark {
			next = "LIGHT"
		}
		m.host.theme.Publish(themeNotice{Theme: next})
		return nil, true
	case key.Matches(msg, m.keys.DismissError):
		m.errorDismissed = true
		m.controller.ClearErrors()
		m.syncColumns()
		return nil, true
	case key.Matches(msg, m.keys.CycleGroup):
		return tea.Batch(m.cycleGroupFilter()...), true
	case key.Matches(msg, m.keys.ToggleLabels):
		m.panel.showLabels = !m.panel.showLabels
		m.timeline.SetDisplay(m.panel.showLabels, m.panel.showMilestones)
		m.persistUIConfig()
		return nil, true
	case key.Matches(msg, m.keys.ToggleStars):
		m.panel.showMilestones = !m.panel.showMilestones
		m.timeline.SetDisplay(m.panel.showLabels, m.panel.showMilestones)
		m.persistUIConfig()
		return nil, true
	case key.Matches(msg, m.keys.CopyItem):
		if summary := m.detail.summary(); summary != "" {
			if err := clipboard.WriteAll(summary); err != nil {
				m.setToast("clipboard unavailable")
			} else {
				m.setToast("item copied")
			}
		}
		return m.toastTick(), true
	}
	return nil, false
}

func (m *model) teardown() tea.Cmd {
	if m.themeCancel != nil {
		m.themeCancel()
	}
	if m.configCancel != nil {
		m.configCancel()
	}
	_ = m.store.Close()
	return tea.Quit
}

func (m *model) cycleFocus(delta int) {
	order := []focusArea{focusTimeline, focusDetail}
	if m.panelOpen {
		order = []focusArea{focusConfig, focusTimeline, focusDetail}
	}
	current := 0
	for i, f := range order {
		if f == m.focus {
			current = i
			break
		}
	}
	m.focus = order[(current+delta+len(order))%len(order)]
}

// cycleGroupFilter steps through no-filter plus each known group.
func (m *model) cycleGroupFilter() []tea.Cmd {
	groups := m.controller.groups
	if len(groups) == 0 {
		return nil
	}
	next := ""
	if m.cfg.SelectedGroup == "" {
		next = groups[0]
	} else {
		for i, g := range groups {
			if g == m.cfg.SelectedGroup && i+1 < len(groups) {
				next = groups[i+1]
				break
			}
		}
	}
	cfg := m.cfg
	cfg.SelectedGroup = next
	return m.applyConfig(cfg, "group_filter")
}

func (m *model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.pickerActive {
		_, cmd = m.picker.Update(msg)
		return cmd
	}
	switch m.focus {
	case focusConfig:
		_, cmd = m.panel.Update(msg)
	case focusTimeline:
		_, cmd = m.timeline.Update(msg)
	case focusDetail:
		_, cmd = m.detail.Update(msg)
	}
	return cmd
}

func (m *model) openPicker(msg openPickerMsg) {
	m.pickerTarget = msg.target
	target := msg.target
	m.picker = newPickerColumn(msg.title, msg.entries, m.panelWidth(), m.styles, func(entry listEntry) tea.Cmd {
		return func() tea.Msg {
			chosen := pickerChosenMsg{target: target}
			switch payload := entry.payload.(type) {
			case tableDescriptor:
				chosen.table = payload
				chosen.value = payload.AppToken + "|" + payload.TableID
			case string:
				chosen.value = payload
			}
			return chosen
		}
	})
	m.picker.SetSize(m.panelWidth(), m.bodyHeight())
	m.pickerActive = true
}

func (m *model) applyPick(msg pickerChosenMsg) []tea.Cmd {
	cfg := m.cfg
	if msg.target == pickTable {
		cfg = applyTableSelection(cfg, msg.table)
		if m.store != nil {
			if err := m.store.Touch(msg.table); err != nil {
				m.logf("[WARN] could not remember source: %v", err)
			}
		}
	} else {
		cfg = applyFieldRole(cfg, msg.target, msg.value)
	}
	return m.applyConfig(cfg, "panel")
}

// applyConfig swaps in a new configuration and re-enters the loading path,
// exactly as a host config push would.
func (m *model) applyConfig(cfg widgetConfig, source string) []tea.Cmd {
	changed := cfg != m.cfg
	tableChanged := cfg.tableRef != m.cfg.tableRef
	m.cfg = cfg
	if changed {
		m.creating = false
		m.persistUIConfig()
		m.events.Emit(interactionEvent{Event: eventConfigChange,
			Detail: map[string]string{"source": source}})
	}
	cmds := []tea.Cmd{m.controller.Refresh(cfg)}
	if tableChanged && cfg.complete() {
		cmds = append(cmds, m.controller.FetchFields(cfg))
	}
	m.syncColumns()
	return cmds
}

func (m *model) applyTheme(notice themeNotice) {
	m.theme.Apply(notice)
	m.styles = newStyles(m.theme.Colors)
	setMarkdownMode(m.theme.Mode)
	m.timeline.SetTheme(m.theme)
	m.detail.SetTheme(m.theme)
	m.detail.SetItem(m.detail.Item(), m.styles)
	m.events.Emit(interactionEvent{Event: eventThemeChange,
		Detail: map[string]string{"mode": string(m.theme.Mode)}})
	if m.uiConfig != nil {
		m.uiConfig.Theme = string(m.theme.Mode)
		_ = saveUIConfig(m.uiConfig, m.uiConfigPath)
	}
}

func (m *model) persistUIConfig() {
	if m.uiConfig == nil {
		m.uiConfig = &uiConfig{}
	}
	labels := m.panel.showLabels
	stars := m.panel.showMilestones
	m.uiConfig.ShowLabels = &labels
	m.uiConfig.ShowMilestones = &stars
	m.uiConfig.Theme = string(m.theme.Mode)
	if !m.creating {
		m.uiConfig.LastSource = storedFromWidgetConfig(m.cfg)
	}
	if err := saveUIConfig(m.uiConfig, m.uiConfigPath); err != nil {
		m.logf("[WARN] could not save ui config: %v", err)
	}
}

// syncColumns recomputes the derived view state after data or config
// changes: the filtered and sorted item set, the panel inputs, the detail
// pane.
func (m *model) syncColumns() {
	tables := m.controller.tables
	if m.store != nil {
		if recent, err := m.store.Recent(10); err == nil {
			tables = mergeTables(tables, recent)
		}
	}
	m.panel.SetState(
		m.cfg,
		tables,
		m.controller.fields,
		m.controller.groups,
		m.controller.tablesOp.loading(),
		m.controller.fieldsOp.loading(),
		m.controller.fieldsOp.err,
	)
	visible := sortItemsByDate(filterByGroup(m.controller.items, m.cfg.SelectedGroup))
	m.timeline.SetItems(visible)
	m.detail.SetItem(m.timeline.hovered(), m.styles)
}

func (m *model) setToast(text string) {
	m.toastMessage = text
	m.toastExpires = time.Now().Add(3 * time.Second)
}

func (m *model) toastTick() tea.Cmd {
	return tea.Tick(3*time.Second+50*time.Millisecond, func(time.Time) tea.Msg {
		return toastExpiredMsg{}
	})
}

func (m *model) panelWidth() int {
	return 34
}

func (m *model) detailWidth() int {
	return 40
}

func (m *model) bodyHeight() int {
	h := m.height - 3
	if h < 8 {
		h = 8
	}
	return h
}

func (m *model) layout() {
	body := m.bodyHeight()
	timelineWidth := m.width - m.detailWidth()
	if m.panelOpen {
		timelineWidth -= m.panelWidth()
	}
	if timelineWidth < 40 {
		timelineWidth = 40
	}
	m.panel.SetSize(m.panelWidth(), body)
	m.timeline.SetSize(timelineWidth, body)
	m.detail.SetSize(m.detailWidth(), body)
	if m.picker != nil {
		m.picker.SetSize(m.panelWidth(), body)
	}
}

func (m *model) View() string {
	var b strings.Builder

	origin := "LIVE"
	if !m.controller.itemsOrigin.Live {
		origin = "SAMPLE"
	}
	title := fmt.Sprintf("bitline · Timeline · %s · %s", origin, strings.ToUpper(string(m.theme.Mode)))
	top := m.styles.topBar.Render(title)
	if m.controller.Busy() {
		top = lipgloss.JoinHorizontal(lipgloss.Top, top, " ", m.spinner.View())
	}
	b.WriteString(top)
	b.WriteString("\n")

	if err := m.controller.Error(); err != "" && !m.errorDismissed {
		b.WriteString(m.styles.banner.Render("Error: " + err + "  (x to dismiss)"))
		b.WriteString("\n")
	}

	var panes []string
	if m.pickerActive && m.picker != nil {
		panes = append(panes, m.picker.View(m.styles, true))
	} else if m.panelOpen {
		panes = append(panes, m.panel.View(m.styles, m.focus == focusConfig))
	}
	panes = append(panes,
		m.timeline.View(m.styles, m.focus == focusTimeline && !m.pickerActive),
		m.detail.View(m.styles, m.focus == focusDetail && !m.pickerActive),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panes...))
	b.WriteString("\n")

	status := m.help.View(m.keys)
	if m.toastMessage != "" && m.toastExpires.After(time.Now()) {
		status = lipgloss.JoinHorizontal(lipgloss.Top,
			m.styles.toast.Render(m.toastMessage), " ", status)
	}
	b.WriteString(m.styles.statusBar.Render(status))

	return m.styles.app.Render(b.String())
}
