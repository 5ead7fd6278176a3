package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/monitor"
	"github.com/polar-ai/taskpurge/internal/settings"
	"github.com/polar-ai/taskpurge/internal/speech"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeSetup     ViewMode = iota // Settings wizard (first run or 'c')
	ViewModeDashboard                 // Monitoring dashboard
)

// Messages
type monitorEventMsg struct {
	mon *monitor.Monitor // the monitor that emitted the event
	ev  monitor.Event
}

type startResultMsg struct {
	err error
}

type speechTestMsg struct {
	err error
}

type settingsChangedMsg struct{}

// Deps wires the dashboard to the rest of the system. NewMonitor builds
// a fresh monitor for the given settings; the TUI never reuses one
// across setting changes.
type Deps struct {
	UserID     string
	Store      settings.Store
	NewMonitor func(cfg *settings.Settings) *monitor.Monitor
	NewClient  func(token string) *monday.Client
	Player     speech.Player
	Watcher    *settings.Watcher // optional
}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int

	viewMode ViewMode
	deps     Deps
	cfg      *settings.Settings
	mon      *monitor.Monitor

	setup SetupModel

	// Dashboard state mirrored from monitor events
	phase     monitor.Phase
	countdown string
	tasks     []model.UrgentTask
	lastErr   string

	debug    DebugPanel
	keys     KeyMap
	showHelp bool
	notice   string
}

// NewModel creates the root model. A missing or invalid settings
// document opens the setup wizard instead of the dashboard.
func NewModel(cfg *settings.Settings, deps Deps) Model {
	m := Model{
		deps:      deps,
		cfg:       cfg,
		keys:      DefaultKeyMap(),
		debug:     NewDebugPanel(),
		phase:     monitor.PhaseStopped,
		countdown: "--:--",
	}

	if cfg == nil || cfg.Validate() != nil {
		m.viewMode = ViewModeSetup
		m.setup = NewSetupModel(deps.UserID, deps.Store, cfg, deps.NewClient)
	} else {
		m.viewMode = ViewModeDashboard
		m.mon = deps.NewMonitor(cfg)
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.mon != nil {
		cmds = append(cmds, waitEventCmd(m.mon))
	}
	if m.deps.Watcher != nil {
		cmds = append(cmds, watchSettingsCmd(m.deps.Watcher))
	}
	return tea.Batch(cmds...)
}

// waitEventCmd delivers the next monitor event as a message
func waitEventCmd(mon *monitor.Monitor) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-mon.Events()
		if !ok {
			return nil
		}
		return monitorEventMsg{mon: mon, ev: ev}
	}
}

func watchSettingsCmd(w *settings.Watcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Changes(); !ok {
			return nil
		}
		return settingsChangedMsg{}
	}
}

func startMonitorCmd(mon *monitor.Monitor) tea.Cmd {
	return func() tea.Msg {
		// Start runs the first cycle synchronously.
		return startResultMsg{err: mon.Start(context.Background())}
	}
}

func speechTestCmd(player speech.Player) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return speechTestMsg{err: player.Speak(ctx, "音声テストです。タスクが残っています。")}
	}
}

// Update routes messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case settingsChangedMsg:
		m.debug.AddLine("settings file changed on disk")
		return m.reloadSettings()

	case monitorEventMsg:
		if msg.mon != m.mon {
			// A replaced monitor drained its last events; drop them.
			return m, nil
		}
		m.applyEvent(msg.ev)
		return m, waitEventCmd(m.mon)

	case startResultMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			m.debug.AddLine("start failed: " + msg.err.Error())
		}
		m.phase = m.mon.State().Phase
		return m, nil

	case speechTestMsg:
		if msg.err != nil {
			m.lastErr = "音声テストに失敗しました: " + msg.err.Error()
		} else {
			m.notice = "音声テストを再生しました"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.viewMode == ViewModeSetup {
		var cmd tea.Cmd
		m.setup, cmd, _ = m.setup.Update(msg)
		return m, cmd
	}
	return m, nil
}

// reloadSettings re-reads the document after an on-disk change and swaps
// in a fresh monitor built from it, so a corrected credential takes
// effect without restarting the program. A monitor that was running is
// started again against the new settings.
func (m Model) reloadSettings() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.deps.Watcher != nil {
		cmds = append(cmds, watchSettingsCmd(m.deps.Watcher))
	}

	cfg, err := m.deps.Store.Load(m.deps.UserID)
	if err != nil || cfg.Validate() != nil {
		m.notice = "設定が変更されましたが、内容が不完全です"
		m.debug.AddLine("settings reload skipped: document invalid")
		return m, tea.Batch(cmds...)
	}

	m.cfg = cfg
	if m.viewMode != ViewModeDashboard {
		// The wizard owns the screen; its save will rebuild the monitor.
		return m, tea.Batch(cmds...)
	}

	wasRunning := m.phase != monitor.PhaseStopped
	if m.mon != nil {
		m.mon.Stop()
	}
	m.mon = m.deps.NewMonitor(cfg)
	m.notice = "設定を再読み込みしました"
	m.debug.AddLine("settings reloaded, monitor rebuilt")
	cmds = append(cmds, waitEventCmd(m.mon))

	if wasRunning {
		m.phase = monitor.PhaseChecking
		cmds = append(cmds, startMonitorCmd(m.mon))
	} else {
		m.phase = monitor.PhaseStopped
		m.countdown = "--:--"
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.viewMode == ViewModeSetup {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		var cmd tea.Cmd
		var saved *settings.Settings
		m.setup, cmd, saved = m.setup.Update(msg)
		if saved != nil {
			// Wizard finished: swap in a fresh monitor.
			m.cfg = saved
			m.viewMode = ViewModeDashboard
			if m.mon != nil {
				m.mon.Stop()
			}
			m.mon = m.deps.NewMonitor(saved)
			m.notice = "設定を保存しました"
			return m, tea.Batch(cmd, waitEventCmd(m.mon))
		}
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.mon != nil {
			m.mon.Stop()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		if m.phase == monitor.PhaseStopped {
			m.lastErr = ""
			m.notice = ""
			m.phase = monitor.PhaseChecking
			return m, startMonitorCmd(m.mon)
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		m.mon.Stop()
		m.phase = monitor.PhaseStopped
		m.countdown = "--:--"
		return m, nil

	case key.Matches(msg, m.keys.Check):
		m.mon.CheckNow()
		return m, nil

	case key.Matches(msg, m.keys.Setup):
		if m.phase != monitor.PhaseStopped {
			m.notice = "設定を変更する前に監視を停止してください"
			return m, nil
		}
		m.viewMode = ViewModeSetup
		m.setup = NewSetupModel(m.deps.UserID, m.deps.Store, m.cfg, m.deps.NewClient)
		return m, nil

	case key.Matches(msg, m.keys.Speech):
		return m, speechTestCmd(m.deps.Player)

	case key.Matches(msg, m.keys.Debug):
		m.debug.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

// applyEvent folds one monitor event into the dashboard state
func (m *Model) applyEvent(ev monitor.Event) {
	switch ev := ev.(type) {
	case monitor.CycleCompleted:
		m.tasks = ev.Tasks
		m.lastErr = ""
		m.phase = m.mon.State().Phase
		m.debug.AddLine(fmt.Sprintf("cycle completed: %d urgent task(s)", len(ev.Tasks)))
		for _, f := range ev.Failures {
			m.debug.AddLine(fmt.Sprintf("board %q skipped: %v", f.Board, f.Err))
		}

	case monitor.CycleFailed:
		m.lastErr = ev.Err.Error()
		m.phase = m.mon.State().Phase
		m.debug.AddLine("cycle failed: " + ev.Err.Error())

	case monitor.Countdown:
		m.phase = m.mon.State().Phase
		if ev.Checking {
			m.countdown = "確認中..."
		} else {
			m.countdown = formatCountdown(ev.Remaining)
		}

	case monitor.Stopped:
		m.phase = monitor.PhaseStopped
		m.countdown = "--:--"
	}
}

// formatCountdown renders remaining time as MM:SS
func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// View renders the current view
func (m Model) View() string {
	if m.viewMode == ViewModeSetup {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.setup.View())
	}
	return m.dashboardView()
}

func (m Model) dashboardView() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("Task Purge"))
	b.WriteString("  ")
	b.WriteString(m.badge())
	b.WriteString("  ")
	b.WriteString(CountdownStyle.Render("次回チェック: " + m.countdown))
	b.WriteString("\n\n")

	b.WriteString(m.taskListView())
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(ErrorStyle.Render("エラー: "+m.lastErr) + "\n")
	}
	if m.notice != "" {
		b.WriteString(WarningStyle.Render(m.notice) + "\n")
	}

	if m.debug.IsEnabled() {
		b.WriteString(m.debug.Render(max(40, m.width-4), 12) + "\n")
	}

	b.WriteString(m.helpView())
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) badge() string {
	label := m.phase.Label()
	switch m.phase {
	case monitor.PhaseRunning:
		return BadgeRunningStyle.Render("● " + label)
	case monitor.PhaseChecking:
		return BadgeCheckingStyle.Render("● " + label)
	default:
		return BadgeStoppedStyle.Render("○ " + label)
	}
}

func (m Model) taskListView() string {
	title := TaskListTitleStyle.Render("緊急・高優先度タスク")

	if len(m.tasks) == 0 {
		empty := EmptyListStyle.Render("未完了の緊急・高優先度タスクはありません")
		return TaskListStyle.Render(title + "\n\n" + empty)
	}

	var rows []string
	for _, t := range m.tasks {
		style := TaskHighStyle
		if t.Priority == model.PriorityCritical {
			style = TaskCriticalStyle
		}
		due := "期限: 今日"
		if t.Overdue {
			due = "期限: 超過"
		}
		name := t.Name
		if t.BoardName != "" {
			name = t.BoardName + " — " + name
		}
		rows = append(rows, style.Render("["+t.Priority.Label()+"] ")+name+TaskMetaStyle.Render("  "+due))
	}

	return TaskListStyle.Render(title + "\n\n" + strings.Join(rows, "\n"))
}

func (m Model) helpView() string {
	if m.showHelp {
		var lines []string
		for _, row := range m.keys.FullHelp() {
			var parts []string
			for _, b := range row {
				parts = append(parts, b.Help().Key+" "+b.Help().Desc)
			}
			lines = append(lines, strings.Join(parts, "  ·  "))
		}
		return StatusBarStyle.Render(strings.Join(lines, "\n"))
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return StatusBarStyle.Render(strings.Join(parts, "  ·  ") + "  ·  ? help")
}
