package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/polar-ai/taskpurge/internal/classify"
	"github.com/polar-ai/taskpurge/internal/model"
	"github.com/polar-ai/taskpurge/internal/monday"
	"github.com/polar-ai/taskpurge/internal/monitor"
	"github.com/polar-ai/taskpurge/internal/settings"
)

type stubSource struct{}

func (stubSource) Name() string { return "テスト" }
func (stubSource) Fetch(ctx context.Context) ([]model.RawTask, error) {
	return nil, nil
}

type stubAnnouncer struct{}

func (stubAnnouncer) AnnounceAll(ctx context.Context, tasks []model.UrgentTask) error {
	return nil
}

type stubPlayer struct{}

func (stubPlayer) Speak(ctx context.Context, text string) error { return nil }

func testDeps(t *testing.T) Deps {
	t.Helper()
	return Deps{
		UserID: "default",
		Store:  settings.NewFileStoreAt(t.TempDir()),
		NewMonitor: func(cfg *settings.Settings) *monitor.Monitor {
			params := classify.Params{Rules: classify.DefaultRules(), WatchedUserID: cfg.WatchedUserID}
			return monitor.New(cfg, stubSource{}, params, stubAnnouncer{})
		},
		NewClient: monday.NewClient,
		Player:    stubPlayer{},
	}
}

func validConfig() *settings.Settings {
	return &settings.Settings{AccessToken: "tok", WatchedUserID: "u1"}
}

func TestNewModelOpensWizardWithoutSettings(t *testing.T) {
	m := NewModel(nil, testDeps(t))
	if m.viewMode != ViewModeSetup {
		t.Errorf("viewMode = %v, want setup wizard", m.viewMode)
	}
}

func TestNewModelOpensWizardOnInvalidSettings(t *testing.T) {
	m := NewModel(&settings.Settings{AccessToken: "tok"}, testDeps(t))
	if m.viewMode != ViewModeSetup {
		t.Errorf("viewMode = %v, want setup wizard for incomplete settings", m.viewMode)
	}
}

func TestNewModelOpensDashboardWithValidSettings(t *testing.T) {
	m := NewModel(validConfig(), testDeps(t))
	if m.viewMode != ViewModeDashboard {
		t.Errorf("viewMode = %v, want dashboard", m.viewMode)
	}
	if m.mon == nil {
		t.Error("monitor not created")
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{59 * time.Second, "00:59"},
		{time.Minute, "01:00"},
		{14*time.Minute + 59*time.Second, "14:59"},
		{15 * time.Minute, "15:00"},
	}

	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestApplyEvent(t *testing.T) {
	m := NewModel(validConfig(), testDeps(t))

	task := model.UrgentTask{ID: "1", Name: "資料作成", Priority: model.PriorityCritical}
	m.applyEvent(monitor.CycleCompleted{Tasks: []model.UrgentTask{task}})
	if len(m.tasks) != 1 || m.tasks[0].Name != "資料作成" {
		t.Errorf("tasks = %+v", m.tasks)
	}
	if m.lastErr != "" {
		t.Errorf("lastErr = %q, want cleared", m.lastErr)
	}

	m.applyEvent(monitor.CycleFailed{Err: errors.New("network down")})
	if m.lastErr != "network down" {
		t.Errorf("lastErr = %q", m.lastErr)
	}

	m.applyEvent(monitor.Countdown{Remaining: 90 * time.Second})
	if m.countdown != "01:30" {
		t.Errorf("countdown = %q, want 01:30", m.countdown)
	}

	m.applyEvent(monitor.Countdown{Checking: true})
	if m.countdown != "確認中..." {
		t.Errorf("countdown = %q, want 確認中...", m.countdown)
	}

	m.applyEvent(monitor.Stopped{})
	if m.phase != monitor.PhaseStopped || m.countdown != "--:--" {
		t.Errorf("phase = %v, countdown = %q", m.phase, m.countdown)
	}
}

func TestDashboardView(t *testing.T) {
	m := NewModel(validConfig(), testDeps(t))
	m.width = 100

	view := m.View()
	if !strings.Contains(view, "Task Purge") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "停止中") {
		t.Error("view missing stopped badge")
	}
	if !strings.Contains(view, "未完了の緊急・高優先度タスクはありません") {
		t.Error("view missing empty-list message")
	}

	m.tasks = []model.UrgentTask{
		{ID: "1", Name: "資料作成", BoardName: "営業", Priority: model.PriorityCritical, Overdue: true},
	}
	view = m.View()
	if !strings.Contains(view, "資料作成") {
		t.Error("view missing task name")
	}
	if !strings.Contains(view, "緊急") {
		t.Error("view missing priority label")
	}
	if !strings.Contains(view, "超過") {
		t.Error("view missing overdue marker")
	}
}

func TestSettingsChangeRebuildsMonitor(t *testing.T) {
	deps := testDeps(t)
	if err := deps.Store.Save("default", validConfig()); err != nil {
		t.Fatal(err)
	}
	m := NewModel(validConfig(), deps)
	old := m.mon

	rotated := validConfig()
	rotated.AccessToken = "rotated"
	if err := deps.Store.Save("default", rotated); err != nil {
		t.Fatal(err)
	}

	next, _ := m.Update(settingsChangedMsg{})
	m = next.(Model)

	if m.mon == old {
		t.Error("monitor not rebuilt after settings change")
	}
	if m.cfg.AccessToken != "rotated" {
		t.Errorf("AccessToken = %q, want %q", m.cfg.AccessToken, "rotated")
	}
	if m.phase != monitor.PhaseStopped {
		t.Errorf("phase = %v, want stopped monitor to stay stopped", m.phase)
	}
}

func TestSettingsChangeRestartsRunningMonitor(t *testing.T) {
	deps := testDeps(t)
	if err := deps.Store.Save("default", validConfig()); err != nil {
		t.Fatal(err)
	}
	m := NewModel(validConfig(), deps)
	m.phase = monitor.PhaseRunning
	old := m.mon

	next, cmd := m.Update(settingsChangedMsg{})
	m = next.(Model)

	if m.mon == old {
		t.Error("monitor not rebuilt after settings change")
	}
	if m.phase != monitor.PhaseChecking {
		t.Errorf("phase = %v, want checking while the new monitor starts", m.phase)
	}
	if cmd == nil {
		t.Error("no command returned; the new monitor is never started")
	}
}

func TestSettingsChangeIgnoresInvalidDocument(t *testing.T) {
	deps := testDeps(t)
	if err := deps.Store.Save("default", &settings.Settings{AccessToken: "tok"}); err != nil {
		t.Fatal(err)
	}
	m := NewModel(validConfig(), deps)
	old := m.mon

	next, _ := m.Update(settingsChangedMsg{})
	m = next.(Model)

	if m.mon != old {
		t.Error("monitor replaced despite invalid document")
	}
	if m.notice == "" {
		t.Error("no notice shown for invalid document")
	}
}

func TestStaleMonitorEventsDropped(t *testing.T) {
	m := NewModel(validConfig(), testDeps(t))
	replaced := m.deps.NewMonitor(validConfig())
	m.phase = monitor.PhaseRunning

	next, _ := m.Update(monitorEventMsg{mon: replaced, ev: monitor.Stopped{}})
	m = next.(Model)

	if m.phase != monitor.PhaseRunning {
		t.Errorf("phase = %v, stale Stopped event must not reset state", m.phase)
	}
}

func TestDebugPanel(t *testing.T) {
	p := NewDebugPanel()
	if p.IsEnabled() {
		t.Error("panel enabled by default")
	}

	p.Toggle()
	if !p.IsEnabled() {
		t.Error("Toggle() did not enable")
	}

	p.AddLine("first")
	p.AddLine("second")
	out := p.Render(60, 10)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("Render() = %q, missing lines", out)
	}
}

func TestDebugPanelTruncatesOnRunes(t *testing.T) {
	p := NewDebugPanel()
	p.Toggle()
	p.AddLine(strings.Repeat("緊急タスク", 20))

	// Narrow widths force truncation that would land mid-rune if the
	// line were byte-sliced.
	for width := 14; width <= 40; width++ {
		out := p.Render(width, 10)
		if !utf8.ValidString(out) {
			t.Fatalf("Render(%d) produced invalid UTF-8: %q", width, out)
		}
	}
}
