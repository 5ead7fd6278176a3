package genserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func postReminder(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/reminder", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)
	return rec
}

func TestReminderEndpoint(t *testing.T) {
	rec := postReminder(t, `{"boardName":"営業","taskName":"資料作成","priority":"critical","isOverdue":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp reminderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message == "" {
		t.Error("message is empty")
	}
	if !strings.Contains(resp.Message, "資料作成") {
		t.Errorf("message %q does not mention the task", resp.Message)
	}
	if !strings.Contains(resp.Message, "営業") {
		t.Errorf("message %q does not mention the board", resp.Message)
	}
}

func TestReminderEndpointValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{broken`},
		{"missing task name", `{"boardName":"営業"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postReminder(t, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	NewRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	first := Compose("営業", "資料作成", "critical", false)
	second := Compose("営業", "資料作成", "critical", false)
	if first != second {
		t.Errorf("Compose() varies for the same task: %q vs %q", first, second)
	}
}

func TestComposeTone(t *testing.T) {
	tests := []struct {
		name    string
		prio    string
		overdue bool
		want    string // substring that marks the tone
	}{
		{"overdue", "critical", true, "期限"},
		{"critical", "critical", false, "！"},
		{"high", "high", false, "今日"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose("営業", "資料作成", tt.prio, tt.overdue)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Compose() = %q, want substring %q", got, tt.want)
			}
			if !strings.Contains(got, "資料作成") {
				t.Errorf("Compose() = %q, task name missing", got)
			}
		})
	}
}

func TestComposePoolSelection(t *testing.T) {
	// Sweep many task names so the hash covers the full uint32 range;
	// every selection must land on a valid pool entry.
	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("タスク%d", i)
		for _, overdue := range []bool{true, false} {
			got := Compose("営業", name, "critical", overdue)
			if got == "" {
				t.Fatalf("Compose(%q, overdue=%v) = empty", name, overdue)
			}
			if !strings.Contains(got, name) {
				t.Fatalf("Compose(%q) = %q, task name missing", name, got)
			}
		}
	}
}

func TestComposeWithoutBoard(t *testing.T) {
	got := Compose("", "資料作成", "high", false)
	if !strings.Contains(got, "「資料作成」") {
		t.Errorf("Compose() = %q, want quoted task name only", got)
	}
}
