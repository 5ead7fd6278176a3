package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polar-ai/taskpurge/internal/model"
)

type scriptedPlayer struct {
	spoken []string
	fail   map[int]error // index into the call sequence
	calls  int
}

func (p *scriptedPlayer) Speak(ctx context.Context, text string) error {
	defer func() { p.calls++ }()
	p.spoken = append(p.spoken, text)
	if err := p.fail[p.calls]; err != nil {
		return err
	}
	return nil
}

func testAnnouncer(gen *GenClient, player *scriptedPlayer) *Announcer {
	a := NewAnnouncer(gen, player)
	a.pause = time.Millisecond
	return a
}

func critical(name, board string, overdue bool) model.UrgentTask {
	return model.UrgentTask{ID: name, Name: name, BoardName: board, Priority: model.PriorityCritical, Overdue: overdue}
}

func TestFallbackMessage(t *testing.T) {
	tests := []struct {
		name string
		task model.UrgentTask
		want string
	}{
		{"due today with board", critical("資料作成", "営業", false), "営業 — 資料作成、今日が期限です。"},
		{"overdue with board", critical("資料作成", "営業", true), "営業 — 資料作成、期限が過ぎています。"},
		{"due today no board", critical("資料作成", "", false), "資料作成、今日が期限です。"},
		{"overdue no board", critical("資料作成", "", true), "資料作成、期限が過ぎています。"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FallbackMessage(tt.task); got != tt.want {
				t.Errorf("FallbackMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageUsesGeneratedPhrase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		w.Write([]byte(`{"message":"営業の資料作成、今すぐ着手してください！"}`))
	}))
	defer srv.Close()

	a := testAnnouncer(NewGenClient(srv.URL, "test-key"), &scriptedPlayer{})
	got := a.Message(context.Background(), critical("資料作成", "営業", false))
	if want := "営業の資料作成、今すぐ着手してください！"; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestMessageFallsBackOnBackendFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"empty message", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"message":"  "}`))
		}},
		{"invalid json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}},
	}

	task := critical("資料作成", "営業", true)
	want := FallbackMessage(task)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := testAnnouncer(NewGenClient(srv.URL, "test-key"), &scriptedPlayer{})
			if got := a.Message(context.Background(), task); got != want {
				t.Errorf("Message() = %q, want fallback %q", got, want)
			}
		})
	}
}

func TestMessageWithoutGenClient(t *testing.T) {
	a := testAnnouncer(nil, &scriptedPlayer{})
	task := critical("資料作成", "", false)
	if got := a.Message(context.Background(), task); got != FallbackMessage(task) {
		t.Errorf("Message() = %q, want fallback", got)
	}
}

func TestNewGenClientRequiresCredentials(t *testing.T) {
	if NewGenClient("", "key") != nil {
		t.Error("NewGenClient with empty url should be nil")
	}
	if NewGenClient("http://example.com", "") != nil {
		t.Error("NewGenClient with empty key should be nil")
	}
}

func TestAnnounceAllPreservesOrder(t *testing.T) {
	player := &scriptedPlayer{}
	a := testAnnouncer(nil, player)

	tasks := []model.UrgentTask{
		critical("一つ目", "", false),
		critical("二つ目", "", false),
		critical("三つ目", "", false),
	}
	if err := a.AnnounceAll(context.Background(), tasks); err != nil {
		t.Fatalf("AnnounceAll() error = %v", err)
	}

	if len(player.spoken) != 3 {
		t.Fatalf("spoke %d utterances, want 3", len(player.spoken))
	}
	for i, task := range tasks {
		if want := FallbackMessage(task); player.spoken[i] != want {
			t.Errorf("utterance %d = %q, want %q", i, player.spoken[i], want)
		}
	}
}

func TestAnnounceAllContinuesPastFailure(t *testing.T) {
	playbackErr := errors.New("audio device busy")
	player := &scriptedPlayer{fail: map[int]error{0: playbackErr}}
	a := testAnnouncer(nil, player)

	tasks := []model.UrgentTask{
		critical("一つ目", "", false),
		critical("二つ目", "", false),
	}
	err := a.AnnounceAll(context.Background(), tasks)
	if !errors.Is(err, playbackErr) {
		t.Errorf("AnnounceAll() error = %v, want first failure", err)
	}
	if len(player.spoken) != 2 {
		t.Errorf("spoke %d utterances, want all 2 despite failure", len(player.spoken))
	}
}

func TestAnnounceAllHonorsCancellation(t *testing.T) {
	player := &scriptedPlayer{}
	a := NewAnnouncer(nil, player)
	a.pause = time.Hour // cancellation must win over the pause

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := a.AnnounceAll(ctx, []model.UrgentTask{
		critical("一つ目", "", false),
		critical("二つ目", "", false),
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("AnnounceAll() error = %v, want context.Canceled", err)
	}
	if len(player.spoken) != 1 {
		t.Errorf("spoke %d utterances, want 1 before cancellation", len(player.spoken))
	}
}

func TestAnnounceAllEmpty(t *testing.T) {
	player := &scriptedPlayer{}
	a := testAnnouncer(nil, player)
	if err := a.AnnounceAll(context.Background(), nil); err != nil {
		t.Errorf("AnnounceAll(nil) error = %v", err)
	}
	if len(player.spoken) != 0 {
		t.Errorf("spoke %d utterances, want 0", len(player.spoken))
	}
}
