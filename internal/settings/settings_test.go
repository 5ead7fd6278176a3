package settings

import (
	"errors"
	"testing"
	"time"
)

func validSettings() *Settings {
	return &Settings{
		AccessToken:   "tok",
		WatchedUserID: "u1",
	}
}

func TestPollInterval(t *testing.T) {
	s := validSettings()
	if got := s.PollInterval(); got != DefaultPollInterval {
		t.Errorf("PollInterval() = %v, want default %v", got, DefaultPollInterval)
	}

	s.PollIntervalMs = 60_000
	if got := s.PollInterval(); got != time.Minute {
		t.Errorf("PollInterval() = %v, want 1m", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Settings)
		wantField string
	}{
		{"valid", func(s *Settings) {}, ""},
		{"missing token", func(s *Settings) { s.AccessToken = "" }, "access_token"},
		{"missing user", func(s *Settings) { s.WatchedUserID = "" }, "watched_user_id"},
		{"interval too short", func(s *Settings) { s.PollIntervalMs = 500 }, "poll_interval_ms"},
		{"interval too long", func(s *Settings) { s.PollIntervalMs = 2 * 60 * 60 * 1000 }, "poll_interval_ms"},
		{"interval at minimum", func(s *Settings) { s.PollIntervalMs = 60_000 }, ""},
		{"interval at maximum", func(s *Settings) { s.PollIntervalMs = 60 * 60 * 1000 }, ""},
		{"single board missing columns", func(s *Settings) { s.BoardID = "b1" }, "priority_column"},
		{"single board missing person", func(s *Settings) {
			s.BoardID = "b1"
			s.PriorityColumn = "p"
			s.DateColumn = "d"
			s.StatusColumn = "st"
		}, "person_column"},
		{"single board complete", func(s *Settings) {
			s.BoardID = "b1"
			s.PriorityColumn = "p"
			s.DateColumn = "d"
			s.StatusColumn = "st"
			s.PersonColumn = "pe"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestSingleBoard(t *testing.T) {
	s := validSettings()
	if s.SingleBoard() {
		t.Error("SingleBoard() = true without board_id")
	}
	s.BoardID = "b1"
	if !s.SingleBoard() {
		t.Error("SingleBoard() = false with board_id")
	}
}
