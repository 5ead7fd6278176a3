package settings

import (
	"fmt"
	"time"
)

const (
	// DefaultPollInterval matches the original 15 minute reminder interval
	DefaultPollInterval = 15 * time.Minute

	// MinPollInterval and MaxPollInterval bound the configurable interval
	MinPollInterval = time.Minute
	MaxPollInterval = time.Hour
)

// Settings is the per-user configuration document. It is owned by the
// settings store and read-only to the monitoring core.
type Settings struct {
	AccessToken      string `json:"access_token"`
	WatchedUserID    string `json:"watched_user_id"`
	PollIntervalMs   int64  `json:"poll_interval_ms,omitempty"`
	GenerationAPIKey string `json:"generation_api_key,omitempty"`
	GenerationURL    string `json:"generation_url,omitempty"`

	// BoardID selects single-board mode. When set, the four column ids
	// below must be configured as well (they were picked in the setup
	// wizard against that board's schema). When empty, every visible
	// board is watched using the built-in candidate column ids.
	BoardID        string `json:"board_id,omitempty"`
	PriorityColumn string `json:"priority_column,omitempty"`
	DateColumn     string `json:"date_column,omitempty"`
	StatusColumn   string `json:"status_column,omitempty"`
	PersonColumn   string `json:"person_column,omitempty"`
}

// ConfigError reports incomplete or invalid settings. It is fatal to
// Monitor.Start and never retried automatically.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("設定が未完了です: %s (%s)", e.Field, e.Reason)
}

// PollInterval returns the configured interval, defaulting when unset
func (s *Settings) PollInterval() time.Duration {
	if s.PollIntervalMs == 0 {
		return DefaultPollInterval
	}
	return time.Duration(s.PollIntervalMs) * time.Millisecond
}

// SingleBoard reports whether the settings select single-board mode
func (s *Settings) SingleBoard() bool {
	return s.BoardID != ""
}

// Validate checks the invariants a Monitor relies on. It returns a
// *ConfigError naming the first offending field.
func (s *Settings) Validate() error {
	if s.AccessToken == "" {
		return &ConfigError{Field: "access_token", Reason: "APIトークンを入力してください"}
	}
	if s.WatchedUserID == "" {
		return &ConfigError{Field: "watched_user_id", Reason: "担当者を選択してください"}
	}
	if s.PollIntervalMs != 0 {
		iv := time.Duration(s.PollIntervalMs) * time.Millisecond
		if iv < MinPollInterval || iv > MaxPollInterval {
			return &ConfigError{Field: "poll_interval_ms", Reason: "1分から1時間の範囲で指定してください"}
		}
	}
	if s.SingleBoard() {
		for _, f := range []struct{ name, val string }{
			{"priority_column", s.PriorityColumn},
			{"date_column", s.DateColumn},
			{"status_column", s.StatusColumn},
			{"person_column", s.PersonColumn},
		} {
			if f.val == "" {
				return &ConfigError{Field: f.name, Reason: "全てのカラムを選択してください"}
			}
		}
	}
	return nil
}
