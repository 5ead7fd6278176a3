package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the column candidate ids and token sets used to classify
// tasks across heterogeneous boards. The defaults encode the column ids
// observed across the production boards; a rules.yaml in the taskpurge
// home directory overrides them.
type Rules struct {
	PriorityColumns []string `yaml:"priority_columns"`
	DateColumns     []string `yaml:"date_columns"`
	StatusColumns   []string `yaml:"status_columns"`
	PersonColumns   []string `yaml:"person_columns"`

	CriticalTokens  []string `yaml:"critical_tokens"`
	HighTokens      []string `yaml:"high_tokens"`
	CompletedTokens []string `yaml:"completed_tokens"`

	// ExcludedBoardPatterns skips structural boards (sub-item boards
	// duplicate their parent's data) by name substring.
	ExcludedBoardPatterns []string `yaml:"excluded_board_patterns"`
}

// DefaultRules returns the built-in rule set
func DefaultRules() Rules {
	return Rules{
		PriorityColumns: []string{
			"priority", "priority2",
			"color_mkybqdk7", "color_mkybqv1q", "color_mkybb6cr",
			"color_mkybag09", "color_mkyb17nw",
		},
		DateColumns:   []string{"date4", "date0", "date_mkybm0xa"},
		StatusColumns: []string{"status"},
		PersonColumns: []string{"person"},

		CriticalTokens:  []string{"緊急", "critical", "最優先"},
		HighTokens:      []string{"高", "high", "重要"},
		CompletedTokens: []string{"完了", "done", "completed", "済"},

		ExcludedBoardPatterns: []string{"サブアイテム", "Subitems"},
	}
}

// WithConfiguredColumns returns a copy of the rules whose candidate lists
// are replaced by explicitly configured column ids. Single-board mode uses
// this: the setup wizard picked exact columns against that board's schema,
// so no probing is needed.
func (r Rules) WithConfiguredColumns(priority, date, status, person string) Rules {
	out := r
	out.PriorityColumns = []string{priority}
	out.DateColumns = []string{date}
	out.StatusColumns = []string{status}
	out.PersonColumns = []string{person}
	return out
}

// LoadRules reads a YAML rules file, falling back to the defaults when
// the file does not exist. Fields left empty in the file keep their
// default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return rules, err
	}

	var overlay Rules
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}

	if len(overlay.PriorityColumns) > 0 {
		rules.PriorityColumns = overlay.PriorityColumns
	}
	if len(overlay.DateColumns) > 0 {
		rules.DateColumns = overlay.DateColumns
	}
	if len(overlay.StatusColumns) > 0 {
		rules.StatusColumns = overlay.StatusColumns
	}
	if len(overlay.PersonColumns) > 0 {
		rules.PersonColumns = overlay.PersonColumns
	}
	if len(overlay.CriticalTokens) > 0 {
		rules.CriticalTokens = overlay.CriticalTokens
	}
	if len(overlay.HighTokens) > 0 {
		rules.HighTokens = overlay.HighTokens
	}
	if len(overlay.CompletedTokens) > 0 {
		rules.CompletedTokens = overlay.CompletedTokens
	}
	if len(overlay.ExcludedBoardPatterns) > 0 {
		rules.ExcludedBoardPatterns = overlay.ExcludedBoardPatterns
	}

	return rules, nil
}
