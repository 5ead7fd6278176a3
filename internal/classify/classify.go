// Package classify decides which raw board tasks are urgent. All
// functions are pure: same task and params always yield the same verdict,
// in any predicate evaluation order.
package classify

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/polar-ai/taskpurge/internal/model"
)

// ReferenceZone is the fixed calendar zone for all due-date comparisons.
// Per-user locales are deliberately not inferred.
var ReferenceZone = time.FixedZone("JST", 9*60*60)

// DatePolicy selects how due dates qualify a task
type DatePolicy int

const (
	// DateInclusive accepts due today or any earlier day (earlier is
	// flagged overdue). Primary policy for multi-board watching.
	DateInclusive DatePolicy = iota

	// DateStrictToday accepts only the current calendar day. Used in
	// single-board, single-assignee mode.
	DateStrictToday
)

// Params configures a classification pass
type Params struct {
	Rules         Rules
	WatchedUserID string
	Policy        DatePolicy

	// Now overrides the clock in tests; nil means time.Now
	Now func() time.Time
}

func (p Params) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Classify maps a raw task to an urgency verdict. It returns nil unless
// the task passes all four predicates: priority, due date, status and
// assignee. Unresolved columns classify as not urgent rather than erroring.
func Classify(task model.RawTask, p Params) *model.UrgentTask {
	priorityCol, _ := task.Column(p.Rules.PriorityColumns...)
	priority, ok := matchPriority(priorityCol.Text, p.Rules)
	if !ok {
		return nil
	}

	dateCol, _ := task.Column(p.Rules.DateColumns...)
	overdue, ok := matchDue(dateCol.Text, p.Policy, p.now())
	if !ok {
		return nil
	}

	statusCol, _ := task.Column(p.Rules.StatusColumns...)
	if matchToken(statusCol.Text, p.Rules.CompletedTokens) {
		return nil
	}

	personCol, _ := task.Column(p.Rules.PersonColumns...)
	if !assignedTo(personCol.RawValue, p.WatchedUserID) {
		return nil
	}

	return &model.UrgentTask{
		ID:        task.ID,
		Name:      task.Name,
		BoardName: task.BoardName,
		Priority:  priority,
		Overdue:   overdue,
	}
}

// matchPriority resolves the urgency tier from the priority column text
func matchPriority(text string, rules Rules) (model.Priority, bool) {
	if matchToken(text, rules.CriticalTokens) {
		return model.PriorityCritical, true
	}
	if matchToken(text, rules.HighTokens) {
		return model.PriorityHigh, true
	}
	return "", false
}

// matchToken normalizes text and compares it against a token set,
// case-insensitively
func matchToken(text string, tokens []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return false
	}
	for _, t := range tokens {
		if normalized == strings.ToLower(t) {
			return true
		}
	}
	return false
}

// matchDue parses the due-date column text and compares calendar days in
// the reference zone. Unparsable or absent dates reject the task.
func matchDue(text string, policy DatePolicy, now time.Time) (overdue bool, ok bool) {
	due, err := parseDate(strings.TrimSpace(text))
	if err != nil {
		return false, false
	}

	today := dayOf(now.In(ReferenceZone))
	target := dayOf(due)

	switch {
	case target.Equal(today):
		return false, true
	case target.Before(today) && policy == DateInclusive:
		return true, true
	default:
		return false, false
	}
}

// parseDate accepts the date column's rendered forms
func parseDate(text string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", text, ReferenceZone); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", text, ReferenceZone)
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, ReferenceZone)
}

// personColumnValue mirrors the structured person column payload:
// {"personsAndTeams":[{"id":123,"kind":"person"}]}
type personColumnValue struct {
	PersonsAndTeams []struct {
		ID json.RawMessage `json:"id"`
	} `json:"personsAndTeams"`
}

// assignedTo reports whether the watched user appears in the person
// column's raw value. Malformed or absent data never defaults to
// "assigned to everyone".
func assignedTo(rawValue, userID string) bool {
	if rawValue == "" || userID == "" {
		return false
	}

	var parsed personColumnValue
	if err := json.Unmarshal([]byte(rawValue), &parsed); err != nil {
		return false
	}

	for _, p := range parsed.PersonsAndTeams {
		if personID(p.ID) == userID {
			return true
		}
	}
	return false
}

// personID renders a person id as a string whether the API sent a JSON
// number or a quoted string
func personID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		return unquoted
	}
	return s
}
