package model

// Priority is the urgency tier of a task. Only two tiers are recognized;
// anything lower is filtered out before an UrgentTask is created.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
)

// Label returns the Japanese display label for the priority
func (p Priority) Label() string {
	if p == PriorityCritical {
		return "緊急"
	}
	return "高"
}

// ColumnValue is one column cell on a board item. Text is the rendered
// value; RawValue carries the structured JSON for person columns and is
// empty for plain text columns.
type ColumnValue struct {
	ColumnID string `json:"id"`
	Text     string `json:"text"`
	RawValue string `json:"value"`
}

// RawTask is a board item as fetched from the remote board. It lives for
// one poll cycle and is never persisted.
type RawTask struct {
	ID           string
	Name         string
	BoardName    string
	ColumnValues []ColumnValue
}

// Column returns the first column value matching any of the candidate ids,
// probed in order. Boards created at different times encode the same
// semantic field under different ids, so callers pass candidate lists.
func (t RawTask) Column(candidates ...string) (ColumnValue, bool) {
	for _, id := range candidates {
		for _, cv := range t.ColumnValues {
			if cv.ColumnID == id {
				return cv, true
			}
		}
	}
	return ColumnValue{}, false
}

// UrgentTask is a task that passed all urgency predicates. It is consumed
// by rendering and announcement within the same cycle and then discarded.
type UrgentTask struct {
	ID        string
	Name      string
	BoardName string
	Priority  Priority
	Overdue   bool
}
