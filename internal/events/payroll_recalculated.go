package events

import "time"

// PayrollRecalculatedEvent is emitted whenever a payroll's aggregates are
// rewritten, whether by an adjustment change or a period update.
type PayrollRecalculatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	PayrollID  string    `json:"payroll_id"`
	EmployeeID string    `json:"employee_id"`
	Year       int       `json:"year"`
	Month      int       `json:"month"`
	Gross      string    `json:"gross"`
	Net        string    `json:"net"`
	OccurredAt time.Time `json:"occurred_at"`
}
