package events

import "time"

type EmployeeChangedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	DepartmentID string    `json:"department_id,omitempty"`
	ChangedBy    string    `json:"changed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
