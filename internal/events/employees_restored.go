package events

import "time"

type EmployeesRestoredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	SourceFile string    `json:"source_file,omitempty"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Overwrite  bool      `json:"overwrite"`
	RestoredBy string    `json:"restored_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
