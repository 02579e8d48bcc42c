package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CurrentSchemaVersion = 1
	UnknownDepartment    = "Unknown"
	UnknownPosition      = "Unknown"
)

var supportedSchemaVersions = map[int]bool{
	CurrentSchemaVersion: true,
}

func IsSupportedSchemaVersion(v int) bool {
	return supportedSchemaVersions[v]
}

// Package is the on-disk backup document. Field names are matched
// case-insensitively when decoding.
type Package struct {
	SchemaVersion  int       `json:"SchemaVersion"`
	GeneratedAtUtc Timestamp `json:"GeneratedAtUtc"`
	GeneratedBy    string    `json:"GeneratedBy"`
	EmployeeCount  int       `json:"EmployeeCount"`
	Employees      []Record  `json:"Employees"`
}

type Record struct {
	FullName       string     `json:"FullName"`
	DateOfBirth    *Timestamp `json:"DateOfBirth"`
	Gender         string     `json:"Gender"`
	Address        string     `json:"Address"`
	Phone          string     `json:"Phone"`
	DepartmentName string     `json:"DepartmentName"`
	Position       string     `json:"Position"`
	BaseSalary     Money      `json:"BaseSalary"`
	HireDate       *Timestamp `json:"HireDate"`
	IsActive       bool       `json:"IsActive"`
	CreatedAt      Timestamp  `json:"CreatedAt"`
}

// Timestamp accepts RFC3339 as well as zone-less date-times and bare dates.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", raw)
}

// present reports whether the timestamp carried a usable value.
func (t *Timestamp) present() bool {
	return t != nil && !t.IsZero()
}

// Money serializes as a bare JSON number and accepts numbers or numeric strings.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		m.Decimal = decimal.Zero
		return nil
	}
	return m.Decimal.UnmarshalJSON(data)
}
