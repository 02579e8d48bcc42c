package attendance

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPresent = "PRESENT"
	StatusLeave   = "LEAVE"
	StatusWFH     = "WFH"
	StatusAbsent  = "ABSENT"
)

// Attendance is one employee's record for one work date. CheckIn and
// CheckOut are full instants on WorkDate.
type Attendance struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null"`
	Employee      *EmployeeRef    `gorm:"foreignKey:EmployeeID;references:ID"`
	WorkDate      time.Time       `gorm:"type:date;not null"`
	CheckIn       *time.Time      `gorm:"type:timestamptz"`
	CheckOut      *time.Time      `gorm:"type:timestamptz"`
	WorkHours     decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	Status        string          `gorm:"type:varchar(20);not null"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// NormalizeStatus maps a case-insensitive status to its stored form. Blank
// means PRESENT.
func NormalizeStatus(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "":
		return StatusPresent, true
	case StatusPresent, StatusLeave, StatusWFH, StatusAbsent:
		return s, true
	}
	return "", false
}

// ComputeWorkHours is the check-in to check-out span in hours rounded to two
// places, or zero unless both are set and out is after in.
func ComputeWorkHours(in, out *time.Time) decimal.Decimal {
	if in == nil || out == nil || !out.After(*in) {
		return decimal.Zero
	}
	seconds := decimal.NewFromInt(int64(out.Sub(*in) / time.Second))
	return seconds.Div(decimal.NewFromInt(3600)).Round(2)
}

// ClampOvertime rounds to two places and floors negatives at zero.
func ClampOvertime(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v.Round(2)
}

// Recompute refreshes WorkHours from the check-in and check-out pair.
func (a *Attendance) Recompute() {
	a.WorkHours = ComputeWorkHours(a.CheckIn, a.CheckOut)
	a.OvertimeHours = ClampOvertime(a.OvertimeHours)
}

