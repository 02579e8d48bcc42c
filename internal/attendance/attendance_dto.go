package attendance

import "github.com/shopspring/decimal"

// UpsertAttendanceRequest records a day for an employee. Times are HH:mm on
// work_date; blank check-in or check-out clears it.
type UpsertAttendanceRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required"`
	WorkDate      string `json:"work_date" binding:"required"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	OvertimeHours string `json:"overtime_hours"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

type AttendanceFilter struct {
	EmployeeID string `form:"employee_id"`
	From       string `form:"from"`
	To         string `form:"to"`
}

type SummaryQuery struct {
	Year  int `form:"year" binding:"required"`
	Month int `form:"month" binding:"required"`
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	WorkDate      string          `json:"work_date"`
	CheckIn       *string         `json:"check_in,omitempty"`
	CheckOut      *string         `json:"check_out,omitempty"`
	WorkHours     decimal.Decimal `json:"work_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
}

// MonthlySummaryRow aggregates one active employee's month. Employees with
// no records still appear with zero counts.
type MonthlySummaryRow struct {
	EmployeeID    string          `json:"employee_id" gorm:"column:employee_id"`
	FullName      string          `json:"full_name" gorm:"column:full_name"`
	PresentDays   int             `json:"present_days" gorm:"column:present_days"`
	LeaveDays     int             `json:"leave_days" gorm:"column:leave_days"`
	WFHDays       int             `json:"wfh_days" gorm:"column:wfh_days"`
	AbsentDays    int             `json:"absent_days" gorm:"column:absent_days"`
	WorkHours     decimal.Decimal `json:"work_hours" gorm:"column:work_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours" gorm:"column:overtime_hours"`
}
