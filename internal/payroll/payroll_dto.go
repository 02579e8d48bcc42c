package payroll

import "github.com/shopspring/decimal"

// Money inputs are strings so blank values can mean zero and
// thousands separators are accepted.
type CreatePayrollRequest struct {
	EmployeeID  string  `json:"employee_id" binding:"required"`
	Year        int     `json:"year" binding:"required"`
	Month       int     `json:"month" binding:"required"`
	BasicSalary string  `json:"basic_salary" binding:"required"`
	OvertimePay string  `json:"overtime_pay"`
	Allowance   string  `json:"allowance"`
	Bonus       string  `json:"bonus"`
	Penalty     string  `json:"penalty"`
	Deduction   string  `json:"deduction"`
	PayDate     *string `json:"pay_date"`
}

type UpdatePayrollRequest = CreatePayrollRequest

type AddAdjustmentRequest struct {
	AdjType     string `json:"adj_type" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description"`
}

type PayrollFilter struct {
	Year         int    `form:"year"`
	Month        int    `form:"month"`
	EmployeeID   string `form:"employee_id"`
	DepartmentID string `form:"department_id"`
}

type AdjustmentResponse struct {
	ID          string          `json:"id"`
	AdjType     string          `json:"adj_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedAt   string          `json:"created_at"`
}

type PayrollResponse struct {
	ID             string               `json:"id"`
	EmployeeID     string               `json:"employee_id"`
	EmployeeName   string               `json:"employee_name,omitempty"`
	Year           int                  `json:"year"`
	Month          int                  `json:"month"`
	BasicSalary    decimal.Decimal      `json:"basic_salary"`
	OvertimePay    decimal.Decimal      `json:"overtime_pay"`
	TotalAllowance decimal.Decimal      `json:"total_allowance"`
	TotalBonus     decimal.Decimal      `json:"total_bonus"`
	TotalPenalty   decimal.Decimal      `json:"total_penalty"`
	TotalDeduction decimal.Decimal      `json:"total_deduction"`
	Gross          decimal.Decimal      `json:"gross"`
	Net            decimal.Decimal      `json:"net"`
	PayDate        *string              `json:"pay_date,omitempty"`
	Adjustments    []AdjustmentResponse `json:"adjustments,omitempty"`
}
