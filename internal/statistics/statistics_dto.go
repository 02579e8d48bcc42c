package statistics

import "github.com/shopspring/decimal"

type YearQuery struct {
	Year int `form:"year" binding:"required"`
}

type DepartmentStat struct {
	DepartmentID      string `json:"department_id" gorm:"column:department_id"`
	DepartmentName    string `json:"department_name" gorm:"column:department_name"`
	ActiveEmployees   int    `json:"active_employees" gorm:"column:active_employees"`
	InactiveEmployees int    `json:"inactive_employees" gorm:"column:inactive_employees"`
}

type PositionStat struct {
	Position      string          `json:"position" gorm:"column:position"`
	EmployeeCount int             `json:"employee_count" gorm:"column:employee_count"`
	AverageSalary decimal.Decimal `json:"average_salary" gorm:"column:average_salary"`
}

type GenderStat struct {
	Gender        string `json:"gender" gorm:"column:gender"`
	EmployeeCount int    `json:"employee_count" gorm:"column:employee_count"`
}

// MonthlyTotals is one month's payroll sums as stored.
type MonthlyTotals struct {
	Month         int             `gorm:"column:month"`
	EmployeeCount int             `gorm:"column:employee_count"`
	TotalGross    decimal.Decimal `gorm:"column:total_gross"`
	TotalNet      decimal.Decimal `gorm:"column:total_net"`
}

type MonthlySalaryStat struct {
	Month         int             `json:"month"`
	EmployeeCount int             `json:"employee_count"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	AverageGross  decimal.Decimal `json:"average_gross"`
	AverageNet    decimal.Decimal `json:"average_net"`
}

type QuarterlySalaryStat struct {
	Quarter       int             `json:"quarter"`
	MonthCount    int             `json:"month_count"`
	EmployeeCount int             `json:"employee_count"`
	TotalGross    decimal.Decimal `json:"total_gross"`
	TotalNet      decimal.Decimal `json:"total_net"`
	AverageGross  decimal.Decimal `json:"average_gross"`
	AverageNet    decimal.Decimal `json:"average_net"`
}
