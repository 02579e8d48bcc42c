package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payroll holds one employee's pay for a calendar month. The aggregate
// money fields mirror the sums of its adjustments once Recalculate ran.
type Payroll struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID        `gorm:"type:uuid;not null"`
	Employee    *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
	PeriodYear  int              `gorm:"not null"`
	PeriodMonth int              `gorm:"not null"`

	BasicSalary    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	OvertimePay    decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalAllowance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalBonus     decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalPenalty   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalDeduction decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Gross          decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Net            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`

	PayDate   *time.Time `gorm:"type:date"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Adjustments []PayrollAdjustment `gorm:"foreignKey:PayrollID"`
}

type PayrollAdjustment struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PayrollID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	AdjType     string          `gorm:"column:adj_type;type:varchar(30);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Description string          `gorm:"type:text"`
	CreatedAt   time.Time
}

// PayrollEmployee is the read-only employee projection loaded with a payroll.
type PayrollEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName     string    `gorm:"column:full_name"`
	DepartmentID uuid.UUID `gorm:"column:department_id"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}
