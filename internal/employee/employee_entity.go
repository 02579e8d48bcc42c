package employee

import (
	"strings"
	"time"

	"go-hrm/internal/department"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type Employee struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	FullName     string                 `gorm:"size:200;not null"`
	DateOfBirth  time.Time              `gorm:"type:date;not null"`
	Gender       string                 `gorm:"size:20"`
	Address      string
	Phone        string                 `gorm:"size:50"`
	DepartmentID uuid.UUID              `gorm:"type:uuid;not null;index"`
	Department   *department.Department `gorm:"foreignKey:DepartmentID;references:ID"`
	Position     string                 `gorm:"size:150"`
	BaseSalary   decimal.Decimal        `gorm:"type:numeric(18,2);not null;default:0"`
	HireDate     time.Time              `gorm:"type:date;not null"`
	IsActive     bool                   `gorm:"not null;default:true"`
	AvatarBlob   []byte                 `gorm:"type:bytea"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NaturalKey identifies an employee across databases: the trimmed,
// lower-cased name joined with the birth date as yyyyMMdd.
func NaturalKey(fullName string, dateOfBirth time.Time) string {
	return strings.ToLower(strings.TrimSpace(fullName)) + "|" + dateOfBirth.Format("20060102")
}

func (e Employee) NaturalKey() string {
	return NaturalKey(e.FullName, e.DateOfBirth)
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
