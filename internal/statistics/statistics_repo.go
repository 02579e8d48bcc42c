package statistics

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=statistics_repo.go -destination=mock/statistics_repo_mock.go -package=mock
type Repository interface {
	DepartmentCounts(ctx context.Context) ([]DepartmentStat, error)
	PositionCounts(ctx context.Context) ([]PositionStat, error)
	GenderCounts(ctx context.Context) ([]GenderStat, error)
	PayrollYears(ctx context.Context) ([]int, error)
	MonthlyTotals(ctx context.Context, year int) ([]MonthlyTotals, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// DepartmentCounts lists every department, including empty ones, by name.
func (r *repository) DepartmentCounts(ctx context.Context) ([]DepartmentStat, error) {
	var rows []DepartmentStat
	err := r.db.WithContext(ctx).
		Table("departments AS d").
		Select(`d.id AS department_id, d.name AS department_name,
			COALESCE(SUM(CASE WHEN e.is_active THEN 1 ELSE 0 END), 0) AS active_employees,
			COALESCE(SUM(CASE WHEN e.id IS NOT NULL AND NOT e.is_active THEN 1 ELSE 0 END), 0) AS inactive_employees`).
		Joins("LEFT JOIN employees e ON e.department_id = d.id").
		Group("d.id, d.name").
		Order("d.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) PositionCounts(ctx context.Context) ([]PositionStat, error) {
	var rows []PositionStat
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("COALESCE(position, '') AS position, COUNT(*) AS employee_count, COALESCE(AVG(base_salary), 0) AS average_salary").
		Group("COALESCE(position, '')").
		Order("employee_count DESC, position ASC").
		Scan(&rows).Error
	return rows, err
}

// GenderCounts groups on the raw stored value; labels are applied by the
// service.
func (r *repository) GenderCounts(ctx context.Context) ([]GenderStat, error) {
	var rows []GenderStat
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("COALESCE(gender, '') AS gender, COUNT(*) AS employee_count").
		Group("COALESCE(gender, '')").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) PayrollYears(ctx context.Context) ([]int, error) {
	var years []int
	err := r.db.WithContext(ctx).
		Table("payrolls").
		Distinct("period_year").
		Order("period_year DESC").
		Pluck("period_year", &years).Error
	return years, err
}

// MonthlyTotals sums stored gross and gross minus deductions per month.
func (r *repository) MonthlyTotals(ctx context.Context, year int) ([]MonthlyTotals, error) {
	var rows []MonthlyTotals
	err := r.db.WithContext(ctx).
		Table("payrolls").
		Select(`period_month AS month, COUNT(*) AS employee_count,
			COALESCE(SUM(gross), 0) AS total_gross,
			COALESCE(SUM(gross - total_deduction), 0) AS total_net`).
		Where("period_year = ?", year).
		Group("period_month").
		Order("period_month ASC").
		Scan(&rows).Error
	return rows, err
}
