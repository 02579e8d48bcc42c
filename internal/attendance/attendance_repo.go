package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListQuery narrows FindAll. Zero fields do not filter.
type ListQuery struct {
	EmployeeID string
	From       *time.Time
	To         *time.Time
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Attendance, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Attendance, error)
	FindAll(ctx context.Context, q ListQuery) ([]Attendance, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	MonthlySummary(ctx context.Context, from, to time.Time) ([]MonthlySummaryRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: database.WithTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Attendance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Attendance, error) {
	var a Attendance
	if err := r.db.WithContext(ctx).Preload("Employee").First(&a, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND work_date = ?", employeeID, workDate).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAll(ctx context.Context, q ListQuery) ([]Attendance, error) {
	db := r.db.WithContext(ctx).Model(&Attendance{}).Preload("Employee")

	if q.EmployeeID != "" {
		db = db.Where("employee_id = ?", q.EmployeeID)
	}
	if q.From != nil {
		db = db.Where("work_date >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("work_date <= ?", *q.To)
	}

	var rows []Attendance
	err := db.Order("work_date DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

// MonthlySummary aggregates attendances in [from, to) for every active
// employee, ordered by name.
func (r *repository) MonthlySummary(ctx context.Context, from, to time.Time) ([]MonthlySummaryRow, error) {
	var rows []MonthlySummaryRow
	err := r.db.WithContext(ctx).
		Table("employees AS e").
		Select(`e.id AS employee_id, e.full_name,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS present_days,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS leave_days,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS wfh_days,
			COALESCE(SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END), 0) AS absent_days,
			COALESCE(SUM(a.work_hours), 0) AS work_hours,
			COALESCE(SUM(a.overtime_hours), 0) AS overtime_hours`,
			StatusPresent, StatusLeave, StatusWFH, StatusAbsent).
		Joins("LEFT JOIN attendances a ON a.employee_id = e.id AND a.work_date >= ? AND a.work_date < ?", from, to).
		Where("e.is_active = ?", true).
		Group("e.id, e.full_name").
		Order("e.full_name ASC").
		Scan(&rows).Error
	return rows, err
}
