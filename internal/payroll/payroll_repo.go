package payroll

import (
	"context"
	"database/sql"

	"go-hrm/internal/shared/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payroll *Payroll) error
	Update(ctx context.Context, payroll *Payroll) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Payroll, error)
	FindAll(ctx context.Context, filter PayrollFilter) ([]Payroll, error)
	ExistsForPeriod(ctx context.Context, employeeID string, year, month int, excludeID string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)

	CreateAdjustment(ctx context.Context, adj *PayrollAdjustment) error
	FindAdjustmentByID(ctx context.Context, id string) (*PayrollAdjustment, error)
	DeleteAdjustment(ctx context.Context, id string) error
	DeleteAdjustmentsByPayroll(ctx context.Context, payrollID string) error
	ListAdjustments(ctx context.Context, payrollID string) ([]PayrollAdjustment, error)
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

func (r *repository) Create(ctx context.Context, payroll *Payroll) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(payroll).Error
}

func (r *repository) Update(ctx context.Context, payroll *Payroll) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(payroll).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Payroll{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Adjustments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll(ctx context.Context, filter PayrollFilter) ([]Payroll, error) {
	q := r.db.WithContext(ctx).Model(&Payroll{}).Preload("Employee")

	if filter.Year > 0 {
		q = q.Where("payrolls.period_year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("payrolls.period_month = ?", filter.Month)
	}
	if filter.EmployeeID != "" {
		q = q.Where("payrolls.employee_id = ?", filter.EmployeeID)
	}
	if filter.DepartmentID != "" {
		q = q.Joins("JOIN employees ON employees.id = payrolls.employee_id").
			Where("employees.department_id = ?", filter.DepartmentID)
	}

	var payrolls []Payroll
	err := q.Order("payrolls.period_year DESC, payrolls.period_month DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) ExistsForPeriod(ctx context.Context, employeeID string, year, month int, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("employee_id = ? AND period_year = ? AND period_month = ?", employeeID, year, month)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CreateAdjustment(ctx context.Context, adj *PayrollAdjustment) error {
	return r.db.WithContext(ctx).Create(adj).Error
}

func (r *repository) FindAdjustmentByID(ctx context.Context, id string) (*PayrollAdjustment, error) {
	var adj PayrollAdjustment
	if err := r.db.WithContext(ctx).First(&adj, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &adj, nil
}

func (r *repository) DeleteAdjustment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PayrollAdjustment{}, "id = ?", id).Error
}

func (r *repository) DeleteAdjustmentsByPayroll(ctx context.Context, payrollID string) error {
	return r.db.WithContext(ctx).Delete(&PayrollAdjustment{}, "payroll_id = ?", payrollID).Error
}

func (r *repository) ListAdjustments(ctx context.Context, payrollID string) ([]PayrollAdjustment, error) {
	var adjs []PayrollAdjustment
	err := r.db.WithContext(ctx).
		Where("payroll_id = ?", payrollID).
		Order("created_at ASC").
		Find(&adjs).Error
	return adjs, err
}
