package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	payrollerrors "go-hrm/internal/payroll/errors"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	minYear = 1900
	maxYear = 9999

	activityEntity = "Payroll"
)

// ActivityLogger records an audit trail entry attributed to the ctx actor.
type ActivityLogger interface {
	Log(ctx context.Context, action, entityName, entityID, details string) error
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, id string) (PayrollResponse, error)
	GetAll(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	Delete(ctx context.Context, id string) error
	AddAdjustment(ctx context.Context, payrollID string, req AddAdjustmentRequest) (PayrollResponse, error)
	RemoveAdjustment(ctx context.Context, adjustmentID string) (PayrollResponse, error)
	Recalculate(ctx context.Context, payrollID string) (PayrollResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	activity ActivityLogger
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	activity ActivityLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		activity: activity,
		now:      time.Now,
		logger:   l,
	}
}

// periodInput is a validated CreatePayrollRequest.
type periodInput struct {
	employeeID uuid.UUID
	year       int
	month      int
	basic      decimal.Decimal
	overtime   decimal.Decimal
	allowance  decimal.Decimal
	bonus      decimal.Decimal
	penalty    decimal.Decimal
	deduction  decimal.Decimal
	payDate    *time.Time
}

func (s *service) Create(ctx context.Context, req CreatePayrollRequest) (PayrollResponse, error) {
	return s.saveOrUpdatePeriod(ctx, "", req)
}

func (s *service) Update(ctx context.Context, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}
	return s.saveOrUpdatePeriod(ctx, id, req)
}

// saveOrUpdatePeriod creates a payroll when id is empty and updates it
// otherwise. All input is validated before the transaction opens.
func (s *service) saveOrUpdatePeriod(ctx context.Context, id string, req CreatePayrollRequest) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	in, err := validatePeriodRequest(req)
	if err != nil {
		log.Warn("payroll validation failed",
			zap.String("payroll_id", id),
			zap.String("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, in.employeeID.String())
	if err != nil {
		return PayrollResponse{}, err
	}
	if !exists {
		return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
	}

	dup, err := qtx.ExistsForPeriod(ctx, in.employeeID.String(), in.year, in.month, id)
	if err != nil {
		return PayrollResponse{}, err
	}
	if dup {
		log.Warn("payroll duplicate period",
			zap.String("employee_id", in.employeeID.String()),
			zap.Int("year", in.year),
			zap.Int("month", in.month),
		)
		return PayrollResponse{}, payrollerrors.ErrDuplicatePeriod
	}

	var p *Payroll
	action := "Create"
	if id == "" {
		p = &Payroll{ID: uuid.New()}
	} else {
		action = "Update"
		p, err = qtx.FindByID(ctx, id)
		if err != nil {
			return PayrollResponse{}, mapRepositoryError(err)
		}
	}

	p.EmployeeID = in.employeeID
	p.PeriodYear = in.year
	p.PeriodMonth = in.month
	p.BasicSalary = in.basic
	p.OvertimePay = in.overtime
	p.TotalAllowance = in.allowance
	p.TotalBonus = in.bonus
	p.TotalPenalty = in.penalty
	p.TotalDeduction = in.deduction
	p.PayDate = in.payDate
	p.refreshGrossNet()

	if id == "" {
		err = qtx.Create(ctx, p)
	} else {
		err = qtx.Update(ctx, p)
	}
	if err != nil {
		log.Error("payroll persist failed", zap.String("payroll_id", p.ID.String()), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.enqueueRecalculated(ctx, tx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	s.recordActivity(ctx, action, p.ID.String(), fmt.Sprintf(
		"%s payroll %04d-%02d for employee %s: gross=%s net=%s",
		strings.ToLower(action), p.PeriodYear, p.PeriodMonth, p.EmployeeID, p.Gross.StringFixed(2), p.Net.StringFixed(2),
	))

	log.Info("payroll saved",
		zap.String("request_id", rid),
		zap.String("payroll_id", p.ID.String()),
		zap.String("action", action),
	)
	return mapToResponse(*p), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	// Other employees' payrolls are reported as missing rather than forbidden.
	if own, restricted := ownEmployeeScope(ctx); restricted && p.EmployeeID.String() != own {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}
	return mapToResponse(*p), nil
}

// GetAll lists payrolls. Callers outside ADMIN and HR only ever see their
// own linked employee's rows, whatever the filter asks for.
func (s *service) GetAll(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error) {
	if own, restricted := ownEmployeeScope(ctx); restricted {
		if own == "" {
			return []PayrollResponse{}, nil
		}
		filter.EmployeeID = own
	}

	if filter.Month != 0 && (filter.Month < 1 || filter.Month > 12) {
		return nil, payrollerrors.ErrInvalidMonth
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, payrollerrors.ErrInvalidEmployeeID
		}
	}
	if filter.DepartmentID != "" {
		if _, err := uuid.Parse(filter.DepartmentID); err != nil {
			return nil, payrollerrors.ErrInvalidDepartmentID
		}
	}

	payrolls, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list payrolls failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(payrolls), nil
}

// Delete removes the payroll's adjustments and then the payroll itself.
func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.DeleteAdjustmentsByPayroll(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete payroll commit failed", zap.Error(err))
		return err
	}

	s.recordActivity(ctx, "Delete", id, "deleted payroll "+id)
	log.Info("payroll deleted", zap.String("payroll_id", id))
	return nil
}

func (s *service) AddAdjustment(ctx context.Context, payrollID string, req AddAdjustmentRequest) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	pid, err := uuid.Parse(payrollID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}
	category, ok := NormalizeCategory(req.AdjType)
	if !ok {
		return PayrollResponse{}, payrollerrors.ErrInvalidCategory
	}
	amount, err := ParseAmount(req.Amount)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, payrollID)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	adj := &PayrollAdjustment{
		ID:          uuid.New(),
		PayrollID:   pid,
		AdjType:     category,
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   s.now().UTC(),
	}
	if err := qtx.CreateAdjustment(ctx, adj); err != nil {
		log.Error("create adjustment failed", zap.String("payroll_id", payrollID), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.recalculateTx(ctx, tx, qtx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("add adjustment commit failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	s.recordActivity(ctx, "AddAdjustment", payrollID, fmt.Sprintf(
		"added %s %s to payroll %s", category, amount.StringFixed(2), payrollID,
	))
	log.Info("payroll adjustment added",
		zap.String("payroll_id", payrollID),
		zap.String("adj_type", category),
		zap.String("amount", amount.String()),
	)
	return mapToResponse(*p), nil
}

func (s *service) RemoveAdjustment(ctx context.Context, adjustmentID string) (PayrollResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if _, err := uuid.Parse(adjustmentID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidAdjustmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	adj, err := qtx.FindAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrAdjustmentNotFound
		}
		return PayrollResponse{}, err
	}

	if err := qtx.DeleteAdjustment(ctx, adjustmentID); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	p, err := qtx.FindByID(ctx, adj.PayrollID.String())
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.recalculateTx(ctx, tx, qtx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("remove adjustment commit failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	s.recordActivity(ctx, "RemoveAdjustment", p.ID.String(), fmt.Sprintf(
		"removed %s %s from payroll %s", adj.AdjType, adj.Amount.StringFixed(2), p.ID,
	))
	log.Info("payroll adjustment removed",
		zap.String("payroll_id", p.ID.String()),
		zap.String("adjustment_id", adjustmentID),
	)
	return mapToResponse(*p), nil
}

func (s *service) Recalculate(ctx context.Context, payrollID string) (PayrollResponse, error) {
	if _, err := uuid.Parse(payrollID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPayrollID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, payrollID)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := s.recalculateTx(ctx, tx, qtx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.recordActivity(ctx, "Recalculate", payrollID, "recalculated payroll "+payrollID)
	return mapToResponse(*p), nil
}

// recalculateTx rebuilds every aggregate of p from its stored adjustments,
// persists p and queues the change event.
func (s *service) recalculateTx(ctx context.Context, tx *sql.Tx, qtx Repository, p *Payroll) error {
	adjs, err := qtx.ListAdjustments(ctx, p.ID.String())
	if err != nil {
		return err
	}

	p.ApplyTotals(SumAdjustments(adjs))
	p.Adjustments = adjs

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("persist recalculated payroll failed", zap.String("payroll_id", p.ID.String()), zap.Error(err))
		return mapRepositoryError(err)
	}

	return s.enqueueRecalculated(ctx, tx, p)
}

func (s *service) enqueueRecalculated(ctx context.Context, tx *sql.Tx, p *Payroll) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewEvent(rid, "payroll", p.ID.String(), events.EventPayrollRecalculated, events.PayrollLifecycleTopic,
		events.PayrollRecalculatedEvent{
			EventType:  events.EventPayrollRecalculated,
			RequestID:  rid,
			PayrollID:  p.ID.String(),
			EmployeeID: p.EmployeeID.String(),
			Year:       p.PeriodYear,
			Month:      p.PeriodMonth,
			Gross:      p.Gross.StringFixed(2),
			Net:        p.Net.StringFixed(2),
			OccurredAt: s.now().UTC(),
		})
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("payroll outbox persist failed",
			zap.String("payroll_id", p.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) recordActivity(ctx context.Context, action, entityID, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Log(ctx, action, activityEntity, entityID, details); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("payroll activity log failed",
			zap.String("action", action),
			zap.String("payroll_id", entityID),
			zap.Error(err),
		)
	}
}

func validatePeriodRequest(req CreatePayrollRequest) (periodInput, error) {
	var in periodInput
	var err error

	in.employeeID, err = uuid.Parse(strings.TrimSpace(req.EmployeeID))
	if err != nil {
		return in, payrollerrors.ErrInvalidEmployeeID
	}
	if req.Month < 1 || req.Month > 12 {
		return in, payrollerrors.ErrInvalidMonth
	}
	if req.Year < minYear || req.Year > maxYear {
		return in, payrollerrors.ErrInvalidYear
	}
	in.year, in.month = req.Year, req.Month

	if strings.TrimSpace(req.BasicSalary) == "" {
		return in, payrollerrors.ErrBasicSalaryRequired
	}
	if in.basic, err = ParseAmount(req.BasicSalary); err != nil {
		return in, err
	}

	optional := []struct {
		raw string
		dst *decimal.Decimal
	}{
		{req.OvertimePay, &in.overtime},
		{req.Allowance, &in.allowance},
		{req.Bonus, &in.bonus},
		{req.Penalty, &in.penalty},
		{req.Deduction, &in.deduction},
	}
	for _, o := range optional {
		v, err := ParseOptionalAmount(o.raw)
		if err != nil {
			return in, err
		}
		*o.dst = v
	}

	if req.PayDate != nil && strings.TrimSpace(*req.PayDate) != "" {
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(*req.PayDate))
		if err != nil {
			return in, payrollerrors.ErrInvalidDateFormat
		}
		in.payDate = &d
	}

	return in, nil
}

// ownEmployeeScope returns the actor's linked employee id and whether reads
// must be limited to it. Internal calls without an actor are not limited.
func ownEmployeeScope(ctx context.Context) (string, bool) {
	actor := contextutil.GetActor(ctx)
	if actor.IsAnonymous() || actor.HasRole(rbac.RoleAdmin, rbac.RoleHR) {
		return "", false
	}
	return actor.EmployeeID, true
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}
	if database.IsUniqueViolation(err, "uq_payroll_period") {
		return payrollerrors.ErrDuplicatePeriod
	}
	if database.IsForeignKeyViolation(err) {
		return payrollerrors.ErrEmployeeNotFound
	}
	return err
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:             p.ID.String(),
		EmployeeID:     p.EmployeeID.String(),
		Year:           p.PeriodYear,
		Month:          p.PeriodMonth,
		BasicSalary:    p.BasicSalary,
		OvertimePay:    p.OvertimePay,
		TotalAllowance: p.TotalAllowance,
		TotalBonus:     p.TotalBonus,
		TotalPenalty:   p.TotalPenalty,
		TotalDeduction: p.TotalDeduction,
		Gross:          p.Gross,
		Net:            p.Net,
	}
	if p.Employee != nil {
		resp.EmployeeName = p.Employee.FullName
	}
	if p.PayDate != nil {
		d := p.PayDate.Format(time.DateOnly)
		resp.PayDate = &d
	}
	for _, a := range p.Adjustments {
		resp.Adjustments = append(resp.Adjustments, AdjustmentResponse{
			ID:          a.ID.String(),
			AdjType:     a.AdjType,
			Amount:      a.Amount,
			Description: a.Description,
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	res := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		res[i] = mapToResponse(p)
	}
	return res
}
