package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	attendanceerrors "go-hrm/internal/attendance/errors"
	"go-hrm/internal/employee"
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

	clockLayout    = "15:04"
	activityEntity = "Attendance"
)

type ActivityLogger interface {
	Log(ctx context.Context, action, entityName, entityID, details string) error
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error)
	ClockIn(ctx context.Context) (AttendanceResponse, error)
	ClockOut(ctx context.Context) (AttendanceResponse, error)
	GetAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
	MonthlySummary(ctx context.Context, year, month int) ([]MonthlySummaryRow, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	activity ActivityLogger
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, activity ActivityLogger, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		activity: activity,
		now:      time.Now,
		logger:   l,
	}
}

// NewServiceWithClock is NewService with a fixed time source for clock in
// and clock out.
func NewServiceWithClock(db *sql.DB, repo Repository, activity ActivityLogger, now func() time.Time, logger ...*zap.Logger) Service {
	s := NewService(db, repo, activity, logger...).(*service)
	s.now = now
	return s
}

type upsertInput struct {
	employeeID uuid.UUID
	workDate   time.Time
	checkIn    *time.Time
	checkOut   *time.Time
	overtime   decimal.Decimal
	status     string
	notes      string
}

// Upsert writes the single record for (employee, work date), creating it
// on first use and overwriting every field afterwards.
func (s *service) Upsert(ctx context.Context, req UpsertAttendanceRequest) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	in, err := validateUpsert(req)
	if err != nil {
		log.Warn("attendance validation failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("work_date", req.WorkDate),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, in.employeeID.String())
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !exists {
		return AttendanceResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	a, created, err := s.loadDay(ctx, qtx, in.employeeID, in.workDate)
	if err != nil {
		return AttendanceResponse{}, err
	}

	a.CheckIn = in.checkIn
	a.CheckOut = in.checkOut
	a.OvertimeHours = in.overtime
	a.Status = in.status
	a.Notes = in.notes
	a.Recompute()

	if err := s.persist(ctx, qtx, a, created); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	action := "Update"
	if created {
		action = "Create"
	}
	s.recordActivity(ctx, action, a.ID.String(), fmt.Sprintf(
		"%s attendance %s for employee %s: status=%s hours=%s overtime=%s",
		strings.ToLower(action), a.WorkDate.Format(time.DateOnly), a.EmployeeID,
		a.Status, a.WorkHours.StringFixed(2), a.OvertimeHours.StringFixed(2),
	))

	log.Info("attendance saved",
		zap.String("attendance_id", a.ID.String()),
		zap.String("action", action),
	)
	return mapToResponse(*a), nil
}

// ClockIn stamps the current time as today's check-in for the actor's
// linked employee.
func (s *service) ClockIn(ctx context.Context) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := linkedEmployee(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}
	now := s.now().UTC().Truncate(time.Minute)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, created, err := s.loadDay(ctx, qtx, employeeID, employee.DateOnly(now))
	if err != nil {
		return AttendanceResponse{}, err
	}
	if a.CheckIn != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedIn
	}

	a.CheckIn = &now
	if created {
		a.Status = StatusPresent
	}
	a.Recompute()

	if err := s.persist(ctx, qtx, a, created); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("clock in commit failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	log.Info("clocked in", zap.String("employee_id", employeeID.String()))
	return mapToResponse(*a), nil
}

func (s *service) ClockOut(ctx context.Context) (AttendanceResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := linkedEmployee(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}
	now := s.now().UTC().Truncate(time.Minute)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := qtx.FindByEmployeeAndDate(ctx, employeeID.String(), employee.DateOnly(now))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if err != nil {
		return AttendanceResponse{}, err
	}
	if a.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotClockedIn
	}
	if a.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyClockedOut
	}

	a.CheckOut = &now
	a.Recompute()

	if err := s.persist(ctx, qtx, a, false); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		log.Error("clock out commit failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}

	log.Info("clocked out",
		zap.String("employee_id", employeeID.String()),
		zap.String("work_hours", a.WorkHours.StringFixed(2)),
	)
	return mapToResponse(*a), nil
}

// GetAll lists attendance newest first. Callers outside ADMIN and HR only
// see their own linked employee's days.
func (s *service) GetAll(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error) {
	if own, restricted := ownEmployeeScope(ctx); restricted {
		if own == "" {
			return []AttendanceResponse{}, nil
		}
		filter.EmployeeID = own
	}

	var q ListQuery
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		q.EmployeeID = filter.EmployeeID
	}
	var err error
	if q.From, err = parseOptionalDate(filter.From); err != nil {
		return nil, err
	}
	if q.To, err = parseOptionalDate(filter.To); err != nil {
		return nil, err
	}
	if q.From != nil && q.To != nil && q.From.After(*q.To) {
		return nil, attendanceerrors.ErrInvalidRange
	}

	rows, err := s.repo.FindAll(ctx, q)
	if err != nil {
		s.logger.Error("list attendance failed", zap.Error(err))
		return nil, err
	}

	resp := make([]AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		resp = append(resp, mapToResponse(a))
	}
	return resp, nil
}

func (s *service) MonthlySummary(ctx context.Context, year, month int) ([]MonthlySummaryRow, error) {
	if year < minYear || year > maxYear || month < 1 || month > 12 {
		return nil, attendanceerrors.ErrInvalidPeriod
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	rows, err := s.repo.MonthlySummary(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance summary failed",
			zap.Int("year", year),
			zap.Int("month", month),
			zap.Error(err),
		)
		return nil, err
	}
	if rows == nil {
		rows = []MonthlySummaryRow{}
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return attendanceerrors.ErrInvalidAttendanceID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	s.recordActivity(ctx, "Delete", id, "deleted attendance "+id)
	contextutil.GetLogger(ctx, s.logger).Info("attendance deleted", zap.String("attendance_id", id))
	return nil
}

// loadDay returns the stored record for the day, or a fresh unsaved one
// with created set.
func (s *service) loadDay(ctx context.Context, qtx Repository, employeeID uuid.UUID, workDate time.Time) (*Attendance, bool, error) {
	a, err := qtx.FindByEmployeeAndDate(ctx, employeeID.String(), workDate)
	if err == nil {
		return a, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	return &Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		WorkDate:   workDate,
		Status:     StatusPresent,
	}, true, nil
}

func (s *service) persist(ctx context.Context, qtx Repository, a *Attendance, created bool) error {
	var err error
	if created {
		err = qtx.Create(ctx, a)
	} else {
		err = qtx.Update(ctx, a)
	}
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("attendance persist failed",
			zap.String("attendance_id", a.ID.String()),
			zap.Error(err),
		)
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) recordActivity(ctx context.Context, action, entityID, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Log(ctx, action, activityEntity, entityID, details); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("attendance activity log failed",
			zap.String("action", action),
			zap.String("attendance_id", entityID),
			zap.Error(err),
		)
	}
}

func validateUpsert(req UpsertAttendanceRequest) (upsertInput, error) {
	var in upsertInput
	var err error

	if in.employeeID, err = uuid.Parse(strings.TrimSpace(req.EmployeeID)); err != nil {
		return in, attendanceerrors.ErrInvalidEmployeeID
	}

	d, err := time.Parse(time.DateOnly, strings.TrimSpace(req.WorkDate))
	if err != nil {
		return in, attendanceerrors.ErrInvalidDateFormat
	}
	in.workDate = employee.DateOnly(d)

	if in.checkIn, err = ParseClock(in.workDate, req.CheckIn); err != nil {
		return in, err
	}
	if in.checkOut, err = ParseClock(in.workDate, req.CheckOut); err != nil {
		return in, err
	}

	if raw := strings.TrimSpace(req.OvertimeHours); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return in, attendanceerrors.ErrInvalidOvertime
		}
		in.overtime = ClampOvertime(v)
	}

	var ok bool
	if in.status, ok = NormalizeStatus(req.Status); !ok {
		return in, attendanceerrors.ErrInvalidStatus
	}
	in.notes = strings.TrimSpace(req.Notes)
	return in, nil
}

// ParseClock places an H:mm or HH:mm time of day on workDate. Blank input
// yields nil.
func ParseClock(workDate time.Time, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(clockLayout, raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidTimeFormat
	}
	at := time.Date(workDate.Year(), workDate.Month(), workDate.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	return &at, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	return &d, nil
}

func linkedEmployee(ctx context.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(contextutil.GetActor(ctx).EmployeeID)
	if err != nil {
		return uuid.Nil, attendanceerrors.ErrEmployeeNotLinked
	}
	return id, nil
}

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
		return attendanceerrors.ErrAttendanceNotFound
	}
	if database.IsUniqueViolation(err, "uq_attendance_day") {
		return attendanceerrors.ErrDuplicateDay
	}
	if database.IsForeignKeyViolation(err) {
		return attendanceerrors.ErrEmployeeNotFound
	}
	return err
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:            a.ID.String(),
		EmployeeID:    a.EmployeeID.String(),
		WorkDate:      a.WorkDate.Format(time.DateOnly),
		WorkHours:     a.WorkHours,
		OvertimeHours: a.OvertimeHours,
		Status:        a.Status,
		Notes:         a.Notes,
	}
	if a.Employee != nil {
		resp.EmployeeName = a.Employee.FullName
	}
	if a.CheckIn != nil {
		v := a.CheckIn.UTC().Format(clockLayout)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.UTC().Format(clockLayout)
		resp.CheckOut = &v
	}
	return resp
}
