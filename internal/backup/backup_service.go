package backup

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	backuperrors "go-hrm/internal/backup/errors"
	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/events"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	activityEntity = "Employee"
	fileTimeLayout = "20060102_150405"
)

// ActivityLogger records an audit trail entry attributed to the ctx actor.
type ActivityLogger interface {
	Log(ctx context.Context, action, entityName, entityID, details string) error
}

//go:generate mockgen -source=backup_service.go -destination=mock/backup_service_mock.go -package=mock
type Service interface {
	Export(ctx context.Context, dir string) (ExportResult, error)
	Restore(ctx context.Context, path string, overwrite bool) (RestoreResult, error)
	RestoreStored(ctx context.Context, name string, overwrite bool) (RestoreResult, error)
	RestoreFrom(ctx context.Context, r io.Reader, source string, overwrite bool) (RestoreResult, error)
}

// Dependencies wires the stores the engine reads and writes. Outbox,
// Activity and Invalidate are optional.
type Dependencies struct {
	Departments department.Repository
	Employees   employee.Repository
	Outbox      kafka.OutboxRepository
	Activity    ActivityLogger
	// Invalidate is called after a restore commits.
	Invalidate []func(ctx context.Context)
	DefaultDir string
	Now        func() time.Time
}

type service struct {
	db         *sql.DB
	deps       Dependencies
	defaultDir string
	now        func() time.Time
	logger     *zap.Logger
}

func NewService(db *sql.DB, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("backup.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backup.service")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		db:         db,
		deps:       deps,
		defaultDir: deps.DefaultDir,
		now:        now,
		logger:     l,
	}
}

// Export writes every employee to a new snapshot file in dir, falling back
// to the configured backup directory when dir is blank.
func (s *service) Export(ctx context.Context, dir string) (ExportResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if strings.TrimSpace(dir) == "" {
		dir = s.defaultDir
	}
	if strings.TrimSpace(dir) == "" {
		return ExportResult{}, backuperrors.ErrBackupPathRequired
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ExportResult{}, backuperrors.ErrBackupIO.WithErr(err)
	}

	empls, err := s.deps.Employees.FindAllWithDepartment(ctx)
	if err != nil {
		log.Error("export load employees failed", zap.Error(err))
		return ExportResult{}, err
	}
	if len(empls) == 0 {
		return ExportResult{}, backuperrors.ErrNothingToExport
	}

	slices.SortStableFunc(empls, func(a, b employee.Employee) int {
		return strings.Compare(a.FullName, b.FullName)
	})

	now := s.now()
	pkg := Package{
		SchemaVersion:  CurrentSchemaVersion,
		GeneratedAtUtc: NewTimestamp(now.UTC()),
		GeneratedBy:    contextutil.GetActor(ctx).DisplayName(),
		EmployeeCount:  len(empls),
		Employees:      make([]Record, 0, len(empls)),
	}
	for _, e := range empls {
		pkg.Employees = append(pkg.Employees, toRecord(e))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error("export create directory failed", zap.String("dir", dir), zap.Error(err))
		return ExportResult{}, backuperrors.ErrBackupIO.WithErr(err)
	}

	fileName := fmt.Sprintf("employees_backup_%s.json", now.Format(fileTimeLayout))
	path := filepath.Join(dir, fileName)
	if err := writeAtomic(path, pkg); err != nil {
		log.Error("export write failed", zap.String("path", path), zap.Error(err))
		return ExportResult{}, backuperrors.ErrBackupIO.WithErr(err)
	}

	s.recordActivity(ctx, "Backup", fmt.Sprintf("Backed up %d employees to %s", len(empls), fileName))
	log.Info("employee backup written",
		zap.String("path", path),
		zap.Int("employee_count", len(empls)),
	)

	return ExportResult{FilePath: path, EmployeeCount: len(empls)}, nil
}

func (s *service) Restore(ctx context.Context, path string, overwrite bool) (RestoreResult, error) {
	if strings.TrimSpace(path) == "" {
		return RestoreResult{}, backuperrors.ErrBackupPathRequired
	}
	if !filepath.IsAbs(path) && s.defaultDir != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = filepath.Join(s.defaultDir, path)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return RestoreResult{}, backuperrors.ErrBackupFileNotFound.WithErr(err)
		}
		return RestoreResult{}, backuperrors.ErrBackupIO.WithErr(err)
	}
	defer f.Close()

	return s.RestoreFrom(ctx, f, filepath.Base(path), overwrite)
}

// RestoreStored restores a snapshot that must resolve inside the configured
// backup directory. Relative names are taken relative to that directory.
func (s *service) RestoreStored(ctx context.Context, name string, overwrite bool) (RestoreResult, error) {
	path, err := s.storedPath(name)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("restore path rejected",
			zap.String("path", name),
			zap.Error(err),
		)
		return RestoreResult{}, err
	}
	return s.Restore(ctx, path, overwrite)
}

func (s *service) storedPath(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", backuperrors.ErrBackupPathRequired
	}
	if strings.TrimSpace(s.defaultDir) == "" {
		return "", backuperrors.ErrBackupPathOutsideDir
	}
	root, err := filepath.Abs(s.defaultDir)
	if err != nil {
		return "", backuperrors.ErrBackupIO.WithErr(err)
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", backuperrors.ErrBackupPathOutsideDir
	}
	return path, nil
}

// RestoreFrom reingests a snapshot in a single transaction. Nothing is
// written unless the whole document decodes and every record applies.
func (s *service) RestoreFrom(ctx context.Context, r io.Reader, source string, overwrite bool) (RestoreResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	pkg, err := decodePackage(r)
	if err != nil {
		log.Warn("restore rejected snapshot", zap.String("source", source), zap.Error(err))
		return RestoreResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("restore begin tx failed", zap.Error(err))
		return RestoreResult{}, err
	}
	defer tx.Rollback()

	result, err := s.applyPackage(ctx, tx, pkg, overwrite)
	if err != nil {
		log.Error("restore failed, rolling back", zap.String("source", source), zap.Error(err))
		return RestoreResult{}, err
	}

	if err := s.enqueueRestored(ctx, tx, source, overwrite, result); err != nil {
		log.Error("restore outbox persist failed", zap.Error(err))
		return RestoreResult{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("restore commit failed", zap.Error(err))
		return RestoreResult{}, err
	}

	for _, invalidate := range s.deps.Invalidate {
		invalidate(ctx)
	}

	s.recordActivity(ctx, "Restore", fmt.Sprintf(
		"Restored from %s. Created: %d, updated: %d, skipped: %d",
		source, result.Created, result.Updated, result.Skipped,
	))
	log.Info("employee restore committed",
		zap.String("source", source),
		zap.Bool("overwrite", overwrite),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *service) applyPackage(ctx context.Context, tx *sql.Tx, pkg *Package, overwrite bool) (RestoreResult, error) {
	var result RestoreResult

	deptRepo := s.deps.Departments.WithTx(tx)
	emplRepo := s.deps.Employees.WithTx(tx)

	depts, err := deptRepo.FindAll(ctx)
	if err != nil {
		return result, fmt.Errorf("load departments: %w", err)
	}
	deptByName := make(map[string]uuid.UUID, len(depts))
	for _, d := range depts {
		deptByName[departmentKey(d.Name)] = d.ID
	}

	empls, err := emplRepo.FindAll(ctx)
	if err != nil {
		return result, fmt.Errorf("load employees: %w", err)
	}
	emplByKey := make(map[string]*employee.Employee, len(empls))
	for i := range empls {
		emplByKey[empls[i].NaturalKey()] = &empls[i]
	}

	now := s.now()
	for i, rec := range pkg.Employees {
		fullName := strings.TrimSpace(rec.FullName)
		deptName := strings.TrimSpace(rec.DepartmentName)
		if fullName == "" || deptName == "" || !rec.DateOfBirth.present() {
			result.Skipped++
			continue
		}

		deptID, ok := deptByName[departmentKey(deptName)]
		if !ok {
			dept := &department.Department{ID: uuid.New(), Name: deptName}
			if err := deptRepo.Create(ctx, dept); err != nil {
				return result, fmt.Errorf("record %d: create department %q: %w", i, deptName, err)
			}
			deptID = dept.ID
			deptByName[departmentKey(deptName)] = deptID
		}

		dob := employee.DateOnly(rec.DateOfBirth.Time)
		position := strings.TrimSpace(rec.Position)
		if position == "" {
			position = UnknownPosition
		}
		key := employee.NaturalKey(fullName, dob)

		if existing, found := emplByKey[key]; found {
			if !overwrite {
				result.Skipped++
				continue
			}
			if !overwriteEmployee(existing, rec, deptID, position, dob) {
				result.Skipped++
				continue
			}
			if err := emplRepo.Update(ctx, existing); err != nil {
				return result, fmt.Errorf("record %d: update employee: %w", i, err)
			}
			result.Updated++
			continue
		}

		empl := &employee.Employee{
			ID:           uuid.New(),
			FullName:     fullName,
			DateOfBirth:  dob,
			Gender:       rec.Gender,
			Address:      rec.Address,
			Phone:        rec.Phone,
			DepartmentID: deptID,
			Position:     position,
			BaseSalary:   rec.BaseSalary.Decimal,
			HireDate:     employee.DateOnly(now),
			IsActive:     rec.IsActive,
			CreatedAt:    rec.CreatedAt.Time,
		}
		if rec.HireDate.present() {
			empl.HireDate = employee.DateOnly(rec.HireDate.Time)
		}
		if empl.CreatedAt.IsZero() {
			empl.CreatedAt = now.UTC()
		}

		if err := emplRepo.Create(ctx, empl); err != nil {
			return result, fmt.Errorf("record %d: create employee: %w", i, err)
		}
		emplByKey[key] = empl
		result.Created++
	}

	return result, nil
}

func (s *service) enqueueRestored(ctx context.Context, tx *sql.Tx, source string, overwrite bool, result RestoreResult) error {
	if s.deps.Outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeesRestoredEvent{
		EventType:  events.EventEmployeesRestored,
		RequestID:  rid,
		SourceFile: source,
		Created:    result.Created,
		Updated:    result.Updated,
		Skipped:    result.Skipped,
		Overwrite:  overwrite,
		RestoredBy: contextutil.GetActor(ctx).DisplayName(),
		OccurredAt: s.now().UTC(),
	}
	row, err := kafka.NewEvent(rid, "employee_backup", source, event.EventType, events.EmployeeLifecycleTopic, event)
	if err != nil {
		return err
	}
	return s.deps.Outbox.WithTx(tx).Create(ctx, row)
}

func (s *service) recordActivity(ctx context.Context, action, details string) {
	if s.deps.Activity == nil {
		return
	}
	if err := s.deps.Activity.Log(ctx, action, activityEntity, "", details); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("backup activity log failed",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func decodePackage(r io.Reader) (*Package, error) {
	var pkg Package
	dec := json.NewDecoder(r)
	if err := dec.Decode(&pkg); err != nil {
		return nil, backuperrors.ErrCorruptBackup.WithErr(err)
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return nil, backuperrors.ErrCorruptBackup.WithErr(errors.New("unexpected data after backup document"))
	}
	if pkg.Employees == nil {
		return nil, backuperrors.ErrCorruptBackup.WithErr(errors.New("employee list is missing"))
	}
	if !IsSupportedSchemaVersion(pkg.SchemaVersion) {
		return nil, backuperrors.ErrUnsupportedSchemaVersion.WithErr(
			fmt.Errorf("schema version %d", pkg.SchemaVersion),
		)
	}
	return &pkg, nil
}

func writeAtomic(path string, pkg Package) (err error) {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err = enc.Encode(pkg); err != nil {
		f.Close()
		return err
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func toRecord(e employee.Employee) Record {
	deptName := UnknownDepartment
	if e.Department != nil && strings.TrimSpace(e.Department.Name) != "" {
		deptName = e.Department.Name
	}
	dob := NewTimestamp(e.DateOfBirth)
	hire := NewTimestamp(e.HireDate)

	rec := Record{
		FullName:       e.FullName,
		Gender:         e.Gender,
		Address:        e.Address,
		Phone:          e.Phone,
		DepartmentName: deptName,
		Position:       e.Position,
		BaseSalary:     NewMoney(e.BaseSalary),
		IsActive:       e.IsActive,
		CreatedAt:      NewTimestamp(e.CreatedAt),
	}
	if !e.DateOfBirth.IsZero() {
		rec.DateOfBirth = &dob
	}
	if !e.HireDate.IsZero() {
		rec.HireDate = &hire
	}
	return rec
}

// overwriteEmployee copies the mutable snapshot fields onto existing and
// reports whether anything changed. The name is never rewritten.
func overwriteEmployee(existing *employee.Employee, rec Record, deptID uuid.UUID, position string, dob time.Time) bool {
	next := *existing
	next.DepartmentID = deptID
	next.Position = position
	next.BaseSalary = rec.BaseSalary.Decimal
	next.IsActive = rec.IsActive
	next.Address = rec.Address
	next.Phone = rec.Phone
	next.Gender = rec.Gender
	next.DateOfBirth = dob
	if rec.HireDate.present() {
		next.HireDate = employee.DateOnly(rec.HireDate.Time)
	}

	changed := next.DepartmentID != existing.DepartmentID ||
		next.Position != existing.Position ||
		!next.BaseSalary.Equal(existing.BaseSalary) ||
		next.IsActive != existing.IsActive ||
		next.Address != existing.Address ||
		next.Phone != existing.Phone ||
		next.Gender != existing.Gender ||
		!next.DateOfBirth.Equal(existing.DateOfBirth) ||
		!next.HireDate.Equal(existing.HireDate)
	if changed {
		*existing = next
	}
	return changed
}

func departmentKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
