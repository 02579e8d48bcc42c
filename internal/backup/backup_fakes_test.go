package backup_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/messaging/kafka"

	"gorm.io/gorm"
)

// memStore backs both fake repositories so employees can resolve their
// department the way a preload would.
type memStore struct {
	depts []department.Department
	empls []employee.Employee

	employeeWrites int
	failEmployeeAt int
}

func (st *memStore) departmentName(id string) string {
	for _, d := range st.depts {
		if d.ID.String() == id {
			return d.Name
		}
	}
	return ""
}

type fakeDepartmentRepo struct{ st *memStore }

func (r *fakeDepartmentRepo) WithTx(*sql.Tx) department.Repository { return r }

func (r *fakeDepartmentRepo) Create(_ context.Context, d *department.Department) error {
	for _, existing := range r.st.depts {
		if strings.EqualFold(existing.Name, d.Name) {
			return errors.New("duplicate department")
		}
	}
	r.st.depts = append(r.st.depts, *d)
	return nil
}

func (r *fakeDepartmentRepo) FindAll(context.Context) ([]department.Department, error) {
	return append([]department.Department(nil), r.st.depts...), nil
}

func (r *fakeDepartmentRepo) FindByID(_ context.Context, id string) (*department.Department, error) {
	for _, d := range r.st.depts {
		if d.ID.String() == id {
			d := d
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDepartmentRepo) Update(context.Context, *department.Department) error { return nil }

func (r *fakeDepartmentRepo) Delete(context.Context, string) error { return nil }

type fakeEmployeeRepo struct{ st *memStore }

func (r *fakeEmployeeRepo) WithTx(*sql.Tx) employee.Repository { return r }

func (r *fakeEmployeeRepo) write() error {
	r.st.employeeWrites++
	if r.st.failEmployeeAt > 0 && r.st.employeeWrites == r.st.failEmployeeAt {
		return errors.New("insert failed")
	}
	return nil
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *employee.Employee) error {
	if err := r.write(); err != nil {
		return err
	}
	r.st.empls = append(r.st.empls, *e)
	return nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *employee.Employee) error {
	if err := r.write(); err != nil {
		return err
	}
	for i := range r.st.empls {
		if r.st.empls[i].ID == e.ID {
			r.st.empls[i] = *e
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) Delete(context.Context, string) error { return nil }

func (r *fakeEmployeeRepo) FindAll(context.Context) ([]employee.Employee, error) {
	return append([]employee.Employee(nil), r.st.empls...), nil
}

func (r *fakeEmployeeRepo) FindAllWithDepartment(context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(r.st.empls))
	for _, e := range r.st.empls {
		if name := r.st.departmentName(e.DepartmentID.String()); name != "" {
			e.Department = &department.Department{ID: e.DepartmentID, Name: name}
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	for _, e := range r.st.empls {
		if e.ID.String() == id {
			e := e
			return &e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return r.FindAll(ctx)
}

func (r *fakeEmployeeRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, err := r.FindByID(context.Background(), id)
	return err == nil, nil
}

type fakeOutboxRepository struct {
	created   []kafka.OutboxEvent
	createErr error
}

func (f *fakeOutboxRepository) WithTx(*sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(_ context.Context, event kafka.OutboxEvent) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(context.Context, string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(context.Context, string, string) error { return nil }

type activityEntry struct {
	action  string
	details string
}

type fakeActivityLogger struct {
	entries []activityEntry
	err     error
}

func (f *fakeActivityLogger) Log(_ context.Context, action, _, _, details string) error {
	f.entries = append(f.entries, activityEntry{action: action, details: details})
	return f.err
}
