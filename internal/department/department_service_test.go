package department_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrm/internal/department"
	departmenterrors "go-hrm/internal/department/errors"
	departmentMock "go-hrm/internal/department/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   department.Service
	repo      *departmentMock.MockRepository
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	rdb, redisMock := redismock.NewClientMock()
	repo := departmentMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   department.NewService(db, repo, rdb),
		repo:      repo,
		redismock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestDepartmentService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("served from cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []department.DepartmentResponse{{ID: "d-1", Name: "Finance"}}
		raw, _ := json.Marshal(cached)
		deps.redismock.ExpectGet(department.CacheKeyAll).SetVal(string(raw))

		resp, err := deps.service.GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, cached, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads from repository and fills cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		depts := []department.Department{
			{ID: uuid.New(), Name: "Finance"},
			{ID: uuid.New(), Name: "IT"},
		}
		expected := []department.DepartmentResponse{
			{ID: depts[0].ID.String(), Name: "Finance"},
			{ID: depts[1].ID.String(), Name: "IT"},
		}
		raw, _ := json.Marshal(expected)

		deps.redismock.ExpectGet(department.CacheKeyAll).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(depts, nil)
		deps.redismock.ExpectSet(department.CacheKeyAll, raw, 30*time.Minute).SetVal("OK")

		resp, err := deps.service.GetAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, expected, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.redismock.ExpectGet(department.CacheKeyAll).RedisNil()
		deps.repo.EXPECT().FindAll(ctx).Return(nil, errors.New("db down"))

		resp, err := deps.service.GetAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims name and drops cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, d *department.Department) error {
				assert.Equal(t, "Finance", d.Name)
				assert.NotEqual(t, uuid.Nil, d.ID)
				return nil
			})
		deps.redismock.ExpectDel(department.CacheKeyAll).SetVal(1)

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "  Finance "})

		require.NoError(t, err)
		assert.Equal(t, "Finance", resp.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("blank name rejected before tx", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "   "})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{
			Code:           "23505",
			ConstraintName: "uq_department_name",
		})

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "Finance"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id.String())
		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})

	t.Run("found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&department.Department{ID: id, Name: "HR"}, nil)

		resp, err := deps.service.GetByID(ctx, id.String())
		require.NoError(t, err)
		assert.Equal(t, "HR", resp.Name)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	deps := setupServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&department.Department{ID: id, Name: "HR"}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	deps.redismock.ExpectDel(department.CacheKeyAll).SetVal(1)

	resp, err := deps.service.Update(ctx, id.String(), department.UpdateDepartmentRequest{Name: "People"})

	require.NoError(t, err)
	assert.Equal(t, "People", resp.Name)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("still referenced by employees", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id.String()).Return(&pgconn.PgError{Code: "23503"})

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Delete(ctx, id.String()).Return(nil)
		deps.redismock.ExpectDel(department.CacheKeyAll).SetVal(1)

		assert.NoError(t, deps.service.Delete(ctx, id.String()))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}
