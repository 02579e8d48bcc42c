package user_test

import (
	"context"
	"errors"
	"testing"

	"go-hrm/internal/auth"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/user"
	usererrors "go-hrm/internal/user/errors"
	userMock "go-hrm/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeActivityLogger struct {
	actions []string
}

func (f *fakeActivityLogger) Log(_ context.Context, action, _, _, _ string) error {
	f.actions = append(f.actions, action)
	return nil
}

type userServiceHarness struct {
	svc      user.Service
	repo     *userMock.MockRepository
	activity *fakeActivityLogger
}

func setupUserService(t *testing.T) userServiceHarness {
	ctrl := gomock.NewController(t)
	repo := userMock.NewMockRepository(ctrl)
	activity := &fakeActivityLogger{}
	return userServiceHarness{
		svc:      user.NewService(repo, activity),
		repo:     repo,
		activity: activity,
	}
}

func adminCtx(id uuid.UUID) context.Context {
	return contextutil.WithActor(context.Background(), contextutil.Actor{
		UserID: id.String(),
		Email:  "admin@example.com",
		Role:   auth.RoleAdmin,
	})
}

func TestUserService_GetAll(t *testing.T) {
	h := setupUserService(t)
	active := true
	filter := user.ListUsersFilter{Role: "hr", IsActive: &active}
	h.repo.EXPECT().FindAll(gomock.Any(), filter).Return([]auth.User{
		{ID: uuid.New(), Email: "a@example.com", Role: "hr", IsActive: true},
	}, nil)

	resp, err := h.svc.GetAll(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, auth.RoleHR, resp[0].Role)
}

func TestUserService_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		h := setupUserService(t)

		_, err := h.svc.GetByID(context.Background(), "nope")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("not found", func(t *testing.T) {
		h := setupUserService(t)
		id := uuid.New()
		h.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := h.svc.GetByID(context.Background(), id.String())

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_AssignRole(t *testing.T) {
	adminID, targetID := uuid.New(), uuid.New()

	t.Run("success", func(t *testing.T) {
		h := setupUserService(t)
		h.repo.EXPECT().FindByID(gomock.Any(), targetID).
			Return(&auth.User{ID: targetID, Email: "e@example.com", Role: auth.RoleEmployee}, nil)
		h.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *auth.User) error {
				assert.Equal(t, auth.RoleHR, u.Role)
				return nil
			})

		resp, err := h.svc.AssignRole(adminCtx(adminID), targetID.String(), " hr ")

		require.NoError(t, err)
		assert.Equal(t, auth.RoleHR, resp.Role)
		assert.Equal(t, []string{"UpdateRole"}, h.activity.actions)
	})

	t.Run("unknown role", func(t *testing.T) {
		h := setupUserService(t)

		_, err := h.svc.AssignRole(adminCtx(adminID), targetID.String(), "owner")

		assert.ErrorIs(t, err, usererrors.ErrInvalidRole)
	})

	t.Run("cannot demote self", func(t *testing.T) {
		h := setupUserService(t)
		h.repo.EXPECT().FindByID(gomock.Any(), adminID).
			Return(&auth.User{ID: adminID, Role: auth.RoleAdmin}, nil)

		_, err := h.svc.AssignRole(adminCtx(adminID), adminID.String(), auth.RoleEmployee)

		assert.ErrorIs(t, err, usererrors.ErrCannotModifySelf)
	})
}

func TestUserService_ToggleStatus(t *testing.T) {
	adminID, targetID := uuid.New(), uuid.New()

	t.Run("deactivate", func(t *testing.T) {
		h := setupUserService(t)
		h.repo.EXPECT().FindByID(gomock.Any(), targetID).
			Return(&auth.User{ID: targetID, IsActive: true}, nil)
		h.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp, err := h.svc.ToggleStatus(adminCtx(adminID), targetID.String(), false)

		require.NoError(t, err)
		assert.False(t, resp.IsActive)
		assert.Equal(t, []string{"Deactivate"}, h.activity.actions)
	})

	t.Run("update failure", func(t *testing.T) {
		h := setupUserService(t)
		h.repo.EXPECT().FindByID(gomock.Any(), targetID).Return(&auth.User{ID: targetID}, nil)
		h.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := h.svc.ToggleStatus(adminCtx(adminID), targetID.String(), true)

		assert.EqualError(t, err, "db down")
		assert.Empty(t, h.activity.actions)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	id := uuid.New()
	salt := "legacy"

	t.Run("legacy hash is upgraded to bcrypt", func(t *testing.T) {
		h := setupUserService(t)
		h.repo.EXPECT().FindByID(gomock.Any(), id).
			Return(&auth.User{ID: id, PasswordHash: "old-plain"}, nil)
		h.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u *auth.User) error {
				assert.Nil(t, u.PasswordSalt)
				assert.True(t, auth.VerifyPassword("new-secret", u.PasswordHash, nil))
				return nil
			})

		err := h.svc.ChangePassword(adminCtx(id), "old-plain", "new-secret")

		require.NoError(t, err)
		assert.Equal(t, []string{"ChangePassword"}, h.activity.actions)
	})

	t.Run("wrong current password", func(t *testing.T) {
		h := setupUserService(t)
		h.repo.EXPECT().FindByID(gomock.Any(), id).
			Return(&auth.User{ID: id, PasswordHash: "abc", PasswordSalt: &salt}, nil)

		err := h.svc.ChangePassword(adminCtx(id), "wrong", "new-secret")

		assert.ErrorIs(t, err, usererrors.ErrInvalidCurrentPassword)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		h := setupUserService(t)

		err := h.svc.ChangePassword(context.Background(), "x", "new-secret")

		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	h := setupUserService(t)
	id := uuid.New()
	h.repo.EXPECT().FindByID(gomock.Any(), id).Return(&auth.User{ID: id, Email: "e@example.com"}, nil)
	h.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	err := h.svc.ResetPassword(adminCtx(uuid.New()), id.String(), "brand-new")

	require.NoError(t, err)
	assert.Equal(t, []string{"ResetPassword"}, h.activity.actions)
}
