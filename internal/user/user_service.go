package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-hrm/internal/auth"
	"go-hrm/internal/shared/contextutil"
	usererrors "go-hrm/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const activityEntity = "User"

// ActivityLogger records an audit trail entry attributed to the ctx actor.
type ActivityLogger interface {
	Log(ctx context.Context, action, entityName, entityID, details string) error
}

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, filter ListUsersFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	AssignRole(ctx context.Context, id, role string) (UserResponse, error)
	ToggleStatus(ctx context.Context, id string, isActive bool) (UserResponse, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, id, newPassword string) error
}

type service struct {
	repo     Repository
	activity ActivityLogger
	logger   *zap.Logger
}

func NewService(repo Repository, activity ActivityLogger, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, activity: activity, logger: l}
}

func (s *service) GetAll(ctx context.Context, filter ListUsersFilter) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list users failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = mapToResponse(&users[i])
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(u), nil
}

func (s *service) AssignRole(ctx context.Context, id, role string) (UserResponse, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if !auth.IsValidRole(role) {
		return UserResponse{}, usererrors.ErrInvalidRole
	}

	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if u.ID.String() == contextutil.GetUserID(ctx) {
		return UserResponse{}, usererrors.ErrCannotModifySelf
	}

	previous := u.Role
	u.Role = role
	if err := s.repo.Update(ctx, u); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("assign role failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.recordActivity(ctx, "UpdateRole", u.ID.String(),
		fmt.Sprintf("Role of %s changed from %s to %s", u.Email, previous, role))
	return mapToResponse(u), nil
}

func (s *service) ToggleStatus(ctx context.Context, id string, isActive bool) (UserResponse, error) {
	u, err := s.find(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	if u.ID.String() == contextutil.GetUserID(ctx) {
		return UserResponse{}, usererrors.ErrCannotModifySelf
	}

	u.IsActive = isActive
	if err := s.repo.Update(ctx, u); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update user status failed", zap.Error(err))
		return UserResponse{}, err
	}

	action := "Deactivate"
	if isActive {
		action = "Activate"
	}
	s.recordActivity(ctx, action, u.ID.String(), "Account "+u.Email)
	return mapToResponse(u), nil
}

// ChangePassword updates the caller's own password. Legacy digests are
// accepted as the current password and replaced by bcrypt.
func (s *service) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	u, err := s.find(ctx, contextutil.GetUserID(ctx))
	if err != nil {
		return err
	}

	if !auth.VerifyPassword(currentPassword, u.PasswordHash, u.PasswordSalt) {
		return usererrors.ErrInvalidCurrentPassword
	}

	if err := s.setPassword(ctx, u, newPassword); err != nil {
		return err
	}

	s.recordActivity(ctx, "ChangePassword", u.ID.String(), "Password changed")
	return nil
}

func (s *service) ResetPassword(ctx context.Context, id, newPassword string) error {
	u, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.setPassword(ctx, u, newPassword); err != nil {
		return err
	}

	s.recordActivity(ctx, "ResetPassword", u.ID.String(), "Password reset for "+u.Email)
	return nil
}

func (s *service) setPassword(ctx context.Context, u *auth.User, password string) error {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	u.PasswordSalt = nil

	if err := s.repo.Update(ctx, u); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("update password failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) find(ctx context.Context, id string) (*auth.User, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, parsed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *service) recordActivity(ctx context.Context, action, entityID, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Log(ctx, action, activityEntity, entityID, details); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("user activity log failed", zap.Error(err))
	}
}

func mapToResponse(u *auth.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      strings.ToUpper(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = u.EmployeeID.String()
	}
	return resp
}
