package user

import (
	"context"
	"strings"

	"go-hrm/internal/auth"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context, filter ListUsersFilter) ([]auth.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error)
	Update(ctx context.Context, u *auth.User) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAll(ctx context.Context, filter ListUsersFilter) ([]auth.User, error) {
	var users []auth.User
	q := r.db.WithContext(ctx).Model(&auth.User{})

	if kw := strings.TrimSpace(filter.Q); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	if role := strings.ToUpper(strings.TrimSpace(filter.Role)); role != "" {
		q = q.Where("UPPER(role) = ?", role)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	err := q.Order("email ASC").Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	var u auth.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Update writes every column, including is_active=false and a cleared salt.
func (r *repository) Update(ctx context.Context, u *auth.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}
