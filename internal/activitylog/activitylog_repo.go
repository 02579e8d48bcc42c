package activitylog

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Query is a validated ListFilter.
type Query struct {
	From    *time.Time
	To      *time.Time
	UserID  string
	Keyword string
	Offset  int
	Limit   int
}

//go:generate mockgen -source=activitylog_repo.go -destination=mock/activitylog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, log *ActivityLog) error
	List(ctx context.Context, q Query) ([]ActivityLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, log *ActivityLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) List(ctx context.Context, q Query) ([]ActivityLog, int64, error) {
	db := r.db.WithContext(ctx).Model(&ActivityLog{})

	if q.From != nil {
		db = db.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		db = db.Where("created_at < ?", *q.To)
	}
	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.Keyword != "" {
		like := "%" + q.Keyword + "%"
		db = db.Where("action ILIKE ? OR entity_name ILIKE ? OR details ILIKE ?", like, like, like)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []ActivityLog
	err := db.Order("created_at DESC").
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&logs).Error
	return logs, total, err
}
