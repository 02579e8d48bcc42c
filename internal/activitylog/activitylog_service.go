package activitylog

import (
	"context"
	"strings"
	"time"

	"go-hrm/internal/shared/apperror"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

//go:generate mockgen -source=activitylog_service.go -destination=mock/activitylog_service_mock.go -package=mock
type Service interface {
	Log(ctx context.Context, action, entityName, entityID, details string) error
	List(ctx context.Context, filter ListFilter) ([]ActivityLogResponse, int64, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("activitylog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("activitylog.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// Log stores an entry attributed to the actor in ctx. Entries written
// without an authenticated actor carry no user id.
func (s *service) Log(ctx context.Context, action, entityName, entityID, details string) error {
	entry := &ActivityLog{
		ID:         uuid.New(),
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  s.now().UTC(),
	}
	if uid, err := uuid.Parse(contextutil.GetUserID(ctx)); err == nil {
		entry.UserID = &uid
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Error("write activity log failed",
			zap.String("action", action),
			zap.String("entity", entityName),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]ActivityLogResponse, int64, error) {
	q, err := toQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	logs, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ActivityLogResponse, len(logs))
	for i, l := range logs {
		resp[i] = mapToResponse(l)
	}
	return resp, total, nil
}

func toQuery(f ListFilter) (Query, error) {
	q := Query{
		UserID:  strings.TrimSpace(f.UserID),
		Keyword: strings.TrimSpace(f.Keyword),
	}

	if q.UserID != "" {
		if _, err := uuid.Parse(q.UserID); err != nil {
			return q, apperror.InvalidField("user_id")
		}
	}
	if f.From != "" {
		from, err := time.Parse(time.DateOnly, f.From)
		if err != nil {
			return q, apperror.InvalidField("from")
		}
		q.From = &from
	}
	if f.To != "" {
		to, err := time.Parse(time.DateOnly, f.To)
		if err != nil {
			return q, apperror.InvalidField("to")
		}
		// inclusive of the whole "to" day
		to = to.AddDate(0, 0, 1)
		q.To = &to
	}

	page := max(f.Page, 1)
	size := f.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	size = min(size, maxPageSize)

	q.Offset = (page - 1) * size
	q.Limit = size
	return q, nil
}

func mapToResponse(l ActivityLog) ActivityLogResponse {
	resp := ActivityLogResponse{
		ID:         l.ID.String(),
		Action:     l.Action,
		EntityName: l.EntityName,
		EntityID:   l.EntityID,
		Details:    l.Details,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.UserID != nil {
		resp.UserID = l.UserID.String()
	}
	return resp
}
