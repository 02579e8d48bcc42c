package rbac

import (
	"sort"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(role, resource, action string) (bool, error)
	Permissions(role string) ([]PermissionResponse, error)
	LoadPolicies(policies []Policy, inheritance map[string]string) error
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewService wraps enforcer and loads the default role policy into it.
func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.LoadPolicies(DefaultPolicies, DefaultInheritance); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadPolicies replaces the enforcer's policy.
func (s *service) LoadPolicies(policies []Policy, inheritance map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()

	for _, p := range policies {
		if _, err := s.enforcer.AddPolicy(p.Role, p.Resource, p.Action); err != nil {
			return err
		}
	}

	for role, parent := range inheritance {
		if _, err := s.enforcer.AddGroupingPolicy(role, parent); err != nil {
			return err
		}
	}

	if err := s.enforcer.BuildRoleLinks(); err != nil {
		return err
	}

	s.logger.Info("rbac policy loaded",
		zap.Int("policies", len(policies)),
		zap.Int("inheritance", len(inheritance)),
	)
	return nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", resource),
			zap.String("action", action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("role", role),
		zap.String("resource", resource),
		zap.String("action", action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Permissions lists direct and inherited grants of role, sorted.
func (s *service) Permissions(role string) ([]PermissionResponse, error) {
	s.mu.RLock()
	rows, err := s.enforcer.GetImplicitPermissionsForUser(role)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	perms := make([]PermissionResponse, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		perms = append(perms, PermissionResponse{Resource: row[1], Action: row[2]})
	}

	sort.Slice(perms, func(i, j int) bool {
		if perms[i].Resource != perms[j].Resource {
			return perms[i].Resource < perms[j].Resource
		}
		return perms[i].Action < perms[j].Action
	})
	return perms, nil
}
