package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/shared/contextutil"
	"go-hrm/internal/shared/database"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultTokenTTL = 8 * time.Hour

// ActivityLogger records an audit trail entry attributed to the ctx actor.
type ActivityLogger interface {
	Log(ctx context.Context, action, entityName, entityID, details string) error
}

// EmployeeChecker confirms a linked employee record exists.
type EmployeeChecker interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	Me(ctx context.Context) (AuthResponse, error)
}

type Options struct {
	JWTSecret string
	TokenTTL  time.Duration
	Employees EmployeeChecker
	Activity  ActivityLogger
}

type service struct {
	repo      Repository
	secret    []byte
	ttl       time.Duration
	employees EmployeeChecker
	activity  ActivityLogger
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &service{
		repo:      repo,
		secret:    []byte(opts.JWTSecret),
		ttl:       ttl,
		employees: opts.Employees,
		activity:  opts.Activity,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("login lookup failed", zap.Error(err))
			return LoginResponse{}, err
		}
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive || !VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		log.Info("login rejected", zap.String("user_id", user.ID.String()))
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		log.Error("login token generation failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	actorCtx := contextutil.WithActor(ctx, actorFor(user))
	s.recordActivity(actorCtx, "Login", user.ID.String(), "User signed in: "+user.Email)

	return LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		User:        mapToResponse(user),
	}, nil
}

// Register creates an account with a bcrypt hash. Only an ADMIN actor may
// assign a role other than EMPLOYEE.
func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = RoleEmployee
	}
	if !IsValidRole(role) {
		return AuthResponse{}, autherrors.ErrInvalidRole
	}
	if role != RoleEmployee && contextutil.GetActor(ctx).Role != RoleAdmin {
		return AuthResponse{}, autherrors.ErrForbidden
	}

	user := &User{
		ID:       uuid.New(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Name:     strings.TrimSpace(req.Name),
		Role:     role,
		IsActive: true,
	}

	if req.EmployeeID != "" {
		eID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			return AuthResponse{}, autherrors.ErrInvalidEmployeeID
		}
		if s.employees != nil {
			exists, err := s.employees.ExistsByID(ctx, eID.String())
			if err != nil {
				return AuthResponse{}, err
			}
			if !exists {
				return AuthResponse{}, autherrors.ErrEmployeeNotFound
			}
		}
		user.EmployeeID = &eID
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return AuthResponse{}, err
	}
	user.PasswordHash = hashed
	user.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err, "uq_user_email") {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		contextutil.GetLogger(ctx, s.logger).Error("register persist failed", zap.Error(err))
		return AuthResponse{}, err
	}

	s.recordActivity(ctx, "Register", user.ID.String(), "Account created: "+user.Email)
	return mapToResponse(user), nil
}

func (s *service) Me(ctx context.Context) (AuthResponse, error) {
	id, err := uuid.Parse(contextutil.GetUserID(ctx))
	if err != nil {
		return AuthResponse{}, autherrors.ErrInvalidToken
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
		return AuthResponse{}, err
	}

	return mapToResponse(user), nil
}

func (s *service) generateToken(user *User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}
	if user.EmployeeID != nil {
		claims["employee_id"] = user.EmployeeID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *service) recordActivity(ctx context.Context, action, entityID, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Log(ctx, action, "User", entityID, details); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("auth activity log failed", zap.Error(err))
	}
}

func actorFor(user *User) contextutil.Actor {
	a := contextutil.Actor{
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}
	if user.EmployeeID != nil {
		a.EmployeeID = user.EmployeeID.String()
	}
	return a
}

func mapToResponse(user *User) AuthResponse {
	resp := AuthResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}
	if user.EmployeeID != nil {
		resp.EmployeeID = user.EmployeeID.String()
	}
	return resp
}
