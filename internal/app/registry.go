package app

import (
	"context"

	"go-hrm/internal/activitylog"
	"go-hrm/internal/attendance"
	"go-hrm/internal/auth"
	"go-hrm/internal/backup"
	"go-hrm/internal/config"
	"go-hrm/internal/department"
	"go-hrm/internal/employee"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/payroll"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/statistics"
	"go-hrm/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Modules is the wired service graph shared by the HTTP API and hrmctl.
type Modules struct {
	cfg *config.Config
	rdb *redis.Client

	RBAC        rbac.Service
	Auth        auth.Service
	ActivityLog activitylog.Service
	Department  department.Service
	Employee    employee.Service
	Payroll     payroll.Service
	Backup      backup.Service
	User        user.Service
	Attendance  attendance.Service
	Statistics  statistics.Service

	logger *zap.Logger
}

func NewModules(cfg *config.Config, inf *Infrastructure, logger *zap.Logger) (*Modules, error) {
	db, gormDB, rdb := inf.DB, inf.GormDB, inf.Redis

	// --- Repositories ---
	activityRepo := activitylog.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	statisticsRepo := statistics.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	rbacService, err := rbac.NewService(enforcer, logger)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	activityService := activitylog.NewService(activityRepo, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, logger)
	payrollService := payroll.NewServiceWithOutbox(db, payrollRepo, outboxRepo, activityService, logger)
	authService := auth.NewService(authRepo, auth.Options{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.AccessTokenTTL,
		Employees: employeeRepo,
		Activity:  activityService,
	}, logger)
	backupService := backup.NewService(db, backup.Dependencies{
		Departments: departmentRepo,
		Employees:   employeeRepo,
		Outbox:      outboxRepo,
		Activity:    activityService,
		Invalidate: []func(ctx context.Context){
			employeeService.InvalidateOptionsCache,
			departmentService.InvalidateCache,
		},
		DefaultDir: cfg.Backup.Dir,
	}, logger)
	userService := user.NewService(userRepo, activityService, logger)
	attendanceService := attendance.NewService(db, attendanceRepo, activityService, logger)
	statisticsService := statistics.NewService(statisticsRepo, logger)

	return &Modules{
		cfg:         cfg,
		rdb:         rdb,
		RBAC:        rbacService,
		Auth:        authService,
		ActivityLog: activityService,
		Department:  departmentService,
		Employee:    employeeService,
		Payroll:     payrollService,
		Backup:      backupService,
		User:        userService,
		Attendance:  attendanceService,
		Statistics:  statisticsService,
		logger:      logger,
	}, nil
}

func (m *Modules) RegisterRoutes(router *gin.Engine) {
	authMW := middleware.AuthMiddleware(m.cfg.Auth.JWTSecret)
	optionalAuth := middleware.OptionalAuth(m.cfg.Auth.JWTSecret)

	// --- Handlers ---
	activityHandler := activitylog.NewHandler(m.ActivityLog)
	authHandler := auth.NewHandler(m.Auth, m.logger)
	backupHandler := backup.NewHandler(m.Backup, m.logger)
	departmentHandler := department.NewHandler(m.Department, m.logger)
	employeeHandler := employee.NewHandler(m.Employee, m.logger)
	payrollHandler := payroll.NewHandler(m.Payroll, m.logger)
	rbacHandler := rbac.NewHandler(m.RBAC, m.logger)
	userHandler := user.NewHandler(m.User, m.logger)
	attendanceHandler := attendance.NewHandler(m.Attendance, m.logger)
	statisticsHandler := statistics.NewHandler(m.Statistics, m.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMW, optionalAuth)
		activitylog.RegisterRoutes(api, activityHandler, authMW, m.RBAC)
		backup.RegisterRoutes(api, backupHandler, authMW, m.RBAC)
		department.RegisterRoutes(api, departmentHandler, authMW, m.RBAC)
		employee.RegisterRoutes(api, employeeHandler, authMW, m.RBAC)
		payroll.RegisterRoutes(api, payrollHandler, authMW, m.RBAC, m.rdb)
		rbac.RegisterRoutes(api, rbacHandler, authMW)
		user.RegisterRoutes(api, userHandler, authMW, m.RBAC)
		attendance.RegisterRoutes(api, attendanceHandler, authMW, m.RBAC)
		statistics.RegisterRoutes(api, statisticsHandler, authMW, m.RBAC)
	}
}
