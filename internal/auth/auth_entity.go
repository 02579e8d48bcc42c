package auth

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "ADMIN"
	RoleHR       = "HR"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email        string     `gorm:"type:varchar(200);uniqueIndex:uq_user_email;not null"`
	Name         string     `gorm:"type:varchar(200)"`
	PasswordHash string     `gorm:"not null"`
	PasswordSalt *string
	Role         string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	EmployeeID   *uuid.UUID `gorm:"type:uuid"`
	IsActive     bool       `gorm:"default:true"`
	CreatedAt    time.Time
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	}
	return false
}
