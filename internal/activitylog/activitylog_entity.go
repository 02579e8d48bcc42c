package activitylog

import (
	"time"

	"github.com/google/uuid"
)

type ActivityLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     *uuid.UUID `gorm:"type:uuid"`
	Action     string     `gorm:"type:varchar(50);not null"`
	EntityName string     `gorm:"type:varchar(100)"`
	EntityID   string     `gorm:"type:varchar(100)"`
	Details    string     `gorm:"type:text"`
	CreatedAt  time.Time
}
