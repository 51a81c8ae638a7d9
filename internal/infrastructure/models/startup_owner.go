package models

import (
	"time"

	"github.com/google/uuid"
)

// StartupOwner is an ownership claim row
type StartupOwner struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	StartupID uuid.UUID `gorm:"type:uuid;not null;index"`
	Approved  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (StartupOwner) TableName() string {
	return "startup_owners"
}
