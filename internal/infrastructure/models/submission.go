package models

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartupProfile    `gorm:"embedded"`
	SubmitterEmail    string     `gorm:"type:varchar(255);not null"`
	Status            string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminNotes        *string    `gorm:"type:text"`
	ReviewedBy        *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt        *time.Time
	ApprovedStartupID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (Submission) TableName() string {
	return "submissions"
}
