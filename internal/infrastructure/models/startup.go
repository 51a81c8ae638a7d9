package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// StartupProfile holds the columns shared by startups and submissions
type StartupProfile struct {
	Name             string         `gorm:"type:varchar(100);not null"`
	Slug             string         `gorm:"type:varchar(120);not null"`
	ShortDescription string         `gorm:"type:varchar(200);not null"`
	LongDescription  string         `gorm:"type:text;not null"`
	LogoURL          *string        `gorm:"type:text"`
	FoundingYear     int            `gorm:"not null"`
	OperatingStatus  string         `gorm:"type:varchar(20);not null;default:'active'"`
	Location         string         `gorm:"type:varchar(100);not null"`
	Tags             pq.StringArray `gorm:"type:text[];not null"`
	EmployeeRange    *string        `gorm:"type:varchar(20)"`
	Website          *string        `gorm:"type:text"`
	Email            *string        `gorm:"type:varchar(255)"`
	Phone            *string        `gorm:"type:varchar(50)"`
	SocialLinks      string         `gorm:"type:jsonb;default:'{}'"`
	FundingReceived  *string        `gorm:"type:varchar(200)"`
	PitchDeckURL     *string        `gorm:"type:text"`
}

type Startup struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartupProfile `gorm:"embedded"`
	IsApproved     bool       `gorm:"not null;default:false;index"`
	CreatedBy      *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Startup) TableName() string {
	return "startups"
}
