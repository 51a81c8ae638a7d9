package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// StartupStatus represents the operating status of a company
type StartupStatus string

const (
	StartupStatusActive   StartupStatus = "active"
	StartupStatusAcquired StartupStatus = "acquired"
	StartupStatusClosed   StartupStatus = "closed"
)

// StartupStatuses lists every accepted operating status
var StartupStatuses = []StartupStatus{StartupStatusActive, StartupStatusAcquired, StartupStatusClosed}

// EmployeeRanges is the closed set of employee-count brackets
var EmployeeRanges = []string{"1-10", "11-50", "51-200", "201-500", "500+"}

// Sectors is the closed vocabulary for startup tags
var Sectors = []string{
	"Agritech",
	"Biotech",
	"Cleantech",
	"E-commerce",
	"Edtech",
	"Fintech",
	"Foodtech",
	"Healthtech",
	"Legaltech",
	"Proptech",
	"SaaS",
	"Social Impact",
	"Tourism",
	"Other",
}

// SocialNetworks are the keys accepted in SocialLinks
var SocialNetworks = []string{"linkedin", "twitter", "facebook", "instagram"}

// SocialLinks maps a social network to a profile URL
type SocialLinks map[string]string

// StartupProfile holds the descriptive fields shared by submissions and published startups
type StartupProfile struct {
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	ShortDescription string        `json:"short_description"`
	LongDescription  string        `json:"long_description"`
	LogoURL          null.String   `json:"logo_url"`
	FoundingYear     int           `json:"founding_year"`
	OperatingStatus  StartupStatus `json:"operating_status"`
	Location         string        `json:"location"`
	Tags             []string      `json:"tags"`
	EmployeeRange    null.String   `json:"employee_range"`
	Website          null.String   `json:"website"`
	Email            null.String   `json:"email,omitzero"`
	Phone            null.String   `json:"phone,omitzero"`
	SocialLinks      SocialLinks   `json:"social_links"`
	FundingReceived  null.String   `json:"funding_received"`
	PitchDeckURL     null.String   `json:"pitch_deck_url,omitzero"`
}

// Startup is a published directory entry
type Startup struct {
	ID uuid.UUID `json:"id"`
	StartupProfile
	IsApproved bool       `json:"is_approved"`
	CreatedBy  *uuid.UUID `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// StartupSummary is the listing projection of a startup; it never carries premium fields
type StartupSummary struct {
	ID               uuid.UUID     `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	ShortDescription string        `json:"short_description"`
	LogoURL          null.String   `json:"logo_url"`
	FoundingYear     int           `json:"founding_year"`
	OperatingStatus  StartupStatus `json:"operating_status"`
	Location         string        `json:"location"`
	Tags             []string      `json:"tags"`
	EmployeeRange    null.String   `json:"employee_range"`
	Website          null.String   `json:"website"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Summary projects the startup onto its listing fields
func (s *Startup) Summary() StartupSummary {
	return StartupSummary{
		ID:               s.ID,
		Name:             s.Name,
		Slug:             s.Slug,
		ShortDescription: s.ShortDescription,
		LogoURL:          s.LogoURL,
		FoundingYear:     s.FoundingYear,
		OperatingStatus:  s.OperatingStatus,
		Location:         s.Location,
		Tags:             s.Tags,
		EmployeeRange:    s.EmployeeRange,
		Website:          s.Website,
		CreatedAt:        s.CreatedAt,
	}
}

// StartupRef names a startup in conflict payloads
type StartupRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Ref returns the identifying triple of the startup
func (s *Startup) Ref() StartupRef {
	return StartupRef{ID: s.ID, Name: s.Name, Slug: s.Slug}
}

// DirectoryStats summarizes the approved directory
type DirectoryStats struct {
	TotalStartups   int64 `json:"total_startups"`
	TotalLocations  int   `json:"total_locations"`
	TotalIndustries int   `json:"total_industries"`
}

// YearRange is an inclusive founding-year span
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FilterOptions lists the values the listing filters can take
type FilterOptions struct {
	Locations []string  `json:"locations"`
	Tags      []string  `json:"tags"`
	Years     YearRange `json:"years"`
}

// AdminStats is the moderation dashboard summary
type AdminStats struct {
	PendingSubmissions int64 `json:"pending_submissions"`
	ApprovedStartups   int64 `json:"approved_startups"`
	PendingClaims      int64 `json:"pending_claims"`
}

// StartupUpdateInput is the allow-list of fields an owner may change; nil means unchanged
type StartupUpdateInput struct {
	Name             *string      `json:"name"`
	ShortDescription *string      `json:"short_description"`
	LongDescription  *string      `json:"long_description"`
	LogoURL          *string      `json:"logo_url"`
	FoundingYear     *int         `json:"founding_year"`
	OperatingStatus  *string      `json:"operating_status"`
	Location         *string      `json:"location"`
	Tags             *[]string    `json:"tags"`
	EmployeeRange    *string      `json:"employee_range"`
	Website          *string      `json:"website"`
	Email            *string      `json:"email"`
	Phone            *string      `json:"phone"`
	SocialLinks      *SocialLinks `json:"social_links"`
	FundingReceived  *string      `json:"funding_received"`
	PitchDeckURL     *string      `json:"pitch_deck_url"`
}
