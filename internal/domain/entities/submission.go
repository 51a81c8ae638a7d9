package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SubmissionStatus represents the moderation state of a submission
type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Valid reports whether s is a known moderation state
func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionStatusPending, SubmissionStatusApproved, SubmissionStatusRejected:
		return true
	}
	return false
}

// Submission is a request to publish a startup, awaiting moderation
type Submission struct {
	ID uuid.UUID `json:"id"`
	StartupProfile
	SubmitterEmail    string           `json:"submitter_email"`
	Status            SubmissionStatus `json:"status"`
	AdminNotes        null.String      `json:"admin_notes"`
	ReviewedBy        *uuid.UUID       `json:"reviewed_by"`
	ReviewedAt        null.Time        `json:"reviewed_at"`
	ApprovedStartupID *uuid.UUID       `json:"approved_startup_id"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// IsPending reports whether the submission can still be moderated
func (s *Submission) IsPending() bool {
	return s.Status == SubmissionStatusPending
}

// SubmissionReview records the outcome of a moderation action
type SubmissionReview struct {
	Status            SubmissionStatus
	AdminNotes        null.String
	ReviewedBy        uuid.UUID
	ReviewedAt        time.Time
	ApprovedStartupID *uuid.UUID
}

// SubmissionForm is the raw wizard payload, shared by intake, step validation and drafts
type SubmissionForm struct {
	Name             string      `json:"name"`
	ShortDescription string      `json:"short_description"`
	LongDescription  string      `json:"long_description"`
	FoundingYear     int         `json:"founding_year"`
	Location         string      `json:"location"`
	Tags             []string    `json:"tags"`
	EmployeeRange    string      `json:"employee_range"`
	OperatingStatus  string      `json:"operating_status"`
	Website          string      `json:"website"`
	Email            string      `json:"email"`
	Phone            string      `json:"phone"`
	SocialLinks      SocialLinks `json:"social_links"`
	FundingReceived  string      `json:"funding_received"`
	SubmitterEmail   string      `json:"submitter_email"`
}

// Attachment is an uploaded file accompanying a submission
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Content     []byte
}

// SubmissionFiles groups the optional uploads of a submission
type SubmissionFiles struct {
	Logo      *Attachment
	PitchDeck *Attachment
}

// ModerationInput is the body of approve and reject actions
type ModerationInput struct {
	AdminNotes string `json:"admin_notes"`
}

// ApprovalResult is returned when a submission becomes a startup
type ApprovalResult struct {
	Startup    *Startup    `json:"startup"`
	Submission *Submission `json:"submission"`
}
