package entities

import (
	"time"

	"github.com/google/uuid"
)

// Draft is an in-progress submission wizard state.
// OwnerID is set when the draft was started with a session.
type Draft struct {
	ID      string         `json:"id"`
	OwnerID uuid.NullUUID  `json:"owner_id"`
	Step    int            `json:"step"`
	Values  SubmissionForm `json:"values"`
	SavedAt time.Time      `json:"saved_at"`
}

// DraftResume is a loaded draft plus the wizard step to continue from
type DraftResume struct {
	Draft      *Draft `json:"draft"`
	ResumeStep int    `json:"resume_step"`
}
