package application

import (
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReviewed Status = "reviewed"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Application struct {
	ID      common.UUID `json:"id"`
	OfferID common.UUID `json:"offer_id"`
	// StudentID plus OfferID form the uniqueness invariant: a student may
	// apply to a given offer at most once.
	StudentID    common.UUID `json:"student_id"`
	StudentName  string      `json:"student_name"`
	StudentEmail string      `json:"student_email"`
	CVFileName   string      `json:"cv_file_name"`
	CVData       []byte      `json:"cv_data,omitempty"`
	CoverLetter  string      `json:"cover_letter,omitempty"`
	Status       Status      `json:"status"`
	// Projects is a value snapshot of the portfolio projects the student
	// selected at submission time. Later edits or deletions of the live
	// projects do not alter it.
	Projects  []profile.Project `json:"projects"`
	AppliedAt time.Time         `json:"applied_at"`
}
