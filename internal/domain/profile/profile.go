package profile

import (
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

// Project is a portfolio artifact owned by exactly one student. Applications
// reference projects by value, so deleting a project never rewrites history.
type Project struct {
	ID          common.UUID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ImageURL    string      `json:"image_url,omitempty"`
	Link        string      `json:"link,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

type StudentProfile struct {
	StudentID  common.UUID `json:"student_id"`
	CareerGoal string      `json:"career_goal"`
	Projects   []Project   `json:"projects"`
}

// IsComplete reports whether the student supplied at least a career goal or
// one project.
func (p StudentProfile) IsComplete() bool {
	return p.CareerGoal != "" || len(p.Projects) > 0
}

type ProjectPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Link        *string `json:"link,omitempty"`
}
