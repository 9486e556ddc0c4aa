package offer

import (
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Type string

const (
	TypeJob   Type = "job"
	TypePFE   Type = "pfe"
	TypeStage Type = "stage"
)

type Offer struct {
	ID        common.UUID `json:"id"`
	CompanyID common.UUID `json:"company_id"`
	// CompanyName is snapshotted from the company account at creation time,
	// not live-linked.
	CompanyName     string    `json:"company_name"`
	Title           string    `json:"title"`
	Type            Type      `json:"type"`
	Description     string    `json:"description"`
	Requirements    string    `json:"requirements"`
	Location        string    `json:"location"`
	Duration        string    `json:"duration,omitempty"`
	Status          Status    `json:"status"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
