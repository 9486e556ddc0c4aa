package offer

import (
	"context"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type Repository interface {
	Create(ctx context.Context, posting Offer) (*Offer, error)
	GetByID(ctx context.Context, id common.UUID) (*Offer, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status, rejectionReason string) error
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Offer, error)
	ListByStatus(ctx context.Context, status Status) ([]Offer, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}
