package application

import (
	"context"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	FindByOfferAndStudent(ctx context.Context, offerID, studentID common.UUID) (*Application, error)
	UpdateStatus(ctx context.Context, id common.UUID, status Status) (*Application, error)
	ListByOffer(ctx context.Context, offerID common.UUID) ([]Application, error)
	ListByStudent(ctx context.Context, studentID common.UUID) ([]Application, error)
	ListByCompany(ctx context.Context, companyID common.UUID) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	Count(ctx context.Context) (int, error)
}
