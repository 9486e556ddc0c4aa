package app

import (
	"context"
	"strings"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/offer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

type OfferService struct {
	offers offer.Repository
	users  user.Repository
}

func NewOfferService(offers offer.Repository, users user.Repository) *OfferService {
	return &OfferService{offers: offers, users: users}
}

type OfferInput struct {
	Title        string
	Type         string
	Description  string
	Requirements string
	Location     string
	Duration     string
}

// Create submits a new posting for moderation. Every offer starts pending and
// carries a snapshot of the company's display name taken now.
func (s *OfferService) Create(ctx context.Context, companyID common.UUID, input OfferInput) (*offer.Offer, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	offerType, err := normalizeOfferType(input.Type)
	if err != nil {
		fields["type"] = "type must be job, pfe, or stage"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(input.Requirements) == "" {
		fields["requirements"] = "requirements are required"
	}
	if strings.TrimSpace(input.Location) == "" {
		fields["location"] = "location is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid offer", fields)
	}
	company, err := s.users.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.Role != user.RoleCompany {
		return nil, common.NewError(common.CodeForbidden, "only companies can create offers", nil)
	}
	return s.offers.Create(ctx, offer.Offer{
		CompanyID:    companyID,
		CompanyName:  company.Name,
		Title:        strings.TrimSpace(input.Title),
		Type:         offerType,
		Description:  input.Description,
		Requirements: input.Requirements,
		Location:     input.Location,
		Duration:     input.Duration,
		Status:       offer.StatusPending,
	})
}

// Approve moves a pending offer to approved. The transition is one way:
// approving an already moderated offer is rejected.
func (s *OfferService) Approve(ctx context.Context, offerID common.UUID) (*offer.Offer, error) {
	current, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if current.Status != offer.StatusPending {
		return nil, common.NewError(common.CodeValidation, "offer is not pending", nil)
	}
	if err := s.offers.UpdateStatus(ctx, offerID, offer.StatusApproved, ""); err != nil {
		return nil, err
	}
	current.Status = offer.StatusApproved
	return current, nil
}

// Reject moves a pending offer to rejected. The reason is mandatory and is
// stored verbatim for the owning company.
func (s *OfferService) Reject(ctx context.Context, offerID common.UUID, reason string) (*offer.Offer, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, common.NewValidationError("invalid rejection", map[string]string{"reason": "rejection reason is required"})
	}
	current, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if current.Status != offer.StatusPending {
		return nil, common.NewError(common.CodeValidation, "offer is not pending", nil)
	}
	if err := s.offers.UpdateStatus(ctx, offerID, offer.StatusRejected, reason); err != nil {
		return nil, err
	}
	current.Status = offer.StatusRejected
	current.RejectionReason = reason
	return current, nil
}

func (s *OfferService) ListApproved(ctx context.Context) ([]offer.Offer, error) {
	return s.offers.ListByStatus(ctx, offer.StatusApproved)
}

func (s *OfferService) ListPending(ctx context.Context) ([]offer.Offer, error) {
	return s.offers.ListByStatus(ctx, offer.StatusPending)
}

func (s *OfferService) ListByCompany(ctx context.Context, companyID common.UUID) ([]offer.Offer, error) {
	return s.offers.ListByCompany(ctx, companyID)
}

// GetApproved serves the shared listing detail view: anything not approved is
// reported as not found so moderation state never leaks.
func (s *OfferService) GetApproved(ctx context.Context, offerID common.UUID) (*offer.Offer, error) {
	item, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if item.Status != offer.StatusApproved {
		return nil, common.NewError(common.CodeNotFound, "offer not found", nil)
	}
	return item, nil
}

// GetAny is the moderation view: no status filtering, admin routes only.
func (s *OfferService) GetAny(ctx context.Context, offerID common.UUID) (*offer.Offer, error) {
	return s.offers.GetByID(ctx, offerID)
}

func (s *OfferService) GetForCompany(ctx context.Context, companyID, offerID common.UUID) (*offer.Offer, error) {
	item, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if item.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "offer belongs to another company", nil)
	}
	return item, nil
}

func normalizeOfferType(value string) (offer.Type, error) {
	normalized := offer.Type(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case offer.TypeJob, offer.TypePFE, offer.TypeStage:
		return normalized, nil
	default:
		return "", common.NewValidationError("invalid offer type", map[string]string{"type": "type must be job, pfe, or stage"})
	}
}
