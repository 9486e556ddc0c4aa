package app

import (
	"context"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/application"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/offer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

// StatsService backs the admin dashboard counters.
type StatsService struct {
	users        user.Repository
	offers       offer.Repository
	applications application.Repository
}

func NewStatsService(users user.Repository, offers offer.Repository, applications application.Repository) *StatsService {
	return &StatsService{users: users, offers: offers, applications: applications}
}

type Overview struct {
	Students          int `json:"students"`
	Companies         int `json:"companies"`
	Admins            int `json:"admins"`
	PendingOffers     int `json:"pending_offers"`
	ApprovedOffers    int `json:"approved_offers"`
	RejectedOffers    int `json:"rejected_offers"`
	TotalApplications int `json:"total_applications"`
}

func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	usersByRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	offersByStatus, err := s.offers.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	applications, err := s.applications.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Overview{
		Students:          usersByRole[user.RoleStudent],
		Companies:         usersByRole[user.RoleCompany],
		Admins:            usersByRole[user.RoleAdmin],
		PendingOffers:     offersByStatus[offer.StatusPending],
		ApprovedOffers:    offersByStatus[offer.StatusApproved],
		RejectedOffers:    offersByStatus[offer.StatusRejected],
		TotalApplications: applications,
	}, nil
}
