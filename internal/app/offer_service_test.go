package app

import (
	"context"
	"errors"
	"testing"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/offer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

func seedAccount(t *testing.T, repo *fakeUserRepo, username string, role user.Role, name string) *user.User {
	t.Helper()
	account, err := repo.Create(context.Background(), user.User{
		Username:     username,
		PasswordHash: "hash",
		Role:         role,
		Name:         name,
		Email:        username + "@example.tn",
	})
	if err != nil {
		t.Fatalf("expected account created, got %v", err)
	}
	return account
}

func validOfferInput() OfferInput {
	return OfferInput{
		Title:        "Backend Intern",
		Type:         "stage",
		Description:  "Build APIs",
		Requirements: "Go, SQL",
		Location:     "Tunis",
		Duration:     "6 months",
	}
}

func TestOfferServiceCreate_StartsPendingWithCompanySnapshot(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	company := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")

	created, err := service.Create(context.Background(), company.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Status != offer.StatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.CompanyName != "ACME Corp" {
		t.Fatalf("expected company name snapshot, got %q", created.CompanyName)
	}
	if created.Type != offer.TypeStage {
		t.Fatalf("expected stage type, got %s", created.Type)
	}
}

func TestOfferServiceCreate_RejectsMissingFields(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	company := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")

	input := validOfferInput()
	input.Title = "  "
	input.Type = "freelance"
	_, err := service.Create(context.Background(), company.ID, input)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *common.Error, got %T", err)
	}
	if appErr.Fields["title"] == "" || appErr.Fields["type"] == "" {
		t.Fatalf("expected title and type field errors, got %v", appErr.Fields)
	}
}

func TestOfferServiceCreate_RejectsNonCompany(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	student := seedAccount(t, userRepo, "sami", user.RoleStudent, "Sami")

	_, err := service.Create(context.Background(), student.ID, validOfferInput())
	if !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

func TestOfferServiceApprove(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	company := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")

	created, err := service.Create(context.Background(), company.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected offer created, got %v", err)
	}
	approved, err := service.Approve(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if approved.Status != offer.StatusApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}

	// Moderation is one way: a second approve must fail.
	if _, err := service.Approve(context.Background(), created.ID); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for re-approve, got %v", err)
	}
}

func TestOfferServiceReject_RequiresReason(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	company := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")

	created, err := service.Create(context.Background(), company.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected offer created, got %v", err)
	}
	if _, err := service.Reject(context.Background(), created.ID, "   "); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for empty reason, got %v", err)
	}

	rejected, err := service.Reject(context.Background(), created.ID, "description too vague")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if rejected.Status != offer.StatusRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}
	if rejected.RejectionReason != "description too vague" {
		t.Fatalf("expected reason stored verbatim, got %q", rejected.RejectionReason)
	}
}

func TestOfferServiceGetApproved_HidesUnapproved(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	company := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")

	created, err := service.Create(context.Background(), company.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected offer created, got %v", err)
	}
	if _, err := service.GetApproved(context.Background(), created.ID); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found for pending offer, got %v", err)
	}
	if _, err := service.Approve(context.Background(), created.ID); err != nil {
		t.Fatalf("expected offer approved, got %v", err)
	}
	if _, err := service.GetApproved(context.Background(), created.ID); err != nil {
		t.Fatalf("expected approved offer visible, got %v", err)
	}
}

func TestOfferServiceGetForCompany_EnforcesOwnership(t *testing.T) {
	offerRepo := newFakeOfferRepo()
	userRepo := newFakeUserRepo()
	service := NewOfferService(offerRepo, userRepo)
	owner := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")
	rival := seedAccount(t, userRepo, "globex", user.RoleCompany, "Globex")

	created, err := service.Create(context.Background(), owner.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected offer created, got %v", err)
	}
	if _, err := service.GetForCompany(context.Background(), rival.ID, created.ID); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for other company, got %v", err)
	}
	if _, err := service.GetForCompany(context.Background(), owner.ID, created.ID); err != nil {
		t.Fatalf("expected owner access, got %v", err)
	}
}
