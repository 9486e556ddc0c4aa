package app

import (
	"context"
	"testing"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/application"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

type applicationFixture struct {
	service  *ApplicationService
	offers   *OfferService
	profiles *fakeProfileRepo
	users    *fakeUserRepo
	apps     *fakeApplicationRepo
	student  *user.User
	company  *user.User
	offerID  common.UUID
}

func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	offerRepo := newFakeOfferRepo()
	profileRepo := newFakeProfileRepo()
	appRepo := newFakeApplicationRepo(offerRepo)
	offers := NewOfferService(offerRepo, userRepo)
	service := NewApplicationService(appRepo, offerRepo, userRepo, profileRepo)

	company := seedAccount(t, userRepo, "acme", user.RoleCompany, "ACME Corp")
	student := seedAccount(t, userRepo, "sami", user.RoleStudent, "Sami Ben Ali")

	created, err := offers.Create(context.Background(), company.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected offer created, got %v", err)
	}
	if _, err := offers.Approve(context.Background(), created.ID); err != nil {
		t.Fatalf("expected offer approved, got %v", err)
	}

	return &applicationFixture{
		service:  service,
		offers:   offers,
		profiles: profileRepo,
		users:    userRepo,
		apps:     appRepo,
		student:  student,
		company:  company,
		offerID:  created.ID,
	}
}

func validApplyInput(offerID common.UUID) ApplyInput {
	return ApplyInput{
		OfferID:    offerID,
		CVFileName: "cv.pdf",
		CVData:     []byte("%PDF-1.4"),
	}
}

func TestApplicationServiceApply(t *testing.T) {
	fixture := newApplicationFixture(t)

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if submitted.Status != application.StatusPending {
		t.Fatalf("expected pending status, got %s", submitted.Status)
	}
	if submitted.StudentName != "Sami Ben Ali" {
		t.Fatalf("expected student name snapshot, got %q", submitted.StudentName)
	}
	if submitted.Projects == nil {
		t.Fatal("expected empty project slice, got nil")
	}
}

func TestApplicationServiceApply_RequiresCV(t *testing.T) {
	fixture := newApplicationFixture(t)

	input := validApplyInput(fixture.offerID)
	input.CVData = nil
	input.CVFileName = ""
	_, err := fixture.service.Apply(context.Background(), fixture.student.ID, input)
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestApplicationServiceApply_RejectsUnapprovedOffer(t *testing.T) {
	fixture := newApplicationFixture(t)

	pending, err := fixture.offers.Create(context.Background(), fixture.company.ID, validOfferInput())
	if err != nil {
		t.Fatalf("expected offer created, got %v", err)
	}
	_, err = fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(pending.ID))
	if !common.Is(err, common.CodeOfferNotOpen) {
		t.Fatalf("expected offer_not_open error, got %v", err)
	}
}

func TestApplicationServiceApply_RejectsDuplicate(t *testing.T) {
	fixture := newApplicationFixture(t)

	if _, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID)); err != nil {
		t.Fatalf("expected first application accepted, got %v", err)
	}
	_, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if !common.Is(err, common.CodeDuplicateApplication) {
		t.Fatalf("expected duplicate_application error, got %v", err)
	}

	listed, err := fixture.service.ListByOffer(context.Background(), fixture.offerID, fixture.company.ID, user.RoleCompany)
	if err != nil {
		t.Fatalf("expected listing, got %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected exactly one application, got %d", len(listed))
	}
}

func TestApplicationServiceApply_SnapshotSurvivesProjectDeletion(t *testing.T) {
	fixture := newApplicationFixture(t)

	project, err := fixture.profiles.AddProject(context.Background(), fixture.student.ID, projectFixture("Portfolio site"))
	if err != nil {
		t.Fatalf("expected project added, got %v", err)
	}
	input := validApplyInput(fixture.offerID)
	input.ProjectIDs = []common.UUID{project.ID}

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, input)
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if len(submitted.Projects) != 1 || submitted.Projects[0].Title != "Portfolio site" {
		t.Fatalf("expected project snapshot, got %v", submitted.Projects)
	}

	if err := fixture.profiles.RemoveProject(context.Background(), fixture.student.ID, project.ID); err != nil {
		t.Fatalf("expected project removed, got %v", err)
	}
	stored, err := fixture.apps.GetByID(context.Background(), submitted.ID)
	if err != nil {
		t.Fatalf("expected application lookup, got %v", err)
	}
	if len(stored.Projects) != 1 || stored.Projects[0].Title != "Portfolio site" {
		t.Fatal("expected snapshot to survive project deletion")
	}
}

func TestApplicationServiceUpdateStatus_Transitions(t *testing.T) {
	fixture := newApplicationFixture(t)

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}

	reviewed, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusReviewed, fixture.company.ID, user.RoleCompany)
	if err != nil {
		t.Fatalf("expected pending to reviewed, got %v", err)
	}
	if reviewed.Status != application.StatusReviewed {
		t.Fatalf("expected reviewed status, got %s", reviewed.Status)
	}

	// Same status again is a no-op, not an error.
	again, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusReviewed, fixture.company.ID, user.RoleCompany)
	if err != nil {
		t.Fatalf("expected idempotent update, got %v", err)
	}
	if again.Status != application.StatusReviewed {
		t.Fatalf("expected reviewed status, got %s", again.Status)
	}

	accepted, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusAccepted, fixture.company.ID, user.RoleCompany)
	if err != nil {
		t.Fatalf("expected reviewed to accepted, got %v", err)
	}
	if accepted.Status != application.StatusAccepted {
		t.Fatalf("expected accepted status, got %s", accepted.Status)
	}

	if _, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusRejected, fixture.company.ID, user.RoleCompany); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected accepted to be terminal, got %v", err)
	}
}

func TestApplicationServiceUpdateStatus_RejectsBackwardsTransition(t *testing.T) {
	fixture := newApplicationFixture(t)

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if _, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusReviewed, fixture.company.ID, user.RoleCompany); err != nil {
		t.Fatalf("expected pending to reviewed, got %v", err)
	}
	if _, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusPending, fixture.company.ID, user.RoleCompany); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected backwards transition rejected, got %v", err)
	}
}

func TestApplicationServiceUpdateStatus_EnforcesOwnership(t *testing.T) {
	fixture := newApplicationFixture(t)
	rival := seedAccount(t, fixture.users, "globex", user.RoleCompany, "Globex")

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if _, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusAccepted, rival.ID, user.RoleCompany); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for other company, got %v", err)
	}
	if _, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusAccepted, common.NewUUID(), user.RoleAdmin); err != nil {
		t.Fatalf("expected admin update, got %v", err)
	}
}

func TestApplicationServiceGetCV_ScopesAccess(t *testing.T) {
	fixture := newApplicationFixture(t)
	otherStudent := seedAccount(t, fixture.users, "lina", user.RoleStudent, "Lina")

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if _, err := fixture.service.GetCV(context.Background(), submitted.ID, fixture.student.ID, user.RoleStudent); err != nil {
		t.Fatalf("expected owner access, got %v", err)
	}
	if _, err := fixture.service.GetCV(context.Background(), submitted.ID, otherStudent.ID, user.RoleStudent); !common.Is(err, common.CodeForbidden) {
		t.Fatalf("expected forbidden for other student, got %v", err)
	}
	if _, err := fixture.service.GetCV(context.Background(), submitted.ID, fixture.company.ID, user.RoleCompany); err != nil {
		t.Fatalf("expected owning company access, got %v", err)
	}
}

func TestApplicationServiceHappyPath(t *testing.T) {
	fixture := newApplicationFixture(t)

	submitted, err := fixture.service.Apply(context.Background(), fixture.student.ID, validApplyInput(fixture.offerID))
	if err != nil {
		t.Fatalf("expected application accepted, got %v", err)
	}
	if _, err := fixture.service.UpdateStatus(context.Background(), submitted.ID, application.StatusAccepted, fixture.company.ID, user.RoleCompany); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}

	mine, err := fixture.service.ListByStudent(context.Background(), fixture.student.ID)
	if err != nil {
		t.Fatalf("expected student listing, got %v", err)
	}
	if len(mine) != 1 || mine[0].Status != application.StatusAccepted {
		t.Fatalf("expected one accepted application, got %v", mine)
	}
}
