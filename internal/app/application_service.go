package app

import (
	"context"
	"strings"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/application"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/offer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

type ApplicationService struct {
	repo     application.Repository
	offers   offer.Repository
	users    user.Repository
	profiles profile.Repository
}

func NewApplicationService(repo application.Repository, offers offer.Repository, users user.Repository, profiles profile.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, offers: offers, users: users, profiles: profiles}
}

type ApplyInput struct {
	OfferID     common.UUID
	CVFileName  string
	CVData      []byte
	CoverLetter string
	// ProjectIDs selects which portfolio projects to bundle with the
	// application. The projects are copied, not referenced.
	ProjectIDs []common.UUID
}

func (s *ApplicationService) Apply(ctx context.Context, studentID common.UUID, input ApplyInput) (*application.Application, error) {
	fields := map[string]string{}
	if strings.TrimSpace(input.CVFileName) == "" {
		fields["cv_file_name"] = "cv file name is required"
	}
	if len(input.CVData) == 0 {
		fields["cv_data"] = "cv payload is required"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid application", fields)
	}

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	target, err := s.offers.GetByID(ctx, input.OfferID)
	if err != nil {
		return nil, err
	}
	if target.Status != offer.StatusApproved {
		return nil, common.NewError(common.CodeOfferNotOpen, "offer is not open for applications", nil)
	}
	if _, err := s.repo.FindByOfferAndStudent(ctx, input.OfferID, studentID); err == nil {
		return nil, common.NewError(common.CodeDuplicateApplication, "already applied to this offer", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	snapshot, err := s.snapshotProjects(ctx, studentID, input.ProjectIDs)
	if err != nil {
		return nil, err
	}
	// The unique constraint on (offer_id, student_id) is the authoritative
	// duplicate check; the lookup above only gives a friendlier fast path.
	return s.repo.Create(ctx, application.Application{
		OfferID:      input.OfferID,
		StudentID:    studentID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		CVFileName:   input.CVFileName,
		CVData:       input.CVData,
		CoverLetter:  input.CoverLetter,
		Status:       application.StatusPending,
		Projects:     snapshot,
	})
}

func (s *ApplicationService) snapshotProjects(ctx context.Context, studentID common.UUID, projectIDs []common.UUID) ([]profile.Project, error) {
	snapshot := []profile.Project{}
	if len(projectIDs) == 0 {
		return snapshot, nil
	}
	stored, err := s.profiles.GetByStudent(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return snapshot, nil
		}
		return nil, err
	}
	selected := make(map[common.UUID]bool, len(projectIDs))
	for _, id := range projectIDs {
		selected[id] = true
	}
	for _, project := range stored.Projects {
		if selected[project.ID] {
			snapshot = append(snapshot, project)
		}
	}
	return snapshot, nil
}

// UpdateStatus applies the review state machine: pending may move to
// reviewed, accepted, or rejected; reviewed may move to accepted or rejected;
// accepted and rejected are terminal.
func (s *ApplicationService) UpdateStatus(ctx context.Context, applicationID common.UUID, next application.Status, actorID common.UUID, actorRole user.Role) (*application.Application, error) {
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeReview(ctx, current.OfferID, actorID, actorRole); err != nil {
		return nil, err
	}
	normalized := application.Status(strings.ToLower(strings.TrimSpace(string(next))))
	if !isKnownStatus(normalized) {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be pending, reviewed, accepted, or rejected"})
	}
	if normalized == current.Status {
		return current, nil
	}
	if isFinalStatus(current.Status) {
		return nil, common.NewError(common.CodeValidation, "application status is final", nil)
	}
	if !isAllowedTransition(current.Status, normalized) {
		return nil, common.NewError(common.CodeValidation, "invalid status transition", nil)
	}
	return s.repo.UpdateStatus(ctx, applicationID, normalized)
}

func (s *ApplicationService) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *ApplicationService) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	return s.repo.ListByCompany(ctx, companyID)
}

func (s *ApplicationService) ListAll(ctx context.Context) ([]application.Application, error) {
	return s.repo.ListAll(ctx)
}

func (s *ApplicationService) ListByOffer(ctx context.Context, offerID, actorID common.UUID, actorRole user.Role) ([]application.Application, error) {
	if err := s.authorizeReview(ctx, offerID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.repo.ListByOffer(ctx, offerID)
}

// GetCV returns the stored CV payload for the owning student, the company
// owning the target offer, or an admin.
func (s *ApplicationService) GetCV(ctx context.Context, applicationID, actorID common.UUID, actorRole user.Role) (*application.Application, error) {
	current, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	switch actorRole {
	case user.RoleAdmin:
		return current, nil
	case user.RoleStudent:
		if current.StudentID != actorID {
			return nil, common.NewError(common.CodeForbidden, "application belongs to another student", nil)
		}
		return current, nil
	case user.RoleCompany:
		if err := s.authorizeReview(ctx, current.OfferID, actorID, actorRole); err != nil {
			return nil, err
		}
		return current, nil
	default:
		return nil, common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
}

func (s *ApplicationService) authorizeReview(ctx context.Context, offerID, actorID common.UUID, actorRole user.Role) error {
	switch actorRole {
	case user.RoleAdmin:
		return nil
	case user.RoleCompany:
		target, err := s.offers.GetByID(ctx, offerID)
		if err != nil {
			return err
		}
		if target.CompanyID != actorID {
			return common.NewError(common.CodeForbidden, "offer belongs to another company", nil)
		}
		return nil
	default:
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
}

func isAllowedTransition(from, to application.Status) bool {
	switch from {
	case application.StatusPending:
		return to == application.StatusReviewed || to == application.StatusAccepted || to == application.StatusRejected
	case application.StatusReviewed:
		return to == application.StatusAccepted || to == application.StatusRejected
	default:
		return false
	}
}

func isFinalStatus(status application.Status) bool {
	return status == application.StatusAccepted || status == application.StatusRejected
}

func isKnownStatus(status application.Status) bool {
	switch status {
	case application.StatusPending, application.StatusReviewed, application.StatusAccepted, application.StatusRejected:
		return true
	default:
		return false
	}
}
