package app

import (
	"context"
	"strings"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

type ProfileService struct {
	profiles profile.Repository
	users    user.Repository
}

func NewProfileService(profiles profile.Repository, users user.Repository) *ProfileService {
	return &ProfileService{profiles: profiles, users: users}
}

// Get returns the student's profile, or an empty default when nothing was
// saved yet. It never reports "not found".
func (s *ProfileService) Get(ctx context.Context, actorID common.UUID, actorRole user.Role, studentID common.UUID) (*profile.StudentProfile, error) {
	if err := s.authorize(actorID, actorRole, studentID); err != nil {
		return nil, err
	}
	stored, err := s.profiles.GetByStudent(ctx, studentID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return &profile.StudentProfile{StudentID: studentID, Projects: []profile.Project{}}, nil
		}
		return nil, err
	}
	if stored.Projects == nil {
		stored.Projects = []profile.Project{}
	}
	return stored, nil
}

func (s *ProfileService) SetCareerGoal(ctx context.Context, actorID common.UUID, actorRole user.Role, studentID common.UUID, goal string) error {
	if err := s.authorize(actorID, actorRole, studentID); err != nil {
		return err
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}
	return s.profiles.UpsertCareerGoal(ctx, studentID, strings.TrimSpace(goal))
}

type ProjectInput struct {
	Title       string
	Description string
	ImageURL    string
	Link        string
}

func (s *ProfileService) AddProject(ctx context.Context, actorID common.UUID, actorRole user.Role, studentID common.UUID, input ProjectInput) (*profile.Project, error) {
	if err := s.authorize(actorID, actorRole, studentID); err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, common.NewValidationError("invalid project", map[string]string{"title": "title is required"})
	}
	return s.profiles.AddProject(ctx, studentID, profile.Project{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Link:        input.Link,
	})
}

func (s *ProfileService) UpdateProject(ctx context.Context, actorID common.UUID, actorRole user.Role, studentID, projectID common.UUID, patch profile.ProjectPatch) error {
	if err := s.authorize(actorID, actorRole, studentID); err != nil {
		return err
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return common.NewValidationError("invalid project", map[string]string{"title": "title cannot be empty"})
	}
	return s.profiles.UpdateProject(ctx, studentID, projectID, patch)
}

// RemoveProject deletes the live project. Applications that snapshotted it
// keep their copy.
func (s *ProfileService) RemoveProject(ctx context.Context, actorID common.UUID, actorRole user.Role, studentID, projectID common.UUID) error {
	if err := s.authorize(actorID, actorRole, studentID); err != nil {
		return err
	}
	return s.profiles.RemoveProject(ctx, studentID, projectID)
}

func (s *ProfileService) authorize(actorID common.UUID, actorRole user.Role, studentID common.UUID) error {
	switch actorRole {
	case user.RoleAdmin:
		return nil
	case user.RoleStudent:
		if actorID != studentID {
			return common.NewError(common.CodeForbidden, "profile belongs to another student", nil)
		}
		return nil
	case user.RoleCompany:
		return common.NewError(common.CodeForbidden, "companies cannot access student profiles", nil)
	default:
		return common.NewError(common.CodeForbidden, "insufficient role", nil)
	}
}

func (s *ProfileService) requireStudent(ctx context.Context, studentID common.UUID) error {
	account, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	if account.Role != user.RoleStudent {
		return common.NewValidationError("invalid target", map[string]string{"student_id": "target user is not a student"})
	}
	return nil
}
