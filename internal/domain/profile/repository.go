package profile

import (
	"context"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type Repository interface {
	GetByStudent(ctx context.Context, studentID common.UUID) (*StudentProfile, error)
	UpsertCareerGoal(ctx context.Context, studentID common.UUID, goal string) error
	AddProject(ctx context.Context, studentID common.UUID, project Project) (*Project, error)
	UpdateProject(ctx context.Context, studentID, projectID common.UUID, patch ProjectPatch) error
	RemoveProject(ctx context.Context, studentID, projectID common.UUID) error
}
