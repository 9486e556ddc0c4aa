package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *sql.DB
}

func NewStudentProfileRepository(db *sql.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) GetByStudent(ctx context.Context, studentID common.UUID) (*profile.StudentProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT career_goal FROM student_profiles WHERE student_id = $1`, studentID)
	stored := profile.StudentProfile{StudentID: studentID}
	hasRow := true
	if err := row.Scan(&stored.CareerGoal); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeUnavailable, "failed to load profile", err)
		}
		hasRow = false
	}
	projects, err := r.listProjects(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !hasRow && len(projects) == 0 {
		return nil, common.NewError(common.CodeNotFound, "profile not found", sql.ErrNoRows)
	}
	stored.Projects = projects
	return &stored, nil
}

func (r *StudentProfileRepository) UpsertCareerGoal(ctx context.Context, studentID common.UUID, goal string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO student_profiles (student_id, career_goal, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (student_id) DO UPDATE SET career_goal = EXCLUDED.career_goal, updated_at = EXCLUDED.updated_at`,
		studentID, goal, time.Now().UTC())
	if err != nil {
		return common.NewError(common.CodeUnavailable, "failed to save career goal", err)
	}
	return nil
}

func (r *StudentProfileRepository) AddProject(ctx context.Context, studentID common.UUID, project profile.Project) (*profile.Project, error) {
	project.ID = common.NewUUID()
	project.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO projects (id, student_id, title, description, image_url, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		project.ID, studentID, project.Title, project.Description, project.ImageURL, project.Link, project.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to create project", err)
	}
	return &project, nil
}

func (r *StudentProfileRepository) UpdateProject(ctx context.Context, studentID, projectID common.UUID, patch profile.ProjectPatch) error {
	current, err := r.getProject(ctx, studentID, projectID)
	if err != nil {
		return err
	}
	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		current.ImageURL = *patch.ImageURL
	}
	if patch.Link != nil {
		current.Link = *patch.Link
	}
	_, err = r.db.ExecContext(ctx, `UPDATE projects SET title = $1, description = $2, image_url = $3, link = $4
		WHERE id = $5 AND student_id = $6`,
		current.Title, current.Description, current.ImageURL, current.Link, projectID, studentID)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "failed to update project", err)
	}
	return nil
}

func (r *StudentProfileRepository) RemoveProject(ctx context.Context, studentID, projectID common.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1 AND student_id = $2`, projectID, studentID)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "failed to delete project", err)
	}
	return nil
}

func (r *StudentProfileRepository) listProjects(ctx context.Context, studentID common.UUID) ([]profile.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description, image_url, link, created_at
		FROM projects WHERE student_id = $1 ORDER BY created_at`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list projects", err)
	}
	defer rows.Close()
	var items []profile.Project
	for rows.Next() {
		var project profile.Project
		if err := rows.Scan(&project.ID, &project.Title, &project.Description, &project.ImageURL, &project.Link, &project.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeUnavailable, "failed to scan project", err)
		}
		items = append(items, project)
	}
	return items, nil
}

func (r *StudentProfileRepository) getProject(ctx context.Context, studentID, projectID common.UUID) (*profile.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, description, image_url, link, created_at
		FROM projects WHERE id = $1 AND student_id = $2`, projectID, studentID)
	var project profile.Project
	if err := row.Scan(&project.ID, &project.Title, &project.Description, &project.ImageURL, &project.Link, &project.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "project not found", err)
		}
		return nil, common.NewError(common.CodeUnavailable, "failed to load project", err)
	}
	return &project, nil
}
