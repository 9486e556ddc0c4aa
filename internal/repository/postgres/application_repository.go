package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/application"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/profile"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, offer_id, student_id, student_name, student_email, cv_file_name, cv_data, cover_letter, status, projects, applied_at`

func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	app.AppliedAt = time.Now().UTC()
	if app.Projects == nil {
		app.Projects = []profile.Project{}
	}
	snapshot, err := json.Marshal(app.Projects)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to encode project snapshot", err)
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		app.ID, app.OfferID, app.StudentID, app.StudentName, app.StudentEmail, app.CVFileName, app.CVData,
		app.CoverLetter, app.Status, snapshot, app.AppliedAt)
	if err != nil {
		if isUniqueViolation(err, "applications_offer_id_student_id_key") {
			return nil, common.NewError(common.CodeDuplicateApplication, "already applied to this offer", err)
		}
		return nil, common.NewError(common.CodeUnavailable, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) FindByOfferAndStudent(ctx context.Context, offerID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE offer_id = $1 AND student_id = $2`, offerID, studentID)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) ListByOffer(ctx context.Context, offerID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE offer_id = $1 ORDER BY applied_at DESC`, offerID)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC`, studentID)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list student applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.offer_id, a.student_id, a.student_name, a.student_email, a.cv_file_name, a.cv_data, a.cover_letter, a.status, a.projects, a.applied_at
		FROM applications a
		JOIN offers o ON o.id = a.offer_id
		WHERE o.company_id = $1
		ORDER BY a.applied_at DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list company applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications ORDER BY applied_at DESC`)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list applications", err)
	}
	return collectApplications(rows)
}

func (r *ApplicationRepository) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, common.NewError(common.CodeUnavailable, "failed to count applications", err)
	}
	return count, nil
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, common.NewError(common.CodeUnavailable, "failed to scan application", err)
		}
		items = append(items, *app)
	}
	return items, nil
}

func scanApplicationRow(row *sql.Row) (*application.Application, error) {
	app, err := scanApplication(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeUnavailable, "failed to load application", err)
	}
	return app, nil
}

func scanApplication(scan func(dest ...any) error) (*application.Application, error) {
	var app application.Application
	var snapshot []byte
	if err := scan(&app.ID, &app.OfferID, &app.StudentID, &app.StudentName, &app.StudentEmail, &app.CVFileName,
		&app.CVData, &app.CoverLetter, &app.Status, &snapshot, &app.AppliedAt); err != nil {
		return nil, err
	}
	app.Projects = []profile.Project{}
	if len(snapshot) > 0 {
		if err := json.Unmarshal(snapshot, &app.Projects); err != nil {
			return nil, err
		}
	}
	return &app, nil
}
