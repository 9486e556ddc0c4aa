package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/offer"
)

type OfferRepository struct {
	db *sql.DB
}

func NewOfferRepository(db *sql.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

const offerColumns = `id, company_id, company_name, title, offer_type, description, requirements, location, duration, status, rejection_reason, created_at`

func (r *OfferRepository) Create(ctx context.Context, posting offer.Offer) (*offer.Offer, error) {
	posting.ID = common.NewUUID()
	posting.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO offers (`+offerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		posting.ID, posting.CompanyID, posting.CompanyName, posting.Title, posting.Type, posting.Description,
		posting.Requirements, posting.Location, posting.Duration, posting.Status, posting.RejectionReason, posting.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to create offer", err)
	}
	return &posting, nil
}

func (r *OfferRepository) GetByID(ctx context.Context, id common.UUID) (*offer.Offer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)
	var posting offer.Offer
	if err := scanOffer(row.Scan, &posting); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "offer not found", err)
		}
		return nil, common.NewError(common.CodeUnavailable, "failed to load offer", err)
	}
	return &posting, nil
}

func (r *OfferRepository) UpdateStatus(ctx context.Context, id common.UUID, status offer.Status, rejectionReason string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE offers SET status = $1, rejection_reason = $2 WHERE id = $3`,
		status, rejectionReason, id)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "failed to update offer", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "offer not found", sql.ErrNoRows)
	}
	return nil
}

func (r *OfferRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]offer.Offer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list company offers", err)
	}
	return collectOffers(rows)
}

func (r *OfferRepository) ListByStatus(ctx context.Context, status offer.Status) ([]offer.Offer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+offerColumns+` FROM offers WHERE status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list offers", err)
	}
	return collectOffers(rows)
}

func (r *OfferRepository) CountByStatus(ctx context.Context) (map[offer.Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM offers GROUP BY status`)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to count offers", err)
	}
	defer rows.Close()
	counts := make(map[offer.Status]int)
	for rows.Next() {
		var status offer.Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, common.NewError(common.CodeUnavailable, "failed to scan offer count", err)
		}
		counts[status] = count
	}
	return counts, nil
}

func collectOffers(rows *sql.Rows) ([]offer.Offer, error) {
	defer rows.Close()
	var items []offer.Offer
	for rows.Next() {
		var posting offer.Offer
		if err := scanOffer(rows.Scan, &posting); err != nil {
			return nil, common.NewError(common.CodeUnavailable, "failed to scan offer", err)
		}
		items = append(items, posting)
	}
	return items, nil
}

func scanOffer(scan func(dest ...any) error, posting *offer.Offer) error {
	return scan(&posting.ID, &posting.CompanyID, &posting.CompanyName, &posting.Title, &posting.Type, &posting.Description,
		&posting.Requirements, &posting.Location, &posting.Duration, &posting.Status, &posting.RejectionReason, &posting.CreatedAt)
}
