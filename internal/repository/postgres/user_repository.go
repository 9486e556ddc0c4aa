package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, account user.User) (*user.User, error) {
	if account.ID == "" {
		account.ID = common.NewUUID()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (id, username, password_hash, role, name, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		account.ID, account.Username, account.PasswordHash, account.Role, account.Name, account.Email, account.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return nil, common.NewError(common.CodeConflict, "username already taken", err)
		}
		return nil, common.NewError(common.CodeUnavailable, "failed to create user", err)
	}
	return &account, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, role, name, email, created_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, username, password_hash, role, name, email, created_at FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, username, password_hash, role, name, email, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to list users", err)
	}
	defer rows.Close()
	var items []user.User
	for rows.Next() {
		var account user.User
		if err := rows.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Role, &account.Name, &account.Email, &account.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeUnavailable, "failed to scan user", err)
		}
		items = append(items, account)
	}
	return items, nil
}

func (r *UserRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeUnavailable, "failed to delete user", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "user not found", sql.ErrNoRows)
	}
	return nil
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[user.Role]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, common.NewError(common.CodeUnavailable, "failed to count users", err)
	}
	defer rows.Close()
	counts := make(map[user.Role]int)
	for rows.Next() {
		var role user.Role
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, common.NewError(common.CodeUnavailable, "failed to scan user count", err)
		}
		counts[role] = count
	}
	return counts, nil
}

func scanUser(row *sql.Row) (*user.User, error) {
	var account user.User
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Role, &account.Name, &account.Email, &account.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "user not found", err)
		}
		return nil, common.NewError(common.CodeUnavailable, "failed to load user", err)
	}
	return &account, nil
}
