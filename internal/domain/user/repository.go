package user

import (
	"context"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id common.UUID) error
	CountByRole(ctx context.Context) (map[Role]int, error)
}
