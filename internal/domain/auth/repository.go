package auth

import (
	"context"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type RefreshTokenRepository interface {
	Store(ctx context.Context, token RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, token string, revokedAtUnix int64) error
	RevokeAll(ctx context.Context, userID common.UUID, revokedAtUnix int64) error
}
