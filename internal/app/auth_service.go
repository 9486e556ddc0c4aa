package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/auth"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/security"
)

// Logger is the narrow logging surface the services need. A nil logger is
// valid and silences everything.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

type AuthService struct {
	users         user.Repository
	refreshTokens auth.RefreshTokenRepository
	jwtProvider   *security.JWTProvider
	logger        Logger
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(users user.Repository, refreshTokens auth.RefreshTokenRepository, jwtProvider *security.JWTProvider, logger Logger, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		users:         users,
		refreshTokens: refreshTokens,
		jwtProvider:   jwtProvider,
		logger:        logger,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Login checks the credentials and issues a token pair. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.TokenPair, *user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, common.NewValidationError("invalid request", map[string]string{"username": "username and password are required"})
	}
	account, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
		}
		return nil, nil, err
	}
	if !security.CheckPassword(account.PasswordHash, password) {
		return nil, nil, common.NewError(common.CodeUnauthorized, "invalid credentials", nil)
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	s.logInfo(fmt.Sprintf("login succeeded user_id=%s role=%s", account.ID, account.Role))
	return pair, account, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, *user.User, error) {
	stored, err := s.refreshTokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "invalid refresh token", nil)
		}
		return nil, nil, err
	}
	now := time.Now().UTC()
	if stored.RevokedAt != nil || stored.ExpiresAt.Before(now) {
		return nil, nil, common.NewError(common.CodeUnauthorized, "refresh token expired", nil)
	}
	account, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, nil, common.NewError(common.CodeUnauthorized, "account no longer exists", nil)
		}
		return nil, nil, err
	}
	if err := s.refreshTokens.Revoke(ctx, refreshToken, now.Unix()); err != nil {
		return nil, nil, err
	}
	pair, err := s.issueTokens(ctx, account)
	if err != nil {
		return nil, nil, err
	}
	return pair, account, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return common.NewValidationError("invalid request", map[string]string{"refresh_token": "refresh_token is required"})
	}
	err := s.refreshTokens.Revoke(ctx, refreshToken, time.Now().UTC().Unix())
	if err != nil && !common.Is(err, common.CodeNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, account *user.User) (*auth.TokenPair, error) {
	accessToken, expiresAt, err := s.jwtProvider.Generate(account.ID, string(account.Role), s.accessTTL)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to sign access token", err)
	}
	refreshValue, err := generateRefreshToken()
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to generate refresh token", err)
	}
	now := time.Now().UTC()
	token := auth.RefreshToken{
		ID:        common.NewUUID(),
		UserID:    account.ID,
		Token:     refreshValue,
		Role:      string(account.Role),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := s.refreshTokens.Store(ctx, token); err != nil {
		return nil, err
	}
	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshValue, ExpiresAt: expiresAt}, nil
}

func generateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *AuthService) logInfo(msg string) {
	if s.logger != nil {
		s.logger.Info(msg)
	}
}
