package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/domain/user"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/integration/mailer"
	"github.com/gitgetgotguts/blueprint-career-forum/internal/security"
)

type UserService struct {
	users  user.Repository
	mailer mailer.Client
	logger Logger
}

func NewUserService(users user.Repository, mail mailer.Client, logger Logger) *UserService {
	return &UserService{users: users, mailer: mail, logger: logger}
}

type CreateUserInput struct {
	Username string
	Password string
	Role     string
	Name     string
	Email    string
}

type CreateUserResult struct {
	User *user.User
	// CredentialsSent reports whether the welcome mail went out. Delivery is
	// best effort and never fails the creation itself.
	CredentialsSent bool
}

func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*CreateUserResult, error) {
	fields := map[string]string{}
	input.Username = strings.TrimSpace(input.Username)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" {
		fields["username"] = "username is required"
	}
	if input.Password == "" {
		fields["password"] = "password is required"
	}
	if input.Name == "" {
		fields["name"] = "name is required"
	}
	if input.Email == "" {
		fields["email"] = "email is required"
	}
	role, ok := user.ParseRole(input.Role)
	if !ok {
		fields["role"] = "role must be admin, student, or company"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid user", fields)
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to hash password", err)
	}
	created, err := s.users.Create(ctx, user.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         role,
		Name:         input.Name,
		Email:        input.Email,
	})
	if err != nil {
		return nil, err
	}

	sent := false
	if s.mailer != nil {
		data := mailer.CredentialsData{
			Name:     created.Name,
			Username: created.Username,
			Password: input.Password,
			Role:     string(created.Role),
		}
		if err := s.mailer.SendCredentials(ctx, created.Email, data); err != nil {
			s.logWarn(fmt.Sprintf("credential mail failed user_id=%s: %v", created.ID, err))
		} else {
			sent = true
		}
	}
	return &CreateUserResult{User: created, CredentialsSent: sent}, nil
}

func (s *UserService) Delete(ctx context.Context, id common.UUID) error {
	if id == user.SeedAdminID {
		return common.NewError(common.CodeProtectedRecord, "the seed administrator cannot be deleted", nil)
	}
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	// Offers, applications, and profiles owned by the account go with it
	// (FK ON DELETE CASCADE).
	return s.users.Delete(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id common.UUID) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

// EnsureSeedAdmin creates the bootstrap administrator on first start. The
// record keeps its well-known id so the delete guard stays stable across
// password changes.
func (s *UserService) EnsureSeedAdmin(ctx context.Context, username, password, email string) error {
	if _, err := s.users.GetByID(ctx, user.SeedAdminID); err == nil {
		return nil
	} else if !common.Is(err, common.CodeNotFound) {
		return err
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to hash admin password", err)
	}
	_, err = s.users.Create(ctx, user.User{
		ID:           user.SeedAdminID,
		Username:     username,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		Name:         "Administrator",
		Email:        email,
		CreatedAt:    time.Now().UTC(),
	})
	return err
}

func (s *UserService) logWarn(msg string) {
	if s.logger != nil {
		s.logger.Warn(msg)
	}
}
