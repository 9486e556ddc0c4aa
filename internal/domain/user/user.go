package user

import (
	"strings"
	"time"

	"github.com/gitgetgotguts/blueprint-career-forum/internal/common"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

// SeedAdminID is the bootstrap administrator created on first start. That
// record can never be deleted.
const SeedAdminID common.UUID = "00000000-0000-0000-0000-000000000001"

func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent:
		return RoleStudent, true
	case RoleCompany:
		return RoleCompany, true
	default:
		return "", false
	}
}

type User struct {
	ID           common.UUID `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Role         Role        `json:"role"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	CreatedAt    time.Time   `json:"created_at"`
}
