// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelamos/blog-api/internal/auth"
	"github.com/angelamos/blog-api/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create persists a new account. An empty role defaults to Reader; accounts
// start unverified.
func (s *Service) Create(
	ctx context.Context,
	name, email, passwordHash, role string,
) (*auth.UserInfo, error) {
	if role == "" {
		role = RoleReader
	}
	if !ValidRole(role) {
		return nil, fmt.Errorf("create user: role %q: %w", role, core.ErrInvalidInput)
	}

	user := &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Role:         role,
		IsVerified:   false,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) SetResetToken(
	ctx context.Context,
	id, token string,
	expires time.Time,
) error {
	return s.repo.SetResetToken(ctx, id, token, expires)
}

func (s *Service) ResetPassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	return s.repo.ResetPassword(ctx, id, passwordHash)
}

func (s *Service) MarkVerified(ctx context.Context, id string) error {
	return s.repo.MarkVerified(ctx, id)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		PasswordHash:      u.PasswordHash,
		Role:              u.Role,
		IsVerified:        u.IsVerified,
		ResetToken:        u.ResetToken,
		ResetTokenExpires: u.ResetTokenExpires,
	}
}

var _ auth.UserProvider = (*Service)(nil)
