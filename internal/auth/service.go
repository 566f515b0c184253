// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/angelamos/blog-api/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// UserInfo is the account view the lifecycle service works with.
type UserInfo struct {
	ID                string
	Name              string
	Email             string
	PasswordHash      string
	Role              string
	IsVerified        bool
	ResetToken        *string
	ResetTokenExpires *time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash, role string,
	) (*UserInfo, error)
	SetResetToken(
		ctx context.Context,
		id, token string,
		expires time.Time,
	) error
	ResetPassword(ctx context.Context, id, passwordHash string) error
	MarkVerified(ctx context.Context, id string) error
}

// Mailer delivers password-reset and verification links. Transport lives in
// internal/mailer.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, link string) error
	SendVerification(ctx context.Context, to, link string) error
}

type ServiceConfig struct {
	AccessTokenTTL  time.Duration
	ResetTokenTTL   time.Duration
	VerifyTokenTTL  time.Duration
	FrontendBaseURL string
}

type Service struct {
	users  UserProvider
	tokens *TokenManager
	mailer Mailer
	config ServiceConfig
}

func NewService(
	users UserProvider,
	tokens *TokenManager,
	mailer Mailer,
	cfg ServiceConfig,
) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		config: cfg,
	}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash, req.Role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return toUserResponse(user), nil
}

// Login returns the same ErrInvalidCredentials for an unknown email and a
// wrong password, and burns a bcrypt comparison in both cases.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role, s.config.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// ForgotPassword stores the issued token and its wall-clock expiry on the
// user record. Both are rechecked at reset time; the token's own expiry
// alone is not trusted, since a newer token could have replaced it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := s.tokens.Issue(user.ID, user.Role, s.config.ResetTokenTTL)
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	expires := time.Now().Add(s.config.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := s.buildLink("/reset-password", token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	return nil
}

// ResetPassword accepts a token only when its signature verifies, it equals
// the stored reset token, and the stored expiry has not passed. Any failure
// collapses into ErrInvalidResetToken.
func (s *Service) ResetPassword(
	ctx context.Context,
	token, newPassword string,
) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return ErrInvalidResetToken
	}

	if user.ResetToken == nil || *user.ResetToken != token {
		return ErrInvalidResetToken
	}

	if user.ResetTokenExpires == nil ||
		time.Now().After(*user.ResetTokenExpires) {
		return ErrInvalidResetToken
	}

	passwordHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.ResetPassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	return nil
}

func (s *Service) SendVerificationEmail(
	ctx context.Context,
	email string,
) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	token, err := s.tokens.Issue(user.ID, user.Role, s.config.VerifyTokenTTL)
	if err != nil {
		return fmt.Errorf("issue verification token: %w", err)
	}

	link := s.buildLink("/verify-email", token)
	if err := s.mailer.SendVerification(ctx, user.Email, link); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	return nil
}

func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return fmt.Errorf("verify email: %w", core.ErrTokenInvalid)
	}

	if err := s.users.MarkVerified(ctx, claims.UserID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("verify email: %w", core.ErrTokenInvalid)
		}
		return fmt.Errorf("mark verified: %w", err)
	}

	return nil
}

func (s *Service) buildLink(path, token string) string {
	return fmt.Sprintf(
		"%s%s?token=%s",
		s.config.FrontendBaseURL,
		path,
		url.QueryEscape(token),
	)
}

func toUserResponse(u *UserInfo) *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
