// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/blog-api/internal/core"
)

type fakeUsers struct {
	byID   map[string]*UserInfo
	nextID int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*UserInfo{}}
}

func (f *fakeUsers) add(u *UserInfo) *UserInfo {
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	for _, u := range f.byID {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUsers) Create(
	_ context.Context,
	name, email, passwordHash, role string,
) (*UserInfo, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return nil, fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	f.nextID++
	if role == "" {
		role = "Reader"
	}
	u := &UserInfo{
		ID:           fmt.Sprintf("user-%d", f.nextID),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) SetResetToken(
	_ context.Context,
	id, token string,
	expires time.Time,
) error {
	u, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpires = &expires
	return nil
}

func (f *fakeUsers) ResetPassword(
	_ context.Context,
	id, passwordHash string,
) error {
	u, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpires = nil
	return nil
}

func (f *fakeUsers) MarkVerified(_ context.Context, id string) error {
	u, ok := f.byID[id]
	if !ok {
		return core.ErrNotFound
	}
	u.IsVerified = true
	return nil
}

type recordingMailer struct {
	resetLinks  []string
	verifyLinks []string
}

func (m *recordingMailer) SendPasswordReset(
	_ context.Context,
	_, link string,
) error {
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

func (m *recordingMailer) SendVerification(
	_ context.Context,
	_, link string,
) error {
	m.verifyLinks = append(m.verifyLinks, link)
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUsers, *recordingMailer) {
	t.Helper()

	tm := newTestTokenManager(t, testSecret)
	users := newFakeUsers()
	mail := &recordingMailer{}

	svc := NewService(users, tm, mail, ServiceConfig{
		AccessTokenTTL:  time.Hour,
		ResetTokenTTL:   15 * time.Minute,
		VerifyTokenTTL:  24 * time.Hour,
		FrontendBaseURL: "http://localhost:3000",
	})

	return svc, users, mail
}

func seedUser(
	t *testing.T,
	users *fakeUsers,
	email, password, role string,
) *UserInfo {
	t.Helper()

	hash, err := core.HashPassword(password)
	require.NoError(t, err)

	return users.add(&UserInfo{
		ID:           "seed-" + email,
		Name:         "Seed User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	})
}

func TestRegister(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
		Role:     "Author",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", resp.Name)
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, "Author", resp.Role)
	assert.NotEmpty(t, resp.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, users, "taken@example.com", "password1", "Reader")

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Dup",
		Email:    "taken@example.com",
		Password: "password2",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "hunter2hunter2", "Author")

	resp, err := svc.Login(ctx, LoginRequest{
		Email:    "ada@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, seeded.ID, resp.User.ID)

	// The issued token resolves back to the same identity.
	claims, err := svc.tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, claims.UserID)
	assert.Equal(t, "Author", claims.Role)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	seedUser(t, users, "ada@example.com", "hunter2hunter2", "Reader")

	_, unknownErr := svc.Login(ctx, LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	_, wrongErr := svc.Login(ctx, LoginRequest{
		Email:    "ada@example.com",
		Password: "not the password",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestForgotPasswordStoresTokenAndMailsLink(t *testing.T) {
	svc, users, mail := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "hunter2hunter2", "Reader")

	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))

	stored := users.byID[seeded.ID]
	require.NotNil(t, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpires)
	assert.WithinDuration(
		t,
		time.Now().Add(15*time.Minute),
		*stored.ResetTokenExpires,
		time.Minute,
	)

	require.Len(t, mail.resetLinks, 1)
	link := mail.resetLinks[0]
	assert.True(t, strings.HasPrefix(link, "http://localhost:3000/reset-password?token="))
	assert.Contains(t, link, *stored.ResetToken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, mail := newTestService(t)
	ctx := context.Background()

	err := svc.ForgotPassword(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Empty(t, mail.resetLinks)
}

func TestResetPassword(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "oldpassword1", "Reader")
	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))
	token := *users.byID[seeded.ID].ResetToken

	require.NoError(t, svc.ResetPassword(ctx, token, "newpassword1"))

	stored := users.byID[seeded.ID]
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpires)
	assert.True(t, core.VerifyPassword("newpassword1", stored.PasswordHash))
	assert.False(t, core.VerifyPassword("oldpassword1", stored.PasswordHash))
}

func TestResetPasswordRejectsGarbageToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	err := svc.ResetPassword(ctx, "not.a.token", "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordRejectsExpiredStoredToken(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "oldpassword1", "Reader")
	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))

	stored := users.byID[seeded.ID]
	token := *stored.ResetToken
	past := time.Now().Add(-time.Minute)
	stored.ResetTokenExpires = &past

	err := svc.ResetPassword(ctx, token, "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestResetPasswordRejectsSupersededToken(t *testing.T) {
	svc, users, _ := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "oldpassword1", "Reader")

	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))
	firstToken := *users.byID[seeded.ID].ResetToken

	// A second request replaces the stored token, invalidating the first
	// even though its signature still verifies.
	require.NoError(t, svc.ForgotPassword(ctx, "ada@example.com"))

	err := svc.ResetPassword(ctx, firstToken, "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestVerifyEmail(t *testing.T) {
	svc, users, mail := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "hunter2hunter2", "Reader")

	require.NoError(t, svc.SendVerificationEmail(ctx, "ada@example.com"))
	require.Len(t, mail.verifyLinks, 1)

	link := mail.verifyLinks[0]
	token := strings.TrimPrefix(
		link,
		"http://localhost:3000/verify-email?token=",
	)
	require.NotEqual(t, link, token)

	require.NoError(t, svc.VerifyEmail(ctx, token))
	assert.True(t, users.byID[seeded.ID].IsVerified)
}

func TestVerifyEmailRejectsBadToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	err := svc.VerifyEmail(ctx, "not.a.token")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestSendVerificationAlreadyVerified(t *testing.T) {
	svc, users, mail := newTestService(t)
	ctx := context.Background()

	seeded := seedUser(t, users, "ada@example.com", "hunter2hunter2", "Reader")
	seeded.IsVerified = true

	err := svc.SendVerificationEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	assert.Empty(t, mail.verifyLinks)
}
