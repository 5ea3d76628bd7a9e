package services

import (
	"context"
	"testing"
	"time"

	"github.com/classpulse/api/internal/core/domain"
	"github.com/classpulse/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	r.byID[user.ID.String()] = user
	return nil
}

type fakeAuthRepo struct {
	byHash map[string]*domain.RefreshToken
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{byHash: make(map[string]*domain.RefreshToken)}
}

func (r *fakeAuthRepo) StoreRefreshToken(ctx context.Context, token *domain.RefreshToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	r.byHash[token.TokenHash] = token
	return nil
}

func (r *fakeAuthRepo) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return r.byHash[tokenHash], nil
}

func (r *fakeAuthRepo) RevokeRefreshToken(ctx context.Context, id string) error {
	for _, token := range r.byHash {
		if token.ID.String() == id {
			token.Revoked = true
		}
	}
	return nil
}

type fakeVerifier struct {
	payload *ports.TokenPayload
}

func (v *fakeVerifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	return v.payload, nil
}

func TestLoginWithGoogleCreatesUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "bmsce.ac.in")

	userRepo := newFakeUserRepo()
	svc := NewAuthService(userRepo, newFakeAuthRepo(), &fakeVerifier{
		payload: &ports.TokenPayload{Email: "teacher@bmsce.ac.in", Name: "Teacher"},
	})

	accessToken, refreshToken, err := svc.LoginWithGoogle(context.Background(), "google-credential")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	user, err := userRepo.GetByEmail(context.Background(), "teacher@bmsce.ac.in")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Teacher", user.Name)
}

func TestLoginWithGoogleRejectsForeignDomain(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "bmsce.ac.in")

	svc := NewAuthService(newFakeUserRepo(), newFakeAuthRepo(), &fakeVerifier{
		payload: &ports.TokenPayload{Email: "intruder@gmail.com", Name: "Intruder"},
	})

	_, _, err := svc.LoginWithGoogle(context.Background(), "google-credential")
	assert.ErrorIs(t, err, domain.ErrUnauthorizedDomain)
}

func TestRefreshAccessToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "bmsce.ac.in")

	svc := NewAuthService(newFakeUserRepo(), newFakeAuthRepo(), &fakeVerifier{
		payload: &ports.TokenPayload{Email: "teacher@bmsce.ac.in", Name: "Teacher"},
	})

	_, refreshToken, err := svc.LoginWithGoogle(context.Background(), "google-credential")
	require.NoError(t, err)

	accessToken, _, err := svc.RefreshAccessToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

func TestRefreshAfterLogoutFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("ALLOWED_EMAIL_DOMAIN", "bmsce.ac.in")

	svc := NewAuthService(newFakeUserRepo(), newFakeAuthRepo(), &fakeVerifier{
		payload: &ports.TokenPayload{Email: "teacher@bmsce.ac.in", Name: "Teacher"},
	})

	_, refreshToken, err := svc.LoginWithGoogle(context.Background(), "google-credential")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), refreshToken))

	_, _, err = svc.RefreshAccessToken(context.Background(), refreshToken)
	assert.Error(t, err)
}
