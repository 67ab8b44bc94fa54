package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
	"github.com/tomokihara/snapfeed/internal/usecase"
)

type fakeTokenRepo struct {
	byHash map[string]*entity.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: map[string]*entity.RefreshToken{}}
}

func (f *fakeTokenRepo) StoreToken(ctx context.Context, token *entity.RefreshToken) error {
	f.byHash[token.TokenHash] = token
	return nil
}

func (f *fakeTokenRepo) GetTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error) {
	return f.byHash[tokenHash], nil
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, tokenID string) error {
	for _, t := range f.byHash {
		if t.ID == tokenID {
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	for _, t := range f.byHash {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) { return "bcrypt:" + password, nil }

func (fakeHasher) ComparePasswordHash(password, hashedPassword string) error {
	if "bcrypt:"+password != hashedPassword {
		return errors.New("password verification failed")
	}
	return nil
}

func (fakeHasher) HashString(s string) string { return "sha:" + s }

type fakeJWT struct {
	n      int
	owners map[string]string // token -> userID
}

func newFakeJWT() *fakeJWT { return &fakeJWT{owners: map[string]string{}} }

func (f *fakeJWT) issue(prefix, userID string) string {
	f.n++
	token := fmt.Sprintf("%s-%s-%d", prefix, userID, f.n)
	f.owners[token] = userID
	return token
}

func (f *fakeJWT) GenerateAccessToken(userID string) (string, error) {
	return f.issue("access", userID), nil
}

func (f *fakeJWT) GenerateRefreshToken(userID string) (string, error) {
	return f.issue("refresh", userID), nil
}

func (f *fakeJWT) parse(tokenStr string) (*entity.Claims, error) {
	userID, ok := f.owners[tokenStr]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &entity.Claims{UserID: userID}, nil
}

func (f *fakeJWT) ParseAccessToken(tokenStr string) (*entity.Claims, error)  { return f.parse(tokenStr) }
func (f *fakeJWT) ParseRefreshToken(tokenStr string) (*entity.Claims, error) { return f.parse(tokenStr) }

type fakeConfig struct{}

func (fakeConfig) GetAppBaseURL() string                { return "http://localhost:8080" }
func (fakeConfig) GetAccessTokenExpiry() time.Duration  { return 15 * time.Minute }
func (fakeConfig) GetRefreshTokenExpiry() time.Duration { return 7 * 24 * time.Hour }
func (fakeConfig) GetUploadURLExpiry() time.Duration    { return 10 * time.Minute }

type passValidator struct{}

func (passValidator) ValidateEmail(email string) error               { return nil }
func (passValidator) ValidateUsername(username string) error         { return nil }
func (passValidator) ValidatePasswordStrength(password string) error { return nil }

func newUserFixture() (*usecase.UserUsecase, *fakeTokenRepo) {
	users := newFakeUserRepo(&entity.User{
		ID:           "user-1",
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "bcrypt:Password123",
	})
	tokens := newFakeTokenRepo()
	uc := usecase.NewUserUsecase(users, tokens, fakeHasher{}, newFakeJWT(), nopLogger{}, fakeConfig{}, passValidator{}, &seqUUIDGen{})
	return uc, tokens
}

func TestLogin_StoresHashedRefreshToken(t *testing.T) {
	uc, tokens := newUserFixture()

	user, access, refresh, err := uc.Login(context.Background(), "test@example.com", "Password123")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	stored := tokens.byHash["sha:"+refresh]
	assert.NotNil(t, stored)
	assert.Equal(t, "user-1", stored.UserID)
	assert.False(t, stored.Revoked)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newUserFixture()

	_, _, _, err := uc.Login(context.Background(), "test@example.com", "wrong")
	assert.ErrorIs(t, err, usecase.ErrInvalidCredentials)
}

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	uc, tokens := newUserFixture()
	ctx := context.Background()

	_, _, refresh, err := uc.Login(ctx, "test@example.com", "Password123")
	assert.NoError(t, err)

	access2, refresh2, err := uc.RefreshToken(ctx, refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEqual(t, refresh, refresh2)
	assert.True(t, tokens.byHash["sha:"+refresh].Revoked)

	// The rotated-out token cannot be used again.
	_, _, err = uc.RefreshToken(ctx, refresh)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestLogoutAll_RevokesEverySession(t *testing.T) {
	uc, tokens := newUserFixture()
	ctx := context.Background()

	_, _, refresh1, err := uc.Login(ctx, "test@example.com", "Password123")
	assert.NoError(t, err)
	_, _, refresh2, err := uc.Login(ctx, "test@example.com", "Password123")
	assert.NoError(t, err)

	assert.NoError(t, uc.LogoutAll(ctx, "user-1"))

	for _, stored := range tokens.byHash {
		assert.True(t, stored.Revoked)
	}
	_, _, err = uc.RefreshToken(ctx, refresh1)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
	_, _, err = uc.RefreshToken(ctx, refresh2)
	assert.ErrorIs(t, err, usecase.ErrInvalidToken)
}

func TestLogout_Idempotent(t *testing.T) {
	uc, _ := newUserFixture()
	ctx := context.Background()

	_, _, refresh, err := uc.Login(ctx, "test@example.com", "Password123")
	assert.NoError(t, err)

	assert.NoError(t, uc.Logout(ctx, refresh))
	assert.NoError(t, uc.Logout(ctx, refresh))
	assert.NoError(t, uc.Logout(ctx, "never-issued"))
}
