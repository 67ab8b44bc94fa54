package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomokihara/snapfeed/internal/domain/contract"
	"github.com/tomokihara/snapfeed/internal/domain/entity"
	usecasecontract "github.com/tomokihara/snapfeed/internal/usecase/contract"
)

// JWTService issues and verifies the access and refresh tokens used by the API.
type JWTService interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ParseAccessToken(tokenStr string) (*entity.Claims, error)
	ParseRefreshToken(tokenStr string) (*entity.Claims, error)
}

// UserUsecase handles registration, authentication and profile management.
type UserUsecase struct {
	userRepo  contract.IUserRepository
	tokenRepo contract.ITokenRepository
	hasher    contract.IHasher
	jwt       JWTService
	logger    usecasecontract.IAppLogger
	config    usecasecontract.IConfigProvider
	validator usecasecontract.IValidator
	uuidGen   contract.IUUIDGenerator
}

// NewUserUsecase creates and returns a new UserUsecase instance.
func NewUserUsecase(userRepo contract.IUserRepository, tokenRepo contract.ITokenRepository, hasher contract.IHasher, jwt JWTService, logger usecasecontract.IAppLogger, config usecasecontract.IConfigProvider, validator usecasecontract.IValidator, uuidGen contract.IUUIDGenerator) *UserUsecase {
	return &UserUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		hasher:    hasher,
		jwt:       jwt,
		logger:    logger,
		config:    config,
		validator: validator,
		uuidGen:   uuidGen,
	}
}

var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register creates a new user account.
func (u *UserUsecase) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := u.validator.ValidateUsername(username); err != nil {
		return nil, NewValidationError(err.Error())
	}
	if err := u.validator.ValidateEmail(email); err != nil {
		return nil, NewValidationError("invalid email address")
	}
	if err := u.validator.ValidatePasswordStrength(password); err != nil {
		return nil, NewValidationError(err.Error())
	}

	if existing, err := u.userRepo.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, NewValidationError("email is already registered")
	}
	if existing, err := u.userRepo.GetUserByUsername(ctx, username); err == nil && existing != nil {
		return nil, NewValidationError("username is already taken")
	}

	hash, err := u.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{
		ID:           u.uuidGen.NewUUID(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	u.logger.Infof("user %s registered", user.ID)
	return user, nil
}

// Login verifies credentials and issues an access/refresh token pair.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if err := u.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := u.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, "", "", err
	}
	u.logger.Infof("user %s logged in", user.ID)
	return user, access, refresh, nil
}

// RefreshToken rotates a refresh token, revoking the presented one.
func (u *UserUsecase) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := u.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", ErrInvalidToken
	}
	stored, err := u.tokenRepo.GetTokenByHash(ctx, u.hasher.HashString(refreshToken))
	if err != nil || stored == nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return "", "", ErrInvalidToken
	}
	if stored.UserID != claims.UserID {
		return "", "", ErrInvalidToken
	}

	if err := u.tokenRepo.RevokeToken(ctx, stored.ID); err != nil {
		return "", "", fmt.Errorf("failed to revoke token: %w", err)
	}
	return u.issueTokens(ctx, claims.UserID)
}

// Logout revokes the presented refresh token.
func (u *UserUsecase) Logout(ctx context.Context, refreshToken string) error {
	stored, err := u.tokenRepo.GetTokenByHash(ctx, u.hasher.HashString(refreshToken))
	if err != nil || stored == nil {
		// Already invalid; logout is idempotent.
		return nil
	}
	return u.tokenRepo.RevokeToken(ctx, stored.ID)
}

// LogoutAll revokes every refresh token issued to the user, signing out all
// of their sessions at once.
func (u *UserUsecase) LogoutAll(ctx context.Context, userID string) error {
	if err := u.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	u.logger.Infof("user %s logged out of all sessions", userID)
	return nil
}

// Authenticate resolves an access token into its user.
func (u *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := u.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := u.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByID returns a user's public profile.
func (u *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile patches a user's editable profile fields (bio, avatar key,
// username). Users may only update their own profile; the handler enforces
// that the authenticated user matches userID.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (*entity.User, error) {
	allowed := map[string]bool{"bio": true, "avatar_key": true, "username": true}
	filtered := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		if !allowed[k] {
			return nil, NewValidationError(fmt.Sprintf("field %q cannot be updated", k))
		}
		filtered[k] = v
	}
	if username, ok := filtered["username"].(string); ok {
		if err := u.validator.ValidateUsername(username); err != nil {
			return nil, NewValidationError(err.Error())
		}
		if existing, err := u.userRepo.GetUserByUsername(ctx, username); err == nil && existing != nil && existing.ID != userID {
			return nil, NewValidationError("username is already taken")
		}
	}
	if bio, ok := filtered["bio"].(string); ok && len([]rune(bio)) > 300 {
		return nil, NewValidationError("bio must be 300 characters or fewer")
	}

	if err := u.userRepo.UpdateUser(ctx, userID, filtered); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return u.GetUserByID(ctx, userID)
}

// issueTokens generates and persists a fresh access/refresh pair.
func (u *UserUsecase) issueTokens(ctx context.Context, userID string) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := u.jwt.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	stored := &entity.RefreshToken{
		ID:        u.uuidGen.NewUUID(),
		UserID:    userID,
		TokenHash: u.hasher.HashString(refresh),
		ExpiresAt: time.Now().Add(u.config.GetRefreshTokenExpiry()),
	}
	if err := u.tokenRepo.StoreToken(ctx, stored); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return access, refresh, nil
}
