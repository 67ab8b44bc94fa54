package contract

import (
	"context"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// ITokenRepository defines the interface for refresh token persistence.
type ITokenRepository interface {
	StoreToken(ctx context.Context, token *entity.RefreshToken) error
	GetTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)
	RevokeToken(ctx context.Context, tokenID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
