package contract

import (
	"context"

	"github.com/tomokihara/snapfeed/internal/domain/entity"
)

// IUserRepository defines the interface for user data persistence.
type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdateUser(ctx context.Context, userID string, updates map[string]interface{}) error
	AdjustPostCount(ctx context.Context, userID string, delta int) error
}
