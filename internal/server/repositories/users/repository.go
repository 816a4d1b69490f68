package users

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the credential store consumed by the auth workflow.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// SetRefreshToken unconditionally overwrites the user's stored refresh
	// token (sign-up and sign-in).
	SetRefreshToken(ctx context.Context, userID string, token string) error

	// SwapRefreshToken replaces the stored refresh token only if it still
	// equals oldToken; common.ErrorTokenMismatch otherwise. This conditional
	// update serializes concurrent refresh rotations, so only one of two
	// racing calls on the same stale token can win.
	SwapRefreshToken(ctx context.Context, userID string, oldToken, newToken string) error
}
