package todos

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository is the ownership-scoped todo store. Every lookup and mutation is
// keyed on (id, owner_id); a row owned by someone else is indistinguishable
// from an absent one.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, id, ownerID string) error
}
