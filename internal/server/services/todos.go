package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TodoPatch carries the optional fields of a partial update; nil means
// "leave unchanged".
type TodoPatch struct {
	Title       *string
	IsCompleted *bool
}

// TodoService implements the ownership-scoped todo operations. Every method
// takes the owner id extracted from a validated access token, never from the
// request payload.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTodoService constructs a TodoService over the given repositories.
func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// Create normalizes the title and persists a new incomplete todo owned by
// ownerID.
func (s *TodoService) Create(ctx context.Context, title, ownerID string) (*models.Todo, error) {
	title = common.Normalize(title)
	if title == "" {
		return nil, common.NewValidationError("title", "title must not be empty")
	}

	todo := &models.Todo{
		ID:      uuid.NewString(),
		Title:   title,
		OwnerID: ownerID,
	}
	return s.repomanager.Todos(s.db).Create(ctx, todo)
}

// List returns all todos owned by ownerID.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	return s.repomanager.Todos(s.db).ListByOwner(ctx, ownerID)
}

// FindOne returns the todo matching both id and ownerID;
// common.ErrorNotFound otherwise, including when the id belongs to another
// owner.
func (s *TodoService) FindOne(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	return s.repomanager.Todos(s.db).GetByIDAndOwner(ctx, id, ownerID)
}

// Update loads the todo through FindOne (reusing its ownership check), merges
// only the provided patch fields, and persists the result.
func (s *TodoService) Update(ctx context.Context, id, ownerID string, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title := common.Normalize(*patch.Title)
		if title == "" {
			return nil, common.NewValidationError("title", "title must not be empty")
		}
		todo.Title = title
	}
	if patch.IsCompleted != nil {
		todo.IsCompleted = *patch.IsCompleted
	}

	return s.repomanager.Todos(s.db).Update(ctx, todo)
}

// Remove deletes the todo after the same ownership check and returns the
// deleted record.
func (s *TodoService) Remove(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	todo, err := s.FindOne(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.repomanager.Todos(s.db).Delete(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return todo, nil
}
