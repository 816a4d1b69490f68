// Package todos provides the PostgreSQL-backed, ownership-scoped todo store.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a todo row; created_at/updated_at are assigned by the store.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `
		INSERT INTO todos (id, title, is_completed, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.IsCompleted, todo.OwnerID).
		Scan(&todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

// ListByOwner returns every todo owned by ownerID in the store's natural order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	query := `
		SELECT id, title, is_completed, owner_id, created_at, updated_at
		FROM todos
		WHERE owner_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Todo
	for rows.Next() {
		var item models.Todo
		if err := rows.Scan(&item.ID, &item.Title, &item.IsCompleted,
			&item.OwnerID, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// GetByIDAndOwner returns the todo matching both id and ownerID, or
// common.ErrorNotFound. A row owned by another user looks identical to a
// missing one.
func (r *PostgresRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	query := `
		SELECT id, title, is_completed, owner_id, created_at, updated_at
		FROM todos
		WHERE id = $1 AND owner_id = $2
	`
	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&todo.ID, &todo.Title, &todo.IsCompleted, &todo.OwnerID,
			&todo.CreatedAt, &todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

// Update persists title/is_completed and refreshes updated_at, still keyed on
// (id, owner_id).
func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `
		UPDATE todos SET title = $1, is_completed = $2, updated_at = now()
		WHERE id = $3 AND owner_id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		todo.Title, todo.IsCompleted, todo.ID, todo.OwnerID).
		Scan(&todo.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

// Delete removes the todo matching both id and ownerID; common.ErrorNotFound
// when no row matches.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
