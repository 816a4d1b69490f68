package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// TodoService is the ownership-scoped store consumed by TodoHandler.
type TodoService interface {
	Create(ctx context.Context, title, ownerID string) (*models.Todo, error)
	List(ctx context.Context, ownerID string) ([]*models.Todo, error)
	FindOne(ctx context.Context, id, ownerID string) (*models.Todo, error)
	Update(ctx context.Context, id, ownerID string, patch services.TodoPatch) (*models.Todo, error)
	Remove(ctx context.Context, id, ownerID string) (*models.Todo, error)
}

// TodoHandler handles the /todos routes. All of them sit behind BearerAuth,
// so the owner id always comes from the verified token, never from the body.
type TodoHandler struct {
	service TodoService
	logger  logging.Logger
}

// NewTodoHandler constructs a TodoHandler.
func NewTodoHandler(service TodoService, logger logging.Logger) *TodoHandler {
	return &TodoHandler{service: service, logger: logger.With("module", "todo_handler")}
}

type createTodoRequest struct {
	Title string `json:"title"`
}

type updateTodoRequest struct {
	Title       *string `json:"title"`
	IsCompleted *bool   `json:"isCompleted"`
}

// owner extracts the authenticated subject; BearerAuth guarantees presence on
// these routes.
func owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
		return "", false
	}
	return id.UserID, true
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, []*common.ValidationError{
			common.NewValidationError("body", "must be valid JSON"),
		})
		return
	}

	todo, err := h.service.Create(r.Context(), req.Title, ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "todo created", "todo_id", todo.ID, "owner_id", ownerID)
	writeJSON(w, http.StatusOK, todo)
}

// List handles GET /todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	todos, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	if todos == nil {
		todos = []*models.Todo{}
	}

	writeJSON(w, http.StatusOK, todos)
}

// FindOne handles GET /todos/{id}.
func (h *TodoHandler) FindOne(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	todo, err := h.service.FindOne(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Update handles PATCH /todos/{id}; only the fields present in the body are
// merged.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, []*common.ValidationError{
			common.NewValidationError("body", "must be valid JSON"),
		})
		return
	}

	todo, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), ownerID, services.TodoPatch{
		Title:       req.Title,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

// Remove handles DELETE /todos/{id} and returns the deleted record.
func (h *TodoHandler) Remove(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}

	todo, err := h.service.Remove(r.Context(), chi.URLParam(r, "id"), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "todo removed", "todo_id", todo.ID, "owner_id", ownerID)
	writeJSON(w, http.StatusOK, todo)
}
