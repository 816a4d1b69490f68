package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
)

var testAccessSecret = []byte("test-access-secret")

// fakeTodoService records the owner id each call received, so the tests can
// assert it came from the token and not the payload.
type fakeTodoService struct {
	todo      *models.Todo
	list      []*models.Todo
	err       error
	gotOwner  string
	gotID     string
	gotPatch  services.TodoPatch
	gotTitle  string
	callCount int
}

func (f *fakeTodoService) Create(ctx context.Context, title, ownerID string) (*models.Todo, error) {
	f.callCount++
	f.gotTitle = title
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return f.todo, nil
}

func (f *fakeTodoService) List(ctx context.Context, ownerID string) ([]*models.Todo, error) {
	f.callCount++
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeTodoService) FindOne(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	f.callCount++
	f.gotID = id
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return f.todo, nil
}

func (f *fakeTodoService) Update(ctx context.Context, id, ownerID string, patch services.TodoPatch) (*models.Todo, error) {
	f.callCount++
	f.gotID = id
	f.gotOwner = ownerID
	f.gotPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	return f.todo, nil
}

func (f *fakeTodoService) Remove(ctx context.Context, id, ownerID string) (*models.Todo, error) {
	f.callCount++
	f.gotID = id
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return f.todo, nil
}

func newTestRouter(t *testing.T, svc TodoService) http.Handler {
	t.Helper()
	logger := testLogger()
	return NewRouter(
		NewAuthHandler(okAuthService(), logger),
		NewTodoHandler(svc, logger),
		logger,
		testAccessSecret,
	)
}

func bearerFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := auth.GenerateToken(userID, userID+"@x.com", testAccessSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return "Bearer " + tok
}

func doRequest(t *testing.T, router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != "" {
		reqBody = bytes.NewBufferString(body)
	} else {
		reqBody = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reqBody)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sampleTodo() *models.Todo {
	now := time.Now()
	return &models.Todo{
		ID:        "t-1",
		Title:     "buy milk",
		OwnerID:   "u-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestTodos_RequireBearerToken(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo()}
	router := newTestRouter(t, svc)

	cases := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/todos", `{"title":"x"}`},
		{http.MethodGet, "/todos", ""},
		{http.MethodGet, "/todos/t-1", ""},
		{http.MethodPatch, "/todos/t-1", `{"title":"x"}`},
		{http.MethodDelete, "/todos/t-1", ""},
	}

	for _, c := range cases {
		t.Run(c.method+" "+c.target, func(t *testing.T) {
			rec := doRequest(t, router, c.method, c.target, "", c.body)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
	require.Zero(t, svc.callCount, "service must be unreachable without a token")
}

func TestTodos_RejectGarbageToken(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo()}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodGet, "/todos", "Bearer not.a.jwt", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Zero(t, svc.callCount)
}

func TestTodoCreate_OwnerFromToken(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo()}
	router := newTestRouter(t, svc)

	// payload tries to smuggle a different owner; it must be ignored
	body := `{"title":"buy milk","ownerId":"someone-else"}`
	rec := doRequest(t, router, http.MethodPost, "/todos", bearerFor(t, "u-1"), body)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u-1", svc.gotOwner)
	require.Equal(t, "buy milk", svc.gotTitle)
}

func TestTodoCreate_EmptyTitle(t *testing.T) {
	svc := &fakeTodoService{err: common.NewValidationError("title", "title must not be empty")}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodPost, "/todos", bearerFor(t, "u-1"), `{"title":"  "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "title")
}

func TestTodoList(t *testing.T) {
	svc := &fakeTodoService{list: []*models.Todo{sampleTodo()}}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodGet, "/todos", bearerFor(t, "u-1"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "u-1", svc.gotOwner)

	var got []models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "t-1", got[0].ID)
}

func TestTodoList_EmptyIsJSONArray(t *testing.T) {
	svc := &fakeTodoService{}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodGet, "/todos", bearerFor(t, "u-1"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())
}

func TestTodoFindOne_NotOwned(t *testing.T) {
	svc := &fakeTodoService{err: common.ErrorNotFound}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodGet, "/todos/t-1", bearerFor(t, "u-2"), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "t-1", svc.gotID)
	require.Equal(t, "u-2", svc.gotOwner)
}

func TestTodoUpdate_PartialPatch(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo()}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodPatch, "/todos/t-1", bearerFor(t, "u-1"), `{"isCompleted":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, svc.gotPatch.Title, "absent title must stay nil")
	require.NotNil(t, svc.gotPatch.IsCompleted)
	require.True(t, *svc.gotPatch.IsCompleted)
}

func TestTodoRemove_ReturnsRecord(t *testing.T) {
	svc := &fakeTodoService{todo: sampleTodo()}
	router := newTestRouter(t, svc)

	rec := doRequest(t, router, http.MethodDelete, "/todos/t-1", bearerFor(t, "u-1"), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "t-1", got.ID)
	require.Equal(t, "buy milk", got.Title)
}
