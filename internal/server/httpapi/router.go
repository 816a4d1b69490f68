package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the taskkeeper API.
//
// Routes:
//
//	POST   /auth/sign-up   → authHandler.SignUp
//	POST   /auth/sign-in   → authHandler.SignIn
//	POST   /auth/refresh   → authHandler.Refresh
//	POST   /todos          → todoHandler.Create   (bearer token required)
//	GET    /todos          → todoHandler.List     (bearer token required)
//	GET    /todos/{id}     → todoHandler.FindOne  (bearer token required)
//	PATCH  /todos/{id}     → todoHandler.Update   (bearer token required)
//	DELETE /todos/{id}     → todoHandler.Remove   (bearer token required)
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	logger logging.Logger,
	accessSecret []byte,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json (bodyless
	// requests pass through)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(WithRequestLogging(logger))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", authHandler.SignUp)
		r.Post("/sign-in", authHandler.SignIn)
		r.Post("/refresh", authHandler.Refresh)
	})

	r.Route("/todos", func(r chi.Router) {
		r.Use(BearerAuth(accessSecret, logger))
		r.Post("/", todoHandler.Create)
		r.Get("/", todoHandler.List)
		r.Get("/{id}", todoHandler.FindOne)
		r.Patch("/{id}", todoHandler.Update)
		r.Delete("/{id}", todoHandler.Remove)
	})

	return r
}
