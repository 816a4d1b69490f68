package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

const minPasswordLength = 6

// AuthService is the authentication workflow consumed by AuthHandler.
type AuthService interface {
	SignUp(ctx context.Context, email, name, lastName, password string) (*models.User, *services.TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// AuthHandler handles HTTP requests for sign-up, sign-in, and token refresh.
type AuthHandler struct {
	service AuthService
	logger  logging.Logger
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(service AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger.With("module", "auth_handler")}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	User         models.PublicUser `json:"user"`
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (req *signUpRequest) validate() []*common.ValidationError {
	var errs []*common.ValidationError
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		errs = append(errs, common.NewValidationError("email", "must be a valid email address"))
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, common.NewValidationError("name", "must not be empty"))
	}
	if strings.TrimSpace(req.LastName) == "" {
		errs = append(errs, common.NewValidationError("lastName", "must not be empty"))
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, common.NewValidationError("password", "must be at least 6 characters"))
	}
	return errs
}

// SignUp handles POST /auth/sign-up.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, []*common.ValidationError{
			common.NewValidationError("body", "must be valid JSON"),
		})
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	user, pair, err := h.service.SignUp(r.Context(), req.Email, req.Name, req.LastName, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "sign-up failed", "reason", err.Error())
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user signed up", "user_id", user.ID)
	writeJSON(w, http.StatusOK, sessionResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// SignIn handles POST /auth/sign-in.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationErrors(w, []*common.ValidationError{
			common.NewValidationError("body", "must be valid JSON"),
		})
		return
	}

	user, pair, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user signed in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, sessionResponse{
		User:         user.Public(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh handles POST /auth/refresh. An absent or empty token is a 400
// before any token parsing happens.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeValidationErrors(w, []*common.ValidationError{
			common.NewValidationError("refreshToken", "must not be empty"),
		})
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
