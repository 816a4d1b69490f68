// Package services contains server-side business logic. This file implements
// UserService: sign-up, sign-in, and refresh-token rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService provides the authentication workflow:
//   - SignUp: create a user and issue the first token pair
//   - SignIn: verify credentials and mint a fresh pair
//   - Refresh: rotate the refresh token and mint a new pair
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		accessSecret:                 []byte(cfg.AccessTokenSecret),
		refreshSecret:                []byte(cfg.RefreshTokenSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp normalizes the inputs, creates the user, and issues the first token
// pair. A taken email yields common.ErrorAlreadyExists; the pre-check via
// GetByEmail is an optimization only, the unique index reported through
// Create is authoritative.
func (s *UserService) SignUp(ctx context.Context, email, name, lastName, password string) (*models.User, *TokenPair, error) {
	email = common.Normalize(email)
	name = common.Normalize(name)
	lastName = common.Normalize(lastName)

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, nil, common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, nil, common.ErrorInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		LastName:     lastName,
		PasswordHash: hash,
	}

	var pair *TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)
		created, err := repoTx.Create(ctx, user)
		if err != nil {
			return err
		}
		pair, err = s.generateTokenPair(created)
		if err != nil {
			return err
		}
		user.RefreshToken = pair.RefreshToken
		return repoTx.SetRefreshToken(ctx, created.ID, pair.RefreshToken)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, pair, nil
}

// SignIn verifies the credentials and, on success, stores and returns a new
// token pair. A missing user and a wrong password produce the same
// common.ErrorUnauthorized, so responses carry no enumeration signal.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = common.Normalize(email)

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	if err := repo.SetRefreshToken(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, nil, common.ErrorInternal
	}
	user.RefreshToken = pair.RefreshToken

	return user, pair, nil
}

// Refresh validates the presented refresh token, rotates it, and returns a
// fresh pair. Bad signature, expiry, a missing user, and a stale (already
// rotated) token all collapse into common.ErrorUnauthorized so that callers
// gain no distinguishing oracle. The rotation itself is a conditional swap
// keyed on the presented token, so of two concurrent refreshes on the same
// stale value only one can succeed.
func (s *UserService) Refresh(ctx context.Context, presented string) (*TokenPair, error) {
	claims, err := auth.ParseToken(presented, s.refreshSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	// only the single most recently issued refresh token is ever accepted
	if user.RefreshToken != presented {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := repo.SwapRefreshToken(ctx, user.ID, presented, pair.RefreshToken); err != nil {
		if errors.Is(err, common.ErrorTokenMismatch) {
			// lost the race against a concurrent rotation
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	return pair, nil
}

func (s *UserService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateToken(user.ID, user.Email, s.refreshSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
