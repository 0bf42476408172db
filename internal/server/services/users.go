// Package services contains server-side business logic. UserService handles
// registration, login and token verification; TodoService reads todos.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenIssuer signs and verifies identity tokens.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

type UserService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	issuer       TokenIssuer
	hasher       auth.PasswordHasher
	logger       logging.Logger
	storeTimeout time.Duration
	defaultTodo  string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer TokenIssuer,
	hasher auth.PasswordHasher, cfg *config.Config, l logging.Logger) *UserService {

	defaultTodo := cfg.DefaultTodoTask
	if defaultTodo == "" {
		defaultTodo = config.DefaultTodoTask
	}

	return &UserService{
		db:           db,
		repomanager:  m,
		issuer:       issuer,
		hasher:       hasher,
		logger:       l.With("module", "user_service"),
		storeTimeout: cfg.StoreTimeout,
		defaultTodo:  defaultTodo,
	}
}

func (s *UserService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

// Register creates an account with a bcrypt hash of password, seeds its
// default todo and returns a token for it. The account, the todo and the
// token succeed or fail together.
func (s *UserService) Register(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			return "", err
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
		}
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", common.ErrorInternal
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	var token, userID string
	err = dbx.WithTx(storeCtx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repomanager.Users(tx).Create(ctx, &models.User{UserName: username, PasswordHash: hash})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		_, err = s.repomanager.Todos(tx).Create(ctx, &models.Todo{UserID: user.ID, Task: s.defaultTodo})
		if err != nil {
			return fmt.Errorf("error creating default todo: %w", err)
		}

		token, err = s.issuer.Issue(user.ID)
		if err != nil {
			if errors.Is(err, common.ErrorConfiguration) {
				return err
			}
			return fmt.Errorf("%w: issue token: %v", common.ErrorInternal, err)
		}

		userID = user.ID
		return nil
	})

	switch {
	case err == nil:
		s.logger.Info(ctx, "user registered", "user_id", userID, "username", username)
		return token, nil
	case errors.Is(err, common.ErrorAlreadyExists):
		s.logger.Warn(ctx, "username already taken", "username", username)
		return "", common.ErrorAlreadyExists
	case errors.Is(err, common.ErrorConfiguration):
		s.logger.Error(ctx, "token issuer misconfigured", "error", err)
		return "", err
	case errors.Is(err, common.ErrorInternal):
		s.logger.Error(ctx, "token issue failed", "username", username, "error", err)
		return "", common.ErrorInternal
	default:
		s.logger.Error(ctx, "register failed", "username", username, "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}
}

// Login checks password against the stored hash for username and returns a
// fresh token. An unknown username is common.ErrorNotFound; a wrong password
// is common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByLogin(storeCtx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "login for unknown user", "username", username)
			return "", common.ErrorNotFound
		}
		s.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
		}
		s.logger.Error(ctx, "password verification failed", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}
	if !ok {
		s.logger.Info(ctx, "invalid password", "user_id", user.ID)
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", user.ID, "error", err)
		if errors.Is(err, common.ErrorConfiguration) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return token, nil
}

// Authenticate verifies token and returns the account id it names. Tokens
// for accounts that no longer exist are rejected as invalid.
func (s *UserService) Authenticate(ctx context.Context, token string) (string, error) {
	userID, err := s.issuer.Verify(token)
	if err != nil {
		return "", err
	}

	if _, err := uuid.Parse(userID); err != nil {
		return "", fmt.Errorf("%w: subject is not an account id", common.ErrInvalidToken)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetUserByID(storeCtx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("%w: unknown account", common.ErrInvalidToken)
		}
		s.logger.Error(ctx, "account lookup failed", "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}

	return user.ID, nil
}
