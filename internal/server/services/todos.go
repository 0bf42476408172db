package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

type TodoService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	logger       logging.Logger
	storeTimeout time.Duration
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *TodoService {
	return &TodoService{
		db:           db,
		repomanager:  m,
		logger:       l.With("module", "todo_service"),
		storeTimeout: cfg.StoreTimeout,
	}
}

// List returns the todos owned by userID, oldest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	if s.storeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.storeTimeout)
		defer cancel()
	}

	items, err := s.repomanager.Todos(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "list todos failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorUnavailable, err)
	}

	return items, nil
}
