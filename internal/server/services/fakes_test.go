package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/config"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

const testSecret = "test-secret"

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
		StoreTimeout:          time.Second,
		DefaultTodoTask:       config.DefaultTodoTask,
	}
}

func newTestUserService(db *sql.DB, rm *fakeRepoManager) *UserService {
	cfg := testConfig()
	return NewUserService(db, rm,
		auth.NewIssuer(cfg.SecretKey, cfg.TokenValidityDuration),
		auth.NewBcryptHasher(bcrypt.MinCost, 4),
		cfg, logging.Nop{})
}

// --- fakes ---

type memUsers struct {
	mu     sync.Mutex
	byName map[string]*models.User

	createErr error
	getErr    error
	idErr     error
	// block makes GetUserByLogin wait for ctx to end.
	block bool
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]*models.User{}}
}

func (m *memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	stored := *u
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	m.byName[u.UserName] = &stored
	out := stored
	return &out, nil
}

func (m *memUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.block {
		<-ctx.Done()
		return nil, errors.Join(errors.New("db error"), ctx.Err())
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if m.idErr != nil {
		return nil, m.idErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byName {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byName)
}

type memTodos struct {
	mu     sync.Mutex
	items  []*models.Todo
	nextID int64

	createErr error
	listErr   error
}

func (m *memTodos) Create(_ context.Context, t *models.Todo) (*models.Todo, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	stored := *t
	stored.ID = m.nextID
	m.items = append(m.items, &stored)
	out := stored
	return &out, nil
}

func (m *memTodos) ListByUser(_ context.Context, userID string) ([]*models.Todo, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Todo{}
	for _, t := range m.items {
		if t.UserID == userID {
			c := *t
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeRepoManager struct {
	u *memUsers
	t *memTodos
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newMemUsers(), t: &memTodos{}}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return m.u }
func (m *fakeRepoManager) Todos(dbx.DBTX) todos.Repository             { return m.t }
