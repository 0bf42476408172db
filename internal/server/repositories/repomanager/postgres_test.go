package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := NewPostgresRepositoryManager()

	var _ users.Repository = m.Users(db)
	var _ todos.Repository = m.Todos(db)
	require.IsType(t, &users.PostgresRepository{}, m.Users(db))
	require.IsType(t, &todos.PostgresRepository{}, m.Todos(db))
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	require.NoError(t, m.RunMigrations(context.Background(), db))
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	err := m.RunMigrations(context.Background(), db)
	require.ErrorContains(t, err, "apply migrations: boom")
}

func TestOpen(t *testing.T) {
	t.Run("ping ok", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectPing()

		orig := sqlOpen
		sqlOpen = func(driver, dsn string) (*sql.DB, error) {
			require.Equal(t, "pgx", driver)
			return db, nil
		}
		defer func() { sqlOpen = orig }()

		got, err := Open(context.Background(), "postgres://x", time.Second)
		require.NoError(t, err)
		require.Same(t, db, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping fails", func(t *testing.T) {
		db, mock := newDB(t)
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		mock.ExpectClose()

		orig := sqlOpen
		sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
		defer func() { sqlOpen = orig }()

		_, err := Open(context.Background(), "postgres://x", time.Second)
		require.ErrorContains(t, err, "db ping error: refused")
	})

	t.Run("open fails", func(t *testing.T) {
		orig := sqlOpen
		sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }
		defer func() { sqlOpen = orig }()

		_, err := Open(context.Background(), "::", time.Second)
		require.ErrorContains(t, err, "db open error: bad dsn")
	})
}
