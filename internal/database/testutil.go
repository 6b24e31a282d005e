package database

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration helpers. All of them skip the calling test unless
// TEST_DATABASE_URL points at a disposable PostgreSQL database.

var (
	sharedPool     *pgxpool.Pool
	sharedPoolOnce sync.Once
	sharedPoolErr  error
)

func testDatabaseURL(t *testing.T) string {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	return dbURL
}

// TestDB opens a private pool with migrations applied. It is closed when the test ends.
func TestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()
	pool, err := Connect(ctx, testDatabaseURL(t))
	if err != nil {
		t.Fatalf("connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := RunMigrations(ctx, pool); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return pool
}

// TestPool returns a pool shared by every test in the package binary.
// Migrations run once, on first use.
func TestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := testDatabaseURL(t)
	sharedPoolOnce.Do(func() {
		ctx := context.Background()
		sharedPool, sharedPoolErr = Connect(ctx, dbURL)
		if sharedPoolErr != nil {
			return
		}
		sharedPoolErr = RunMigrations(ctx, sharedPool)
	})
	if sharedPoolErr != nil {
		t.Fatalf("set up shared test database: %v", sharedPoolErr)
	}
	return sharedPool
}

// TestTx returns a transaction on the shared pool that is rolled back when
// the test ends, so tests need no cleanup and may run in parallel.
//
//	tx := database.TestTx(t)
//	users := repository.NewUserRepository(tx)
//	expenses := repository.NewExpenseRepository(tx, time.UTC)
//
// A statement that fails inside the transaction aborts it. Tests that expect
// a constraint violation should use TestPool and CleanupTables instead.
func TestTx(t *testing.T) PGXDB {
	t.Helper()

	tx, err := TestPool(t).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin test transaction: %v", err)
	}
	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

// CleanupTables deletes every row, children before parents.
func CleanupTables(t *testing.T, db PGXDB) {
	t.Helper()

	for _, table := range []string{"expenses", "users"} {
		if _, err := db.Exec(context.Background(), "DELETE FROM "+table); err != nil {
			t.Fatalf("clean table %s: %v", table, err)
		}
	}
}
