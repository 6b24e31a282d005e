package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	pool := TestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, pool))

	for _, table := range []string{"users", "expenses"} {
		var exists bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_name = $1
			)
		`, table).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists, "table %s should exist", table)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	pool := TestDB(t)
	ctx := context.Background()

	require.NoError(t, RunMigrations(ctx, pool))
	require.NoError(t, RunMigrations(ctx, pool))

	var count int
	err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	require.NoError(t, err)
}

func TestMigrations_SchemaDetails(t *testing.T) {
	pool := TestDB(t)
	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, pool))

	columnType := func(t *testing.T, table, column string) string {
		t.Helper()
		var dataType string
		err := pool.QueryRow(ctx, `
			SELECT data_type FROM information_schema.columns
			WHERE table_name = $1 AND column_name = $2
		`, table, column).Scan(&dataType)
		require.NoError(t, err)
		return dataType
	}

	t.Run("users columns", func(t *testing.T) {
		require.Equal(t, "text", columnType(t, "users", "id"))
		require.Equal(t, "text", columnType(t, "users", "username"))
		require.Equal(t, "text", columnType(t, "users", "password_hash"))
		require.Equal(t, "timestamp with time zone", columnType(t, "users", "created_at"))
	})

	t.Run("expenses columns", func(t *testing.T) {
		require.Equal(t, "numeric", columnType(t, "expenses", "amount"))
		require.Equal(t, "timestamp with time zone", columnType(t, "expenses", "date"))
		require.Equal(t, "text", columnType(t, "expenses", "category"))
	})

	t.Run("usernames are unique", func(t *testing.T) {
		var unique bool
		err := pool.QueryRow(ctx, `
			SELECT indisunique FROM pg_index
			WHERE indexrelid = 'users_username_key'::regclass
		`).Scan(&unique)
		require.NoError(t, err)
		require.True(t, unique)

		var indexes []string
		rows, err := pool.Query(ctx, `SELECT indexname FROM pg_indexes WHERE tablename = 'users' ORDER BY indexname`)
		require.NoError(t, err)
		defer rows.Close()
		for rows.Next() {
			var name string
			require.NoError(t, rows.Scan(&name))
			indexes = append(indexes, name)
		}
		require.NoError(t, rows.Err())
		require.Equal(t, []string{"users_pkey", "users_username_key"}, indexes)
	})

	t.Run("migration history has no gaps", func(t *testing.T) {
		var version int
		var dirty bool
		require.NoError(t, pool.QueryRow(ctx, "SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty))
		require.Equal(t, 2, version)
		require.False(t, dirty)
	})

	t.Run("expenses reference users", func(t *testing.T) {
		var exists bool
		err := pool.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT FROM information_schema.table_constraints
				WHERE table_name = 'expenses'
				AND constraint_type = 'FOREIGN KEY'
			)
		`).Scan(&exists)
		require.NoError(t, err)
		require.True(t, exists)
	})
}

func TestCleanupTables_WithData(t *testing.T) {
	pool := TestDB(t)
	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, pool))
	CleanupTables(t, pool)

	_, err := pool.Exec(ctx,
		"INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)",
		"6f1c1f0e-8b0a-4c39-9f2b-0f5f8d7c0a11", "cleanup-user", "hash")
	require.NoError(t, err)

	CleanupTables(t, pool)

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&count))
	require.Equal(t, 0, count)
}
