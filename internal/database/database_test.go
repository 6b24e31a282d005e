package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("fails with invalid connection string", func(t *testing.T) {
		ctx := context.Background()
		pool, err := Connect(ctx, "invalid://connection")
		require.Error(t, err)
		require.Nil(t, pool)
	})

	t.Run("fails with unreachable host", func(t *testing.T) {
		ctx := context.Background()
		pool, err := Connect(ctx, "postgres://localhost:59999/nonexistent?connect_timeout=1")
		require.Error(t, err)
		require.Nil(t, pool)
	})

	t.Run("fails with expired context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		pool, err := Connect(ctx, "postgres://localhost:59999/nonexistent?connect_timeout=1", WithTracing())
		require.Error(t, err)
		require.Nil(t, pool)
	})

	t.Run("rejects malformed URLs", func(t *testing.T) {
		urls := map[string]string{
			"invalid port":  "postgres://localhost:notaport/test",
			"http protocol": "http://localhost:5432/test",
		}
		for name, url := range urls {
			t.Run(name, func(t *testing.T) {
				pool, err := Connect(context.Background(), url)
				require.Error(t, err)
				require.Nil(t, pool)
			})
		}
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	t.Run("database name overrides", func(t *testing.T) {
		t.Parallel()
		var o options
		WithDatabaseName("ledger")(&o)
		require.Equal(t, "ledger", o.databaseName)
	})

	t.Run("empty database name keeps previous value", func(t *testing.T) {
		t.Parallel()
		o := options{databaseName: "ledger"}
		WithDatabaseName("")(&o)
		require.Equal(t, "ledger", o.databaseName)
	})

	t.Run("tracing enabled", func(t *testing.T) {
		t.Parallel()
		var o options
		WithTracing()(&o)
		require.True(t, o.tracing)
	})
}

func TestConnect_WithValidConnection(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := Connect(ctx, dbURL, WithTracing())
	require.NoError(t, err)
	defer pool.Close()

	var n int
	require.NoError(t, pool.QueryRow(ctx, "SELECT 1").Scan(&n))
	require.Equal(t, 1, n)
}
