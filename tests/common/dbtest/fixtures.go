//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both a pool and a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CountReservations counts a court's reservations on a date, optionally by status.
func CountReservations(t *testing.T, db DBLike, courtID uuid.UUID, date string, status string) int {
	t.Helper()

	sql := "SELECT count(*) FROM reservations WHERE court_id = $1 AND date = $2::date"
	args := []any{courtID, date}
	if status != "" {
		sql += " AND status = $3"
		args = append(args, status)
	}

	var n int
	err := db.QueryRow(context.Background(), sql, args...).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountQueuedJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1 AND status = 'queued'", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// BackdateReservation moves a reservation onto an earlier date so sweeps can see it as elapsed.
func BackdateReservation(t *testing.T, db DBLike, id uuid.UUID, date string) {
	t.Helper()

	tag, err := db.Exec(context.Background(), "UPDATE reservations SET date = $2::date WHERE id = $1", id, date)
	require.NoError(t, err)
	require.EqualValues(t, 1, tag.RowsAffected())
}

var (
	truncateMu  sync.Mutex
	truncateSQL string
)

// ResetDB empties every application table. The table list is read once per
// process, after migrations have run.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt, err := truncateStatement(ctx, pool)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, stmt)
	return err
}

func truncateStatement(ctx context.Context, pool *pgxpool.Pool) (string, error) {
	truncateMu.Lock()
	defer truncateMu.Unlock()
	if truncateSQL != "" {
		return truncateSQL, nil
	}

	rows, err := pool.Query(ctx, `
		SELECT quote_ident(tablename)
		FROM pg_tables
		WHERE schemaname = 'public' AND tablename <> 'schema_migrations'
		ORDER BY tablename`)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables found; were migrations applied?")
	}

	truncateSQL = "TRUNCATE " + strings.Join(tables, ", ") + " CASCADE"
	return truncateSQL, nil
}
