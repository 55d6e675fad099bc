//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the slice of pgxpool.Pool these fixtures need.
type DBLike interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ServiceIDByTitle looks up a seeded catalog service by its display title.
func ServiceIDByTitle(t *testing.T, db DBLike, title string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM services WHERE title = $1", title).Scan(&id)
	require.NoError(t, err)
	return id
}

func OrderStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM orders WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func OrderNotificationFailed(t *testing.T, db DBLike, id uuid.UUID) bool {
	t.Helper()

	var failed bool
	err := db.QueryRow(context.Background(), "SELECT notification_failed FROM orders WHERE id = $1", id).Scan(&failed)
	require.NoError(t, err)
	return failed
}

// ResetOrders clears order rows between subtests. Seeded services and the
// provisioned admin account stay in place.
func ResetOrders(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE orders")
	return err
}
