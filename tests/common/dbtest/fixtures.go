//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMye1VdLSHLtqJ5mBVv/xMDTGBpA5PxyUK2"

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (email) WHERE is_active DO NOTHING`,
		userID, email, testPasswordHash, "Test User", role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND is_active", email).Scan(&userID)
	}

	return userID
}

func CreateTestRoom(t *testing.T, db DBLike, name string, priceCents int64, capacity int) int64 {
	t.Helper()

	ctx := context.Background()
	var roomID int64
	err := db.QueryRow(ctx, `INSERT INTO rooms (name, room_type, price_cents, capacity, is_available)
		VALUES ($1, 'standard', $2, $3, true) RETURNING id`,
		name, priceCents, capacity).Scan(&roomID)
	require.NoError(t, err)

	return roomID
}

func CreateTestBooking(t *testing.T, db DBLike, roomID int64, userID uuid.UUID, checkIn, checkOut time.Time, status string) int64 {
	t.Helper()

	ctx := context.Background()
	var statusID int64
	err := db.QueryRow(ctx, "SELECT id FROM booking_statuses WHERE name = $1", status).Scan(&statusID)
	require.NoError(t, err)

	// Cancelled fixtures must not hold the exclusion slot, same as a real
	// cancellation emptying the stay range.
	var bookingID int64
	err = db.QueryRow(ctx, `INSERT INTO bookings
		(room_id, user_id, booking_status_id, check_in, check_out, guests, total_cents, stay)
		VALUES ($1, $2, $3, $4, $5, 1, 10000,
			CASE WHEN $6::text = 'Cancelled' THEN 'empty'::daterange ELSE daterange($4, $5, '[)') END)
		RETURNING id`,
		roomID, userID, statusID, checkIn, checkOut, status).Scan(&bookingID)
	require.NoError(t, err)

	return bookingID
}

// inserts the status reference rows bookings depend on
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO booking_statuses (name, description) VALUES
		    ('Pending', 'Awaiting confirmation'),
		    ('Confirmed', 'Confirmed by staff'),
		    ('Completed', 'Stay finished'),
		    ('Cancelled', 'Cancelled')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO payment_statuses (name, description) VALUES
		    ('Pending', 'Awaiting payment'),
		    ('Paid', 'Paid in full'),
		    ('Refunded', 'Refunded'),
		    ('Failed', 'Payment failed')
		ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
