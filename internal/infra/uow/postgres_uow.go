package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
	"hotel-booking-service/internal/infra/readstore"
	"hotel-booking-service/internal/infra/repository"
	"hotel-booking-service/internal/pkg/errs"
	"hotel-booking-service/internal/pkg/pgconv"
	"hotel-booking-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted is enough: the availability re-check and the insert share
// one transaction, and the exclusion constraint backstops racing writers.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, conn db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{conn: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{conn: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	conn db.DBTX

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	historyRepo  shared.HistoryRepository
	paymentRepo  shared.PaymentRepository
	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.conn
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository()
	}
	return t.bookingRepo
}

func (t *pgTx) History() shared.HistoryRepository {
	if t.historyRepo == nil {
		t.historyRepo = repository.NewHistoryRepository()
	}
	return t.historyRepo
}

func (t *pgTx) Payments() shared.PaymentRepository {
	if t.paymentRepo == nil {
		t.paymentRepo = repository.NewPaymentRepository()
	}
	return t.paymentRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{conn: t.conn}
	}
	return t.commandReads
}

type commandReads struct {
	conn db.DBTX
}

func (r *commandReads) RoomByID(ctx context.Context, id int64) (*shared.RoomSnapshot, error) {
	var snap shared.RoomSnapshot
	err := r.conn.QueryRow(ctx,
		`SELECT id, name, room_type, price_cents, capacity, is_available FROM rooms WHERE id = $1`,
		id).Scan(&snap.ID, &snap.Name, &snap.RoomType, &snap.PriceCents, &snap.Capacity, &snap.IsAvailable)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load room snapshot", err)
	}
	return &snap, nil
}

func (r *commandReads) BookingByID(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	var (
		snap     shared.BookingSnapshot
		status   string
		checkIn  pgtype.Date
		checkOut pgtype.Date
	)
	err := r.conn.QueryRow(ctx,
		`SELECT b.id, b.room_id, b.user_id, b.booking_status_id, s.name, b.check_in, b.check_out, b.total_cents
		 FROM bookings b
		 JOIN booking_statuses s ON s.id = b.booking_status_id
		 WHERE b.id = $1`,
		id).Scan(&snap.ID, &snap.RoomID, &snap.UserID, &snap.StatusID, &status, &checkIn, &checkOut, &snap.TotalCents)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err)
	}
	snap.StatusName = booking.StatusName(status)
	snap.CheckIn = pgconv.DateFromPgtype(checkIn)
	snap.CheckOut = pgconv.DateFromPgtype(checkOut)
	return &snap, nil
}

func (r *commandReads) BookingStatusByName(ctx context.Context, name booking.StatusName) (*shared.StatusRef, error) {
	return readstore.NewStatusReadStore(r.conn).BookingStatusByName(ctx, name.String())
}

func (r *commandReads) FirstBookingStatus(ctx context.Context) (*shared.StatusRef, error) {
	return readstore.NewStatusReadStore(r.conn).FirstBookingStatus(ctx)
}

func (r *commandReads) PaymentStatusByName(ctx context.Context, name string) (*shared.StatusRef, error) {
	return readstore.NewStatusReadStore(r.conn).PaymentStatusByName(ctx, name)
}

// CountOverlapping runs the half-open overlap predicate in SQL:
// a conflict exists iff new.checkIn < b.check_out AND new.checkOut > b.check_in.
// Touching boundaries produce no row.
func (r *commandReads) CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeStatusID *int64) (int64, error) {
	var (
		count int64
		err   error
	)
	if excludeStatusID != nil {
		err = r.conn.QueryRow(ctx,
			`SELECT count(*) FROM bookings
			 WHERE room_id = $1 AND booking_status_id <> $4 AND check_in < $3 AND check_out > $2`,
			roomID, checkIn, checkOut, *excludeStatusID).Scan(&count)
	} else {
		err = r.conn.QueryRow(ctx,
			`SELECT count(*) FROM bookings
			 WHERE room_id = $1 AND check_in < $3 AND check_out > $2`,
			roomID, checkIn, checkOut).Scan(&count)
	}
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return count, nil
}
