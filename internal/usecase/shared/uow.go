package shared

import (
	"context"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork runs work against the store, with or without an explicit
// transaction. Every lifecycle mutation goes through Within so the
// availability re-check, the booking write, and the history append share
// one atomic unit.
type UnitOfWork interface {
	// Within: full transaction for write operations, retried on
	// serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single query operations using implicit transactions.
	WithDB(ctx context.Context, fn func(ctx context.Context, conn db.DBTX) error) error
	// CommandReads: validation reads outside a transaction.
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	History() HistoryRepository
	Payments() PaymentRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are the minimal lookups the command side needs. Snapshots
// carry reference-data ids so transitions never re-derive them from
// display strings.
type CommandReads interface {
	RoomByID(ctx context.Context, id int64) (*RoomSnapshot, error)
	BookingByID(ctx context.Context, id int64) (*BookingSnapshot, error)
	BookingStatusByName(ctx context.Context, name booking.StatusName) (*StatusRef, error)
	FirstBookingStatus(ctx context.Context) (*StatusRef, error)
	PaymentStatusByName(ctx context.Context, name string) (*StatusRef, error)
	// CountOverlapping counts non-cancelled bookings for the room whose
	// stay overlaps [checkIn, checkOut). excludeStatusID is nil when the
	// Cancelled reference row is missing; no booking is excluded then.
	CountOverlapping(ctx context.Context, roomID int64, checkIn, checkOut time.Time, excludeStatusID *int64) (int64, error)
}

type RoomSnapshot struct {
	ID          int64
	Name        string
	RoomType    string
	PriceCents  int64
	Capacity    int
	IsAvailable bool
}

type BookingSnapshot struct {
	ID         int64
	RoomID     int64
	UserID     uuid.UUID
	StatusID   int64
	StatusName booking.StatusName
	CheckIn    time.Time
	CheckOut   time.Time
	TotalCents int64
}

type StatusRef struct {
	ID   int64
	Name string
}

type BookingRepository interface {
	Create(ctx context.Context, conn db.DBTX, b *booking.Booking, statusID int64) (int64, error)
	UpdateStatus(ctx context.Context, conn db.DBTX, bookingID, statusID int64) error
	// MarkCancelled also empties the stay range so the overlap constraint
	// releases the slot.
	MarkCancelled(ctx context.Context, conn db.DBTX, bookingID, statusID int64) error
	MarkCompleted(ctx context.Context, conn db.DBTX, bookingID, statusID int64, completedAt time.Time) error
}

type HistoryRecord struct {
	BookingID    int64
	FromStatusID *int64
	ToStatusID   int64
	ChangedBy    *uuid.UUID
	Note         string
	ChangedAt    time.Time
}

// HistoryRepository is the append-only status ledger. It is only ever
// called inside the transaction that performs the mutation it records.
type HistoryRepository interface {
	Append(ctx context.Context, conn db.DBTX, rec HistoryRecord) error
}

type PaymentRepository interface {
	Create(ctx context.Context, conn db.DBTX, bookingID int64, amountCents int64, statusID int64, paymentDate time.Time) error
}
