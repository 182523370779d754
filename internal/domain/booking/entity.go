package booking

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking-service/internal/domain/room"

	"github.com/google/uuid"
)

var (
	ErrInvalidDateRange          = errors.New("check-out must be after check-in")
	ErrCapacityExceeded          = errors.New("guest count exceeds room capacity")
	ErrInvalidGuestCount         = errors.New("guest count must be at least one")
	ErrNegativePrice             = errors.New("price cannot be negative")
	ErrAlreadyCancelled          = errors.New("booking is already cancelled")
	ErrCannotCancelConfirmed     = errors.New("confirmed booking cannot be cancelled by guest")
	ErrCancellationWindowExpired = errors.New("cancellation window has expired")
	ErrInvalidStatusTransition   = errors.New("invalid booking status transition")
)

// BookingNumberPrefix + zero-padded id is the human-readable booking number.
const BookingNumberPrefix = "BK"

// Booking is a reservation of one room by one user for a stay period.
// Bookings are never deleted; cancellation is a status change.
type Booking struct {
	id        int64
	roomID    int64
	userID    uuid.UUID
	stay      StayPeriod
	guests    int
	quote     Quote
	status    StatusName
	createdAt time.Time
}

// NewBooking validates guest count against the room and prices the stay.
// The id stays zero until the storage layer assigns one.
func NewBooking(r *room.Room, userID uuid.UUID, stay StayPeriod, guests int, discount Money, now time.Time) (*Booking, error) {
	if guests < 1 {
		return nil, ErrInvalidGuestCount
	}
	if guests > r.Capacity() {
		return nil, ErrCapacityExceeded
	}

	pricePerNight := MustMoney(r.PriceCents())
	quote := ComputeQuote(pricePerNight, stay, discount)

	return &Booking{
		roomID:    r.ID(),
		userID:    userID,
		stay:      stay,
		guests:    guests,
		quote:     quote,
		status:    StatusPending,
		createdAt: now,
	}, nil
}

func Reconstruct(
	id int64,
	roomID int64,
	userID uuid.UUID,
	stay StayPeriod,
	guests int,
	total Money,
	status StatusName,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		roomID:    roomID,
		userID:    userID,
		stay:      stay,
		guests:    guests,
		quote:     Quote{Total: total},
		status:    status,
		createdAt: createdAt,
	}
}

func (b *Booking) ID() int64           { return b.id }
func (b *Booking) RoomID() int64       { return b.roomID }
func (b *Booking) UserID() uuid.UUID   { return b.userID }
func (b *Booking) Stay() StayPeriod    { return b.stay }
func (b *Booking) Guests() int         { return b.guests }
func (b *Booking) Quote() Quote        { return b.quote }
func (b *Booking) Total() Money        { return b.quote.Total }
func (b *Booking) Status() StatusName  { return b.status }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

func (b *Booking) SetID(id int64) { b.id = id }

func (b *Booking) IsCancelled() bool {
	return b.status == StatusCancelled
}

// Number formats a stable id as a booking number, e.g. 42 -> BK000042.
func (b *Booking) Number() string {
	return FormatNumber(b.id)
}

func FormatNumber(id int64) string {
	return fmt.Sprintf("%s%06d", BookingNumberPrefix, id)
}
