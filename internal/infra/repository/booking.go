package repository

import (
	"context"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (room_id, user_id, booking_status_id, check_in, check_out, guests, total_cents, stay, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, daterange($4, $5, '[)'), $8)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, conn db.DBTX, b *booking.Booking, statusID int64) (int64, error) {
	var id int64
	err := conn.QueryRow(ctx, createBookingSQL,
		b.RoomID(),
		b.UserID(),
		statusID,
		b.Stay().CheckIn(),
		b.Stay().CheckOut(),
		b.Guests(),
		b.Total().Cents(),
		b.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, conn db.DBTX, bookingID, statusID int64) error {
	tag, err := conn.Exec(ctx,
		`UPDATE bookings SET booking_status_id = $2 WHERE id = $1`,
		bookingID, statusID)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// MarkCancelled rewrites stay to empty so the exclusion constraint no
// longer guards the slot: a cancelled booking frees its dates.
func (r *BookingRepository) MarkCancelled(ctx context.Context, conn db.DBTX, bookingID, statusID int64) error {
	tag, err := conn.Exec(ctx,
		`UPDATE bookings SET booking_status_id = $2, stay = 'empty'::daterange WHERE id = $1`,
		bookingID, statusID)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) MarkCompleted(ctx context.Context, conn db.DBTX, bookingID, statusID int64, completedAt time.Time) error {
	tag, err := conn.Exec(ctx,
		`UPDATE bookings SET booking_status_id = $2, completed_at = $3 WHERE id = $1`,
		bookingID, statusID, completedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to complete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
