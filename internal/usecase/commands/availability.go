package commands

import (
	"context"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/pkg/errs"
	"hotel-booking-service/internal/usecase/shared"
)

// AvailabilityChecker answers whether a room can be booked for a date
// range. The same predicate runs in two places: here as an optimistic
// pre-check against the pool, and inside the creation transaction as the
// authoritative re-check.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error)
}

type availabilityCheckerImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityChecker(uow shared.UnitOfWork) AvailabilityChecker {
	return &availabilityCheckerImpl{uow: uow}
}

func (a *availabilityCheckerImpl) IsAvailable(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	stay, err := booking.NewStayPeriod(checkIn, checkOut)
	if err != nil {
		return false, ErrInvalidDateRange
	}
	return roomAvailable(ctx, a.uow.CommandReads(), roomID, stay)
}

// roomAvailable excludes Cancelled bookings from the overlap scan. If the
// Cancelled reference row is missing the lookup fails open: every booking
// counts. It never approves an overlap it can see.
func roomAvailable(ctx context.Context, reads shared.CommandReads, roomID int64, stay booking.StayPeriod) (bool, error) {
	var excludeStatusID *int64

	cancelled, err := reads.BookingStatusByName(ctx, booking.StatusCancelled)
	switch {
	case err == nil:
		excludeStatusID = &cancelled.ID
	case infra.IsKind(err, infra.KindNotFound):
		// fail open on the lookup only
	default:
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	count, err := reads.CountOverlapping(ctx, roomID, stay.CheckIn(), stay.CheckOut(), excludeStatusID)
	if err != nil {
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return count == 0, nil
}
