package commands

import (
	"context"
	"errors"
	"time"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/domain/room"
	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/pkg/clock"
	"hotel-booking-service/internal/pkg/errs"
	"hotel-booking-service/internal/usecase/queries"
	"hotel-booking-service/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound              = errs.New("room not found")
	ErrBookingNotFound           = errs.New("booking not found")
	ErrInvalidDateRange          = errs.New("invalid date range")
	ErrCapacityExceeded          = errs.New("guest count exceeds room capacity")
	ErrRoomUnavailable           = errs.New("room is not available for the requested dates")
	ErrAlreadyCancelled          = errs.New("booking is already cancelled")
	ErrCannotCancelConfirmed     = errs.New("confirmed booking cannot be cancelled by guest")
	ErrCancellationWindowExpired = errs.New("cancellation window has expired")
	ErrInvalidStatusTransition   = errs.New("invalid booking status transition")
	ErrStatusNotConfigured       = errs.New("required booking status is not configured")
	ErrDomainValidation          = errs.New("domain validation error")
	ErrDatabaseOperationFailed   = errs.New("database operation failed")
)

const (
	noteCreatedByGuest   = "created by guest"
	noteConfirmedByAdmin = "confirmed by admin"
	noteCompletedByAdmin = "completed by admin"
	noteCancelledByGuest = "cancelled by guest"
	noteCancelledByAdmin = "cancelled by admin"

	pendingPaymentStatusName = "Pending"
)

type CreateBookingInput struct {
	RoomID        int64
	UserID        uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	DiscountCents int64
}

type BulkResult struct {
	UpdatedIDs []int64
	Status     string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error)
	ConfirmBooking(ctx context.Context, bookingID int64, actorID uuid.UUID) (*queries.BookingView, error)
	CompleteBooking(ctx context.Context, bookingID int64, actorID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID int64, actorID uuid.UUID, isAdmin bool) (*queries.BookingView, error)
	BulkConfirm(ctx context.Context, bookingIDs []int64, actorID uuid.UUID) (*BulkResult, error)
	BulkCancel(ctx context.Context, bookingIDs []int64, actorID uuid.UUID) (*BulkResult, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

// CreateBooking validates room, dates, and capacity, then re-checks
// availability inside the same transaction that inserts the booking, its
// creation history row, and the optional pending payment. All writes
// commit together or not at all.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*queries.BookingView, error) {
	roomSnap, err := c.uow.CommandReads().RoomByID(ctx, in.RoomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	stay, err := booking.NewStayPeriod(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, ErrInvalidDateRange
	}

	roomEntity, err := room.NewRoom(roomSnap.ID, roomSnap.Name, roomSnap.RoomType, roomSnap.PriceCents, roomSnap.Capacity, roomSnap.IsAvailable)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	discount, err := booking.NewMoney(in.DiscountCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	entity, err := booking.NewBooking(roomEntity, in.UserID, stay, in.Guests, discount, c.clock.Now())
	if err != nil {
		if errors.Is(err, booking.ErrCapacityExceeded) || errors.Is(err, booking.ErrInvalidGuestCount) {
			return nil, errs.Mark(err, ErrCapacityExceeded)
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID int64
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		available, err := roomAvailable(ctx, tx.Reads(), in.RoomID, stay)
		if err != nil {
			return err
		}
		if !available {
			return ErrRoomUnavailable
		}

		initial, err := c.initialStatus(ctx, tx.Reads())
		if err != nil {
			return err
		}

		bookingID, err = tx.Bookings().Create(ctx, tx.DB(), entity, initial.ID)
		if err != nil {
			// Two racing creators: the loser hits the overlap constraint.
			if infra.IsKind(err, infra.KindConflict) {
				return ErrRoomUnavailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		err = tx.History().Append(ctx, tx.DB(), shared.HistoryRecord{
			BookingID:  bookingID,
			ToStatusID: initial.ID,
			ChangedBy:  &in.UserID,
			Note:       noteCreatedByGuest,
			ChangedAt:  c.clock.Now(),
		})
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.createPendingPayment(ctx, tx, bookingID, entity.Total().Cents())
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// initialStatus prefers the Pending row, falling back to the first active
// status row. A fully empty reference table is a configuration error.
func (c *bookingCommandsImpl) initialStatus(ctx context.Context, reads shared.CommandReads) (*shared.StatusRef, error) {
	initial, err := reads.BookingStatusByName(ctx, booking.StatusPending)
	if err == nil {
		return initial, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	initial, err = reads.FirstBookingStatus(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStatusNotConfigured
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return initial, nil
}

// createPendingPayment records local bookkeeping only; a missing pending
// payment status means the deployment does not track payments, not an error.
func (c *bookingCommandsImpl) createPendingPayment(ctx context.Context, tx shared.Tx, bookingID int64, amountCents int64) error {
	payStatus, err := tx.Reads().PaymentStatusByName(ctx, pendingPaymentStatusName)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Payments().Create(ctx, tx.DB(), bookingID, amountCents, payStatus.ID, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *bookingCommandsImpl) ConfirmBooking(ctx context.Context, bookingID int64, actorID uuid.UUID) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return c.confirmInTx(ctx, tx, bookingID, actorID)
	})
	if err != nil {
		return nil, err
	}
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) confirmInTx(ctx context.Context, tx shared.Tx, bookingID int64, actorID uuid.UUID) error {
	snap, err := c.snapshot(ctx, tx, bookingID)
	if err != nil {
		return err
	}

	if !snap.StatusName.CanTransitionTo(booking.StatusConfirmed) {
		return ErrInvalidStatusTransition
	}

	confirmed, err := c.requiredStatus(ctx, tx.Reads(), booking.StatusConfirmed)
	if err != nil {
		return err
	}

	if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, confirmed.ID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return c.appendTransition(ctx, tx, snap, confirmed.ID, &actorID, noteConfirmedByAdmin)
}

func (c *bookingCommandsImpl) CompleteBooking(ctx context.Context, bookingID int64, actorID uuid.UUID) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.snapshot(ctx, tx, bookingID)
		if err != nil {
			return err
		}

		if !snap.StatusName.CanTransitionTo(booking.StatusCompleted) {
			return ErrInvalidStatusTransition
		}

		completed, err := c.requiredStatus(ctx, tx.Reads(), booking.StatusCompleted)
		if err != nil {
			return err
		}

		if err := tx.Bookings().MarkCompleted(ctx, tx.DB(), bookingID, completed.ID, c.clock.Now()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return c.appendTransition(ctx, tx, snap, completed.ID, &actorID, noteCompletedByAdmin)
	})
	if err != nil {
		return nil, err
	}
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// CancelBooking applies the cancellation policy for the acting party.
// Guests may only touch their own bookings; someone else's booking reads
// as not found rather than leaking its existence.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID int64, actorID uuid.UUID, isAdmin bool) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return c.cancelInTx(ctx, tx, bookingID, actorID, isAdmin)
	})
	if err != nil {
		return nil, err
	}
	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) cancelInTx(ctx context.Context, tx shared.Tx, bookingID int64, actorID uuid.UUID, isAdmin bool) error {
	snap, err := c.snapshot(ctx, tx, bookingID)
	if err != nil {
		return err
	}

	if !isAdmin && snap.UserID != actorID {
		return ErrBookingNotFound
	}

	policyErr := booking.AuthorizeCancel(snap.StatusName, snap.CheckIn, c.clock.Now(), booking.CancelActor{IsAdmin: isAdmin})
	if policyErr != nil {
		return mapPolicyErr(policyErr)
	}

	cancelled, err := c.requiredStatus(ctx, tx.Reads(), booking.StatusCancelled)
	if err != nil {
		return err
	}

	if err := tx.Bookings().MarkCancelled(ctx, tx.DB(), bookingID, cancelled.ID); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	note := noteCancelledByGuest
	if isAdmin {
		note = noteCancelledByAdmin
	}
	return c.appendTransition(ctx, tx, snap, cancelled.ID, &actorID, note)
}

// BulkConfirm confirms every Pending booking in the list within one
// transaction. Bookings that cannot take the transition are skipped; any
// storage failure rolls back the whole batch.
func (c *bookingCommandsImpl) BulkConfirm(ctx context.Context, bookingIDs []int64, actorID uuid.UUID) (*BulkResult, error) {
	result := &BulkResult{UpdatedIDs: []int64{}}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		confirmed, err := c.requiredStatus(ctx, tx.Reads(), booking.StatusConfirmed)
		if err != nil {
			return err
		}
		result.Status = confirmed.Name

		for _, id := range bookingIDs {
			err := c.confirmInTx(ctx, tx, id, actorID)
			if err != nil {
				if isSkippableBulkErr(err) {
					continue
				}
				return err
			}
			result.UpdatedIDs = append(result.UpdatedIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkCancel is the admin batch path: the admin cancellation policy runs
// per booking, policy rejections are skipped, storage failures roll back
// the whole batch.
func (c *bookingCommandsImpl) BulkCancel(ctx context.Context, bookingIDs []int64, actorID uuid.UUID) (*BulkResult, error) {
	result := &BulkResult{UpdatedIDs: []int64{}}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled, err := c.requiredStatus(ctx, tx.Reads(), booking.StatusCancelled)
		if err != nil {
			return err
		}
		result.Status = cancelled.Name

		for _, id := range bookingIDs {
			err := c.cancelInTx(ctx, tx, id, actorID, true)
			if err != nil {
				if isSkippableBulkErr(err) {
					continue
				}
				return err
			}
			result.UpdatedIDs = append(result.UpdatedIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *bookingCommandsImpl) snapshot(ctx context.Context, tx shared.Tx, bookingID int64) (*shared.BookingSnapshot, error) {
	snap, err := tx.Reads().BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, nil
}

// requiredStatus treats a missing named status row as missing seed data:
// an operator problem, never a user input problem.
func (c *bookingCommandsImpl) requiredStatus(ctx context.Context, reads shared.CommandReads, name booking.StatusName) (*shared.StatusRef, error) {
	ref, err := reads.BookingStatusByName(ctx, name)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrStatusNotConfigured)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return ref, nil
}

func (c *bookingCommandsImpl) appendTransition(ctx context.Context, tx shared.Tx, snap *shared.BookingSnapshot, toStatusID int64, actorID *uuid.UUID, note string) error {
	fromID := snap.StatusID
	err := tx.History().Append(ctx, tx.DB(), shared.HistoryRecord{
		BookingID:    snap.ID,
		FromStatusID: &fromID,
		ToStatusID:   toStatusID,
		ChangedBy:    actorID,
		Note:         note,
		ChangedAt:    c.clock.Now(),
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func mapPolicyErr(err error) error {
	switch {
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return ErrAlreadyCancelled
	case errors.Is(err, booking.ErrCannotCancelConfirmed):
		return ErrCannotCancelConfirmed
	case errors.Is(err, booking.ErrCancellationWindowExpired):
		return ErrCancellationWindowExpired
	case errors.Is(err, booking.ErrInvalidStatusTransition):
		return ErrInvalidStatusTransition
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

// isSkippableBulkErr: per-item policy rejections do not poison the batch.
func isSkippableBulkErr(err error) bool {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrAlreadyCancelled),
		errors.Is(err, ErrCannotCancelConfirmed),
		errors.Is(err, ErrCancellationWindowExpired),
		errors.Is(err, ErrInvalidStatusTransition):
		return true
	default:
		return false
	}
}
