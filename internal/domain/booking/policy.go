package booking

import "time"

// CancellationGracePeriod is the minimum time before check-in at which a
// Confirmed booking may still be cancelled. It binds admins too: an
// operationally committed stay inside the window cannot be rolled back by
// anyone through this path.
const CancellationGracePeriod = 24 * time.Hour

// CancelActor describes who is requesting a cancellation.
type CancelActor struct {
	IsAdmin bool
}

// AuthorizeCancel decides whether the actor may cancel a booking in the
// given status with the given check-in, at time now.
//
//   - Cancelled bookings fail with ErrAlreadyCancelled, always.
//   - Completed bookings cannot change status at all.
//   - Pending: guests may cancel while check-in is still in the future;
//     admins may cancel any time.
//   - Confirmed: both guests and admins need more than 24 hours before
//     check-in. Inside the window a guest is told the booking is committed
//     (ErrCannotCancelConfirmed); an admin, who is otherwise allowed to
//     touch confirmed bookings, is told the window has expired.
func AuthorizeCancel(status StatusName, checkIn time.Time, now time.Time, actor CancelActor) error {
	switch status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrInvalidStatusTransition
	case StatusPending:
		if actor.IsAdmin {
			return nil
		}
		if !checkIn.After(now) {
			return ErrCancellationWindowExpired
		}
		return nil
	case StatusConfirmed:
		if checkIn.After(now.Add(CancellationGracePeriod)) {
			return nil
		}
		if actor.IsAdmin {
			return ErrCancellationWindowExpired
		}
		return ErrCannotCancelConfirmed
	default:
		return ErrInvalidStatusTransition
	}
}
