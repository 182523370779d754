package queries

import (
	"context"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBookingNotFound = errs.New("booking not found")

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	ListByStatus(ctx context.Context, status *string) ([]*BookingListItem, error)
	HistoryByBookingID(ctx context.Context, bookingID int64) ([]HistoryEntryView, error)
}

type BookingQueries interface {
	// GetByID scopes to the acting user: a booking that exists but belongs
	// to someone else reads as not found for non-admins.
	GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id int64) (*BookingView, error)
	// GetByIDSystem is the unscoped read used after a command commits.
	GetByIDSystem(ctx context.Context, id int64) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error)
	ListByStatus(ctx context.Context, status *string) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id int64) (*BookingView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && view.UserID != actorID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id int64) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	history, err := q.store.HistoryByBookingID(ctx, id)
	if err != nil {
		return nil, err
	}
	view.History = history

	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingListItem, error) {
	return q.store.ListByUser(ctx, userID)
}

func (q *bookingQueriesImpl) ListByStatus(ctx context.Context, status *string) ([]*BookingListItem, error) {
	return q.store.ListByStatus(ctx, status)
}
