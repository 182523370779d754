package queries

import (
	"context"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/pkg/errs"
)

var ErrRoomNotFound = errs.New("room not found")

type RoomReadStore interface {
	FindByID(ctx context.Context, id int64) (*RoomView, error)
	List(ctx context.Context, filter RoomListFilter) ([]*RoomView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id int64) (*RoomView, error)
	List(ctx context.Context, filter RoomListFilter) ([]*RoomView, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id int64) (*RoomView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, filter RoomListFilter) ([]*RoomView, error) {
	return q.store.List(ctx, filter)
}
