package readstore

import (
	"context"
	"fmt"
	"strings"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
	"hotel-booking-service/internal/pkg/pgconv"
	"hotel-booking-service/internal/usecase/queries"
)

type RoomReadStore struct {
	conn db.DBTX
}

func NewRoomReadStore(conn db.DBTX) *RoomReadStore {
	return &RoomReadStore{conn: conn}
}

const roomViewSQL = `
SELECT id, name, description, room_type, image_url, price_cents, capacity, is_available
FROM rooms`

func (r *RoomReadStore) FindByID(ctx context.Context, id int64) (*queries.RoomView, error) {
	var v queries.RoomView
	err := r.conn.QueryRow(ctx, roomViewSQL+` WHERE id = $1`, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.RoomType, &v.ImageURL,
		&v.PriceCents, &v.Capacity, &v.IsAvailable)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by id", err)
	}
	return &v, nil
}

func (r *RoomReadStore) List(ctx context.Context, filter queries.RoomListFilter) ([]*queries.RoomView, error) {
	conds := []string{}
	args := []any{}

	if filter.RoomType != nil {
		args = append(args, *filter.RoomType)
		conds = append(conds, fmt.Sprintf("room_type = $%d", len(args)))
	}
	if filter.MinCapacity != nil {
		args = append(args, *filter.MinCapacity)
		conds = append(conds, fmt.Sprintf("capacity >= $%d", len(args)))
	}
	if filter.MaxPriceCents != nil {
		args = append(args, *filter.MaxPriceCents)
		conds = append(conds, fmt.Sprintf("price_cents <= $%d", len(args)))
	}
	if filter.OnlyAvailable {
		conds = append(conds, "is_available")
	}

	sql := roomViewSQL
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY price_cents, id"

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	result := []*queries.RoomView{}
	for rows.Next() {
		var v queries.RoomView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.RoomType, &v.ImageURL,
			&v.PriceCents, &v.Capacity, &v.IsAvailable); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}
	return result, nil
}
