package request

import (
	"hotel-booking-service/internal/usecase/queries"
)

type RoomListRequest struct {
	RoomType      *string `form:"room_type"`
	MinCapacity   *int    `form:"min_capacity" binding:"omitempty,min=1"`
	MaxPriceCents *int64  `form:"max_price_cents" binding:"omitempty,min=0"`
	OnlyAvailable bool    `form:"only_available"`
}

func (r RoomListRequest) ToFilter() queries.RoomListFilter {
	return queries.RoomListFilter{
		RoomType:      r.RoomType,
		MinCapacity:   r.MinCapacity,
		MaxPriceCents: r.MaxPriceCents,
		OnlyAvailable: r.OnlyAvailable,
	}
}
