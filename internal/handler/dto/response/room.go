package response

import (
	"hotel-booking-service/internal/usecase/queries"
)

type RoomResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RoomType    string `json:"roomType"`
	ImageURL    string `json:"imageUrl"`
	PriceCents  int64  `json:"priceCents"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"isAvailable"`
}

func FromRoomView(v *queries.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		RoomType:    v.RoomType,
		ImageURL:    v.ImageURL,
		PriceCents:  v.PriceCents,
		Capacity:    v.Capacity,
		IsAvailable: v.IsAvailable,
	}
}
