package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)

type BookingView struct {
	ID          int64              `json:"id"`
	Number      string             `json:"number"`
	RoomID      int64              `json:"room_id"`
	RoomName    string             `json:"room_name"`
	UserID      uuid.UUID          `json:"user_id"`
	CheckIn     time.Time          `json:"check_in"`
	CheckOut    time.Time          `json:"check_out"`
	Guests      int                `json:"guests"`
	TotalCents  int64              `json:"total_cents"`
	Status      string             `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	History     []HistoryEntryView `json:"history,omitempty"`
}

type BookingListItem struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	RoomID     int64     `json:"room_id"`
	RoomName   string    `json:"room_name"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type HistoryEntryView struct {
	FromStatus *string    `json:"from_status,omitempty"`
	ToStatus   string     `json:"to_status"`
	ChangedBy  *uuid.UUID `json:"changed_by,omitempty"`
	Note       string     `json:"note"`
	ChangedAt  time.Time  `json:"changed_at"`
}

type RoomView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	RoomType    string `json:"room_type"`
	ImageURL    string `json:"image_url"`
	PriceCents  int64  `json:"price_cents"`
	Capacity    int    `json:"capacity"`
	IsAvailable bool   `json:"is_available"`
}

type RoomListFilter struct {
	RoomType      *string
	MinCapacity   *int
	MaxPriceCents *int64
	OnlyAvailable bool
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
