package response

import (
	"time"

	"hotel-booking-service/internal/usecase/commands"
	"hotel-booking-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          int64                  `json:"id"`
	Number      string                 `json:"number"`
	RoomID      int64                  `json:"roomId"`
	RoomName    string                 `json:"roomName"`
	UserID      uuid.UUID              `json:"userId"`
	CheckIn     string                 `json:"checkIn"`
	CheckOut    string                 `json:"checkOut"`
	Guests      int                    `json:"guests"`
	TotalCents  int64                  `json:"totalCents"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
	CompletedAt *time.Time             `json:"completedAt,omitempty"`
	History     []HistoryEntryResponse `json:"history,omitempty"`
}

type BookingListResponse struct {
	ID         int64     `json:"id"`
	Number     string    `json:"number"`
	RoomID     int64     `json:"roomId"`
	RoomName   string    `json:"roomName"`
	CheckIn    string    `json:"checkIn"`
	CheckOut   string    `json:"checkOut"`
	Guests     int       `json:"guests"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type HistoryEntryResponse struct {
	FromStatus *string    `json:"fromStatus,omitempty"`
	ToStatus   string     `json:"toStatus"`
	ChangedBy  *uuid.UUID `json:"changedBy,omitempty"`
	Note       string     `json:"note"`
	ChangedAt  time.Time  `json:"changedAt"`
}

type AvailabilityResponse struct {
	RoomID    int64  `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Available bool   `json:"available"`
}

type BulkUpdateResponse struct {
	UpdatedIDs []int64 `json:"updatedIds"`
	Status     string  `json:"status"`
}

const dateLayout = "2006-01-02"

func FromBookingView(v *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{
		ID:          v.ID,
		Number:      v.Number,
		RoomID:      v.RoomID,
		RoomName:    v.RoomName,
		UserID:      v.UserID,
		CheckIn:     v.CheckIn.Format(dateLayout),
		CheckOut:    v.CheckOut.Format(dateLayout),
		Guests:      v.Guests,
		TotalCents:  v.TotalCents,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		CompletedAt: v.CompletedAt,
	}
	for _, h := range v.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			FromStatus: h.FromStatus,
			ToStatus:   h.ToStatus,
			ChangedBy:  h.ChangedBy,
			Note:       h.Note,
			ChangedAt:  h.ChangedAt,
		})
	}
	return resp
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:         v.ID,
		Number:     v.Number,
		RoomID:     v.RoomID,
		RoomName:   v.RoomName,
		CheckIn:    v.CheckIn.Format(dateLayout),
		CheckOut:   v.CheckOut.Format(dateLayout),
		Guests:     v.Guests,
		TotalCents: v.TotalCents,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
	}
}

func FromBulkResult(r *commands.BulkResult) *BulkUpdateResponse {
	return &BulkUpdateResponse{
		UpdatedIDs: r.UpdatedIDs,
		Status:     r.Status,
	}
}
