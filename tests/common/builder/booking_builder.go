//go:build unit || e2e

package builder

import (
	"time"

	dombooking "hotel-booking-service/internal/domain/booking"
	domroom "hotel-booking-service/internal/domain/room"
	reqdto "hotel-booking-service/internal/handler/dto/request"
	"hotel-booking-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	RoomID        int64
	RoomName      string
	RoomType      string
	PriceCents    int64
	Capacity      int
	RoomAvailable bool

	UserID        uuid.UUID
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	DiscountCents int64
	Now           time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		RoomID:        1,
		RoomName:      "Deluxe 101",
		RoomType:      "deluxe",
		PriceCents:    100_00,
		Capacity:      2,
		RoomAvailable: true,
		UserID:        uuid.New(),
		CheckIn:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		Guests:        2,
		DiscountCents: 0,
		Now:           now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildRoom() (*domroom.Room, error) {
	return domroom.NewRoom(b.RoomID, b.RoomName, b.RoomType, b.PriceCents, b.Capacity, b.RoomAvailable)
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	roomEntity, err := b.BuildRoom()
	if err != nil {
		return nil, err
	}

	stay, err := dombooking.NewStayPeriod(b.CheckIn, b.CheckOut)
	if err != nil {
		return nil, err
	}

	discount, err := dombooking.NewMoney(b.DiscountCents)
	if err != nil {
		return nil, err
	}

	return dombooking.NewBooking(roomEntity, b.UserID, stay, b.Guests, discount, b.Now)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		RoomID:        b.RoomID,
		CheckIn:       b.CheckIn.Format("2006-01-02"),
		CheckOut:      b.CheckOut.Format("2006-01-02"),
		Guests:        b.Guests,
		DiscountCents: b.DiscountCents,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	quote := b.expectedQuote()
	return &queries.BookingView{
		ID:         1,
		Number:     dombooking.FormatNumber(1),
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
		TotalCents: quote.Total.Cents(),
		Status:     string(dombooking.StatusPending),
		CreatedAt:  b.Now,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	quote := b.expectedQuote()
	return &queries.BookingListItem{
		ID:         1,
		Number:     dombooking.FormatNumber(1),
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
		TotalCents: quote.Total.Cents(),
		Status:     string(dombooking.StatusPending),
		CreatedAt:  b.Now,
	}
}

func (b *BookingBuilder) expectedQuote() dombooking.Quote {
	stay, _ := dombooking.NewStayPeriod(b.CheckIn, b.CheckOut)
	price, _ := dombooking.NewMoney(b.PriceCents)
	discount, _ := dombooking.NewMoney(b.DiscountCents)
	return dombooking.ComputeQuote(price, stay, discount)
}
