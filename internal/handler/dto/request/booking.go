package request

import (
	"time"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	RoomID        int64  `json:"room_id" binding:"required"`
	CheckIn       string `json:"check_in" binding:"required"`
	CheckOut      string `json:"check_out" binding:"required"`
	Guests        int    `json:"guests" binding:"required,min=1"`
	DiscountCents int64  `json:"discount_cents" binding:"omitempty,min=0"`
}

// StayDates parses the calendar-date payload. Dates are anchored to
// midnight UTC so the half-open overlap rule works on whole days.
func (r CreateBookingRequest) StayDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.ParseInLocation(dateLayout, r.CheckIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = time.ParseInLocation(dateLayout, r.CheckOut, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

type AvailabilityRequest struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
}

func (r AvailabilityRequest) StayDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.ParseInLocation(dateLayout, r.CheckIn, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err = time.ParseInLocation(dateLayout, r.CheckOut, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return checkIn, checkOut, nil
}

type BulkBookingRequest struct {
	BookingIDs []int64 `json:"booking_ids" binding:"required,min=1"`
}
