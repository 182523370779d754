//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotel-booking-service/internal/domain/user"
	"hotel-booking-service/internal/handler/dto/request"
	"hotel-booking-service/internal/handler/dto/response"
	"hotel-booking-service/tests/common/authtest"
	"hotel-booking-service/tests/common/dbtest"
	"hotel-booking-service/tests/common/httptest"
	"hotel-booking-service/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	bookingURL       = "/api/bookings/%d"
	cancelURL        = "/api/bookings/%d/cancel"
	adminBookingsURL = "/api/admin/bookings"
	confirmURL       = "/api/admin/bookings/%d/confirm"
	completeURL      = "/api/admin/bookings/%d/complete"
	adminCancelURL   = "/api/admin/bookings/%d/cancel"
	bulkConfirmURL   = "/api/admin/bookings/bulk-confirm"
	availabilityURL  = "/api/rooms/%d/availability?check_in=%s&check_out=%s"
)

const dateLayout = "2006-01-02"

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// stayDates returns a two-night stay far enough out that the cancellation
// window never interferes.
func stayDates() (string, string) {
	checkIn := time.Now().UTC().AddDate(0, 1, 0)
	checkOut := checkIn.AddDate(0, 0, 2)
	return checkIn.Format(dateLayout), checkOut.Format(dateLayout)
}

func (s *BookingSuite) createBooking(t *testing.T, token string, roomID int64, checkIn, checkOut string, guests int) response.BookingResponse {
	t.Helper()

	reqBody := request.CreateBookingRequest{
		RoomID:   roomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.BookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

// =============================================================================
// TestCreateBooking - Booking creation API tests
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: guest books a free room and gets a priced pending booking", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 101", 100_00, 2)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest1@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()

		created := s.createBooking(t, token, roomID, checkIn, checkOut, 2)
		require.NotZero(t, created.ID)
		require.NotEmpty(t, created.Number)

		// 2 nights x 10000 = 20000, +5% fee, +10% tax
		expected := &response.BookingResponse{
			RoomID:     roomID,
			RoomName:   "Deluxe 101",
			CheckIn:    checkIn,
			CheckOut:   checkOut,
			Guests:     2,
			TotalCents: 23000,
			Status:     "Pending",
		}

		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "Number", "UserID", "CreatedAt", "CompletedAt", "History"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}

		// Detail view carries the creation history entry
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, token)
		require.Equal(t, http.StatusOK, dw.Code, dw.Body.String())

		var detail response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Len(t, detail.History, 1)
		require.Equal(t, "Pending", detail.History[0].ToStatus)
		require.Equal(t, "created by guest", detail.History[0].Note)
		require.Nil(t, detail.History[0].FromStatus)
	})

	s.Run("Error case: unauthenticated request is rejected", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 102", 100_00, 2)
		checkIn, checkOut := stayDates()

		reqBody := request.CreateBookingRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: overlapping stay on the same room conflicts", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 103", 100_00, 2)
		firstToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest2@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		s.createBooking(t, firstToken, roomID, checkIn, checkOut, 1)

		secondToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest3@example.com", string(user.RoleGuest))
		reqBody := request.CreateBookingRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, secondToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: racing creators produce exactly one booking", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 110", 100_00, 2)
		tokenA := authtest.CreateAndLogin(t, s.DB, s.Router, "racer1@example.com", string(user.RoleGuest))
		tokenB := authtest.CreateAndLogin(t, s.DB, s.Router, "racer2@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		reqBody := request.CreateBookingRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1}

		codes := make(chan int, 2)
		start := make(chan struct{})
		var wg sync.WaitGroup
		for _, token := range []string{tokenA, tokenB} {
			wg.Add(1)
			go func(tok string) {
				defer wg.Done()
				<-start
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, tok)
				codes <- w.Code
			}(token)
		}
		close(start)
		wg.Wait()
		close(codes)

		var got []int
		for code := range codes {
			got = append(got, code)
		}
		require.ElementsMatch(t, []int{http.StatusCreated, http.StatusConflict}, got,
			"one creator must win and one must lose")

		// Exactly one row holds the slot
		var count int
		require.NoError(t, s.DB.QueryRow(t.Context(),
			"SELECT count(*) FROM bookings WHERE room_id = $1", roomID).Scan(&count))
		require.Equal(t, 1, count)
	})

	s.Run("Normal case: seeded cancelled booking does not block the dates", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 111", 100_00, 2)
		formerID := dbtest.CreateTestUser(t, s.DB, "former-guest@example.com", string(user.RoleGuest))
		checkInStr, checkOutStr := stayDates()
		checkIn, _ := time.Parse(dateLayout, checkInStr)
		checkOut, _ := time.Parse(dateLayout, checkOutStr)
		dbtest.CreateTestBooking(t, s.DB, roomID, formerID, checkIn, checkOut, "Cancelled")

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "next-guest@example.com", string(user.RoleGuest))
		s.createBooking(t, token, roomID, checkInStr, checkOutStr, 1)
	})

	s.Run("Error case: seeded confirmed booking blocks the same dates", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 109", 100_00, 2)
		occupantID := dbtest.CreateTestUser(t, s.DB, "occupant@example.com", string(user.RoleGuest))
		checkInStr, checkOutStr := stayDates()
		checkIn, _ := time.Parse(dateLayout, checkInStr)
		checkOut, _ := time.Parse(dateLayout, checkOutStr)
		dbtest.CreateTestBooking(t, s.DB, roomID, occupantID, checkIn, checkOut, "Confirmed")

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "late-guest@example.com", string(user.RoleGuest))
		reqBody := request.CreateBookingRequest{RoomID: roomID, CheckIn: checkInStr, CheckOut: checkOutStr, Guests: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: back-to-back stays do not conflict", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 104", 100_00, 2)
		firstToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest4@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		s.createBooking(t, firstToken, roomID, checkIn, checkOut, 1)

		// New stay starts exactly where the previous one ends
		nextOut := time.Now().UTC().AddDate(0, 1, 4).Format(dateLayout)
		secondToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest5@example.com", string(user.RoleGuest))
		s.createBooking(t, secondToken, roomID, checkOut, nextOut, 1)
	})

	s.Run("Error case: guest count above room capacity is rejected", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Single 201", 80_00, 1)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest6@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()

		reqBody := request.CreateBookingRequest{RoomID: roomID, CheckIn: checkIn, CheckOut: checkOut, Guests: 3}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: unknown room yields 404", func() {
		t := s.T()

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest7@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()

		reqBody := request.CreateBookingRequest{RoomID: 99999, CheckIn: checkIn, CheckOut: checkOut, Guests: 1}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestCancelBooking - Guest cancellation tests
// =============================================================================

func (s *BookingSuite) TestCancelBooking() {
	s.Run("Normal case: cancelling frees the room for a new booking", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 105", 100_00, 2)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest8@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		created := s.createBooking(t, token, roomID, checkIn, checkOut, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var cancelled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "Cancelled", cancelled.Status)

		// The same dates can be booked again by someone else
		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest9@example.com", string(user.RoleGuest))
		s.createBooking(t, otherToken, roomID, checkIn, checkOut, 1)
	})

	s.Run("Error case: cancelling twice conflicts", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 106", 100_00, 2)
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest10@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		created := s.createBooking(t, token, roomID, checkIn, checkOut, 1)

		url := fmt.Sprintf(cancelURL, created.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		historyCount := func() int {
			var n int
			require.NoError(t, s.DB.QueryRow(t.Context(),
				"SELECT count(*) FROM booking_status_history WHERE booking_id = $1", created.ID).Scan(&n))
			return n
		}
		afterFirst := historyCount()

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// The rejected attempt must not append a history row
		require.Equal(t, afterFirst, historyCount())
	})

	s.Run("Error case: another guest's booking looks like it does not exist", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 107", 100_00, 2)
		ownerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest11@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		created := s.createBooking(t, ownerToken, roomID, checkIn, checkOut, 1)

		strangerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest12@example.com", string(user.RoleGuest))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID), nil, strangerToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestAdminLifecycle - Confirm / complete / admin cancel tests
// =============================================================================

func (s *BookingSuite) TestAdminLifecycle() {
	s.Run("Normal case: pending booking moves through confirm and complete", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Suite 301", 250_00, 4)
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest13@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		created := s.createBooking(t, guestToken, roomID, checkIn, checkOut, 2)

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin1@example.com", string(user.RoleAdmin))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var confirmed response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &confirmed))
		require.Equal(t, "Confirmed", confirmed.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(completeURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var completed response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &completed))
		require.Equal(t, "Completed", completed.Status)
		require.NotNil(t, completed.CompletedAt)

		// Full audit trail: created, confirmed, completed
		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, dw.Code)
		var detail response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		require.Len(t, detail.History, 3)
	})

	s.Run("Error case: completing a pending booking conflicts", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Suite 302", 250_00, 4)
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest14@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		created := s.createBooking(t, guestToken, roomID, checkIn, checkOut, 2)

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin2@example.com", string(user.RoleAdmin))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(completeURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: admin can cancel a confirmed booking outside the window", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Suite 303", 250_00, 4)
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest15@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()
		created := s.createBooking(t, guestToken, roomID, checkIn, checkOut, 2)

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin3@example.com", string(user.RoleAdmin))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(adminCancelURL, created.ID), nil, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var cancelled response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &cancelled))
		require.Equal(t, "Cancelled", cancelled.Status)
	})

	s.Run("Error case: guest is forbidden from admin endpoints", func() {
		t := s.T()

		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest16@example.com", string(user.RoleGuest))
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, adminBookingsURL, nil, guestToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestBulkConfirm - Batch status update tests
// =============================================================================

func (s *BookingSuite) TestBulkConfirm() {
	s.Run("Normal case: ineligible bookings are skipped, eligible ones confirmed", func() {
		t := s.T()

		roomA := dbtest.CreateTestRoom(t, s.DB, "Bulk A", 100_00, 2)
		roomB := dbtest.CreateTestRoom(t, s.DB, "Bulk B", 100_00, 2)
		roomC := dbtest.CreateTestRoom(t, s.DB, "Bulk C", 100_00, 2)
		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest17@example.com", string(user.RoleGuest))
		checkIn, checkOut := stayDates()

		first := s.createBooking(t, guestToken, roomA, checkIn, checkOut, 1)
		second := s.createBooking(t, guestToken, roomB, checkIn, checkOut, 1)
		third := s.createBooking(t, guestToken, roomC, checkIn, checkOut, 1)

		// Third booking is cancelled up front, so the batch must skip it
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, third.ID), nil, guestToken)
		require.Equal(t, http.StatusOK, w.Code)

		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin4@example.com", string(user.RoleAdmin))
		reqBody := request.BulkBookingRequest{BookingIDs: []int64{first.ID, second.ID, third.ID}}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bulkConfirmURL, reqBody, adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result response.BulkUpdateResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &result))
		require.ElementsMatch(t, []int64{first.ID, second.ID}, result.UpdatedIDs)
		require.Equal(t, "Confirmed", result.Status)

		// Filtered admin list shows exactly the confirmed pair
		lw := httptest.PerformRequest(t, s.Router, http.MethodGet, adminBookingsURL+"?status=Confirmed", nil, adminToken)
		require.Equal(t, http.StatusOK, lw.Code)
		var listed []response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, lw.Body, &listed))
		require.Len(t, listed, 2)
	})
}

// =============================================================================
// TestAvailability - Public availability endpoint tests
// =============================================================================

func (s *BookingSuite) TestAvailability() {
	s.Run("Normal case: availability flips once the room is booked", func() {
		t := s.T()

		roomID := dbtest.CreateTestRoom(t, s.DB, "Deluxe 108", 100_00, 2)
		checkIn, checkOut := stayDates()

		url := fmt.Sprintf(availabilityURL, roomID, checkIn, checkOut)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var before response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &before))
		require.True(t, before.Available)

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "guest18@example.com", string(user.RoleGuest))
		s.createBooking(t, token, roomID, checkIn, checkOut, 1)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var after response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &after))
		require.False(t, after.Available)
	})
}

// =============================================================================
// TestListMyBookings - Guest listing tests
// =============================================================================

func (s *BookingSuite) TestListMyBookings() {
	s.Run("Normal case: guests only ever see their own bookings", func() {
		t := s.T()

		roomA := dbtest.CreateTestRoom(t, s.DB, "List A", 100_00, 2)
		roomB := dbtest.CreateTestRoom(t, s.DB, "List B", 100_00, 2)
		checkIn, checkOut := stayDates()

		mineToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest19@example.com", string(user.RoleGuest))
		mine := s.createBooking(t, mineToken, roomA, checkIn, checkOut, 1)

		otherToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest20@example.com", string(user.RoleGuest))
		s.createBooking(t, otherToken, roomB, checkIn, checkOut, 1)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL, nil, mineToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var listed []response.BookingListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &listed))
		require.Len(t, listed, 1)
		require.Equal(t, mine.ID, listed[0].ID)
	})
}
