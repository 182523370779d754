//go:build unit

package api_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotel-booking-service/internal/domain/user"
	"hotel-booking-service/internal/handler/api"
	resdto "hotel-booking-service/internal/handler/dto/response"
	"hotel-booking-service/internal/usecase/commands"
	"hotel-booking-service/internal/usecase/queries"
	"hotel-booking-service/tests/common/builder"
	"hotel-booking-service/tests/common/httptest"
	"hotel-booking-service/tests/common/testutil"
	commandsmock "hotel-booking-service/tests/mock/commands"
	queriesmock "hotel-booking-service/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock middleware behavior: authenticated guest
	authenticated := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleGuest)
	}

	s.router.POST("/bookings", authenticated, s.handler.CreateBooking)
	s.router.GET("/bookings", authenticated, s.handler.ListMyBookings)
	s.router.GET("/bookings/:id", authenticated, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authenticated, s.handler.CancelBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildCreateRequestDTO()

	s.Run("success: returns 201 Created with the booking view", func() {
		view := bb.BuildView()
		view.UserID = s.userID

		expectedInput := commands.CreateBookingInput{
			RoomID:        bb.RoomID,
			UserID:        s.userID,
			CheckIn:       bb.CheckIn,
			CheckOut:      bb.CheckOut,
			Guests:        bb.Guests,
			DiscountCents: bb.DiscountCents,
		}
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), expectedInput).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(view.Number, response.Number)
		s.Equal("Pending", response.Status)
		s.Equal(view.TotalCents, response.TotalCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: room_id (required)", mutate: testutil.Field("room_id", nil)},
			{name: "missing field: check_in (required)", mutate: testutil.Field("check_in", nil)},
			{name: "missing field: check_out (required)", mutate: testutil.Field("check_out", nil)},
			{name: "missing field: guests (required)", mutate: testutil.Field("guests", nil)},
			{name: "guests below minimum (0)", mutate: testutil.Field("guests", 0)},
			{name: "negative discount", mutate: testutil.Field("discount_cents", -1)},
			{name: "malformed check_in date", mutate: testutil.Field("check_in", "10-03-2026")},
			{name: "malformed check_out date", mutate: testutil.Field("check_out", "not-a-date")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "room not found",
				commandsError:  commands.ErrRoomNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Room not found",
			},
			{
				name:           "invalid date range",
				commandsError:  commands.ErrInvalidDateRange,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Check-out must be after check-in",
			},
			{
				name:           "capacity exceeded",
				commandsError:  commands.ErrCapacityExceeded,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Guest count exceeds room capacity",
			},
			{
				name:           "room unavailable",
				commandsError:  commands.ErrRoomUnavailable,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Room is not available",
			},
			{
				name:           "domain validation failed",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "failed validation",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestListMyBookings() {
	url := "/bookings"

	s.Run("success: returns the caller's bookings", func() {
		items := []*queries.BookingListItem{builder.NewBookingBuilder().BuildListItem()}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(items[0].Number, response[0].Number)
	})

	s.Run("success: empty list stays a JSON array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		s.JSONEq("[]", rec.Body.String())
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	s.Run("success: returns booking with history", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, false, view.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, fmt.Sprintf("/bookings/%d", view.ID), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Number, response.Number)
	})

	s.Run("error: 400 on non-numeric ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/abc", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 when booking not found or not owned", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), s.userID, false, int64(999)).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/999", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	s.Run("success: returns 200 with the cancelled booking", func() {
		view := builder.NewBookingBuilder().BuildView()
		view.Status = "Cancelled"
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), view.ID, s.userID, false).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, fmt.Sprintf("/bookings/%d/cancel", view.ID), nil, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("Cancelled", response.Status)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "booking not found",
				commandsError:  commands.ErrBookingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Booking not found",
			},
			{
				name:           "already cancelled",
				commandsError:  commands.ErrAlreadyCancelled,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already cancelled",
			},
			{
				name:           "confirmed bookings need staff",
				commandsError:  commands.ErrCannotCancelConfirmed,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "cancelled by staff",
			},
			{
				name:           "cancellation window expired",
				commandsError:  commands.ErrCancellationWindowExpired,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "window has expired",
			},
			{
				name:           "terminal status",
				commandsError:  commands.ErrInvalidStatusTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "current status",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CancelBooking(gomock.Any(), int64(1), s.userID, false).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/1/cancel", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
