package readstore

import (
	"context"

	"hotel-booking-service/internal/domain/booking"
	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
	"hotel-booking-service/internal/pkg/pgconv"
	"hotel-booking-service/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	conn db.DBTX
}

func NewBookingReadStore(conn db.DBTX) *BookingReadStore {
	return &BookingReadStore{conn: conn}
}

const bookingViewSQL = `
SELECT b.id, b.room_id, r.name, b.user_id, b.check_in, b.check_out,
       b.guests, b.total_cents, s.name, b.created_at, b.completed_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN booking_statuses s ON s.id = b.booking_status_id`

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	row := r.conn.QueryRow(ctx, bookingViewSQL+` WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return view, nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.conn.Query(ctx, bookingViewSQL+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

func (r *BookingReadStore) ListByStatus(ctx context.Context, status *string) ([]*queries.BookingListItem, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = r.conn.Query(ctx, bookingViewSQL+` WHERE s.name = $1 ORDER BY b.created_at DESC`, *status)
	} else {
		rows, err = r.conn.Query(ctx, bookingViewSQL+` ORDER BY b.created_at DESC`)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by status", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

const historySQL = `
SELECT f.name, t.name, h.changed_by, h.note, h.changed_at
FROM booking_status_history h
LEFT JOIN booking_statuses f ON f.id = h.from_status_id
JOIN booking_statuses t ON t.id = h.to_status_id
WHERE h.booking_id = $1
ORDER BY h.changed_at, h.id`

func (r *BookingReadStore) HistoryByBookingID(ctx context.Context, bookingID int64) ([]queries.HistoryEntryView, error) {
	rows, err := r.conn.Query(ctx, historySQL, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load status history", err)
	}
	defer rows.Close()

	var entries []queries.HistoryEntryView
	for rows.Next() {
		var (
			fromStatus pgtype.Text
			toStatus   string
			changedBy  pgtype.UUID
			note       string
			changedAt  pgtype.Timestamptz
		)
		if err := rows.Scan(&fromStatus, &toStatus, &changedBy, &note, &changedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status history row", err)
		}
		entries = append(entries, queries.HistoryEntryView{
			FromStatus: pgconv.StringPtrFromPgtype(fromStatus),
			ToStatus:   toStatus,
			ChangedBy:  pgconv.UUIDPtrFromPgtype(changedBy),
			Note:       note,
			ChangedAt:  pgconv.TimeFromPgtype(changedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read status history rows", err)
	}
	return entries, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v           queries.BookingView
		checkIn     pgtype.Date
		checkOut    pgtype.Date
		createdAt   pgtype.Timestamptz
		completedAt pgtype.Timestamptz
	)
	err := row.Scan(&v.ID, &v.RoomID, &v.RoomName, &v.UserID, &checkIn, &checkOut,
		&v.Guests, &v.TotalCents, &v.Status, &createdAt, &completedAt)
	if err != nil {
		return nil, err
	}
	v.Number = booking.FormatNumber(v.ID)
	v.CheckIn = pgconv.DateFromPgtype(checkIn)
	v.CheckOut = pgconv.DateFromPgtype(checkOut)
	v.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	v.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	return &v, nil
}

func collectListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	items := []*queries.BookingListItem{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &queries.BookingListItem{
			ID:         view.ID,
			Number:     view.Number,
			RoomID:     view.RoomID,
			RoomName:   view.RoomName,
			CheckIn:    view.CheckIn,
			CheckOut:   view.CheckOut,
			Guests:     view.Guests,
			TotalCents: view.TotalCents,
			Status:     view.Status,
			CreatedAt:  view.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}
