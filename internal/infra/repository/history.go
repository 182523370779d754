package repository

import (
	"context"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
	"hotel-booking-service/internal/pkg/pgconv"
	"hotel-booking-service/internal/usecase/shared"
)

// HistoryRepository appends to the booking status ledger. Insert only;
// there is deliberately no update or delete.
type HistoryRepository struct{}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{}
}

const appendHistorySQL = `
INSERT INTO booking_status_history (booking_id, from_status_id, to_status_id, changed_by, note, changed_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *HistoryRepository) Append(ctx context.Context, conn db.DBTX, rec shared.HistoryRecord) error {
	_, err := conn.Exec(ctx, appendHistorySQL,
		rec.BookingID,
		pgconv.Int64ToPgtype(rec.FromStatusID),
		rec.ToStatusID,
		pgconv.UUIDToPgtype(rec.ChangedBy),
		rec.Note,
		rec.ChangedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append status history", err)
	}
	return nil
}
