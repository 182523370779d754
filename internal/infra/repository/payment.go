package repository

import (
	"context"
	"time"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
)

// PaymentRepository writes the local bookkeeping rows; actual payment
// processing happens elsewhere.
type PaymentRepository struct{}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{}
}

func (r *PaymentRepository) Create(ctx context.Context, conn db.DBTX, bookingID int64, amountCents int64, statusID int64, paymentDate time.Time) error {
	_, err := conn.Exec(ctx,
		`INSERT INTO payments (booking_id, amount_cents, payment_status_id, payment_date) VALUES ($1, $2, $3, $4)`,
		bookingID, amountCents, statusID, paymentDate)
	if err != nil {
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}
