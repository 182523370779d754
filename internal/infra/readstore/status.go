package readstore

import (
	"context"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
	"hotel-booking-service/internal/pkg/pgconv"
	"hotel-booking-service/internal/usecase/shared"
)

// StatusReadStore resolves reference-data rows by stable name. Lifecycle
// code never hardcodes numeric status ids.
type StatusReadStore struct {
	conn db.DBTX
}

func NewStatusReadStore(conn db.DBTX) *StatusReadStore {
	return &StatusReadStore{conn: conn}
}

func (r *StatusReadStore) BookingStatusByName(ctx context.Context, name string) (*shared.StatusRef, error) {
	return r.statusByName(ctx, "booking_statuses", name)
}

func (r *StatusReadStore) PaymentStatusByName(ctx context.Context, name string) (*shared.StatusRef, error) {
	return r.statusByName(ctx, "payment_statuses", name)
}

// FirstBookingStatus is the defensive fallback used at booking creation
// when no Pending row exists.
func (r *StatusReadStore) FirstBookingStatus(ctx context.Context) (*shared.StatusRef, error) {
	var ref shared.StatusRef
	err := r.conn.QueryRow(ctx,
		`SELECT id, name FROM booking_statuses WHERE is_active ORDER BY id LIMIT 1`).
		Scan(&ref.ID, &ref.Name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no booking statuses configured", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load first booking status", err)
	}
	return &ref, nil
}

func (r *StatusReadStore) statusByName(ctx context.Context, table, name string) (*shared.StatusRef, error) {
	var ref shared.StatusRef
	err := r.conn.QueryRow(ctx,
		`SELECT id, name FROM `+table+` WHERE name = $1 AND is_active`, name).
		Scan(&ref.ID, &ref.Name)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("status not found: "+name, err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load status "+name, err)
	}
	return &ref, nil
}
