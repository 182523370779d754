package readstore

import (
	"context"

	"hotel-booking-service/internal/infra"
	"hotel-booking-service/internal/infra/db"
	"hotel-booking-service/internal/pkg/pgconv"
	"hotel-booking-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	conn db.DBTX
}

func NewUserReadStore(conn db.DBTX) *UserReadStore {
	return &UserReadStore{conn: conn}
}

const userViewSQL = `
SELECT id, email, full_name, role, is_active FROM users`

// FindByEmail also returns the password hash so the auth usecase can
// compare credentials without a second round trip.
func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v    queries.AuthorizedUserView
		hash string
	)
	err := r.conn.QueryRow(ctx,
		`SELECT id, email, full_name, role, is_active, password_hash FROM users WHERE email = $1 AND is_active`,
		email).Scan(&v.ID, &v.Email, &v.FullName, &v.Role, &v.IsActive, &hash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return &v, hash, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := r.conn.QueryRow(ctx, userViewSQL+` WHERE id = $1`, id).
		Scan(&v.ID, &v.Email, &v.FullName, &v.Role, &v.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return &v, nil
}
