//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"hotel-booking-service/internal/infra"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		kinds      []infra.RepositoryErrorKind
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:       "unique violation classifies as duplicate key",
			err:        &pgconn.PgError{Code: "23505"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "foreign key violation",
			err:        &pgconn.PgError{Code: "23503"},
			expectKind: infra.KindForeignKeyViolated,
		},
		{
			name:       "exclusion violation classifies as conflict",
			err:        &pgconn.PgError{Code: "23P01"},
			expectKind: infra.KindConflict,
		},
		{
			name:       "unknown error falls back to db failure",
			err:        errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
		{
			name:       "explicit kind overrides classification",
			err:        errors.New("no rows in result set"),
			kinds:      []infra.RepositoryErrorKind{infra.KindNotFound},
			expectKind: infra.KindNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			wrapped := infra.WrapRepoErr("query failed", tc.err, tc.kinds...)
			assert.True(t, infra.IsKind(wrapped, tc.expectKind))
			assert.Contains(t, wrapped.Error(), "query failed")
		})
	}
}

func TestIsKind(t *testing.T) {
	t.Run("plain errors are never a kind", func(t *testing.T) {
		assert.False(t, infra.IsKind(errors.New("boom"), infra.KindDBFailure))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		inner := infra.WrapRepoErr("lookup", errors.New("gone"), infra.KindNotFound)
		outer := infra.WrapRepoErr("outer", inner, infra.KindDBFailure)
		// outermost kind wins on direct match
		assert.True(t, infra.IsKind(outer, infra.KindDBFailure))
	})
}
