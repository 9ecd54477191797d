package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	pkgerrors "github.com/yungbote/luxtick-backend/internal/pkg/errors"
)

const pgUniqueViolation = "23505"

// MapError translates driver-level failures into the shared sentinels so
// callers can branch without importing pgx or gorm.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pkgerrors.ErrConflict
	}
	return err
}
