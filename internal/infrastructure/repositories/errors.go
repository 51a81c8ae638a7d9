package repositories

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	domainerrors "startup-directory.backend/internal/domain/errors"
)

const uniqueViolationCode = "23505"

// isUniqueViolation recognizes duplicate key errors from postgres (pgx) and sqlite.
// gorm.ErrDuplicatedKey is the normal path; the rest covers connections opened without TranslateError.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE "+uniqueViolationCode)
}

func translateWriteError(err error) error {
	if isUniqueViolation(err) {
		return domainerrors.ErrAlreadyExists
	}
	return err
}

func translateReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return err
}
