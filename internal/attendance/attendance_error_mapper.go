package attendance

import (
	"errors"

	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_user_display_date" {
			return attendanceerrors.ErrDuplicateCheckIn
		}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return attendanceerrors.ErrDuplicateCheckIn
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "Persisting attendance failed", 500)
}
