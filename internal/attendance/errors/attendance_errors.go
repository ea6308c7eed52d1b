package attendanceerrors

import (
	"go-attend/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidMonthFormat = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or missing month. Expected format: YYYY-MM",
		http.StatusBadRequest,
	)

	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"timestampIso must be a valid ISO date string",
		http.StatusBadRequest,
	)

	ErrDuplicateCheckIn = apperror.New(
		apperror.CodeConflict,
		"Attendance for this date is already logged",
		http.StatusBadRequest,
	)

	ErrOutOfGeofence = apperror.New(
		apperror.CodeInvalidState,
		"You must be within 500 meters of the office to check-in",
		http.StatusBadRequest,
	)

	ErrImageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Image file is required",
		http.StatusBadRequest,
	)

	ErrUploadFailed = apperror.New(
		apperror.CodeServiceUnavailable,
		"Uploading the check-in photo failed",
		http.StatusInternalServerError,
	)

	ErrNoOpenCheckIn = apperror.New(
		apperror.CodeNotFound,
		"No open attendance record found to check-out",
		http.StatusNotFound,
	)

	ErrNegativeDuration = apperror.New(
		apperror.CodeInvalidInput,
		"check-out time cannot be before check-in time",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)
)
