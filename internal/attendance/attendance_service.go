package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/events"
	"go-attend/internal/imagestore"
	"go-attend/internal/messaging/kafka"
	"go-attend/internal/shared/apperror"
	"go-attend/internal/shared/geoutil"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minPresenceDuration = 7*time.Hour + 45*time.Minute
	minLateDuration     = 2 * time.Hour
)

// OfficeConfig menentukan titik kantor dan radius geofence untuk check-in.
// Nilainya injectable per deployment, bukan literal di kode.
type OfficeConfig struct {
	Latitude          float64
	Longitude         float64
	MaxDistanceMeters float64
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	LogCheckIn(ctx context.Context, userID string, req LogCheckInRequest) (AttendanceResponse, error)
	LogCheckOut(ctx context.Context, userID string, req LogCheckOutRequest) (AttendanceResponse, error)
	ReconcileMonth(ctx context.Context, userID, month string) (MonthlyReport, error)
	LogDiscordAbsence(ctx context.Context, userID, date string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	images imagestore.Service
	office OfficeConfig
	nowFn  func() time.Time
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, images imagestore.Service, office OfficeConfig) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		images: images,
		office: office,
		nowFn:  time.Now,
	}
}

// NewServiceWithClock menyuntikkan sumber waktu, dipakai di test.
func NewServiceWithClock(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, images imagestore.Service, office OfficeConfig, nowFn func() time.Time) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		images: images,
		office: office,
		nowFn:  nowFn,
	}
}

// ReconcileMonth membangun ledger harian lengkap satu user untuk satu bulan:
// record tersimpan + absent sintetis untuk hari kerja yang terlewat + koreksi
// status check-in yang menggantung. Dipakai baik oleh endpoint self-service
// maupun admin-on-behalf.
func (s *service) ReconcileMonth(ctx context.Context, userID, month string) (MonthlyReport, error) {
	info, err := parseMonthParam(month)
	if err != nil {
		return MonthlyReport{}, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return MonthlyReport{}, attendanceerrors.ErrInvalidUserID
	}

	totalWorkingDays, workingDaysPerWeek := computeWorkingDaysByWeek(info.year, info.monthIndex)
	maxDay := maxBackfillDay(info.year, info.monthIndex, s.nowFn())

	records, err := s.repo.FindByUserAndRange(ctx, userID, info.start.AddDate(0, 0, -1), info.end.AddDate(0, 0, 1))
	if err != nil {
		return MonthlyReport{}, apperror.Wrap(err, apperror.CodeInternalError, "Loading attendance records failed", 500)
	}
	records = filterToMonth(records, info)

	toInsert := buildBackfill(uid, info, maxDay, existingDayKeys(records))
	if len(toInsert) > 0 {
		if err := s.repo.InsertMany(ctx, toInsert); err != nil {
			return MonthlyReport{}, apperror.Wrap(err, apperror.CodeInternalError, "Backfilling absent records failed", 500)
		}
		records = append(records, toInsert...)
	}
	sortByEffectiveDate(records)

	if lateIDs := reclassifyStaleCheckIns(records, maxDay); len(lateIDs) > 0 {
		if err := s.repo.UpdateStatuses(ctx, lateIDs, StatusLate, s.nowFn()); err != nil {
			return MonthlyReport{}, apperror.Wrap(err, apperror.CodeInternalError, "Reclassifying stale check-ins failed", 500)
		}
	}

	presents, lates, absents, series := aggregate(records, workingDaysPerWeek)

	return MonthlyReport{
		Presents:       presents,
		Lates:          lates,
		Absents:        absents,
		DaysInMonth:    totalWorkingDays,
		PresenceSeries: series,
		Days:           formatDays(records, s.images),
	}, nil
}

func (s *service) LogCheckIn(ctx context.Context, userID string, req LogCheckInRequest) (AttendanceResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidUserID
	}

	timestamp, err := time.Parse(time.RFC3339, req.TimestampISO)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTimestamp
	}

	if len(req.Photo) == 0 {
		return AttendanceResponse{}, attendanceerrors.ErrImageRequired
	}

	// Guard check-then-insert; unique index (user_id, display_date) menutup
	// celah race di level storage.
	if _, err := s.repo.FindByUserAndDisplayDate(ctx, userID, req.DisplayDate); err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrDuplicateCheckIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Looking up attendance failed", 500)
	}

	distance := geoutil.DistanceMeters(
		req.Location.Lat, req.Location.Lng,
		s.office.Latitude, s.office.Longitude,
	)
	if distance > s.office.MaxDistanceMeters {
		return AttendanceResponse{}, attendanceerrors.ErrOutOfGeofence
	}

	compressed, err := s.images.Compress(req.Photo)
	if err != nil {
		return AttendanceResponse{}, apperror.Wrap(err, apperror.CodeInvalidInput, "Please upload a valid image file", 400)
	}

	imagePath := fmt.Sprintf("attendance/%d_%s.jpeg", s.nowFn().UnixMilli(), userID)
	if err := s.images.Upload(ctx, compressed, imagePath); err != nil {
		return AttendanceResponse{}, apperror.Wrap(err, attendanceerrors.ErrUploadFailed.Code, attendanceerrors.ErrUploadFailed.Message, attendanceerrors.ErrUploadFailed.HTTPStatus)
	}

	rec := &AttendanceRecord{
		ID:                       uuid.New(),
		UserID:                   uid,
		DisplayTime:              &req.DisplayTime,
		DisplayDate:              req.DisplayDate,
		CheckIn:                  &timestamp,
		Longitude:                &req.Location.Lng,
		Latitude:                 &req.Location.Lat,
		DistanceFromOfficeMeters: &distance,
		UserAgent:                &req.Device.UserAgent,
		CameraDeviceID:           req.Device.SelectedCameraDeviceID,
		Image:                    &imagePath,
		Status:                   StatusPresent,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, rec); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueueEvent(ctx, tx, events.EventTypeAttendanceCheckedIn, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(rec), nil
}

func (s *service) LogCheckOut(ctx context.Context, userID string, req LogCheckOutRequest) (AttendanceResponse, error) {
	timestamp, err := time.Parse(time.RFC3339, req.TimestampISO)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidTimestamp
	}

	rec, err := s.repo.FindOpenByUserAndDisplayDate(ctx, userID, req.DisplayDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNoOpenCheckIn
		}
		return AttendanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Looking up attendance failed", 500)
	}
	if rec.CheckIn == nil {
		// Record absent sintetis bukan check-in yang bisa ditutup
		return AttendanceResponse{}, attendanceerrors.ErrNoOpenCheckIn
	}

	worked := timestamp.Sub(*rec.CheckIn)
	if worked < 0 {
		return AttendanceResponse{}, attendanceerrors.ErrNegativeDuration
	}

	rec.CheckOut = &timestamp
	switch {
	case worked < minLateDuration:
		rec.Status = StatusAbsent
	case worked < minPresenceDuration:
		rec.Status = StatusLate
	default:
		rec.Status = StatusPresent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, rec); err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := s.enqueueEvent(ctx, tx, events.EventTypeAttendanceCheckedOut, rec); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	return mapToResponse(rec), nil
}

// LogDiscordAbsence mencatat absen yang datang dari kanal notifikasi Discord.
// Idempotent: hari yang sudah punya record dibiarkan apa adanya.
func (s *service) LogDiscordAbsence(ctx context.Context, userID, date string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return attendanceerrors.ErrInvalidUserID
	}

	day, err := time.ParseInLocation(dateKeyLayout, date, time.Local)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, "Invalid absence date", 400)
	}

	displayDate := day.Format(displayDateLayout)
	if _, err := s.repo.FindByUserAndDisplayDate(ctx, userID, displayDate); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.Wrap(err, apperror.CodeInternalError, "Looking up attendance failed", 500)
	}

	rec := &AttendanceRecord{
		ID:          uuid.New(),
		UserID:      uid,
		DisplayDate: displayDate,
		Status:      StatusDiscordAbsent,
		CreatedAt:   day,
		UpdatedAt:   day,
	}
	return mapRepositoryError(s.repo.Create(ctx, rec))
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, eventType string, rec *AttendanceRecord) error {
	if s.outbox == nil {
		return nil
	}

	payload, err := json.Marshal(events.AttendanceLoggedEvent{
		EventType:   eventType,
		RecordID:    rec.ID.String(),
		UserID:      rec.UserID.String(),
		DisplayDate: rec.DisplayDate,
		Status:      rec.Status,
		OccurredAt:  s.nowFn().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "attendance_record",
		AggregateID:   rec.ID.String(),
		EventType:     eventType,
		Topic:         events.AttendanceLoggedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(rec *AttendanceRecord) AttendanceResponse {
	resp := AttendanceResponse{
		ID:                       rec.ID.String(),
		UserID:                   rec.UserID.String(),
		DisplayDate:              rec.DisplayDate,
		DisplayTime:              rec.DisplayTime,
		Status:                   rec.Status,
		Image:                    rec.Image,
		DistanceFromOfficeMeters: rec.DistanceFromOfficeMeters,
	}
	if rec.CheckIn != nil {
		v := rec.CheckIn.UTC().Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.UTC().Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
