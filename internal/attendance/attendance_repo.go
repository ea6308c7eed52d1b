package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	Update(ctx context.Context, rec *AttendanceRecord) error
	FindByUserAndDisplayDate(ctx context.Context, userID, displayDate string) (*AttendanceRecord, error)
	FindOpenByUserAndDisplayDate(ctx context.Context, userID, displayDate string) (*AttendanceRecord, error)
	FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]AttendanceRecord, error)
	InsertMany(ctx context.Context, recs []AttendanceRecord) error
	UpdateStatuses(ctx context.Context, ids []uuid.UUID, status string, updatedAt time.Time) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindByUserAndDisplayDate(ctx context.Context, userID, displayDate string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("display_date = ?", displayDate).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindOpenByUserAndDisplayDate(ctx context.Context, userID, displayDate string) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("display_date = ?", displayDate).
		Where("check_out IS NULL").
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]AttendanceRecord, error) {
	var rows []AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) InsertMany(ctx context.Context, recs []AttendanceRecord) error {
	if len(recs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&recs).Error
}

func (r *repository) UpdateStatuses(ctx context.Context, ids []uuid.UUID, status string, updatedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Where("id IN ?", ids).
		Updates(map[string]any{"status": status, "updated_at": updatedAt}).Error
}
