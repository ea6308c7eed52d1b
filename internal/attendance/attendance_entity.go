package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent       = "present"
	StatusLate          = "late"
	StatusAbsent        = "absent"
	StatusDiscordAbsent = "discord-absent"
)

type AttendanceRecord struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;index;uniqueIndex:uq_attendance_user_display_date"`

	// Untuk tampilan UI saja; query tanggal memakai check_in / created_at
	DisplayTime *string `gorm:"column:display_time;type:varchar(20)"`
	DisplayDate string  `gorm:"column:display_date;type:varchar(10);not null;uniqueIndex:uq_attendance_user_display_date"`

	CheckIn  *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut *time.Time `gorm:"column:check_out;type:timestamptz"`

	// Koordinat disimpan urutan GeoJSON: longitude dulu, baru latitude
	Longitude                *float64 `gorm:"column:longitude"`
	Latitude                 *float64 `gorm:"column:latitude"`
	DistanceFromOfficeMeters *float64 `gorm:"column:distance_from_office_meters"`

	UserAgent      *string `gorm:"column:user_agent;type:text"`
	CameraDeviceID *string `gorm:"column:camera_device_id;type:varchar(255)"`

	Image *string `gorm:"column:image;type:varchar(512)"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:absent;index"`

	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// EffectiveDate adalah tanggal yang dipakai untuk sorting dan bucketing:
// check_in kalau ada, kalau tidak created_at (kasus record absent sintetis).
func (a *AttendanceRecord) EffectiveDate() time.Time {
	if a.CheckIn != nil {
		return *a.CheckIn
	}
	return a.CreatedAt
}

func (a *AttendanceRecord) HasLocation() bool {
	return a.Longitude != nil && a.Latitude != nil
}
