package user

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	FullName string    `gorm:"column:full_name;type:varchar(255);not null"`
	EmpID    string    `gorm:"column:emp_id;type:varchar(50);not null;uniqueIndex"`
	Role     string    `gorm:"column:role;type:varchar(10);not null;default:user"`
	Position string    `gorm:"column:position;type:varchar(100);not null"`
	Email    string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Password string    `gorm:"column:password;type:varchar(1024);not null"`

	// Descriptor wajah 128 float hasil face-api.js di frontend; backend hanya
	// menyimpan dan membandingkan.
	FaceDescriptor json.RawMessage `gorm:"column:face_descriptor;type:jsonb"`
	BaseFaceImage  *string         `gorm:"column:base_face_image;type:varchar(512)"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
