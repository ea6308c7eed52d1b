package app

import (
	"database/sql"
	"go-attend/internal/admin"
	"go-attend/internal/attendance"
	"go-attend/internal/imagestore"
	"go-attend/internal/messaging/kafka"
	"go-attend/internal/rbac"
	"go-attend/internal/user"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Default kantor dipakai kalau env OFFICE_* tidak diset.
const (
	defaultOfficeLatitude  = 33.97331944724137
	defaultOfficeLongitude = 71.45657513924102
	defaultGeofenceMeters  = 500
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Infrastructure Services ---
	imageStore := imagestore.NewB2Store(imagestore.B2Config{
		KeyID:       os.Getenv("B2_KEY_ID"),
		Key:         os.Getenv("B2_APPLICATION_KEY"),
		BucketName:  os.Getenv("B2_BUCKET_NAME"),
		CDNEndpoint: os.Getenv("B2_CDN_ENDPOINT"),
	})

	// --- Services ---
	userService := user.NewService(userRepo)
	attendanceService := attendance.NewService(db, attendanceRepo, outboxRepo, imageStore, officeFromEnv())
	adminService := admin.NewService(userService, attendanceService, rdb)

	// --- Handlers ---
	userHandler := user.NewHandler(userService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	adminHandler := admin.NewHandler(adminService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		user.RegisterRoutes(api, userHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, rdb)
		admin.RegisterRoutes(api, adminHandler, rbacService)
	}

	return nil
}

func officeFromEnv() attendance.OfficeConfig {
	office := attendance.OfficeConfig{
		Latitude:          defaultOfficeLatitude,
		Longitude:         defaultOfficeLongitude,
		MaxDistanceMeters: defaultGeofenceMeters,
	}

	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_LAT"), 64); err == nil {
		office.Latitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_LNG"), 64); err == nil {
		office.Longitude = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("OFFICE_GEOFENCE_METERS"), 64); err == nil && v > 0 {
		office.MaxDistanceMeters = v
	}

	return office
}
