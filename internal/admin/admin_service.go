package admin

import (
	"context"
	"encoding/json"
	"time"

	"go-attend/internal/attendance"
	"go-attend/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const usersCacheKey = "admin:users:role_user"

//go:generate mockgen -source=admin_service.go -destination=mock/admin_service_mock.go -package=mock
type Service interface {
	ListUsers(ctx context.Context) ([]user.UserResponse, error)
	GetUserAttendance(ctx context.Context, userID, month string) (attendance.MonthlyReport, error)
}

type service struct {
	users      user.Service
	attendance attendance.Service
	rdb        *redis.Client
	sf         *singleflight.Group
	logger     *zap.Logger
}

func NewService(users user.Service, attendanceService attendance.Service, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("admin.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("admin.service")
	}
	return &service{
		users:      users,
		attendance: attendanceService,
		rdb:        rdb,
		sf:         &singleflight.Group{},
		logger:     l,
	}
}

// ListUsers mengembalikan semua akun role=user urut empId. Daftarnya jarang
// berubah, jadi dilayani dari cache Redis dengan singleflight.
func (s *service) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, usersCacheKey).Result(); err == nil {
			var resp []user.UserResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(usersCacheKey, func() (interface{}, error) {
		resp, err := s.users.ListUsers(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, usersCacheKey, jsonData, 5*time.Minute)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]user.UserResponse), nil
}

// GetUserAttendance menjalankan rekonsiliasi bulanan atas nama user lain.
// Logikanya satu sumber dengan endpoint self-service.
func (s *service) GetUserAttendance(ctx context.Context, userID, month string) (attendance.MonthlyReport, error) {
	report, err := s.attendance.ReconcileMonth(ctx, userID, month)
	if err != nil {
		s.logger.Error("reconcile month failed",
			zap.String("user_id", userID),
			zap.String("month", month),
			zap.Error(err),
		)
		return attendance.MonthlyReport{}, err
	}
	return report, nil
}
