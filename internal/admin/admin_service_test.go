package admin_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-attend/internal/admin"
	"go-attend/internal/attendance"
	attendanceerrors "go-attend/internal/attendance/errors"
	"go-attend/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUserService struct {
	listUsersFn func(ctx context.Context) ([]user.UserResponse, error)
}

func (f *fakeUserService) Signup(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error) {
	panic("not used")
}
func (f *fakeUserService) Login(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error) {
	panic("not used")
}
func (f *fakeUserService) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	panic("not used")
}
func (f *fakeUserService) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.UserResponse, error) {
	panic("not used")
}
func (f *fakeUserService) ChangePassword(ctx context.Context, userID string, req user.ChangePasswordRequest) error {
	panic("not used")
}
func (f *fakeUserService) GetFaceDescriptor(ctx context.Context, userID string) (user.FaceDescriptorResponse, error) {
	panic("not used")
}
func (f *fakeUserService) UpdateFaceDescriptor(ctx context.Context, userID string, req user.UpdateFaceDescriptorRequest) error {
	panic("not used")
}
func (f *fakeUserService) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	return f.listUsersFn(ctx)
}

type fakeAttendanceService struct {
	reconcileMonthFn func(ctx context.Context, userID, month string) (attendance.MonthlyReport, error)
}

func (f *fakeAttendanceService) LogCheckIn(ctx context.Context, userID string, req attendance.LogCheckInRequest) (attendance.AttendanceResponse, error) {
	panic("not used")
}
func (f *fakeAttendanceService) LogCheckOut(ctx context.Context, userID string, req attendance.LogCheckOutRequest) (attendance.AttendanceResponse, error) {
	panic("not used")
}
func (f *fakeAttendanceService) ReconcileMonth(ctx context.Context, userID, month string) (attendance.MonthlyReport, error) {
	return f.reconcileMonthFn(ctx, userID, month)
}
func (f *fakeAttendanceService) LogDiscordAbsence(ctx context.Context, userID, date string) error {
	panic("not used")
}

const usersCacheKey = "admin:users:role_user"

func TestAdminService_ListUsers(t *testing.T) {
	ctx := context.Background()
	users := []user.UserResponse{
		{ID: uuid.New().String(), EmpID: "EMP-001", FullName: "Agus"},
		{ID: uuid.New().String(), EmpID: "EMP-002", FullName: "Budi"},
	}

	t.Run("cache miss loads from service and caches", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		called := 0
		usersSvc := &fakeUserService{
			listUsersFn: func(ctx context.Context) ([]user.UserResponse, error) {
				called++
				return users, nil
			},
		}

		redisMock.ExpectGet(usersCacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(usersCacheKey, `.*`, 5*time.Minute).SetVal("OK")

		svc := admin.NewService(usersSvc, &fakeAttendanceService{}, rdb, zap.NewNop())
		got, err := svc.ListUsers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, users, got)
		assert.Equal(t, 1, called)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache hit skips the service", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		usersSvc := &fakeUserService{
			listUsersFn: func(ctx context.Context) ([]user.UserResponse, error) {
				t.Fatal("service must not be called on cache hit")
				return nil, nil
			},
		}

		jsonData, err := json.Marshal(users)
		assert.NoError(t, err)
		redisMock.ExpectGet(usersCacheKey).SetVal(string(jsonData))

		svc := admin.NewService(usersSvc, &fakeAttendanceService{}, rdb, zap.NewNop())
		got, err := svc.ListUsers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, users, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("nil redis still serves the list", func(t *testing.T) {
		usersSvc := &fakeUserService{
			listUsersFn: func(ctx context.Context) ([]user.UserResponse, error) {
				return users, nil
			},
		}

		svc := admin.NewService(usersSvc, &fakeAttendanceService{}, nil, zap.NewNop())
		got, err := svc.ListUsers(ctx)

		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestAdminService_GetUserAttendance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("delegates to the reconciliation engine", func(t *testing.T) {
		attendanceSvc := &fakeAttendanceService{
			reconcileMonthFn: func(ctx context.Context, uid, month string) (attendance.MonthlyReport, error) {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "2024-02", month)
				return attendance.MonthlyReport{Presents: 18, DaysInMonth: 21}, nil
			},
		}

		svc := admin.NewService(&fakeUserService{}, attendanceSvc, nil, zap.NewNop())
		report, err := svc.GetUserAttendance(ctx, userID, "2024-02")

		assert.NoError(t, err)
		assert.Equal(t, 18, report.Presents)
	})

	t.Run("negative propagates invalid month", func(t *testing.T) {
		attendanceSvc := &fakeAttendanceService{
			reconcileMonthFn: func(ctx context.Context, uid, month string) (attendance.MonthlyReport, error) {
				return attendance.MonthlyReport{}, attendanceerrors.ErrInvalidMonthFormat
			},
		}

		svc := admin.NewService(&fakeUserService{}, attendanceSvc, nil, zap.NewNop())
		_, err := svc.GetUserAttendance(ctx, userID, "feb-2024")
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonthFormat)
	})
}
