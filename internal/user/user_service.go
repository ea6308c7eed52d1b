package user

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"go-attend/internal/face"
	"go-attend/internal/shared/apperror"
	usererrors "go-attend/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	GetMe(ctx context.Context, userID string) (UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
	GetFaceDescriptor(ctx context.Context, userID string) (FaceDescriptorResponse, error)
	UpdateFaceDescriptor(ctx context.Context, userID string, req UpdateFaceDescriptorRequest) error
	ListUsers(ctx context.Context) ([]UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (AuthResponse, error) {
	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return AuthResponse{}, usererrors.ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AuthResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Looking up user failed", 500)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		FullName: req.FullName,
		EmpID:    req.EmpID,
		Role:     req.Role,
		Position: req.Position,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return AuthResponse{}, usererrors.ErrUserAlreadyExists
	}

	token, err := generateToken(u.ID.String(), u.Role)
	if err != nil {
		return AuthResponse{}, usererrors.ErrTokenGenerationFailed
	}

	return AuthResponse{
		ID:      u.ID.String(),
		Token:   token,
		IsAdmin: u.Role == RoleAdmin,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, usererrors.ErrUserNotFound
		}
		return AuthResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Looking up user failed", 500)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return AuthResponse{}, usererrors.ErrInvalidCredentials
	}

	token, err := generateToken(u.ID.String(), u.Role)
	if err != nil {
		return AuthResponse{}, usererrors.ErrTokenGenerationFailed
	}

	return AuthResponse{
		ID:      u.ID.String(),
		Token:   token,
		IsAdmin: u.Role == RoleAdmin,
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (UserResponse, error) {
	u, err := s.getByStringID(ctx, userID)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(u), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserResponse, error) {
	u, err := s.getByStringID(ctx, userID)
	if err != nil {
		return UserResponse{}, err
	}

	u.FullName = req.FullName
	u.EmpID = req.EmpID
	u.Role = req.Role
	u.Position = req.Position

	if err := s.repo.Update(ctx, u); err != nil {
		return UserResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Updating profile failed", 500)
	}
	return mapToResponse(u), nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	u, err := s.getByStringID(ctx, userID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, u.ID, string(hashed))
}

func (s *service) GetFaceDescriptor(ctx context.Context, userID string) (FaceDescriptorResponse, error) {
	u, err := s.getByStringID(ctx, userID)
	if err != nil {
		return FaceDescriptorResponse{}, err
	}

	if len(u.FaceDescriptor) == 0 {
		return FaceDescriptorResponse{}, usererrors.ErrNoFaceDescriptor
	}

	var descriptor []float64
	if err := json.Unmarshal(u.FaceDescriptor, &descriptor); err != nil {
		return FaceDescriptorResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "Stored face descriptor is corrupt", 500)
	}

	return FaceDescriptorResponse{
		Descriptor: descriptor,
		BaseImage:  u.BaseFaceImage,
	}, nil
}

func (s *service) UpdateFaceDescriptor(ctx context.Context, userID string, req UpdateFaceDescriptorRequest) error {
	if !face.IsValidDescriptor(req.Descriptor) {
		return usererrors.ErrInvalidDescriptor
	}

	u, err := s.getByStringID(ctx, userID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(req.Descriptor)
	if err != nil {
		return err
	}
	u.FaceDescriptor = raw
	if req.BaseImage != nil {
		u.BaseFaceImage = req.BaseImage
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "Updating face descriptor failed", 500)
	}
	return nil
}

func (s *service) ListUsers(ctx context.Context) ([]UserResponse, error) {
	rows, err := s.repo.ListByRole(ctx, RoleUser)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Listing users failed", 500)
	}

	res := make([]UserResponse, len(rows))
	for i := range rows {
		res[i] = mapToResponse(&rows[i])
	}
	return res, nil
}

func (s *service) getByStringID(ctx context.Context, userID string) (*User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Looking up user failed", 500)
	}
	return u, nil
}

func generateToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(u *User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		FullName: u.FullName,
		EmpID:    u.EmpID,
		Role:     u.Role,
		Position: u.Position,
		Email:    u.Email,
	}
}
