package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-attend/internal/user"
	usererrors "go-attend/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeUserService struct {
	signupFn               func(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error)
	loginFn                func(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error)
	getMeFn                func(ctx context.Context, userID string) (user.UserResponse, error)
	updateProfileFn        func(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.UserResponse, error)
	changePasswordFn       func(ctx context.Context, userID string, req user.ChangePasswordRequest) error
	getFaceDescriptorFn    func(ctx context.Context, userID string) (user.FaceDescriptorResponse, error)
	updateFaceDescriptorFn func(ctx context.Context, userID string, req user.UpdateFaceDescriptorRequest) error
	listUsersFn            func(ctx context.Context) ([]user.UserResponse, error)
}

func (f *fakeUserService) Signup(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error) {
	return f.signupFn(ctx, req)
}
func (f *fakeUserService) Login(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error) {
	return f.loginFn(ctx, req)
}
func (f *fakeUserService) GetMe(ctx context.Context, userID string) (user.UserResponse, error) {
	return f.getMeFn(ctx, userID)
}
func (f *fakeUserService) UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (user.UserResponse, error) {
	return f.updateProfileFn(ctx, userID, req)
}
func (f *fakeUserService) ChangePassword(ctx context.Context, userID string, req user.ChangePasswordRequest) error {
	return f.changePasswordFn(ctx, userID, req)
}
func (f *fakeUserService) GetFaceDescriptor(ctx context.Context, userID string) (user.FaceDescriptorResponse, error) {
	return f.getFaceDescriptorFn(ctx, userID)
}
func (f *fakeUserService) UpdateFaceDescriptor(ctx context.Context, userID string, req user.UpdateFaceDescriptorRequest) error {
	return f.updateFaceDescriptorFn(ctx, userID, req)
}
func (f *fakeUserService) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	return f.listUsersFn(ctx)
}

func TestUserHandler_Signup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			signupFn: func(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error) {
				assert.Equal(t, "EMP-007", req.EmpID)
				return user.AuthResponse{ID: uuid.New().String(), Token: "token-123", IsAdmin: false}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"fullname":"Hana Pertiwi","empId":"EMP-007","role":"user","position":"Backend Engineer","email":"hana@example.com","password":"sup3r-secret"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Signup(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got user.AuthResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, "token-123", got.Token)
	})

	t.Run("negative short password", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"fullname":"Hana","empId":"EMP-007","role":"user","position":"Engineer","email":"hana@example.com","password":"short"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Signup(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"fullname":"Hana","empId":"EMP-007","role":"superuser","position":"Engineer","email":"hana@example.com","password":"sup3r-secret"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Signup(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative duplicate account", func(t *testing.T) {
		svc := &fakeUserService{
			signupFn: func(ctx context.Context, req user.SignupRequest) (user.AuthResponse, error) {
				return user.AuthResponse{}, usererrors.ErrUserAlreadyExists
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"fullname":"Hana","empId":"EMP-007","role":"user","position":"Engineer","email":"hana@example.com","password":"sup3r-secret"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/signup", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Signup(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})
}

func TestUserHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			loginFn: func(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error) {
				assert.Equal(t, "hana@example.com", req.Email)
				return user.AuthResponse{ID: uuid.New().String(), Token: "token-456", IsAdmin: true}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"hana@example.com","password":"sup3r-secret"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got user.AuthResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.True(t, got.IsAdmin)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		svc := &fakeUserService{
			loginFn: func(ctx context.Context, req user.LoginRequest) (user.AuthResponse, error) {
				return user.AuthResponse{}, usererrors.ErrInvalidCredentials
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"hana@example.com","password":"wrong-password"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
		assert.Equal(t, "Invalid password. Please try again or reset.", env.Error.Message)
	})
}

func TestUserHandler_WhoAmI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	svc := &fakeUserService{
		getMeFn: func(ctx context.Context, uid string) (user.UserResponse, error) {
			assert.Equal(t, userID, uid)
			return user.UserResponse{ID: uid, EmpID: "EMP-007"}, nil
		},
	}

	h := user.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/users/whoami", nil)
	c.Set("user_id_validated", userID)

	h.WhoAmI(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	var got user.UserResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "EMP-007", got.EmpID)
}

func TestUserHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	t.Run("success uses path param id", func(t *testing.T) {
		svc := &fakeUserService{
			changePasswordFn: func(ctx context.Context, uid string, req user.ChangePasswordRequest) error {
				assert.Equal(t, userID, uid)
				assert.Equal(t, "new-password-1", req.NewPassword)
				return nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"newPassword":"new-password-1","confirmNewPassword":"new-password-1"}`
		c.Request = httptest.NewRequest(http.MethodPut, "/users/change-password/"+userID, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: userID}}

		h.ChangePassword(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative mismatched confirmation", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"newPassword":"new-password-1","confirmNewPassword":"different-pass"}`
		c.Request = httptest.NewRequest(http.MethodPut, "/users/change-password/"+userID, strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: userID}}

		h.ChangePassword(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestUserHandler_FaceDescriptor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New().String()

	t.Run("get success", func(t *testing.T) {
		svc := &fakeUserService{
			getFaceDescriptorFn: func(ctx context.Context, uid string) (user.FaceDescriptorResponse, error) {
				return user.FaceDescriptorResponse{Descriptor: make([]float64, 128)}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/face-descriptor", nil)
		c.Set("user_id_validated", userID)

		h.GetFaceDescriptor(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got user.FaceDescriptorResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got.Descriptor, 128)
	})

	t.Run("negative get before enrollment", func(t *testing.T) {
		svc := &fakeUserService{
			getFaceDescriptorFn: func(ctx context.Context, uid string) (user.FaceDescriptorResponse, error) {
				return user.FaceDescriptorResponse{}, usererrors.ErrNoFaceDescriptor
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users/face-descriptor", nil)
		c.Set("user_id_validated", userID)

		h.GetFaceDescriptor(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update success", func(t *testing.T) {
		svc := &fakeUserService{
			updateFaceDescriptorFn: func(ctx context.Context, uid string, req user.UpdateFaceDescriptorRequest) error {
				assert.Equal(t, userID, uid)
				assert.Len(t, req.Descriptor, 3)
				return nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"descriptor":[0.1,0.2,0.3]}`
		c.Request = httptest.NewRequest(http.MethodPut, "/users/face-descriptor", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id_validated", userID)

		h.UpdateFaceDescriptor(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
