package user

type SignupRequest struct {
	FullName string `json:"fullname" binding:"required"`
	EmpID    string `json:"empId" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
	Position string `json:"position" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=1024"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=1024"`
}

type UpdateProfileRequest struct {
	FullName string `json:"fullname" binding:"required"`
	EmpID    string `json:"empId" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin user"`
	Position string `json:"position" binding:"required"`
}

type ChangePasswordRequest struct {
	NewPassword        string `json:"newPassword" binding:"required,min=8,max=1024"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required,eqfield=NewPassword"`
}

type UpdateFaceDescriptorRequest struct {
	Descriptor []float64 `json:"descriptor" binding:"required"`
	BaseImage  *string   `json:"baseImage"`
}

type AuthResponse struct {
	ID      string `json:"id"`
	Token   string `json:"token"`
	IsAdmin bool   `json:"isAdmin"`
}

type UserResponse struct {
	ID       string `json:"id"`
	FullName string `json:"fullname"`
	EmpID    string `json:"empId"`
	Role     string `json:"role"`
	Position string `json:"position"`
	Email    string `json:"email"`
}

type FaceDescriptorResponse struct {
	Descriptor []float64 `json:"descriptor"`
	BaseImage  *string   `json:"baseImage"`
}
