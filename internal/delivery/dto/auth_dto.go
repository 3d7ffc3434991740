package dto

// Request DTOs

type SignupRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
	Role  string `json:"role" validate:"omitempty,oneof=PATIENT DOCTOR PHARMACIST RIDER"`
}

type VerifyRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=20"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type SignupResponse struct {
	PublicID string `json:"public_id"`
	// DebugOTP is only populated outside production; the real gateway is a
	// mock.
	DebugOTP string `json:"debug_otp,omitempty"`
}

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}
