package models

type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type TokenResponse struct {
	Token string   `json:"token"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type RedeemPointsRequest struct {
	Points int64 `json:"points" validate:"required,gt=0"`
}

type RedeemPointsResponse struct {
	PointsRedeemed  int64 `json:"points_redeemed"`
	RemainingPoints int64 `json:"remaining_points"`
}
