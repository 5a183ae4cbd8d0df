package inbound

import "net/http"

type SendOTPRequest struct {
	Email string `json:"email" example:"jane@example.com"`
}

type SendOTPResponse struct{}

func (SendOTPResponse) Message() string { return "OTP sent successfully" }

type VerifyOTPRequest struct {
	Email string `json:"email" example:"jane@example.com"`
	Code  string `json:"code" example:"123456"`
}

type VerifyOTPResponse struct {
	ShortToken string `json:"short_token" example:"k3J9aQ2mZx7LwP0rT5bV8nC1dF4gH6jY"`
}

func (VerifyOTPResponse) Message() string { return "OTP verified successfully" }

type RegisterRequest struct {
	Username        string `json:"username" example:"jane"`
	Email           string `json:"email" example:"jane@example.com"`
	Password        string `json:"password" example:"S3cure!pass"`
	ConfirmPassword string `json:"confirm_password" example:"S3cure!pass"`
	ShortToken      string `json:"short_token" example:"k3J9aQ2mZx7LwP0rT5bV8nC1dF4gH6jY"`
	PhoneNumber     string `json:"phone_number,omitempty" example:"+6281234567890"`
	Country         string `json:"country,omitempty" example:"Indonesia"`
	Province        string `json:"province,omitempty" example:"DKI Jakarta"`
	City            string `json:"city,omitempty" example:"Jakarta"`
	PostalCode      string `json:"postal_code,omitempty" example:"10110"`
	FullAddress     string `json:"full_address,omitempty" example:"Jl. Merdeka No. 1"`
}

type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RegisterResponse struct {
	TokenResponse
}

func (RegisterResponse) StatusCode() int { return http.StatusCreated }
func (RegisterResponse) Message() string { return "User created successfully" }

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"jane@example.com"`
}

type ForgotPasswordResponse struct{}

func (ForgotPasswordResponse) Message() string { return "OTP sent successfully" }

type ResetPasswordRequest struct {
	Email           string `json:"email" example:"jane@example.com"`
	Code            string `json:"code" example:"123456"`
	NewPassword     string `json:"new_password" example:"N3w!secret"`
	ConfirmPassword string `json:"confirm_password" example:"N3w!secret"`
}

type ResetPasswordResponse struct{}

func (ResetPasswordResponse) Message() string { return "Password reset successfully" }

type SendVerificationResponse struct{}

func (SendVerificationResponse) Message() string { return "Verification code sent successfully" }

type ConfirmVerificationRequest struct {
	Code string `json:"code" example:"123456"`
}

type ConfirmVerificationResponse struct {
	ShortToken string `json:"short_token"`
}

func (ConfirmVerificationResponse) Message() string { return "Email verified successfully" }

type LoginRequest struct {
	Email    string `json:"email" example:"jane@example.com"`
	Password string `json:"password" example:"S3cure!pass"`
}

type UserSummary struct {
	ID              int64  `json:"id" example:"1790451384623104"`
	Username        string `json:"username" example:"jane"`
	Email           string `json:"email" example:"jane@example.com"`
	PhoneNumber     string `json:"phone_number" example:"+6281234567890"`
	IsSetupComplete bool   `json:"is_setup_complete" example:"false"`
}

type LoginResponse struct {
	TokenResponse
	User UserSummary `json:"user"`
}

func (LoginResponse) Message() string { return "Login successful" }

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string { return "Logged out successfully" }

type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshTokenResponse struct {
	TokenResponse
}

func (RefreshTokenResponse) Message() string { return "Token refreshed successfully" }

type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password" example:"S3cure!pass"`
	NewPassword        string `json:"new_password" example:"N3w!secret"`
	ConfirmNewPassword string `json:"confirm_new_password" example:"N3w!secret"`
	RefreshToken       string `json:"refresh_token"`
}

type ChangePasswordResponse struct{}

func (ChangePasswordResponse) Message() string { return "Password changed successfully" }
