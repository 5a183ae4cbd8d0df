package inbound

import (
	"github.com/shandysiswandi/bazaar/internal/identity/entity"
	"github.com/shandysiswandi/bazaar/internal/identity/usecase"
	"github.com/shandysiswandi/bazaar/internal/pkg/router"
)

// HTTPEndpoint exposes the one-time code, registration, password and session
// workflows over HTTP.
type HTTPEndpoint struct {
	uc uc
}

func tokens(p entity.TokenPair) TokenResponse {
	return TokenResponse{Access: p.AccessToken, Refresh: p.RefreshToken}
}

// SendOTP emails a registration code.
// @Summary Send registration OTP
// @Description Issues a 6-digit code for an email that has no account yet and emails it.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Email to verify"
// @Success 200 {object} router.successResponse "OTP sent successfully"
// @Failure 400 {object} router.errorResponse "Invalid email or account already exists"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Failed to send OTP email"
// @Router /otp/send [post]
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return SendOTPResponse{}, nil
}

// VerifyOTP exchanges a registration code for a short token.
// @Summary Verify registration OTP
// @Description Checks the latest code for the email and returns the short token that completes registration.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Email and code"
// @Success 200 {object} router.successResponse{data=VerifyOTPResponse} "OTP verified successfully"
// @Failure 400 {object} router.errorResponse "Invalid OTP code or OTP has expired"
// @Router /otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{Email: req.Email, Code: req.Code})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{ShortToken: resp.ShortToken}, nil
}

// Register creates the account once the short token is redeemed.
// @Summary Register user
// @Description Redeems the short token and creates the account in one step. Send an Idempotency-Key header to make retries safe.
// @Tags Identity, Registration
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client retry key"
// @Param request body RegisterRequest true "Registration payload"
// @Success 201 {object} router.successResponse{data=RegisterResponse} "User created successfully"
// @Failure 400 {object} router.errorResponse "Validation error, conflict, or invalid short token"
// @Failure 409 {object} router.errorResponse "Request already processed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		ShortToken:      req.ShortToken,
		PhoneNumber:     req.PhoneNumber,
		Country:         req.Country,
		Province:        req.Province,
		City:            req.City,
		PostalCode:      req.PostalCode,
		FullAddress:     req.FullAddress,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{TokenResponse: tokens(resp.TokenPair)}, nil
}

// ForgotPassword emails a password reset code.
// @Summary Request password reset
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} router.successResponse "OTP sent successfully"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 404 {object} router.errorResponse "No account found with this email"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Failed to send OTP email"
// @Router /forgot-password [post]
func (h *HTTPEndpoint) ForgotPassword(r *router.Request) (any, error) {
	var req ForgotPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ForgotPassword(r.Context(), usecase.ForgotPasswordInput{Email: req.Email}); err != nil {
		return nil, err
	}

	return ForgotPasswordResponse{}, nil
}

// ResetPassword sets a new password using the emailed code.
// @Summary Reset password
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client retry key"
// @Param request body ResetPasswordRequest true "Reset payload"
// @Success 200 {object} router.successResponse "Password reset successfully"
// @Failure 400 {object} router.errorResponse "Invalid OTP code, OTP has expired, or validation error"
// @Failure 404 {object} router.errorResponse "No account found with this email"
// @Router /reset-password [post]
func (h *HTTPEndpoint) ResetPassword(r *router.Request) (any, error) {
	var req ResetPasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ResetPassword(r.Context(), usecase.ResetPasswordInput{
		Email:           req.Email,
		Code:            req.Code,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return nil, err
	}

	return ResetPasswordResponse{}, nil
}

// SendVerification emails a code to the signed-in account.
// @Summary Send verification code
// @Tags Identity, Verification
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse "Verification code sent successfully"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Failure 500 {object} router.errorResponse "Failed to send OTP email"
// @Router /verification/send [post]
func (h *HTTPEndpoint) SendVerification(r *router.Request) (any, error) {
	if err := h.uc.SendVerification(r.Context()); err != nil {
		return nil, err
	}

	return SendVerificationResponse{}, nil
}

// ConfirmVerification checks the code sent to the signed-in account.
// @Summary Confirm verification code
// @Tags Identity, Verification
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ConfirmVerificationRequest true "Code"
// @Success 200 {object} router.successResponse{data=ConfirmVerificationResponse} "Email verified successfully"
// @Failure 400 {object} router.errorResponse "Invalid OTP code or OTP has expired"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /verification/verify [post]
func (h *HTTPEndpoint) ConfirmVerification(r *router.Request) (any, error) {
	var req ConfirmVerificationRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ConfirmVerification(r.Context(), usecase.ConfirmVerificationInput{Code: req.Code})
	if err != nil {
		return nil, err
	}

	return ConfirmVerificationResponse{ShortToken: resp.ShortToken}, nil
}

// Login authenticates with email and password.
// @Summary Login
// @Tags Identity, Session
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Login successful"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Invalid email or password"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Router /login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		TokenResponse: tokens(resp.TokenPair),
		User: UserSummary{
			ID:              resp.Account.ID,
			Username:        resp.Account.Username,
			Email:           resp.Account.Email,
			PhoneNumber:     resp.Account.PhoneNumber,
			IsSetupComplete: resp.Account.IsSetupComplete,
		},
	}, nil
}

// Logout revokes a refresh token.
// @Summary Logout
// @Tags Identity, Session
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} router.successResponse "Logged out successfully"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Router /logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	var req LogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{RefreshToken: req.Refresh}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// RefreshToken rotates a refresh token.
// @Summary Refresh tokens
// @Tags Identity, Session
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} router.successResponse{data=RefreshTokenResponse} "Token refreshed successfully"
// @Failure 401 {object} router.errorResponse "Invalid or expired refresh token"
// @Router /token/refresh [post]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	var req RefreshTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: req.Refresh})
	if err != nil {
		return nil, err
	}

	return RefreshTokenResponse{TokenResponse: tokens(*resp)}, nil
}

// ChangePassword replaces the signed-in account's password.
// @Summary Change password
// @Tags Identity, Password
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} router.successResponse "Password changed successfully"
// @Failure 400 {object} router.errorResponse "Validation error or incorrect old password"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /password/change [post]
func (h *HTTPEndpoint) ChangePassword(r *router.Request) (any, error) {
	var req ChangePasswordRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ChangePassword(r.Context(), usecase.ChangePasswordInput{
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
		RefreshToken:       req.RefreshToken,
	}); err != nil {
		return nil, err
	}

	return ChangePasswordResponse{}, nil
}
