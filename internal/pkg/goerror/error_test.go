package goerror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		msg  string
	}{
		{"server", NewServer(errors.New("db down")), http.StatusInternalServerError, "Internal server error"},
		{"delivery", NewDelivery(errors.New("smtp")), http.StatusInternalServerError, "Failed to send OTP email"},
		{"invalid otp", NewBusiness("Invalid OTP code", CodeInvalidOTP), http.StatusBadRequest, "Invalid OTP code"},
		{"expired", NewBusiness("OTP has expired", CodeExpired), http.StatusBadRequest, "OTP has expired"},
		{"conflict", NewBusiness("Email already registered", CodeConflict), http.StatusBadRequest, "Email already registered"},
		{"not found", NewBusiness("No account", CodeNotFound), http.StatusNotFound, "No account"},
		{"unauthorized", NewBusiness("nope", CodeUnauthorized), http.StatusUnauthorized, "nope"},
		{"throttled", NewBusiness("slow down", CodeTooManyRequest), http.StatusTooManyRequests, "slow down"},
		{"format", NewInvalidFormat(), http.StatusBadRequest, "Invalid request body"},
		{"unknown code", NewBusiness("x", Code(99)), http.StatusInternalServerError, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			var ge *Error
			ok := errors.As(tt.err, &ge)

			// Assert
			assert.True(t, ok)
			assert.Equal(t, tt.want, ge.StatusCode())
			assert.Equal(t, tt.msg, ge.Msg())
		})
	}
}

func TestNewInvalidInput(t *testing.T) {
	// Arrange
	cause := errors.New("email is required")

	// Act
	wrapped := NewInvalidInput(cause)
	pairs := NewInvalidInput(nil, "phone_number", "Invalid phone number format")
	odd := NewInvalidInput(nil, "phone_number")

	// Assert
	assert.ErrorIs(t, wrapped, cause)
	assert.True(t, HasCode(wrapped, CodeInvalidInput))

	var ge *Error
	assert.True(t, errors.As(pairs, &ge))
	assert.Equal(t, map[string]string{"phone_number": "Invalid phone number format"}, ge.Fields())

	assert.True(t, HasCode(odd, CodeInvalidFormat))
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewBusiness("OTP has expired", CodeExpired))

	assert.True(t, HasCode(err, CodeExpired))
	assert.False(t, HasCode(err, CodeInvalidOTP))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
}

func TestCode_String(t *testing.T) {
	assert.Equal(t, "ERROR_CODE_INVALID_OTP", CodeInvalidOTP.String())
	assert.Equal(t, "ERROR_CODE_INTERNAL", Code(99).String())
	assert.Equal(t, "ERROR_TYPE_UNKNOWN", Type(9).String())
}
