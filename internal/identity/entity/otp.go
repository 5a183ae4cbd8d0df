package entity

import "time"

// Purpose scopes a ledger entry to one flow. A code issued for one purpose
// never matches a lookup for another.
type Purpose string

const (
	PurposeRegistration  Purpose = "registration"
	PurposePasswordReset Purpose = "password_reset"
	PurposeVerification  Purpose = "verification"
)

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) Valid() bool {
	switch p {
	case PurposeRegistration, PurposePasswordReset, PurposeVerification:
		return true
	default:
		return false
	}
}

// OTP is one ledger entry. Neither the code nor the short token is stored in
// clear: both are kept as HMAC digests, and the short token is additionally
// sealed so it can be handed back on repeated verification.
type OTP struct {
	ID               int64
	Identifier       string
	Purpose          Purpose
	AccountID        int64 // 0 when the entry is not bound to an account
	CodeHash         string
	ShortTokenHash   string
	ShortTokenSealed []byte
	ExpiresAt        time.Time
	CreatedAt        time.Time
}

// Expired reports whether the entry is past its validity window at now.
func (o OTP) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}
