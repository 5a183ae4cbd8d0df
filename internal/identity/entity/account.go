package entity

import "time"

// Account is a registered user as held by the credential store.
type Account struct {
	ID              int64
	Username        string
	Email           string
	PasswordHash    string
	PhoneNumber     string
	Country         string
	Province        string
	City            string
	PostalCode      string
	FullAddress     string
	EmailVerifiedAt *time.Time
	IsSetupComplete bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Account) EmailVerified() bool {
	return a.EmailVerifiedAt != nil
}

type Session struct {
	ID        int64
	AccountID int64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Usable reports whether the refresh token behind s can still be exchanged.
func (s Session) Usable(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
