// Package phone normalises user supplied phone numbers to E.164.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	// ErrInvalidNumber is returned when the input cannot be parsed or is not a
	// dialable number for its region.
	ErrInvalidNumber = errors.New("phone: invalid phone number")
)

// Normalizer turns raw input into a canonical phone number.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

// E164 formats numbers as +<country><subscriber>. Numbers without a leading
// "+" are parsed against Region.
type E164 struct {
	region string
}

// NewE164 returns an E164 normalizer. An empty region defaults to "ID".
func NewE164(region string) *E164 {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = "ID"
	}
	return &E164{region: region}
}

// Normalize parses raw and returns its E.164 form.
func (e *E164) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidNumber
	}

	num, err := phonenumbers.Parse(raw, e.region)
	if err != nil {
		return "", errors.Join(ErrInvalidNumber, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
