// Package otp produces the numeric one-time codes mailed to users. Codes are
// HOTP values (RFC 4226) computed over a fresh random secret and counter, so
// each code is independent of every other and carries no reusable seed.
package otp

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// Generator produces one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Code generates zero-padded decimal codes of a fixed length.
type Code struct {
	digits otp.Digits
	random io.Reader
}

// NewCode returns a Code generator. Anything other than 8 digits yields 6.
func NewCode(digits int) *Code {
	d := otp.DigitsSix
	if digits == 8 {
		d = otp.DigitsEight
	}

	return &Code{digits: d, random: rand.Reader}
}

// Length reports how many digits each generated code has.
func (c *Code) Length() int {
	return c.digits.Length()
}

// Generate returns a new code.
func (c *Code) Generate() (string, error) {
	var buf [28]byte // 20-byte secret + 8-byte counter
	if _, err := io.ReadFull(c.random, buf[:]); err != nil {
		return "", fmt.Errorf("otp: read random: %w", err)
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:20])
	counter := binary.BigEndian.Uint64(buf[20:])

	return hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    c.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
}
