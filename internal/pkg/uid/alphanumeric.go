package uid

import (
	"crypto/rand"
	"io"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Alphanumeric generates uniformly distributed [A-Za-z0-9] strings from crypto/rand.
type Alphanumeric struct {
	length int
	random io.Reader
}

// NewAlphanumeric returns a generator of strings with the given length.
func NewAlphanumeric(length int) *Alphanumeric {
	return &Alphanumeric{length: length, random: rand.Reader}
}

// Generate returns a new random string. It panics only if the system
// randomness source fails, which crypto/rand documents as unrecoverable.
func (a *Alphanumeric) Generate() string {
	out, err := a.generate()
	if err != nil {
		panic("uid: crypto/rand failed: " + err.Error())
	}
	return out
}

func (a *Alphanumeric) generate() (string, error) {
	// 62 * 4 = 248: bytes >= 248 are rejected to keep the distribution uniform.
	const limit = byte(len(alphanumeric) * 4)

	out := make([]byte, 0, a.length)
	buf := make([]byte, a.length+a.length/4+1)
	for len(out) < a.length {
		if _, err := io.ReadFull(a.random, buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, alphanumeric[b%byte(len(alphanumeric))])
			if len(out) == a.length {
				break
			}
		}
	}

	return string(out), nil
}
