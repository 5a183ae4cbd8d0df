// Package config exposes typed read access to the service configuration.
package config

import (
	"io"
	"time"
)

// Config is the read-only view of configuration used by the application.
//
// Missing keys resolve to the zero value of the requested type, so callers
// that need a non-zero fallback register it through WithDefaults.
type Config interface {
	io.Closer

	GetInt(key string) int
	GetInt32(key string) int32
	GetInt64(key string) int64
	GetUint(key string) uint
	GetUint16(key string) uint16
	GetUint32(key string) uint32
	GetUint64(key string) uint64
	GetFloat64(key string) float64
	GetBool(key string) bool
	GetString(key string) string

	// GetBinary decodes a base64 value; invalid input yields nil.
	GetBinary(key string) []byte
	// GetArray splits a comma separated value, dropping blank items.
	GetArray(key string) []string
	// GetMap parses "k:v,k:v" pairs.
	GetMap(key string) map[string]string

	// GetSecond, GetMinute, GetHour and GetDay read an integer and scale it.
	GetSecond(key string) time.Duration
	GetMinute(key string) time.Duration
	GetHour(key string) time.Duration
	GetDay(key string) time.Duration
}
