// Package timeouts provides centralized timeout values for store and
// blob operations.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads and set-field toggles
//   - Medium: list queries and feed assembly
//   - Long: multi-step writes such as post creation with media uploads
package timeouts

import (
	"os"
	"sync"
	"time"
)

const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document reads and writes.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and feed assembly.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-step operations such as post
// creation, which waits on every media upload.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}

// ConfigureFromEnv overrides timeouts from environment variables
// (TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM, TIMEOUT_LONG). Unset
// or invalid values keep the defaults. Returns the number of values
// applied.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()
	applied := 0

	for _, v := range []struct {
		env string
		dst *time.Duration
	}{
		{"TIMEOUT_PING", &ping},
		{"TIMEOUT_SHORT", &short},
		{"TIMEOUT_MEDIUM", &medium},
		{"TIMEOUT_LONG", &long},
	} {
		if s := os.Getenv(v.env); s != "" {
			if d, err := time.ParseDuration(s); err == nil && d > 0 {
				*v.dst = d
				applied++
			}
		}
	}
	return applied
}

// Reset restores the default values. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	long = DefaultLong
}
