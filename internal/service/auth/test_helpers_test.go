package auth

import (
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
)

// NewTestJWTService creates a JWT service with a fixed secret, lifetime and clock.
func NewTestJWTService(secret string, lifetime time.Duration, timeFunc func() time.Time) JWTService {
	svc, err := NewJWTServiceWithClock(config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: int(lifetime / time.Minute),
	}, timeFunc)
	if err != nil {
		// ALLOW-PANIC
		panic(err)
	}
	return svc
}
