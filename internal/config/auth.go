package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type AuthConfig struct {
	JWTSecret      string
	TokenTTLMinute int
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			secret = "change_this_to_a_long_random_secret"
			log.Println("Warning: JWT_SECRET not set, using insecure default")
		}
		ttl := 30 * 24 * 60 // 30 days
		if v := os.Getenv("TOKEN_TTL_MINUTES"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				ttl = parsed
			}
		}
		authConfig = &AuthConfig{
			JWTSecret:      secret,
			TokenTTLMinute: ttl,
		}
	})
	return authConfig
}
