package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/metavr/dashauth/pkg/httpx"
	"github.com/metavr/dashauth/pkg/sessionx"
)

// ErrConfiguration is returned by Validate. Startup must abort on it.
var ErrConfiguration = sessionx.ErrConfiguration

type Config struct {
	Secret            string `env:"SESSION_SECRET"`     // Required in every mode
	PublicKeyPEM      string `env:"SESSION_PUBLIC_KEY"` // Optional: switches to verify-only RS256
	Issuer            string `env:"SESSION_ISSUER"     envDefault:"metavr-backend"`
	Audience          string `env:"SESSION_AUDIENCE"   envDefault:"metavr-dashboard"`
	HandshakeAudience string `env:"HANDSHAKE_AUDIENCE" envDefault:"metavr-handshake"`

	// RefreshThreshold is how close to expiry a session must be before the
	// refresh endpoint replaces it.
	RefreshThreshold time.Duration `env:"SESSION_REFRESH_THRESHOLD" envDefault:"1h"`

	DatabaseFile         string        `env:"DATABASE_FILE"         envDefault:"dashauth.db"`
	Env                  string        `env:"ENV"                   envDefault:"development"` // production enables Secure cookies
	LogLevel             string        `env:"LOG_LEVEL"             envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT"            envDefault:"json"`
	Port                 int           `env:"PORT"                  envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// RateLimits starts from httpx.DefaultRateLimits, any single field can be
	// overridden, e.g. RATELIMIT_STRICT_REQUESTS=10.
	RateLimits httpx.RateLimits `envPrefix:"RATELIMIT_"`
}

// LoadConfig reads the process environment.
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

// LoadConfigFrom reads environ instead of the process environment.
func LoadConfigFrom(environ map[string]string) (Config, error) {
	return parseConfig(env.Options{Environment: environ})
}

func parseConfig(opts env.Options) (Config, error) {
	cfg := Config{RateLimits: httpx.DefaultRateLimits()}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Production reports whether cookies must be marked Secure.
func (c Config) Production() bool { return c.Env == "production" }

// Validate catches settings that would leave the service unable to run
// safely. Key material itself is checked by sessionx.New.
func (c Config) Validate() error {
	var errs []error

	if c.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must be set"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	if c.DatabaseFile == "" {
		errs = append(errs, errors.New("DATABASE_FILE must be set"))
	}
	for name, rl := range map[string]httpx.RateLimitConfig{
		"STRICT":   c.RateLimits.Strict,
		"MODERATE": c.RateLimits.Moderate,
		"PUBLIC":   c.RateLimits.Public,
	} {
		if rl.RequestsPerWindow <= 0 || rl.Window <= 0 || rl.Burst <= 0 {
			errs = append(errs, fmt.Errorf("RATELIMIT_%s must have positive requests, window and burst", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrConfiguration, errors.Join(errs...))
	}
	return nil
}
