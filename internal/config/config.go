package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "ZharPizza"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultMockCode        = "1234"
	defaultCodeSendDelay   = time.Second
	defaultCodeVerifyDelay = 800 * time.Millisecond
	defaultCodeTTL         = 5 * time.Minute
	defaultCodeRequests    = 5
	defaultSessionTTL      = 30 * 24 * time.Hour
	defaultWizardIdleTTL   = 15 * time.Minute
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	VerificationModeMock   = "mock"
	VerificationModeSMS    = "sms"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName               string
	AppEnv                string
	Port                  string
	LogLevel              string
	DatabaseURL           string
	RedisURL              string
	ShutdownPeriod        time.Duration
	VerificationMode      string
	MockCode              string
	CodeSendDelay         time.Duration
	CodeVerifyDelay       time.Duration
	CodeTTL               time.Duration
	CodeRequestsPerMinute int
	SessionTTL            time.Duration
	WizardIdleTTL         time.Duration
	CookieSecure          bool
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:          getEnv("APP_NAME", defaultAppName),
		AppEnv:           getEnv("APP_ENV", defaultAppEnv),
		Port:             getEnv("PORT", defaultPort),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
		ShutdownPeriod:   defaultShutdownDelay,
		VerificationMode: strings.ToLower(getEnv("VERIFICATION_MODE", VerificationModeMock)),
		MockCode:         getEnv("MOCK_CODE", defaultMockCode),
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	var err error
	if cfg.CodeSendDelay, err = getDuration("CODE_SEND_DELAY", defaultCodeSendDelay); err != nil {
		return Config{}, err
	}
	if cfg.CodeVerifyDelay, err = getDuration("CODE_VERIFY_DELAY", defaultCodeVerifyDelay); err != nil {
		return Config{}, err
	}
	if cfg.CodeTTL, err = getDuration("CODE_TTL", defaultCodeTTL); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", defaultSessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.WizardIdleTTL, err = getDuration("WIZARD_IDLE_TTL", defaultWizardIdleTTL); err != nil {
		return Config{}, err
	}

	cfg.CodeRequestsPerMinute = defaultCodeRequests
	if v := os.Getenv("CODE_REQUESTS_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CODE_REQUESTS_PER_MINUTE: %w", err)
		}
		cfg.CodeRequestsPerMinute = n
	}

	if v := os.Getenv("COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		cfg.CookieSecure = secure
	} else {
		cfg.CookieSecure = !cfg.IsDev()
	}

	switch cfg.VerificationMode {
	case VerificationModeMock:
	case VerificationModeSMS:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when VERIFICATION_MODE=%s", VerificationModeSMS)
		}
	default:
		return Config{}, fmt.Errorf("invalid VERIFICATION_MODE %q", cfg.VerificationMode)
	}

	if !cfg.IsDev() && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a local development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
