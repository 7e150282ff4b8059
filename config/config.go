package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salonhub-backend/utils"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const defaultOrigin = "http://localhost:3000"

// Settings is the runtime configuration read from the environment.
type Settings struct {
	Port string `env:"PORT,default=8080"`

	DBDriver          string        `env:"DB_DRIVER,default=postgres"`
	DBURL             string        `env:"DB_URL"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=25"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=100"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=5m"`

	JWTSecret      string `env:"JWT_SECRET"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS,default=24"`
	CookieSecure   bool   `env:"COOKIE_SECURE,default=true"`
	CORSOrigins    string `env:"CORS_ORIGINS,default=http://localhost:3000"`

	LogLevel string `env:"LOG_LEVEL,default=info"`
	Timezone string `env:"TIMEZONE,default=Local"`

	LowStockThreshold int    `env:"LOW_STOCK_THRESHOLD,default=10"`
	UploadDir         string `env:"UPLOAD_DIR,default=uploads"`

	RedisURL           string `env:"REDIS_URL"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE,default=20"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	StockAlertCron    string `env:"STOCK_ALERT_CRON,default=0 9 * * *"`
	StockAlertPhone   string `env:"STOCK_ALERT_PHONE"`
	TwilioAccountSID  string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken   string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber string `env:"TWILIO_PHONE_NUMBER"`

	// GeneratedJWTSecret is set when JWTSecret was generated for this run.
	GeneratedJWTSecret bool
}

// Load reads an optional .env file and decodes the environment. The memory
// driver gets a random JWT secret when none is set, so its tokens do not
// survive a restart.
func Load() (*Settings, error) {
	_ = godotenv.Load()

	var s Settings
	if err := envdecode.Decode(&s); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	if s.DBDriver == "memory" && s.JWTSecret == "" {
		s.JWTSecret = utils.GenerateJWTSecret()
		s.GeneratedJWTSecret = true
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.DBDriver {
	case "postgres":
		if s.DBURL == "" {
			return errors.New("DB_URL is required when DB_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}
	if s.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if s.JWTExpiryHours <= 0 {
		return errors.New("JWT_EXPIRY_HOURS must be positive")
	}
	return nil
}

func (s *Settings) JWTExpiry() time.Duration {
	return time.Duration(s.JWTExpiryHours) * time.Hour
}

// Location resolves TIMEZONE; "Local" keeps the host zone.
func (s *Settings) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(s.Timezone)
}

// AllowedOrigins splits CORS_ORIGINS. The CORS middleware needs at least one
// origin, so an empty value falls back to the local frontend.
func (s *Settings) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{defaultOrigin}
	}
	return out
}

// TwilioConfigured reports whether digest SMS can be sent.
func (s *Settings) TwilioConfigured() bool {
	return s.TwilioAccountSID != "" && s.TwilioAuthToken != "" &&
		s.TwilioPhoneNumber != "" && s.StockAlertPhone != ""
}
