package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	// Charter holds the operating-window policy for a day of trips. The
	// defaults describe a 06:00-18:00 day with a 13:00-15:00 crew-turnaround
	// buffer that short trips may not straddle.
	Charter struct {
		OperatingStartHour int `envconfig:"OPERATING_START_HOUR" default:"6"`
		OperatingEndHour   int `envconfig:"OPERATING_END_HOUR"   default:"18"`
		MorningEndHour     int `envconfig:"MORNING_END_HOUR"     default:"13"`
		AfternoonStartHour int `envconfig:"AFTERNOON_START_HOUR" default:"15"`
		MinTripHours       int `envconfig:"MIN_TRIP_HOURS"       default:"3"`
		MaxTripHours       int `envconfig:"MAX_TRIP_HOURS"       default:"8"`
	} `envconfig:"CHARTER"`

	Booking struct {
		AttemptLimiter struct {
			Enable        bool `envconfig:"ENABLE"         default:"true"`
			MaxPerIP      int  `envconfig:"MAX_PER_IP"     default:"10"`
			MaxPerEmail   int  `envconfig:"MAX_PER_EMAIL"  default:"5"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"3600"`
		} `envconfig:"ATTEMPT_LIMITER"`
	} `envconfig:"BOOKING"`

	Provider struct {
		BaseURL        string `envconfig:"BASE_URL" default:"https://api.cal.com"`
		APIKey         string `envconfig:"API_KEY"`
		APIVersion     string `envconfig:"API_VERSION" default:"2024-08-13"`
		ClientID       string `envconfig:"CLIENT_ID"`
		ClientSecret   string `envconfig:"CLIENT_SECRET"`
		TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"15"`
		PageSize       int    `envconfig:"PAGE_SIZE" default:"100"`
		MaxPages       int    `envconfig:"MAX_PAGES" default:"10"`
	} `envconfig:"PROVIDER"`

	BotCheck struct {
		Secret    string `envconfig:"SECRET"`
		VerifyURL string `envconfig:"VERIFY_URL" default:"https://challenges.cloudflare.com/turnstile/v0/siteverify"`
	} `envconfig:"BOT_CHECK"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
