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
		Name      string `envconfig:"APP_NAME"`
		Timezone  string `envconfig:"TIMEZONE"`
		ClientURL string `envconfig:"CLIENT_URL"`
		CORS      struct {
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
		Cookie struct {
			Name        string `envconfig:"NAME"         default:"token"`
			RefreshName string `envconfig:"REFRESH_NAME" default:"refresh_token"`
			Domain      string `envconfig:"DOMAIN"`
			Secure      bool   `envconfig:"SECURE"`
			SameSite    string `envconfig:"SAME_SITE"    default:"lax"`
		} `envconfig:"COOKIE"`
		Booking struct {
			SameDayTurnover bool `envconfig:"SAME_DAY_TURNOVER"`
		} `envconfig:"BOOKING"`
		Upload struct {
			MaxFileSizeMB   int `envconfig:"MAX_FILE_SIZE_MB"  default:"10"`
			MaxFiles        int `envconfig:"MAX_FILES"         default:"100"`
			LinkTimeoutSecs int `envconfig:"LINK_TIMEOUT_SECS" default:"15"`
		} `envconfig:"UPLOAD"`
	} `envconfig:"APP"`

	Subscription struct {
		Plan         string `envconfig:"PLAN"          default:"annual_listing"`
		PlanLabel    string `envconfig:"PLAN_LABEL"    default:"Annual Listing Plan"`
		AmountPaise  int64  `envconfig:"AMOUNT_PAISE"  default:"50000"`
		DurationDays int    `envconfig:"DURATION_DAYS" default:"365"`
	} `envconfig:"SUBSCRIPTION"`

	Kafka struct {
		Enable        bool     `envconfig:"ENABLE"`
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingConfirmed      string `envconfig:"BOOKING_CONFIRMED"      default:"booking.confirmed"`
			SubscriptionActivated string `envconfig:"SUBSCRIPTION_ACTIVATED" default:"subscription.activated"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	Mail struct {
		Enable      bool   `envconfig:"ENABLE"`
		Host        string `envconfig:"HOST"`
		Port        string `envconfig:"PORT"         default:"587"`
		Username    string `envconfig:"USER"`
		Password    string `envconfig:"PASS"`
		From        string `envconfig:"FROM"`
		FromName    string `envconfig:"FROM_NAME"    default:"Rentopia"`
		TimeoutSecs int    `envconfig:"TIMEOUT_SECS" default:"15"`
	} `envconfig:"SMTP"`

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

	JWT struct {
		AccessSecret     string `envconfig:"ACCESS_SECRET"`
		RefreshSecret    string `envconfig:"REFRESH_SECRET"`
		AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"`
		RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int            `envconfig:"MAX_RETRY"`
			RetryWaitTime  int            `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string         `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool           `envconfig:"AUTO_MIGRATE"`
			Prefix         string         `envconfig:"PREFIX"`
			MaxOpenConns   int            `envconfig:"MAX_OPEN_CONNS" default:"10"`
			MaxIdleConns   int            `envconfig:"MAX_IDLE_CONNS" default:"10"`
			ConnMaxLifeMin int            `envconfig:"CONN_MAX_LIFE_MIN" default:"30"`
			Read           PostgresTarget `envconfig:"READ"`
			Write          PostgresTarget `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
		} `envconfig:"S3"`
		Payment struct {
			BaseURL        string `envconfig:"BASE_URL"        default:"https://api.razorpay.com/v1"`
			KeyID          string `envconfig:"KEY_ID"`
			KeySecret      string `envconfig:"KEY_SECRET"`
			Currency       string `envconfig:"CURRENCY"        default:"INR"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"10"`
		} `envconfig:"PAYMENT"`
	} `envconfig:"EXTERNAL"`
}

// PostgresTarget is one side of the read/write split.
type PostgresTarget struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
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
