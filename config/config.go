package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8082"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"marketplace"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Empty disables event publishing and directory sync.
	RabbitURL string `envconfig:"RABBITMQ_URL"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	ScheduleTimezone       string        `envconfig:"SCHEDULE_TIMEZONE" default:"UTC"`
	ScheduleSlotDuration   time.Duration `envconfig:"SCHEDULE_SLOT_DURATION" default:"2h"`
	ScheduleConflictPolicy string        `envconfig:"SCHEDULE_CONFLICT_POLICY" default:"date"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &c, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return nil, fmt.Errorf("schedule timezone %q: %w", c.ScheduleTimezone, err)
	}
	return loc, nil
}
