package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	LockLocal = "local"
	LockRedis = "redis"

	// ScheduleOff disables the auto optimization job.
	ScheduleOff = "off"
)

type Config struct {
	HTTPPort string

	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string

	LockDriver string
	RedisAddr  string
	LockTTL    time.Duration

	BatchSettleDelay time.Duration
	FuelRatePerKm    float64
	DepotLocation    string
	SeedFile         string

	AdminAPIKey    string
	ExternalAPIKey string

	AutoOptimizeSchedule string
	AuditRetention       int
	TenderRateLimit      float64
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration from the environment after loading
// envFile, which may be missing.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	r := envReader{}
	config := Config{
		HTTPPort: r.str("HTTP_PORT", "3000"),

		StoreDriver: r.str("STORE_DRIVER", StoreMemory),
		DBHost:      r.str("DB_HOST", "localhost"),
		DBPort:      r.str("DB_PORT", "5432"),
		DBUser:      r.str("DB_USER", "postgres"),
		DBPassword:  r.str("DB_PASSWORD", ""),
		DBName:      r.str("DB_NAME", "fleetdispatch"),
		DBSslMode:   r.str("DB_SSLMODE", "disable"),

		LockDriver: r.str("LOCK_DRIVER", LockLocal),
		RedisAddr:  r.str("REDIS_ADDR", "localhost:6379"),
		LockTTL:    r.duration("LOCK_TTL", 30*time.Second),

		BatchSettleDelay: r.duration("BATCH_SETTLE_DELAY", 200*time.Millisecond),
		FuelRatePerKm:    r.float("FUEL_RATE_PER_KM", 1.25),
		DepotLocation:    r.str("DEPOT_LOCATION", "Chennai (Warehouse)"),
		SeedFile:         r.str("SEED_FILE", ""),

		AdminAPIKey:    r.str("ADMIN_API_KEY", ""),
		ExternalAPIKey: r.str("EXTERNAL_API_KEY", ""),

		AutoOptimizeSchedule: r.str("AUTO_OPTIMIZE_SCHEDULE", ScheduleOff),
		AuditRetention:       r.int("AUDIT_RETENTION", 0),
		TenderRateLimit:      r.float("TENDER_RATE_LIMIT", 1),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	return config, config.Validate()
}

// AutoOptimizationEnabled reports whether a cron schedule was configured for
// the auto optimization job. The job is opt-in.
func (c Config) AutoOptimizationEnabled() bool {
	schedule := strings.TrimSpace(c.AutoOptimizeSchedule)
	return schedule != "" && !strings.EqualFold(schedule, ScheduleOff)
}

// Validate checks the driver names.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("STORE_DRIVER: unknown driver %q", c.StoreDriver)
	}
	switch c.LockDriver {
	case LockLocal, LockRedis:
	default:
		return fmt.Errorf("LOCK_DRIVER: unknown driver %q", c.LockDriver)
	}
	if c.FuelRatePerKm <= 0 {
		return fmt.Errorf("FUEL_RATE_PER_KM: must be positive, got %v", c.FuelRatePerKm)
	}
	return nil
}

// envReader keeps the first parse error so LoadConfig can report it once.
type envReader struct {
	err error
}

func (r *envReader) str(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := r.str(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return d
}

func (r *envReader) float(key string, fallback float64) float64 {
	value := r.str(key, "")
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return f
}

func (r *envReader) int(key string, fallback int) int {
	value := r.str(key, "")
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return i
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%s: %w", key, err)
	}
}
