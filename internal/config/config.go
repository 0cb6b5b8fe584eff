package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Storage    `yaml:"storage"`
	Database   `yaml:"database"`
	Cache      `yaml:"cache"`
	Auth       `yaml:"auth"`
	Tracking   `yaml:"tracking"`
	Digest     `yaml:"digest"`
	Log        `yaml:"log"`
	Scraper    `yaml:"scraper"`
}

// HTTPServer holds HTTP listener settings.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
	// AllowedOrigins applies to the admin API; click tracking accepts any origin.
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:5173,http://localhost:3000"`
}

// Storage selects the persistence backend: "postgres" or "memory".
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

// Database holds PostgreSQL connection settings.
type Database struct {
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD"`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"dealscout"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedData        bool   `yaml:"seed_data" env:"DB_SEED_DATA" env-default:"false"`
}

// Cache holds Redis settings for the settings read-through cache.
type Cache struct {
	Enabled  bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"false"`
	RedisURL string        `yaml:"redis_url" env:"REDIS_URL" env-default:"redis://localhost:6379/0"`
	TTL      time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
	Prefix   string        `yaml:"prefix" env:"CACHE_PREFIX" env-default:"dealscout"`
}

// Auth holds verification settings for tokens issued by the identity provider.
type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer" env:"AUTH_ISSUER"`
	Audience  string `yaml:"audience" env:"AUTH_AUDIENCE" env-default:"authenticated"`
	// BootstrapAdmins получают роль super_admin при старте, если ее еще нет
	BootstrapAdmins []string `yaml:"bootstrap_admins" env:"AUTH_BOOTSTRAP_ADMINS" env-separator:","`
}

// Tracking holds click-tracking limits.
type Tracking struct {
	ListCap        int `yaml:"list_cap" env:"TRACKING_LIST_CAP" env-default:"200"`
	RecentDefault  int `yaml:"recent_default" env:"TRACKING_RECENT_DEFAULT" env-default:"20"`
	FeedWorkers    int `yaml:"feed_workers" env:"TRACKING_FEED_WORKERS" env-default:"2"`
	FeedBufferSize int `yaml:"feed_buffer_size" env:"TRACKING_FEED_BUFFER_SIZE" env-default:"256"`
	ActivityCap    int `yaml:"activity_cap" env:"TRACKING_ACTIVITY_CAP" env-default:"100"`
}

// Digest configures the scheduled tracking digest.
type Digest struct {
	Enabled  bool          `yaml:"enabled" env:"DIGEST_ENABLED" env-default:"true"`
	Schedule string        `yaml:"schedule" env:"DIGEST_SCHEDULE" env-default:"0 6 * * *"`
	Window   time.Duration `yaml:"window" env:"DIGEST_WINDOW" env-default:"24h"`
}

// Log configures the optional rotating log file.
type Log struct {
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"5"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"28"`
}

// Scraper configures the product page fetcher.
type Scraper struct {
	Timeout   time.Duration `yaml:"timeout" env:"SCRAPER_TIMEOUT" env-default:"15s"`
	UserAgent string        `yaml:"user_agent" env:"SCRAPER_USER_AGENT" env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml"
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
	} else {
		log.Println("Config file not found, using environment variables only")
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err)
		}
	}

	return &cfg
}
