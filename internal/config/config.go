package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the watchlist service.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Mongo     MongoConfig
	DB        DBConfig
	Redis     RedisConfig
	Vision    VisionConfig
	Nutrition NutritionConfig
	Labels    LabelConfig
	LogLevel  slog.Level
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	UploadDir      string
	UploadMaxBytes int
	SwaggerPath    string
}

// StoreConfig selects the watchlist store driver.
type StoreConfig struct {
	Driver string // mongo, postgres, memory
}

// MongoConfig holds MongoDB configuration.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// DBConfig holds PostgreSQL configuration.
type DBConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SSLRootCert string
}

// DSN returns the PostgreSQL connection string.
func (d DBConfig) DSN() string {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
	if d.SSLRootCert != "" {
		dsn += fmt.Sprintf(" sslrootcert=%s", d.SSLRootCert)
	}
	return dsn
}

// RedisConfig holds Redis configuration. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// VisionConfig holds the image labeling provider configuration.
type VisionConfig struct {
	Provider              string // google, rekognition
	GoogleCredentialsJSON string
	AWSRegion             string
	MaxLabels             int
	MinConfidence         float64
}

// NutritionConfig holds the nutrition and recipe provider configuration.
type NutritionConfig struct {
	Provider       string // usda, ninjas, edamam
	USDAAPIKey     string
	USDABaseURL    string
	NinjasAPIKey   string
	NinjasBaseURL  string
	EdamamAppID    string
	EdamamAppKey   string
	EdamamBaseURL  string
	RecipesEnabled bool
}

// LabelConfig controls how a nutrition query is chosen from vision labels.
type LabelConfig struct {
	Selection      string // best, top
	ContinueOnMiss bool
	File           string
	Generic        []string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	dbPort, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	uploadMax, _ := strconv.Atoi(getEnv("UPLOAD_MAX_BYTES", "10485760"))
	maxLabels, _ := strconv.Atoi(getEnv("VISION_MAX_LABELS", "10"))
	minConfidence, _ := strconv.ParseFloat(getEnv("VISION_MIN_CONFIDENCE", "50"), 64)

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
			UploadMaxBytes: uploadMax,
			SwaggerPath:    getEnv("SWAGGER_FILE", "docs/swagger.yaml"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", "mongo")),
		},
		Mongo: MongoConfig{
			URI:        getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:   getEnv("MONGODB_DATABASE", "watchlist"),
			Collection: getEnv("MONGODB_COLLECTION", "movies"),
		},
		DB: DBConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        dbPort,
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "watchlist"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			SSLRootCert: getEnv("DB_SSLROOTCERT", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Vision: VisionConfig{
			Provider:              strings.ToLower(getEnv("VISION_PROVIDER", "google")),
			GoogleCredentialsJSON: getEnv("GOOGLE_VISION_KEY", ""),
			AWSRegion:             getEnv("AWS_REGION", "us-east-1"),
			MaxLabels:             maxLabels,
			MinConfidence:         minConfidence,
		},
		Nutrition: NutritionConfig{
			Provider:       strings.ToLower(getEnv("NUTRITION_PROVIDER", "usda")),
			USDAAPIKey:     getEnv("USDA_API_KEY", ""),
			USDABaseURL:    getEnv("USDA_BASE_URL", "https://api.nal.usda.gov/fdc/v1"),
			NinjasAPIKey:   getEnv("API_NINJAS_KEY", ""),
			NinjasBaseURL:  getEnv("API_NINJAS_BASE_URL", "https://api.api-ninjas.com"),
			EdamamAppID:    getEnv("EDAMAM_APP_ID", ""),
			EdamamAppKey:   getEnv("EDAMAM_APP_KEY", ""),
			EdamamBaseURL:  getEnv("EDAMAM_BASE_URL", "https://api.edamam.com/api/food-database/v2"),
			RecipesEnabled: getBool("RECIPES_ENABLED", false),
		},
		Labels: LabelConfig{
			Selection:      strings.ToLower(getEnv("LABEL_SELECTION", "best")),
			ContinueOnMiss: getBool("LABEL_CONTINUE_ON_MISS", false),
			File:           getEnv("LABELS_FILE", ""),
			Generic:        DefaultGenericLabels(),
		},
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if cfg.Labels.File != "" {
		generic, err := LoadGenericLabels(cfg.Labels.File)
		if err != nil {
			return nil, err
		}
		if len(generic) > 0 {
			cfg.Labels.Generic = generic
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects unknown driver and provider names and fills defaults.
func Validate(cfg *Config) error {
	switch cfg.Store.Driver {
	case "mongo", "postgres", "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	switch cfg.Vision.Provider {
	case "google", "rekognition":
	default:
		return fmt.Errorf("unknown VISION_PROVIDER %q", cfg.Vision.Provider)
	}
	switch cfg.Nutrition.Provider {
	case "usda", "ninjas", "edamam":
	default:
		return fmt.Errorf("unknown NUTRITION_PROVIDER %q", cfg.Nutrition.Provider)
	}
	switch cfg.Labels.Selection {
	case "best", "top":
	default:
		return fmt.Errorf("unknown LABEL_SELECTION %q", cfg.Labels.Selection)
	}
	if cfg.Server.UploadMaxBytes <= 0 {
		cfg.Server.UploadMaxBytes = 10 << 20
	}
	if cfg.Vision.MaxLabels <= 0 {
		cfg.Vision.MaxLabels = 10
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
