package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"storefront/internal/models"
)

// Drivers de almacenamiento admitidos
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	StoreDriver    string
	RequestTimeout time.Duration

	JWTSecret     string
	JWTExpiresIn  time.Duration
	SessionSecret string
	SessionMaxAge time.Duration
	CookieSecure  bool

	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminPhone    string

	CacheTTL             time.Duration
	CategoryDeletePolicy string

	LogMode string
	LogFile string
	GinMode string
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("Error loading .env file:", err)
		}
	}
	return FromEnv()
}

// FromEnv lee la configuración de las variables de entorno ya cargadas
func FromEnv() *Config {
	jwtSecret := getEnv("JWT_SECRET", "")
	return &Config{
		Port:           getEnv("PORT", "8080"),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDB:        getEnv("MONGO_DB", "storefront"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),

		JWTSecret:     jwtSecret,
		JWTExpiresIn:  getDuration("JWT_EXPIRES_IN", 7*24*time.Hour),
		SessionSecret: getEnv("SESSION_SECRET", jwtSecret),
		SessionMaxAge: getDuration("SESSION_MAX_AGE", 24*time.Hour),
		CookieSecure:  cast.ToBool(getEnv("COOKIE_SECURE", "false")),

		AdminEmail:    strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", ""))),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		AdminName:     getEnv("ADMIN_NAME", "Administrator"),
		AdminPhone:    getEnv("ADMIN_PHONE", "-"),

		CacheTTL:             getDuration("CACHE_TTL", 2*time.Minute),
		CategoryDeletePolicy: strings.ToLower(getEnv("CATEGORY_DELETE_POLICY", models.DeleteRestrict)),

		LogMode: getEnv("LOG_MODE", "development"),
		LogFile: getEnv("LOG_FILE", ""),
		GinMode: getEnv("GIN_MODE", "release"),
	}
}

// Validate revisa los valores obligatorios y los enumerados
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when STORE_DRIVER=mongo")
		}
	case StoreMemory:
	default:
		return errors.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	switch c.CategoryDeletePolicy {
	case models.DeleteRestrict, models.DeleteCascade, models.DeleteDetach:
	default:
		return errors.Errorf("unknown CATEGORY_DELETE_POLICY %q", c.CategoryDeletePolicy)
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	d, err := ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// ParseDuration acepta lo mismo que time.ParseDuration más días ("7d")
// y segundos sin unidad ("3600").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0, errors.Errorf("invalid duration %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	if n, err := cast.ToInt64E(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return cast.ToDurationE(s)
}
