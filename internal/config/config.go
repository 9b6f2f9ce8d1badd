package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Media settings control where uploaded cover
// images land on disk and which public base URL they are served under.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	JWTSecret    string // secret used to sign admin JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for admin password hashing
	MediaRoot    string // directory where uploaded images are stored
	MediaBaseURL string // public base URL under which MediaRoot is served
	AdminEmail   string // bootstrap admin account email (optional)
	AdminPass    string // bootstrap admin account password (optional)
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must(); missing values cause
// the program to exit with a fatal log message.  The bootstrap admin pair
// is optional: when unset, no account is created at startup.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
		MediaRoot:    getenv("MEDIA_ROOT", "media"),
		MediaBaseURL: getenv("MEDIA_BASE_URL", "/media"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		AdminPass:    os.Getenv("ADMIN_PASSWORD"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
