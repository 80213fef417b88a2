package config

import (
	"os"
	"strconv"
	"time"
)

const (
	StoreFile     = "file"
	StoreGitHub   = "github"
	StorePostgres = "postgres"

	PublisherGoogle = "google"
	PublisherICS    = "ics"
)

// Config is the environment-backed application configuration.
type Config struct {
	Port     string
	LogLevel string

	// Timezone is the single fixed IANA zone every appointment is
	// interpreted in.
	Timezone string

	CalendarID            string
	PublisherBackend      string
	GoogleCredentialsFile string
	ICSFile               string

	// DefaultDurationMin applies per selected service when the catalog
	// carries no explicit duration column.
	DefaultDurationMin  int
	CatalogHasDurations bool

	StoreBackend       string
	CatalogFile        string
	AppointmentLogFile string

	GitHubToken       string
	GitHubRepo        string
	GitHubCatalogPath string
	GitHubLogPath     string

	DBURL string
}

func Load() *Config {
	return &Config{
		Port:     envOr("PORT", "8080"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		Timezone: envOr("TIMEZONE", "America/Sao_Paulo"),

		CalendarID:            os.Getenv("CALENDAR_ID"),
		PublisherBackend:      envOr("PUBLISHER_BACKEND", PublisherGoogle),
		GoogleCredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		ICSFile:               envOr("ICS_FILE", "agenda.ics"),

		DefaultDurationMin:  envIntOr("DEFAULT_DURATION_MIN", 60),
		CatalogHasDurations: envBool("CATALOG_HAS_DURATIONS"),

		StoreBackend:       envOr("STORE_BACKEND", StoreFile),
		CatalogFile:        envOr("CATALOG_FILE", "servicos.csv"),
		AppointmentLogFile: os.Getenv("APPOINTMENT_LOG_FILE"),

		GitHubToken:       os.Getenv("GITHUB_TOKEN"),
		GitHubRepo:        os.Getenv("GITHUB_REPO"),
		GitHubCatalogPath: envOr("GITHUB_CATALOG_PATH", "servicos.csv"),
		GitHubLogPath:     os.Getenv("GITHUB_LOG_PATH"),

		DBURL: os.Getenv("DB_URL"),
	}
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
