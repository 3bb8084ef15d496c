package config

import (
	"os"
	"strings"
)

// Settings is process configuration read from the environment.
type Settings struct {
	Port         string
	Env          string
	LogLevel     string
	CatalogFile  string
	CatalogToken string
	DefaultState string
	ScenarioDir  string
	CORSOrigins  []string
}

// FromEnv reads API_PORT, API_ENV, LOG_LEVEL, TARIFF_CATALOG_FILE,
// TARIFF_CATALOG_TOKEN, DEFAULT_STATE, SCENARIO_DIR and CORS_ALLOWED_ORIGINS.
func FromEnv() Settings {
	s := Settings{
		Port:         getenv("API_PORT", "8080"),
		Env:          getenv("API_ENV", "development"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		CatalogFile:  os.Getenv("TARIFF_CATALOG_FILE"),
		CatalogToken: os.Getenv("TARIFF_CATALOG_TOKEN"),
		DefaultState: os.Getenv("DEFAULT_STATE"),
		ScenarioDir:  getenv("SCENARIO_DIR", "./examples/scenarios"),
	}
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			s.CORSOrigins = append(s.CORSOrigins, o)
		}
	}
	if len(s.CORSOrigins) == 0 {
		s.CORSOrigins = []string{"*"}
	}
	return s
}

func (s Settings) Production() bool { return s.Env == "production" }

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
