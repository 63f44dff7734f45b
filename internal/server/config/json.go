package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/cashlog/internal/flagx"
	"github.com/dmitrijs2005/cashlog/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for interval fields, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON configuration
// files; after unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	DatabaseDSN         string         `json:"database_dsn"`
	BaseURL             string         `json:"base_url"`
	UseEmail            bool           `json:"use_email"`
	SMTPAddr            string         `json:"smtp_addr"`
	SMTPFrom            string         `json:"smtp_from"`
	SessionCookieMaxAge timex.Duration `json:"session_cookie_max_age"`
	QueryTimeout        timex.Duration `json:"query_timeout"`
	DBMaxOpenConns      int            `json:"db_max_open_conns"`
	DBMaxIdleConns      int            `json:"db_max_idle_conns"`
	DBConnMaxLifetime   timex.Duration `json:"db_conn_max_lifetime"`
	DBConnMaxIdleTime   timex.Duration `json:"db_conn_max_idle_time"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. If the file cannot be read or
// contains invalid JSON, the function panics: starting with a half-applied
// config is worse than not starting.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.BaseURL = c.BaseURL
	config.UseEmail = c.UseEmail
	config.SMTPAddr = c.SMTPAddr
	config.SMTPFrom = c.SMTPFrom
	config.SessionCookieMaxAge = time.Duration(c.SessionCookieMaxAge.Duration)
	config.QueryTimeout = time.Duration(c.QueryTimeout.Duration)
	config.DBMaxOpenConns = c.DBMaxOpenConns
	config.DBMaxIdleConns = c.DBMaxIdleConns
	config.DBConnMaxLifetime = time.Duration(c.DBConnMaxLifetime.Duration)
	config.DBConnMaxIdleTime = time.Duration(c.DBConnMaxIdleTime.Duration)
}
