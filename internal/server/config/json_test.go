package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	data := `{
		"endpoint_addr": "0.0.0.0:14080",
		"database_dsn": "postgres://u:p@db:5432/cashlog",
		"base_url": "https://cash.example.com",
		"use_email": true,
		"smtp_addr": "smtp.example.com:25",
		"smtp_from": "noreply@example.com",
		"session_cookie_max_age": "720h",
		"query_timeout": "3s",
		"db_max_open_conns": 20,
		"db_max_idle_conns": 4,
		"db_conn_max_lifetime": "1h",
		"db_conn_max_idle_time": "10m"
	}`

	file := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(file, []byte(data), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", file}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, "0.0.0.0:14080", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@db:5432/cashlog", c.DatabaseDSN)
	assert.Equal(t, "https://cash.example.com", c.BaseURL)
	assert.True(t, c.UseEmail)
	assert.Equal(t, "smtp.example.com:25", c.SMTPAddr)
	assert.Equal(t, "noreply@example.com", c.SMTPFrom)
	assert.Equal(t, 720*time.Hour, c.SessionCookieMaxAge)
	assert.Equal(t, 3*time.Second, c.QueryTimeout)
	assert.Equal(t, 20, c.DBMaxOpenConns)
	assert.Equal(t, 4, c.DBMaxIdleConns)
	assert.Equal(t, time.Hour, c.DBConnMaxLifetime)
	assert.Equal(t, 10*time.Minute, c.DBConnMaxIdleTime)
}

func TestParseJson_NoFlag(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server"}

	var c Config
	c.LoadDefaults()

	want := c
	parseJson(&c)

	assert.Equal(t, want, c)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"server", "-c", filepath.Join(t.TempDir(), "absent.json")}

	var c Config
	c.LoadDefaults()

	assert.Panics(t, func() { parseJson(&c) })
}
