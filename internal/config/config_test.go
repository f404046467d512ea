package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
debug: true
server:
  host: "0.0.0.0"
  port: 8060
database:
  host: "localhost"
  port: 5432
  user: "testuser"
  password: "testpass"
  dbname: "testdb"
outreach:
  sender_name: "Niklas"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}

	if !cfg.Debug {
		t.Error("Load() cfg.Debug = false, want true")
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Load() cfg.Server.Host = %v, want 0.0.0.0", cfg.Server.Host)
	}

	if cfg.Server.Port != 8060 {
		t.Errorf("Load() cfg.Server.Port = %v, want 8060", cfg.Server.Port)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("Load() cfg.Database.Host = %v, want localhost", cfg.Database.Host)
	}

	if cfg.Outreach.SenderName != "Niklas" {
		t.Errorf("Load() cfg.Outreach.SenderName = %v, want Niklas", cfg.Outreach.SenderName)
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, `
server:
  host: "127.0.0.1"
database:
  host: "localhost"
  user: "user"
  password: "pass"
  dbname: "db"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Load() cfg.Server.Port = %v, want %v", cfg.Server.Port, defaultServerPort)
	}

	if cfg.Database.Port != defaultDatabasePort {
		t.Errorf("Load() cfg.Database.Port = %v, want %v", cfg.Database.Port, defaultDatabasePort)
	}

	if cfg.Database.SSLMode != "disable" {
		t.Errorf("Load() cfg.Database.SSLMode = %v, want disable", cfg.Database.SSLMode)
	}

	if cfg.Database.MaxOpenConns != defaultMaxOpenConns {
		t.Errorf("Load() cfg.Database.MaxOpenConns = %v, want %v", cfg.Database.MaxOpenConns, defaultMaxOpenConns)
	}

	if cfg.Server.ReadTimeout != defaultServerTimeout*time.Second {
		t.Errorf("Load() cfg.Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, defaultServerTimeout*time.Second)
	}

	if cfg.Redis.Address != defaultRedisAddress {
		t.Errorf("Load() cfg.Redis.Address = %v, want %v", cfg.Redis.Address, defaultRedisAddress)
	}

	if cfg.Redis.Enabled {
		t.Error("Load() cfg.Redis.Enabled = true, want false by default")
	}

	if len(cfg.Server.CORSOrigins) != 1 || cfg.Server.CORSOrigins[0] != "http://localhost:3000" {
		t.Errorf("Load() cfg.Server.CORSOrigins = %v, want [http://localhost:3000]", cfg.Server.CORSOrigins)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yml")
	if err == nil {
		t.Error("Load() error = nil, want error for nonexistent file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "invalid: yaml: content: [")

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load() error = nil, want error for invalid YAML")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{
				Host: "0.0.0.0",
				Port: 8060,
			},
			Database: DatabaseConfig{
				Host:   "localhost",
				Port:   5432,
				User:   "user",
				DBName: "db",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"empty server host", func(c *Config) { c.Server.Host = "" }, true},
		{"zero server port", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty database host", func(c *Config) { c.Database.Host = "" }, true},
		{"zero database port", func(c *Config) { c.Database.Port = 0 }, true},
		{"empty database user", func(c *Config) { c.Database.User = "" }, true},
		{"empty database name", func(c *Config) { c.Database.DBName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "env-host")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "env-user")
	t.Setenv("SERVER_HOST", "env-server")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("OUTREACH_SENDER_NAME", "Env Sender")

	configPath := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8060
database:
  host: "localhost"
  port: 5432
  user: "user"
  password: "pass"
  dbname: "db"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Database.Host != "env-host" {
		t.Errorf("Load() cfg.Database.Host = %v, want env-host", cfg.Database.Host)
	}

	if cfg.Database.Port != 5433 {
		t.Errorf("Load() cfg.Database.Port = %v, want 5433", cfg.Database.Port)
	}

	if cfg.Database.User != "env-user" {
		t.Errorf("Load() cfg.Database.User = %v, want env-user", cfg.Database.User)
	}

	if cfg.Server.Host != "env-server" {
		t.Errorf("Load() cfg.Server.Host = %v, want env-server", cfg.Server.Host)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Load() cfg.Server.Port = %v, want 9000", cfg.Server.Port)
	}

	if !cfg.Debug {
		t.Error("Load() cfg.Debug = false, want true")
	}

	if cfg.Outreach.SenderName != "Env Sender" {
		t.Errorf("Load() cfg.Outreach.SenderName = %v, want Env Sender", cfg.Outreach.SenderName)
	}
}
