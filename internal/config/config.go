// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Server  ServerConfig
	Auth    AuthConfig
	Seed    SeedConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// IsProduction reports whether the server runs in production mode.
func (a AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds on-disk locations.
type StorageConfig struct {
	DataPath     string // Directory for the database and session key (default: ~/ReadingTracker)
	DatabasePath string // SQLite file (default: {data}/readingtracker.db)
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port              string        // Server port (default: 4006)
	ReadTimeout       time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout      time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout       time.Duration // HTTP idle timeout (default: 60s)
	AllowedOrigins    []string      // CORS origins allowed to send credentials
	RequestsPerMinute int           // Per-IP API throttle, 0 disables it
	TrustProxy        bool          // Take the client IP from X-Forwarded-For/X-Real-IP (default: false)
}

// AuthConfig holds session and login configuration.
type AuthConfig struct {
	// SessionKeyHex is an optional 64 char hex PASETO v4 key. When empty the key
	// is loaded from or generated into the data directory.
	SessionKeyHex   string
	SessionDuration time.Duration // default: 168h
	CookieSecure    bool          // default: true in production
	LoginAttempts   int           // per client IP per window (default: 10)
	LoginWindow     time.Duration // default: 15m
}

// SeedConfig holds the provisioning credentials used by cmd/seed.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// LoadConfig loads configuration from the process command line with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load registers the configuration flags on fs, parses args and builds the config.
// Callers may register their own flags on fs beforehand.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Directory for the database and session key")
	dbPath := fs.String("db-path", "", "Path to the SQLite database file")

	serverPort := fs.String("port", "", "Server port (default: 4006)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	allowedOrigins := fs.String("cors-origins", "", "Comma separated CORS origins")
	apiRateLimit := fs.String("api-rate-limit", "", "Requests per minute per client IP (default: 600)")
	trustProxy := fs.String("trust-proxy", "", "Trust client IP headers set by a reverse proxy (default: false)")

	sessionDuration := fs.String("session-duration", "", "Session lifetime (default: 168h)")
	cookieSecure := fs.String("cookie-secure", "", "Mark the session cookie Secure (default: true in production)")
	loginAttempts := fs.String("login-attempts", "", "Login attempts per window (default: 10)")
	loginWindow := fs.String("login-window", "", "Login rate limit window (default: 15m)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataPath:     getConfigValue(*dataPath, "DATA_PATH", ""),
			DatabasePath: getConfigValue(*dbPath, "DB_PATH", ""),
		},
		Server: ServerConfig{
			Port:              getConfigValue(*serverPort, "SERVER_PORT", "4006"),
			AllowedOrigins:    splitList(getConfigValue(*allowedOrigins, "CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
			RequestsPerMinute: getIntConfigValue(*apiRateLimit, "API_RATE_LIMIT", 600),
		},
		Auth: AuthConfig{
			SessionKeyHex: getConfigValue("", "SESSION_KEY", ""),
			LoginAttempts: getIntConfigValue(*loginAttempts, "LOGIN_RATE_LIMIT", 10),
		},
		Seed: SeedConfig{
			AdminEmail:    getConfigValue("", "ADMIN_EMAIL", "admin@example.com"),
			AdminPassword: getConfigValue("", "ADMIN_PASSWORD", "ChangeMe123!"),
		},
	}
	cfg.Auth.CookieSecure = getBoolConfigValue(*cookieSecure, "COOKIE_SECURE", cfg.App.IsProduction())
	cfg.Server.TrustProxy = getBoolConfigValue(*trustProxy, "TRUST_PROXY", false)

	durations := []struct {
		flagValue string
		envKey    string
		def       string
		dst       *time.Duration
	}{
		{*readTimeout, "SERVER_READ_TIMEOUT", "15s", &cfg.Server.ReadTimeout},
		{*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s", &cfg.Server.WriteTimeout},
		{*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s", &cfg.Server.IdleTimeout},
		{*sessionDuration, "SESSION_DURATION", "168h", &cfg.Auth.SessionDuration},
		{*loginWindow, "LOGIN_RATE_WINDOW", "15m", &cfg.Auth.LoginWindow},
	}
	for _, d := range durations {
		raw := getConfigValue(d.flagValue, d.envKey, d.def)
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", d.envKey, raw, err)
		}
		*d.dst = parsed
	}

	if err := cfg.expandStoragePaths(); err != nil {
		return nil, fmt.Errorf("invalid storage path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.DatabasePath == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.Auth.SessionDuration <= 0 {
		return errors.New("session duration must be positive")
	}
	if c.Auth.LoginAttempts <= 0 {
		return errors.New("login attempts must be positive")
	}
	if c.Auth.LoginWindow <= 0 {
		return errors.New("login window must be positive")
	}
	if c.Server.RequestsPerMinute < 0 {
		return errors.New("api rate limit cannot be negative")
	}
	if c.Auth.SessionKeyHex != "" && len(c.Auth.SessionKeyHex) != 64 {
		return fmt.Errorf("SESSION_KEY must be 64 hex characters, got %d", len(c.Auth.SessionKeyHex))
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is returned unchanged.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandStoragePaths resolves the data directory and the database file inside it.
func (c *Config) expandStoragePaths() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	dataPath, err := expandPath(c.Storage.DataPath, filepath.Join(homeDir, "ReadingTracker"))
	if err != nil {
		return err
	}
	c.Storage.DataPath = dataPath

	dbPath, err := expandPath(c.Storage.DatabasePath, filepath.Join(dataPath, "readingtracker.db"))
	if err != nil {
		return err
	}
	c.Storage.DatabasePath = dbPath
	return nil
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envKey != "" {
		if envValue := os.Getenv(envKey); envValue != "" {
			return envValue
		}
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Real environment variables win over the file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
