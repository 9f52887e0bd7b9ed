package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile      = "config.yaml"
	DefaultPort            = 8080
	DefaultTMDBBaseURL     = "https://api.themoviedb.org/3"
	DefaultTMDBLanguage    = "en-US"
	DefaultHTTPTimeout     = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Settings holds the runtime configuration of the trailer service.
type Settings struct {
	Server ServerSettings `yaml:"server"`
	TMDB   TMDBSettings   `yaml:"tmdb"`
	HTTP   HTTPSettings   `yaml:"http"`
	CORS   CORSSettings   `yaml:"cors"`
	Log    LogSettings    `yaml:"log"`
}

type ServerSettings struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address for net/http.
func (s ServerSettings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type TMDBSettings struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
}

type HTTPSettings struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// CORSSettings controls which browser origins may call the API.
// An empty AllowedOrigins list reflects every origin.
type CORSSettings struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogSettings configures log output. Logs go to stderr when File is empty.
type LogSettings struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load builds Settings from a .env file, an optional YAML file read from fsys,
// and process environment variables, in that order of increasing precedence.
// A missing .env or YAML file is not an error; a malformed one is.
func Load(fsys afero.Fs, path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = DefaultConfigFile
	}

	var s Settings
	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	s.applyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("HOST"); v != "" {
		s.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Server.Port = port
	}
	if v := os.Getenv("TMDB_API_KEY"); v != "" {
		s.TMDB.APIKey = v
	}
	if v := os.Getenv("TMDB_BASE_URL"); v != "" {
		s.TMDB.BaseURL = v
	}
	if v := os.Getenv("TMDB_LANGUAGE"); v != "" {
		s.TMDB.Language = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		s.HTTP.Timeout = d
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		s.CORS.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		s.Log.File = v
	}
	return nil
}

func (s *Settings) applyDefaults() {
	if s.Server.Port == 0 {
		s.Server.Port = DefaultPort
	}
	if s.Server.ShutdownTimeout <= 0 {
		s.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if strings.TrimSpace(s.TMDB.BaseURL) == "" {
		s.TMDB.BaseURL = DefaultTMDBBaseURL
	}
	s.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(s.TMDB.BaseURL), "/")
	if strings.TrimSpace(s.TMDB.Language) == "" {
		s.TMDB.Language = DefaultTMDBLanguage
	}
	if s.HTTP.Timeout == 0 {
		s.HTTP.Timeout = DefaultHTTPTimeout
	}
	if s.Log.MaxSizeMB <= 0 {
		s.Log.MaxSizeMB = 50
	}
	if s.Log.MaxBackups <= 0 {
		s.Log.MaxBackups = 3
	}
	if s.Log.MaxAgeDays <= 0 {
		s.Log.MaxAgeDays = 14
	}
}

// Validate reports the first invalid setting.
func (s *Settings) Validate() error {
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", s.Server.Port)
	}
	if s.HTTP.Timeout < 0 {
		return fmt.Errorf("http timeout must be positive, got %s", s.HTTP.Timeout)
	}
	u, err := url.Parse(s.TMDB.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid tmdb base url %q", s.TMDB.BaseURL)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
