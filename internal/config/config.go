// Package config loads the solver service configuration from YAML with
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	SourceFile     = "file"
	SourceBigQuery = "bigquery"
	SourceRedis    = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log_level"`
	Server   Server  `yaml:"server"`
	Lexicon  Lexicon `yaml:"lexicon"`
	Search   Search  `yaml:"search"`
}

type Server struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	// MaxWidth bounds the board size accepted over HTTP; search time grows
	// quickly with the number of cells.
	MaxWidth        int           `yaml:"max_width"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Lexicon struct {
	Source string `yaml:"source"`

	// Path is a word file or a glob such as word_lists/**/*.txt.
	Path string `yaml:"path"`

	// Watch reloads the file source when a matching file changes.
	Watch bool `yaml:"watch"`

	MinLength int      `yaml:"min_length"`
	MaxLength int      `yaml:"max_length"`
	BigQuery  BigQuery `yaml:"bigquery"`
	Redis     Redis    `yaml:"redis"`
}

type BigQuery struct {
	Project  string `yaml:"project"`
	Query    string `yaml:"query"`
	Location string `yaml:"location"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type Search struct {
	Prune       string `yaml:"prune"`
	Parallelism int    `yaml:"parallelism"`
	MinLength   int    `yaml:"min_length"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: Server{
			Port:            "8080",
			MaxWidth:        8,
			ShutdownTimeout: 5 * time.Second,
		},
		Lexicon: Lexicon{
			Source:    SourceFile,
			Path:      "word_lists/en.txt",
			MinLength: 3,
			MaxLength: 16,
			BigQuery: BigQuery{
				Location: "US",
			},
			Redis: Redis{
				Addr: "localhost:6379",
				Key:  "boggle:words",
			},
		},
		Search: Search{
			Prune:       "strict",
			Parallelism: 1,
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Port = v
	}
	if v, ok := lookup("LOCAL_ONLY"); ok && v == "true" {
		c.Server.Host = "127.0.0.1"
	}
	if v, ok := lookup("BOGGLE_WORDS"); ok && v != "" {
		c.Lexicon.Source = SourceFile
		c.Lexicon.Path = v
	}
	if v, ok := lookup("BOGGLE_LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup("BOGGLE_REDIS_ADDR"); ok && v != "" {
		c.Lexicon.Redis.Addr = v
	}
	if v, ok := lookup("BOGGLE_MAX_WIDTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: BOGGLE_MAX_WIDTH: %w", err)
		}
		c.Server.MaxWidth = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Lexicon.Source {
	case SourceFile:
		if c.Lexicon.Path == "" {
			return errors.New("config: lexicon.path is required for the file source")
		}
	case SourceBigQuery:
		if c.Lexicon.BigQuery.Project == "" || c.Lexicon.BigQuery.Query == "" {
			return errors.New("config: lexicon.bigquery.project and lexicon.bigquery.query are required")
		}
	case SourceRedis:
		if c.Lexicon.Redis.Addr == "" || c.Lexicon.Redis.Key == "" {
			return errors.New("config: lexicon.redis.addr and lexicon.redis.key are required")
		}
	default:
		return fmt.Errorf("config: unknown lexicon.source %q", c.Lexicon.Source)
	}
	if c.Lexicon.Watch && c.Lexicon.Source != SourceFile {
		return fmt.Errorf("config: lexicon.watch needs the file source, not %q", c.Lexicon.Source)
	}

	if c.Lexicon.MinLength < 1 || c.Lexicon.MaxLength < c.Lexicon.MinLength {
		return fmt.Errorf("config: invalid word length bounds [%d, %d]", c.Lexicon.MinLength, c.Lexicon.MaxLength)
	}
	switch c.Search.Prune {
	case "", "strict", "extend":
	default:
		return fmt.Errorf("config: unknown search.prune %q", c.Search.Prune)
	}
	if c.Search.Parallelism < 0 {
		return fmt.Errorf("config: search.parallelism must not be negative, got %d", c.Search.Parallelism)
	}
	if c.Server.MaxWidth < 1 {
		return fmt.Errorf("config: server.max_width must be positive, got %d", c.Server.MaxWidth)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}
