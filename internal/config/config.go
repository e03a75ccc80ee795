// Package config loads and validates scraper configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/JakeFAU/draftpicks/internal/draft"
	"github.com/JakeFAU/draftpicks/internal/logging"
	"github.com/JakeFAU/draftpicks/internal/storage"
)

// DefaultSourceURL is the page the picks are scraped from.
const DefaultSourceURL = "https://en.wikipedia.org/wiki/List_of_Buffalo_Bills_first-round_draft_picks"

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Source  SourceConfig   `mapstructure:"source"`
	Table   TableConfig    `mapstructure:"table"`
	Store   StoreConfig    `mapstructure:"store"`
	Archive ArchiveConfig  `mapstructure:"archive"`
	Notify  NotifyConfig   `mapstructure:"notify"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
	Logging logging.Config `mapstructure:"logging"`
}

// SourceConfig describes the document to fetch.
type SourceConfig struct {
	URL            string            `mapstructure:"url"`
	UserAgent      string            `mapstructure:"user_agent"`
	Headers        map[string]string `mapstructure:"headers"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	RespectRobots  bool              `mapstructure:"respect_robots"`
	MaxBodyBytes   int               `mapstructure:"max_body_bytes"`
}

// TableConfig selects the table inside the document.
type TableConfig struct {
	Selector        string `mapstructure:"selector"`
	Index           int    `mapstructure:"index"`
	HeaderRows      int    `mapstructure:"header_rows"`
	EnforceWidth    bool   `mapstructure:"enforce_width"`
	StripReferences bool   `mapstructure:"strip_references"`
}

// StoreConfig chooses the persistence sink.
type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// ArchiveConfig controls raw document archiving.
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
}

// NotifyConfig holds Pub/Sub settings for refresh notices.
type NotifyConfig struct {
	ProjectID string `mapstructure:"project_id"`
	Topic     string `mapstructure:"topic"`
}

// MetricsConfig points at a node_exporter textfile.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DRAFTPICKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.url", DefaultSourceURL)
	v.SetDefault("source.user_agent", "draftpicks/0.1 (+https://github.com/JakeFAU/draftpicks)")
	v.SetDefault("source.timeout_seconds", 30)
	v.SetDefault("source.respect_robots", false)
	v.SetDefault("source.max_body_bytes", 10<<20)
	v.SetDefault("table.selector", "table.wikitable.sortable")
	v.SetDefault("table.index", 0)
	v.SetDefault("table.header_rows", 1)
	v.SetDefault("table.enforce_width", true)
	v.SetDefault("table.strip_references", true)
	v.SetDefault("store.driver", storage.DriverSQLite)
	v.SetDefault("store.path", "bills_draft.db")
	v.SetDefault("store.table", draft.DefaultTable)
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.backend", storage.BlobLocal)
	v.SetDefault("archive.dir", "archive")
	v.SetDefault("archive.prefix", "pages")
	v.SetDefault("logging.development", true)
	v.SetDefault("logging.level", "info")
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	u, err := url.Parse(c.Source.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("source.url must be an absolute http(s) URL")
	}
	if c.Source.TimeoutSeconds <= 0 {
		return fmt.Errorf("source.timeout_seconds must be > 0")
	}
	if c.Table.Index < 0 {
		return fmt.Errorf("table.index must be >= 0")
	}
	if c.Table.HeaderRows < 0 {
		return fmt.Errorf("table.header_rows must be >= 0")
	}
	if _, err := draft.TableName(c.Store.Table); err != nil {
		return fmt.Errorf("store.table: %w", err)
	}
	switch strings.ToLower(c.Store.Driver) {
	case "", storage.DriverSQLite:
		if strings.TrimSpace(c.Store.Path) == "" {
			return fmt.Errorf("store.path must be set for the sqlite driver")
		}
	case storage.DriverPostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("store.driver %q is not supported", c.Store.Driver)
	}
	if c.Archive.Enabled {
		switch strings.ToLower(c.Archive.Backend) {
		case "", storage.BlobLocal:
			if strings.TrimSpace(c.Archive.Dir) == "" {
				return fmt.Errorf("archive.dir must be set for the local backend")
			}
		case storage.BlobGCS:
			if strings.TrimSpace(c.Archive.Bucket) == "" {
				return fmt.Errorf("archive.bucket must be set for the gcs backend")
			}
		default:
			return fmt.Errorf("archive.backend %q is not supported", c.Archive.Backend)
		}
	}
	if c.Notify.Topic != "" && c.Notify.ProjectID == "" {
		return fmt.Errorf("notify.project_id must be set when notify.topic is set")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// FetchTimeout converts the source timeout into a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// SinkConfig maps the store section onto storage.SinkConfig.
func (c Config) SinkConfig() storage.SinkConfig {
	return storage.SinkConfig{
		Driver:   c.Store.Driver,
		Path:     c.Store.Path,
		DSN:      c.Store.DSN,
		Table:    c.Store.Table,
		MaxConns: c.Store.MaxConns,
	}
}

// BlobConfig maps the archive section onto storage.BlobConfig.
func (c Config) BlobConfig() storage.BlobConfig {
	return storage.BlobConfig{
		Backend: c.Archive.Backend,
		Dir:     c.Archive.Dir,
		Bucket:  c.Archive.Bucket,
	}
}
