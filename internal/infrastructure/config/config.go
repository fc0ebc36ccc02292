package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	usecasecontract "github.com/mikiasgoitom/likeledger/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Port             string `mapstructure:"port"`
	AppBaseURL       string `mapstructure:"app_base_url"`
	LogDebug         bool   `mapstructure:"log_debug"`
	LedgerDriver     string `mapstructure:"ledger_driver"`
	MongoURI         string `mapstructure:"mongodb_uri"`
	MongoDBName      string `mapstructure:"mongodb_db_name"`
	DatabaseDSN      string `mapstructure:"database_dsn"`
	RedisURL         string `mapstructure:"redis_url"`
	JWTSecret        string `mapstructure:"jwt_secret"`
	SiteID           string `mapstructure:"site_id"`
	Sites            string `mapstructure:"sites"`
	LikeTypes        string `mapstructure:"like_types"`
	CORSAllowOrigins string `mapstructure:"cors_allow_origins"`
	sites            map[string]string
	likeTypes        []string
}

var drivers = map[string]bool{"mongo": true, "postgres": true, "mysql": true, "redis": true, "memory": true}

// Load reads configuration from defaults, an optional config.yml in ./config
// or ., and environment variables, in increasing priority.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("port", "8080")
	v.SetDefault("app_base_url", "http://localhost:8080")
	v.SetDefault("log_debug", false)
	v.SetDefault("ledger_driver", "mongo")
	v.SetDefault("mongodb_uri", "mongodb://localhost:27017")
	v.SetDefault("mongodb_db_name", "likes")
	v.SetDefault("database_dsn", "")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("site_id", "1")
	v.SetDefault("sites", "")
	v.SetDefault("like_types", "")
	v.SetDefault("cors_allow_origins", "*")

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.LedgerDriver = strings.ToLower(strings.TrimSpace(cfg.LedgerDriver))
	if !drivers[cfg.LedgerDriver] {
		return nil, fmt.Errorf("unsupported ledger driver %q", cfg.LedgerDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable not set")
	}
	if (cfg.LedgerDriver == "postgres" || cfg.LedgerDriver == "mysql") && cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN is required for the %s ledger", cfg.LedgerDriver)
	}
	sites, err := parseSites(cfg.Sites)
	if err != nil {
		return nil, err
	}
	cfg.sites = sites
	cfg.likeTypes = splitList(cfg.LikeTypes)
	return cfg, nil
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// GetPort returns the HTTP listen port.
func (c *Config) GetPort() string { return c.Port }

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string { return c.AppBaseURL }

// GetLogDebug returns whether debug logging is enabled.
func (c *Config) GetLogDebug() bool { return c.LogDebug }

// GetLedgerDriver returns which store backs the like ledger.
func (c *Config) GetLedgerDriver() string { return c.LedgerDriver }

func (c *Config) GetMongoURI() string    { return c.MongoURI }
func (c *Config) GetMongoDBName() string { return c.MongoDBName }
func (c *Config) GetDatabaseDSN() string { return c.DatabaseDSN }
func (c *Config) GetRedisURL() string    { return c.RedisURL }
func (c *Config) GetJWTSecret() string   { return c.JWTSecret }

// GetDefaultSiteID returns the site used for hosts not listed in SITES.
func (c *Config) GetDefaultSiteID() string { return c.SiteID }

// GetSites returns the configured site id → domain pairs.
func (c *Config) GetSites() map[string]string { return c.sites }

// GetLikeTypes returns the "app.model[=url-template]" entries to register.
func (c *Config) GetLikeTypes() []string { return c.likeTypes }

// GetCORSAllowOrigins returns the allowed CORS origins.
func (c *Config) GetCORSAllowOrigins() []string { return splitList(c.CORSAllowOrigins) }

// parseSites parses "1=example.com,2=other.example.com".
func parseSites(raw string) (map[string]string, error) {
	sites := make(map[string]string)
	for _, entry := range splitList(raw) {
		id, domain, ok := strings.Cut(entry, "=")
		id, domain = strings.TrimSpace(id), strings.TrimSpace(domain)
		if !ok || id == "" || domain == "" {
			return nil, fmt.Errorf("invalid SITES entry %q, want id=domain", entry)
		}
		sites[id] = domain
	}
	return sites, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
