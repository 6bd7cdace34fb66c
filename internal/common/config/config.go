// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Dataset       DatasetConfig      `mapstructure:"dataset"`
	Recommender   RecommenderConfig  `mapstructure:"recommender"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Export        ExportConfig       `mapstructure:"export"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// DatasetConfig selects where customer rows come from.
type DatasetConfig struct {
	Source string `mapstructure:"source"` // "csv" or "postgres"
	Path   string `mapstructure:"path"`   // csv source
	Table  string `mapstructure:"table"`  // postgres source
}

// RecommenderConfig holds the scoring policy and batch tuning knobs.
type RecommenderConfig struct {
	TopK         int     `mapstructure:"top_k"`
	UsageWeight  float64 `mapstructure:"usage_weight"`
	CostWeight   float64 `mapstructure:"cost_weight"`
	MaxParallel  int     `mapstructure:"max_parallel"`
	CacheEnabled bool    `mapstructure:"cache_enabled"`
	CacheTTL     int     `mapstructure:"cache_ttl"` // milliseconds
	Interval     int     `mapstructure:"interval"`  // milliseconds; 0 = run once
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ExportConfig holds report output settings.
type ExportConfig struct {
	ReportPath  string `mapstructure:"report_path"`
	CatalogPath string `mapstructure:"catalog_path"`
	BestPath    string `mapstructure:"best_path"`

	Elasticsearch struct {
		Enabled bool   `mapstructure:"enabled"`
		Index   string `mapstructure:"index"`
	} `mapstructure:"elasticsearch"`
}

// NotificationConfig holds settings for batch-completion notifications.
type NotificationConfig struct {
	Email EmailConfig     `mapstructure:"email"`
	SMS   SMSConfig       `mapstructure:"sms"`
	AWS   AWSNotifyConfig `mapstructure:"aws"`
}

type EmailConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	FromEmail string `mapstructure:"from_email"`
	ToEmail   string `mapstructure:"to_email"`
}

type SMSConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	PhoneNumber string `mapstructure:"phone_number"`
}

type AWSNotifyConfig struct {
	Region string `mapstructure:"region"`
}

// MetricsConfig holds the Prometheus endpoint settings.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
