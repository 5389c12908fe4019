package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		PulseInterval   time.Duration `yaml:"pulse_interval" default:"30s"`
		CORSOrigins     []string      `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled       bool          `yaml:"enabled" default:"true"`
		SlowThreshold time.Duration `yaml:"slow_threshold" default:"2s"`
	} `yaml:"metrics"`
	Upstream struct {
		BaseURL        string        `yaml:"base_url" default:"https://api.argentinadatos.com"`
		Timeout        time.Duration `yaml:"timeout" default:"8s"`
		RequestsPerSec int           `yaml:"requests_per_sec" default:"5"`
		Retries        int           `yaml:"retries" default:"1"`
		RetryBackoff   time.Duration `yaml:"retry_backoff" default:"300ms"`
		Revalidate     struct {
			Rates     time.Duration `yaml:"rates" default:"10m"`
			History   time.Duration `yaml:"history" default:"1h"`
			Risk      time.Duration `yaml:"risk" default:"1h"`
			Inflation time.Duration `yaml:"inflation" default:"24h"`
			Reserves  time.Duration `yaml:"reserves" default:"24h"`
			Markets   time.Duration `yaml:"markets" default:"30m"`
			News      time.Duration `yaml:"news" default:"15m"`
		} `yaml:"revalidate"`
		ADRs []ADR `yaml:"adrs"`
	} `yaml:"upstream"`
	News struct {
		GNewsKey   string    `yaml:"gnews_key"`
		NewsAPIKey string    `yaml:"newsapi_key"`
		GNewsURL   string    `yaml:"gnews_url" default:"https://gnews.io/api/v4/search"`
		NewsAPIURL string    `yaml:"newsapi_url" default:"https://newsapi.org/v2/everything"`
		Feeds      []RSSFeed `yaml:"feeds"`
	} `yaml:"news"`
	Cache struct {
		Type          string        `yaml:"type" default:"memory"` // memory | redis | layered
		MemoryMaxSize int           `yaml:"memory_max_size" default:"1000"`
		MemoryCleanup time.Duration `yaml:"memory_cleanup" default:"5m"`
		PromoteTTL    time.Duration `yaml:"promote_ttl" default:"1m"`
		Redis         struct {
			Host         string        `yaml:"host" default:"localhost"`
			Port         int           `yaml:"port" default:"6379"`
			Password     string        `yaml:"password"`
			DB           int           `yaml:"db"`
			Prefix       string        `yaml:"prefix" default:"argpulse"`
			PoolSize     int           `yaml:"pool_size" default:"10"`
			MinIdleConns int           `yaml:"min_idle_conns" default:"2"`
			PoolTimeout  time.Duration `yaml:"pool_timeout" default:"5s"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	History struct {
		Backend string `yaml:"backend" default:"file"` // file | clickhouse
		Path    string `yaml:"path" default:"data/analysis-history.json"`
		Table   string `yaml:"table" default:"analysis_posts"`
	} `yaml:"history"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost"`
		Port             int           `yaml:"port" default:"9000"`
		Database         string        `yaml:"database" default:"argpulse"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"10s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"30s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic" default:"argpulse.analysis"`
		RequiredAcks int      `yaml:"required_acks" default:"-1"`
		Compression  string   `yaml:"compression" default:"gzip"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id" default:"argpulse-history"`
			Workers    int           `yaml:"workers" default:"1"`
			BufferSize int           `yaml:"buffer_size" default:"16"`
			RetryMax   int           `yaml:"retry_max" default:"3"`
			BackoffMin time.Duration `yaml:"backoff_min" default:"100ms"`
			BackoffMax time.Duration `yaml:"backoff_max" default:"5s"`
			DLQTopic   string        `yaml:"dlq_topic"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Archive struct {
		Enabled  bool   `yaml:"enabled" default:"true"`
		Schedule string `yaml:"schedule" default:"5 0 * * *"`
	} `yaml:"archive"`
	Poll struct {
		VoteTTL time.Duration `yaml:"vote_ttl" default:"168h"`
	} `yaml:"poll"`
}

// ADR is a statically configured depositary receipt quote shown next to the main index.
type ADR struct {
	Ticker string  `yaml:"ticker"`
	Price  float64 `yaml:"price"`
	Change string  `yaml:"change"`
	Trend  string  `yaml:"trend"`
}

// RSSFeed is a news source polled when no news API key works.
type RSSFeed struct {
	URL      string `yaml:"url"`
	Source   string `yaml:"source"`
	Category string `yaml:"category"`
	// Filter restricts the feed to economy-related headlines.
	Filter bool `yaml:"filter"`
}

// Default returns a config populated only from struct defaults.
func Default() *Config {
	var c Config
	_ = defaults.Set(&c)
	c.applyDefaultLists()
	return &c
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaultLists()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
// A missing file falls back to defaults so the dashboard can boot with zero setup.
func LoadWithEnv(path string) (*Config, error) {
	var c *Config
	if _, statErr := os.Stat(path); statErr != nil && os.IsNotExist(statErr) {
		c = Default()
	} else {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		c = loaded
	}

	if v := os.Getenv("ARGPULSE_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		c.News.GNewsKey = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		c.News.NewsAPIKey = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("CACHE_TYPE"); v != "" {
		c.Cache.Type = v
	}
	if v := os.Getenv("HISTORY_BACKEND"); v != "" {
		c.History.Backend = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}

	return c, c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	switch c.Cache.Type {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.type must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Type)
	}
	switch c.History.Backend {
	case "file":
		if c.History.Path == "" {
			return fmt.Errorf("history.path is required for the file backend")
		}
	case "clickhouse":
		if c.ClickHouse.Host == "" {
			return fmt.Errorf("clickhouse.host is required for the clickhouse backend")
		}
	default:
		return fmt.Errorf("history.backend must be 'file' or 'clickhouse', got '%s'", c.History.Backend)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	return nil
}

func (c *Config) applyDefaultLists() {
	if len(c.Upstream.ADRs) == 0 {
		c.Upstream.ADRs = []ADR{
			{Ticker: "YPF", Price: 21.4, Change: "+3.2%", Trend: "up"},
			{Ticker: "GGAL", Price: 28.1, Change: "-0.5%", Trend: "down"},
			{Ticker: "BMA", Price: 34.2, Change: "+1.1%", Trend: "up"},
			{Ticker: "PAM", Price: 42.8, Change: "+0.8%", Trend: "up"},
		}
	}
	if len(c.News.Feeds) == 0 {
		c.News.Feeds = []RSSFeed{
			{URL: "https://www.ambito.com/rss/economia.xml", Source: "Ámbito Financiero", Category: "Economy"},
			{URL: "https://www.ambito.com/rss/finanzas.xml", Source: "Ámbito Financiero", Category: "Markets"},
			{URL: "https://www.infobae.com/feeds/rss/", Source: "Infobae", Category: "Economy", Filter: true},
		}
	}
}
