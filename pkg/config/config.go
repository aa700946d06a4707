package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Calendar struct {
		PagesDir          string   `yaml:"pages_dir"`
		Timezone          string   `yaml:"timezone"`
		Workers           int      `yaml:"workers"`
		AllowedCurrencies []string `yaml:"allowed_currencies"`
		AllowedImpacts    []string `yaml:"allowed_impacts"`
	} `yaml:"calendar"`
	Details struct {
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		PerSecond float64       `yaml:"per_second"`
		Burst     float64       `yaml:"burst"`
	} `yaml:"details"`
	Price struct {
		Dir    string   `yaml:"dir"`
		Pairs  []string `yaml:"pairs"`
		Period string   `yaml:"period"`
	} `yaml:"price"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		RowsTopic    string   `yaml:"rows_topic"`
		AlignedTopic string   `yaml:"aligned_topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
		} `yaml:"producer"`
		Consumer struct {
			Enabled    bool          `yaml:"enabled"`
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host         string        `yaml:"host"`
		Port         int           `yaml:"port"`
		Database     string        `yaml:"database"`
		User         string        `yaml:"user"`
		Password     string        `yaml:"password"`
		DialTimeout  time.Duration `yaml:"dial_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Queue struct {
		Enabled    bool          `yaml:"enabled"`
		Workers    int           `yaml:"workers"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"queue"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PAGES_DIR"); v != "" {
		c.Calendar.PagesDir = v
	}
	if v := os.Getenv("PRICE_DIR"); v != "" {
		c.Price.Dir = v
	}
	if v := os.Getenv("PAIRS"); v != "" {
		c.Price.Pairs = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Calendar.PagesDir == "" {
		return fmt.Errorf("calendar.pages_dir is required")
	}
	if c.Price.Dir == "" {
		return fmt.Errorf("price.dir is required")
	}
	if len(c.Price.Pairs) == 0 {
		return fmt.Errorf("price.pairs cannot be empty")
	}
	switch c.Price.Period {
	case "M30", "H1", "H4", "D1":
	case "":
		c.Price.Period = "H1"
	default:
		return fmt.Errorf("price.period must be one of M30/H1/H4/D1, got '%s'", c.Price.Period)
	}
	for _, impact := range c.Calendar.AllowedImpacts {
		switch impact {
		case "Low", "Medium", "High", "Holiday":
		default:
			return fmt.Errorf("calendar.allowed_impacts contains unknown impact '%s'", impact)
		}
	}
	return nil
}
