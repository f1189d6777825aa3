package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	strategyENV       = "STRATEGY"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatIDENV         = "CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
	stateDirENV       = "STATE_DIR"
	pushgatewayENV    = "PUSHGATEWAY_URL"
)

const (
	StateBackendFile     = "file"
	StateBackendPostgres = "postgres"
)

// Config ...
type Config struct {
	Strategy string `yaml:"strategy"`
	DryRun   bool   `yaml:"dry_run"`

	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`

	Binance struct {
		BaseURL    string        `yaml:"base_url"`
		QuoteAsset string        `yaml:"quote_asset"`
		Interval   string        `yaml:"interval"`
		Limit      int           `yaml:"limit"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"binance"`

	State struct {
		Backend string `yaml:"backend"` // file | postgres
		Dir     string `yaml:"dir"`
		DSN     string `yaml:"db_dsn"`
	} `yaml:"state"`

	Runner struct {
		Workers int `yaml:"workers"`
	} `yaml:"runner"`

	Log struct {
		Level string `yaml:"level"`
		JSON  bool   `yaml:"json"`
	} `yaml:"log"`

	Tracing struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
	} `yaml:"tracing"`

	Metrics struct {
		PushgatewayURL string `yaml:"pushgateway_url"`
		Job            string `yaml:"job"`
	} `yaml:"metrics"`
}

// Overrides — значения из флагов CLI, пустые игнорируются.
type Overrides struct {
	ConfigFile string
	Strategy   string
	DryRun     bool
}

func defaults() Config {
	var cfg Config
	cfg.Strategy = "EMA50+EMAexit"
	cfg.Binance.BaseURL = "https://api.binance.com"
	cfg.Binance.QuoteAsset = "USDT"
	cfg.Binance.Interval = "1d"
	cfg.Binance.Limit = 300
	cfg.Binance.Timeout = 20 * time.Second
	cfg.State.Backend = StateBackendFile
	cfg.State.Dir = "."
	cfg.Runner.Workers = 8
	cfg.Log.Level = "info"
	cfg.Tracing.Host = "localhost"
	cfg.Tracing.Port = 6831
	cfg.Metrics.Job = "alert_bot"
	return cfg
}

// NewConfig: дефолты -> yaml файл (если есть) -> env -> флаги.
func NewConfig(o Overrides) (*Config, error) {
	_ = godotenv.Load()

	env := viper.New()
	env.AutomaticEnv()

	config := defaults()

	fileName := o.ConfigFile
	if fileName == "" {
		fileName = env.GetString(configFilePathENV)
	}
	if fileName != "" {
		if err := decodeFile(fileName, &config); err != nil {
			return nil, err
		}
	}

	if v := env.GetString(strategyENV); v != "" {
		config.Strategy = v
	}
	if v := env.GetString(tokenTelegramENV); v != "" {
		config.Telegram.Token = v
	}
	if env.IsSet(chatIDENV) {
		id := env.GetInt64(chatIDENV)
		if id == 0 {
			return nil, fmt.Errorf("env %s must be a numeric chat id", chatIDENV)
		}
		config.Telegram.ChatID = id
	}
	if v := env.GetString(databaseDSN); v != "" {
		config.State.DSN = v
	}
	if v := env.GetString(stateDirENV); v != "" {
		config.State.Dir = v
	}
	if v := env.GetString(pushgatewayENV); v != "" {
		config.Metrics.PushgatewayURL = v
	}

	if o.Strategy != "" {
		config.Strategy = o.Strategy
	}
	if o.DryRun {
		config.DryRun = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func decodeFile(name string, config *Config) error {
	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return fmt.Errorf("decode config file %s: %w", name, err)
	}
	return nil
}

// Validate проверяет то, что нельзя исправить дефолтами.
// Имя стратегии проверяет модуль strategy.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Strategy) == "" {
		return fmt.Errorf("strategy is required")
	}
	if !c.DryRun && (c.Telegram.Token == "" || c.Telegram.ChatID == 0) {
		return fmt.Errorf("%s and %s are required (or use dry run)", tokenTelegramENV, chatIDENV)
	}
	switch c.State.Backend {
	case StateBackendFile:
	case StateBackendPostgres:
		if c.State.DSN == "" {
			return fmt.Errorf("state backend postgres requires %s", databaseDSN)
		}
	default:
		return fmt.Errorf("unknown state backend %q", c.State.Backend)
	}
	if c.Binance.Limit < 200 {
		return fmt.Errorf("binance limit %d is below the 200 bar warm-up", c.Binance.Limit)
	}
	if c.Runner.Workers <= 0 {
		c.Runner.Workers = 1
	}
	return nil
}

// IntervalLabel — "1d" -> "1D" для заголовка сообщения.
func (c *Config) IntervalLabel() string {
	return strings.ToUpper(c.Binance.Interval)
}
