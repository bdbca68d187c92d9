package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"EdgeFinder/internal/collector"
	"EdgeFinder/internal/model"
	"EdgeFinder/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Oanda struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"oanda"`
	Candles struct {
		Granularity string `yaml:"granularity"`
		Count       int    `yaml:"count"`
		// Fallback enables the Yahoo chart API when OANDA fails.
		Fallback bool `yaml:"fallback"`
	} `yaml:"candles"`
	Reference struct {
		Path string `yaml:"path"`
	} `yaml:"reference"`
	Bias struct {
		SentimentSource string `yaml:"sentiment_source"`
	} `yaml:"bias"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		EvalCron string   `yaml:"eval_cron"`
		Watch    []string `yaml:"watch"`
	} `yaml:"schedule"`
	Pairs       []model.Pair `yaml:"pairs"`
	LogLevel    string       `yaml:"log_level"`
	LogFormat   string       `yaml:"log_format"`
	MetricsAddr string       `yaml:"metrics_addr"`
	Proxy       string       `yaml:"proxy"`
}

// DefaultPath is used when neither --config nor CONFIG_PATH is set.
const DefaultPath = "configs/config.yaml"

// Path picks the config file: an explicit path, then CONFIG_PATH, then
// DefaultPath. Call it after LoadDotEnv so CONFIG_PATH may come from .env.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// LoadDotEnv loads environment variables from the given .env files when
// they exist. Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; defaults and the environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Candles.Fallback = true

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OANDA_BASE_URL"); v != "" {
		cfg.Oanda.BaseURL = v
	}
	if v := os.Getenv("OANDA_API_KEY"); v != "" {
		cfg.Oanda.APIKey = v
	}
	if v := os.Getenv("CANDLE_GRANULARITY"); v != "" {
		cfg.Candles.Granularity = v
	}
	if v := os.Getenv("CANDLE_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Candles.Count = n
		}
	}
	if v := os.Getenv("REFERENCE_PATH"); v != "" {
		cfg.Reference.Path = v
	}
	if v := os.Getenv("SENTIMENT_SOURCE"); v != "" {
		cfg.Bias.SentimentSource = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("EVAL_CRON"); v != "" {
		cfg.Schedule.EvalCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Oanda.BaseURL == "" {
		cfg.Oanda.BaseURL = "https://api-fxtrade.oanda.com"
	}
	if cfg.Candles.Granularity == "" {
		cfg.Candles.Granularity = "H4"
	}
	if cfg.Candles.Count == 0 {
		cfg.Candles.Count = 100
	}
	if cfg.Reference.Path == "" {
		cfg.Reference.Path = "data/reference.yaml"
	}
	if cfg.Bias.SentimentSource == "" {
		cfg.Bias.SentimentSource = string(strategy.SentimentNone)
	}
	if cfg.Schedule.EvalCron == "" {
		// Five minutes after each H4 close, weekdays.
		cfg.Schedule.EvalCron = "0 5 */4 * * 1-5"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	return cfg, nil
}

// Registry returns the built-in pairs extended with the configured ones.
func (c *Config) Registry() *model.PairRegistry {
	reg := model.DefaultRegistry()
	for _, p := range c.Pairs {
		reg.Register(p)
	}
	return reg
}

// EvaluateOptions returns the engine options selected by the config.
func (c *Config) EvaluateOptions() strategy.EvaluateOptions {
	return strategy.EvaluateOptions{SentimentSource: strategy.SentimentSource(c.Bias.SentimentSource)}
}

// TelegramEnabled reports whether Telegram credentials are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if !collector.ValidGranularity(c.Candles.Granularity) {
		return fmt.Errorf("candles.granularity %q is not supported", c.Candles.Granularity)
	}
	if c.Candles.Count <= 0 || c.Candles.Count > 5000 {
		return fmt.Errorf("candles.count must be in 1..5000, got %d", c.Candles.Count)
	}
	if !strategy.SentimentSource(c.Bias.SentimentSource).Valid() {
		return fmt.Errorf("bias.sentiment_source %q must be %q or %q",
			c.Bias.SentimentSource, strategy.SentimentNone, strategy.SentimentRetail)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	for i, p := range c.Pairs {
		if p.Symbol == "" || p.BaseCurrency == "" || p.QuoteCurrency == "" {
			return fmt.Errorf("pairs[%d]: symbol, base_currency and quote_currency are required", i)
		}
	}
	reg := c.Registry()
	for _, s := range c.Schedule.Watch {
		if _, ok := reg.Lookup(s); !ok {
			return fmt.Errorf("schedule.watch: %w: %q", strategy.ErrUnknownPair, s)
		}
	}
	return nil
}
