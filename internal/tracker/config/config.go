package config

import (
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"pump-radar/internal/tracker/model"
	"pump-radar/pkg/logger"
)

// Config is the whole tracker configuration.
type Config struct {
	Log                LogConfig          `mapstructure:"log"`
	Kafka              KafkaConfig        `mapstructure:"kafka"`
	Redis              RedisConfig        `mapstructure:"redis"`
	Postgres           PostgresConfig     `mapstructure:"postgres"`
	Telegram           TelegramConfig     `mapstructure:"telegram"`
	Moralis            MoralisConfig      `mapstructure:"moralis"`
	DexScreener        DexScreenerConfig  `mapstructure:"dexscreener"`
	Monitor            MonitorConfig      `mapstructure:"monitor"`
	Tracker            TrackerConfig      `mapstructure:"tracker"`
	Filters            model.FilterConfig `mapstructure:"filters"`
	SolanaClientRawUrl string             `mapstructure:"solana_client_rawurl"`
}

// KafkaConfig configures the webhook event topic consumer. Empty brokers
// disable the consumer.
type KafkaConfig struct {
	Brokers     string `mapstructure:"brokers"`
	TopicEvents string `mapstructure:"topic_events"`
	GroupID     string `mapstructure:"group_id"`
}

// RedisConfig configures the signature dedup store.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig configures the alert history store. Empty DSN disables
// persistence.
type PostgresConfig struct {
	DSN string `mapstructure:"dsn"`
}

// TelegramConfig configures alert dispatch. An empty token switches the
// tracker to log-only dispatch.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// MoralisConfig configures the primary market-data provider.
type MoralisConfig struct {
	GatewayURL string `mapstructure:"gateway_url"`
	APIKey     string `mapstructure:"api_key"`
	RateLimit  int    `mapstructure:"rate_limit"`
	Timeout    int    `mapstructure:"timeout"`
}

// DexScreenerConfig configures the fallback market-data provider.
type DexScreenerConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	RateLimit int    `mapstructure:"rate_limit"`
	Timeout   int    `mapstructure:"timeout"`
}

// LogConfig holds the log level, hot-applied on config reload.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

// TrackerConfig tunes the detection pipeline itself.
type TrackerConfig struct {
	ProgramAddress     string `mapstructure:"program_address"`
	PollIntervalSec    int    `mapstructure:"poll_interval_sec"`
	PollLimit          int    `mapstructure:"poll_limit"`
	EventsPerMinuteCap int    `mapstructure:"events_per_minute_cap"`
	RecapIntervalMin   int    `mapstructure:"recap_interval_min"`
	RecapTopN          int    `mapstructure:"recap_top_n"`
	CacheTTLMin        int    `mapstructure:"cache_ttl_min"`
}

var currentFilters atomic.Value

// Filters returns the latest filter snapshot. The value is replaced
// wholesale on config reload, so callers always see a consistent set.
func Filters() model.FilterConfig {
	if v := currentFilters.Load(); v != nil {
		return v.(model.FilterConfig)
	}
	return model.DefaultFilterConfig()
}

func InitConfig() Config {
	viper.SetConfigName("config.tracker")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config/")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	config, err := decode(viper.GetViper())
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}

	return config
}

// LoadConfig reads the configuration from an explicit file path.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, err
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	config := Config{Filters: model.DefaultFilterConfig()}
	if err := mapstructure.Decode(v.AllSettings(), &config); err != nil {
		return Config{}, err
	}
	applyDefaults(&config)
	currentFilters.Store(config.Filters)
	return config, nil
}

func applyDefaults(config *Config) {
	t := &config.Tracker
	if t.ProgramAddress == "" {
		t.ProgramAddress = "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P"
	}
	if t.PollIntervalSec <= 0 {
		t.PollIntervalSec = 30
	}
	if t.PollLimit <= 0 {
		t.PollLimit = 20
	}
	if t.EventsPerMinuteCap <= 0 {
		t.EventsPerMinuteCap = 5
	}
	if t.RecapIntervalMin <= 0 {
		t.RecapIntervalMin = 30
	}
	if t.RecapTopN <= 0 {
		t.RecapTopN = 10
	}
	if t.CacheTTLMin <= 0 {
		t.CacheTTLMin = 60
	}
}

// WatchConfig reloads the configuration when the file changes. The filter
// snapshot and log level take effect immediately; everything else applies
// on the next process start.
func WatchConfig(config *Config) {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig, err := decode(viper.GetViper())
		if err != nil {
			return
		}
		*config = newConfig
		logger.SetLogLevel(config.Log.Level)
	})
}
