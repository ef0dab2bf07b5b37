// Package config はアプリケーション設定を管理します。
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/stsysd/collisionviz/clock"
	"github.com/stsysd/collisionviz/heatmap"
	"github.com/stsysd/collisionviz/rangecontrol"
	"github.com/stsysd/collisionviz/speedsign"
)

// EnvPrefix は環境変数のプレフィックスです。
const EnvPrefix = "COLLISIONVIZ"

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Logging LoggingConfig
	Store   StoreConfig

	// レイアウト上書き用のYAMLファイル。空なら既定値を使う
	LayoutFile string `envconfig:"LAYOUT_FILE"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port            int           `envconfig:"PORT" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	Timezone        string        `envconfig:"TIMEZONE" default:"Local"`
}

// DataConfig names the three input tables. Each may be a file path or an
// http(s) URL.
type DataConfig struct {
	Heatmap      string        `envconfig:"HEATMAP" default:"data/collisions_by_weekday_cleaned.csv" validate:"required"`
	Clock        string        `envconfig:"CLOCK" default:"data/collisions_by_hour.csv" validate:"required"`
	Speed        string        `envconfig:"SPEED" default:"data/cleaned_crash_by_month.csv" validate:"required"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"30s"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output string `envconfig:"OUTPUT" default:"stdout" validate:"oneof=stdout stderr file"`
	// Output が file の場合のみ使用
	FilePath string `envconfig:"FILE_PATH" default:"logs/collisionviz.log" validate:"required_if=Output file"`
}

// StoreConfig selects the record backend and the session lifetime.
type StoreConfig struct {
	Backend    string        `envconfig:"BACKEND" default:"memory" validate:"oneof=memory sqlite"`
	DataDir    string        `envconfig:"DATA_DIR"` // sqlite only; empty means in-memory database
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"30m" validate:"gte=0"`
}

// Load は環境変数から設定を読み込み、検証します。
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks v's validate tags.
func Validate(v any) error {
	return validator.New().Struct(v)
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Location resolves the timezone used by the clock hand.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Server.Timezone)
}

// Layouts groups the fixed canvases of every visualization.
type Layouts struct {
	Heatmap heatmap.Layout       `yaml:"heatmap"`
	Range   rangecontrol.Options `yaml:"range"`
	Clock   clock.Layout         `yaml:"clock"`
	Speed   speedsign.Layout     `yaml:"speed"`
}

// DefaultLayouts returns the standard canvases.
func DefaultLayouts() Layouts {
	hl := heatmap.DefaultLayout()
	return Layouts{
		Heatmap: hl,
		Range:   rangecontrol.DefaultOptions(hl.GridWidth),
		Clock:   clock.DefaultLayout(),
		Speed:   speedsign.DefaultLayout(),
	}
}

// LoadLayouts reads layout overrides from a YAML file on top of the
// defaults. An empty path returns the defaults.
func LoadLayouts(path string) (Layouts, error) {
	layouts := DefaultLayouts()
	if path == "" {
		return layouts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Layouts{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	// 既定値の上にデコードするので、書かれていない項目は既定値のまま
	if err := yaml.Unmarshal(data, &layouts); err != nil {
		return Layouts{}, fmt.Errorf("failed to parse layout file: %w", err)
	}
	if err := Validate(&layouts); err != nil {
		return Layouts{}, fmt.Errorf("invalid layout: %w", err)
	}
	return layouts, nil
}
