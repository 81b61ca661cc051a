// Package config loads configs/config.yml (plus ESP_PANEL_* env overrides) for both binaries.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ESP_PANEL"

// Config is the full file; each binary reads the sections it needs.
type Config struct {
	Port    string        `mapstructure:"port"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Sensors SensorsConfig `mapstructure:"sensors"`
	Led     LedConfig     `mapstructure:"led"`
	MQTT    MQTTConfig    `mapstructure:"mqtt"`
	Panel   PanelConfig   `mapstructure:"panel"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// SensorsConfig describes the RS485 bus the probes hang off.
type SensorsConfig struct {
	Transport  string        `mapstructure:"transport"` // sim | rtu | tcp
	Device     string        `mapstructure:"device"`    // /dev/ttyUSB0 or host:502
	BaudRate   int           `mapstructure:"baud_rate"`
	SlaveIDs   []int         `mapstructure:"slave_ids"`
	Register   uint16        `mapstructure:"register"`
	Retries    int           `mapstructure:"retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Interval   time.Duration `mapstructure:"interval"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type LedConfig struct {
	Pin  int  `mapstructure:"pin"`
	Auto bool `mapstructure:"auto"`
}

// MQTTConfig enables state publishing when Broker is set.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// PanelConfig is read by cmd/panel.
type PanelConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "app.db")
	v.SetDefault("auth.token_ttl", time.Hour)
	v.SetDefault("sensors.transport", "sim")
	v.SetDefault("sensors.device", "/dev/ttyUSB0")
	v.SetDefault("sensors.baud_rate", 9600)
	v.SetDefault("sensors.slave_ids", []int{1, 2, 3})
	v.SetDefault("sensors.register", 0)
	v.SetDefault("sensors.retries", 3)
	v.SetDefault("sensors.retry_delay", 500*time.Millisecond)
	v.SetDefault("sensors.interval", time.Second)
	v.SetDefault("sensors.timeout", time.Second)
	v.SetDefault("led.pin", 2)
	v.SetDefault("led.auto", true)
	v.SetDefault("mqtt.topic", "esp_panel")
	v.SetDefault("mqtt.client_id", "esp-panel-device")
	v.SetDefault("panel.base_url", "http://192.168.4.1")
	v.SetDefault("panel.request_timeout", 5*time.Second)
}

// Load reads config.yml from dir. A missing file is not an error: defaults
// and environment still apply.
func Load(dir string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Sensors.Transport {
	case "sim", "rtu", "tcp":
	default:
		return fmt.Errorf("sensors.transport %q: want sim, rtu or tcp", c.Sensors.Transport)
	}
	if len(c.Sensors.SlaveIDs) == 0 {
		return errors.New("sensors.slave_ids must not be empty")
	}
	if c.Sensors.Retries < 1 {
		return errors.New("sensors.retries must be >= 1")
	}
	if c.Sensors.Interval <= 0 {
		return errors.New("sensors.interval must be > 0")
	}
	return nil
}
