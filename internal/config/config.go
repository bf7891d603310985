package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultStorageRoot = "./notes"
	DefaultLogLevel    = "info"

	defaultSweepTTL          = time.Hour
	defaultSweepEvery        = 10 * time.Minute
	defaultReadHeaderTimeout = 10 * time.Second
)

// Переменные окружения, переопределяющие значения из файла.
const (
	EnvConfigPath  = "CONFIG_PATH"
	EnvHost        = "NOTES_HOST"
	EnvPort        = "NOTES_PORT"
	EnvStorageRoot = "NOTES_ROOT"
	EnvLogLevel    = "NOTES_LOG_LEVEL"
)

// Config собирается один раз при старте и дальше только читается.
type Config struct {
	Host              string        `yaml:"host" json:"host"`
	Port              int           `yaml:"port" json:"port"`
	StorageRoot       string        `yaml:"storage_root" json:"storage_root"`
	LogLevel          string        `yaml:"log_level" json:"log_level"`
	SweepTTL          time.Duration `yaml:"sweep_ttl" json:"sweep_ttl"`
	SweepEvery        time.Duration `yaml:"sweep_every" json:"sweep_every"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" json:"read_header_timeout"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() Config {
	return Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		StorageRoot:       DefaultStorageRoot,
		LogLevel:          DefaultLogLevel,
		SweepTTL:          defaultSweepTTL,
		SweepEvery:        defaultSweepEvery,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
	}
}

// Load читает YAML-конфигурацию (если файл есть), применяет ENV-переопределения и возвращает актуальную структуру.
// Пустой path означает CONFIG_PATH; отсутствие файла по умолчанию не считается ошибкой.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigPath)
		explicit = path != ""
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// ENV override
	if err := applyEnv(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

func applyEnv(c *Config) error {
	if v := os.Getenv(EnvHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvStorageRoot); v != "" {
		c.StorageRoot = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}

	return nil
}

// Validate проверяет, что конфигурация пригодна для запуска сервера.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StorageRoot) == "" {
		return fmt.Errorf("storage root is empty")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	return nil
}

// ListenAddr собирает адрес в формате host:port.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
