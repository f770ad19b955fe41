package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Dataset source kinds
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all configuration for the service
type Config struct {
	Server     ServerConfig
	Dataset    DatasetConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Monitoring MonitoringConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	StaticDir       string        `mapstructure:"static_dir"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type DatasetConfig struct {
	Source      string `mapstructure:"source"`
	SensorCSV   string `mapstructure:"sensor_csv"`
	AttackCSV   string `mapstructure:"attack_csv"`
	SensorTable string `mapstructure:"sensor_table"`
	AttackTable string `mapstructure:"attack_table"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type MonitoringConfig struct {
	PrometheusPort int `mapstructure:"prometheus_port"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	return LoadFrom(viper.New(), "./config")
}

// LoadFrom reads config.yaml from dir into v, with SWAT_ environment overrides
func LoadFrom(v *viper.Viper, dir string) (*Config, error) {
	v.SetEnvPrefix("SWAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Load config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.static_dir", "./public")
	v.SetDefault("server.cors_origins", []string{"*"})

	// Dataset defaults
	v.SetDefault("dataset.source", SourceCSV)
	v.SetDefault("dataset.sensor_csv", "./data/SWaT_Dataset.csv")
	v.SetDefault("dataset.attack_csv", "./data/Attack.csv")
	v.SetDefault("dataset.sensor_table", "swat_dataset")
	v.SetDefault("dataset.attack_table", "swat_attacks")

	// Database defaults
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.sslmode", "disable")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	// Monitoring defaults
	v.SetDefault("monitoring.prometheus_port", 9100)
}

func validateConfig(config *Config) error {
	switch config.Dataset.Source {
	case SourceCSV:
		if config.Dataset.SensorCSV == "" || config.Dataset.AttackCSV == "" {
			return fmt.Errorf("dataset.sensor_csv and dataset.attack_csv are required for csv source")
		}
	case SourcePostgres:
		if config.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for postgres source")
		}
		if config.Dataset.SensorTable == "" || config.Dataset.AttackTable == "" {
			return fmt.Errorf("dataset.sensor_table and dataset.attack_table are required for postgres source")
		}
	default:
		return fmt.Errorf("unknown dataset source %q", config.Dataset.Source)
	}
	if config.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if config.Redis.Enabled && config.Redis.Host == "" {
		return fmt.Errorf("redis.host is required when redis is enabled")
	}
	return nil
}
