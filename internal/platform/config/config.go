package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Images   ImagesConfig   `mapstructure:"images"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Driver      string `mapstructure:"driver"` // memory, postgres, sqlite
	DSN         string `mapstructure:"dsn"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type ImagesConfig struct {
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
}

// MaxBytes devuelve el límite de tamaño de imagen en bytes.
func (c ImagesConfig) MaxBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

type AuthConfig struct {
	APIToken            string `mapstructure:"api_token"`
	IntrospectionURL    string `mapstructure:"introspection_url"`
	IntrospectionAPIKey string `mapstructure:"introspection_api_key"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load lee config.yaml (si existe) desde configFile o ./config y ./,
// y aplica overrides por env. Las env vars históricas (PORT, DB_DSN,
// LOG_LEVEL, LOG_FORMAT, APP_NAME) siguen funcionando.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if f := strings.TrimSpace(configFile); f != "" {
		v.SetConfigFile(f)
	} else {
		v.AddConfigPath("config")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("VET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	legacy := map[string]string{
		"server.port":  "PORT",
		"database.dsn": "DB_DSN",
		"log.level":    "LOG_LEVEL",
		"log.format":   "LOG_FORMAT",
		"app.name":     "APP_NAME",
	}
	for key, env := range legacy {
		if err := v.BindEnv(key, "VET_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "vet-practice")
	v.SetDefault("server.port", "8080")
	// El body de un upload tiene read_timeout para llegar; después corre el
	// deadline de 5 min de procesamiento. write_timeout cubre ambos.
	v.SetDefault("server.read_timeout", 5*time.Minute)
	v.SetDefault("server.write_timeout", 11*time.Minute)
	v.SetDefault("database.driver", "")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.sqlite_path", "data/vet-practice.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("images.dir", "images")
	v.SetDefault("images.url_prefix", "/images/")
	v.SetDefault("images.max_size_mb", 5)
	v.SetDefault("auth.api_token", "")
	v.SetDefault("auth.introspection_url", "")
	v.SetDefault("auth.introspection_api_key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

func normalize(cfg *Config) {
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	// Sin driver explícito: si hay DSN se asume postgres (comportamiento histórico de DB_DSN).
	if cfg.Database.Driver == "" {
		if strings.TrimSpace(cfg.Database.DSN) != "" {
			cfg.Database.Driver = DriverPostgres
		} else {
			cfg.Database.Driver = DriverMemory
		}
	}
	if !strings.HasSuffix(cfg.Images.URLPrefix, "/") {
		cfg.Images.URLPrefix += "/"
	}
	cfg.Server.Port = strings.TrimPrefix(strings.TrimSpace(cfg.Server.Port), ":")
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return errors.New("config: database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}
	if c.Images.MaxSizeMB <= 0 {
		return errors.New("config: images.max_size_mb must be positive")
	}
	if strings.TrimSpace(c.Images.Dir) == "" {
		return errors.New("config: images.dir is required")
	}
	return nil
}

// Addr devuelve la dirección de escucha en formato ":port".
func (c Config) Addr() string {
	return ":" + c.Server.Port
}
