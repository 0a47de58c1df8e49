package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"anime-tracker/core/database"
	"anime-tracker/core/logger"
	"anime-tracker/core/provider"
	"anime-tracker/core/server"
	"anime-tracker/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full application configuration, one section per component.
type Config struct {
	Server    server.Config   `mapstructure:"server"`
	Database  database.Config `mapstructure:"database"`
	Storage   storage.Config  `mapstructure:"storage"`
	Log       logger.Config   `mapstructure:"log"`
	Providers provider.Config `mapstructure:"providers"`
}

// LoadConfig reads the optional .env file in dir, then environment variables.
// Keys map to variables as SECTION_KEY (database.name -> DATABASE_NAME).
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot work at runtime.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverPostgres, database.DriverSQLite:
	default:
		return fmt.Errorf("database.driver: unsupported value %q", c.Database.Driver)
	}
	if c.Server.PageSize < 0 {
		return fmt.Errorf("server.page_size: must not be negative")
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket: required when storage is enabled")
	}
	return nil
}

// bindValues registers every mapstructure key with its 'default' tag so that
// AutomaticEnv can resolve it. Nested structs become dotted prefixes.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Set even empty defaults; unregistered keys are invisible to AutomaticEnv.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
