// Package config provides configuration loading, defaults and validation for
// DealLens.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "DEALLENS"

// newViper builds a Viper instance with YAML file type, the DEALLENS_ env
// prefix, automatic env binding and a "." → "_" key replacer, so that
// "database.host" resolves to DEALLENS_DATABASE_HOST.
//
// Hosting platforms inject PORT and a platform marker (RAILWAY_ENVIRONMENT or
// RENDER); both are bound without the prefix.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setViperDefaults(v)

	_ = v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("platform.railway", "RAILWAY_ENVIRONMENT")
	_ = v.BindEnv("platform.render", "RENDER")
	return v
}

// Load reads the YAML file at configPath, merges DEALLENS_* overrides, applies
// defaults and validates the result. An empty configPath loads from the
// environment only.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return LoadFromEnv()
	}
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from DEALLENS_* environment variables and
// defaults, with no config file.
//
//	DEALLENS_<SECTION>_<FIELD>   e.g.  DEALLENS_DATABASE_HOST, DEALLENS_REDIS_ADDR
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	if v.GetString("platform.railway") != "" || v.GetString("platform.render") != "" {
		cfg.Environment = EnvProduction
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch monitors configPath and invokes onChange with the re-parsed Config on
// every write. Invalid intermediate states are reported to onError (if non-nil)
// and never reach onChange. Watch does not block.
func Watch(configPath string, onChange func(*Config), onError func(error)) error {
	v := newViper()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// MustLoad wraps Load and panics on error. For use in main().
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

//Personal.AI order the ending
