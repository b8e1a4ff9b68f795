// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/playshell/playshell/constant"
	"github.com/playshell/playshell/filesystem"
	"github.com/playshell/playshell/key"
	"github.com/playshell/playshell/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer normalizes configuration keys into environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup registers defaults, binds environment variables and reads the config file if one exists.
func Setup() error {
	viper.SetConfigName(constant.Playshell)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Playshell)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// ProgressInterval returns the configured progress cadence. Non-positive
// values fall back to one second.
func ProgressInterval() time.Duration {
	ms := viper.GetInt(key.PlayerProgressInterval)
	if ms <= 0 {
		return time.Second
	}
	return time.Duration(ms) * time.Millisecond
}
