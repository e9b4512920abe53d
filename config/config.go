// Package config registers every setting with its default and loads mirai.toml through viper.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/anisan-cli/mirai/constant"
	"github.com/anisan-cli/mirai/filesystem"
	"github.com/anisan-cli/mirai/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps "network.timeout" to "network_timeout".
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Path is the location of the config file, whether or not it exists.
func Path() string {
	return filepath.Join(where.Config(), constant.Mirai+".toml")
}

// Setup applies defaults, binds MIRAI_* variables and reads the config file when there is one.
func Setup() error {
	viper.SetConfigName(constant.Mirai)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Mirai)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}
