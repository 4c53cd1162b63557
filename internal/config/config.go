// Package config reads etc/main.toml through viper. The environment
// variable GO_RECIPE_ADMIN_CONFIG_JSON may carry a JSON document merged
// over the file.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigJSON names the JSON override variable.
const EnvConfigJSON = "GO_RECIPE_ADMIN_CONFIG_JSON"

const defaultShutDownTime = 5

// ReadConfig reads main.toml from path, "./etc/" if empty.
func ReadConfig(path string) (Config, error) {
	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	if override := os.Getenv(EnvConfigJSON); override != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(override)); err != nil {
			return Config{}, errors.Wrapf(err, "failed to merge %s", EnvConfigJSON)
		}
	}

	var c Config

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("title", "GoRecipe-Admin")
	v.SetDefault("db.gormEngine", EngineSQLite)
	v.SetDefault("db.name", "recipes.db")
	v.SetDefault("db.slowThreshold", 200*time.Millisecond) //nolint:mnd
	v.SetDefault("webserver.shutDownTime", defaultShutDownTime)
	v.SetDefault("webserver.cacheExpiration", time.Minute)
	v.SetDefault("webserver.cacheTable", "http_cache")
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.appName", "go-recipe-admin")
	v.SetDefault("log.serviceName", "go-recipe-admin")
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer

	enc := toml.NewEncoder(&buffer)
	enc.SetIndentTables(true)

	if err := enc.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the daemon can not start without.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	switch strings.ToLower(c.DB.GormEngine) {
	case EngineMySQL, EnginePostgres, EngineSQLite:
		c.DB.GormEngine = strings.ToLower(c.DB.GormEngine)
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if c.DB.Name == "" {
		return errors.Wrap(ErrEmptyDBName, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	return nil
}
