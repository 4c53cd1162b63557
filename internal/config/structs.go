package config

import (
	"time"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode" toml:"devMode"` // seeds demo data on start
	DB        DB         `mapstructure:"db" toml:"db"`
	Log       logger.Log `mapstructure:"log" toml:"log"`
	Title     string     `mapstructure:"title" toml:"title"`
	Webserver Webserver  `mapstructure:"webserver" toml:"webserver"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Port            int           `mapstructure:"port" toml:"port"`                 // listening port
	URL             string        `mapstructure:"url" toml:"url"`                   // public base url
	ShutDownTime    int           `mapstructure:"shutDownTime" toml:"shutDownTime"` // seconds to wait for open requests
	BodyLimit       int           `mapstructure:"bodyLimit" toml:"bodyLimit"`       // bytes
	DisableRecover  bool          `mapstructure:"disableRecover" toml:"disableRecover"`
	CacheEnabled    bool          `mapstructure:"cacheEnabled" toml:"cacheEnabled"` // cache GET responses
	CacheExpiration time.Duration `mapstructure:"cacheExpiration" toml:"cacheExpiration"`
	CacheTable      string        `mapstructure:"cacheTable" toml:"cacheTable"`
}
