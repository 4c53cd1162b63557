package config

import (
	"time"
)

// Engines understood by DB.GormEngine.
const (
	EngineMySQL    = "mysql"
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// DB holds the database configuration settings.
type DB struct {
	GormEngine string `mapstructure:"gormEngine" toml:"gormEngine"` // mysql, postgres or sqlite
	Host       string `mapstructure:"host" toml:"host"`
	Port       int    `mapstructure:"port" toml:"port"`
	User       string `mapstructure:"user" toml:"user"`
	Password   string `mapstructure:"password" toml:"password"`
	Name       string `mapstructure:"name" toml:"name"` // database name, file path for sqlite
	Extras     string `mapstructure:"extras" toml:"extras"`

	// TextSearch overrides the search strategy, defaults to the engine's own.
	TextSearch string `mapstructure:"textSearch" toml:"textSearch"`

	MaxOpenConns    int           `mapstructure:"maxOpenConns" toml:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns" toml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime" toml:"connMaxLifetime"`
	SlowThreshold   time.Duration `mapstructure:"slowThreshold" toml:"slowThreshold"`
}

// Search returns the name of the text search strategy to use.
func (d DB) Search() string {
	if d.TextSearch != "" {
		return d.TextSearch
	}

	return d.GormEngine
}
