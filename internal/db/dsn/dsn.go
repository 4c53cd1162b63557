// Package dsn builds the data source names of the supported engines from
// the database configuration.
package dsn

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/config"
)

const (
	defaultMySQLExtras    = "charset=utf8mb4&parseTime=True&loc=UTC"
	defaultPostgresExtras = "sslmode=disable"
	defaultMySQLPort      = 3306
	defaultPostgresPort   = 5432
)

// Create builds the DSN gorm opens for cfg.GormEngine. The mysql and
// postgres forms are also understood by the http cache storages.
func Create(cfg config.DB) (string, error) {
	switch cfg.GormEngine {
	case config.EngineMySQL:
		return mysql(cfg), nil
	case config.EnginePostgres:
		return postgres(cfg), nil
	case config.EngineSQLite:
		return sqlite(cfg), nil
	default:
		return "", errors.Wrap(config.ErrUnknownGormEngine, cfg.GormEngine)
	}
}

func mysql(cfg config.DB) string {
	extras := cfg.Extras
	if extras == "" {
		extras = defaultMySQLExtras
	}

	return fmt.Sprintf("%s:%s@tcp(%s)/%s?%s",
		cfg.User,
		cfg.Password,
		hostPort(cfg.Host, cfg.Port, defaultMySQLPort),
		cfg.Name,
		extras,
	)
}

func postgres(cfg config.DB) string {
	extras := cfg.Extras
	if extras == "" {
		extras = defaultPostgresExtras
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     hostPort(cfg.Host, cfg.Port, defaultPostgresPort),
		Path:     "/" + cfg.Name,
		RawQuery: extras,
	}

	return u.String()
}

func sqlite(cfg config.DB) string {
	if cfg.Extras == "" {
		return cfg.Name
	}

	return cfg.Name + "?" + cfg.Extras
}

func hostPort(host string, port, fallback int) string {
	if port == 0 {
		port = fallback
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}
