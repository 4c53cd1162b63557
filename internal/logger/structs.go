package logger

import (
	"time"

	"github.com/DataDog/datadog-api-client-go/v2/api/datadog"
)

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled" toml:"enabled"`
	UseConsoleWriter bool `mapstructure:"useConsoleWriter" toml:"useConsoleWriter"`
}

// Rotation configures one rolling log file.
type Rotation struct {
	File       string `mapstructure:"file" toml:"file"`
	MaxSize    int    `mapstructure:"maxSize" toml:"maxSize"` // megabytes
	MaxBackups int    `mapstructure:"maxBackups" toml:"maxBackups"`
	MaxAge     int    `mapstructure:"maxAge" toml:"maxAge"` // days
	Compress   bool   `mapstructure:"compress" toml:"compress"`
}

// LogFile implements a file based logger. Every level group and the
// access log rotate independently.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Path    string `mapstructure:"path" toml:"path"`

	Access Rotation `mapstructure:"access" toml:"access"`
	Error  Rotation `mapstructure:"error" toml:"error"`
	Info   Rotation `mapstructure:"info" toml:"info"`
	Trace  Rotation `mapstructure:"trace" toml:"trace"`
	Warn   Rotation `mapstructure:"warn" toml:"warn"`
}

// DataDog implements a datadog config.
type DataDog struct {
	Enabled     bool                         `mapstructure:"enabled" toml:"enabled"`
	ServiceName string                       `mapstructure:"serviceName" toml:"serviceName"`
	APIKey      string                       `mapstructure:"apiKey" toml:"apiKey"` // API Key defined at datadog
	Site        string                       `mapstructure:"site" toml:"site"`     // Regional Site aka DD_SITE ("datadoghq.eu")
	Tags        string                       `mapstructure:"tags" toml:"tags"`     // comma separated ddtags
	Servers     datadog.ServerConfigurations `mapstructure:"-" toml:"-"`
	Timeout     time.Duration                `mapstructure:"timeout" toml:"timeout"` // how long to wait to send a batch to datadog.

	BufferSize    int           `mapstructure:"bufferSize" toml:"bufferSize"`       // queued events before dropping
	BatchSize     int           `mapstructure:"batchSize" toml:"batchSize"`         // events per request
	FlushInterval time.Duration `mapstructure:"flushInterval" toml:"flushInterval"` // max age of a partial batch
}

// Log implements the logger config.
type Log struct {
	LogLevel string `mapstructure:"logLevel" toml:"logLevel"` // trace, debug, info, warn, error.

	// EnableAccessLogToConsole writes the http access log to stdout.
	// Does not overrule Console.Enabled.
	EnableAccessLogToConsole bool `mapstructure:"enableAccessLogToConsole" toml:"enableAccessLogToConsole"`
	ReportCaller             bool `mapstructure:"reportCaller" toml:"reportCaller"`
	DisableCheckAlive        bool `mapstructure:"disableCheckAlive" toml:"disableCheckAlive"` // do not log /checkalive calls

	// SQL logs every statement gorm executes at debug level.
	SQL bool `mapstructure:"sql" toml:"sql"`

	AppName     string `mapstructure:"appName" toml:"appName"`
	ServiceName string `mapstructure:"serviceName" toml:"serviceName"`

	Console Console `mapstructure:"console" toml:"console"`
	File    LogFile `mapstructure:"file" toml:"file"`
	DataDog DataDog `mapstructure:"datadog" toml:"datadog"`
}
