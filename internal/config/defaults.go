package config

const (
	defaultServerURL      = "http://localhost:5747"
	defaultRequestTimeout = 15
	defaultStateDir       = "~/.local/share/mamrr"
	defaultLogDir         = "~/.local/share/mamrr/logs"
	defaultNotifyTTLMs    = 3500
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			URL:            defaultServerURL,
			RequestTimeout: defaultRequestTimeout,
			VerifySession:  true,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Notifications: Notifications{
			TTLMillis: defaultNotifyTTLMs,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
