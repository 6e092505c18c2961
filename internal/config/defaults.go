package config

const (
	defaultLogDir         = "~/.local/share/tidy/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
	defaultHistoryBackend = "json"
)

// Default returns a Config populated with repository defaults. The target
// directory is intentionally empty; it comes from the command line or the
// config file, never from a guess.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		History: History{
			Backend: defaultHistoryBackend,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
