package log

// Config holds the logger settings used to build the process-wide
// slog handler in cmd/run.go.
type Config struct {
	Level     int  `mapstructure:"level"`
	AddSource bool `mapstructure:"add_source"`
}
