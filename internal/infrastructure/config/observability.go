package config

// LoggingConfig drives the process logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`
	// FilePath is where logs go when Output is "file".
	FilePath      string `mapstructure:"file_path" validate:"required_if=Output file"`
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// MetricsConfig controls the Prometheus endpoint served by the host.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path    string `mapstructure:"path" validate:"omitempty,startswith=/"`
}
