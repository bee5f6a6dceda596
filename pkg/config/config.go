// Package config provides configuration management for lupr.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Report: output_dir, catalog
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Report.FileNumber, SchemaPath, Workspace, AOIName, AOIField, LeaveAreas
//     (per-run)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use LUPR_ prefix with underscores for nesting:
//
//	LUPR_REPORT_OUTPUT_DIR=/tmp/reports
//	LUPR_LOG_LEVEL=info
package config

// Config represents the complete lupr configuration.
type Config struct {
	// Report contains settings for overlap report generation.
	Report ReportConfig `mapstructure:"report" yaml:"report"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ReportConfig contains settings for the report command.
type ReportConfig struct {
	// OutputDir is the directory where report workbooks are written.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// Catalog is the path to catalog.yaml, the fallback catalog used to
	// resolve dataset paths that do not exist locally.
	// Empty string means the default location in the config directory.
	Catalog string `mapstructure:"catalog" yaml:"catalog"`

	// FileNumber is the file name or number used in output naming.
	// Runtime-only, supplied by the CLI per run.
	FileNumber string

	// SchemaPath is the path to the Excel schema workbook.
	// Runtime-only, supplied by the CLI per run.
	SchemaPath string

	// Workspace is the path to the scratch SQLite workspace holding the
	// overlay tables produced by the geometry engine.
	// Runtime-only, supplied by the CLI per run.
	Workspace string

	// AOIName is the display name of the area of interest, used in the
	// report title. Runtime-only.
	AOIName string

	// AOIField is the attribute that partitions the AOI into named
	// sub-regions, one report sheet each. Empty string means no
	// partitioning. Runtime-only.
	AOIField string

	// LeaveAreas names the leave-area source netted out of the AOI by the
	// geometry engine. Empty string means none. Runtime-only, used for
	// reporting context only.
	LeaveAreas string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Report: ReportConfig{
			OutputDir: ".",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
