package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptOutputDir sets the directory where report workbooks are written.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Report.OutputDir = s
		}
	}
}

// OptCatalog sets the path to the fallback dataset catalog (catalog.yaml).
func OptCatalog(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Catalog", s) {
			c.Report.Catalog = s
		}
	}
}

// OptFileNumber sets the file name or number used in output naming.
// Spaces are replaced with underscores so the value is path-safe.
// Runtime-only field - not in ToOptions().
func OptFileNumber(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	return func(c *Config) {
		if isValidString("File Number", s) {
			c.Report.FileNumber = s
		}
	}
}

// OptSchemaPath sets the path to the Excel schema workbook.
// Runtime-only field - not in ToOptions().
func OptSchemaPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Schema Path", s) {
			c.Report.SchemaPath = s
		}
	}
}

// OptWorkspace sets the path to the scratch SQLite overlay workspace.
// Runtime-only field - not in ToOptions().
func OptWorkspace(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Workspace", s) {
			c.Report.Workspace = s
		}
	}
}

// OptAOIName sets the display name of the area of interest.
// Runtime-only field - not in ToOptions().
func OptAOIName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("AOI Name", s) {
			c.Report.AOIName = s
		}
	}
}

// OptAOIField sets the AOI partition field. The sentinel '#' and the
// empty string both mean "no partitioning".
// Runtime-only field - not in ToOptions().
func OptAOIField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s == "#" {
			s = ""
		}
		c.Report.AOIField = s
	}
}

// OptLeaveAreas sets the leave-area source name. The sentinel '#' and the
// empty string both mean "none".
// Runtime-only field - not in ToOptions().
func OptLeaveAreas(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if s == "#" {
			s = ""
		}
		c.Report.LeaveAreas = s
	}
}

// OptHomeDir sets the home directory used for config, cache and logs.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}
