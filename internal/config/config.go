package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The tool names match the executables the original workflow shells out
// to; each can be overridden via the configuration file to point at a
// different binary or an absolute path.
const (
	// DefaultAmassBin is the subdomain enumeration tool.
	DefaultAmassBin = "amass"

	// DefaultDnsreconBin gathers DNS records for the target.
	DefaultDnsreconBin = "dnsrecon"

	// DefaultSubfinderBin is the secondary subdomain discovery tool.
	DefaultSubfinderBin = "subfinder"

	// DefaultHttpxBin probes which discovered hosts are alive.
	DefaultHttpxBin = "httpx"

	// DefaultGowitnessBin captures screenshots of live hosts.
	DefaultGowitnessBin = "gowitness"

	// DefaultNmapBin performs the port scan of live hosts.
	DefaultNmapBin = "nmap"

	// DefaultWkhtmltopdfBin converts the HTML report to PDF.
	DefaultWkhtmltopdfBin = "wkhtmltopdf"

	// DefaultToolTimeout is zero: an external tool may run as long as
	// it needs, and a hung tool blocks its pipeline. Users who want a
	// bound set --timeout.
	DefaultToolTimeout = 0 * time.Second

	// DefaultParallel is the number of domains scanned concurrently.
	// One preserves the strictly sequential baseline behavior.
	DefaultParallel = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "subtrace"
)

// Tools holds the executable names or paths of the external tools.
// Empty fields fall back to the defaults above.
type Tools struct {
	Amass       string `yaml:"amass,omitempty"`
	Dnsrecon    string `yaml:"dnsrecon,omitempty"`
	Subfinder   string `yaml:"subfinder,omitempty"`
	Httpx       string `yaml:"httpx,omitempty"`
	Gowitness   string `yaml:"gowitness,omitempty"`
	Nmap        string `yaml:"nmap,omitempty"`
	Wkhtmltopdf string `yaml:"wkhtmltopdf,omitempty"`
}

// WithDefaults returns a copy of t with empty fields replaced by the
// default executable names.
func (t Tools) WithDefaults() Tools {
	def := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return Tools{
		Amass:       def(t.Amass, DefaultAmassBin),
		Dnsrecon:    def(t.Dnsrecon, DefaultDnsreconBin),
		Subfinder:   def(t.Subfinder, DefaultSubfinderBin),
		Httpx:       def(t.Httpx, DefaultHttpxBin),
		Gowitness:   def(t.Gowitness, DefaultGowitnessBin),
		Nmap:        def(t.Nmap, DefaultNmapBin),
		Wkhtmltopdf: def(t.Wkhtmltopdf, DefaultWkhtmltopdfBin),
	}
}

// Config holds all configuration options for SubTrace.
// This struct is populated from CLI flags and the optional .subtrace
// file, then passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for the run options. The number of options is manageable, and nesting
// would add complexity without significant benefit. Tool paths are the
// exception because they map directly onto a YAML section.
type Config struct {
	// Targets is the list of domains to scan. Must contain at least one.
	Targets []string

	// Tools holds the external executable names or paths.
	Tools Tools

	// ToolTimeout bounds each external tool invocation.
	// Zero means unbounded, matching the sequential baseline.
	ToolTimeout time.Duration

	// Parallel is the number of domains scanned concurrently.
	// Each domain's pipeline is still strictly sequential, so the
	// per-run artifacts and report section ordering never change.
	Parallel int

	// Whois enables the optional WHOIS section in the report.
	Whois bool

	// MarkdownReport additionally writes a Markdown rendition of the
	// report next to the HTML and PDF artifacts.
	MarkdownReport bool

	// Verbose enables detailed log output using slog.LevelDebug.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .subtrace in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// HistoryDir is the directory holding the run-history database.
	// When empty, runs are not recorded.
	HistoryDir string
}

// NewConfig creates a Config with default values.
// Users override specific values from flags after creation.
func NewConfig() *Config {
	return &Config{
		Tools:       Tools{}.WithDefaults(),
		ToolTimeout: DefaultToolTimeout,
		Parallel:    DefaultParallel,
		HistoryDir:  XDGDataDir(),
	}
}

// Validate checks the configuration for consistency.
// It returns a sentinel error describing the first problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	if c.ToolTimeout < 0 {
		return ErrInvalidTimeout
	}
	if c.Parallel < 1 {
		return ErrInvalidParallel
	}
	return nil
}

// ApplyFile merges settings from a loaded configuration file.
// File values override the built-in defaults: non-empty tool paths
// replace the default executable names, and the file timeout applies
// unless --timeout was given on the command line.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.Tools = f.Tools.WithDefaults()

	if c.ToolTimeout == DefaultToolTimeout && f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil && d > 0 {
			c.ToolTimeout = d
		}
	}
}

// XDGDataDir returns the XDG data directory for SubTrace.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/subtrace
// On macOS: ~/Library/Application Support/subtrace
// On Windows: %LOCALAPPDATA%\subtrace
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
