package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/blogrefresh/internal/model"
)

// Default configuration values.
const (
	// DefaultAPIBaseURL is where the refresh backend listens during local development.
	DefaultAPIBaseURL = "http://localhost:8000"

	// DefaultTimeout bounds a single backend call. Generation rewrites a whole
	// article, so the limit is generous.
	DefaultTimeout = 120 * time.Second

	// DefaultMinContentLength is the guard threshold in code points.
	DefaultMinContentLength = 100

	// DefaultBatchSize is the number of articles refined concurrently in batch mode.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "blogrefresh"

	// DefaultUserAgent identifies blogrefresh in backend requests.
	DefaultUserAgent = "blogrefresh/1.0 (+https://github.com/nao1215/blogrefresh)"

	// DefaultMaxBodySize limits how much of a backend response is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// EnvAPIURL overrides the backend base URL.
	EnvAPIURL = "BLOGREFRESH_API_URL"
)

// Config holds all configuration options for blogrefresh.
// It is populated from defaults, the YAML file, the environment and CLI flags,
// in that order, and passed down explicitly.
type Config struct {
	// APIBaseURL is the base URL of the refresh backend (e.g. http://localhost:8000).
	APIBaseURL string

	// Timeout is the per-request timeout for backend calls.
	Timeout time.Duration

	// MinContentLength is the number of code points generated content must exceed
	// to be rendered.
	MinContentLength int

	// MaxBodySize caps the backend response body. Zero means the default.
	MaxBodySize int64

	// UserAgent is sent with every backend request.
	UserAgent string

	// BatchSize is the number of concurrent refinements when several URLs are given.
	BatchSize int

	// Headers are extra HTTP headers sent to the backend, such as an API key.
	Headers map[string]string

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string

	// File is the loaded configuration file. Never nil after loading.
	File *File

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches the log output to JSON.
	LogJSON bool

	// Yes runs the refinement without the interactive review screens.
	Yes bool

	// DryRun stops before generation and reports the request that would be sent.
	DryRun bool

	// Reject lists suggestion ids to deselect in non-interactive mode.
	Reject []string

	// RejectKinds lists suggestion kinds (merge, delete) to deselect in
	// non-interactive mode.
	RejectKinds []string

	// RemoveLinks lists link URLs to drop in non-interactive mode.
	RemoveLinks []string

	// Targets are the article URLs to refine.
	Targets []string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIBaseURL:       DefaultAPIBaseURL,
		Timeout:          DefaultTimeout,
		MinContentLength: DefaultMinContentLength,
		MaxBodySize:      DefaultMaxBodySize,
		UserAgent:        DefaultUserAgent,
		BatchSize:        DefaultBatchSize,
		Headers:          map[string]string{},
		File:             newFile(),
	}
}

// XDGConfigDir returns the XDG config directory for blogrefresh.
// On Linux: ~/.config/blogrefresh
// On macOS: ~/Library/Application Support/blogrefresh
// On Windows: %APPDATA%\blogrefresh
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Interactive reports whether the review screens are shown.
// A dry run never blocks on input.
func (c *Config) Interactive() bool {
	return !c.Yes && !c.DryRun
}

// ApplyFile copies the global settings of f over c. Zero values in f are ignored.
// Headers are merged, with f winning on conflicts.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	c.File = f
	if f.APIURL != "" {
		c.APIBaseURL = f.APIURL
	}
	if f.Timeout > 0 {
		c.Timeout = f.Timeout
	}
	if f.MinContentLength > 0 {
		c.MinContentLength = f.MinContentLength
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
}

// ApplyEnv applies environment overrides using lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && strings.TrimSpace(v) != "" {
		c.APIBaseURL = strings.TrimSpace(v)
	}
}

// SuggestionKinds returns RejectKinds parsed into model kinds.
// It fails on the first unknown kind.
func (c *Config) SuggestionKinds() ([]model.SuggestionKind, error) {
	kinds := make([]model.SuggestionKind, 0, len(c.RejectKinds))
	for _, raw := range c.RejectKinds {
		k, ok := model.ParseSuggestionKind(raw)
		if !ok {
			return nil, &KindError{Kind: raw}
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Validate checks if the configuration is valid and returns the first problem found.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidAPIURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MinContentLength < 0 {
		return ErrInvalidMinContentLength
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if _, err := c.SuggestionKinds(); err != nil {
		return err
	}

	for _, target := range c.Targets {
		if strings.TrimSpace(target) == "" {
			return ErrInvalidTarget
		}
	}

	// Non-interactive runs have no Entry screen to ask for a URL.
	if !c.Interactive() && len(c.Targets) == 0 {
		return ErrNoTarget
	}

	return nil
}
