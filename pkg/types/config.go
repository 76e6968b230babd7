package types

import "errors"

// Config holds backend selection and parameters for Pantry.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
	// Locale selects the language for datatype validation messages.
	// Empty means the default locale (en-US).
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultLocale is used when Config.Locale is empty.
const DefaultLocale = "en-US"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// EffectiveLocale returns the configured locale, or DefaultLocale if unset.
func (c Config) EffectiveLocale() string {
	if c.Locale == "" {
		return DefaultLocale
	}
	return c.Locale
}
