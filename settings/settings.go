package settings

import (
	"context"
	"fmt"
)

/* Settings is the delivery configuration read fresh at trigger time.
 * It is a value object: the trigger copies what it needs into the job and
 * the worker never reaches back to the source from the background context
 */
type Settings struct {
	Enabled bool
	URL     string
	secret  string
}

// New creates a Settings value
func New(enabled bool, url, secret string) Settings {
	return Settings{
		Enabled: enabled,
		URL:     url,
		secret:  secret,
	}
}

// Secret returns the shared webhook secret in plaintext
// This is the only accessor; the field itself is unexported
func (s Settings) Secret() string {
	return s.secret
}

// Validate checks that an enabled configuration is deliverable
func (s Settings) Validate() error {
	if !s.Enabled {
		return nil
	}
	if s.URL == "" {
		return fmt.Errorf("webhook URL is required when webhooks are enabled")
	}
	return nil
}

// Source provides the current delivery settings
// Implementations must be safe for concurrent readers
type Source interface {
	Get(ctx context.Context) (Settings, error)
}

/* StaticSource serves a fixed Settings value, typically loaded from the
 * process configuration at startup
 */
type StaticSource struct {
	settings Settings
}

// NewStaticSource creates a source that always returns the given settings
func NewStaticSource(s Settings) *StaticSource {
	return &StaticSource{settings: s}
}

// Get returns the configured settings
func (s *StaticSource) Get(_ context.Context) (Settings, error) {
	return s.settings, nil
}
