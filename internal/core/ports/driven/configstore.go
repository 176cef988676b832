package driven

import "github.com/custodia-labs/quarry/internal/core/domain"

// ConfigStore provides access to application settings.
// Implementations handle persistence (e.g., TOML files) and defaults.
type ConfigStore interface {
	// Load reads settings from storage. A missing file yields defaults.
	Load() (domain.Settings, error)

	// Save persists settings to storage.
	Save(settings domain.Settings) error

	// Path returns the configuration file path.
	Path() string
}
