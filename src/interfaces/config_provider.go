package interfaces

import "github.com/arbstatistix/financial-engineering/src/config"

// -----------------------------------------------------------------------------
// IConfigProvider gives the diagnostics servers access to the active
// configuration without owning how it is loaded.
// -----------------------------------------------------------------------------

type IConfigProvider interface {
	// Current returns the active configuration, or nil before the first load.
	Current() *config.Config

	// Reload re-reads the source. On failure the active configuration is kept.
	Reload() (*config.Config, error)
}
