package server

import (
	"strings"
	"time"

	"github.com/arbstatistix/financial-engineering/src/config"
	"github.com/arbstatistix/financial-engineering/src/models"
)

// -----------------------------------------------------------------------------

// stateOf snapshots the provider's current configuration as a push message.
func (s *ConfigServer) stateOf(kind string) *models.MConfigState {
	state := &models.MConfigState{
		Type:     kind,
		LoadedAt: time.Now().UTC(),
		Entries:  []models.MFlatEntry{},
	}

	cfg := s.Provider.Current()
	if cfg == nil {
		return state
	}
	state.Source = sourceName(cfg.Source)
	state.Entries = cfg.Flatten()
	return state
}

// -----------------------------------------------------------------------------

func presentDomains(cfg *models.MConfig) map[string]interface{} {
	out := make(map[string]interface{})
	for _, d := range cfg.Domains() {
		if d.Present {
			out[d.Key] = d.Value
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// filterEntries keeps entries under any of the given domains; no domains
// keeps everything.
func filterEntries(entries config.FlatMap, domains []string) []models.MFlatEntry {
	if len(domains) == 0 {
		return entries
	}

	out := []models.MFlatEntry{}
	for _, e := range entries {
		for _, d := range domains {
			if strings.HasPrefix(e.Key, d+".") || e.Key == d {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// -----------------------------------------------------------------------------

func sourceName(source string) string {
	if source == "" {
		return "<string>"
	}
	return source
}

func notices(n []string) []string {
	if n == nil {
		return []string{}
	}
	return n
}
