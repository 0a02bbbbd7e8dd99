package config

import (
	"sync"
	"sync/atomic"
	"time"
)

// -----------------------------------------------------------------------------

// FileProvider keeps the last successfully parsed configuration of one file.
// Reload swaps it only after a complete parse; readers never see a partial
// configuration.
type FileProvider struct {
	path     string
	current  atomic.Pointer[Config]
	loadedAt atomic.Int64

	// serializes reloads, reads stay lock-free
	mu sync.Mutex
}

// NewFileProvider loads path once and fails when that first load fails.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{path: path}
	if _, err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// -----------------------------------------------------------------------------

func (p *FileProvider) Path() string {
	return p.path
}

func (p *FileProvider) Current() *Config {
	return p.current.Load()
}

// LoadedAt is the time of the last successful load.
func (p *FileProvider) LoadedAt() time.Time {
	return time.Unix(0, p.loadedAt.Load()).UTC()
}

// -----------------------------------------------------------------------------

func (p *FileProvider) Reload() (*Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cfg, err := NewConfig(p.path)
	if err != nil {
		return nil, err
	}
	p.current.Store(cfg)
	p.loadedAt.Store(time.Now().UnixNano())
	return cfg, nil
}
