package models

// Top-level domain keys, in declaration order.
const (
	KeyDataPaths       = "data_paths"
	KeyDataScope       = "data_scope"
	KeySymbolRegistry  = "symbol_registry"
	KeySymbolMatching  = "symbol_matching"
	KeyPreprocessing   = "preprocessing"
	KeyAcceleration    = "acceleration"
	KeyLogger          = "logger"
	KeyExport          = "export"
	KeyStreamLogging   = "stream_logging"
	KeyExecution       = "execution"
	KeyPostCompute     = "post_compute"
	KeyMarketConstants = "market_constants"
)

// DomainKeys lists every recognized top-level key in declaration order.
var DomainKeys = []string{
	KeyDataPaths,
	KeyDataScope,
	KeySymbolRegistry,
	KeySymbolMatching,
	KeyPreprocessing,
	KeyAcceleration,
	KeyLogger,
	KeyExport,
	KeyStreamLogging,
	KeyExecution,
	KeyPostCompute,
	KeyMarketConstants,
}

// MConfig is the aggregate configuration: one optional value per domain.
type MConfig struct {
	DataPaths       Optional[MDataPaths]       `json:"data_paths"`
	DataScope       Optional[MDataScope]       `json:"data_scope"`
	SymbolRegistry  Optional[MSymbolRegistry]  `json:"symbol_registry"`
	SymbolMatching  Optional[MSymbolMatching]  `json:"symbol_matching"`
	Preprocessing   Optional[MPreprocessing]   `json:"preprocessing"`
	Acceleration    Optional[MAcceleration]    `json:"acceleration"`
	Logger          Optional[MLogger]          `json:"logger"`
	Export          Optional[MExport]          `json:"export"`
	StreamLogging   Optional[MStreamLogging]   `json:"stream_logging"`
	Execution       Optional[MExecution]       `json:"execution"`
	PostCompute     Optional[MPostCompute]     `json:"post_compute"`
	MarketConstants Optional[MMarketConstants] `json:"market_constants"`
}

// MDomain is a read-only view of one domain slot.
type MDomain struct {
	Key     string
	Value   any
	Present bool
}

// -----------------------------------------------------------------------------

// Domains returns every domain slot in declaration order. Value is nil for
// absent domains.
func (c *MConfig) Domains() []MDomain {
	return []MDomain{
		domainOf(KeyDataPaths, c.DataPaths),
		domainOf(KeyDataScope, c.DataScope),
		domainOf(KeySymbolRegistry, c.SymbolRegistry),
		domainOf(KeySymbolMatching, c.SymbolMatching),
		domainOf(KeyPreprocessing, c.Preprocessing),
		domainOf(KeyAcceleration, c.Acceleration),
		domainOf(KeyLogger, c.Logger),
		domainOf(KeyExport, c.Export),
		domainOf(KeyStreamLogging, c.StreamLogging),
		domainOf(KeyExecution, c.Execution),
		domainOf(KeyPostCompute, c.PostCompute),
		domainOf(KeyMarketConstants, c.MarketConstants),
	}
}

// Domain looks up a single slot by its top-level key.
func (c *MConfig) Domain(key string) (MDomain, bool) {
	for _, d := range c.Domains() {
		if d.Key == key {
			return d, true
		}
	}
	return MDomain{}, false
}

func domainOf[T any](key string, o Optional[T]) MDomain {
	v, ok := o.Get()
	if !ok {
		return MDomain{Key: key}
	}
	return MDomain{Key: key, Value: v, Present: true}
}
