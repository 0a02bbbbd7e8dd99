package config

import (
	"errors"

	"github.com/arbstatistix/financial-engineering/src/helpers"
	"github.com/arbstatistix/financial-engineering/src/models"
)

// -----------------------------------------------------------------------------

// Config wraps models.MConfig with the document it was parsed from.
// It is never modified after Parse returns.
type Config struct {
	*models.MConfig

	// Source is the file path, or "" for in-memory text.
	Source string
	// Notices lists legacy keys found while mapping.
	Notices []string

	doc *Document
}

// -----------------------------------------------------------------------------

// NewConfig reads, decodes and maps the JSON file at configPath.
func NewConfig(configPath string) (*Config, error) {
	doc, err := ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// NewConfigFromString decodes and maps an in-memory JSON document.
func NewConfigFromString(text string) (*Config, error) {
	doc, err := ReadString(text)
	if err != nil {
		return nil, err
	}
	return Parse(doc)
}

// -----------------------------------------------------------------------------

// Parse maps every recognized domain of doc. Domains are independent, but the
// result is all-or-nothing: the first mapping error discards the whole
// document and no partial configuration is returned.
func Parse(doc *Document) (*Config, error) {
	cfg, notices, err := parse(doc)
	if err != nil {
		var ce *helpers.ConfigError
		if errors.As(err, &ce) && ce.Source == "" {
			ce.Source = doc.source
		}
		return nil, err
	}
	return &Config{MConfig: cfg, Source: doc.source, Notices: notices, doc: doc}, nil
}

func parse(doc *Document) (*models.MConfig, []string, error) {
	m := &mapper{}
	cfg := &models.MConfig{}
	var err error

	if cfg.DataPaths, err = mapDomain(doc, models.KeyDataPaths, m.dataPaths); err != nil {
		return nil, nil, err
	}
	if cfg.DataScope, err = mapDomain(doc, models.KeyDataScope, m.dataScope); err != nil {
		return nil, nil, err
	}
	if cfg.SymbolRegistry, err = mapDomain(doc, models.KeySymbolRegistry, m.symbolRegistry); err != nil {
		return nil, nil, err
	}
	if cfg.SymbolMatching, err = mapDomain(doc, models.KeySymbolMatching, m.symbolMatching); err != nil {
		return nil, nil, err
	}
	if cfg.Preprocessing, err = mapDomain(doc, models.KeyPreprocessing, m.preprocessing); err != nil {
		return nil, nil, err
	}
	if cfg.Acceleration, err = mapDomain(doc, models.KeyAcceleration, m.acceleration); err != nil {
		return nil, nil, err
	}
	if cfg.Logger, err = mapDomain(doc, models.KeyLogger, m.logger); err != nil {
		return nil, nil, err
	}
	if cfg.Export, err = mapDomain(doc, models.KeyExport, m.export); err != nil {
		return nil, nil, err
	}
	if cfg.StreamLogging, err = mapDomain(doc, models.KeyStreamLogging, m.streamLogging); err != nil {
		return nil, nil, err
	}
	if cfg.Execution, err = mapDomain(doc, models.KeyExecution, m.execution); err != nil {
		return nil, nil, err
	}
	if cfg.PostCompute, err = mapDomain(doc, models.KeyPostCompute, m.postCompute); err != nil {
		return nil, nil, err
	}
	if cfg.MarketConstants, err = mapDomain(doc, models.KeyMarketConstants, m.marketConstants); err != nil {
		return nil, nil, err
	}

	return cfg, m.notices, nil
}

// -----------------------------------------------------------------------------

// LoggerSettings returns the Logger domain when present, nil otherwise.
func (c *Config) LoggerSettings() *models.MLogger {
	if l, ok := c.Logger.Get(); ok {
		return &l
	}
	return nil
}

// Flatten renders the present domains as ordered dot-qualified entries.
func (c *Config) Flatten() FlatMap {
	return Flatten(c.MConfig)
}
