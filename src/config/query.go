package config

import (
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the raw decoded document,
// including keys the mapper ignores.
func (c *Config) Query(expr string) (interface{}, error) {
	if c.doc == nil {
		return nil, fmt.Errorf("no source document")
	}
	v, err := jsonpath.Get(expr, c.doc.raw)
	if err != nil {
		return nil, fmt.Errorf("query %q failed: %w", expr, err)
	}
	return v, nil
}
