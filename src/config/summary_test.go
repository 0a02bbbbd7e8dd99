package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSummary(t *testing.T) {
	cfg := mustParse(t, `{
		"data_paths": {"derivatives_root": "/d", "spot_root": "/s", "export_root": "/out"},
		"data_scope": {"underlyings": ["NIFTY", "BANKNIFTY"], "date_from": "2024-01-01", "date_to": "2024-01-31"},
		"symbol_registry": {"NIFTY": {"spot": "NIFTY 50"}, "skip": 1}
	}`)

	var buf bytes.Buffer
	WriteSummary(&buf, cfg)
	assert.Equal(t, `Configuration loaded from: <string>
Paths:
 - derivatives_root: /d
 - spot_root: /s
 - export_root: /out
 - log_root: /out
Data scope:
 - underlyings count: 2
 - date_from: 2024-01-01
 - date_to: 2024-01-31
Symbol registry groups: 1
Done.
`, buf.String())
}

func TestWriteSummarySkipsAbsentDomains(t *testing.T) {
	cfg := mustParse(t, `{"export": {}}`)

	var buf bytes.Buffer
	WriteSummary(&buf, cfg)
	assert.Equal(t, "Configuration loaded from: <string>\nDone.\n", buf.String())
}
