package config

import (
	"fmt"
	"io"
)

// WriteSummary prints the Paths, Data scope and Symbol registry domains of c,
// skipping the absent ones.
func WriteSummary(w io.Writer, c *Config) {
	source := c.Source
	if source == "" {
		source = "<string>"
	}
	fmt.Fprintf(w, "Configuration loaded from: %s\n", source)

	if p, ok := c.DataPaths.Get(); ok {
		fmt.Fprintln(w, "Paths:")
		fmt.Fprintf(w, " - derivatives_root: %s\n", p.DerivativesRoot)
		fmt.Fprintf(w, " - spot_root: %s\n", p.SpotRoot)
		fmt.Fprintf(w, " - export_root: %s\n", p.ExportRoot)
		fmt.Fprintf(w, " - log_root: %s\n", p.LogRoot)
	}

	if s, ok := c.DataScope.Get(); ok {
		fmt.Fprintln(w, "Data scope:")
		fmt.Fprintf(w, " - underlyings count: %d\n", len(s.Underlyings))
		fmt.Fprintf(w, " - date_from: %s\n", s.DateFrom)
		fmt.Fprintf(w, " - date_to: %s\n", s.DateTo)
	}

	if r, ok := c.SymbolRegistry.Get(); ok {
		fmt.Fprintf(w, "Symbol registry groups: %d\n", len(r.Mappings))
	}

	fmt.Fprintln(w, "Done.")
}
