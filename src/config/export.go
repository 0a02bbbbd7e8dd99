package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Supported flat export formats.
const (
	FormatJSON = "json" // one ordered JSON object
	FormatEnv  = "env"  // key=value lines
	FormatYAML = "yaml" // ordered YAML mapping
	FormatTOML = "toml" // flat table of quoted keys
)

// -----------------------------------------------------------------------------

// ExportFlat writes flat to w in the given format.
func ExportFlat(w io.Writer, flat FlatMap, format string) error {
	switch format {
	case FormatJSON:
		return exportJSON(w, flat)
	case FormatEnv, "":
		return exportEnv(w, flat)
	case FormatYAML:
		return exportYAML(w, flat)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(flat.ToMap())
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// -----------------------------------------------------------------------------

// Save persists the flattened configuration to configPath.
func (c *Config) Save(configPath, format string) error {
	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create export file '%s': %w", configPath, err)
	}
	defer f.Close()

	if err := ExportFlat(f, c.Flatten(), format); err != nil {
		return fmt.Errorf("failed to export config as %s: %w", format, err)
	}
	return f.Close()
}

// -----------------------------------------------------------------------------

func exportEnv(w io.Writer, flat FlatMap) error {
	bw := bufio.NewWriter(w)
	for _, e := range flat {
		if _, err := fmt.Fprintf(bw, "%s=%s\n", e.Key, e.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// exportJSON keeps key order, which encoding a map would lose.
func exportJSON(w io.Writer, flat FlatMap) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("{")
	for i, e := range flat {
		k, err := json.Marshal(e.Key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return err
		}
		if i > 0 {
			bw.WriteString(",")
		}
		fmt.Fprintf(bw, "\n  %s: %s", k, v)
	}
	if len(flat) > 0 {
		bw.WriteString("\n")
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func exportYAML(w io.Writer, flat FlatMap) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range flat {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	return enc.Close()
}
