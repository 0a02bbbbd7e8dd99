package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/arbstatistix/financial-engineering/src/helpers"
)

// -----------------------------------------------------------------------------

// Document is a decoded JSON configuration text. Only the parser looks inside.
type Document struct {
	source string
	raw    interface{}
	root   map[string]interface{} // nil when the top-level value is not an object
}

// -----------------------------------------------------------------------------

// ReadFile reads and decodes the JSON document at path.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, helpers.NewIOError(path, err)
	}
	return decode(path, data)
}

// ReadString decodes an in-memory JSON document.
func ReadString(text string) (*Document, error) {
	return decode("", []byte(text))
}

// -----------------------------------------------------------------------------

func decode(source string, data []byte) (*Document, error) {
	if !utf8.Valid(data) {
		return nil, helpers.NewSyntaxError(source, errors.New("text is not valid UTF-8"))
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		var se *json.SyntaxError
		if errors.As(err, &se) {
			return nil, &helpers.ConfigError{
				Kind:    helpers.KindSyntax,
				Source:  source,
				Message: fmt.Sprintf("invalid JSON at offset %d", se.Offset),
				Cause:   se,
			}
		}
		return nil, helpers.NewSyntaxError(source, err)
	}

	root, _ := raw.(map[string]interface{})
	return &Document{source: source, raw: raw, root: root}, nil
}

// -----------------------------------------------------------------------------

// Source returns the file path the document came from, or "" for text.
func (d *Document) Source() string {
	return d.source
}

// lookup does an exact, case-sensitive top-level key lookup.
func (d *Document) lookup(key string) (interface{}, bool) {
	if d.root == nil {
		return nil, false
	}
	v, ok := d.root[key]
	return v, ok
}
