package config

import (
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/arbstatistix/financial-engineering/src/models"
)

// ListSeparator joins list values in flattened output.
const ListSeparator = ","

// FlatMap is an ordered list of dot-qualified keys and display values.
type FlatMap []models.MFlatEntry

// -----------------------------------------------------------------------------

// Flatten walks the present domains in declaration order, then their fields in
// declaration order. Map fields expand to one key per entry in sorted order;
// an empty map keeps its own key with an empty value. Lists are joined with
// ListSeparator.
func Flatten(cfg *models.MConfig) FlatMap {
	out := FlatMap{}
	for _, d := range cfg.Domains() {
		if !d.Present {
			continue
		}
		out = flattenValue(out, d.Key, reflect.ValueOf(d.Value))
	}
	return out
}

func flattenValue(out FlatMap, prefix string, v reflect.Value) FlatMap {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			out = flattenValue(out, prefix+"."+fieldKey(t.Field(i)), v.Field(i))
		}
		return out

	case reflect.Map:
		if v.Len() == 0 {
			return append(out, models.MFlatEntry{Key: prefix})
		}
		keys := make([]string, 0, v.Len())
		for _, k := range v.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = flattenValue(out, prefix+"."+k, v.MapIndex(reflect.ValueOf(k)))
		}
		return out

	case reflect.Slice:
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = scalar(v.Index(i))
		}
		return append(out, models.MFlatEntry{Key: prefix, Value: strings.Join(parts, ListSeparator)})

	default:
		return append(out, models.MFlatEntry{Key: prefix, Value: scalar(v)})
	}
}

func fieldKey(f reflect.StructField) string {
	if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
		return tag
	}
	return f.Name
}

func scalar(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return ""
	}
}

// -----------------------------------------------------------------------------

// Get returns the value stored under key.
func (f FlatMap) Get(key string) (string, bool) {
	for _, e := range f {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// Keys returns the keys in order.
func (f FlatMap) Keys() []string {
	keys := make([]string, len(f))
	for i, e := range f {
		keys[i] = e.Key
	}
	return keys
}

// ToMap drops the ordering.
func (f FlatMap) ToMap() map[string]string {
	m := make(map[string]string, len(f))
	for _, e := range f {
		m[e.Key] = e.Value
	}
	return m
}

// WithPrefix keeps the entries of one domain (or any dotted prefix).
func (f FlatMap) WithPrefix(prefix string) FlatMap {
	out := FlatMap{}
	for _, e := range f {
		if e.Key == prefix || strings.HasPrefix(e.Key, prefix+".") {
			out = append(out, e)
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Diff
// -----------------------------------------------------------------------------

type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeUpdated ChangeKind = "changed"
)

// FlatChange is one difference between two flattenings.
type FlatChange struct {
	Key  string     `json:"key"`
	Kind ChangeKind `json:"kind"`
	Old  string     `json:"old,omitempty"`
	New  string     `json:"new,omitempty"`
}

// Diff lists additions and changes in the order of next, followed by
// removals in the order of prev.
func Diff(prev, next FlatMap) []FlatChange {
	before := prev.ToMap()
	after := next.ToMap()

	var changes []FlatChange
	for _, e := range next {
		old, ok := before[e.Key]
		switch {
		case !ok:
			changes = append(changes, FlatChange{Key: e.Key, Kind: ChangeAdded, New: e.Value})
		case old != e.Value:
			changes = append(changes, FlatChange{Key: e.Key, Kind: ChangeUpdated, Old: old, New: e.Value})
		}
	}
	for _, e := range prev {
		if _, ok := after[e.Key]; !ok {
			changes = append(changes, FlatChange{Key: e.Key, Kind: ChangeRemoved, Old: e.Value})
		}
	}
	return changes
}
