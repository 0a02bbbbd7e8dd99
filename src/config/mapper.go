package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/arbstatistix/financial-engineering/src/helpers"
	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/go-viper/mapstructure/v2"
)

// Keys read by hand inside market_constants.
const (
	keyCalendarMonthMap = "calendar_month_map"
	keyNumericMonthMap  = "numeric_month_map"
	keyAlphaMonthMap    = "alpha_month_map"
	keyTradingSchedule  = "trading_schedule"

	keyMinutesPerSession  = "minutes_per_session"
	keyMinutesPerDay      = "minutes_per_day"
	keySessionsPerYear    = "sessions_per_year"
	keyTradingDaysPerYear = "trading_days_per_year"

	keyLegacyMonthlyExpiry = "cache_monthly_expires"
)

// -----------------------------------------------------------------------------

// mapper turns decoded JSON values into domain structs. It collects notices
// about legacy keys instead of logging them.
type mapper struct {
	notices []string
}

// mapDomain looks up key in doc and, when present, maps it with fn.
func mapDomain[T any](doc *Document, key string, fn func(interface{}) (T, error)) (models.Optional[T], error) {
	v, ok := doc.lookup(key)
	if !ok {
		return models.None[T](), nil
	}
	out, err := fn(v)
	if err != nil {
		return models.None[T](), err
	}
	return models.Some(out), nil
}

// decodeDomain overlays the keys of a domain object onto its defaults. A
// domain value that is not an object reads as an empty one.
func decodeDomain[T any](domain string, v interface{}, out T) (T, error) {
	if err := decodeInto(domain, "", objectOf(v), &out); err != nil {
		return out, err
	}
	return out, nil
}

// -----------------------------------------------------------------------------

// decodeInto copies in onto out. Keys match exactly, JSON numbers truncate
// into int fields, null fields keep the existing value and any other type
// mismatch is a mapping error. Lists and string maps may not hold nulls.
func decodeInto(domain, field string, in interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		TagName:    "mapstructure",
		MatchName:  func(mapKey, fieldName string) bool { return mapKey == fieldName },
		DecodeHook: mapstructure.ComposeDecodeHookFunc(rejectNullElements, checkIntRange),
	})
	if err != nil {
		return helpers.NewMappingError(domain, "decoder setup failed", err)
	}
	if err := dec.Decode(in); err != nil {
		msg := "unexpected value type"
		if field != "" {
			msg = fmt.Sprintf("unexpected value type for %s", field)
		}
		return helpers.NewMappingError(domain, msg, err)
	}
	return nil
}

// rejectNullElements fails a JSON array or object bound for a Go slice or map
// when one of its elements is null.
func rejectNullElements(from, to reflect.Type, data interface{}) (interface{}, error) {
	switch to.Kind() {
	case reflect.Slice, reflect.Array:
		if list, ok := data.([]interface{}); ok {
			for i, v := range list {
				if v == nil {
					return nil, fmt.Errorf("element %d is null", i)
				}
			}
		}
	case reflect.Map:
		if obj, ok := data.(map[string]interface{}); ok {
			for k, v := range obj {
				if v == nil {
					return nil, fmt.Errorf("value for %q is null", k)
				}
			}
		}
	}
	return data, nil
}

// checkIntRange fails a JSON number bound for an int when its truncation
// does not fit.
func checkIntRange(from, to reflect.Type, data interface{}) (interface{}, error) {
	f, ok := data.(float64)
	if !ok || to.Kind() != reflect.Int {
		return data, nil
	}
	if _, err := truncInt(f); err != nil {
		return nil, err
	}
	return data, nil
}

var errIntRange = errors.New("number out of integer range")

// truncInt truncates f toward zero.
func truncInt(f float64) (int, error) {
	t := math.Trunc(f)
	if math.IsNaN(t) || t < math.MinInt || t >= -math.MinInt {
		return 0, fmt.Errorf("%w: %v", errIntRange, f)
	}
	return int(t), nil
}

// objectOf returns v as an object, or an empty object for any other JSON type.
func objectOf(v interface{}) map[string]interface{} {
	if obj, ok := v.(map[string]interface{}); ok {
		return obj
	}
	return map[string]interface{}{}
}

// present treats a JSON null like a missing key.
func present(obj map[string]interface{}, key string) bool {
	v, ok := obj[key]
	return ok && v != nil
}

// -----------------------------------------------------------------------------
// Per-domain mapping
// -----------------------------------------------------------------------------

func (m *mapper) dataPaths(v interface{}) (models.MDataPaths, error) {
	out, err := decodeDomain(models.KeyDataPaths, v, models.DefaultDataPaths())
	if err != nil {
		return out, err
	}
	if !present(objectOf(v), "log_root") {
		out.LogRoot = out.ExportRoot
	}
	return out, nil
}

func (m *mapper) dataScope(v interface{}) (models.MDataScope, error) {
	return decodeDomain(models.KeyDataScope, v, models.DefaultDataScope())
}

// symbolRegistry drops entries that are not objects.
func (m *mapper) symbolRegistry(v interface{}) (models.MSymbolRegistry, error) {
	out := models.DefaultSymbolRegistry()
	for asset, entry := range objectOf(v) {
		symbols, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		mapped := map[string]string{}
		if err := decodeInto(models.KeySymbolRegistry, asset, symbols, &mapped); err != nil {
			return out, err
		}
		out.Mappings[asset] = mapped
	}
	return out, nil
}

func (m *mapper) symbolMatching(v interface{}) (models.MSymbolMatching, error) {
	return decodeDomain(models.KeySymbolMatching, v, models.MSymbolMatching{})
}

func (m *mapper) preprocessing(v interface{}) (models.MPreprocessing, error) {
	return decodeDomain(models.KeyPreprocessing, v, models.MPreprocessing{})
}

func (m *mapper) acceleration(v interface{}) (models.MAcceleration, error) {
	return decodeDomain(models.KeyAcceleration, v, models.MAcceleration{})
}

func (m *mapper) logger(v interface{}) (models.MLogger, error) {
	return decodeDomain(models.KeyLogger, v, models.DefaultLogger())
}

func (m *mapper) export(v interface{}) (models.MExport, error) {
	return decodeDomain(models.KeyExport, v, models.DefaultExport())
}

func (m *mapper) streamLogging(v interface{}) (models.MStreamLogging, error) {
	return decodeDomain(models.KeyStreamLogging, v, models.DefaultStreamLogging())
}

func (m *mapper) execution(v interface{}) (models.MExecution, error) {
	out, err := decodeDomain(models.KeyExecution, v, models.DefaultExecution())
	if err != nil {
		return out, err
	}
	if _, ok := objectOf(v)[keyLegacyMonthlyExpiry]; ok {
		m.notice("%s.%s is no longer read; use cache_monthly_expiry_set", models.KeyExecution, keyLegacyMonthlyExpiry)
	}
	return out, nil
}

func (m *mapper) postCompute(v interface{}) (models.MPostCompute, error) {
	return decodeDomain(models.KeyPostCompute, v, models.MPostCompute{})
}

func (m *mapper) marketConstants(v interface{}) (models.MMarketConstants, error) {
	out, err := decodeDomain(models.KeyMarketConstants, v, models.DefaultMarketConstants())
	if err != nil {
		return out, err
	}
	obj := objectOf(v)

	monthMaps := []struct {
		key string
		dst *map[string]string
	}{
		{keyCalendarMonthMap, &out.CalendarMonthMap},
		{keyNumericMonthMap, &out.NumericMonthMap},
		{keyAlphaMonthMap, &out.AlphaMonthMap},
	}
	for _, mm := range monthMaps {
		src, ok := obj[mm.key].(map[string]interface{})
		if !ok {
			continue
		}
		if err := decodeInto(models.KeyMarketConstants, mm.key, src, mm.dst); err != nil {
			return out, err
		}
	}

	if sched, ok := obj[keyTradingSchedule].(map[string]interface{}); ok {
		if out.TradingSchedule, err = m.tradingSchedule(sched); err != nil {
			return out, err
		}
	}
	return out, nil
}

// tradingSchedule resolves the two aliased timing fields:
// minutes_per_session (float, truncated) then minutes_per_day (int) then 0,
// and sessions_per_year then trading_days_per_year then 252.
func (m *mapper) tradingSchedule(obj map[string]interface{}) (models.MTradingSchedule, error) {
	const domain = models.KeyMarketConstants
	out := models.DefaultTradingSchedule()

	sessions := map[string]interface{}{}
	for _, k := range []string{"session_open", "session_close"} {
		if v, ok := obj[k]; ok {
			sessions[k] = v
		}
	}
	if err := decodeInto(domain, keyTradingSchedule, sessions, &out); err != nil {
		return out, err
	}

	switch {
	case present(obj, keyMinutesPerSession):
		var minutes float64
		if err := decodeInto(domain, keyTradingSchedule+"."+keyMinutesPerSession, obj[keyMinutesPerSession], &minutes); err != nil {
			return out, err
		}
		n, err := truncInt(minutes)
		if err != nil {
			return out, helpers.NewMappingError(domain, "unexpected value for "+keyTradingSchedule+"."+keyMinutesPerSession, err)
		}
		out.MinutesPerSession = n
	case present(obj, keyMinutesPerDay):
		if err := decodeInto(domain, keyTradingSchedule+"."+keyMinutesPerDay, obj[keyMinutesPerDay], &out.MinutesPerSession); err != nil {
			return out, err
		}
		m.legacy(keyMinutesPerDay, keyMinutesPerSession)
	}

	switch {
	case present(obj, keySessionsPerYear):
		if err := decodeInto(domain, keyTradingSchedule+"."+keySessionsPerYear, obj[keySessionsPerYear], &out.SessionsPerYear); err != nil {
			return out, err
		}
	case present(obj, keyTradingDaysPerYear):
		if err := decodeInto(domain, keyTradingSchedule+"."+keyTradingDaysPerYear, obj[keyTradingDaysPerYear], &out.SessionsPerYear); err != nil {
			return out, err
		}
		m.legacy(keyTradingDaysPerYear, keySessionsPerYear)
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (m *mapper) legacy(old, preferred string) {
	m.notice("%s.%s.%s is a legacy key; prefer %s", models.KeyMarketConstants, keyTradingSchedule, old, preferred)
}

func (m *mapper) notice(format string, args ...interface{}) {
	m.notices = append(m.notices, fmt.Sprintf(format, args...))
}
