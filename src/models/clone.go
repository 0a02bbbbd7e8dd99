package models

import (
	"maps"
	"slices"
)

// Domains holding slices or maps hand out copies through Optional.Get so the
// loaded configuration cannot be changed by callers.

func (s MDataScope) Clone() MDataScope {
	s.Underlyings = slices.Clone(s.Underlyings)
	s.InstrumentClasses = slices.Clone(s.InstrumentClasses)
	return s
}

func (r MSymbolRegistry) Clone() MSymbolRegistry {
	if r.Mappings == nil {
		return r
	}
	mappings := make(map[string]map[string]string, len(r.Mappings))
	for asset, symbols := range r.Mappings {
		mappings[asset] = maps.Clone(symbols)
	}
	r.Mappings = mappings
	return r
}

func (s MStreamLogging) Clone() MStreamLogging {
	s.OutputFormats = slices.Clone(s.OutputFormats)
	return s
}

func (m MMarketConstants) Clone() MMarketConstants {
	m.ValidUnderlyings = slices.Clone(m.ValidUnderlyings)
	m.SymbolExceptions = slices.Clone(m.SymbolExceptions)
	m.ExpiryCutoffTime = slices.Clone(m.ExpiryCutoffTime)
	m.CalendarMonthMap = maps.Clone(m.CalendarMonthMap)
	m.NumericMonthMap = maps.Clone(m.NumericMonthMap)
	m.AlphaMonthMap = maps.Clone(m.AlphaMonthMap)
	m.ExchangeHolidays = slices.Clone(m.ExchangeHolidays)
	return m
}
