package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arbstatistix/financial-engineering/src/models"

	"github.com/scmhub/calendar"
)

// Layouts accepted in exchange_holidays.
var holidayLayouts = []string{"2006-01-02", "02-Jan-2006", "02-01-2006"}

// TradingCalendar answers trading-day questions for one exchange, layered
// with the holidays and session settings of Market Constants.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location

	holidays map[string]struct{}
	cutoff   []int
	schedule models.MTradingSchedule
}

// -----------------------------------------------------------------------------

func NewTradingCalendar(mic string, mc models.MMarketConstants) (*TradingCalendar, error) {
	mic = strings.ToLower(strings.TrimSpace(mic))

	tc := &TradingCalendar{
		MIC:      mic,
		holidays: make(map[string]struct{}, len(mc.ExchangeHolidays)),
		cutoff:   mc.ExpiryCutoffTime,
		schedule: mc.TradingSchedule,
	}

	for _, h := range mc.ExchangeHolidays {
		day, err := ParseHoliday(h)
		if err != nil {
			return nil, err
		}
		tc.holidays[day.Format("2006-01-02")] = struct{}{}
	}

	// scmhub/calendar.GetCalendar returns a calendar by MIC
	if mic != "" {
		tc.Calendar = calendar.GetCalendar(mic)
	}
	if tc.Calendar == nil {
		// Plain Mon-Fri, holidays still apply
		tc.Fallback = true
		tc.Timezone = time.UTC
		return tc, nil
	}

	tc.Timezone = tc.Calendar.Loc
	if tc.Timezone == nil {
		tc.Timezone = time.UTC
	}
	return tc, nil
}

// -----------------------------------------------------------------------------

// ParseHoliday reads a date in any of the supported holiday layouts.
func ParseHoliday(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	for _, layout := range holidayLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized holiday date %q", text)
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsHoliday(date time.Time) bool {
	date = date.In(tc.Timezone)
	_, ok := tc.holidays[date.Format("2006-01-02")]
	return ok
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	date = date.In(tc.Timezone)

	if tc.IsHoliday(date) {
		return false
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	// Library handles its own holiday list
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// IsOpenOnMinute checks if the market is open at a specific minute.
func (tc *TradingCalendar) IsOpenOnMinute(t time.Time) bool {
	t = t.In(tc.Timezone)

	if !tc.IsTradingDay(t) {
		return false
	}

	open, okOpen := parseClock(tc.schedule.SessionOpen)
	closing, okClose := parseClock(tc.schedule.SessionClose)
	if okOpen && okClose {
		minute := t.Hour()*60 + t.Minute()
		return minute >= open && minute < closing
	}

	if tc.Fallback {
		return false
	}
	return tc.Calendar.IsOpen(t)
}

// -----------------------------------------------------------------------------

// NextTradingDay returns the first trading day strictly after date, at
// midnight exchange time.
func (tc *TradingCalendar) NextTradingDay(date time.Time) (time.Time, error) {
	date = date.In(tc.Timezone)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, tc.Timezone)

	for i := 0; i < 366; i++ {
		day = day.AddDate(0, 0, 1)
		if tc.IsTradingDay(day) {
			return day, nil
		}
	}
	return time.Time{}, fmt.Errorf("no trading day within a year after %s", date.Format("2006-01-02"))
}

// -----------------------------------------------------------------------------

// ExpiryCutoff places expiry_cutoff_time ([hour, minute, second], trailing
// parts optional) on the given day. ok is false when no cutoff is configured.
func (tc *TradingCalendar) ExpiryCutoff(date time.Time) (cutoff time.Time, ok bool) {
	if len(tc.cutoff) == 0 {
		return time.Time{}, false
	}

	parts := [3]int{}
	copy(parts[:], tc.cutoff)

	date = date.In(tc.Timezone)
	return time.Date(date.Year(), date.Month(), date.Day(), parts[0], parts[1], parts[2], 0, tc.Timezone), true
}

// -----------------------------------------------------------------------------

// SessionMinutes prefers minutes_per_session and otherwise derives the
// length from session_open and session_close.
func (tc *TradingCalendar) SessionMinutes() int {
	if tc.schedule.MinutesPerSession > 0 {
		return tc.schedule.MinutesPerSession
	}

	open, okOpen := parseClock(tc.schedule.SessionOpen)
	closing, okClose := parseClock(tc.schedule.SessionClose)
	if !okOpen || !okClose || closing <= open {
		return 0
	}
	return closing - open
}

// SessionsPerYear is the annualization factor of the schedule.
func (tc *TradingCalendar) SessionsPerYear() int {
	return tc.schedule.SessionsPerYear
}

// -----------------------------------------------------------------------------

// parseClock reads "HH:MM" or "HH:MM:SS" into minutes after midnight.
func parseClock(text string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}
