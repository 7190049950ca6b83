package timezone

import (
	"fmt"
	"time"

	"helm/config"
	"helm/shared/constant"
	"helm/shared/failure"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Europe/Athens', 'UTC', 'America/New_York'")
		appLocation = time.UTC
		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone
func Now() time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return time.Now().UTC()
	}
	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, using UTC")
		return t.UTC()
	}
	return t.In(appLocation)
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")
		return time.UTC
	}
	return appLocation
}

// Format formats a time in the application timezone
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}

// LoadZone resolves a named IANA zone, falling back with an error for callers
// that must not silently degrade to UTC.
func LoadZone(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}

	return loc, nil
}

// ToInstant converts a wall-clock moment in the given zone to an absolute
// instant. time.Date resolves the zone's UTC offset at the wall-clock time
// itself, so days adjacent to a DST transition come out correct without any
// manual offset fix-up.
func ToInstant(dateKey string, hour, minute int, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(constant.DateKeyFormat, dateKey, loc)
	if err != nil {
		return time.Time{}, failure.InvalidDateKey
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// ToZonedParts is the inverse of ToInstant: it breaks an absolute instant into
// the wall-clock date key, hour and minute of the given zone. time.Time.In
// never reports hour 24 for midnight, so no normalization is needed.
func ToZonedParts(instant time.Time, loc *time.Location) (dateKey string, hour, minute int) {
	zoned := instant.In(loc)

	return zoned.Format(constant.DateKeyFormat), zoned.Hour(), zoned.Minute()
}

// MonthRange returns the [start, end) instant range covering the whole
// calendar month of monthKey in the given zone. end is the first instant of
// the following month.
func MonthRange(monthKey string, loc *time.Location) (time.Time, time.Time, error) {
	month, err := time.ParseInLocation(constant.MonthKeyFormat, monthKey, loc)
	if err != nil {
		return time.Time{}, time.Time{}, failure.InvalidMonthKey
	}

	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return start, end, nil
}

// ParseDateKey validates and parses a YYYY-MM-DD date key in the given zone.
func ParseDateKey(dateKey string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(constant.DateKeyFormat, dateKey, loc)
	if err != nil {
		return time.Time{}, failure.InvalidDateKey
	}

	return day, nil
}

// DaysInMonth lists every date key of the month of monthKey in the given zone.
func DaysInMonth(monthKey string, loc *time.Location) ([]string, error) {
	start, end, err := MonthRange(monthKey, loc)
	if err != nil {
		return nil, err
	}

	days := []string{}
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day.Format(constant.DateKeyFormat))
	}

	return days, nil
}
