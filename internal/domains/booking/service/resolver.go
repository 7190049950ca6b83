package service

import (
	"fmt"

	availabilityDto "helm/internal/domains/availability/model/dto"
	"helm/internal/domains/availability/policy"
	"helm/shared/failure"
)

const (
	legacyHalfMorning   = "am"
	legacyHalfAfternoon = "pm"
)

// StartSelection is a booking start that passed policy evaluation.
type StartSelection struct {
	StartHour int
	EndHour   int
	Shift     policy.Shift
	Segment   policy.Segment
}

// ResolveStartHour turns a client's duration plus either an explicit start
// hour or a legacy half-day selector into a policy-checked start selection.
// The legacy selectors predate hourly picking and map onto the first hour of
// their half of the day.
func ResolveStartHour(rules policy.Rules, duration int, startHour *int, half string) (StartSelection, error) {
	if duration < rules.MinHours || duration > rules.MaxHours {
		return StartSelection{}, failure.BadRequestFromString( // nolint:wrapcheck
			fmt.Sprintf("requested hours must be between %d and %d", rules.MinHours, rules.MaxHours))
	}

	var resolved int

	switch {
	case startHour != nil:
		resolved = *startHour
	case half == legacyHalfMorning:
		resolved = rules.OperatingStart
	case half == legacyHalfAfternoon:
		resolved = rules.AfternoonStart
	default:
		return StartSelection{}, failure.BadRequestFromString("either start_hour or half must be provided") // nolint:wrapcheck
	}

	if !rules.IsStartAllowed(duration, resolved) {
		return StartSelection{}, failure.BadRequestFromString( // nolint:wrapcheck
			fmt.Sprintf("a %d-hour trip cannot start at %02d:00", duration, resolved))
	}

	end := resolved + duration
	shift := rules.ShiftFit(resolved, end)

	return StartSelection{
		StartHour: resolved,
		EndHour:   end,
		Shift:     shift,
		Segment:   rules.SegmentFor(shift),
	}, nil
}

// IsStartSelectionAvailable is the final server-side gate before the
// provider write. It only trusts a day record rebuilt at request time.
func IsStartSelectionAvailable(day availabilityDto.DayAvailability, duration, startHour int) bool {
	for _, h := range day.ValidStartsByDuration[duration] {
		if h == startHour {
			return true
		}
	}

	return false
}
