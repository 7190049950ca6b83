// Package policy encodes which (duration, start hour) pairs are legal under
// the charter operating-window policy. Everything in here is pure; the rules
// are fixed at process start from configuration.
package policy

import (
	"helm/config"
)

type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftFlexible  Shift = "flexible"
)

type Segment string

const (
	SegmentAM       Segment = "am"
	SegmentPM       Segment = "pm"
	SegmentFlexible Segment = "flexible"
)

// Rules describes one deployment's operating day: trips run inside
// [OperatingStart, OperatingEnd), the morning window ends at MorningEnd, the
// afternoon window starts at AfternoonStart, and the gap between the two is
// the crew-turnaround buffer.
type Rules struct {
	OperatingStart int
	OperatingEnd   int
	MorningEnd     int
	AfternoonStart int
	MinHours       int
	MaxHours       int
}

func FromConfig(cfg *config.Config) Rules {
	return Rules{
		OperatingStart: cfg.Charter.OperatingStartHour,
		OperatingEnd:   cfg.Charter.OperatingEndHour,
		MorningEnd:     cfg.Charter.MorningEndHour,
		AfternoonStart: cfg.Charter.AfternoonStartHour,
		MinHours:       cfg.Charter.MinTripHours,
		MaxHours:       cfg.Charter.MaxTripHours,
	}
}

// IsStartAllowed reports whether a trip of the given whole-hour duration may
// start at startHour. Short trips must not straddle the midday buffer: a
// 3-hour trip either fits entirely in the morning or starts exactly at the
// afternoon window, a 4-hour trip is morning-only, and trips of 5 hours or
// more absorb the buffer into their own span.
func (r Rules) IsStartAllowed(duration, startHour int) bool {
	if duration < r.MinHours || duration > r.MaxHours {
		return false
	}

	if startHour < r.OperatingStart || startHour+duration > r.OperatingEnd {
		return false
	}

	switch {
	case duration == 3:
		return startHour+duration <= r.MorningEnd || startHour == r.AfternoonStart
	case duration == 4:
		return startHour+duration <= r.MorningEnd
	default:
		return true
	}
}

// ShiftFit classifies a resolved trip by where its hours sit relative to the
// buffer.
func (r Rules) ShiftFit(startHour, endHour int) Shift {
	if endHour <= r.MorningEnd {
		return ShiftMorning
	}

	if startHour >= r.AfternoonStart {
		return ShiftAfternoon
	}

	return ShiftFlexible
}

// SegmentFor maps a shift classification onto the coarse am/pm segment the
// legacy admin calendar highlights.
func (r Rules) SegmentFor(shift Shift) Segment {
	switch shift {
	case ShiftMorning:
		return SegmentAM
	case ShiftAfternoon:
		return SegmentPM
	default:
		return SegmentFlexible
	}
}

// Durations lists every legal trip duration in ascending order.
func (r Rules) Durations() []int {
	durations := []int{}
	for d := r.MinHours; d <= r.MaxHours; d++ {
		durations = append(durations, d)
	}

	return durations
}
