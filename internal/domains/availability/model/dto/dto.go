package dto

import (
	"helm/internal/domains/availability/policy"
	yachtModel "helm/internal/domains/yacht/model"
)

// DayAvailability is computed per request and never persisted.
type DayAvailability struct {
	Open                  bool          `json:"open"`
	OpenHours             []int         `json:"open_hours"`
	ValidStartsByDuration map[int][]int `json:"valid_starts_by_duration"`
	AM                    bool          `json:"am"`
	PM                    bool          `json:"pm"`
	FullOpen              bool          `json:"full_open"`
}

type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type Constraints struct {
	MinHours        int    `json:"min_hours"`
	MaxHours        int    `json:"max_hours"`
	OperatingWindow Window `json:"operating_window"`
	MorningWindow   Window `json:"morning_window"`
	BufferWindow    Window `json:"buffer_window"`
	AfternoonWindow Window `json:"afternoon_window"`
}

func ConstraintsFromRules(rules policy.Rules) Constraints {
	return Constraints{
		MinHours:        rules.MinHours,
		MaxHours:        rules.MaxHours,
		OperatingWindow: Window{Start: rules.OperatingStart, End: rules.OperatingEnd},
		MorningWindow:   Window{Start: rules.OperatingStart, End: rules.MorningEnd},
		BufferWindow:    Window{Start: rules.MorningEnd, End: rules.AfternoonStart},
		AfternoonWindow: Window{Start: rules.AfternoonStart, End: rules.OperatingEnd},
	}
}

type MonthAvailabilityResponse struct {
	Yacht       string                     `json:"yacht"`
	Month       string                     `json:"month"`
	Timezone    string                     `json:"timezone"`
	Constraints Constraints                `json:"constraints"`
	Days        map[string]DayAvailability `json:"days"`
}

func (r *MonthAvailabilityResponse) FromYacht(yacht yachtModel.Yacht, monthKey string, rules policy.Rules) {
	r.Yacht = yacht.Slug
	r.Month = monthKey
	r.Timezone = yacht.Timezone
	r.Constraints = ConstraintsFromRules(rules)
	r.Days = make(map[string]DayAvailability)
}
