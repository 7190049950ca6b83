package scheduler

import (
	"encoding/json"
	"time"
)

const (
	BookingStatusAccepted    = "accepted"
	BookingStatusPending     = "pending"
	BookingStatusUnconfirmed = "unconfirmed"
	BookingStatusCancelled   = "cancelled"
)

// SlotMap maps a YYYY-MM-DD date key to the start instants the provider
// reports as bookable that day, already normalized from both historical
// payload shapes.
type SlotMap map[string][]time.Time

// Booking is the provider's view of a reservation; the provider is
// authoritative for whether a slot is taken.
type Booking struct {
	UID         string    `json:"uid"`
	Status      string    `json:"status"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	EventTypeID int       `json:"eventTypeId"`
}

// Blocking reports whether this booking occupies its hours. Cancelled
// bookings do not block.
func (b Booking) Blocking() bool {
	switch b.Status {
	case BookingStatusAccepted, BookingStatusPending, BookingStatusUnconfirmed:
		return true
	default:
		return false
	}
}

type Attendee struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	TimeZone    string `json:"timeZone"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type CreateBookingRequest struct {
	Start           time.Time         `json:"start"`
	EventTypeID     int               `json:"eventTypeId"`
	LengthInMinutes int               `json:"lengthInMinutes"`
	Attendee        Attendee          `json:"attendee"`
	Metadata        map[string]string `json:"metadata,omitempty"`
}

type cancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// slotsResponse carries the raw slots payload. Each day's entries have been
// either `{"start": iso}` objects or bare iso strings depending on the
// provider API generation, so entries decode lazily.
type slotsResponse struct {
	Data map[string][]json.RawMessage `json:"data"`
}

type slotEntry struct {
	Start string `json:"start"`
}

// decodeSlotEntry accepts both historical slot shapes and returns the start
// instant.
func decodeSlotEntry(raw json.RawMessage) (time.Time, error) {
	var entry slotEntry
	if err := json.Unmarshal(raw, &entry); err == nil && entry.Start != "" {
		return time.Parse(time.RFC3339, entry.Start)
	}

	var iso string
	if err := json.Unmarshal(raw, &iso); err != nil {
		return time.Time{}, err
	}

	return time.Parse(time.RFC3339, iso)
}

// bookingsResponse tolerates both listing shapes: `data` as a bare array and
// `data` as an object wrapping a `bookings` array.
type bookingsResponse struct {
	Data json.RawMessage `json:"data"`
}

type bookingsEnvelope struct {
	Bookings []Booking `json:"bookings"`
}

func (r bookingsResponse) bookings() ([]Booking, error) {
	if len(r.Data) == 0 {
		return nil, nil
	}

	var list []Booking
	if err := json.Unmarshal(r.Data, &list); err == nil {
		return list, nil
	}

	var envelope bookingsEnvelope
	if err := json.Unmarshal(r.Data, &envelope); err != nil {
		return nil, err
	}

	return envelope.Bookings, nil
}

type bookingResponse struct {
	Data Booking `json:"data"`
}
