package model

import (
	"time"

	"helm/shared/model"
)

const (
	TableName  = "reservation_details"
	EntityName = "reservation detail"

	FieldID          = "id"
	FieldProviderUID = "provider_uid"
	FieldYachtID     = "yacht_id"
	FieldTripDate    = "trip_date"
	FieldStartHour   = "start_hour"
	FieldEndHour     = "end_hour"
	FieldSegment     = "segment"
	FieldGuestName   = "guest_name"
	FieldGuestEmail  = "guest_email"
	FieldStatus      = "status"
)

// ReservationDetail is a denormalized shadow of a provider booking, keyed by
// the provider's booking uid. It exists for guest-profile enrichment and
// change auditing and never drives availability computation; the provider
// booking stays authoritative.
type ReservationDetail struct {
	ID            string    `db:"id"`
	ProviderUID   string    `db:"provider_uid"`
	YachtID       string    `db:"yacht_id"`
	TripDate      time.Time `db:"trip_date"`
	StartHour     int       `db:"start_hour"`
	EndHour       int       `db:"end_hour"`
	DurationHours int       `db:"duration_hours"`
	Segment       string    `db:"segment"`
	GuestName     string    `db:"guest_name"`
	GuestEmail    string    `db:"guest_email"`
	GuestPhone    string    `db:"guest_phone"`
	Notes         string    `db:"notes"`
	Status        string    `db:"status"`
	model.Metadata
}
