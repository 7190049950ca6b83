package model

import (
	"time"

	"helm/shared/model"
)

const (
	TableName  = "yachts"
	EntityName = "yacht"

	FieldID          = "id"
	FieldSlug        = "slug"
	FieldName        = "name"
	FieldEventTypeID = "event_type_id"
	FieldTimezone    = "timezone"
	FieldLiveFrom    = "live_from_date"
	FieldCapacity    = "capacity"
	FieldDescription = "description"
	FieldActive      = "active"
)

type Yacht struct {
	ID          string     `db:"id"`
	Slug        string     `db:"slug"`
	Name        string     `db:"name"`
	EventTypeID int        `db:"event_type_id"`
	Timezone    string     `db:"timezone"`
	LiveFrom    *time.Time `db:"live_from_date"`
	Capacity    int        `db:"capacity"`
	Description string     `db:"description"`
	Active      bool       `db:"active"`
	model.Metadata
}
