package dto

import (
	"time"

	"helm/internal/domains/booking/model"
	"helm/shared"
	"helm/shared/constant"
	gDto "helm/shared/dto"
	gModel "helm/shared/model"
	"helm/shared/timezone"

	"github.com/google/uuid"
)

// CreateBookingRequest is the public booking-wizard submission. It is never
// persisted as-is; rejection simply discards it. Either StartHour or the
// legacy Half selector must be set.
type CreateBookingRequest struct {
	Slug           string `json:"slug"            validate:"required,max=100"`
	Date           string `json:"date"            validate:"required,datetime=2006-01-02"`
	RequestedHours int    `json:"requested_hours" validate:"required,gt=0"`
	StartHour      *int   `json:"start_hour"      validate:"omitempty,gte=0,lte=23"`
	Half           string `json:"half"            validate:"omitempty,oneof=am pm"`
	GuestName      string `json:"guest_name"      validate:"required,max=100"`
	GuestEmail     string `json:"guest_email"     validate:"required,email,max=100"`
	GuestPhone     string `json:"guest_phone"     validate:"omitempty,max=20"`
	Notes          string `json:"notes"           validate:"omitempty,max=2000"`
	BotToken       string `json:"bot_token"       validate:"omitempty"`
}

type CreateBookingResponse struct {
	BookingUID string `json:"booking_uid"`
	Status     string `json:"status"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// ToReservationDetail builds the local shadow row for a provider booking
// that has just been accepted.
func (c *CreateBookingRequest) ToReservationDetail(providerUID, yachtID, status, segment string, startHour, endHour int) (model.ReservationDetail, error) {
	tripDate, err := time.Parse(constant.DateKeyFormat, c.Date)
	if err != nil {
		return model.ReservationDetail{}, err
	}

	return model.ReservationDetail{
		ID:            uuid.NewString(),
		ProviderUID:   providerUID,
		YachtID:       yachtID,
		TripDate:      tripDate,
		StartHour:     startHour,
		EndHour:       endHour,
		DurationHours: c.RequestedHours,
		Segment:       segment,
		GuestName:     c.GuestName,
		GuestEmail:    c.GuestEmail,
		GuestPhone:    c.GuestPhone,
		Notes:         c.Notes,
		Status:        status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}, nil
}

type ReservationResponse struct {
	ID            string `json:"id"`
	ProviderUID   string `json:"provider_uid"`
	YachtID       string `json:"yacht_id"`
	TripDate      string `json:"trip_date"`
	StartHour     int    `json:"start_hour"`
	EndHour       int    `json:"end_hour"`
	DurationHours int    `json:"duration_hours"`
	Segment       string `json:"segment"`
	GuestName     string `json:"guest_name"`
	GuestEmail    string `json:"guest_email"`
	GuestPhone    string `json:"guest_phone"`
	Notes         string `json:"notes"`
	Status        string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.ReservationDetail) {
	r.ID = model.ID
	r.ProviderUID = model.ProviderUID
	r.YachtID = model.YachtID
	r.TripDate = model.TripDate.Format(constant.DateKeyFormat)
	r.StartHour = model.StartHour
	r.EndHour = model.EndHour
	r.DurationHours = model.DurationHours
	r.Segment = model.Segment
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.Notes = model.Notes
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.ReservationDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
