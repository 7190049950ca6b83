package dto

import (
	"time"

	"helm/internal/domains/yacht/model"
	"helm/shared"
	gDto "helm/shared/dto"
	gModel "helm/shared/model"
	"helm/shared/timezone"

	"github.com/google/uuid"
)

type CreateYachtRequest struct {
	Slug        string `json:"slug"           validate:"required,max=100"`
	Name        string `json:"name"           validate:"required,max=200"`
	EventTypeID int    `json:"event_type_id"  validate:"required,gt=0"`
	Timezone    string `json:"timezone"       validate:"required,max=64"`
	LiveFrom    string `json:"live_from_date" validate:"omitempty,datetime=2006-01-02"`
	Capacity    int    `json:"capacity"       validate:"omitempty,gte=1,lte=100"`
	Description string `json:"description"    validate:"omitempty"`
}

func (c *CreateYachtRequest) ToModel(user string) (model.Yacht, error) {
	var liveFrom *time.Time

	if c.LiveFrom != "" {
		parsed, err := time.Parse("2006-01-02", c.LiveFrom)
		if err != nil {
			return model.Yacht{}, err
		}

		liveFrom = &parsed
	}

	return model.Yacht{
		ID:          uuid.NewString(),
		Slug:        c.Slug,
		Name:        c.Name,
		EventTypeID: c.EventTypeID,
		Timezone:    c.Timezone,
		LiveFrom:    liveFrom,
		Capacity:    c.Capacity,
		Description: c.Description,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateYachtRequest struct {
	Name        string `db:"name"           json:"name"           validate:"omitempty,max=200"`
	EventTypeID int    `db:"event_type_id"  json:"event_type_id"  validate:"omitempty,gt=0"`
	Timezone    string `db:"timezone"       json:"timezone"       validate:"omitempty,max=64"`
	LiveFrom    string `db:"live_from_date" json:"live_from_date" validate:"omitempty,datetime=2006-01-02"`
	Capacity    int    `db:"capacity"       json:"capacity"       validate:"omitempty,gte=1,lte=100"`
	Description string `db:"description"    json:"description"    validate:"omitempty"`
}

type YachtResponse struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	EventTypeID int    `json:"event_type_id"`
	Timezone    string `json:"timezone"`
	LiveFrom    string `json:"live_from_date,omitempty"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *YachtResponse) FromModel(model model.Yacht) {
	r.ID = model.ID
	r.Slug = model.Slug
	r.Name = model.Name
	r.EventTypeID = model.EventTypeID
	r.Timezone = model.Timezone
	r.Capacity = model.Capacity
	r.Description = model.Description
	r.Active = model.Active

	if model.LiveFrom != nil {
		r.LiveFrom = model.LiveFrom.Format("2006-01-02")
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetYachtsResponse struct {
	Yachts    []YachtResponse `json:"yachts"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetYachtsResponse) FromModels(models []model.Yacht, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Yachts = make([]YachtResponse, len(models))
	for i, mod := range models {
		r.Yachts[i].FromModel(mod)
	}
}
