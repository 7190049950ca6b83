package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"helm/infras/otel"
	"helm/infras/postgres"
	"helm/internal/domains/booking/model"
	gDto "helm/shared/dto"
	gRepo "helm/shared/repository"
)

type Reservation interface {
	Upsert(ctx context.Context, conflictColumn string, model model.ReservationDetail) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ReservationDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ReservationDetail, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

// FilterByProviderUID matches the shadow row of one provider booking.
func FilterByProviderUID(uid string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProviderUID,
				Value:    uid,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

type repositoryImpl struct {
	gRepo.Repository[model.ReservationDetail]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ReservationDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
