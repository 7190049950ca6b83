package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"helm/infras/otel"
	"helm/infras/postgres"
	"helm/internal/domains/yacht/model"
	gDto "helm/shared/dto"
	gRepo "helm/shared/repository"
)

type Yacht interface {
	Insert(ctx context.Context, model model.Yacht) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Yacht, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Yacht, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

// FilterBySlug builds the filter used for public slug lookups.
func FilterBySlug(slug string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSlug,
				Value:    slug,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

type repositoryImpl struct {
	gRepo.Repository[model.Yacht]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Yacht {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Yacht](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
