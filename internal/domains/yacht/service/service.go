package service

import (
	"context"
	"fmt"

	"helm/config"
	"helm/infras/otel"
	"helm/internal/domains/yacht/model"
	"helm/internal/domains/yacht/model/dto"
	"helm/internal/domains/yacht/repository"
	"helm/shared"
	"helm/shared/cache"
	"helm/shared/constant"
	gDto "helm/shared/dto"
	"helm/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetYacht     = "yacht:get"
	cacheGetAllYachts = "yacht:gets"
	cacheCountYachts  = "yacht:count"
	cacheYachtBySlug  = "yacht:slug"
)

type Yacht interface {
	Create(ctx context.Context, req dto.CreateYachtRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetYachtsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.YachtResponse, error)
	GetBySlug(ctx context.Context, slug string) (model.Yacht, error)
	Update(ctx context.Context, req dto.UpdateYachtRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Yacht
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Yacht, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Yacht {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateYachtRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	taken, err := s.repo.Exist(ctx, repository.FilterBySlug(req.Slug))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if slug is taken")

		return fmt.Errorf("failed to check if slug is taken: %w", err)
	}

	if taken {
		return failure.Conflict("a yacht with this slug already exists") // nolint:wrapcheck
	}

	yacht, err := req.ToModel(constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse yacht request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, yacht); err != nil {
		log.Error().Err(err).Msg("failed to create yacht")

		return fmt.Errorf("failed to create yacht: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllYachts)
		shared.InvalidateCaches(c, s.cache, cacheCountYachts)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetYachtsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllYachts, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for yachts")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count yachts")

		return res, fmt.Errorf("failed to count yachts: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get yachts")

		return res, fmt.Errorf("failed to get yachts: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save yachts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountYachts, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count yachts")

		return res, fmt.Errorf("failed to count yachts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save yacht count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.YachtResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetYacht, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for yacht")

		return res, nil
	}

	yacht, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get yacht")

		return res, fmt.Errorf("failed to get yacht: %w", err)
	}

	if yacht.ID == constant.Empty {
		return res, failure.NotFound("yacht not found") // nolint:wrapcheck
	}

	res.FromModel(yacht)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save yacht to cache")
		}
	}()

	return res, nil
}

// GetBySlug resolves the yacht a public availability or booking request is
// about. Inactive yachts are treated as absent.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res model.Yacht, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheYachtBySlug, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	yacht, err := s.repo.Get(ctx, repository.FilterBySlug(slug))
	if err != nil {
		log.Error().Err(err).Msg("failed to get yacht by slug")

		return res, fmt.Errorf("failed to get yacht by slug: %w", err)
	}

	if yacht.ID == constant.Empty || !yacht.Active {
		return res, failure.NotFound("yacht not found") // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, yacht, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save yacht to cache")
		}
	}()

	return yacht, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateYachtRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateYachtRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	yacht, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if yacht exists")

		return fmt.Errorf("failed to check if yacht exists: %w", err)
	}

	if yacht.ID == constant.Empty {
		return failure.NotFound("yacht not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, constant.Empty)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update yacht")

		return fmt.Errorf("failed to update yacht: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetYacht, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete yacht from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheYachtBySlug, yacht.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete yacht slug entry from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllYachts)
		shared.InvalidateCaches(c, s.cache, cacheCountYachts)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".yacht.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	yacht, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if yacht exists")

		return fmt.Errorf("failed to check if yacht exists: %w", err)
	}

	if yacht.ID == constant.Empty {
		return failure.NotFound("yacht not found") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete yacht")

		return fmt.Errorf("failed to delete yacht: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetYacht, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete yacht from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheYachtBySlug, yacht.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete yacht slug entry from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllYachts)
		shared.InvalidateCaches(c, s.cache, cacheCountYachts)
	}()

	return nil
}
