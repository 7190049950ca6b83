package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"helm/config"
	"helm/infras/otel"
	"helm/internal/domains/availability/policy"
	availabilityService "helm/internal/domains/availability/service"
	"helm/internal/domains/booking/model"
	"helm/internal/domains/booking/model/dto"
	"helm/internal/domains/booking/repository"
	yachtModel "helm/internal/domains/yacht/model"
	yachtRepo "helm/internal/domains/yacht/repository"
	"helm/internal/integrations/botcheck"
	"helm/internal/integrations/scheduler"
	"helm/shared"
	"helm/shared/cache"
	"helm/shared/constant"
	gDto "helm/shared/dto"
	"helm/shared/failure"
	"helm/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllReservations = "reservation:gets"
	cacheCountReservations  = "reservation:count"
	cacheAttemptsByIP       = "booking:attempts:ip"
	cacheAttemptsByEmail    = "booking:attempts:email"

	cancelledByGuestReason = "cancelled by guest request"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, clientIP string) (dto.CreateBookingResponse, error)
	Cancel(ctx context.Context, uid, reason string) error
	GetReservations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	CountReservations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	yachtRepo    yachtRepo.Yacht
	availability availabilityService.Availability
	scheduler    scheduler.Client
	botcheck     botcheck.Verifier
	rules        policy.Rules
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Reservation,
	yachts yachtRepo.Yacht,
	availability availabilityService.Availability,
	sched scheduler.Client,
	botcheck botcheck.Verifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		yachtRepo:    yachts,
		availability: availability,
		scheduler:    sched,
		botcheck:     botcheck,
		rules:        policy.FromConfig(cfg),
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create runs the public booking flow: policy check, abuse checks, a fresh
// availability recheck and finally the provider write. The provider booking
// is the single authoritative write; the local shadow row is synced
// best-effort afterwards.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, clientIP string) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	yacht, err := s.getYacht(ctx, req.Slug)
	if err != nil {
		return res, err
	}

	sel, err := ResolveStartHour(s.rules, req.RequestedHours, req.StartHour, req.Half)
	if err != nil {
		return res, err
	}

	if err = s.checkAttemptLimit(ctx, clientIP, req.GuestEmail); err != nil {
		return res, err
	}

	ok, err := s.botcheck.Verify(ctx, req.BotToken, clientIP)
	if err != nil {
		log.Error().Err(err).Msg("failed to verify bot challenge token")

		return res, fmt.Errorf("failed to verify bot challenge token: %w", err)
	}

	if !ok {
		return res, failure.BadRequestFromString("bot verification failed") // nolint:wrapcheck
	}

	// Rebuild the day from live provider data; a client-side check or a
	// cached calendar is never trusted at this point.
	day, err := s.availability.BuildDay(ctx, yacht, req.Date)
	if err != nil {
		return res, err
	}

	if !IsStartSelectionAvailable(day, req.RequestedHours, sel.StartHour) {
		return res, failure.SlotNoLongerAvailable // nolint:wrapcheck
	}

	booking, err := s.createProviderBooking(ctx, yacht, req, sel)
	if err != nil {
		return res, err
	}

	s.syncReservationShadow(ctx, yacht, req, sel, booking)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(availabilityService.CacheKeyMonth, yacht.Slug))
		shared.InvalidateCaches(c, s.cache, cacheGetAllReservations)
		shared.InvalidateCaches(c, s.cache, cacheCountReservations)
	}()

	res.BookingUID = booking.UID
	res.Status = booking.Status

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, uid, reason string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	if reason == constant.Empty {
		reason = cancelledByGuestReason
	}

	if err = s.scheduler.CancelBooking(ctx, uid, reason); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("failed to cancel provider booking")

		var upstream *scheduler.UpstreamError
		if errors.As(err, &upstream) {
			return failure.BadGateway("scheduling provider request failed") // nolint:wrapcheck
		}

		return fmt.Errorf("failed to cancel provider booking: %w", err)
	}

	// The provider cancellation already succeeded; shadow sync is
	// best-effort and reconcilable later.
	updated := map[string]any{
		model.FieldStatus: scheduler.BookingStatusCancelled,
	}
	if err := s.repo.Update(ctx, updated, repository.FilterByProviderUID(uid)); err != nil {
		log.Error().Err(err).Str("uid", uid).Msg("failed to sync reservation shadow on cancel")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, availabilityService.CacheKeyMonth)
		shared.InvalidateCaches(c, s.cache, cacheGetAllReservations)
		shared.InvalidateCaches(c, s.cache, cacheCountReservations)
	}()

	return nil
}

func (s *serviceImpl) GetReservations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservations, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.CountReservations(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CountReservations(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.CountReservations")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservations, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getYacht(ctx context.Context, slug string) (yachtModel.Yacht, error) {
	yacht, err := s.yachtRepo.Get(ctx, yachtRepo.FilterBySlug(slug))
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to get yacht by slug")

		return yacht, fmt.Errorf("failed to get yacht by slug: %w", err)
	}

	if yacht.ID == constant.Empty || !yacht.Active {
		return yacht, failure.NotFound("yacht not found") // nolint:wrapcheck
	}

	return yacht, nil
}

// checkAttemptLimit enforces rolling per-IP and per-email booking-attempt
// counters. The read-increment-write pair is not atomic; minor over-admission
// under concurrency is accepted in exchange for simplicity.
func (s *serviceImpl) checkAttemptLimit(ctx context.Context, clientIP, email string) error {
	limiter := s.cfg.Booking.AttemptLimiter
	if !limiter.Enable {
		return nil
	}

	counters := []struct {
		key string
		max int
	}{
		{shared.BuildCacheKey(cacheAttemptsByIP, shared.HashIdentifier(clientIP)), limiter.MaxPerIP},
		{shared.BuildCacheKey(cacheAttemptsByEmail, shared.HashIdentifier(email)), limiter.MaxPerEmail},
	}

	for _, counter := range counters {
		var count int

		err := s.cache.Get(ctx, counter.key, &count)
		if err != nil && !errors.Is(err, cache.Nil) {
			// A broken cache should not block legitimate bookings.
			log.Error().Err(err).Msg("failed to read booking attempt counter")

			continue
		}

		count++

		if count > counter.max {
			return failure.TooManyRequests("too many booking attempts, please try again later") // nolint:wrapcheck
		}

		if err := s.cache.Save(ctx, counter.key, count, limiter.WindowSeconds); err != nil {
			log.Error().Err(err).Msg("failed to save booking attempt counter")
		}
	}

	return nil
}

func (s *serviceImpl) createProviderBooking(ctx context.Context, yacht yachtModel.Yacht, req dto.CreateBookingRequest, sel StartSelection) (scheduler.Booking, error) {
	loc, err := timezone.LoadZone(yacht.Timezone)
	if err != nil {
		log.Error().Err(err).Str("timezone", yacht.Timezone).Msg("failed to load yacht time zone")

		return scheduler.Booking{}, fmt.Errorf("failed to load yacht time zone: %w", err)
	}

	start, err := timezone.ToInstant(req.Date, sel.StartHour, 0, loc)
	if err != nil {
		return scheduler.Booking{}, err // nolint:wrapcheck
	}

	booking, err := s.scheduler.CreateBooking(ctx, scheduler.CreateBookingRequest{
		Start:           start,
		EventTypeID:     yacht.EventTypeID,
		LengthInMinutes: req.RequestedHours * 60,
		Attendee: scheduler.Attendee{
			Name:        req.GuestName,
			Email:       req.GuestEmail,
			TimeZone:    yacht.Timezone,
			PhoneNumber: req.GuestPhone,
		},
		Metadata: map[string]string{
			"segment": string(sel.Segment),
			"notes":   req.Notes,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("slug", yacht.Slug).Msg("failed to create provider booking")

		// Two clients can race past the recheck; the provider's own
		// conflict answer settles it.
		if scheduler.IsUpstreamConflict(err) {
			return scheduler.Booking{}, failure.SlotNoLongerAvailable // nolint:wrapcheck
		}

		var upstream *scheduler.UpstreamError
		if errors.As(err, &upstream) {
			return scheduler.Booking{}, failure.BadGateway("scheduling provider request failed") // nolint:wrapcheck
		}

		return scheduler.Booking{}, fmt.Errorf("failed to create provider booking: %w", err)
	}

	return booking, nil
}

// syncReservationShadow upserts the local shadow row for an accepted
// provider booking. Failures are logged only; the provider booking already
// committed and is never rolled back.
func (s *serviceImpl) syncReservationShadow(ctx context.Context, yacht yachtModel.Yacht, req dto.CreateBookingRequest, sel StartSelection, booking scheduler.Booking) {
	detail, err := req.ToReservationDetail(booking.UID, yacht.ID, booking.Status, string(sel.Segment), sel.StartHour, sel.EndHour)
	if err != nil {
		log.Error().Err(err).Str("uid", booking.UID).Msg("failed to build reservation shadow")

		return
	}

	if err := s.repo.Upsert(ctx, model.FieldProviderUID, detail); err != nil {
		log.Error().Err(err).Str("uid", booking.UID).Msg("failed to sync reservation shadow")
	}
}
