package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"helm/config"
	"helm/infras/otel"
	"helm/internal/domains/availability/model/dto"
	"helm/internal/domains/availability/policy"
	yachtModel "helm/internal/domains/yacht/model"
	yachtRepo "helm/internal/domains/yacht/repository"
	"helm/internal/integrations/scheduler"
	"helm/shared"
	"helm/shared/cache"
	"helm/shared/constant"
	"helm/shared/failure"
	"helm/shared/timezone"

	"github.com/rs/zerolog/log"
)

// CacheKeyMonth prefixes cached month availability entries. Booking writes
// invalidate this prefix per slug.
const CacheKeyMonth = "availability:month"

const probeDurationMinutes = 60

type Availability interface {
	GetMonth(ctx context.Context, slug, monthKey string) (dto.MonthAvailabilityResponse, error)
	BuildDay(ctx context.Context, yacht yachtModel.Yacht, dateKey string) (dto.DayAvailability, error)
}

type serviceImpl struct {
	yachts    yachtRepo.Yacht
	scheduler scheduler.Client
	rules     policy.Rules
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(yachts yachtRepo.Yacht, sched scheduler.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		yachts:    yachts,
		scheduler: sched,
		rules:     policy.FromConfig(cfg),
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// GetMonth serves the public availability calendar. Results are cached per
// slug and month; booking writes invalidate the slug's entries.
func (s *serviceImpl) GetMonth(ctx context.Context, slug, monthKey string) (res dto.MonthAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GetMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	yacht, err := s.getYacht(ctx, slug)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(CacheKeyMonth, slug, monthKey)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for month availability")

		return res, nil
	}

	res, err = s.buildMonth(ctx, yacht, monthKey)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save month availability to cache")
		}
	}()

	return res, nil
}

// BuildDay recomputes a single day from live provider data, bypassing the
// cache. Booking creation calls this immediately before writing to the
// provider so the check never runs against a stale snapshot.
func (s *serviceImpl) BuildDay(ctx context.Context, yacht yachtModel.Yacht, dateKey string) (res dto.DayAvailability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.BuildDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(dateKey) < len(constant.MonthKeyFormat) {
		return res, failure.InvalidDateKey // nolint:wrapcheck
	}

	if _, err := time.Parse(constant.DateKeyFormat, dateKey); err != nil {
		return res, failure.InvalidDateKey // nolint:wrapcheck
	}

	month, err := s.buildMonth(ctx, yacht, dateKey[:len(constant.MonthKeyFormat)])
	if err != nil {
		return res, err
	}

	return month.Days[dateKey], nil
}

func (s *serviceImpl) getYacht(ctx context.Context, slug string) (yachtModel.Yacht, error) {
	yacht, err := s.yachts.Get(ctx, yachtRepo.FilterBySlug(slug))
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("failed to get yacht by slug")

		return yacht, fmt.Errorf("failed to get yacht by slug: %w", err)
	}

	if yacht.ID == constant.Empty || !yacht.Active {
		return yacht, failure.NotFound("yacht not found") // nolint:wrapcheck
	}

	return yacht, nil
}

// buildMonth recomputes availability for every day of the month from live
// provider data. All provider queries run concurrently and the result is
// all-or-nothing; a single failed query fails the whole build.
func (s *serviceImpl) buildMonth(ctx context.Context, yacht yachtModel.Yacht, monthKey string) (res dto.MonthAvailabilityResponse, err error) {
	loc, err := timezone.LoadZone(yacht.Timezone)
	if err != nil {
		log.Error().Err(err).Str("timezone", yacht.Timezone).Msg("failed to load yacht time zone")

		return res, fmt.Errorf("failed to load yacht time zone: %w", err)
	}

	start, end, err := timezone.MonthRange(monthKey, loc)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	var (
		probeSlots scheduler.SlotMap
		bookings   []scheduler.Booking
		durations  = s.rules.Durations()
		durSlots   = make([]scheduler.SlotMap, len(durations))
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		probeSlots, err = s.scheduler.GetSlots(gctx, yacht.EventTypeID, start, end, yacht.Timezone, probeDurationMinutes)

		return err
	})

	// A booking that starts late on an adjacent day can still block hours
	// inside this month, so the drain window extends one day past each edge.
	bookingsStart := start.AddDate(0, 0, -1)
	bookingsEnd := end.AddDate(0, 0, 1)

	g.Go(func() error {
		var err error
		bookings, err = s.scheduler.GetBookings(gctx, yacht.EventTypeID, bookingsStart, bookingsEnd)

		return err
	})

	for i, d := range durations {
		g.Go(func() error {
			var err error
			durSlots[i], err = s.scheduler.GetSlots(gctx, yacht.EventTypeID, start, end, yacht.Timezone, d*60)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Str("slug", yacht.Slug).Str("month", monthKey).Msg("failed to query scheduling provider")

		var upstream *scheduler.UpstreamError
		if errors.As(err, &upstream) {
			return res, failure.BadGateway("scheduling provider request failed") // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to query scheduling provider: %w", err)
	}

	blocked, touched := blockedHours(bookings, loc, s.rules)
	probeHours := startHoursByDay(probeSlots, loc)

	startsByDuration := make(map[int]map[string][]int, len(durations))
	for i, d := range durations {
		startsByDuration[d] = startHoursByDay(durSlots[i], loc)
	}

	dateKeys, err := timezone.DaysInMonth(monthKey, loc)
	if err != nil {
		return res, err // nolint:wrapcheck
	}

	var liveFromKey string
	if yacht.LiveFrom != nil {
		liveFromKey = yacht.LiveFrom.Format(constant.DateKeyFormat)
	}

	res.FromYacht(yacht, monthKey, s.rules)

	for _, dateKey := range dateKeys {
		res.Days[dateKey] = s.buildDay(dateKey, probeHours, blocked, touched, startsByDuration, liveFromKey)
	}

	return res, nil
}

func (s *serviceImpl) buildDay(
	dateKey string,
	probeHours map[string][]int,
	blocked map[string]map[int]bool,
	touched map[string]bool,
	startsByDuration map[int]map[string][]int,
	liveFromKey string,
) dto.DayAvailability {
	day := dto.DayAvailability{
		OpenHours:             []int{},
		ValidStartsByDuration: make(map[int][]int, len(startsByDuration)),
	}

	for d := range startsByDuration {
		day.ValidStartsByDuration[d] = []int{}
	}

	// Days before the go-live cutover are fully closed.
	if liveFromKey != constant.Empty && dateKey < liveFromKey {
		return day
	}

	day.Open = len(probeHours[dateKey]) > 0 || touched[dateKey]
	if !day.Open {
		return day
	}

	dayBlocked := blocked[dateKey]

	for h := s.rules.OperatingStart; h < s.rules.OperatingEnd; h++ {
		if !dayBlocked[h] {
			day.OpenHours = append(day.OpenHours, h)
		}
	}

	for d, byDay := range startsByDuration {
		for _, h := range byDay[dateKey] {
			if s.rules.IsStartAllowed(d, h) && !dayBlocked[h] {
				day.ValidStartsByDuration[d] = append(day.ValidStartsByDuration[d], h)
			}
		}

		sort.Ints(day.ValidStartsByDuration[d])

		for _, h := range day.ValidStartsByDuration[d] {
			if h < s.rules.MorningEnd {
				day.AM = true
			}

			if h >= s.rules.AfternoonStart {
				day.PM = true
			}
		}
	}

	day.FullOpen = day.AM && day.PM

	return day
}

// blockedHours marks every whole hour a non-cancelled booking occupies,
// inclusive of the checkout hour, clamped to the operating window. A booking
// spanning midnight contributes hours to both its start and end days. It also
// reports which days any booking touches at all.
func blockedHours(bookings []scheduler.Booking, loc *time.Location, rules policy.Rules) (map[string]map[int]bool, map[string]bool) {
	blocked := make(map[string]map[int]bool)
	touched := make(map[string]bool)

	for _, b := range bookings {
		if !b.Blocking() {
			continue
		}

		start := b.Start.In(loc)
		start = time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, loc)

		for t := start; !t.After(b.End.In(loc)); t = t.Add(time.Hour) {
			dateKey := t.Format(constant.DateKeyFormat)
			touched[dateKey] = true

			h := t.Hour()
			if h < rules.OperatingStart || h >= rules.OperatingEnd {
				continue
			}

			if blocked[dateKey] == nil {
				blocked[dateKey] = make(map[int]bool)
			}

			blocked[dateKey][h] = true
		}
	}

	return blocked, touched
}

// startHoursByDay regroups provider slot instants by their local calendar
// day, recomputing the day key locally rather than trusting the provider's
// grouping.
func startHoursByDay(slots scheduler.SlotMap, loc *time.Location) map[string][]int {
	byDay := make(map[string][]int)

	for _, instants := range slots {
		for _, instant := range instants {
			local := instant.In(loc)
			byDay[local.Format(constant.DateKeyFormat)] = append(byDay[local.Format(constant.DateKeyFormat)], local.Hour())
		}
	}

	return byDay
}
