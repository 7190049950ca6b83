package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"helm/config"
	"helm/infras/otel/mocks"
	"helm/internal/domains/availability/service"
	yachtMocks "helm/internal/domains/yacht/mocks"
	yachtModel "helm/internal/domains/yacht/model"
	"helm/internal/integrations/scheduler"
	schedulerMocks "helm/internal/integrations/scheduler/mocks"
	cacheMocks "helm/shared/cache/mocks"
	"helm/shared/failure"
	"helm/shared/timezone"
)

func charterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Charter.OperatingStartHour = 6
	cfg.Charter.OperatingEndHour = 18
	cfg.Charter.MorningEndHour = 13
	cfg.Charter.AfternoonStartHour = 15
	cfg.Charter.MinTripHours = 3
	cfg.Charter.MaxTripHours = 8

	return cfg
}

func activeYacht() yachtModel.Yacht {
	return yachtModel.Yacht{
		ID:          "test-id",
		Slug:        "aegean-queen",
		EventTypeID: 42,
		Timezone:    "Europe/Athens",
		Active:      true,
	}
}

func athens(t *testing.T) *time.Location {
	t.Helper()

	loc, err := timezone.LoadZone("Europe/Athens")
	require.NoError(t, err)

	return loc
}

func at(t *testing.T, loc *time.Location, dateKey string, hour int) time.Time {
	t.Helper()

	instant, err := timezone.ToInstant(dateKey, hour, 0, loc)
	require.NoError(t, err)

	return instant
}

// slotsFor builds a provider slot map with the given start hours on one day.
func slotsFor(t *testing.T, loc *time.Location, dateKey string, hours ...int) scheduler.SlotMap {
	t.Helper()

	slots := make(scheduler.SlotMap)
	for _, h := range hours {
		slots[dateKey] = append(slots[dateKey], at(t, loc, dateKey, h))
	}

	return slots
}

func TestAvailabilityService_GetMonth(t *testing.T) {
	const monthKey = "2025-06"

	tests := []struct {
		name      string
		monthKey  string
		setupMock func(repo *yachtMocks.MockYacht, sched *schedulerMocks.MockClient, cache *cacheMocks.MockRedisCache)
		wantErr   error
		wantCode  int
	}{
		{
			name:     "unknown slug",
			monthKey: monthKey,
			setupMock: func(repo *yachtMocks.MockYacht, _ *schedulerMocks.MockClient, _ *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(yachtModel.Yacht{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:     "cache hit skips the provider",
			monthKey: monthKey,
			setupMock: func(repo *yachtMocks.MockYacht, _ *schedulerMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeYacht(), nil)

				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:     "malformed month key fails before any provider call",
			monthKey: "June 2025",
			setupMock: func(repo *yachtMocks.MockYacht, _ *schedulerMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeYacht(), nil)

				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
			},
			wantErr: failure.InvalidMonthKey,
		},
		{
			name:     "provider failure surfaces as bad gateway",
			monthKey: monthKey,
			setupMock: func(repo *yachtMocks.MockYacht, sched *schedulerMocks.MockClient, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeYacht(), nil)

				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				sched.EXPECT().
					GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, &scheduler.UpstreamError{StatusCode: http.StatusInternalServerError}).
					AnyTimes()

				sched.EXPECT().
					GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
					Return(nil, nil).
					AnyTimes()
			},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := yachtMocks.NewMockYacht(ctrl)
			mockSched := schedulerMocks.NewMockClient(ctrl)
			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			tt.setupMock(mockRepo, mockSched, mockCache)

			svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

			_, err := svc.GetMonth(context.Background(), "aegean-queen", tt.monthKey)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

// A booking over 8-10 on a day whose 3-hour slots cover 6..12 leaves exactly
// 6 and 7 as bookable 3-hour starts: 8, 9 and the 10 o'clock checkout hour
// are blocked, and 11, 12 would run past the morning window.
func TestAvailabilityService_GetMonth_BookingBlocksStarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := athens(t)

	const dateKey = "2025-06-10"

	mockRepo := yachtMocks.NewMockYacht(ctrl)
	mockSched := schedulerMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeYacht(), nil)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockSched.EXPECT().
		GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _, _ time.Time, _ string, duration int) (scheduler.SlotMap, error) {
			if duration == 180 {
				return slotsFor(t, loc, dateKey, 6, 7, 8, 9, 10, 11, 12), nil
			}

			return slotsFor(t, loc, dateKey, 6), nil
		}).
		AnyTimes()

	mockSched.EXPECT().
		GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return([]scheduler.Booking{
			{
				UID:    "bkg-1",
				Status: scheduler.BookingStatusAccepted,
				Start:  at(t, loc, dateKey, 8),
				End:    at(t, loc, dateKey, 10),
			},
		}, nil)

	svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

	res, err := svc.GetMonth(context.Background(), "aegean-queen", "2025-06")
	require.NoError(t, err)

	day := res.Days[dateKey]
	assert.True(t, day.Open)
	assert.Equal(t, []int{6, 7}, day.ValidStartsByDuration[3])
	assert.NotContains(t, day.OpenHours, 8)
	assert.NotContains(t, day.OpenHours, 9)
	assert.NotContains(t, day.OpenHours, 10)
	assert.Contains(t, day.OpenHours, 11)
	assert.True(t, day.AM)
	assert.False(t, day.PM)
	assert.False(t, day.FullOpen)
}

func TestAvailabilityService_GetMonth_PolicyBoundsStarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := athens(t)

	const dateKey = "2025-06-10"

	mockRepo := yachtMocks.NewMockYacht(ctrl)
	mockSched := schedulerMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeYacht(), nil)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	allHours := []int{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17}

	mockSched.EXPECT().
		GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _, _ time.Time, _ string, _ int) (scheduler.SlotMap, error) {
			return slotsFor(t, loc, dateKey, allHours...), nil
		}).
		AnyTimes()

	mockSched.EXPECT().
		GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(nil, nil)

	svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

	res, err := svc.GetMonth(context.Background(), "aegean-queen", "2025-06")
	require.NoError(t, err)

	day := res.Days[dateKey]
	assert.Equal(t, []int{6, 7, 8, 9, 10, 15}, day.ValidStartsByDuration[3])
	assert.Equal(t, []int{6, 7, 8, 9}, day.ValidStartsByDuration[4])
	assert.Equal(t, []int{6, 7, 8, 9, 10}, day.ValidStartsByDuration[8])

	for d, starts := range day.ValidStartsByDuration {
		for _, s := range starts {
			assert.GreaterOrEqual(t, s, 6)
			assert.LessOrEqual(t, s+d, 18)

			for h := s; h < s+d; h++ {
				assert.Contains(t, day.OpenHours, h)
			}
		}
	}

	assert.True(t, day.AM)
	assert.True(t, day.PM)
	assert.True(t, day.FullOpen)
}

func TestAvailabilityService_GetMonth_LiveFromClosesEarlierDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := athens(t)

	mockRepo := yachtMocks.NewMockYacht(ctrl)
	mockSched := schedulerMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	yacht := activeYacht()
	liveFrom := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	yacht.LiveFrom = &liveFrom

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(yacht, nil)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockSched.EXPECT().
		GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _, _ time.Time, _ string, _ int) (scheduler.SlotMap, error) {
			slots := make(scheduler.SlotMap)
			for _, dateKey := range []string{"2025-06-10", "2025-06-20"} {
				slots[dateKey] = append(slots[dateKey], at(t, loc, dateKey, 6))
			}

			return slots, nil
		}).
		AnyTimes()

	mockSched.EXPECT().
		GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(nil, nil)

	svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

	res, err := svc.GetMonth(context.Background(), "aegean-queen", "2025-06")
	require.NoError(t, err)

	before := res.Days["2025-06-10"]
	assert.False(t, before.Open)
	assert.Empty(t, before.OpenHours)

	for _, starts := range before.ValidStartsByDuration {
		assert.Empty(t, starts)
	}

	after := res.Days["2025-06-20"]
	assert.True(t, after.Open)
	assert.Equal(t, []int{6}, after.ValidStartsByDuration[3])
}

func TestAvailabilityService_GetMonth_MidnightSpanningBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := athens(t)

	mockRepo := yachtMocks.NewMockYacht(ctrl)
	mockSched := schedulerMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeYacht(), nil)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockSched.EXPECT().
		GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _, _ time.Time, _ string, _ int) (scheduler.SlotMap, error) {
			slots := make(scheduler.SlotMap)
			for _, dateKey := range []string{"2025-06-10", "2025-06-11"} {
				for _, h := range []int{6, 7, 8, 16, 17} {
					slots[dateKey] = append(slots[dateKey], at(t, loc, dateKey, h))
				}
			}

			return slots, nil
		}).
		AnyTimes()

	// Overnight charter from 16:00 to 08:00 the next morning.
	mockSched.EXPECT().
		GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return([]scheduler.Booking{
			{
				UID:    "bkg-overnight",
				Status: scheduler.BookingStatusAccepted,
				Start:  at(t, loc, "2025-06-10", 16),
				End:    at(t, loc, "2025-06-11", 8),
			},
		}, nil)

	svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

	res, err := svc.GetMonth(context.Background(), "aegean-queen", "2025-06")
	require.NoError(t, err)

	first := res.Days["2025-06-10"]
	assert.NotContains(t, first.OpenHours, 16)
	assert.NotContains(t, first.OpenHours, 17)
	assert.Contains(t, first.OpenHours, 15)

	second := res.Days["2025-06-11"]
	assert.NotContains(t, second.OpenHours, 6)
	assert.NotContains(t, second.OpenHours, 7)
	assert.NotContains(t, second.OpenHours, 8)
	assert.Contains(t, second.OpenHours, 9)
}

func TestAvailabilityService_GetMonth_BookingFromPreviousMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := athens(t)

	mockRepo := yachtMocks.NewMockYacht(ctrl)
	mockSched := schedulerMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(activeYacht(), nil)

	mockCache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	mockCache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockSched.EXPECT().
		GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _, _ time.Time, _ string, _ int) (scheduler.SlotMap, error) {
			return slotsFor(t, loc, "2025-06-01", 6, 7, 8, 9, 16, 17), nil
		}).
		AnyTimes()

	monthStart := at(t, loc, "2025-06-01", 0)

	// An overnight charter that started on the last evening of May still
	// holds the boat through the first morning of June, so the drain window
	// must reach back past the month boundary to see it.
	mockSched.EXPECT().
		GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, afterStart, _ time.Time) ([]scheduler.Booking, error) {
			assert.True(t, afterStart.Before(monthStart))

			return []scheduler.Booking{
				{
					UID:    "bkg-prev-month",
					Status: scheduler.BookingStatusAccepted,
					Start:  at(t, loc, "2025-05-31", 16),
					End:    at(t, loc, "2025-06-01", 8),
				},
			}, nil
		})

	svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

	res, err := svc.GetMonth(context.Background(), "aegean-queen", "2025-06")
	require.NoError(t, err)

	first := res.Days["2025-06-01"]
	assert.NotContains(t, first.OpenHours, 6)
	assert.NotContains(t, first.OpenHours, 7)
	assert.NotContains(t, first.OpenHours, 8)
	assert.Contains(t, first.OpenHours, 9)
	assert.Contains(t, first.OpenHours, 16)

	_, hasPrev := res.Days["2025-05-31"]
	assert.False(t, hasPrev)
}

func TestAvailabilityService_BuildDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loc := athens(t)

	mockRepo := yachtMocks.NewMockYacht(ctrl)
	mockSched := schedulerMocks.NewMockClient(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	const dateKey = "2025-06-10"

	mockSched.EXPECT().
		GetSlots(gomock.Any(), 42, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int, _, _ time.Time, _ string, _ int) (scheduler.SlotMap, error) {
			return slotsFor(t, loc, dateKey, 6, 7), nil
		}).
		AnyTimes()

	mockSched.EXPECT().
		GetBookings(gomock.Any(), 42, gomock.Any(), gomock.Any()).
		Return(nil, nil)

	svc := service.New(mockRepo, mockSched, charterConfig(), mockCache, mocks.NewOtel())

	day, err := svc.BuildDay(context.Background(), activeYacht(), dateKey)
	require.NoError(t, err)
	assert.True(t, day.Open)
	assert.Equal(t, []int{6, 7}, day.ValidStartsByDuration[3])

	_, err = svc.BuildDay(context.Background(), activeYacht(), "10-06-2025")
	assert.ErrorIs(t, err, failure.InvalidDateKey)
}
