package scheduler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helm/config"
	"helm/infras/otel/mocks"
	"helm/internal/integrations/scheduler"
)

func newTestClient(baseURL string, pageSize, maxPages int) scheduler.Client {
	cfg := &config.Config{}
	cfg.Provider.BaseURL = baseURL
	cfg.Provider.APIKey = "test-key"
	cfg.Provider.APIVersion = "2024-08-13"
	cfg.Provider.TimeoutSeconds = 5
	cfg.Provider.PageSize = pageSize
	cfg.Provider.MaxPages = maxPages

	return scheduler.New(cfg, mocks.NewOtel())
}

func TestGetSlotsNormalizesBothShapes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/slots", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "2024-08-13", r.Header.Get("cal-api-version"))
		assert.Equal(t, "60", r.URL.Query().Get("duration"))

		// One day uses the object shape, the other the bare string shape.
		_, _ = w.Write([]byte(`{"data":{
			"2025-06-01":[{"start":"2025-06-01T07:00:00Z"},{"start":"2025-06-01T06:00:00Z"}],
			"2025-06-02":["2025-06-02T09:00:00Z"]
		}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 100, 10)

	slots, err := client.GetSlots(t.Context(), 42, time.Now(), time.Now().Add(time.Hour), "UTC", 60)
	require.NoError(t, err)

	require.Len(t, slots["2025-06-01"], 2)
	assert.Equal(t, "2025-06-01T06:00:00Z", slots["2025-06-01"][0].Format(time.RFC3339))
	assert.Equal(t, "2025-06-01T07:00:00Z", slots["2025-06-01"][1].Format(time.RFC3339))

	require.Len(t, slots["2025-06-02"], 1)
	assert.Equal(t, "2025-06-02T09:00:00Z", slots["2025-06-02"][0].Format(time.RFC3339))
}

func TestGetBookingsDrainsPagination(t *testing.T) {
	requests := []string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		requests = append(requests, status+":"+strconv.Itoa(skip))

		if status == "unconfirmed" {
			// Wrapped envelope shape with a short page.
			_, _ = w.Write([]byte(`{"data":{"bookings":[
				{"uid":"u-1","status":"unconfirmed","start":"2025-06-03T06:00:00Z","end":"2025-06-03T09:00:00Z"}
			]}}`))

			return
		}

		// Bare array shape: a full first page, then a short page.
		if skip == 0 {
			_, _ = w.Write([]byte(`{"data":[
				{"uid":"a-1","status":"accepted","start":"2025-06-01T06:00:00Z","end":"2025-06-01T09:00:00Z"},
				{"uid":"a-2","status":"accepted","start":"2025-06-02T06:00:00Z","end":"2025-06-02T09:00:00Z"}
			]}`))

			return
		}

		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2, 10)

	bookings, err := client.GetBookings(t.Context(), 42, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Len(t, bookings, 3)
	assert.Equal(t, []string{"upcoming:0", "upcoming:2", "unconfirmed:0"}, requests)
}

func TestGetBookingsBoundedPageCount(t *testing.T) {
	calls := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Always a full page: without the bound this would loop forever.
		_, _ = w.Write([]byte(`{"data":[
			{"uid":"a-1","status":"accepted","start":"2025-06-01T06:00:00Z","end":"2025-06-01T09:00:00Z"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1, 3)

	_, err := client.GetBookings(t.Context(), 42, time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	// 3 pages per drained status.
	assert.Equal(t, 6, calls)
}

func TestCreateBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/bookings", r.URL.Path)

		var req scheduler.CreateBookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 42, req.EventTypeID)
		assert.Equal(t, 180, req.LengthInMinutes)
		assert.Equal(t, "ada@example.com", req.Attendee.Email)

		_, _ = w.Write([]byte(`{"data":{"uid":"bk-123","status":"accepted","start":"2025-06-01T06:00:00Z","end":"2025-06-01T09:00:00Z"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 100, 10)

	booking, err := client.CreateBooking(t.Context(), scheduler.CreateBookingRequest{
		Start:           time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC),
		EventTypeID:     42,
		LengthInMinutes: 180,
		Attendee:        scheduler.Attendee{Name: "Ada", Email: "ada@example.com", TimeZone: "UTC"},
	})
	require.NoError(t, err)

	assert.Equal(t, "bk-123", booking.UID)
	assert.Equal(t, "accepted", booking.Status)
}

func TestCancelBooking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/bookings/bk-123/cancel", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "guest request", req["cancellationReason"])

		_, _ = w.Write([]byte(`{"data":{"uid":"bk-123","status":"cancelled"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 100, 10)

	require.NoError(t, client.CancelBooking(t.Context(), "bk-123", "guest request"))
}

func TestUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 100, 10)

	_, err := client.GetSlots(t.Context(), 42, time.Now(), time.Now().Add(time.Hour), "UTC", 60)
	require.Error(t, err)

	var upstream *scheduler.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Contains(t, upstream.Body, "boom")
}

func TestBookingBlocking(t *testing.T) {
	assert.True(t, scheduler.Booking{Status: scheduler.BookingStatusAccepted}.Blocking())
	assert.True(t, scheduler.Booking{Status: scheduler.BookingStatusPending}.Blocking())
	assert.True(t, scheduler.Booking{Status: scheduler.BookingStatusUnconfirmed}.Blocking())
	assert.False(t, scheduler.Booking{Status: scheduler.BookingStatusCancelled}.Blocking())
	assert.False(t, scheduler.Booking{Status: "rejected"}.Blocking())
}
