package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"helm/config"
	"helm/infras/otel"
	"helm/shared/constant"

	"github.com/rs/zerolog/log"
)

// drainStatuses are the provider listing statuses that can block hours.
// Cancelled bookings never appear in either listing.
var drainStatuses = []string{"upcoming", "unconfirmed"}

type Client interface {
	GetSlots(ctx context.Context, eventTypeID int, start, end time.Time, timeZone string, durationMinutes int) (SlotMap, error)
	GetBookings(ctx context.Context, eventTypeID int, afterStart, beforeEnd time.Time) ([]Booking, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (Booking, error)
	CancelBooking(ctx context.Context, uid, reason string) error
}

type clientImpl struct {
	cfg        *config.Config
	httpClient *http.Client
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	return &clientImpl{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Provider.TimeoutSeconds) * time.Second,
		},
		otel: otl,
	}
}

func (c *clientImpl) GetSlots(ctx context.Context, eventTypeID int, start, end time.Time, timeZone string, durationMinutes int) (res SlotMap, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".scheduler.GetSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := url.Values{}
	query.Set("eventTypeId", strconv.Itoa(eventTypeID))
	query.Set("start", start.UTC().Format(time.RFC3339))
	query.Set("end", end.UTC().Format(time.RFC3339))
	query.Set("timeZone", timeZone)
	query.Set("duration", strconv.Itoa(durationMinutes))

	var payload slotsResponse
	if err = c.do(ctx, http.MethodGet, "/v2/slots", query, nil, &payload); err != nil {
		return nil, err
	}

	slots := SlotMap{}

	for dateKey, entries := range payload.Data {
		starts := make([]time.Time, 0, len(entries))

		for _, raw := range entries {
			instant, decodeErr := decodeSlotEntry(raw)
			if decodeErr != nil {
				log.Warn().Err(decodeErr).Str("dateKey", dateKey).Msg("skipping malformed provider slot entry")

				continue
			}

			starts = append(starts, instant)
		}

		sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })
		slots[dateKey] = starts
	}

	return slots, nil
}

// GetBookings drains the provider's paginated bookings listing for every
// non-cancelled status overlapping [afterStart, beforeEnd). Draining stops
// per status when a short page arrives or the bounded page count is hit, so a
// misbehaving provider cannot loop the service forever.
func (c *clientImpl) GetBookings(ctx context.Context, eventTypeID int, afterStart, beforeEnd time.Time) (res []Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".scheduler.GetBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	pageSize := c.cfg.Provider.PageSize
	maxPages := c.cfg.Provider.MaxPages

	bookings := []Booking{}

	for _, status := range drainStatuses {
		for page := 0; page < maxPages; page++ {
			query := url.Values{}
			query.Set("status", status)
			query.Set("eventTypeId", strconv.Itoa(eventTypeID))
			query.Set("afterStart", afterStart.UTC().Format(time.RFC3339))
			query.Set("beforeEnd", beforeEnd.UTC().Format(time.RFC3339))
			query.Set("take", strconv.Itoa(pageSize))
			query.Set("skip", strconv.Itoa(page*pageSize))
			query.Set("sortStart", "asc")

			var payload bookingsResponse
			if err = c.do(ctx, http.MethodGet, "/v2/bookings", query, nil, &payload); err != nil {
				return nil, err
			}

			pageBookings, decodeErr := payload.bookings()
			if decodeErr != nil {
				err = fmt.Errorf("failed to decode provider bookings page: %w", decodeErr)

				return nil, err
			}

			bookings = append(bookings, pageBookings...)

			if len(pageBookings) < pageSize {
				break
			}
		}
	}

	return bookings, nil
}

func (c *clientImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (res Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".scheduler.CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	var payload bookingResponse
	if err = c.do(ctx, http.MethodPost, "/v2/bookings", nil, req, &payload); err != nil {
		return Booking{}, err
	}

	return payload.Data, nil
}

func (c *clientImpl) CancelBooking(ctx context.Context, uid, reason string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".scheduler.CancelBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	path := fmt.Sprintf("/v2/bookings/%s/cancel", url.PathEscape(uid))

	return c.do(ctx, http.MethodPost, path, nil, cancelBookingRequest{CancellationReason: reason}, nil)
}

// do builds the provider request, attaches auth headers, issues the call and
// decodes the response. Non-2xx statuses become a typed UpstreamError.
func (c *clientImpl) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.cfg.Provider.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode provider request body: %w", err)
		}

		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build provider request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+c.cfg.Provider.APIKey)
	request.Header.Set("cal-api-version", c.cfg.Provider.APIVersion)

	if c.cfg.Provider.ClientID != "" && c.cfg.Provider.ClientSecret != "" {
		request.Header.Set("x-cal-client-id", c.cfg.Provider.ClientID)
		request.Header.Set("x-cal-secret-key", c.cfg.Provider.ClientSecret)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to reach scheduling provider: %w", err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read provider response: %w", err)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return &UpstreamError{StatusCode: response.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}

	return nil
}
