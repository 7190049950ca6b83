package availability

import (
	"net/http"

	"helm/infras/otel"
	"helm/internal/domains/availability/service"
	"helm/shared/constant"
	"helm/shared/failure"
	"helm/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMonthAvailability)
	})
}

// GetMonthAvailability returns the bookable calendar for one yacht and month.
// @Summary Get month availability
// @Description Retrieve per-day open hours and valid start hours per trip duration for a yacht.
// @Tags Availability
// @Accept json
// @Produce json
// @Param slug query string true "Yacht slug"
// @Param month query string true "Month key (YYYY-MM)"
// @Success 200 {object} dto.MonthAvailabilityResponse "Month availability"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/availability [get]
func (handler *Handler) GetMonthAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMonthAvailability")
	defer scope.End()

	slug := r.URL.Query().Get(constant.RequestParamSlug)
	monthKey := r.URL.Query().Get(constant.RequestParamMonth)

	if slug == constant.Empty || monthKey == constant.Empty {
		err := failure.BadRequestFromString("slug and month query parameters are required")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	availability, err := handler.service.GetMonth(ctx, slug, monthKey)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slug", slug).Str("month", monthKey).Msg("failed to get month availability")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Month availability retrieved successfully")

	response.WithJSON(w, http.StatusOK, availability)
}
