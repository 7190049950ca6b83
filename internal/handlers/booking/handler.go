package booking

import (
	"net/http"

	"helm/infras/otel"
	"helm/internal/domains/booking/model"
	"helm/internal/domains/booking/model/dto"
	"helm/internal/domains/booking/service"
	"helm/shared/constant"
	gDto "helm/shared/dto"
	"helm/shared/validator"
	"helm/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, adminOnly func(http.Handler) http.Handler) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(adminOnly)
			adminGroup.Post("/{uid}/cancel", handler.CancelBooking)
		})
	})

	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Use(adminOnly)
		routerGroup.Get("/", handler.GetReservations)
	})
}

// CreateBooking handles a public booking submission.
// @Summary Create a booking
// @Description Validate a charter request against policy and live availability, then book it with the scheduling provider.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.CreateBookingResponse] "Booking created"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	clientIP, _ := ctx.Value(constant.ContextKeyClientIP).(string)
	if clientIP == constant.Empty {
		clientIP = request.RemoteAddr
	}

	res, err := handler.service.Create(ctx, req, clientIP)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// CancelBooking cancels a provider booking by its uid.
// @Summary Cancel a booking
// @Description Cancel the provider booking and mark the local reservation record cancelled.
// @Tags Booking
// @Accept json
// @Produce json
// @Param uid path string true "Provider booking uid"
// @Param request body dto.CancelBookingRequest false "Cancel Booking Request"
// @Success 200 {object} response.Message "Booking cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{uid}/cancel [post]
// @Security ApiKeyAuth
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	uid := chi.URLParam(request, constant.RequestParamUID)

	req := dto.CancelBookingRequest{}
	if request.Body != nil && request.ContentLength > 0 {
		if err := validator.Validate(request.Body, &req); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to validate request body")

			response.WithError(writer, err)

			return
		}
	}

	if err := handler.service.Cancel(ctx, uid, req.Reason); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("uid", uid).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking cancelled successfully")

	response.WithMessage(writer, http.StatusOK, "Booking cancelled successfully")
}

// GetReservations lists local reservation records for the admin app.
// @Summary Get reservations
// @Description Retrieve reservation records with optional filtering and pagination.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param yacht_id query string false "Filter by yacht ID"
// @Param status query string false "Filter by status"
// @Param trip_date query string false "Filter by trip date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetReservationsResponse] "List of reservations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reservations [get]
// @Security ApiKeyAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	yachtID := r.URL.Query().Get(model.FieldYachtID)
	status := r.URL.Query().Get(model.FieldStatus)
	tripDate := r.URL.Query().Get(model.FieldTripDate)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if yachtID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldYachtID,
			Operator: gDto.FilterOperatorEq,
			Value:    yachtID,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if tripDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTripDate,
			Operator: gDto.FilterOperatorEq,
			Value:    tripDate,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetReservations(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}
