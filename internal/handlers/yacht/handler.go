package yacht

import (
	"net/http"

	"helm/infras/otel"
	"helm/internal/domains/yacht/model"
	"helm/internal/domains/yacht/model/dto"
	"helm/internal/domains/yacht/service"
	"helm/shared/constant"
	gDto "helm/shared/dto"
	"helm/shared/validator"
	"helm/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Yacht
	otel    otel.Otel
}

func New(service service.Yacht, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router, adminOnly func(http.Handler) http.Handler) {
	router.Route("/yachts", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetYachts)
		routerGroup.Get("/slug/{slug}", handler.GetYachtBySlug)
		routerGroup.Get("/{id}", handler.GetYachtByID)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(adminOnly)
			adminGroup.Post("/", handler.CreateYacht)
			adminGroup.Patch("/{id}", handler.UpdateYacht)
			adminGroup.Delete("/{id}", handler.DeleteYacht)
		})
	})
}

// CreateYacht registers a new yacht.
// @Summary Create a new yacht
// @Description Register a yacht with its provider event type and booking time zone.
// @Tags Yacht
// @Accept json
// @Produce json
// @Param request body dto.CreateYachtRequest true "Create Yacht Request"
// @Success 201 {object} response.Message "Yacht created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/yachts [post]
// @Security ApiKeyAuth
func (handler *Handler) CreateYacht(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateYacht")
	defer scope.End()

	req := dto.CreateYachtRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create yacht")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Yacht created successfully")

	response.WithMessage(writer, http.StatusCreated, "Yacht created successfully")
}

// GetYachts retrieves all yachts based on query parameters.
// @Summary Get all yachts
// @Description Retrieve all yachts with optional filtering and pagination.
// @Tags Yacht
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param slug query string false "Filter by slug"
// @Success 200 {object} response.Data[dto.GetYachtsResponse] "List of yachts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/yachts [get]
func (handler *Handler) GetYachts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetYachts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	slug := r.URL.Query().Get(model.FieldSlug)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if slug != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSlug,
			Operator: gDto.FilterOperatorEq,
			Value:    slug,
			Table:    model.TableName,
		})
	}

	yachts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get yachts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Yachts retrieved successfully")

	response.WithJSON(w, http.StatusOK, yachts)
}

// GetYachtByID retrieves a yacht by its ID.
// @Summary Get a yacht by ID
// @Description Retrieve detailed information about a specific yacht.
// @Tags Yacht
// @Accept json
// @Produce json
// @Param id path string true "Yacht ID"
// @Success 200 {object} response.Data[dto.YachtResponse] "Yacht details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/yachts/{id} [get]
func (handler *Handler) GetYachtByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetYachtByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	yacht, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to get yacht")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Yacht retrieved successfully")

	response.WithJSON(w, http.StatusOK, yacht)
}

// GetYachtBySlug retrieves a single active yacht by its public slug.
// @Summary Get yacht by slug
// @Description Retrieve an active yacht by its public booking-site slug.
// @Tags Yacht
// @Accept json
// @Produce json
// @Param slug path string true "Yacht slug"
// @Success 200 {object} response.Data[dto.YachtResponse] "Yacht details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/yachts/slug/{slug} [get]
func (handler *Handler) GetYachtBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetYachtBySlug")
	defer scope.End()

	slug := chi.URLParam(r, constant.RequestParamSlug)

	yacht, err := handler.service.GetBySlug(ctx, slug)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("slug", slug).Msg("failed to get yacht by slug")

		response.WithError(w, err)

		return
	}

	res := dto.YachtResponse{}
	res.FromModel(yacht)

	scope.AddEvent("Yacht retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateYacht updates an existing yacht.
// @Summary Update a yacht
// @Description Update yacht details by ID.
// @Tags Yacht
// @Accept json
// @Produce json
// @Param id path string true "Yacht ID"
// @Param request body dto.UpdateYachtRequest true "Update Yacht Request"
// @Success 200 {object} response.Message "Yacht updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/yachts/{id} [patch]
// @Security ApiKeyAuth
func (handler *Handler) UpdateYacht(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateYacht")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateYachtRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to update yacht")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Yacht updated successfully")

	response.WithMessage(writer, http.StatusOK, "Yacht updated successfully")
}

// DeleteYacht removes a yacht.
// @Summary Delete a yacht
// @Description Delete a yacht by ID.
// @Tags Yacht
// @Accept json
// @Produce json
// @Param id path string true "Yacht ID"
// @Success 200 {object} response.Message "Yacht deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/yachts/{id} [delete]
// @Security ApiKeyAuth
func (handler *Handler) DeleteYacht(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteYacht")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete yacht")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Yacht deleted successfully")

	response.WithMessage(writer, http.StatusOK, "Yacht deleted successfully")
}
