package cage

import (
	"net/http"
	"petcare/infras/otel"
	"petcare/internal/domains/cage/model"
	"petcare/internal/domains/cage/model/dto"
	"petcare/internal/domains/cage/service"
	"petcare/shared"
	"petcare/shared/constant"
	gDto "petcare/shared/dto"
	"petcare/shared/validator"
	"petcare/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cage
	otel    otel.Otel
}

func New(service service.Cage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateCage)
		routerGroup.Get("/", handler.GetCages)
		routerGroup.Get("/boarding", handler.GetBoard)
		routerGroup.Get("/{id}", handler.GetCageByID)
		routerGroup.Patch("/{id}", handler.UpdateCage)
		routerGroup.Delete("/{id}", handler.DeleteCage)
		routerGroup.Delete("/{id}/permanent", handler.PermanentDeleteCage)
	})
}

// CreateCage handles the creation of a new boarding cage.
// @Summary Create a new cage
// @Description Create a new boarding cage with the provided details.
// @Tags Cage
// @Accept json
// @Produce json
// @Param request body dto.CreateCageRequest true "Create Cage Request"
// @Success 201 {object} response.Message "Cage created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cages [post]
// @Security BearerAuth
func (handler *Handler) CreateCage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCage")
	defer scope.End()

	req := dto.CreateCageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create cage")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cage created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Cage created successfully")
}

// GetCages retrieves all cages based on query parameters.
// @Summary Get all cages
// @Description Retrieve all cages with optional filtering and pagination.
// @Tags Cage
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param number query string false "Filter by cage number"
// @Param cage_type query string false "Filter by cage type"
// @Param size_category query string false "Filter by size (small, medium, large, extra_large)"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetCagesResponse] "List of cages"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cages [get]
func (handler *Handler) GetCages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	number := r.URL.Query().Get(model.FieldNumber)
	cageType := r.URL.Query().Get(model.FieldCageType)
	sizeCategory := r.URL.Query().Get(model.FieldSizeCategory)
	active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive))

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if number != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    number,
			Table:    model.TableName,
		})
	}

	if cageType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCageType,
			Operator: gDto.FilterOperatorEq,
			Value:    cageType,
			Table:    model.TableName,
		})
	}

	if sizeCategory != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSizeCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    sizeCategory,
			Table:    model.TableName,
		})
	}

	if active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	cages, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cages")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cages retrieved successfully")

	response.WithJSON(w, http.StatusOK, cages)
}

// GetBoard renders the boarding overview for active cages.
// @Summary Get the boarding board
// @Description Retrieve every active cage with its availability and the current and next confirmed reservations.
// @Tags Cage
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.BoardResponse] "Boarding overview"
// @Failure 500 {object} response.Error
// @Router /v1/cages/boarding [get]
// @Security BearerAuth
func (handler *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBoard")
	defer scope.End()

	board, err := handler.service.Board(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get boarding board")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Boarding board retrieved successfully")

	response.WithJSON(w, http.StatusOK, board)
}

// GetCageByID retrieves a cage by its ID.
// @Summary Get a cage by ID
// @Description Retrieve a cage by its unique identifier.
// @Tags Cage
// @Accept json
// @Produce json
// @Param id path string true "Cage ID"
// @Success 200 {object} response.Data[dto.CageResponse] "Cage details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cages/{id} [get]
func (handler *Handler) GetCageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cage, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cage by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cage retrieved successfully")

	response.WithJSON(w, http.StatusOK, cage)
}

// UpdateCage updates an existing cage by its ID.
// @Summary Update a cage by ID
// @Description Update the details of an existing cage.
// @Tags Cage
// @Accept json
// @Produce json
// @Param id path string true "Cage ID"
// @Param request body dto.UpdateCageRequest true "Update Cage Request"
// @Success 200 {object} response.Message "Cage updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateCage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateCage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateCageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update cage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cage updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Cage updated successfully")
}

// DeleteCage deactivates a cage by its ID.
// @Summary Deactivate a cage by ID
// @Description Soft delete a cage so it no longer appears on the boarding board.
// @Tags Cage
// @Accept json
// @Produce json
// @Param id path string true "Cage ID"
// @Success 200 {object} response.Message "Cage deactivated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteCage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteCage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to deactivate cage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cage deactivated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Cage deactivated successfully")
}

// PermanentDeleteCage removes a cage row entirely.
// @Summary Permanently delete a cage by ID
// @Description Hard delete a cage. Fails with a conflict while reservations still reference it.
// @Tags Cage
// @Accept json
// @Produce json
// @Param id path string true "Cage ID"
// @Success 200 {object} response.Message "Cage permanently deleted"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cages/{id}/permanent [delete]
// @Security BearerAuth
func (handler *Handler) PermanentDeleteCage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PermanentDeleteCage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.PermanentDelete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to permanently delete cage")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Cage permanently deleted by user " + user)

	response.WithMessage(w, http.StatusOK, "Cage permanently deleted")
}
