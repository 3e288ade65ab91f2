package place

import (
	"net/http"
	"rentopia/infras/otel"
	"rentopia/internal/domains/place/model/dto"
	"rentopia/internal/domains/place/service"
	"rentopia/shared/constant"
	"rentopia/shared/validator"
	"rentopia/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Place
	otel    otel.Otel
}

func New(service service.Place, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/places", handler.CreatePlace)
	router.Put("/places", handler.UpdatePlace)
	router.Get("/places", handler.GetPlaces)
	router.Get("/places/{id}", handler.GetPlaceByID)

	router.Get("/user-places", handler.GetUserPlaces)
	router.Delete("/user-places/{id}", handler.DeletePlace)
	router.Post("/user-places/{id}", handler.DeletePlace)
}

// CreatePlace lists a new place for the caller.
// @Summary Create a place
// @Description Create a listing owned by the caller. Requires an active host subscription.
// @Tags Place
// @Accept json
// @Produce json
// @Param request body dto.PlaceRequest true "Place"
// @Success 201 {object} dto.PlaceResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error "Subscription required"
// @Failure 500 {object} response.Error
// @Router /api/places [post]
// @Security BearerAuth
func (handler *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePlace")
	defer scope.End()

	req := dto.PlaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create place")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place created " + res.ID)

	response.WithJSON(w, http.StatusCreated, res)
}

// UpdatePlace updates one of the caller's places.
// @Summary Update a place
// @Tags Place
// @Accept json
// @Produce json
// @Param request body dto.PlaceRequest true "Place with id"
// @Success 200 {object} response.Message "ok"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places [put]
// @Security BearerAuth
func (handler *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePlace")
	defer scope.End()

	req := dto.PlaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update place")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "ok")
}

// GetPlaces lists places.
// @Summary List places
// @Description Listing photos are cut to the first three.
// @Tags Place
// @Produce json
// @Param search query string false "Title or address contains"
// @Param property_type query string false "1RK, 1BHK, 2BHK, 3BHK or Villa"
// @Param max_price query number false "Highest nightly price"
// @Param guests query int false "Minimum guest capacity"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort_by query string false "price, max_guests, title or created_at"
// @Param sort_dir query string false "ASC or DESC"
// @Success 200 {object} dto.GetPlacesResponse
// @Failure 500 {object} response.Error
// @Router /api/places [get]
func (handler *Handler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaces")
	defer scope.End()

	query := dto.ListQuery{}
	query.FromRequest(r)

	res, err := handler.service.GetAll(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get places")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetPlaceByID returns a place with every photo.
// @Summary Get a place
// @Tags Place
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} dto.PlaceResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/places/{id} [get]
func (handler *Handler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaceByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get place")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetUserPlaces lists the caller's places.
// @Summary My places
// @Tags Place
// @Produce json
// @Success 200 {array} dto.PlaceResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/user-places [get]
// @Security BearerAuth
func (handler *Handler) GetUserPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserPlaces")
	defer scope.End()

	res, err := handler.service.GetByOwner(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user places")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeletePlace removes one of the caller's places. Ownership comes from the session only.
// @Summary Delete a place
// @Tags Place
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.Message "Place deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/user-places/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePlace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete place")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Place deleted successfully")
}
