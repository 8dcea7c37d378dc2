package location

import (
	"net/http"
	"roomform/infras/otel"
	"roomform/internal/domains/location"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/shared/constant"
	"roomform/shared/failure"
	"roomform/transport/http/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/locations", func(routerGroup chi.Router) {
		routerGroup.Get("/buildings", handler.GetBuildings)
		routerGroup.Get("/buildings/{building}/rooms", handler.GetRooms)
	})
}

// GetBuildings lists the buildings a reservation can be placed in.
// @Summary List buildings
// @Tags Location
// @Produce json
// @Success 200 {object} response.Data[dto.LocationsResponse]
// @Router /v1/locations/buildings [get]
func (handler *Handler) GetBuildings(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBuildings")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, dto.LocationsResponse{Buildings: location.Buildings()})
}

// GetRooms lists the rooms of a building.
// @Summary List rooms of a building
// @Tags Location
// @Produce json
// @Param building path string true "Building name"
// @Success 200 {object} response.Data[dto.RoomsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/locations/buildings/{building}/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	_, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	building := chi.URLParam(request, constant.RequestParamBuilding)
	scope.SetAttribute("location.building", building)

	if !location.IsBuilding(building) {
		err := failure.NotFound("building not found")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.RoomsResponse{
		Building: building,
		Rooms:    location.RoomsFor(building),
	})
}
