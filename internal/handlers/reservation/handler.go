package reservation

import (
	"net/http"
	"roomform/infras/otel"
	"roomform/internal/domains/reservation/model/dto"
	"roomform/internal/domains/reservation/service"
	"roomform/shared/constant"
	"roomform/shared/validator"
	"roomform/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Form
	otel    otel.Otel
}

func New(service service.Form, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/forms", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.OpenForm)
		routerGroup.Get("/{id}", handler.GetForm)
		routerGroup.Patch("/{id}/fields", handler.SetField)
		routerGroup.Post("/{id}/reset", handler.ResetForm)
		routerGroup.Post("/{id}/submit", handler.SubmitForm)
		routerGroup.Delete("/{id}", handler.CloseForm)
	})
}

// OpenForm starts a new reservation form session.
// @Summary Open a reservation form
// @Description Create a form session holding the default values.
// @Tags Form
// @Produce json
// @Success 201 {object} response.Data[dto.FormState]
// @Failure 409 {object} response.Error
// @Router /v1/forms [post]
func (handler *Handler) OpenForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OpenForm")
	defer scope.End()

	res, err := handler.service.Open(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to open form")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetForm returns the current state of a form session.
// @Summary Get a reservation form
// @Description Values, per-field presentation state and submission status.
// @Tags Form
// @Produce json
// @Param id path string true "Form session ID"
// @Success 200 {object} response.Data[dto.FormState]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/forms/{id} [get]
func (handler *Handler) GetForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetForm")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.State(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session", id).Msg("failed to get form")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SetField changes one field of a form session.
// @Summary Set a form field
// @Description Write a value and apply its dependent fields. Dates are RFC 3339 strings; null or "" clears.
// @Tags Form
// @Accept json
// @Produce json
// @Param id path string true "Form session ID"
// @Param request body dto.SetFieldRequest true "Field and value"
// @Success 200 {object} response.Data[dto.FormState]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/forms/{id}/fields [patch]
func (handler *Handler) SetField(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetField")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	var req dto.SetFieldRequest
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.SetField(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session", id).Str("field", req.Field).Msg("failed to set field")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ResetForm clears every field of a form session.
// @Summary Reset a reservation form
// @Tags Form
// @Produce json
// @Param id path string true "Form session ID"
// @Success 200 {object} response.Data[dto.FormState]
// @Failure 404 {object} response.Error
// @Router /v1/forms/{id}/reset [post]
func (handler *Handler) ResetForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResetForm")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Reset(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session", id).Msg("failed to reset form")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SubmitForm validates a form session and submits the reservation.
// @Summary Submit a reservation form
// @Description Validation failures carry one error per field.
// @Tags Form
// @Produce json
// @Param id path string true "Form session ID"
// @Success 201 {object} response.Data[dto.SubmissionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/forms/{id}/submit [post]
func (handler *Handler) SubmitForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitForm")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	res, err := handler.service.Submit(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session", id).Msg("failed to submit form")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("reservation submitted", map[string]any{
		"reservation.building": res.Reservation.Building,
		"reservation.room":     res.Reservation.Room,
		"reservation.type":     res.Reservation.Type,
	})

	response.WithJSON(writer, http.StatusCreated, res)
}

// CloseForm discards a form session.
// @Summary Close a reservation form
// @Tags Form
// @Produce json
// @Param id path string true "Form session ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/forms/{id} [delete]
func (handler *Handler) CloseForm(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CloseForm")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Close(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("session", id).Msg("failed to close form")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Form closed successfully")
}
