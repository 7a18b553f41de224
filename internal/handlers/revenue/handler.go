package revenue

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"plek/infras/otel"
	"plek/internal/domains/revenue/service"
	"plek/shared/constant"
	"plek/transport/http/response"
)

type Handler struct {
	service service.Revenue
	otel    otel.Otel
}

func New(service service.Revenue, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/revenue/status", handler.GetStatus)
}

// GetStatus reports cumulative platform revenue and the tax latch state.
// @Summary Get revenue status
// @Description Retrieve cumulative platform revenue, the tax threshold and whether tax collection is active.
// @Tags Revenue
// @Produce json
// @Success 200 {object} response.Data[model.TaxConfig] "Revenue status"
// @Failure 500 {object} response.Error
// @Router /v1/revenue/status [get]
// @Security BearerAuth
func (handler *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatus")
	defer scope.End()

	status, err := handler.service.Status(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get revenue status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, status)
}
