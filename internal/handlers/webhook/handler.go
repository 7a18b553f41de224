package webhook

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"plek/infras/otel"
	paymentService "plek/internal/domains/payment/service"
	"plek/shared/constant"
	"plek/shared/failure"
	"plek/transport/http/response"
)

type Handler struct {
	webhook paymentService.Webhook
	otel    otel.Otel
}

func New(webhook paymentService.Webhook, otel otel.Otel) Handler {
	return Handler{
		webhook: webhook,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/webhooks/gateway", handler.HandleGatewayEvent)
}

// HandleGatewayEvent receives asynchronous payment gateway notifications.
// The body is read raw before any parsing; the signature is computed over
// the exact bytes the gateway sent.
// @Summary Receive a gateway webhook event
// @Description Verify and reconcile an asynchronous payment gateway notification.
// @Tags Webhook
// @Accept json
// @Produce json
// @Param Plek-Signature header string true "Webhook signature"
// @Success 200 {object} response.Message "Event processed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/webhooks/gateway [post]
func (handler *Handler) HandleGatewayEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleGatewayEvent")
	defer scope.End()

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		response.WithError(w, failure.BadRequestFromString("failed to read request body"))

		return
	}

	signature := r.Header.Get(constant.RequestHeaderWebhookSignature)

	if err := handler.webhook.Process(ctx, payload, signature); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to process webhook event")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Event processed")
}
