package jobs

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/otel"
	bookingService "plek/internal/domains/booking/service"
	revenueService "plek/internal/domains/revenue/service"
	"plek/shared/constant"
	"plek/shared/failure"
	"plek/transport/http/response"
)

// Handler exposes the periodic jobs to the scheduler (cron, or a cloud
// scheduler hitting the endpoints). Each job is safe to invoke repeatedly.
type Handler struct {
	bookings bookingService.Booking
	revenue  revenueService.Revenue
	cfg      *config.Config
	otel     otel.Otel
}

func New(bookings bookingService.Booking, revenue revenueService.Revenue, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		bookings: bookings,
		revenue:  revenue,
		cfg:      cfg,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/jobs", func(routerGroup chi.Router) {
		routerGroup.Use(handler.requireJobSecret)
		routerGroup.Post("/notifications", handler.RunNotifications)
		routerGroup.Post("/revenue-reconcile", handler.RunRevenueReconcile)
	})
}

func (handler *Handler) requireJobSecret(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get(constant.RequestHeaderAuthorization), "Bearer ")

		if handler.cfg.App.JobSecret == constant.Empty ||
			subtle.ConstantTimeCompare([]byte(token), []byte(handler.cfg.App.JobSecret)) != 1 {
			response.WithError(w, failure.Unauthorized("invalid job credentials"))

			return
		}

		next.ServeHTTP(w, r)
	})
}

// RunNotifications sweeps bookings owed reminders and review requests.
// @Summary Run the notifications job
// @Description Enqueue reminder and review-request notifications for due bookings.
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Message "Job completed"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs/notifications [post]
// @Security BearerAuth
func (handler *Handler) RunNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunNotifications")
	defer scope.End()

	sent, err := handler.bookings.SendDueNotifications(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("notifications job failed")

		response.WithError(w, err)

		return
	}

	log.Info().Int("sent", sent).Msg("notifications job completed")

	response.WithMessage(w, http.StatusOK, "Notifications job completed")
}

// RunRevenueReconcile re-derives cumulative revenue from the gateway.
// @Summary Run the revenue reconciliation job
// @Description Rebuild cumulative platform revenue from the gateway's charge records.
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Data[model.TaxConfig] "Reconciled tax config"
// @Failure 401 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/jobs/revenue-reconcile [post]
// @Security BearerAuth
func (handler *Handler) RunRevenueReconcile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunRevenueReconcile")
	defer scope.End()

	cfg, err := handler.revenue.Reconcile(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("revenue reconciliation job failed")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, cfg)
}
