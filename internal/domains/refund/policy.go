package refund

//go:generate go run go.uber.org/mock/mockgen -source=./policy.go -destination=./mocks/policy_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/gateway"
	"plek/infras/otel"
	bookingModel "plek/internal/domains/booking/model"
	"plek/internal/domains/pricing"
	"plek/shared/constant"
	"plek/shared/timezone"
)

// Outcome describes what the policy decided for a cancellation.
type Outcome struct {
	// Refunded is true when a refund request was accepted by the gateway.
	Refunded bool
	// Automatic is true when the policy called for an automatic refund,
	// whether or not the gateway accepted it.
	Automatic bool
}

// Engine applies the cancellation refund policy. A refund failure is logged
// and surfaced to operators but never blocks or reverts the cancellation.
type Engine interface {
	HandleCancellation(ctx context.Context, booking bookingModel.Booking) Outcome
}

type engineImpl struct {
	cfg     *config.Config
	gateway gateway.Gateway
	otel    otel.Otel
}

func New(cfg *config.Config, gw gateway.Gateway, otel otel.Otel) Engine {
	return &engineImpl{
		cfg:     cfg,
		gateway: gw,
		otel:    otel,
	}
}

// Eligible reports whether cancelling now qualifies for an automatic full
// refund: the captured booking starts at least the free-cancellation window
// away.
func (e *engineImpl) eligible(booking bookingModel.Booking, now time.Time) bool {
	if booking.PaymentStatus != bookingModel.PaymentStatusCompleted {
		return false
	}

	if booking.Status == bookingModel.StatusCompleted {
		return false
	}

	window := time.Duration(e.cfg.Billing.FreeCancelHours) * time.Hour

	return booking.StartAt.Sub(now) >= window
}

func (e *engineImpl) HandleCancellation(ctx context.Context, booking bookingModel.Booking) Outcome {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".refund.HandleCancellation")
	defer scope.End()

	if booking.PaymentStatus != bookingModel.PaymentStatusCompleted || booking.Status == bookingModel.StatusCompleted {
		return Outcome{}
	}

	if !e.eligible(booking, timezone.Now()) {
		log.Info().
			Str("bookingID", booking.ID).
			Msg("cancellation inside free-cancel window, refund left to host discretion")

		return Outcome{Automatic: false}
	}

	// One bounded attempt; no retry loop. A failed attempt is handled out
	// of band by operators.
	amount := pricing.MinorUnits(booking.TotalAmount)

	refund, err := e.gateway.CreateRefund(ctx, booking.PaymentRef, amount)
	if err != nil {
		scope.TraceError(err)
		log.Error().
			Err(err).
			Str("bookingID", booking.ID).
			Str("paymentRef", booking.PaymentRef).
			Int64("amount", amount).
			Msg("automatic refund attempt failed, needs operator follow-up")

		return Outcome{Automatic: true, Refunded: false}
	}

	log.Info().
		Str("bookingID", booking.ID).
		Str("refundID", refund.ID).
		Int64("amount", amount).
		Msg("automatic refund issued")

	return Outcome{Automatic: true, Refunded: true}
}
