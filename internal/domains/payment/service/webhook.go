package service

//go:generate go run go.uber.org/mock/mockgen -source=./webhook.go -destination=./mocks/webhook_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/gateway"
	"plek/infras/otel"
	"plek/infras/s3"
	bookingService "plek/internal/domains/booking/service"
	"plek/internal/domains/notification"
	"plek/internal/domains/payment/model"
	"plek/internal/domains/payment/model/dto"
	"plek/internal/domains/payment/repository"
	"plek/internal/domains/pricing"
	propertyRepo "plek/internal/domains/property/repository"
	revenueService "plek/internal/domains/revenue/service"
	"plek/shared"
	"plek/shared/constant"
	"plek/shared/failure"
	"plek/shared/timezone"
)

// Gateway event types the reconciler acts on. Anything else is acknowledged
// and ignored.
const (
	eventIntentSucceeded = "payment_intent.succeeded"
	eventIntentFailed    = "payment_intent.payment_failed"
	eventChargeRefunded  = "charge.refunded"
	eventAccountUpdated  = "account.updated"
)

// Webhook reconciles asynchronous gateway notifications with local state.
// Every handler is idempotent: the gateway redelivers events until it sees
// a 2xx, and may deliver them out of order.
type Webhook interface {
	Process(ctx context.Context, payload []byte, signatureHeader string) error
}

type webhookImpl struct {
	repo         repository.Payment
	bookingSvc   bookingService.Booking
	propertyRepo propertyRepo.Property
	revenueSvc   revenueService.Revenue
	dispatcher   notification.Dispatcher
	s3           s3.S3
	cfg          *config.Config
	otel         otel.Otel
}

func NewWebhook(
	repo repository.Payment,
	bookingSvc bookingService.Booking,
	properties propertyRepo.Property,
	revenueSvc revenueService.Revenue,
	dispatcher notification.Dispatcher,
	s3Client s3.S3,
	cfg *config.Config,
	otel otel.Otel,
) Webhook {
	return &webhookImpl{
		repo:         repo,
		bookingSvc:   bookingSvc,
		propertyRepo: properties,
		revenueSvc:   revenueSvc,
		dispatcher:   dispatcher,
		s3:           s3Client,
		cfg:          cfg,
		otel:         otel,
	}
}

// Process verifies, archives and applies one gateway event. Signature
// verification runs against the raw payload before anything is parsed.
func (w *webhookImpl) Process(ctx context.Context, payload []byte, signatureHeader string) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".webhook.Process")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = gateway.VerifySignature(payload, signatureHeader, w.cfg.External.Gateway.WebhookSecret, timezone.Now()); err != nil {
		log.Warn().Err(err).Msg("rejected webhook with bad signature")

		return failure.Unauthorized("invalid webhook signature") // nolint:wrapcheck
	}

	var event dto.WebhookEvent
	if err = json.Unmarshal(payload, &event); err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("malformed webhook payload: %v", err)) // nolint:wrapcheck
	}

	scope.SetAttribute("webhook.event_id", event.ID)
	scope.SetAttribute("webhook.type", event.Type)

	w.archive(ctx, event.ID, payload)

	switch event.Type {
	case eventIntentSucceeded:
		return w.handleIntentSucceeded(ctx, event)
	case eventIntentFailed:
		return w.handleIntentFailed(ctx, event)
	case eventChargeRefunded:
		return w.handleChargeRefunded(ctx, event)
	case eventAccountUpdated:
		return w.handleAccountUpdated(ctx, event)
	default:
		log.Info().Str("type", event.Type).Str("eventID", event.ID).Msg("ignoring unhandled webhook event type")

		return nil
	}
}

// handleIntentSucceeded is the authoritative capture path. The revenue
// ledger gates on the event id, so the platform total is credited at most
// once no matter how many times the event is delivered.
func (w *webhookImpl) handleIntentSucceeded(ctx context.Context, event dto.WebhookEvent) error {
	var intent dto.WebhookIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("malformed payment_intent object: %v", err)) // nolint:wrapcheck
	}

	bookingID := intent.Metadata[gateway.MetadataBookingID]
	if bookingID == constant.Empty {
		log.Warn().Str("eventID", event.ID).Str("intentRef", intent.ID).Msg("intent without booking metadata, skipping")

		return nil
	}

	applied, err := w.revenueSvc.ApplyEvent(ctx, event.ID, intent.LatestCharge, intent.Amount)
	if err != nil {
		return err
	}

	if !applied {
		return nil
	}

	booking, err := w.bookingSvc.FinalizeCapture(ctx, bookingID, intent.ID)
	if err != nil {
		if failure.IsCode(err, http.StatusConflict) {
			// The interval was taken while the renter was paying. The money
			// is captured but the booking cannot be honored; operators
			// resolve via refund.
			log.Error().Str("bookingID", bookingID).Str("eventID", event.ID).Msg("capture raced a conflicting booking, needs operator follow-up")

			return nil
		}

		// The ledger row for this event is already committed, so the
		// gateway's retry will be a no-op. The booking has to be finalized
		// by an operator.
		log.Error().Err(err).Str("bookingID", bookingID).Str("eventID", event.ID).Msg("revenue credited but booking finalization failed, needs operator follow-up")

		return err
	}

	if recErr := w.repo.RecordCapture(ctx, model.PaymentRecord{
		ID:        event.ID,
		BookingID: booking.ID,
		Amount:    pricing.FromMinorUnits(intent.Amount),
		Currency:  intent.Currency,
		IntentRef: intent.ID,
		ChargeRef: intent.LatestCharge,
		Status:    model.StatusCaptured,
	}); recErr != nil {
		log.Error().Err(recErr).Str("bookingID", booking.ID).Msg("failed to record payment capture from webhook")
	}

	w.dispatcher.Enqueue(notification.Event{
		Type:       notification.EventPaymentReceipt,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		RenterID:   booking.RenterID,
		HostID:     booking.HostID,
		Amount:     booking.TotalAmount.StringFixed(2),
		Currency:   w.cfg.Billing.Currency,
		StartAt:    booking.StartAt,
		EndAt:      booking.EndAt,
	})

	return nil
}

func (w *webhookImpl) handleIntentFailed(ctx context.Context, event dto.WebhookEvent) error {
	var intent dto.WebhookIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("malformed payment_intent object: %v", err)) // nolint:wrapcheck
	}

	bookingID := intent.Metadata[gateway.MetadataBookingID]
	if bookingID == constant.Empty {
		return nil
	}

	if err := w.bookingSvc.MarkPaymentFailed(ctx, bookingID); err != nil {
		if failure.IsCode(err, http.StatusConflict) || failure.IsCode(err, http.StatusNotFound) {
			// A late failure event after a successful retry, or for a
			// booking that no longer exists. Nothing to roll back.
			return nil
		}

		return err
	}

	w.dispatcher.Enqueue(notification.Event{
		Type:      notification.EventPaymentFailed,
		BookingID: bookingID,
		RenterID:  intent.Metadata[gateway.MetadataRenterID],
		HostID:    intent.Metadata[gateway.MetadataHostID],
	})

	return nil
}

// handleChargeRefunded debits revenue by the portion of the charge refunded
// since the last applied refund event. AmountRefunded is cumulative on the
// gateway side, so the delta is derived against the local payment record.
func (w *webhookImpl) handleChargeRefunded(ctx context.Context, event dto.WebhookEvent) error {
	var charge dto.WebhookCharge
	if err := json.Unmarshal(event.Data.Object, &charge); err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("malformed charge object: %v", err)) // nolint:wrapcheck
	}

	record, err := w.repo.Get(ctx, shared.FilterByID(charge.PaymentIntent, model.FieldIntentRef, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to load payment record for refund: %w", err)
	}

	if record.ID == constant.Empty {
		log.Warn().Str("eventID", event.ID).Str("intentRef", charge.PaymentIntent).Msg("refund for unknown payment record, skipping")

		return nil
	}

	delta := charge.AmountRefunded - pricing.MinorUnits(record.RefundedAmount)
	if delta <= 0 {
		// An out-of-order or duplicate refund event; the cumulative amount
		// has already been accounted for.
		return nil
	}

	applied, err := w.revenueSvc.ApplyEvent(ctx, event.ID, charge.ID, -delta)
	if err != nil {
		return err
	}

	if !applied {
		return nil
	}

	if err = w.repo.ApplyRefund(ctx, charge.PaymentIntent, charge.ID, pricing.FromMinorUnits(charge.AmountRefunded)); err != nil {
		return err
	}

	if err = w.bookingSvc.MarkRefunded(ctx, record.BookingID); err != nil && !failure.IsCode(err, http.StatusConflict) {
		log.Error().Err(err).Str("bookingID", record.BookingID).Msg("refund recorded but booking not marked refunded")
	}

	return nil
}

func (w *webhookImpl) handleAccountUpdated(ctx context.Context, event dto.WebhookEvent) error {
	var account dto.WebhookAccount
	if err := json.Unmarshal(event.Data.Object, &account); err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("malformed account object: %v", err)) // nolint:wrapcheck
	}

	if account.ID == constant.Empty {
		return nil
	}

	return w.propertyRepo.SetPayoutReady(ctx, account.ID, account.PayoutsEnabled)
}

// archive stores the raw event body for audit and replay. Archival is best
// effort and off the request path.
func (w *webhookImpl) archive(ctx context.Context, eventID string, payload []byte) {
	go func() {
		c := context.WithoutCancel(ctx)

		directory := "webhooks/" + timezone.Now().Format("2006-01-02")

		if _, err := w.s3.UploadFileBytes(c, w.cfg.External.S3.WebhookArchive, directory, eventID+".json", constant.ContentTypeJSON, payload); err != nil {
			log.Error().Err(err).Str("eventID", eventID).Msg("failed to archive webhook event")
		}
	}()
}
