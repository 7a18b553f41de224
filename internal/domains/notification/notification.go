package notification

//go:generate go run go.uber.org/mock/mockgen -source=./notification.go -destination=./mocks/notification_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/kafka"
	"plek/infras/otel"
	"plek/shared/constant"
	"plek/shared/timezone"
)

// Event types consumed by the external notification/email collaborator.
// The collaborator owns templating and delivery; this service only emits
// structured payloads.
const (
	EventPaymentReceipt        = "payment.receipt"
	EventPaymentFailed         = "payment.failed"
	EventRefundGuaranteed      = "refund.guaranteed"
	EventRefundDiscretionary   = "refund.discretionary"
	EventRefundAttemptFailed   = "refund.attempt_failed"
	EventBookingCancelled      = "booking.cancelled"
	EventBookingApprovalNeeded = "booking.approval_needed"
	EventBookingReminder       = "booking.reminder"
	EventReviewRequest         = "review.request"
)

type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	PropertyID string    `json:"property_id"`
	RenterID   string    `json:"renter_id"`
	HostID     string    `json:"host_id"`
	Amount     string    `json:"amount,omitempty"`
	Currency   string    `json:"currency,omitempty"`
	StartAt    time.Time `json:"start_at,omitempty"`
	EndAt      time.Time `json:"end_at,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Dispatcher is the fire-and-forget outbound notification queue. Enqueue
// must only be called after the state-changing transaction has committed;
// delivery failures are logged and never propagate into booking or payment
// state.
type Dispatcher interface {
	Enqueue(event Event)
	Run(ctx context.Context)
}

type dispatcherImpl struct {
	cfg    *config.Config
	client kafka.Client
	otel   otel.Otel
	queue  chan Event
}

const queueSize = 256

func NewDispatcher(cfg *config.Config, client kafka.Client, otel otel.Otel) Dispatcher {
	return &dispatcherImpl{
		cfg:    cfg,
		client: client,
		otel:   otel,
		queue:  make(chan Event, queueSize),
	}
}

func (d *dispatcherImpl) Enqueue(event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	select {
	case d.queue <- event:
	default:
		// A full queue must never block a request path. The periodic
		// notifications job re-derives reminders and review requests, so a
		// dropped event here is recoverable.
		log.Warn().Str("type", event.Type).Str("bookingID", event.BookingID).Msg("notification queue full, dropping event")
	}
}

// Run drains the queue and publishes each event to the notifications topic.
// It blocks until ctx is done.
func (d *dispatcherImpl) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Notification dispatcher stopped.")

			return
		case event := <-d.queue:
			d.publish(ctx, event)
		}
	}
}

func (d *dispatcherImpl) publish(ctx context.Context, event Event) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".notification.publish")
	defer scope.End()

	scope.SetAttribute("notification.type", event.Type)

	err := d.client.SendMessages(ctx, d.cfg.Kafka.Topics.Notifications, kafka.Message{
		Key:   event.BookingID,
		Value: event,
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", event.Type).Str("bookingID", event.BookingID).Msg("failed to publish notification event")
	}
}
