package dto

import (
	"encoding/json"

	bookingModel "plek/internal/domains/booking/model"
)

type CreateIntentResponse struct {
	BookingID    string `json:"booking_id"`
	IntentRef    string `json:"intent_ref"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type ConfirmPaymentResponse struct {
	BookingID     string `json:"booking_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

func (c *ConfirmPaymentResponse) FromModel(booking bookingModel.Booking) {
	c.BookingID = booking.ID
	c.Status = booking.Status
	c.PaymentStatus = booking.PaymentStatus
}

// WebhookEvent is the envelope the gateway posts to the webhook endpoint.
// Data.Object is kept raw; its shape depends on the event type.
type WebhookEvent struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Created int64  `json:"created"`
	Data    struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// WebhookIntent is the payment_intent object carried by intent events.
type WebhookIntent struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	LatestCharge string            `json:"latest_charge"`
	Metadata     map[string]string `json:"metadata"`
}

// WebhookCharge is the charge object carried by charge.refunded events.
// AmountRefunded is cumulative across all refunds of the charge.
type WebhookCharge struct {
	ID             string `json:"id"`
	PaymentIntent  string `json:"payment_intent"`
	Amount         int64  `json:"amount"`
	AmountRefunded int64  `json:"amount_refunded"`
	Currency       string `json:"currency"`
}

// WebhookAccount is the connected-account object carried by account.updated
// events.
type WebhookAccount struct {
	ID             string `json:"id"`
	PayoutsEnabled bool   `json:"payouts_enabled"`
}
