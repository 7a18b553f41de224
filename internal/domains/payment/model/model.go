package model

import (
	"github.com/shopspring/decimal"

	"plek/shared/model"
)

const (
	StatusCaptured = "captured"
	StatusRefunded = "refunded"
)

// PaymentRecord is the local audit record of a captured payment. One row per
// booking, keyed to the gateway intent; RefundedAmount accumulates as the
// gateway reports refunds.
type PaymentRecord struct {
	ID             string          `db:"id"              json:"id"`
	BookingID      string          `db:"booking_id"      json:"booking_id"`
	Amount         decimal.Decimal `db:"amount"          json:"amount"`
	Currency       string          `db:"currency"        json:"currency"`
	IntentRef      string          `db:"intent_ref"      json:"intent_ref"`
	ChargeRef      string          `db:"charge_ref"      json:"charge_ref"`
	Status         string          `db:"status"          json:"status"`
	RefundRef      string          `db:"refund_ref"      json:"refund_ref"`
	RefundedAmount decimal.Decimal `db:"refunded_amount" json:"refunded_amount"`
	model.Metadata
}

const (
	EntityName = "payment"
	TableName  = "payment_records"
)

const (
	FieldID             = "id"
	FieldBookingID      = "booking_id"
	FieldIntentRef      = "intent_ref"
	FieldChargeRef      = "charge_ref"
	FieldStatus         = "status"
	FieldRefundRef      = "refund_ref"
	FieldRefundedAmount = "refunded_amount"
)
