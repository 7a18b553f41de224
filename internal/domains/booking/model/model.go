package model

import (
	"time"

	"github.com/shopspring/decimal"

	"plek/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldPropertyID        = "property_id"
	FieldRenterID          = "renter_id"
	FieldHostID            = "host_id"
	FieldStartAt           = "start_at"
	FieldEndAt             = "end_at"
	FieldTotalHours        = "total_hours"
	FieldBaseAmount        = "base_amount"
	FieldServiceFee        = "service_fee"
	FieldHostFee           = "host_fee"
	FieldTotalAmount       = "total_amount"
	FieldStatus            = "status"
	FieldPaymentStatus     = "payment_status"
	FieldPaymentRef        = "payment_ref"
	FieldReminderSent      = "reminder_sent"
	FieldReviewRequestSent = "review_request_sent"
)

// Booking statuses. A cancellation is a status change, never a deletion.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Payment statuses move forward only: pending -> completed -> refunded.
// Failed is terminal for the attempt and leaves the booking for manual
// resolution.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Booking reserves a property for the half-open interval [StartAt, EndAt).
// Amounts are derived by the price calculator at creation time and are the
// single source of truth for everything charged through the gateway.
type Booking struct {
	ID                string          `db:"id"`
	PropertyID        string          `db:"property_id"`
	RenterID          string          `db:"renter_id"`
	HostID            string          `db:"host_id"`
	StartAt           time.Time       `db:"start_at"`
	EndAt             time.Time       `db:"end_at"`
	TotalHours        decimal.Decimal `db:"total_hours"`
	BaseAmount        decimal.Decimal `db:"base_amount"`
	ServiceFee        decimal.Decimal `db:"service_fee"`
	HostFee           decimal.Decimal `db:"host_fee"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	Status            string          `db:"status"`
	PaymentStatus     string          `db:"payment_status"`
	PaymentRef        string          `db:"payment_ref"`
	ReminderSent      bool            `db:"reminder_sent"`
	ReviewRequestSent bool            `db:"review_request_sent"`
	model.Metadata
}

// Overlaps reports whether the booking interval conflicts with [start, end).
// Touching endpoints do not conflict, so back-to-back bookings are allowed.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && start.Before(b.EndAt)
}

// Blocking reports whether the booking occupies its interval for conflict
// checking purposes.
func (b *Booking) Blocking() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
