package service

import (
	"plek/internal/domains/booking/model"
	"plek/shared/failure"
)

// transitions is the booking state machine: pending -> confirmed ->
// completed, with cancellation allowed from any non-terminal state.
// Completed and cancelled are terminal.
var transitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCompleted, model.StatusCancelled},
	model.StatusCancelled: {},
	model.StatusCompleted: {},
}

func canTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

func checkTransition(from, to string) error {
	if !canTransition(from, to) {
		return failure.InvalidTransition(from, to) //nolint:wrapcheck
	}

	return nil
}

// statusAfterCapture is the booking status after a successful payment
// capture: properties that require host approval keep the booking pending,
// awaiting the host's decision; everything else confirms immediately.
func statusAfterCapture(requireApproval bool) string {
	if requireApproval {
		return model.StatusPending
	}

	return model.StatusConfirmed
}

// paymentStatusForward guards the forward-only payment status order:
// pending -> completed -> refunded, with failed terminal for the attempt.
var paymentOrder = map[string]int{
	model.PaymentStatusPending:   0,
	model.PaymentStatusFailed:    1,
	model.PaymentStatusCompleted: 2,
	model.PaymentStatusRefunded:  3,
}

func paymentStatusForward(from, to string) bool {
	if from == model.PaymentStatusFailed && to != model.PaymentStatusCompleted {
		// A failed attempt can only be superseded by a later successful
		// capture of the same intent.
		return to == model.PaymentStatusFailed
	}

	return paymentOrder[to] > paymentOrder[from]
}
