package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"plek/internal/domains/booking/model"
	"plek/shared/failure"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusCancelled, false},
		{model.StatusCompleted, model.StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, canTransition(tt.from, tt.to))
		})
	}
}

func TestCheckTransition_InvalidReturnsConflict(t *testing.T) {
	err := checkTransition(model.StatusCompleted, model.StatusCancelled)

	assert.Error(t, err)
	assert.True(t, failure.IsCode(err, http.StatusConflict))
}

func TestStatusAfterCapture(t *testing.T) {
	assert.Equal(t, model.StatusPending, statusAfterCapture(true))
	assert.Equal(t, model.StatusConfirmed, statusAfterCapture(false))
}

func TestPaymentStatusForward(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{model.PaymentStatusPending, model.PaymentStatusCompleted, true},
		{model.PaymentStatusPending, model.PaymentStatusFailed, true},
		{model.PaymentStatusCompleted, model.PaymentStatusRefunded, true},
		{model.PaymentStatusCompleted, model.PaymentStatusPending, false},
		{model.PaymentStatusRefunded, model.PaymentStatusCompleted, false},
		{model.PaymentStatusFailed, model.PaymentStatusCompleted, true},
		{model.PaymentStatusFailed, model.PaymentStatusRefunded, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"_to_"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, paymentStatusForward(tt.from, tt.to))
		})
	}
}
