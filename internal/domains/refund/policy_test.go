package refund_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"plek/config"
	"plek/infras/gateway"
	gatewayMocks "plek/infras/gateway/mocks"
	"plek/infras/otel/mocks"
	bookingModel "plek/internal/domains/booking/model"
	"plek/internal/domains/refund"
	"plek/shared/timezone"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Billing.FreeCancelHours = 24

	return cfg
}

func paidBooking(startsIn time.Duration) bookingModel.Booking {
	return bookingModel.Booking{
		ID:            "booking-1",
		PaymentRef:    "pi_123",
		Status:        bookingModel.StatusConfirmed,
		PaymentStatus: bookingModel.PaymentStatusCompleted,
		TotalAmount:   decimal.RequireFromString("31.50"),
		StartAt:       timezone.Now().Add(startsIn),
	}
}

func TestHandleCancellation_AutomaticRefund(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	engine := refund.New(newTestConfig(), mockGateway, mockOtel)

	booking := paidBooking(48 * time.Hour)

	mockGateway.EXPECT().
		CreateRefund(gomock.Any(), "pi_123", int64(3150)).
		Return(gateway.Refund{ID: "re_1", Status: "succeeded", Amount: 3150}, nil)

	outcome := engine.HandleCancellation(context.Background(), booking)

	assert.True(t, outcome.Automatic)
	assert.True(t, outcome.Refunded)
}

func TestHandleCancellation_InsideFreeCancelWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	engine := refund.New(newTestConfig(), mockGateway, mockOtel)

	// Starts in two hours; no gateway call expected.
	outcome := engine.HandleCancellation(context.Background(), paidBooking(2*time.Hour))

	assert.False(t, outcome.Automatic)
	assert.False(t, outcome.Refunded)
}

func TestHandleCancellation_UnpaidBooking(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	engine := refund.New(newTestConfig(), mockGateway, mockOtel)

	booking := paidBooking(48 * time.Hour)
	booking.PaymentStatus = bookingModel.PaymentStatusPending

	outcome := engine.HandleCancellation(context.Background(), booking)

	assert.False(t, outcome.Automatic)
	assert.False(t, outcome.Refunded)
}

func TestHandleCancellation_GatewayFailureDoesNotBlock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGateway := gatewayMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	engine := refund.New(newTestConfig(), mockGateway, mockOtel)

	mockGateway.EXPECT().
		CreateRefund(gomock.Any(), "pi_123", int64(3150)).
		Return(gateway.Refund{}, errors.New("gateway unavailable"))

	outcome := engine.HandleCancellation(context.Background(), paidBooking(48*time.Hour))

	assert.True(t, outcome.Automatic)
	assert.False(t, outcome.Refunded)
}
