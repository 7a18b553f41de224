package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/gateway"
	"plek/infras/otel"
	bookingModel "plek/internal/domains/booking/model"
	bookingRepo "plek/internal/domains/booking/repository"
	bookingService "plek/internal/domains/booking/service"
	"plek/internal/domains/notification"
	"plek/internal/domains/payment/model"
	"plek/internal/domains/payment/model/dto"
	"plek/internal/domains/payment/repository"
	"plek/internal/domains/pricing"
	propertyModel "plek/internal/domains/property/model"
	propertyRepo "plek/internal/domains/property/repository"
	"plek/shared"
	"plek/shared/constant"
	"plek/shared/failure"
	sharedModel "plek/shared/model"
	"plek/shared/timezone"
)

type Payment interface {
	CreateIntent(ctx context.Context, bookingID string) (dto.CreateIntentResponse, error)
	ConfirmPayment(ctx context.Context, bookingID string) (dto.ConfirmPaymentResponse, error)
}

type serviceImpl struct {
	repo         repository.Payment
	bookings     bookingRepo.Booking
	bookingSvc   bookingService.Booking
	propertyRepo propertyRepo.Property
	gateway      gateway.Gateway
	dispatcher   notification.Dispatcher
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Payment,
	bookings bookingRepo.Booking,
	bookingSvc bookingService.Booking,
	properties propertyRepo.Property,
	gw gateway.Gateway,
	dispatcher notification.Dispatcher,
	cfg *config.Config,
	otel otel.Otel,
) Payment {
	return &serviceImpl{
		repo:         repo,
		bookings:     bookings,
		bookingSvc:   bookingSvc,
		propertyRepo: properties,
		gateway:      gw,
		dispatcher:   dispatcher,
		cfg:          cfg,
		otel:         otel,
	}
}

// CreateIntent opens a payment intent for a pending booking. Amounts come
// from the stored booking row, never from the request; the intent metadata
// mirrors them for audit only.
func (s *serviceImpl) CreateIntent(ctx context.Context, bookingID string) (res dto.CreateIntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if booking.RenterID != callerID {
		return res, failure.Forbidden("only the renter can pay for a booking") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusPending {
		return res, failure.BadRequestFromString("booking is not awaiting payment") // nolint:wrapcheck
	}

	if booking.PaymentStatus == bookingModel.PaymentStatusCompleted {
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	property, err := s.loadProperty(ctx, booking.PropertyID)
	if err != nil {
		return res, err
	}

	if !property.PayoutReady || property.PayoutAccountID == constant.Empty {
		return res, failure.BadRequestFromString("host payout account is not ready to receive funds") // nolint:wrapcheck
	}

	// A booking that already holds an open intent reuses it instead of
	// opening a second one.
	if booking.PaymentRef != constant.Empty {
		intent, getErr := s.gateway.GetIntent(ctx, booking.PaymentRef)
		if getErr == nil && intent.Status != gateway.IntentStatusSucceeded {
			res = dto.CreateIntentResponse{
				BookingID:    booking.ID,
				IntentRef:    intent.ID,
				ClientSecret: intent.ClientSecret,
				Amount:       intent.Amount,
				Currency:     intent.Currency,
			}

			return res, nil
		}
	}

	intent, err := s.gateway.CreateIntent(ctx, gateway.CreateIntentRequest{
		Amount:             pricing.MinorUnits(booking.TotalAmount),
		Currency:           s.cfg.Billing.Currency,
		ApplicationFee:     pricing.MinorUnits(booking.ServiceFee.Add(booking.HostFee)),
		DestinationAccount: property.PayoutAccountID,
		Metadata: map[string]string{
			gateway.MetadataBookingID:  booking.ID,
			gateway.MetadataRenterID:   booking.RenterID,
			gateway.MetadataHostID:     booking.HostID,
			gateway.MetadataPropertyID: booking.PropertyID,
			gateway.MetadataBaseAmount: booking.BaseAmount.StringFixed(2),
			gateway.MetadataBookerFee:  booking.ServiceFee.StringFixed(2),
			gateway.MetadataHostFee:    booking.HostFee.StringFixed(2),
		},
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to create payment intent")

		return res, err
	}

	updated := map[string]any{
		bookingModel.FieldPaymentRef: intent.ID,
		constant.FieldModifiedAt:     timezone.Now(),
		constant.FieldModifiedBy:     callerID,
	}

	if err = s.bookings.Update(ctx, updated, shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to attach payment intent to booking")

		return res, fmt.Errorf("failed to attach payment intent to booking: %w", err)
	}

	res = dto.CreateIntentResponse{
		BookingID:    booking.ID,
		IntentRef:    intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.Amount,
		Currency:     intent.Currency,
	}

	return res, nil
}

// ConfirmPayment re-verifies the intent with the gateway and finalizes the
// booking. The client's word is never trusted: status, ownership and amount
// all come from the gateway's record, and the amount must equal the stored
// booking total exactly.
func (s *serviceImpl) ConfirmPayment(ctx context.Context, bookingID string) (res dto.ConfirmPaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.ConfirmPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return res, err
	}

	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if booking.PaymentStatus == bookingModel.PaymentStatusCompleted {
		res.FromModel(booking)

		return res, nil
	}

	if booking.PaymentRef == constant.Empty {
		return res, failure.BadRequestFromString("booking has no payment intent") // nolint:wrapcheck
	}

	intent, err := s.gateway.GetIntent(ctx, booking.PaymentRef)
	if err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to load payment intent")

		return res, err
	}

	if owner := intent.Metadata[gateway.MetadataRenterID]; owner != constant.Empty && owner != callerID {
		return res, failure.Forbidden("payment intent does not belong to the caller") // nolint:wrapcheck
	}

	if intent.Status != gateway.IntentStatusSucceeded {
		return res, failure.BadRequestFromString("payment has not completed at the gateway") // nolint:wrapcheck
	}

	if intent.Amount != pricing.MinorUnits(booking.TotalAmount) {
		log.Error().
			Str("bookingID", booking.ID).
			Int64("intentAmount", intent.Amount).
			Str("bookingTotal", booking.TotalAmount.StringFixed(2)).
			Msg("payment intent amount does not match stored booking total")

		return res, failure.Integrity("payment amount does not match the booking total") // nolint:wrapcheck
	}

	finalized, err := s.bookingSvc.FinalizeCapture(ctx, booking.ID, intent.ID)
	if err != nil {
		return res, err
	}

	if err = s.recordCapture(ctx, finalized, intent); err != nil {
		// The booking is finalized; a failed audit row must not undo that.
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to record payment capture")
	}

	s.dispatcher.Enqueue(notification.Event{
		Type:       notification.EventPaymentReceipt,
		BookingID:  finalized.ID,
		PropertyID: finalized.PropertyID,
		RenterID:   finalized.RenterID,
		HostID:     finalized.HostID,
		Amount:     finalized.TotalAmount.StringFixed(2),
		Currency:   s.cfg.Billing.Currency,
		StartAt:    finalized.StartAt,
		EndAt:      finalized.EndAt,
	})

	res.FromModel(finalized)

	return res, nil
}

func (s *serviceImpl) recordCapture(ctx context.Context, booking bookingModel.Booking, intent gateway.Intent) error {
	return s.repo.RecordCapture(ctx, model.PaymentRecord{
		ID:        uuid.NewString(),
		BookingID: booking.ID,
		Amount:    booking.TotalAmount,
		Currency:  s.cfg.Billing.Currency,
		IntentRef: intent.ID,
		ChargeRef: intent.LatestCharge,
		Status:    model.StatusCaptured,
		Metadata: sharedModel.Metadata{
			CreatedAt: timezone.Now(),
			CreatedBy: booking.RenterID,
		},
	})
}

func (s *serviceImpl) loadBooking(ctx context.Context, id string) (bookingModel.Booking, error) {
	booking, err := s.bookings.Get(ctx, shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) loadProperty(ctx context.Context, id string) (propertyModel.Property, error) {
	property, err := s.propertyRepo.Get(ctx, shared.FilterByID(id, propertyModel.FieldID, propertyModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return property, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return property, failure.NotFound("property not found") // nolint:wrapcheck
	}

	return property, nil
}
