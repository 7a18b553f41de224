package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/otel"
	"plek/internal/domains/booking/model"
	"plek/internal/domains/booking/model/dto"
	"plek/internal/domains/booking/repository"
	"plek/internal/domains/notification"
	"plek/internal/domains/pricing"
	propertyModel "plek/internal/domains/property/model"
	propertyRepo "plek/internal/domains/property/repository"
	"plek/internal/domains/refund"
	"plek/shared"
	"plek/shared/cache"
	"plek/shared/constant"
	gDto "plek/shared/dto"
	"plek/shared/failure"
	"plek/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	CheckAvailability(ctx context.Context, propertyID string, start, end time.Time, excludeID string) (dto.AvailabilityResult, error)
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Approve(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error

	FinalizeCapture(ctx context.Context, bookingID, paymentRef string) (model.Booking, error)
	MarkPaymentFailed(ctx context.Context, bookingID string) error
	MarkRefunded(ctx context.Context, bookingID string) error
	SendDueNotifications(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	propertyRepo propertyRepo.Property
	refundEngine refund.Engine
	dispatcher   notification.Dispatcher
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	properties propertyRepo.Property,
	refundEngine refund.Engine,
	dispatcher notification.Dispatcher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		propertyRepo: properties,
		refundEngine: refundEngine,
		dispatcher:   dispatcher,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Quote prices an interval without reserving anything.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	start, end, err := req.Interval()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	property, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return res, err
	}

	if err = s.validateInterval(property, start, end); err != nil {
		return res, err
	}

	quote, err := pricing.Calculate(property, start, end)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	res.FromQuote(property.ID, start, end, quote)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, propertyID string, start, end time.Time, excludeID string) (res dto.AvailabilityResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	conflicts, err := s.repo.FindOverlapping(ctx, nil, propertyID, start, end, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res.FromConflicts(conflicts)

	return res, nil
}

// Create validates the request, prices the stay and inserts the pending
// booking. The availability check and the insert share one transaction with
// a lock on the property row; without it, two concurrent renters could both
// pass the check and both insert.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	renterID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if renterID == constant.Empty {
		return res, failure.Unauthorized("unauthorized") // nolint:wrapcheck
	}

	start, end, err := req.Interval()
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	property, err := s.loadProperty(ctx, req.PropertyID)
	if err != nil {
		return res, err
	}

	if property.HostID == renterID {
		return res, failure.BadRequestFromString("hosts cannot book their own property") // nolint:wrapcheck
	}

	if err = s.validateInterval(property, start, end); err != nil {
		return res, err
	}

	quote, err := pricing.Calculate(property, start, end)
	if err != nil {
		return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
	}

	booking := req.ToModel(renterID, property.HostID, start, end, quote)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if lockErr := s.repo.LockProperty(ctx, tx, property.ID); lockErr != nil {
			return lockErr
		}

		conflicts, overlapErr := s.repo.FindOverlapping(ctx, tx, property.ID, start, end, constant.Empty)
		if overlapErr != nil {
			return overlapErr
		}

		if len(conflicts) > 0 {
			return failure.Conflict("property is not available for the requested time window") // nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		log.Error().Err(err).Str("propertyID", property.ID).Msg("failed to create booking")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if err = s.authorizeParty(ctx, booking); err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// Approve moves a paid, pending booking to confirmed. Only the host may
// approve, and only after payment has been captured.
func (s *serviceImpl) Approve(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.HostID != callerID {
		return failure.Forbidden("only the host can approve a booking") // nolint:wrapcheck
	}

	if booking.PaymentStatus != model.PaymentStatusCompleted {
		return failure.BadRequestFromString("booking cannot be approved before payment is captured") // nolint:wrapcheck
	}

	return s.transition(ctx, id, model.StatusConfirmed, callerID)
}

// Cancel transitions the booking to cancelled and applies the refund policy
// for paid bookings. A refund failure never blocks or reverts the
// cancellation.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.loadBooking(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorizeParty(ctx, booking); err != nil {
		return err
	}

	if err = s.transition(ctx, id, model.StatusCancelled, callerID); err != nil {
		return err
	}

	booking.Status = model.StatusCancelled

	outcome := s.refundEngine.HandleCancellation(ctx, booking)

	if outcome.Refunded {
		if markErr := s.MarkRefunded(ctx, booking.ID); markErr != nil {
			log.Error().Err(markErr).Str("bookingID", booking.ID).Msg("refund issued but booking not marked refunded")
		}
	}

	s.dispatcher.Enqueue(s.cancellationEvent(booking, outcome))

	return nil
}

// Complete records the end of a stay, driven by the lifecycle job rather
// than a user request.
func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.transition(ctx, id, model.StatusCompleted, callerID)
}

// FinalizeCapture applies a successful payment capture to the booking. It
// is idempotent: a booking whose payment is already completed is returned
// unchanged. Availability is re-checked inside the same transaction to
// close the window between the initial check and the capture.
func (s *serviceImpl) FinalizeCapture(ctx context.Context, bookingID, paymentRef string) (booking model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FinalizeCapture")
	defer scope.End()
	defer scope.TraceIfError(err)

	var property propertyModel.Property

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		var txErr error

		booking, txErr = s.repo.GetForUpdate(ctx, tx, bookingID)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.PaymentStatus == model.PaymentStatusCompleted || booking.PaymentStatus == model.PaymentStatusRefunded {
			// Already finalized by a concurrent confirmation or an earlier
			// delivery of the same gateway event.
			return nil
		}

		property, txErr = s.loadProperty(ctx, booking.PropertyID)
		if txErr != nil {
			return txErr
		}

		if lockErr := s.repo.LockProperty(ctx, tx, booking.PropertyID); lockErr != nil {
			return lockErr
		}

		conflicts, overlapErr := s.repo.FindOverlapping(ctx, tx, booking.PropertyID, booking.StartAt, booking.EndAt, booking.ID)
		if overlapErr != nil {
			return overlapErr
		}

		if len(conflicts) > 0 {
			return failure.Conflict("booking interval was taken before payment completed") // nolint:wrapcheck
		}

		nextStatus := booking.Status
		if booking.Status == model.StatusPending {
			nextStatus = statusAfterCapture(property.RequireApproval)
		}

		updated := map[string]any{
			model.FieldStatus:        nextStatus,
			model.FieldPaymentStatus: model.PaymentStatusCompleted,
			model.FieldPaymentRef:    paymentRef,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: booking.RenterID,
		}

		if updateErr := s.repo.UpdateTx(ctx, tx, updated, shared.FilterByID(bookingID, model.FieldID, model.TableName)); updateErr != nil {
			return updateErr
		}

		booking.Status = nextStatus
		booking.PaymentStatus = model.PaymentStatusCompleted
		booking.PaymentRef = paymentRef

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", bookingID).Msg("failed to finalize payment capture")

		return booking, err
	}

	s.invalidateBookingCaches(ctx, bookingID)

	if property.RequireApproval && booking.Status == model.StatusPending {
		s.dispatcher.Enqueue(notification.Event{
			Type:       notification.EventBookingApprovalNeeded,
			BookingID:  booking.ID,
			PropertyID: booking.PropertyID,
			RenterID:   booking.RenterID,
			HostID:     booking.HostID,
			StartAt:    booking.StartAt,
			EndAt:      booking.EndAt,
		})
	}

	return booking, nil
}

// MarkPaymentFailed records a failed capture. The booking itself is left
// untouched for manual resolution, not rolled back.
func (s *serviceImpl) MarkPaymentFailed(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaymentFailed")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.setPaymentStatus(ctx, bookingID, model.PaymentStatusFailed)
}

// MarkRefunded moves the payment status forward to refunded.
func (s *serviceImpl) MarkRefunded(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRefunded")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.setPaymentStatus(ctx, bookingID, model.PaymentStatusRefunded)
}

// SendDueNotifications sweeps bookings owed a reminder or a review request
// and enqueues the corresponding events. Invoked by the periodic
// notifications job.
func (s *serviceImpl) SendDueNotifications(ctx context.Context) (sent int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendDueNotifications")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := timezone.Now()
	lead := time.Duration(s.cfg.Billing.ReminderLeadHours) * time.Hour

	reminders, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusConfirmed, Table: model.TableName},
			gDto.Filter{Field: model.FieldReminderSent, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName},
			gDto.Filter{ArgName: "window_from", Field: model.FieldStartAt, Operator: gDto.FilterOperatorGreaterEq, Value: now, Table: model.TableName},
			gDto.Filter{ArgName: "window_to", Field: model.FieldStartAt, Operator: gDto.FilterOperatorLessEq, Value: now.Add(lead), Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings due a reminder")

		return 0, fmt.Errorf("failed to load bookings due a reminder: %w", err)
	}

	for _, booking := range reminders {
		s.dispatcher.Enqueue(notification.Event{
			Type:       notification.EventBookingReminder,
			BookingID:  booking.ID,
			PropertyID: booking.PropertyID,
			RenterID:   booking.RenterID,
			HostID:     booking.HostID,
			StartAt:    booking.StartAt,
			EndAt:      booking.EndAt,
		})

		if err := s.repo.Update(ctx, map[string]any{model.FieldReminderSent: true}, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to mark reminder sent")

			continue
		}

		sent++
	}

	reviews, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: model.StatusCompleted, Table: model.TableName},
			gDto.Filter{Field: model.FieldReviewRequestSent, Operator: gDto.FilterOperatorEq, Value: false, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings due a review request")

		return sent, fmt.Errorf("failed to load bookings due a review request: %w", err)
	}

	for _, booking := range reviews {
		s.dispatcher.Enqueue(notification.Event{
			Type:       notification.EventReviewRequest,
			BookingID:  booking.ID,
			PropertyID: booking.PropertyID,
			RenterID:   booking.RenterID,
			HostID:     booking.HostID,
			StartAt:    booking.StartAt,
			EndAt:      booking.EndAt,
		})

		if err := s.repo.Update(ctx, map[string]any{model.FieldReviewRequestSent: true}, shared.FilterByID(booking.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to mark review request sent")

			continue
		}

		sent++
	}

	return sent, nil
}

// transition performs a guarded status change, verifying the current status
// with a row lock immediately before the update.
func (s *serviceImpl) transition(ctx context.Context, id, target, actor string) error {
	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdate(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if txErr = checkTransition(booking.Status, target); txErr != nil {
			return txErr
		}

		updated := map[string]any{
			model.FieldStatus:        target,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: actor,
		}

		return s.repo.UpdateTx(ctx, tx, updated, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Str("target", target).Msg("failed to transition booking")

		return err
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) setPaymentStatus(ctx context.Context, id, target string) error {
	err := s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		booking, txErr := s.repo.GetForUpdate(ctx, tx, id)
		if txErr != nil {
			return txErr
		}

		if booking.ID == constant.Empty {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if booking.PaymentStatus == target {
			return nil
		}

		if !paymentStatusForward(booking.PaymentStatus, target) {
			return failure.InvalidTransition(booking.PaymentStatus, target) // nolint:wrapcheck
		}

		updated := map[string]any{
			model.FieldPaymentStatus: target,
			constant.FieldModifiedAt: timezone.Now(),
		}

		return s.repo.UpdateTx(ctx, tx, updated, shared.FilterByID(id, model.FieldID, model.TableName))
	})
	if err != nil {
		log.Error().Err(err).Str("bookingID", id).Str("paymentStatus", target).Msg("failed to update payment status")

		return err
	}

	s.invalidateBookingCaches(ctx, id)

	return nil
}

func (s *serviceImpl) cancellationEvent(booking model.Booking, outcome refund.Outcome) notification.Event {
	eventType := notification.EventBookingCancelled

	switch {
	case outcome.Refunded:
		eventType = notification.EventRefundGuaranteed
	case outcome.Automatic:
		eventType = notification.EventRefundAttemptFailed
	case booking.PaymentStatus == model.PaymentStatusCompleted:
		eventType = notification.EventRefundDiscretionary
	}

	return notification.Event{
		Type:       eventType,
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		RenterID:   booking.RenterID,
		HostID:     booking.HostID,
		Amount:     booking.TotalAmount.StringFixed(2),
		Currency:   s.cfg.Billing.Currency,
		StartAt:    booking.StartAt,
		EndAt:      booking.EndAt,
	}
}

func (s *serviceImpl) loadBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
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

func (s *serviceImpl) validateInterval(property propertyModel.Property, start, end time.Time) error {
	if !start.Before(end) {
		return failure.BadRequestFromString("start must be before end") // nolint:wrapcheck
	}

	if start.Before(timezone.Now()) {
		return failure.BadRequestFromString("booking cannot start in the past") // nolint:wrapcheck
	}

	hours := end.Sub(start).Hours()

	if property.MinHours > 0 && hours < float64(property.MinHours) {
		return failure.BadRequestFromString(fmt.Sprintf("booking must be at least %d hours", property.MinHours)) // nolint:wrapcheck
	}

	if property.MaxHours > 0 && hours > float64(property.MaxHours) {
		return failure.BadRequestFromString(fmt.Sprintf("booking must be at most %d hours", property.MaxHours)) // nolint:wrapcheck
	}

	return nil
}

// authorizeParty allows the renter, the host, or an admin.
func (s *serviceImpl) authorizeParty(ctx context.Context, booking model.Booking) error {
	callerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	callerRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	if callerRole == constant.RoleAdmin || callerRole == constant.RoleSuperAdmin {
		return nil
	}

	if callerID != booking.RenterID && callerID != booking.HostID {
		return failure.Forbidden("caller is not a party to this booking") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidateBookingCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
