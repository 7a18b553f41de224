package booking

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"plek/infras/otel"
	"plek/internal/domains/booking/model"
	"plek/internal/domains/booking/model/dto"
	"plek/internal/domains/booking/service"
	paymentService "plek/internal/domains/payment/service"
	"plek/shared/constant"
	gDto "plek/shared/dto"
	"plek/shared/failure"
	"plek/shared/validator"
	"plek/transport/http/response"
)

type Handler struct {
	service  service.Booking
	payments paymentService.Payment
	otel     otel.Otel
}

func New(service service.Booking, payments paymentService.Payment, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		payments: payments,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Post("/quote", handler.QuoteBooking)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Post("/{id}/approve", handler.ApproveBooking)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/complete", handler.CompleteBooking)
		routerGroup.Post("/{id}/payment-intent", handler.CreatePaymentIntent)
		routerGroup.Post("/{id}/confirm-payment", handler.ConfirmPayment)
	})
}

// QuoteBooking prices an interval without reserving it.
// @Summary Quote a booking
// @Description Price a property for a time interval without creating a booking.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.QuoteRequest true "Quote Request"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/quote [post]
func (handler *Handler) QuoteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".QuoteBooking")
	defer scope.End()

	req := dto.QuoteRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	quote, err := handler.service.Quote(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to quote booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, quote)
}

// CheckAvailability reports whether a property is free for an interval.
// @Summary Check availability
// @Description Check whether a property is available for the requested time window.
// @Tags Booking
// @Produce json
// @Param property_id query string true "Property ID"
// @Param start_at query string true "Interval start (RFC3339)"
// @Param end_at query string true "Interval end (RFC3339)"
// @Success 200 {object} response.Data[dto.AvailabilityResult] "Availability"
// @Failure 400 {object} response.Error
// @Router /v1/bookings/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	propertyID := r.URL.Query().Get(model.FieldPropertyID)
	if propertyID == "" {
		response.WithError(w, failure.BadRequestFromString("property_id is required"))

		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get(model.FieldStartAt))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("start_at must be RFC3339"))

		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get(model.FieldEndAt))
	if err != nil {
		response.WithError(w, failure.BadRequestFromString("end_at must be RFC3339"))

		return
	}

	result, err := handler.service.CheckAvailability(ctx, propertyID, start, end, constant.Empty)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, result)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Reserve a property for a time interval. The booking starts pending with payment pending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Created booking"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings retrieves all bookings based on query parameters.
// @Summary Get all bookings
// @Description Retrieve all bookings with optional filtering and pagination.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param property_id query string false "Filter by property ID"
// @Param status query string false "Filter by status (pending, confirmed, cancelled, completed)"
// @Param payment_status query string false "Filter by payment status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	for _, field := range []string{model.FieldPropertyID, model.FieldStatus, model.FieldPaymentStatus} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully")

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetMyBookings retrieves all bookings the caller is a party to.
// @Summary Get my bookings
// @Description Retrieve all bookings where the caller is the renter or the host.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  "renter",
						Field:    model.FieldRenterID,
						Operator: gDto.FilterOperatorEq,
						Value:    userID,
						Table:    model.TableName,
					},
					gDto.Filter{
						ArgName:  "host",
						Field:    model.FieldHostID,
						Operator: gDto.FilterOperatorEq,
						Value:    userID,
						Table:    model.TableName,
					},
				},
			},
		},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user bookings")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User bookings retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(w, http.StatusOK, booking)
}

// ApproveBooking confirms a paid, pending booking. Host only.
// @Summary Approve a booking
// @Description Confirm a paid, pending booking on a property that requires host approval.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking approved"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking approved by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking approved successfully")
}

// CancelBooking cancels a booking and applies the refund policy.
// @Summary Cancel a booking
// @Description Cancel a booking. Paid bookings cancelled early enough receive an automatic refund.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking cancelled"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking cancelled successfully")
}

// CompleteBooking marks a confirmed booking as completed after the stay.
// @Summary Complete a booking
// @Description Mark a confirmed booking as completed once the stay has ended.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Booking completed"
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Complete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking completed by user " + user)

	response.WithMessage(w, http.StatusOK, "Booking completed successfully")
}

// CreatePaymentIntent opens a payment intent for a pending booking.
// @Summary Create a payment intent
// @Description Open a payment intent at the gateway for the booking's stored total.
// @Tags Payment
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[paymentDto.CreateIntentResponse] "Payment intent"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/bookings/{id}/payment-intent [post]
// @Security BearerAuth
func (handler *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePaymentIntent")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	intent, err := handler.payments.CreateIntent(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment intent")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, intent)
}

// ConfirmPayment verifies the capture with the gateway and finalizes the
// booking.
// @Summary Confirm a payment
// @Description Verify the payment intent with the gateway and finalize the booking.
// @Tags Payment
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[paymentDto.ConfirmPaymentResponse] "Confirmed booking"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/bookings/{id}/confirm-payment [post]
// @Security BearerAuth
func (handler *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmPayment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	confirmation, err := handler.payments.ConfirmPayment(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to confirm payment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Payment confirmed by user " + user)

	response.WithJSON(w, http.StatusOK, confirmation)
}
