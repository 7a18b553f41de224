package dto

import (
	"time"

	"github.com/google/uuid"

	"plek/internal/domains/booking/model"
	"plek/internal/domains/pricing"
	"plek/shared"
	gDto "plek/shared/dto"
	gModel "plek/shared/model"
	"plek/shared/timezone"
)

type QuoteRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	StartAt    string `json:"start_at"    validate:"required,datetime_rfc3339"`
	EndAt      string `json:"end_at"      validate:"required,datetime_rfc3339"`
}

func (q *QuoteRequest) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, q.StartAt)
	if err != nil {
		return start, end, err
	}

	end, err = time.Parse(time.RFC3339, q.EndAt)

	return start, end, err
}

type QuoteResponse struct {
	PropertyID  string `json:"property_id"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	TotalHours  string `json:"total_hours"`
	BaseAmount  string `json:"base_amount"`
	BookerFee   string `json:"booker_fee"`
	HostFee     string `json:"host_fee"`
	TotalAmount string `json:"total_amount"`
	HostPayout  string `json:"host_payout"`
}

func (q *QuoteResponse) FromQuote(propertyID string, start, end time.Time, quote pricing.Quote) {
	q.PropertyID = propertyID
	q.StartAt = start.Format(time.RFC3339)
	q.EndAt = end.Format(time.RFC3339)
	q.TotalHours = quote.TotalHours.String()
	q.BaseAmount = quote.BaseAmount.StringFixed(2)
	q.BookerFee = quote.BookerFee.StringFixed(2)
	q.HostFee = quote.HostFee.StringFixed(2)
	q.TotalAmount = quote.TotalAmount.StringFixed(2)
	q.HostPayout = quote.HostPayout.StringFixed(2)
}

type CreateBookingRequest struct {
	PropertyID string `json:"property_id" validate:"required"`
	StartAt    string `json:"start_at"    validate:"required,datetime_rfc3339"`
	EndAt      string `json:"end_at"      validate:"required,datetime_rfc3339"`
}

func (c *CreateBookingRequest) Interval() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, c.StartAt)
	if err != nil {
		return start, end, err
	}

	end, err = time.Parse(time.RFC3339, c.EndAt)

	return start, end, err
}

// ToModel builds the pending booking. Status and amounts are never taken
// from the request; pricing comes from the calculator and the state machine
// always starts at pending/pending.
func (c *CreateBookingRequest) ToModel(renterID, hostID string, start, end time.Time, quote pricing.Quote) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		PropertyID:    c.PropertyID,
		RenterID:      renterID,
		HostID:        hostID,
		StartAt:       start,
		EndAt:         end,
		TotalHours:    quote.TotalHours,
		BaseAmount:    quote.BaseAmount,
		ServiceFee:    quote.BookerFee,
		HostFee:       quote.HostFee,
		TotalAmount:   quote.TotalAmount,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentStatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  renterID,
			ModifiedBy: renterID,
		},
	}
}

type BookingResponse struct {
	ID            string `json:"id"`
	PropertyID    string `json:"property_id"`
	RenterID      string `json:"renter_id"`
	HostID        string `json:"host_id"`
	StartAt       string `json:"start_at"`
	EndAt         string `json:"end_at"`
	TotalHours    string `json:"total_hours"`
	BaseAmount    string `json:"base_amount"`
	ServiceFee    string `json:"service_fee"`
	TotalAmount   string `json:"total_amount"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(booking model.Booking) {
	b.ID = booking.ID
	b.PropertyID = booking.PropertyID
	b.RenterID = booking.RenterID
	b.HostID = booking.HostID
	b.StartAt = booking.StartAt.Format(time.RFC3339)
	b.EndAt = booking.EndAt.Format(time.RFC3339)
	b.TotalHours = booking.TotalHours.String()
	b.BaseAmount = booking.BaseAmount.StringFixed(2)
	b.ServiceFee = booking.ServiceFee.StringFixed(2)
	b.TotalAmount = booking.TotalAmount.StringFixed(2)
	b.Status = booking.Status
	b.PaymentStatus = booking.PaymentStatus
	b.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
	TotalPage int               `json:"total_page"`
}

func (g *GetBookingsResponse) FromModels(models []model.Booking, total, limit int) {
	g.Bookings = make([]BookingResponse, 0, len(models))

	for _, booking := range models {
		res := BookingResponse{}
		res.FromModel(booking)

		g.Bookings = append(g.Bookings, res)
	}

	g.TotalData = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}

type AvailabilityResult struct {
	Available bool              `json:"available"`
	Conflicts []BookingResponse `json:"conflicts"`
}

func (a *AvailabilityResult) FromConflicts(conflicts []model.Booking) {
	a.Available = len(conflicts) == 0
	a.Conflicts = make([]BookingResponse, 0, len(conflicts))

	for _, conflict := range conflicts {
		res := BookingResponse{}
		res.FromModel(conflict)

		a.Conflicts = append(a.Conflicts, res)
	}
}
