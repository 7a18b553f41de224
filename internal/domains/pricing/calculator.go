package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	propertyModel "plek/internal/domains/property/model"
)

var ErrNoPricingConfigured = errors.New("no applicable rate configured for property")

const (
	hoursPerDay  = 24
	daysPerWeek  = 7
	daysPerMonth = 30

	defaultFeePercent = 10
	amountPrecision   = 2
)

// Quote is the full price breakdown for one booking. TotalAmount is what the
// renter is charged; the host receives BaseAmount minus HostFee.
type Quote struct {
	BaseAmount  decimal.Decimal
	BookerFee   decimal.Decimal
	HostFee     decimal.Decimal
	TotalAmount decimal.Decimal
	HostPayout  decimal.Decimal
	TotalHours  decimal.Decimal
}

// Calculate derives the price of booking the property for [start, end).
// It is deterministic and side-effect free: amounts are always recomputed
// from the property's canonical rates, never taken from client input.
//
// Tier selection: hourly for stays under a day, then daily, weekly and
// monthly for stays long enough to qualify, falling back to hourly when no
// longer tier applies. Every monetary intermediate is rounded to two decimal
// places before it is used further.
func Calculate(property propertyModel.Property, start, end time.Time) (Quote, error) {
	hours := decimal.NewFromFloat(end.Sub(start).Hours()).Round(amountPrecision)
	days := hours.Div(decimal.NewFromInt(hoursPerDay)).Ceil()

	base, err := baseAmount(property, hours, days)
	if err != nil {
		return Quote{}, err
	}

	feePercent := property.FeePercent
	if feePercent.IsZero() {
		feePercent = decimal.NewFromInt(defaultFeePercent)
	}

	// The total fee is split evenly between the booker and the host side.
	halfFeeRate := feePercent.
		Div(decimal.NewFromInt(2)).
		Div(decimal.NewFromInt(100))

	bookerFee := base.Mul(halfFeeRate).Round(amountPrecision)
	hostFee := base.Mul(halfFeeRate).Round(amountPrecision)

	return Quote{
		BaseAmount:  base,
		BookerFee:   bookerFee,
		HostFee:     hostFee,
		TotalAmount: base.Add(bookerFee).Round(amountPrecision),
		HostPayout:  base.Sub(hostFee).Round(amountPrecision),
		TotalHours:  hours,
	}, nil
}

func baseAmount(property propertyModel.Property, hours, days decimal.Decimal) (decimal.Decimal, error) {
	switch {
	case property.HourlyRate.Valid && hours.LessThan(decimal.NewFromInt(hoursPerDay)):
		return property.HourlyRate.Decimal.Mul(hours).Round(amountPrecision), nil
	case property.DailyRate.Valid && days.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return property.DailyRate.Decimal.Mul(days).Round(amountPrecision), nil
	case property.WeeklyRate.Valid && days.GreaterThanOrEqual(decimal.NewFromInt(daysPerWeek)):
		weeks := days.Div(decimal.NewFromInt(daysPerWeek)).Ceil()

		return property.WeeklyRate.Decimal.Mul(weeks).Round(amountPrecision), nil
	case property.MonthlyRate.Valid && days.GreaterThanOrEqual(decimal.NewFromInt(daysPerMonth)):
		months := days.Div(decimal.NewFromInt(daysPerMonth)).Ceil()

		return property.MonthlyRate.Decimal.Mul(months).Round(amountPrecision), nil
	case property.HourlyRate.Valid:
		return property.HourlyRate.Decimal.Mul(hours).Round(amountPrecision), nil
	default:
		return decimal.Zero, ErrNoPricingConfigured
	}
}

// MinorUnits converts a two-decimal amount into minor currency units, the
// representation used by the payment gateway and the revenue ledger.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Round(amountPrecision).Mul(decimal.NewFromInt(100)).IntPart()
}

// FromMinorUnits converts gateway minor units back into a decimal amount.
func FromMinorUnits(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(100)).Round(amountPrecision)
}
