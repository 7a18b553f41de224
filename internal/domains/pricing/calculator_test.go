package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"plek/internal/domains/pricing"
	propertyModel "plek/internal/domains/property/model"
)

func nullDecimal(value string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(value), Valid: true}
}

func TestCalculate(t *testing.T) {
	start := time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		property        propertyModel.Property
		end             time.Time
		wantBase        string
		wantBookerFee   string
		wantHostFee     string
		wantTotal       string
		wantHostPayout  string
		wantTotalHours  string
		wantErr         error
	}{
		{
			name: "hourly stay under a day",
			property: propertyModel.Property{
				HourlyRate: nullDecimal("10"),
				FeePercent: decimal.NewFromInt(10),
			},
			end:            start.Add(3 * time.Hour),
			wantBase:       "30.00",
			wantBookerFee:  "1.50",
			wantHostFee:    "1.50",
			wantTotal:      "31.50",
			wantHostPayout: "28.50",
			wantTotalHours: "3",
		},
		{
			name: "daily tier for multi-day stay",
			property: propertyModel.Property{
				HourlyRate: nullDecimal("10"),
				DailyRate:  nullDecimal("100"),
				FeePercent: decimal.NewFromInt(10),
			},
			end:            start.Add(48 * time.Hour),
			wantBase:       "200.00",
			wantBookerFee:  "10.00",
			wantHostFee:    "10.00",
			wantTotal:      "210.00",
			wantHostPayout: "190.00",
			wantTotalHours: "48",
		},
		{
			name: "fifty hours bills three daily units",
			property: propertyModel.Property{
				DailyRate:  nullDecimal("50"),
				FeePercent: decimal.NewFromInt(10),
			},
			end:            start.Add(50 * time.Hour),
			wantBase:       "150.00",
			wantBookerFee:  "7.50",
			wantHostFee:    "7.50",
			wantTotal:      "157.50",
			wantHostPayout: "142.50",
			wantTotalHours: "50",
		},
		{
			name: "partial day rounds up to whole days",
			property: propertyModel.Property{
				DailyRate:  nullDecimal("100"),
				FeePercent: decimal.NewFromInt(10),
			},
			end:            start.Add(30 * time.Hour),
			wantBase:       "200.00",
			wantBookerFee:  "10.00",
			wantHostFee:    "10.00",
			wantTotal:      "210.00",
			wantHostPayout: "190.00",
			wantTotalHours: "30",
		},
		{
			name: "weekly tier",
			property: propertyModel.Property{
				WeeklyRate: nullDecimal("500"),
				FeePercent: decimal.NewFromInt(10),
			},
			end:            start.Add(7 * 24 * time.Hour),
			wantBase:       "500.00",
			wantBookerFee:  "25.00",
			wantHostFee:    "25.00",
			wantTotal:      "525.00",
			wantHostPayout: "475.00",
			wantTotalHours: "168",
		},
		{
			name: "default fee percent when unset",
			property: propertyModel.Property{
				HourlyRate: nullDecimal("20"),
			},
			end:            start.Add(2 * time.Hour),
			wantBase:       "40.00",
			wantBookerFee:  "2.00",
			wantHostFee:    "2.00",
			wantTotal:      "42.00",
			wantHostPayout: "38.00",
			wantTotalHours: "2",
		},
		{
			name:     "no rates configured",
			property: propertyModel.Property{},
			end:      start.Add(3 * time.Hour),
			wantErr:  pricing.ErrNoPricingConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := pricing.Calculate(tt.property, start, tt.end)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantBase, quote.BaseAmount.StringFixed(2))
			assert.Equal(t, tt.wantBookerFee, quote.BookerFee.StringFixed(2))
			assert.Equal(t, tt.wantHostFee, quote.HostFee.StringFixed(2))
			assert.Equal(t, tt.wantTotal, quote.TotalAmount.StringFixed(2))
			assert.Equal(t, tt.wantHostPayout, quote.HostPayout.StringFixed(2))
			assert.Equal(t, tt.wantTotalHours, quote.TotalHours.String())
		})
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	property := propertyModel.Property{
		HourlyRate: nullDecimal("12.34"),
		FeePercent: decimal.NewFromInt(15),
	}

	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(5 * time.Hour)

	first, err := pricing.Calculate(property, start, end)
	assert.NoError(t, err)

	second, err := pricing.Calculate(property, start, end)
	assert.NoError(t, err)

	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.True(t, first.BaseAmount.Equal(second.BaseAmount))
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(3150), pricing.MinorUnits(decimal.RequireFromString("31.50")))
	assert.Equal(t, int64(0), pricing.MinorUnits(decimal.Zero))
	assert.Equal(t, int64(100), pricing.MinorUnits(decimal.RequireFromString("0.999")))
}

func TestFromMinorUnits(t *testing.T) {
	assert.Equal(t, "31.50", pricing.FromMinorUnits(3150).StringFixed(2))
	assert.Equal(t, "0.00", pricing.FromMinorUnits(0).StringFixed(2))

	roundTrip := pricing.MinorUnits(pricing.FromMinorUnits(12345))
	assert.Equal(t, int64(12345), roundTrip)
}
