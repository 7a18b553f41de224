package model

import (
	"plek/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID              = "id"
	FieldHostID          = "host_id"
	FieldTitle           = "title"
	FieldHourlyRate      = "hourly_rate"
	FieldDailyRate       = "daily_rate"
	FieldWeeklyRate      = "weekly_rate"
	FieldMonthlyRate     = "monthly_rate"
	FieldFeePercent      = "fee_percent"
	FieldRequireApproval = "require_approval"
	FieldMinHours        = "min_hours"
	FieldMaxHours        = "max_hours"
	FieldPayoutAccountID = "payout_account_id"
	FieldPayoutReady     = "payout_ready"
)

// Property carries the pricing and booking configuration owned by the
// listing-management collaborator. This service only reads it, except for
// the payout readiness flag written back by the webhook reconciler.
type Property struct {
	ID              string              `db:"id"`
	HostID          string              `db:"host_id"`
	Title           string              `db:"title"`
	HourlyRate      decimal.NullDecimal `db:"hourly_rate"`
	DailyRate       decimal.NullDecimal `db:"daily_rate"`
	WeeklyRate      decimal.NullDecimal `db:"weekly_rate"`
	MonthlyRate     decimal.NullDecimal `db:"monthly_rate"`
	FeePercent      decimal.Decimal     `db:"fee_percent"`
	RequireApproval bool                `db:"require_approval"`
	MinHours        int                 `db:"min_hours"`
	MaxHours        int                 `db:"max_hours"`
	PayoutAccountID string              `db:"payout_account_id"`
	PayoutReady     bool                `db:"payout_ready"`
	model.Metadata
}
