package model

import (
	"database/sql"
	"time"
)

const (
	TaxModeOff = "off"
	TaxModeOn  = "on"
)

// TaxConfig is the platform's single tax-collection row. Once cumulative
// revenue crosses the threshold the mode latches on and never reverts.
type TaxConfig struct {
	ID                int          `db:"id"                 json:"id"`
	Mode              string       `db:"mode"               json:"mode"`
	CumulativeRevenue int64        `db:"cumulative_revenue" json:"cumulative_revenue"`
	Threshold         int64        `db:"threshold"          json:"threshold"`
	EffectiveAt       sql.NullTime `db:"effective_at"       json:"effective_at"`
	ModifiedAt        sql.NullTime `db:"modified_at"        json:"modified_at"`
}

// LedgerEntry records one applied gateway event. The primary key on
// event_id is what makes webhook processing idempotent: a redelivered event
// fails the insert and contributes nothing.
type LedgerEntry struct {
	EventID     string    `db:"event_id"     json:"event_id"`
	ChargeRef   string    `db:"charge_ref"   json:"charge_ref"`
	AmountDelta int64     `db:"amount_delta" json:"amount_delta"`
	Currency    string    `db:"currency"     json:"currency"`
	CreatedAt   time.Time `db:"created_at"   json:"created_at"`
}

const (
	EntityName     = "revenue"
	TaxConfigTable = "tax_config"
	LedgerTable    = "revenue_ledger"

	// TaxConfigRowID is the id of the only row in tax_config.
	TaxConfigRowID = 1
)
