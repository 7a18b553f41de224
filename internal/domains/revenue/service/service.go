package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/gateway"
	"plek/infras/otel"
	"plek/internal/domains/revenue/model"
	"plek/internal/domains/revenue/repository"
	"plek/shared/constant"
	"plek/shared/timezone"
)

type Revenue interface {
	// ApplyEvent credits or debits platform revenue for one gateway event.
	// It reports false when the event was already applied.
	ApplyEvent(ctx context.Context, eventID, chargeRef string, delta int64) (bool, error)
	Status(ctx context.Context) (model.TaxConfig, error)
	Reconcile(ctx context.Context) (model.TaxConfig, error)
}

type serviceImpl struct {
	repo    repository.Revenue
	gateway gateway.Gateway
	cfg     *config.Config
	otel    otel.Otel
}

func New(repo repository.Revenue, gw gateway.Gateway, cfg *config.Config, otel otel.Otel) Revenue {
	return &serviceImpl{
		repo:    repo,
		gateway: gw,
		cfg:     cfg,
		otel:    otel,
	}
}

// ApplyEvent runs the ledger insert and the revenue update in one
// transaction. The ledger's event_id key is the idempotency gate: on a
// redelivered event the insert is a no-op and the revenue total is left
// alone.
func (s *serviceImpl) ApplyEvent(ctx context.Context, eventID, chargeRef string, delta int64) (applied bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".revenue.ApplyEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		inserted, txErr := s.repo.InsertLedgerTx(ctx, tx, model.LedgerEntry{
			EventID:     eventID,
			ChargeRef:   chargeRef,
			AmountDelta: delta,
			Currency:    s.cfg.Billing.Currency,
		})
		if txErr != nil {
			return txErr
		}

		if !inserted {
			log.Info().Str("eventID", eventID).Msg("gateway event already applied, skipping")

			return nil
		}

		applied = true

		taxCfg, txErr := s.repo.AddRevenueTx(ctx, tx, delta)
		if txErr != nil {
			return txErr
		}

		return s.maybeLatch(ctx, tx, taxCfg)
	})
	if err != nil {
		log.Error().Err(err).Str("eventID", eventID).Int64("delta", delta).Msg("failed to apply revenue event")

		return false, err
	}

	return applied, nil
}

func (s *serviceImpl) Status(ctx context.Context) (cfg model.TaxConfig, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".revenue.Status")
	defer scope.End()
	defer scope.TraceIfError(err)

	cfg, err = s.repo.GetConfig(ctx)
	if err != nil {
		return cfg, fmt.Errorf("failed to get tax config: %w", err)
	}

	return cfg, nil
}

// Reconcile re-derives cumulative revenue from the gateway's own charge
// records over the reconciliation window and overwrites the running total.
// The gateway is authoritative; local drift, whatever its direction, is
// discarded. The tax latch still only moves one way.
func (s *serviceImpl) Reconcile(ctx context.Context) (cfg model.TaxConfig, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".revenue.Reconcile")
	defer scope.End()
	defer scope.TraceIfError(err)

	window := timezone.Now().AddDate(0, 0, -s.cfg.Billing.ReconcileWindowDays)

	charges, err := s.gateway.ListCharges(ctx, window)
	if err != nil {
		log.Error().Err(err).Msg("failed to list gateway charges for reconciliation")

		return cfg, fmt.Errorf("failed to list gateway charges: %w", err)
	}

	var total int64
	for _, charge := range charges {
		total += charge.Amount - charge.AmountRefunded
	}

	if total < 0 {
		total = 0
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		taxCfg, txErr := s.repo.OverwriteRevenueTx(ctx, tx, total)
		if txErr != nil {
			return txErr
		}

		return s.maybeLatch(ctx, tx, taxCfg)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to reconcile revenue")

		return cfg, err
	}

	log.Info().Int64("total", total).Int("charges", len(charges)).Msg("revenue reconciled against gateway records")

	return s.repo.GetConfig(ctx) //nolint:wrapcheck
}

func (s *serviceImpl) maybeLatch(ctx context.Context, tx *sqlx.Tx, taxCfg model.TaxConfig) error {
	if taxCfg.Mode == model.TaxModeOn || taxCfg.CumulativeRevenue < taxCfg.Threshold {
		return nil
	}

	if err := s.repo.LatchTx(ctx, tx, timezone.Now()); err != nil {
		return err
	}

	log.Info().Int64("cumulativeRevenue", taxCfg.CumulativeRevenue).Int64("threshold", taxCfg.Threshold).Msg("revenue threshold crossed, tax collection latched on")

	return nil
}
