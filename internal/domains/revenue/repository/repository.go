package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"plek/infras/otel"
	"plek/infras/postgres"
	"plek/internal/domains/revenue/model"
	"plek/shared/constant"
	"plek/shared/logger"
	"plek/shared/timezone"
)

type Revenue interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertLedgerTx(ctx context.Context, tx *sqlx.Tx, entry model.LedgerEntry) (bool, error)
	AddRevenueTx(ctx context.Context, tx *sqlx.Tx, delta int64) (model.TaxConfig, error)
	LatchTx(ctx context.Context, tx *sqlx.Tx, effectiveAt time.Time) error
	OverwriteRevenueTx(ctx context.Context, tx *sqlx.Tx, total int64) (model.TaxConfig, error)
	GetConfig(ctx context.Context) (model.TaxConfig, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Revenue {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".WithTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}

// InsertLedgerTx records a gateway event, reporting whether this is its
// first delivery. The primary key on event_id absorbs redeliveries.
func (repo *repositoryImpl) InsertLedgerTx(ctx context.Context, tx *sqlx.Tx, entry model.LedgerEntry) (inserted bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".InsertLedgerTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timezone.Now()
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (event_id, charge_ref, amount_delta, currency, created_at)
		 VALUES (:event_id, :charge_ref, :amount_delta, :currency, :created_at)
		 ON CONFLICT (event_id) DO NOTHING`,
		model.LedgerTable,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, entry)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to insert revenue ledger entry (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to read ledger insert result (%s): %w", model.EntityName, err)
	}

	return affected > 0, nil
}

// AddRevenueTx adds delta to cumulative revenue, clamping the running total
// at zero, and returns the updated row.
func (repo *repositoryImpl) AddRevenueTx(ctx context.Context, tx *sqlx.Tx, delta int64) (cfg model.TaxConfig, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".AddRevenueTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET cumulative_revenue = GREATEST(0, cumulative_revenue + $1), modified_at = $2 WHERE id = $3 RETURNING *",
		model.TaxConfigTable,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &cfg, query, delta, timezone.Now(), model.TaxConfigRowID); err != nil {
		logger.ErrorWithStack(err)

		return cfg, fmt.Errorf("failed to add revenue (%s): %w", model.EntityName, err)
	}

	return cfg, nil
}

// LatchTx switches tax collection on. The WHERE mode = 'off' guard makes
// the latch one-way: a row already on is left untouched, preserving the
// original effective_at.
func (repo *repositoryImpl) LatchTx(ctx context.Context, tx *sqlx.Tx, effectiveAt time.Time) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".LatchTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET mode = $1, effective_at = $2, modified_at = $3 WHERE id = $4 AND mode = $5",
		model.TaxConfigTable,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = tx.ExecContext(ctx, query, model.TaxModeOn, effectiveAt, timezone.Now(), model.TaxConfigRowID, model.TaxModeOff); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to latch tax mode (%s): %w", model.EntityName, err)
	}

	return nil
}

// OverwriteRevenueTx replaces the running total with a re-derived figure
// from the reconciliation job.
func (repo *repositoryImpl) OverwriteRevenueTx(ctx context.Context, tx *sqlx.Tx, total int64) (cfg model.TaxConfig, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".OverwriteRevenueTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET cumulative_revenue = GREATEST(0, $1), modified_at = $2 WHERE id = $3 RETURNING *",
		model.TaxConfigTable,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = tx.GetContext(ctx, &cfg, query, total, timezone.Now(), model.TaxConfigRowID); err != nil {
		logger.ErrorWithStack(err)

		return cfg, fmt.Errorf("failed to overwrite revenue (%s): %w", model.EntityName, err)
	}

	return cfg, nil
}

func (repo *repositoryImpl) GetConfig(ctx context.Context) (cfg model.TaxConfig, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetConfig")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT * FROM %s WHERE id = $1", model.TaxConfigTable)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.GetContext(ctx, &cfg, query, model.TaxConfigRowID); err != nil {
		logger.ErrorWithStack(err)

		return cfg, fmt.Errorf("failed to get tax config (%s): %w", model.EntityName, err)
	}

	return cfg, nil
}
