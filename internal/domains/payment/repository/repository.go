package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"plek/infras/otel"
	"plek/infras/postgres"
	"plek/internal/domains/payment/model"
	"plek/shared/constant"
	gDto "plek/shared/dto"
	"plek/shared/logger"
	gRepo "plek/shared/repository"
	"plek/shared/timezone"
)

type Payment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PaymentRecord, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PaymentRecord, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error

	RecordCapture(ctx context.Context, record model.PaymentRecord) error
	ApplyRefund(ctx context.Context, intentRef, refundRef string, refundedAmount decimal.Decimal) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PaymentRecord]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PaymentRecord](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// RecordCapture inserts the audit record for a captured intent. The insert
// is keyed on intent_ref, so recording the same capture twice (a retried
// confirmation racing the webhook) is a no-op.
func (repo *repositoryImpl) RecordCapture(ctx context.Context, record model.PaymentRecord) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".RecordCapture")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		`INSERT INTO %s (id, booking_id, amount, currency, intent_ref, charge_ref, status, refund_ref, refunded_amount, created_at, created_by)
		 VALUES (:id, :booking_id, :amount, :currency, :intent_ref, :charge_ref, :status, :refund_ref, :refunded_amount, :created_at, :created_by)
		 ON CONFLICT (intent_ref) DO NOTHING`,
		model.TableName,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err = repo.db.Write.NamedExecContext(ctx, query, record); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to record payment capture (%s): %w", model.EntityName, err)
	}

	return nil
}

// ApplyRefund overwrites the cumulative refunded amount reported by the
// gateway and marks the record refunded.
func (repo *repositoryImpl) ApplyRefund(ctx context.Context, intentRef, refundRef string, refundedAmount decimal.Decimal) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".ApplyRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :refunded_amount, %s = :refund_ref, %s = :status, modified_at = :modified_at WHERE %s = :intent_ref",
		model.TableName, model.FieldRefundedAmount, model.FieldRefundRef, model.FieldStatus, model.FieldIntentRef,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"refunded_amount": refundedAmount,
		"refund_ref":      refundRef,
		"status":          model.StatusRefunded,
		"modified_at":     timezone.Now(),
		"intent_ref":      intentRef,
	}

	if _, err = repo.db.Write.NamedExecContext(ctx, query, args); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to apply refund (%s): %w", model.EntityName, err)
	}

	return nil
}
