package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"plek/infras/otel"
	"plek/infras/postgres"
	"plek/internal/domains/property/model"
	"plek/shared/constant"
	gDto "plek/shared/dto"
	"plek/shared/logger"
	gRepo "plek/shared/repository"
	"plek/shared/timezone"
)

type Property interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	SetPayoutReady(ctx context.Context, payoutAccountID string, ready bool) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Property]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// SetPayoutReady propagates the gateway's payout-account readiness to every
// property attached to that payout account.
func (repo *repositoryImpl) SetPayoutReady(ctx context.Context, payoutAccountID string, ready bool) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".SetPayoutReady")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :ready, %s = :modified_at WHERE %s = :account",
		model.TableName, model.FieldPayoutReady, constant.FieldModifiedAt, model.FieldPayoutAccountID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{
		"ready":       ready,
		"modified_at": timezone.Now(),
		"account":     payoutAccountID,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to set payout readiness (%s): %w", model.EntityName, err)
	}

	return nil
}
