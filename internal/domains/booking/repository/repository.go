package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"plek/infras/otel"
	"plek/infras/postgres"
	"plek/internal/domains/booking/model"
	propertyModel "plek/internal/domains/property/model"
	"plek/shared/constant"
	gDto "plek/shared/dto"
	"plek/shared/logger"
	gRepo "plek/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error

	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	LockProperty(ctx context.Context, tx *sqlx.Tx, propertyID string) error
	FindOverlapping(ctx context.Context, tx *sqlx.Tx, propertyID string, start, end time.Time, excludeID string) ([]model.Booking, error)
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// WithTx runs fn inside a single write transaction. The availability check
// and the booking insert must share one transaction so two concurrent
// renters cannot both pass the check and both insert.
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

// LockProperty takes a row lock on the property, serializing every booking
// write for that property for the remainder of the transaction.
func (repo *repositoryImpl) LockProperty(ctx context.Context, tx *sqlx.Tx, propertyID string) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".LockProperty")
	defer scope.End()

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", propertyModel.FieldID, propertyModel.TableName, propertyModel.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var id string
	if err := tx.GetContext(ctx, &id, query, propertyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("property %s not found: %w", propertyID, err)
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to lock property row: %w", err)
	}

	return nil
}

// FindOverlapping returns the blocking bookings whose [start_at, end_at)
// interval overlaps [start, end). Two intervals conflict iff
// startA < endB AND startB < endA; touching endpoints do not conflict.
// When tx is nil the read connection is used.
func (repo *repositoryImpl) FindOverlapping(ctx context.Context, tx *sqlx.Tx, propertyID string, start, end time.Time, excludeID string) ([]model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".FindOverlapping")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE %s = :property_id AND %s IN (:status_pending, :status_confirmed) AND %s < :end_at AND %s > :start_at",
		model.TableName, model.FieldPropertyID, model.FieldStatus, model.FieldStartAt, model.FieldEndAt,
	)

	args := map[string]any{
		"property_id":      propertyID,
		"status_pending":   model.StatusPending,
		"status_confirmed": model.StatusConfirmed,
		"start_at":         start,
		"end_at":           end,
	}

	if excludeID != "" {
		query += fmt.Sprintf(" AND %s != :exclude_id", model.FieldID)
		args["exclude_id"] = excludeID
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	query, positional, err := sqlx.Named(query, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build overlap query (%s): %w", model.EntityName, err)
	}

	bookings := []model.Booking{}

	if tx != nil {
		query = tx.Rebind(query)
		err = tx.SelectContext(ctx, &bookings, query, positional...)
	} else {
		query = repo.db.Read.Rebind(query)
		err = repo.db.Read.SelectContext(ctx, &bookings, query, positional...)
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to find overlapping bookings (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

// GetForUpdate loads a booking with a row lock, used to verify the current
// status immediately before a state transition.
func (repo *repositoryImpl) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (model.Booking, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetForUpdate")
	defer scope.End()

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 FOR UPDATE", model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var booking model.Booking

	err := tx.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return booking, fmt.Errorf("failed to get booking for update (%s): %w", model.EntityName, err)
	}

	return booking, nil
}
