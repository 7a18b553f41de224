package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"plek/config"
	"plek/infras/gateway"
	gatewayMocks "plek/infras/gateway/mocks"
	"plek/infras/otel/mocks"
	revenueMocks "plek/internal/domains/revenue/mocks"
	"plek/internal/domains/revenue/model"
	"plek/internal/domains/revenue/service"
)

type revenueFixture struct {
	repo    *revenueMocks.MockRevenue
	gateway *gatewayMocks.MockGateway
	svc     service.Revenue
}

func newRevenueFixture(t *testing.T) (*revenueFixture, *gomock.Controller) {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &revenueFixture{
		repo:    revenueMocks.NewMockRevenue(ctrl),
		gateway: gatewayMocks.NewMockGateway(ctrl),
	}

	cfg := &config.Config{}
	cfg.Billing.Currency = "usd"
	cfg.Billing.RevenueThreshold = 3000000
	cfg.Billing.ReconcileWindowDays = 30

	f.svc = service.New(f.repo, f.gateway, cfg, mocks.NewOtel())

	f.repo.EXPECT().
		WithTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		}).
		AnyTimes()

	return f, ctrl
}

func TestRevenueService_ApplyEvent(t *testing.T) {
	t.Run("credits revenue below the threshold", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().
			InsertLedgerTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, entry model.LedgerEntry) (bool, error) {
				assert.Equal(t, "evt_1", entry.EventID)
				assert.Equal(t, "ch_1", entry.ChargeRef)
				assert.Equal(t, int64(3150), entry.AmountDelta)

				return true, nil
			})
		f.repo.EXPECT().
			AddRevenueTx(gomock.Any(), gomock.Any(), int64(3150)).
			Return(model.TaxConfig{Mode: model.TaxModeOff, CumulativeRevenue: 3150, Threshold: 3000000}, nil)

		applied, err := f.svc.ApplyEvent(context.Background(), "evt_1", "ch_1", 3150)

		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("duplicate event leaves revenue untouched", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().
			InsertLedgerTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)

		applied, err := f.svc.ApplyEvent(context.Background(), "evt_1", "ch_1", 3150)

		assert.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("latches tax mode when the threshold is crossed", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().InsertLedgerTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			AddRevenueTx(gomock.Any(), gomock.Any(), int64(3150)).
			Return(model.TaxConfig{Mode: model.TaxModeOff, CumulativeRevenue: 3000100, Threshold: 3000000}, nil)
		f.repo.EXPECT().LatchTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		applied, err := f.svc.ApplyEvent(context.Background(), "evt_1", "ch_1", 3150)

		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("latched mode never flips back", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		// A refund pulls the total back under the threshold; no LatchTx and
		// no un-latch either way.
		f.repo.EXPECT().InsertLedgerTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			AddRevenueTx(gomock.Any(), gomock.Any(), int64(-3150)).
			Return(model.TaxConfig{Mode: model.TaxModeOn, CumulativeRevenue: 2999000, Threshold: 3000000}, nil)

		applied, err := f.svc.ApplyEvent(context.Background(), "evt_2", "ch_1", -3150)

		assert.NoError(t, err)
		assert.True(t, applied)
	})

	t.Run("ledger failure aborts the event", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.repo.EXPECT().
			InsertLedgerTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errors.New("database down"))

		applied, err := f.svc.ApplyEvent(context.Background(), "evt_1", "ch_1", 3150)

		assert.Error(t, err)
		assert.False(t, applied)
	})
}

func TestRevenueService_Status(t *testing.T) {
	f, ctrl := newRevenueFixture(t)
	defer ctrl.Finish()

	f.repo.EXPECT().
		GetConfig(gomock.Any()).
		Return(model.TaxConfig{Mode: model.TaxModeOff, CumulativeRevenue: 100, Threshold: 3000000}, nil)

	cfg, err := f.svc.Status(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, model.TaxModeOff, cfg.Mode)
	assert.Equal(t, int64(100), cfg.CumulativeRevenue)
}

func TestRevenueService_Reconcile(t *testing.T) {
	t.Run("overwrites the running total from gateway charges", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.gateway.EXPECT().
			ListCharges(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, since time.Time) ([]gateway.Charge, error) {
				assert.True(t, since.Before(time.Now()))

				return []gateway.Charge{
					{ID: "ch_1", Amount: 5000, AmountRefunded: 0},
					{ID: "ch_2", Amount: 3000, AmountRefunded: 1000},
				}, nil
			})

		f.repo.EXPECT().
			OverwriteRevenueTx(gomock.Any(), gomock.Any(), int64(7000)).
			Return(model.TaxConfig{Mode: model.TaxModeOff, CumulativeRevenue: 7000, Threshold: 3000000}, nil)
		f.repo.EXPECT().
			GetConfig(gomock.Any()).
			Return(model.TaxConfig{Mode: model.TaxModeOff, CumulativeRevenue: 7000, Threshold: 3000000}, nil)

		cfg, err := f.svc.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(7000), cfg.CumulativeRevenue)
	})

	t.Run("net-negative window clamps to zero", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.gateway.EXPECT().
			ListCharges(gomock.Any(), gomock.Any()).
			Return([]gateway.Charge{{ID: "ch_1", Amount: 1000, AmountRefunded: 2000}}, nil)

		f.repo.EXPECT().
			OverwriteRevenueTx(gomock.Any(), gomock.Any(), int64(0)).
			Return(model.TaxConfig{Mode: model.TaxModeOff, Threshold: 3000000}, nil)
		f.repo.EXPECT().
			GetConfig(gomock.Any()).
			Return(model.TaxConfig{Mode: model.TaxModeOff, Threshold: 3000000}, nil)

		_, err := f.svc.Reconcile(context.Background())

		assert.NoError(t, err)
	})

	t.Run("reconciliation can trip the latch", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.gateway.EXPECT().
			ListCharges(gomock.Any(), gomock.Any()).
			Return([]gateway.Charge{{ID: "ch_1", Amount: 3500000}}, nil)

		f.repo.EXPECT().
			OverwriteRevenueTx(gomock.Any(), gomock.Any(), int64(3500000)).
			Return(model.TaxConfig{Mode: model.TaxModeOff, CumulativeRevenue: 3500000, Threshold: 3000000}, nil)
		f.repo.EXPECT().LatchTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			GetConfig(gomock.Any()).
			Return(model.TaxConfig{Mode: model.TaxModeOn, CumulativeRevenue: 3500000, Threshold: 3000000}, nil)

		cfg, err := f.svc.Reconcile(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, model.TaxModeOn, cfg.Mode)
	})

	t.Run("gateway failure surfaces", func(t *testing.T) {
		f, ctrl := newRevenueFixture(t)
		defer ctrl.Finish()

		f.gateway.EXPECT().ListCharges(gomock.Any(), gomock.Any()).Return(nil, errors.New("gateway unavailable"))

		_, err := f.svc.Reconcile(context.Background())

		assert.Error(t, err)
	})
}
