package gateway_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"plek/infras/gateway"
)

const testSecret = "whsec_test_secret"

func TestVerifySignature_Valid(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	header := gateway.ComputeSignature(payload, testSecret, now)

	assert.NoError(t, gateway.VerifySignature(payload, header, testSecret, now))
}

func TestVerifySignature_WithinTolerance(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	header := gateway.ComputeSignature(payload, testSecret, now.Add(-4*time.Minute))

	assert.NoError(t, gateway.VerifySignature(payload, header, testSecret, now))
}

func TestVerifySignature_Expired(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	header := gateway.ComputeSignature(payload, testSecret, now.Add(-6*time.Minute))

	err := gateway.VerifySignature(payload, header, testSecret, now)
	assert.ErrorIs(t, err, gateway.ErrSignatureTooOld)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	header := gateway.ComputeSignature(payload, "whsec_other", now)

	err := gateway.VerifySignature(payload, header, testSecret, now)
	assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_1","amount":100}`)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	header := gateway.ComputeSignature(payload, testSecret, now)
	tampered := []byte(`{"id":"evt_1","amount":999}`)

	err := gateway.VerifySignature(tampered, header, testSecret, now)
	assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
}

func TestVerifySignature_Malformed(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing signature", "t=1756728000"},
		{"missing timestamp", "v1=deadbeef"},
		{"garbage", "not-a-header"},
		{"non-numeric timestamp", "t=abc,v1=deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gateway.VerifySignature([]byte(`{}`), tt.header, testSecret, now)
			assert.ErrorIs(t, err, gateway.ErrMalformedSignature)
		})
	}
}
