package gateway

//go:generate go run go.uber.org/mock/mockgen -source=./gateway.go -destination=./mocks/gateway_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"plek/config"
	"plek/infras/otel"
	"plek/shared/constant"
	"plek/shared/failure"
)

// Intent statuses reported by the payment gateway.
const (
	IntentStatusSucceeded = "succeeded"
)

// Metadata keys attached to every intent. They exist for audit only; the
// local booking record stays the source of truth for all amounts.
const (
	MetadataBookingID  = "booking_id"
	MetadataRenterID   = "renter_id"
	MetadataHostID     = "host_id"
	MetadataPropertyID = "property_id"
	MetadataBaseAmount = "base_amount"
	MetadataBookerFee  = "booker_fee"
	MetadataHostFee    = "host_fee"
)

type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret"`
	Status       string            `json:"status"`
	Amount       int64             `json:"amount"`
	Currency     string            `json:"currency"`
	LatestCharge string            `json:"latest_charge"`
	Metadata     map[string]string `json:"metadata"`
}

type Refund struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

type Charge struct {
	ID             string `json:"id"`
	Amount         int64  `json:"amount"`
	AmountRefunded int64  `json:"amount_refunded"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
	Created        int64  `json:"created"`
}

type CreateIntentRequest struct {
	Amount             int64
	Currency           string
	ApplicationFee     int64
	DestinationAccount string
	Metadata           map[string]string
}

// Gateway is the payment-processor client. Amounts are always expressed in
// minor currency units.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (Intent, error)
	GetIntent(ctx context.Context, id string) (Intent, error)
	CreateRefund(ctx context.Context, intentID string, amount int64) (Refund, error)
	ListCharges(ctx context.Context, since time.Time) ([]Charge, error)
}

type gatewayImpl struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Gateway {
	return &gatewayImpl{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.External.Gateway.TimeoutSeconds) * time.Second,
		},
		otel: otel,
	}
}

func (g *gatewayImpl) CreateIntent(ctx context.Context, req CreateIntentRequest) (res Intent, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Set("application_fee_amount", strconv.FormatInt(req.ApplicationFee, 10))
	form.Set("transfer_data[destination]", req.DestinationAccount)

	for key, value := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	err = g.do(ctx, http.MethodPost, "/v1/payment_intents", form, &res)

	return res, err
}

func (g *gatewayImpl) GetIntent(ctx context.Context, id string) (res Intent, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".GetIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = g.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(id), nil, &res)

	return res, err
}

// CreateRefund issues a single refund request against an intent. Callers
// make exactly one bounded attempt; a failure is handled out of band, never
// retried synchronously.
func (g *gatewayImpl) CreateRefund(ctx context.Context, intentID string, amount int64) (res Refund, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".CreateRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	form := url.Values{}
	form.Set("payment_intent", intentID)
	form.Set("amount", strconv.FormatInt(amount, 10))

	err = g.do(ctx, http.MethodPost, "/v1/refunds", form, &res)

	return res, err
}

// ListCharges pages through the gateway's charge records created after
// since. These are the authoritative records the revenue reconciliation job
// re-derives cumulative revenue from.
func (g *gatewayImpl) ListCharges(ctx context.Context, since time.Time) ([]Charge, error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelGatewayScopeName, constant.OtelGatewayScopeName+".ListCharges")
	defer scope.End()

	type chargePage struct {
		Data    []Charge `json:"data"`
		HasMore bool     `json:"has_more"`
	}

	charges := []Charge{}
	startingAfter := ""

	for {
		path := fmt.Sprintf("/v1/charges?limit=100&created[gte]=%d", since.Unix())
		if startingAfter != "" {
			path += "&starting_after=" + url.QueryEscape(startingAfter)
		}

		var page chargePage
		if err := g.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			scope.TraceError(err)

			return nil, err
		}

		charges = append(charges, page.Data...)

		if !page.HasMore || len(page.Data) == 0 {
			break
		}

		startingAfter = page.Data[len(page.Data)-1].ID
	}

	return charges, nil
}

func (g *gatewayImpl) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	request, err := http.NewRequestWithContext(ctx, method, g.cfg.External.Gateway.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}

	request.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+g.cfg.External.Gateway.SecretKey)

	if form != nil {
		request.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)
	}

	response, err := g.client.Do(request)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("payment gateway request failed")

		return failure.BadGateway(fmt.Sprintf("payment gateway unreachable: %v", err)) //nolint:wrapcheck
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", response.StatusCode).Str("path", path).Msg("payment gateway returned error")

		return failure.BadGateway(fmt.Sprintf("payment gateway error (%d)", response.StatusCode)) //nolint:wrapcheck
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return nil
}
