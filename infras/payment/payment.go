package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"rentopia/config"
	"rentopia/infras/otel"
	"rentopia/shared/constant"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	ordersPath = "/orders"

	otelAttrAmount  = "payment.amount"
	otelAttrReceipt = "payment.receipt"

	maxErrorBody = 4 << 10
)

var ErrGateway = errors.New("payment gateway error")

type Order struct {
	ID         string            `json:"id"`
	Entity     string            `json:"entity"`
	Amount     int64             `json:"amount"`
	AmountPaid int64             `json:"amount_paid"`
	AmountDue  int64             `json:"amount_due"`
	Currency   string            `json:"currency"`
	Receipt    string            `json:"receipt"`
	Status     string            `json:"status"`
	Notes      map[string]string `json:"notes,omitempty"`
	CreatedAt  int64             `json:"created_at"`
}

type createOrderRequest struct {
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt,omitempty"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type gatewayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// Gateway talks to the hosted checkout provider.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
	KeyID() string
}

type gatewayImpl struct {
	client *http.Client
	config *config.Config
	otel   otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Gateway {
	return &gatewayImpl{
		client: &http.Client{
			Timeout: time.Duration(cfg.External.Payment.TimeoutSeconds) * time.Second,
		},
		config: cfg,
		otel:   ot,
	}
}

func (g *gatewayImpl) KeyID() string {
	return g.config.External.Payment.KeyID
}

func (g *gatewayImpl) CreateOrder(ctx context.Context, amountPaise int64, receipt string, notes map[string]string) (order Order, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(&err)

	scope.SetAttributes(map[string]any{
		otelAttrAmount:  amountPaise,
		otelAttrReceipt: receipt,
	})

	body, err := json.Marshal(createOrderRequest{
		Amount:   amountPaise,
		Currency: g.config.External.Payment.Currency,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		return order, fmt.Errorf("failed to marshal order request: %w", err)
	}

	url := strings.TrimSuffix(g.config.External.Payment.BaseURL, "/") + ordersPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return order, fmt.Errorf("failed to build order request: %w", err)
	}

	req.SetBasicAuth(g.config.External.Payment.KeyID, g.config.External.Payment.KeySecret)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("receipt", receipt).Msg("failed to reach payment gateway")

		return order, fmt.Errorf("failed to create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var gwErr gatewayError

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		_ = json.Unmarshal(raw, &gwErr)

		log.Error().
			Int("status", resp.StatusCode).
			Str("code", gwErr.Error.Code).
			Str("description", gwErr.Error.Description).
			Msg("payment gateway rejected order")

		return order, fmt.Errorf("%w: status %d %s", ErrGateway, resp.StatusCode, gwErr.Error.Description)
	}

	if err = json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return order, fmt.Errorf("failed to decode order response: %w", err)
	}

	return order, nil
}

// VerifySignature checks hex(HMAC-SHA256(secret, orderID|paymentID)) in constant time.
func (g *gatewayImpl) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(g.config.External.Payment.KeySecret, orderID, paymentID, signature)
}

func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))

	return hex.EncodeToString(mac.Sum(nil))
}

func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if orderID == constant.Empty || paymentID == constant.Empty || signature == constant.Empty {
		return false
	}

	expected := Sign(secret, orderID, paymentID)

	return hmac.Equal([]byte(expected), []byte(strings.ToLower(signature)))
}
