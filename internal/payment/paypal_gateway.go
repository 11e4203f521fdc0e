package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"emedica-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type paypalGateway struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewPayPalGateway(baseURL, clientID, clientSecret string) Gateway {
	if clientID == "" || clientSecret == "" {
		logger.L().Warn("payment gateway credentials are empty")
	}

	return &paypalGateway{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- CreateOrder -----------------

func (p *paypalGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Intent, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CreateOrder"),
		zap.String("reference_id", req.ReferenceID),
	)

	currency := req.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	body := checkoutOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			ReferenceID: req.ReferenceID,
			InvoiceID:   req.ReferenceID,
			Amount: amount{
				CurrencyCode: currency,
				Value:        req.Amount.StringFixed(2),
			},
		}},
	}

	var res checkoutOrderResponse
	if err := p.do(ctx, http.MethodPost, "/v2/checkout/orders", body, &res); err != nil {
		log.Error("create payment order failed", zap.Error(err))
		return nil, err
	}

	intent := &Intent{ID: res.ID, Status: res.Status}
	for _, l := range res.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			intent.ApproveURL = l.Href
			break
		}
	}

	log.Info("payment order created",
		zap.String("payment_id", intent.ID),
		zap.String("status", intent.Status),
	)
	return intent, nil
}

// ----------------- CaptureOrder -----------------

func (p *paypalGateway) CaptureOrder(ctx context.Context, externalID string) (*Capture, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "CaptureOrder"),
		zap.String("payment_id", externalID),
	)

	var res checkoutOrderResponse
	path := "/v2/checkout/orders/" + url.PathEscape(externalID) + "/capture"
	if err := p.do(ctx, http.MethodPost, path, struct{}{}, &res); err != nil {
		log.Error("capture payment failed", zap.Error(err))
		return nil, err
	}

	capture := &Capture{ID: res.ID, Status: res.Status}
	if res.Payer != nil {
		capture.PayerEmail = res.Payer.EmailAddress
	}
	if err := sumCaptures(capture, res.PurchaseUnits); err != nil {
		log.Error("invalid capture amount", zap.Error(err))
		return nil, err
	}

	log.Info("payment captured",
		zap.String("status", capture.Status),
		zap.String("amount", capture.Amount.StringFixed(2)),
	)
	return capture, nil
}

func sumCaptures(c *Capture, units []capturedUnit) error {
	for _, u := range units {
		for _, cp := range u.Payments.Captures {
			if cp.Status != StatusCompleted {
				continue
			}
			v, err := decimal.NewFromString(cp.Amount.Value)
			if err != nil {
				return fmt.Errorf("%w: capture amount %q: %v", ErrGateway, cp.Amount.Value, err)
			}
			if c.Currency == "" {
				c.Currency = cp.Amount.CurrencyCode
			} else if c.Currency != cp.Amount.CurrencyCode {
				return fmt.Errorf("%w: mixed capture currencies", ErrGateway)
			}
			c.Amount = c.Amount.Add(v)
		}
	}
	return nil
}

func (p *paypalGateway) do(ctx context.Context, method, path string, in, out any) error {
	jsonBody, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.clientID, p.clientSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: status %d: %s", ErrGateway, resp.StatusCode, string(bodyBytes))
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrGateway, err)
	}
	return nil
}
