package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/onecheckout/checkout-demo/internal/config"
	"github.com/onecheckout/checkout-demo/internal/model"
)

// Gateway status that maps to an order's "success".
const gatewayStatusPaid = "PAID"

// PaymentClient talks to the hosted-checkout payment API. Gateway failures
// never escape as errors: they come back inside GatewayPatch.LatestError so
// the order flow can degrade instead of failing the whole request.
type PaymentClient interface {
	InitPayment(ctx context.Context, order *model.Order) model.GatewayPatch
	FetchStatus(ctx context.Context, paymentID string) (model.GatewayPatch, error)
}

type paymentClientImpl struct {
	httpClient *http.Client
	baseAPIURL string
	apiKey     string
	successURL string
	cancelURL  string
}

type gatewayOrderLine struct {
	Quantity      int              `json:"quantity"`
	SKU           string           `json:"sku"`
	UnitPrice     float64          `json:"unit_price"`
	Title         string           `json:"title"`
	ImageURL      string           `json:"image_url"`
	ComparedPrice float64          `json:"compared_price"`
	Properties    []model.Property `json:"properties"`
}

type createPaymentRequest struct {
	Amount       float64            `json:"amount"`
	Subtotal     float64            `json:"subtotal"`
	Currency     string             `json:"currency"`
	ShippingName string             `json:"shipping_name"`
	ShippingFee  float64            `json:"shipping_fee"`
	OrderLines   []gatewayOrderLine `json:"order_lines"`
	SuccessURL   string             `json:"success_url"`
	CancelURL    string             `json:"cancel_url"`
}

type gatewayResult struct {
	ID           string          `json:"id"`
	PaymentToken string          `json:"payment_token"`
	Status       string          `json:"status"`
	Links        json.RawMessage `json:"links"`
	Created      int64           `json:"created"`
	Updated      int64           `json:"updated"`
}

type gatewayErrorBody struct {
	Message string `json:"message"`
}

func NewPaymentClient(paymentCfg *config.Payment, siteBaseURL string) PaymentClient {
	return &paymentClientImpl{
		httpClient: &http.Client{
			Timeout: paymentCfg.Timeout,
		},
		baseAPIURL: paymentCfg.APIURL,
		apiKey:     paymentCfg.APIKey,
		successURL: siteBaseURL + "/thankyou",
		cancelURL:  siteBaseURL + "/cancel",
	}
}

func (c *paymentClientImpl) InitPayment(ctx context.Context, order *model.Order) model.GatewayPatch {
	lines := make([]gatewayOrderLine, len(order.OrderLines))
	for i, line := range order.OrderLines {
		lines[i] = gatewayOrderLine{
			Quantity:      line.Quantity,
			SKU:           line.SKU,
			UnitPrice:     line.UnitPrice,
			Title:         line.Title,
			ImageURL:      line.ImageURL,
			ComparedPrice: line.ComparedPrice,
			Properties:    line.Properties,
		}
	}

	payload := createPaymentRequest{
		Amount:       order.Amount,
		Subtotal:     order.Subtotal,
		Currency:     order.Currency,
		ShippingName: order.ShippingName,
		ShippingFee:  order.ShippingFee,
		OrderLines:   lines,
		SuccessURL:   fmt.Sprintf("%s?order_id=%s", c.successURL, order.ID),
		CancelURL:    c.cancelURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return model.GatewayPatch{LatestError: fmt.Sprintf("marshal payment request: %v", err)}
	}

	result, gwErr := c.do(ctx, http.MethodPost, c.baseAPIURL, bytes.NewBuffer(body))
	if gwErr != "" {
		return model.GatewayPatch{LatestError: gwErr}
	}

	patch := model.GatewayPatch{}
	if result.PaymentToken != "" {
		patch.PaymentToken = result.PaymentToken
		patch.PaymentID = result.ID
		// Redirect links are opaque passthrough data, never parsed here.
		patch.Links = result.Links
	}
	return patch
}

func (c *paymentClientImpl) FetchStatus(ctx context.Context, paymentID string) (model.GatewayPatch, error) {
	if paymentID == "" {
		return model.GatewayPatch{}, model.NewValidationError(
			model.CodeMissingPaymentID, "payment id is required")
	}

	url := fmt.Sprintf("%s/%s", c.baseAPIURL, paymentID)
	result, gwErr := c.do(ctx, http.MethodGet, url, nil)
	if gwErr != "" {
		return model.GatewayPatch{LatestError: gwErr}, nil
	}

	patch := model.GatewayPatch{
		PaymentToken: result.PaymentToken,
		PaymentID:    result.ID,
	}
	switch result.Status {
	case gatewayStatusPaid:
		patch.Status = model.StatusSuccess
	case "":
		// No definitive status yet; leave unset so reconciliation does not
		// regress an existing success.
	default:
		patch.Status = model.StatusFailed
	}
	return patch, nil
}

// do runs one gateway call. The second return value is a non-empty error
// description when the call failed at transport or HTTP level.
func (c *paymentClientImpl) do(ctx context.Context, method, url string, body io.Reader) (*gatewayResult, string) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Sprintf("build gateway request: %v", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Sprintf("call payment gateway: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var errBody gatewayErrorBody
		_ = json.Unmarshal(raw, &errBody)
		if errBody.Message == "" {
			errBody.Message = string(raw)
		}
		return nil, fmt.Sprintf("gateway error %d: %s", resp.StatusCode, errBody.Message)
	}

	var result gatewayResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Sprintf("decode gateway response: %v", err)
	}

	return &result, ""
}
