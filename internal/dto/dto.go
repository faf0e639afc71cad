package dto

import "github.com/onecheckout/checkout-demo/internal/model"

type OrderLineInput struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderLines     []OrderLineInput `json:"order_lines"`
	Currency       string           `json:"currency,omitempty"`
	ShippingName   string           `json:"shipping_name,omitempty"`
	ShippingFee    float64          `json:"shipping_fee,omitempty"`
	TaxAmount      float64          `json:"tax_amount,omitempty"`
	TipPrice       float64          `json:"tip_price,omitempty"`
	DiscountAmount float64          `json:"discount_amount,omitempty"`
}

type CreateOrderResponse struct {
	Success bool         `json:"success"`
	Order   *model.Order `json:"order"`
}

type ListOrdersResponse struct {
	Success bool           `json:"success"`
	Orders  []*model.Order `json:"orders"`
}

type CapturePaymentRequest struct {
	PaymentID string `json:"payment_id"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type ListVariantsResponse struct {
	Success  bool            `json:"success"`
	Variants []model.Variant `json:"variants"`
}

type SDKConfigResponse struct {
	SDKURL     string `json:"sdk_url"`
	MerchantID string `json:"merchant_id"`
}
