package model

import (
	"encoding/json"
	"time"
)

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusSuccess OrderStatus = "success"
	StatusFailed  OrderStatus = "failed"
)

// Property is a single key/value display attribute of a variant,
// e.g. {color, blue}. Order within a variant is meaningful.
type Property struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// OrderLine is a priced line on an order. Quantity comes from the client,
// everything else is copied from the catalog variant at pricing time.
type OrderLine struct {
	SKU           string     `json:"sku"`
	Quantity      int        `json:"quantity"`
	UnitPrice     float64    `json:"unit_price"`
	Title         string     `json:"title"`
	ImageURL      string     `json:"image_url"`
	ComparedPrice float64    `json:"compared_price,omitempty"`
	DiscountValue float64    `json:"discount_value,omitempty"`
	Properties    []Property `json:"properties,omitempty"`
}

type Order struct {
	ID             string      `gorm:"primaryKey;size:64;not null" json:"id"`
	Status         OrderStatus `gorm:"size:16;index;not null" json:"status"`
	Subtotal       float64     `json:"subtotal"`
	ShippingName   string      `gorm:"size:64" json:"shipping_name,omitempty"`
	ShippingFee    float64     `json:"shipping_fee"`
	TaxAmount      float64     `json:"tax_amount"`
	DiscountAmount float64     `json:"discount_amount"`
	TipPrice       float64     `json:"tip_price"`
	Amount         float64     `json:"amount"`
	Currency       string      `gorm:"size:8" json:"currency"`
	OrderLines     []OrderLine `gorm:"serializer:json" json:"order_lines"`

	// Assigned by the payment gateway. PaymentID is gateway-owned identity:
	// once set it only changes when the gateway itself issues a new one.
	PaymentToken string          `gorm:"size:256" json:"payment_token,omitempty"`
	PaymentID    string          `gorm:"size:64;index" json:"payment_id,omitempty"`
	PaymentLinks json.RawMessage `json:"payment_links,omitempty"`
	LatestError  string          `json:"latest_error,omitempty"`

	// Bumped on every write; used for optimistic concurrency in the store.
	Version int64 `json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// GatewayPatch is the normalized outcome of one gateway interaction.
// Zero-valued fields mean "no information", not "clear the field".
// It is merged into an Order by Reconcile and never persisted directly.
type GatewayPatch struct {
	PaymentToken string
	PaymentID    string
	Status       OrderStatus // "" when the gateway gave no definitive status
	LatestError  string
	Links        json.RawMessage
}

func (p GatewayPatch) IsEmpty() bool {
	return p.PaymentToken == "" && p.PaymentID == "" && p.Status == "" &&
		p.LatestError == "" && len(p.Links) == 0
}
