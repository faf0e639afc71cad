package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/onecheckout/checkout-demo/internal/catalog"
	"github.com/onecheckout/checkout-demo/internal/dto"
	"github.com/onecheckout/checkout-demo/internal/model"
)

const defaultCurrency = "usd"

// PricingOptions are the order-level adjustments a client may send along
// with its line items. All amounts default to zero.
type PricingOptions struct {
	Currency       string
	ShippingName   string
	ShippingFee    float64
	TaxAmount      float64
	TipPrice       float64
	DiscountAmount float64
}

// PriceOrder validates the requested lines against the catalog and builds a
// fresh pending order. Client-sent prices are never trusted: every pricing
// and display field is replaced with the catalog's current values, only the
// quantity is preserved from the input.
//
// subtotal = sum((unit_price - discount_value) * quantity)
// amount   = subtotal + shipping_fee + tax_amount + tip_price - discount_amount
func PriceOrder(ctx context.Context, lines []dto.OrderLineInput, opts PricingOptions, cat catalog.Catalog, now time.Time) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, model.NewValidationError(model.CodeEmptyLines, "no order lines provided")
	}

	subtotal := 0.0
	priced := make([]model.OrderLine, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, model.NewValidationError(model.CodeInvalidQuantity,
				"invalid quantity %d for SKU: %s", line.Quantity, line.SKU)
		}

		variant, ok := cat.Lookup(ctx, line.SKU)
		if !ok {
			return nil, model.NewValidationError(model.CodeInvalidSKU,
				"Invalid SKU: %s", line.SKU)
		}

		priced = append(priced, model.OrderLine{
			SKU:           variant.SKU,
			Quantity:      line.Quantity,
			UnitPrice:     variant.UnitPrice,
			Title:         variant.Title,
			ImageURL:      variant.ImageURL,
			ComparedPrice: variant.ComparedPrice,
			DiscountValue: variant.DiscountValue,
			Properties:    variant.Properties,
		})

		subtotal += (variant.UnitPrice - variant.DiscountValue) * float64(line.Quantity)
	}

	currency := opts.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	order := &model.Order{
		ID:             fmt.Sprintf("ord_%s", uuid.NewString()),
		Status:         model.StatusPending,
		Subtotal:       subtotal,
		ShippingName:   opts.ShippingName,
		ShippingFee:    opts.ShippingFee,
		TaxAmount:      opts.TaxAmount,
		DiscountAmount: opts.DiscountAmount,
		TipPrice:       opts.TipPrice,
		Amount:         subtotal + opts.ShippingFee + opts.TaxAmount + opts.TipPrice - opts.DiscountAmount,
		Currency:       currency,
		OrderLines:     priced,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return order, nil
}
