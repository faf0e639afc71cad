package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/onecheckout/checkout-demo/internal/catalog"
	"github.com/onecheckout/checkout-demo/internal/client"
	"github.com/onecheckout/checkout-demo/internal/dto"
	"github.com/onecheckout/checkout-demo/internal/model"
	"github.com/onecheckout/checkout-demo/internal/repository"
)

// Attempts at a read-reconcile-swap cycle before giving up. Conflicts only
// happen when captures for the same order race, so a couple of retries is
// plenty.
const casRetries = 5

type OrderService interface {
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context) ([]*model.Order, error)
	Capture(ctx context.Context, id, paymentID string) (*model.Order, error)
	MarkSuccess(ctx context.Context, id string) (*model.Order, error)
	RetryPayment(ctx context.Context, id string) (*model.Order, error)
}

type orderServiceImpl struct {
	store    repository.OrderStore
	catalog  catalog.Catalog
	payments client.PaymentClient
}

func NewOrderService(store repository.OrderStore, cat catalog.Catalog, payments client.PaymentClient) OrderService {
	return &orderServiceImpl{
		store:    store,
		catalog:  cat,
		payments: payments,
	}
}

// Create prices the requested lines, persists the pending order, then asks
// the gateway for a hosted-checkout session. A gateway failure does not fail
// the request: the order comes back pending with latest_error populated.
func (s *orderServiceImpl) Create(ctx context.Context, req *dto.CreateOrderRequest) (*model.Order, error) {
	opts := PricingOptions{
		Currency:       req.Currency,
		ShippingName:   req.ShippingName,
		ShippingFee:    req.ShippingFee,
		TaxAmount:      req.TaxAmount,
		TipPrice:       req.TipPrice,
		DiscountAmount: req.DiscountAmount,
	}

	order, err := PriceOrder(ctx, req.OrderLines, opts, s.catalog, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	patch := s.payments.InitPayment(ctx, order)
	if patch.LatestError != "" {
		log.Printf("init payment for order %s: %s", order.ID, patch.LatestError)
	}

	return s.applyPatch(ctx, order.ID, patch)
}

func (s *orderServiceImpl) Get(ctx context.Context, id string) (*model.Order, error) {
	return s.store.Get(ctx, id)
}

func (s *orderServiceImpl) List(ctx context.Context) ([]*model.Order, error) {
	return s.store.ListAll(ctx)
}

// Capture asks the gateway for the payment's current status and merges the
// answer into the stored order. The payment id may come from the request;
// otherwise the one recorded on the order is used.
func (s *orderServiceImpl) Capture(ctx context.Context, id, paymentID string) (*model.Order, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == model.StatusSuccess {
		return order, nil
	}

	if paymentID == "" {
		paymentID = order.PaymentID
	}

	patch, err := s.payments.FetchStatus(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if patch.LatestError != "" {
		log.Printf("fetch payment status for order %s: %s", id, patch.LatestError)
	}

	return s.applyPatch(ctx, id, patch)
}

// MarkSuccess forces the order to success. Used by the pop-up/SDK flow where
// the gateway widget reports completion directly to the storefront.
func (s *orderServiceImpl) MarkSuccess(ctx context.Context, id string) (*model.Order, error) {
	return s.applyPatch(ctx, id, model.GatewayPatch{Status: model.StatusSuccess})
}

// RetryPayment re-initiates payment for a failed order: the order returns to
// pending and adopts a fresh gateway payment id, leaving the dead one behind.
func (s *orderServiceImpl) RetryPayment(ctx context.Context, id string) (*model.Order, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		order, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.Status != model.StatusFailed {
			return nil, model.NewValidationError(model.CodeInvalidState,
				"only failed orders can retry payment, order %s is %s", id, order.Status)
		}

		next := *order
		next.Status = model.StatusPending
		next.PaymentID = ""
		next.PaymentToken = ""
		next.PaymentLinks = nil
		next.LatestError = ""
		next.UpdatedAt = time.Now()

		patch := s.payments.InitPayment(ctx, &next)
		if patch.LatestError != "" {
			log.Printf("retry payment for order %s: %s", id, patch.LatestError)
		}
		next = Reconcile(next, patch, time.Now())

		err = s.store.CompareAndSwap(ctx, order.Version, &next)
		if err == nil {
			return &next, nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return nil, fmt.Errorf("store order %s: %w", id, err)
		}
	}

	return nil, fmt.Errorf("retry payment for order %s: too many concurrent updates", id)
}

// applyPatch runs the read-reconcile-swap cycle. The version check in
// CompareAndSwap serializes racing writers for one order id; on conflict the
// order is re-read and the patch re-applied, which keeps terminal success
// intact no matter how captures interleave.
func (s *orderServiceImpl) applyPatch(ctx context.Context, id string, patch model.GatewayPatch) (*model.Order, error) {
	for attempt := 0; attempt < casRetries; attempt++ {
		order, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		updated := Reconcile(*order, patch, time.Now())
		if updated.UpdatedAt.Equal(order.UpdatedAt) {
			// Nothing changed; skip the write.
			return order, nil
		}

		err = s.store.CompareAndSwap(ctx, order.Version, &updated)
		if err == nil {
			return &updated, nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return nil, fmt.Errorf("store order %s: %w", id, err)
		}
	}

	return nil, fmt.Errorf("reconcile order %s: too many concurrent updates", id)
}
