package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/onecheckout/checkout-demo/internal/model"
)

func pendingOrder() model.Order {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	return model.Order{
		ID:        "ord_test",
		Status:    model.StatusPending,
		Subtotal:  5,
		Amount:    5,
		Currency:  "usd",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestReconcile_AdoptsPaymentFields(t *testing.T) {
	order := pendingOrder()
	now := order.UpdatedAt.Add(time.Minute)
	patch := model.GatewayPatch{
		PaymentID:    "pay_1",
		PaymentToken: "tok_1",
		Links:        json.RawMessage(`[{"rel":"checkout","href":"https://gw/c/1"}]`),
	}

	got := Reconcile(order, patch, now)

	assert.Equal(t, "pay_1", got.PaymentID)
	assert.Equal(t, "tok_1", got.PaymentToken)
	assert.JSONEq(t, string(patch.Links), string(got.PaymentLinks))
	assert.Equal(t, model.StatusPending, got.Status)
	assert.Equal(t, now, got.UpdatedAt)
}

func TestReconcile_SuccessIsSticky(t *testing.T) {
	order := pendingOrder()
	order.Status = model.StatusSuccess
	order.PaymentID = "pay_1"
	now := order.UpdatedAt.Add(time.Minute)

	patches := []model.GatewayPatch{
		{Status: model.StatusFailed},
		{Status: model.StatusFailed, LatestError: "card declined"},
		{PaymentID: "pay_other", PaymentToken: "tok_other"},
		{},
	}
	for _, patch := range patches {
		got := Reconcile(order, patch, now)
		assert.Equal(t, order, got)
	}
}

func TestReconcile_StatusTransitions(t *testing.T) {
	now := time.Date(2026, 1, 10, 13, 0, 0, 0, time.UTC)

	order := pendingOrder()
	got := Reconcile(order, model.GatewayPatch{Status: model.StatusSuccess}, now)
	assert.Equal(t, model.StatusSuccess, got.Status)

	order = pendingOrder()
	got = Reconcile(order, model.GatewayPatch{Status: model.StatusFailed}, now)
	assert.Equal(t, model.StatusFailed, got.Status)

	// a definitive success from the gateway wins even after a failure
	got = Reconcile(got, model.GatewayPatch{Status: model.StatusSuccess}, now)
	assert.Equal(t, model.StatusSuccess, got.Status)

	failed := pendingOrder()
	failed.Status = model.StatusFailed
	got = Reconcile(failed, model.GatewayPatch{Status: model.StatusFailed}, now)
	assert.Equal(t, failed, got)
}

func TestReconcile_PaymentIDConflictKeepsExisting(t *testing.T) {
	order := pendingOrder()
	order.PaymentID = "pay_1"
	now := order.UpdatedAt.Add(time.Minute)

	got := Reconcile(order, model.GatewayPatch{PaymentID: "pay_2"}, now)

	assert.Equal(t, "pay_1", got.PaymentID)
	assert.Contains(t, got.LatestError, "pay_1")
	assert.Contains(t, got.LatestError, "pay_2")
}

func TestReconcile_TokenRotates(t *testing.T) {
	order := pendingOrder()
	order.PaymentToken = "tok_old"
	now := order.UpdatedAt.Add(time.Minute)

	got := Reconcile(order, model.GatewayPatch{PaymentToken: "tok_new"}, now)

	assert.Equal(t, "tok_new", got.PaymentToken)
}

func TestReconcile_LatestErrorOverwrites(t *testing.T) {
	order := pendingOrder()
	order.LatestError = "gateway error 500: boom"
	now := order.UpdatedAt.Add(time.Minute)

	got := Reconcile(order, model.GatewayPatch{LatestError: "gateway error 502: later"}, now)

	assert.Equal(t, "gateway error 502: later", got.LatestError)
}

func TestReconcile_EmptyPatchIsNoOp(t *testing.T) {
	order := pendingOrder()
	now := order.UpdatedAt.Add(time.Minute)

	got := Reconcile(order, model.GatewayPatch{}, now)

	assert.Equal(t, order, got)
	assert.Equal(t, order.UpdatedAt, got.UpdatedAt)
}

func TestReconcile_Idempotent(t *testing.T) {
	order := pendingOrder()
	now := order.UpdatedAt.Add(time.Minute)
	patch := model.GatewayPatch{
		PaymentID:    "pay_1",
		PaymentToken: "tok_1",
		Status:       model.StatusSuccess,
	}

	once := Reconcile(order, patch, now)
	twice := Reconcile(once, patch, now.Add(time.Minute))

	assert.Equal(t, once, twice)
}

func TestReconcile_ConflictThenSamePatchStable(t *testing.T) {
	order := pendingOrder()
	order.PaymentID = "pay_1"
	now := order.UpdatedAt.Add(time.Minute)
	patch := model.GatewayPatch{PaymentID: "pay_2"}

	once := Reconcile(order, patch, now)
	twice := Reconcile(once, patch, now.Add(time.Minute))

	// same conflict reported, updated_at untouched the second time
	assert.Equal(t, once, twice)
}
