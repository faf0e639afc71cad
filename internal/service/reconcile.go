package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/onecheckout/checkout-demo/internal/model"
)

// Reconcile merges one gateway patch into an order and returns the result.
// It is a pure function over its inputs; persistence is the caller's job.
//
// Success is terminal: an order that already reached "success" is returned
// unchanged no matter what the patch claims. A payment id, once set, is
// gateway-owned identity; a conflicting id from a patch is recorded in
// latest_error instead of overwriting it. updated_at only moves when some
// field actually changed, so applying the same patch twice is idempotent.
func Reconcile(order model.Order, patch model.GatewayPatch, now time.Time) model.Order {
	if order.Status == model.StatusSuccess {
		return order
	}

	changed := false

	if patch.PaymentID != "" {
		switch {
		case order.PaymentID == "":
			order.PaymentID = patch.PaymentID
			changed = true
		case order.PaymentID != patch.PaymentID:
			conflict := fmt.Sprintf("payment id mismatch: order has %s, gateway reported %s",
				order.PaymentID, patch.PaymentID)
			if order.LatestError != conflict {
				order.LatestError = conflict
				changed = true
			}
		}
	}

	// Tokens may rotate; they are not identity-bearing.
	if patch.PaymentToken != "" && patch.PaymentToken != order.PaymentToken {
		order.PaymentToken = patch.PaymentToken
		changed = true
	}

	if len(patch.Links) > 0 && !bytes.Equal(patch.Links, order.PaymentLinks) {
		order.PaymentLinks = append([]byte(nil), patch.Links...)
		changed = true
	}

	switch patch.Status {
	case model.StatusSuccess:
		order.Status = model.StatusSuccess
		changed = true
	case model.StatusFailed:
		if order.Status == model.StatusPending {
			order.Status = model.StatusFailed
			changed = true
		}
	}

	if patch.LatestError != "" && patch.LatestError != order.LatestError {
		order.LatestError = patch.LatestError
		changed = true
	}

	if changed {
		order.UpdatedAt = now
	}

	return order
}
