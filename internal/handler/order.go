package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onecheckout/checkout-demo/internal/catalog"
	"github.com/onecheckout/checkout-demo/internal/config"
	"github.com/onecheckout/checkout-demo/internal/dto"
	"github.com/onecheckout/checkout-demo/internal/model"
	"github.com/onecheckout/checkout-demo/internal/service"
)

type OrderHandler struct {
	orders     service.OrderService
	catalog    catalog.Catalog
	paymentCfg *config.Payment
}

func NewOrderHandler(orders service.OrderService, cat catalog.Catalog, paymentCfg *config.Payment) *OrderHandler {
	return &OrderHandler{
		orders:     orders,
		catalog:    cat,
		paymentCfg: paymentCfg,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request"})
	}

	order, err := h.orders.Create(ctx, &req)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: verr.Message})
		}
		return err
	}

	return c.JSON(http.StatusOK, dto.CreateOrderResponse{Success: true, Order: order})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders.List(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ListOrdersResponse{Success: true, Orders: orders})
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CaptureOrder(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	paymentID := c.QueryParam("payment_id")
	if paymentID == "" {
		var req dto.CapturePaymentRequest
		if err := c.Bind(&req); err == nil {
			paymentID = req.PaymentID
		}
	}

	order, err := h.orders.Capture(ctx, id, paymentID)
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) MarkOrderSuccess(c echo.Context) error {
	order, err := h.orders.MarkSuccess(c.Request().Context(), c.Param("id"))
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) RetryOrderPayment(c echo.Context) error {
	order, err := h.orders.RetryPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return orderError(c, err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListProducts(c echo.Context) error {
	variants := h.catalog.ListAll(c.Request().Context())

	return c.JSON(http.StatusOK, dto.ListVariantsResponse{Success: true, Variants: variants})
}

// SDKConfig exposes the values the storefront needs to load the hosted
// payment widget. The widget itself is external; the backend only hands
// over the pointers.
func (h *OrderHandler) SDKConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.SDKConfigResponse{
		SDKURL:     h.paymentCfg.SDKURL,
		MerchantID: h.paymentCfg.MerchantID,
	})
}

func orderError(c echo.Context, err error) error {
	if errors.Is(err, model.ErrOrderNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": verr.Message})
	}

	return err
}
