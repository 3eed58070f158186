// Package handlers holds the gin handlers for the payment API.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"molliepay/internal/checkout"
	"molliepay/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) PaymentHandler {
	return PaymentHandler{payments: payments}
}

// Start creates a gateway order for the posted host order and returns
// the hosted-checkout form.
func (h *PaymentHandler) Start(c *gin.Context) {
	var order checkout.OrderView
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if order.OrderNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing orderNumber"})
		return
	}

	form, err := h.payments.StartPayment(c, order)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, form)
}

// Get returns the stored payment state.
func (h *PaymentHandler) Get(c *gin.Context) {
	res, err := h.payments.GetPayment(c, c.Param("order_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Refresh re-fetches the gateway order and applies the reconciled status.
func (h *PaymentHandler) Refresh(c *gin.Context) {
	h.mutate(c, h.payments.RefreshStatus)
}

// Cancel cancels the gateway order.
func (h *PaymentHandler) Cancel(c *gin.Context) {
	h.mutate(c, h.payments.CancelPayment)
}

// Refund refunds the gateway order in full.
func (h *PaymentHandler) Refund(c *gin.Context) {
	h.mutate(c, h.payments.RefundPayment)
}

// Capture ships the gateway order, capturing any authorized payment.
func (h *PaymentHandler) Capture(c *gin.Context) {
	h.mutate(c, h.payments.CapturePayment)
}

// GetEvents returns the audit trail of applied status transitions.
func (h *PaymentHandler) GetEvents(c *gin.Context) {
	res, err := h.payments.StatusHistory(c, c.Param("order_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) mutate(c *gin.Context, op func(ctx context.Context, orderNumber string) (checkout.PaymentOrder, error)) {
	res, err := op(c, c.Param("order_number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, checkout.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, checkout.ErrOrderAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
