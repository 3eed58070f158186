package handlers

import (
	"log/slog"
	"net/http"

	"molliepay/internal/provider"
	"molliepay/internal/service"
	"molliepay/internal/webhook"

	"github.com/gin-gonic/gin"
)

// CallbackHandler serves the one public endpoint Mollie calls per order.
// The `redirect` query marker separates the shopper's browser return
// from the async webhook notification; both carry no trustworthy
// payload beyond the gateway order id.
type CallbackHandler struct {
	payments  *service.PaymentService
	processor webhook.Processor
}

func NewCallbackHandler(payments *service.PaymentService, processor webhook.Processor) CallbackHandler {
	return CallbackHandler{payments: payments, processor: processor}
}

func (h *CallbackHandler) Callback(c *gin.Context) {
	if c.Query(provider.RedirectMarker) != "" {
		h.redirect(c)
		return
	}
	h.notify(c)
}

// redirect sends the returning shopper to the continue or cancel page.
// A browser is on the other end, so a resolution failure redirects to
// the configured error page instead of answering with a JSON body.
func (h *CallbackHandler) redirect(c *gin.Context) {
	dest, err := h.payments.RedirectDestination(c, c.Param("order_number"))
	if err != nil {
		slog.ErrorContext(c, "failed to resolve redirect destination",
			"order_number", c.Param("order_number"),
			"error", err,
		)
		if errDest := h.payments.ErrorDestination(); errDest != "" {
			c.Redirect(http.StatusFound, errDest)
			return
		}
		writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, dest)
}

// notify handles Mollie's webhook POST: a form-encoded `id` field.
// Mollie retries on non-2xx, so benign cases (unknown or mismatched id)
// still acknowledge with 200.
func (h *CallbackHandler) notify(c *gin.Context) {
	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing id"})
		return
	}

	if err := h.processor.ProcessNotification(c, webhook.Notification{MollieOrderID: id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}
