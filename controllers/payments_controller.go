package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	payments "github.com/dmfernando/donation-campaign-go/payments"
)

const supportFallback = " Tente novamente em alguns minutos ou entre em contato por telefone."

// paymentError maps a payment flow error onto the {error, code} envelope the
// frontend expects. Donors only ever see the plain-language message.
func paymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payments.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "VALIDATION_FAILED",
		})
	case errors.Is(err, payments.ErrStripeNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Pagamentos indisponíveis no momento." + supportFallback,
			"code":  "STRIPE_NOT_CONFIGURED",
		})
	case errors.Is(err, payments.ErrPixNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "PIX indisponível no momento." + supportFallback,
			"code":  "PIX_NOT_CONFIGURED",
		})
	case errors.Is(err, payments.ErrPixNotEnabled):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "PIX não está habilitado para esta campanha." + supportFallback,
			"code":  "PIX_NOT_ENABLED",
		})
	case errors.Is(err, payments.ErrStripeRequestFailed):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Não foi possível iniciar o pagamento." + supportFallback,
			"code":  "STRIPE_REQUEST_FAILED",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Erro interno ao processar a doação." + supportFallback,
			"code":  "INTERNAL_ERROR",
		})
	}
}

// ---------------- CARD CHECKOUT ----------------
func CreateCheckoutSession(gw *payments.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payments.DonationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_FAILED"})
			return
		}

		result, err := gw.CreateCheckoutSession(c.Request.Context(), req)
		if err != nil {
			paymentError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// ---------------- PIX ----------------
func CreatePixPayment(gw *payments.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req payments.DonationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "VALIDATION_FAILED"})
			return
		}

		result, err := gw.CreatePixPayment(c.Request.Context(), req)
		if err != nil {
			paymentError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
