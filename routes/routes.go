package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/dmfernando/donation-campaign-go/config"
	controllers "github.com/dmfernando/donation-campaign-go/controllers"
	middleware "github.com/dmfernando/donation-campaign-go/middleware"
	payments "github.com/dmfernando/donation-campaign-go/payments"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, gw *payments.Gateway) {
	// public
	r.POST("/auth/login", controllers.Login(cfg))
	r.POST("/auth/refresh", controllers.RefreshToken(cfg))

	// donation flow
	r.POST("/payments/checkout-session", controllers.CreateCheckoutSession(gw))
	r.POST("/payments/pix", controllers.CreatePixPayment(gw))
	r.POST("/payments/webhook", controllers.StripeWebhook(gw))

	// public campaign content
	r.GET("/campaign/stats", controllers.GetCampaignStats(cfg))
	r.GET("/messages", controllers.ListApprovedMessages(cfg))
	r.GET("/images", controllers.ListProjectImages(cfg))

	// protected
	auth := middleware.AuthMiddleware(cfg)

	donations := r.Group("/donations")
	donations.Use(auth)
	{
		donations.GET("", controllers.ListDonations(cfg))
		donations.GET("/:id", controllers.GetDonation(cfg))
		donations.PATCH("/:id/status", controllers.UpdateDonationStatus(cfg))
	}

	settings := r.Group("/settings")
	settings.Use(auth)
	{
		settings.GET("/campaign", controllers.GetCampaignSettings(cfg))
		settings.PUT("/campaign", controllers.UpdateCampaignSettings(cfg))
		settings.GET("/stripe", controllers.GetStripeConfig(cfg))
		settings.PUT("/stripe", controllers.UpdateStripeConfig(cfg, gw))
	}

	messages := r.Group("/admin/messages")
	messages.Use(auth)
	{
		messages.GET("", controllers.ListAllMessages(cfg))
		messages.PATCH("/:id", controllers.UpdateMessage(cfg))
		messages.DELETE("/:id", controllers.DeleteMessage(cfg))
	}

	images := r.Group("/admin/images")
	images.Use(auth)
	{
		images.POST("", controllers.CreateProjectImage(cfg))
		images.PATCH("/:id", controllers.UpdateProjectImage(cfg))
		images.DELETE("/:id", controllers.DeleteProjectImage(cfg))
	}
}
