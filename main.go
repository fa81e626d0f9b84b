package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	config "github.com/dmfernando/donation-campaign-go/config"
	payments "github.com/dmfernando/donation-campaign-go/payments"
	routes "github.com/dmfernando/donation-campaign-go/routes"
	utils "github.com/dmfernando/donation-campaign-go/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	gw := payments.NewGateway(payments.NewStore(cfg.DB), payments.Options{
		BaseURL:     cfg.BaseURL,
		Currency:    cfg.Currency,
		SendReceipt: utils.SendDonationReceipt,
	})

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "Stripe-Signature")
	r.Use(cors.New(corsConfig))

	routes.SetupRoutes(r, cfg, gw)

	log.Printf("listening on :%s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
