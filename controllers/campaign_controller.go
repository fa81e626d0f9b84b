package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/dmfernando/donation-campaign-go/config"
	models "github.com/dmfernando/donation-campaign-go/models"
)

// ---------------- PUBLIC STATS ----------------
// GetCampaignStats aggregates completed donations against the campaign goal.
func GetCampaignStats(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.CampaignSettings
		if err := cfg.DB.WithContext(c.Request.Context()).First(&settings).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not configured"})
			return
		}

		var total float64
		err := cfg.DB.WithContext(c.Request.Context()).
			Model(&models.Donation{}).
			Where("status = ?", models.DonationCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&total).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not aggregate donations"})
			return
		}

		stats := models.CampaignStats{
			GoalAmount:   settings.GoalAmount,
			Title:        settings.Title,
			Description:  settings.Description,
			TotalDonated: total,
		}

		if settings.GoalAmount > 0 {
			stats.PercentageCompleted = total / settings.GoalAmount * 100
		}

		c.JSON(http.StatusOK, stats)
	}
}

// ---------------- ADMIN SETTINGS ----------------
func GetCampaignSettings(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.CampaignSettings
		if err := cfg.DB.WithContext(c.Request.Context()).FirstOrCreate(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}

func UpdateCampaignSettings(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			GoalAmount  *float64 `json:"goal_amount"`
			Title       *string  `json:"title"`
			Description *string  `json:"description"`
			IsActive    *bool    `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var settings models.CampaignSettings
		if err := cfg.DB.WithContext(c.Request.Context()).FirstOrCreate(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load settings"})
			return
		}

		if input.GoalAmount != nil {
			if *input.GoalAmount < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "goal_amount must not be negative"})
				return
			}
			settings.GoalAmount = *input.GoalAmount
		}
		if input.Title != nil {
			settings.Title = *input.Title
		}
		if input.Description != nil {
			settings.Description = *input.Description
		}
		if input.IsActive != nil {
			settings.IsActive = *input.IsActive
		}

		if err := cfg.DB.WithContext(c.Request.Context()).Save(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
			return
		}

		c.JSON(http.StatusOK, settings)
	}
}
