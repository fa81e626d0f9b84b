package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/dmfernando/donation-campaign-go/config"
	models "github.com/dmfernando/donation-campaign-go/models"
)

// ---------------- PUBLIC LIST ----------------
// Only approved messages are shown on the campaign page, featured first.
func ListApprovedMessages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var messages []models.DonorMessage
		err := cfg.DB.WithContext(c.Request.Context()).
			Where("is_approved = ?", true).
			Order("is_featured DESC, created_at DESC").
			Find(&messages).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// ---------------- ADMIN LIST ----------------
func ListAllMessages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := cfg.DB.WithContext(c.Request.Context()).Model(&models.DonorMessage{})
		if approved := c.Query("approved"); approved != "" {
			q = q.Where("is_approved = ?", approved == "true")
		}

		var messages []models.DonorMessage
		if err := q.Order("created_at DESC").Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch messages"})
			return
		}

		c.JSON(http.StatusOK, messages)
	}
}

// ---------------- MODERATE ----------------
func UpdateMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IsApproved *bool `json:"is_approved"`
			IsFeatured *bool `json:"is_featured"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := map[string]interface{}{}
		if input.IsApproved != nil {
			update["is_approved"] = *input.IsApproved
		}
		if input.IsFeatured != nil {
			update["is_featured"] = *input.IsFeatured
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		res := cfg.DB.WithContext(c.Request.Context()).
			Model(&models.DonorMessage{}).
			Where("id = ?", c.Param("id")).
			Updates(update)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update message"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "message updated", "id": c.Param("id")})
	}
}

// ---------------- DELETE ----------------
func DeleteMessage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := cfg.DB.WithContext(c.Request.Context()).
			Where("id = ?", c.Param("id")).
			Delete(&models.DonorMessage{})
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "message deleted", "id": c.Param("id")})
	}
}
