package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	config "github.com/dmfernando/donation-campaign-go/config"
	models "github.com/dmfernando/donation-campaign-go/models"
	utils "github.com/dmfernando/donation-campaign-go/utils"
)

var errStatusFinal = errors.New("donation status is final")

// ---------------- LIST ----------------
func ListDonations(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Build filter ---
		q := cfg.DB.WithContext(c.Request.Context()).Model(&models.Donation{})
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if method := c.Query("payment_method"); method != "" {
			q = q.Where("payment_method = ?", method)
		}

		// --- Fetch data ---
		var donations []models.Donation
		if err := q.Order("created_at DESC").Find(&donations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch donations"})
			return
		}

		if len(donations) == 0 {
			c.JSON(http.StatusOK, []models.Donation{})
			return
		}

		// --- Pick the most recently updated donation ---
		latest := donations[0]
		for _, d := range donations {
			if d.UpdatedAt.After(latest.UpdatedAt) {
				latest = d
			}
		}

		// --- Generate ETag from latest donation ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		// --- Add Last-Modified from latest donation ---
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, donations)
	}
}

// ---------------- GET ----------------
func GetDonation(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var donation models.Donation
		err := cfg.DB.WithContext(c.Request.Context()).
			Where("id = ?", c.Param("id")).
			First(&donation).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
			return
		}

		etag := utils.GenerateETag(donation.ID, donation.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, donation)
	}
}

// ---------------- ADMIN STATUS OVERRIDE ----------------
// Donations are append-only; the only mutation the admin panel may apply is a
// forward status transition on a still-pending row.
func UpdateDonationStatus(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status models.DonationStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !input.Status.Valid() || input.Status == models.DonationPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target status"})
			return
		}

		var donation models.Donation

		err := cfg.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("id = ?", c.Param("id")).First(&donation).Error; err != nil {
				return err
			}

			if donation.Status.Terminal() {
				return errStatusFinal
			}

			donation.Status = input.Status

			return tx.Model(&donation).Update("status", input.Status).Error
		})

		switch err {
		case nil:
			c.JSON(http.StatusOK, gin.H{"message": "donation updated", "id": donation.ID, "status": donation.Status})
		case errStatusFinal:
			c.JSON(http.StatusConflict, gin.H{"error": "donation status is final"})
		case gorm.ErrRecordNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update donation"})
		}
	}
}
