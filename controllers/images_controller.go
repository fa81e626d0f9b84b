package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/dmfernando/donation-campaign-go/config"
	models "github.com/dmfernando/donation-campaign-go/models"
	utils "github.com/dmfernando/donation-campaign-go/utils"
)

// ---------------- CREATE ----------------
func CreateProjectImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Title        string `form:"title" binding:"required"`
			Description  string `form:"description"`
			DisplayOrder int    `form:"display_order"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		file, fileHeader, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		defer file.Close()

		imageURL, err := utils.UploadProjectImage(file, fileHeader)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed"})
			return
		}

		image := models.ProjectImage{
			Title:        input.Title,
			Description:  input.Description,
			ImageURL:     imageURL,
			DisplayOrder: input.DisplayOrder,
			IsActive:     true,
		}

		if err := cfg.DB.WithContext(c.Request.Context()).Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create image"})
			return
		}

		c.JSON(http.StatusCreated, image)
	}
}

// ---------------- LIST ----------------
// Public by default; the admin panel passes ?all=true to include inactive
// images.
func ListProjectImages(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := cfg.DB.WithContext(c.Request.Context()).Model(&models.ProjectImage{})
		if c.Query("all") != "true" {
			q = q.Where("is_active = ?", true)
		}

		var images []models.ProjectImage
		if err := q.Order("display_order ASC, created_at ASC").Find(&images).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch images"})
			return
		}

		c.JSON(http.StatusOK, images)
	}
}

// ---------------- UPDATE ----------------
func UpdateProjectImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title        *string `json:"title"`
			Description  *string `json:"description"`
			DisplayOrder *int    `json:"display_order"`
			IsActive     *bool   `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := map[string]interface{}{}
		if input.Title != nil {
			update["title"] = *input.Title
		}
		if input.Description != nil {
			update["description"] = *input.Description
		}
		if input.DisplayOrder != nil {
			update["display_order"] = *input.DisplayOrder
		}
		if input.IsActive != nil {
			update["is_active"] = *input.IsActive
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		res := cfg.DB.WithContext(c.Request.Context()).
			Model(&models.ProjectImage{}).
			Where("id = ?", c.Param("id")).
			Updates(update)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update image"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "image updated", "id": c.Param("id")})
	}
}

// ---------------- DELETE ----------------
func DeleteProjectImage(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var image models.ProjectImage
		if err := cfg.DB.WithContext(c.Request.Context()).Where("id = ?", c.Param("id")).First(&image).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}

		// Cloudinary cleanup is best effort; the row goes away regardless.
		if err := utils.DeleteFromCloudinary(image.ImageURL); err != nil {
			log.Printf("failed to delete cloudinary asset for image %s: %v", image.ID, err)
		}

		if err := cfg.DB.WithContext(c.Request.Context()).Delete(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "image deleted", "id": image.ID})
	}
}
