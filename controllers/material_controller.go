package controllers

import (
	"net/http"
	"strconv"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaterialRequest represents the request body for creating or updating a
// material/pricing record
type MaterialRequest struct {
	Name       string   `json:"material" binding:"required"`
	Thickness  float64  `json:"thickness" binding:"omitempty,gte=0"`
	SetupPrice float64  `json:"setup_price" binding:"omitempty,gte=0"`
	CostFactor float64  `json:"cost_factor" binding:"omitempty,gte=0"`
	LoopCost   float64  `json:"loop_cost" binding:"omitempty,gte=0"`
	CostPerM2  float64  `json:"cost_per_m2" binding:"omitempty,gte=0"`
	Stock      *bool    `json:"stock"`
}

// ListMaterials handles GET /api/v1/materials - returns a page of material
// records. Response carries "items" and "total" for the dashboard's table.
func ListMaterials(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}

	db := config.GetDB()

	var total int64
	if err := db.Model(&models.Material{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count materials",
			},
		})
		return
	}

	var materials []models.Material
	if err := db.Order("name ASC, thickness ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&materials).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch materials",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   materials,
		"total":   total,
	})
}

// CreateMaterial handles POST /api/v1/materials - creates a material record
// and returns the persisted row
func CreateMaterial(c *gin.Context) {
	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	stock := true
	if req.Stock != nil {
		stock = *req.Stock
	}

	material := models.Material{
		PublicID:   uuid.NewString(),
		Name:       req.Name,
		Thickness:  req.Thickness,
		SetupPrice: req.SetupPrice,
		CostFactor: req.CostFactor,
		LoopCost:   req.LoopCost,
		CostPerM2:  req.CostPerM2,
		Stock:      stock,
	}

	db := config.GetDB()
	if err := db.Create(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create material",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    material,
	})
}

// UpdateMaterial handles PUT /api/v1/materials/:id - updates a material
// record and returns the persisted row
func UpdateMaterial(c *gin.Context) {
	var req MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	var material models.Material
	if err := db.Where("public_id = ?", c.Param("id")).First(&material).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MATERIAL_NOT_FOUND",
				"message": "Material not found",
			},
		})
		return
	}

	material.Name = req.Name
	material.Thickness = req.Thickness
	material.SetupPrice = req.SetupPrice
	material.CostFactor = req.CostFactor
	material.LoopCost = req.LoopCost
	material.CostPerM2 = req.CostPerM2
	if req.Stock != nil {
		material.Stock = *req.Stock
	}

	if err := db.Save(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update material",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    material,
	})
}

// DeleteMaterial handles DELETE /api/v1/materials/:id - removes a material record
func DeleteMaterial(c *gin.Context) {
	db := config.GetDB()

	var material models.Material
	if err := db.Where("public_id = ?", c.Param("id")).First(&material).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MATERIAL_NOT_FOUND",
				"message": "Material not found",
			},
		})
		return
	}

	if err := db.Delete(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete material",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"deleted": material.PublicID,
		},
	})
}
