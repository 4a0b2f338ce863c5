package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/models"
	"github.com/flusk-cnc/flusk-admin-api/services"
	"github.com/flusk-cnc/flusk-admin-api/utils"
	"github.com/gin-gonic/gin"
)

// UploadLineItemPreview handles POST /api/v1/orders/:id/items/:itemID/preview
// - attaches a preview SVG to a line item
func UploadLineItemPreview(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.Where("public_id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	itemID, err := strconv.Atoi(c.Param("itemID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid line item ID",
			},
		})
		return
	}

	var item models.LineItem
	if err := db.Where("id = ? AND order_id = ?", itemID, order.ID).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LINE_ITEM_NOT_FOUND",
				"message": "Line item not found on this order",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("preview")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "A preview file is required",
			},
		})
		return
	}

	previewService := services.GetPreviewService()
	if previewService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PREVIEW_SERVICE_UNAVAILABLE",
				"message": "Preview storage is not configured",
			},
		})
		return
	}

	key, err := previewService.UploadPreview(fileHeader)
	if err != nil {
		if uploadErr, ok := err.(*utils.FileUploadError); ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to store preview",
			},
		})
		return
	}

	// Replace any previous preview for this line item
	if item.PreviewKey != nil && *item.PreviewKey != key {
		if err := previewService.DeletePreview(*item.PreviewKey); err != nil {
			// The new preview is already stored; an orphaned old file is
			// not worth failing the request over
			_ = err
		}
	}

	if err := db.Model(&item).Update("preview_key", key).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to attach preview to line item",
			},
		})
		return
	}

	url, err := previewService.GetPreviewURL(key)
	if err != nil {
		url = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"preview_key": key,
			"preview_url": url,
		},
	})
}

// GetUploadedPreview handles GET /api/v1/uploads/:filename - serves preview
// SVGs saved to the local upload directory
func GetUploadedPreview(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Filename is required",
			},
		})
		return
	}

	// Security: Prevent directory traversal attacks
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"message": "Invalid filename",
			},
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != utils.AllowedPreviewFormat {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Only SVG files are supported",
			},
		})
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "Preview not found",
			},
		})
		return
	}

	c.Header("Content-Type", "image/svg+xml")
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(filePath)
}
