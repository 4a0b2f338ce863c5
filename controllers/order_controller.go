package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/flusk-cnc/flusk-admin-api/config"
	"github.com/flusk-cnc/flusk-admin-api/models"
	"github.com/flusk-cnc/flusk-admin-api/services"
	"github.com/gin-gonic/gin"
)

// UpdateStatusRequest represents the request body for updating an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// LineItemDetail is one line of the order detail panel: the stored item plus
// its computed cost breakdown and display-currency amounts.
type LineItemDetail struct {
	models.LineItem
	Breakdown         *services.CostBreakdown `json:"breakdown"`
	PricingError      string                  `json:"pricing_error,omitempty"`
	DisplayUnitPrice  string                  `json:"display_unit_price"`
	DisplayTotalPrice string                  `json:"display_total_price"`
}

// OrderDetail is the full detail-panel payload for one order. The one detail
// shape serves every display currency: EUR orders skip conversion, others
// carry converted amounts alongside the stored EUR values.
type OrderDetail struct {
	models.Order
	Items              []LineItemDetail      `json:"material_details"`
	DisplayTotalAmount string                `json:"display_total_amount"`
	DisplayShipping    string                `json:"display_shipping_cost"`
	StatusHistory      []models.StatusChange `json:"status_history"`
}

// ListOrders handles GET /api/v1/orders - returns a page of orders.
// Response carries "orders" and "total" for the dashboard's paginated table.
func ListOrders(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	db := config.GetDB()

	var total int64
	if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count orders",
			},
		})
		return
	}

	var orders []models.Order
	if err := db.Preload("LineItems").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to fetch orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
		"total":   total,
	})
}

// GetOrder handles GET /api/v1/orders/:id - returns one order with per-line
// cost breakdowns and amounts converted to the order's display currency.
func GetOrder(c *gin.Context) {
	db := config.GetDB()

	var order models.Order
	if err := db.Preload("LineItems").Where("public_id = ?", c.Param("id")).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	detail := buildOrderDetail(c, &order)

	if err := db.Where("order_id = ?", order.ID).
		Order("created_at ASC").
		Find(&detail.StatusHistory).Error; err != nil {
		// History is supplementary; the detail panel still renders without it
		log.Printf("Failed to load status history for order %s: %v", order.PublicID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - moves an order
// to a new status and records the transition.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
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

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STATUS",
				"message": "Status must be one of: pending, in_progress, manufactured, delivered, cancelled",
			},
		})
		return
	}

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

	previous := order.Status
	if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	change := models.StatusChange{
		OrderID:    order.ID,
		FromStatus: previous,
		ToStatus:   req.Status,
	}
	if err := db.Create(&change).Error; err != nil {
		// The status update itself succeeded; losing one history row is not
		// worth failing the request over
		log.Printf("Failed to record status change for order %s: %v", order.PublicID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status": req.Status,
		},
	})
}

// buildOrderDetail assembles the detail payload: breakdowns per line item,
// preview URLs, and display-currency amounts. Conversion never mutates the
// stored EUR values; a rate table is only fetched for non-EUR orders.
func buildOrderDetail(c *gin.Context, order *models.Order) *OrderDetail {
	currency := order.DisplayCurrency()

	var rates map[string]float64
	if currency != "EUR" {
		if svc := services.GetCurrencyService(); svc != nil {
			rates = svc.GetRates(c.Request.Context())
		} else {
			rates = services.FallbackRates()
		}
	}

	display := func(amountEUR float64) string {
		return services.FormatAmount(services.Convert(amountEUR, currency, rates), currency)
	}

	detail := &OrderDetail{
		Order:              *order,
		Items:              make([]LineItemDetail, 0, len(order.LineItems)),
		DisplayTotalAmount: display(order.TotalAmount),
		DisplayShipping:    display(order.ShippingCost),
	}

	previewService := services.GetPreviewService()

	for i := range order.LineItems {
		item := order.LineItems[i]

		if previewService != nil && item.PreviewKey != nil {
			if url, err := previewService.GetPreviewURL(*item.PreviewKey); err == nil && url != "" {
				item.PreviewURL = &url
			} else if err != nil {
				log.Printf("Failed to resolve preview URL for key %s: %v", *item.PreviewKey, err)
			}
		}

		lineDetail := LineItemDetail{
			LineItem:          item,
			DisplayUnitPrice:  display(item.PricePerUnit),
			DisplayTotalPrice: display(item.TotalPrice),
		}

		breakdown, err := services.ComputeBreakdown(&item)
		if err != nil {
			// A zero-quantity line renders with an explicit error marker
			// instead of an undefined setup cost
			var code string
			if pricingErr, ok := err.(*services.PricingError); ok {
				code = pricingErr.Code
			} else {
				code = "PRICING_ERROR"
			}
			lineDetail.PricingError = code
		} else {
			lineDetail.Breakdown = breakdown
		}

		detail.Items = append(detail.Items, lineDetail)
	}

	return detail
}
