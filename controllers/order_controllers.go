package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ordering-system/models"
	"ordering-system/utils"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order status can only move from Preparing to Completed")
	ErrInvalidStatus     = errors.New("status must be Preparing or Completed")
)

// Name shown for detail rows whose meal has since been removed from the
// catalog.
const deletedMealName = "(deleted meal)"

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// GetOpenOrders -> the staff work queue: Preparing orders only, oldest
// first. Pull-based; the caller re-queries after any mutation.
func (oc *OrderController) GetOpenOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Where("status = ?", models.OrderStatusPreparing).
		Order("time ASC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Open orders", orders)
}

type orderDetailView struct {
	MealName     string `json:"meal_name"`
	Quantity     int    `json:"quantity"`
	PriceAtOrder int    `json:"price_at_order"`
	Total        int    `json:"total"`
}

// GetOrderByID -> order header plus its line items joined for display.
// A meal deleted after the order was placed still renders via the
// placeholder; the row's own price snapshot is authoritative.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	var items []orderDetailView
	if err := oc.DB.Table("order_details").
		Select("COALESCE(meals.name, ?) AS meal_name, order_details.quantity, order_details.price_at_order, order_details.total", deletedMealName).
		Joins("LEFT JOIN meals ON meals.id = order_details.meal_id").
		Where("order_details.order_id = ?", order.ID).
		Order("order_details.id ASC").
		Scan(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", gin.H{
		"order": order,
		"items": items,
	})
}

// UpdateOrderStatus enforces the forward-only lifecycle. Completing an
// already-Completed order is a no-op success so a double click on the
// staff side never errors.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Status != models.OrderStatusPreparing && req.Status != models.OrderStatusCompleted {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	oc.setStatus(c, uint(id), req.Status)
}

// CompleteOrder is the one-button version of UpdateOrderStatus.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}
	oc.setStatus(c, uint(id), models.OrderStatusCompleted)
}

func (oc *OrderController) setStatus(c *gin.Context, orderID uint, newStatus string) {
	var order models.Order
	if err := oc.DB.First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	if newStatus == models.OrderStatusPreparing {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidTransition)
		return
	}

	if order.Status == models.OrderStatusCompleted {
		utils.RespondJSON(c, http.StatusOK, "Order already completed", order)
		return
	}

	order.Status = models.OrderStatusCompleted
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d completed", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order completed", order)
}
