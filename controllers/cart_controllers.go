package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ordering-system/services"
	"ordering-system/utils"
)

const sessionCookie = "cart_session"

type CartController struct {
	Carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{Carts: carts}
}

// sessionToken returns the caller's cart session token, issuing a fresh
// one as a cookie on first contact. Each browsing session gets its own
// cart; tokens are opaque and carry no identity.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		return token
	}
	token := uuid.NewString()
	c.SetCookie(sessionCookie, token, 86400, "/", "", false, true)
	return token
}

// GetCart -> current lines plus the running total and item count
func (cc *CartController) GetCart(c *gin.Context) {
	token := sessionToken(c)
	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"lines":      cc.Carts.Lines(token),
		"total":      cc.Carts.CartTotal(token),
		"item_count": cc.Carts.CartItemCount(token),
	})
}

func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		MealID   uint `json:"meal_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token := sessionToken(c)
	line, err := cc.Carts.AddToCart(c.Request.Context(), token, req.MealID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidQuantity):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrMealNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrMealUnavailable):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrStorageUnavailable):
			utils.RespondError(c, http.StatusServiceUnavailable, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Added to cart", gin.H{
		"line":       line,
		"total":      cc.Carts.CartTotal(token),
		"item_count": cc.Carts.CartItemCount(token),
	})
}

// UpdateItem sets the absolute quantity of one line; zero removes it.
func (cc *CartController) UpdateItem(c *gin.Context) {
	mealID, err := strconv.Atoi(c.Param("meal_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid meal id"))
		return
	}

	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token := sessionToken(c)
	if err := cc.Carts.SetLineQuantity(token, uint(mealID), *req.Quantity); err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart updated", gin.H{
		"lines":      cc.Carts.Lines(token),
		"total":      cc.Carts.CartTotal(token),
		"item_count": cc.Carts.CartItemCount(token),
	})
}

func (cc *CartController) Checkout(c *gin.Context) {
	var req struct {
		ServingMethod string `json:"serving_method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token := sessionToken(c)
	orderID, err := cc.Carts.Checkout(c.Request.Context(), token, req.ServingMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart), errors.Is(err, services.ErrInvalidServingMethod):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrStorageUnavailable):
			utils.RespondError(c, http.StatusServiceUnavailable, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, services.ErrSubmissionFailed)
		}
		return
	}

	utils.InfoLogger.Printf("Order %d submitted (%s)", orderID, req.ServingMethod)
	utils.RespondJSON(c, http.StatusCreated, "Order submitted", gin.H{"order_id": orderID})
}
