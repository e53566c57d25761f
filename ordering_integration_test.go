package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ordering-system/models"
	"ordering-system/router"
	"ordering-system/services"
	"ordering-system/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndOrdering walks the whole flow:
// 1. manager logs in
// 2. manager creates a meal
// 3. a customer session fills a cart and checks out
// 4. staff see the order in the queue, view it, complete it
// 5. the queue is empty again
func TestEndToEndOrdering(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := setupIntegrationDB(t)
	carts := services.NewCartService(db)
	r := router.SetupRouter(db, carts)

	token := loginAs(t, r, "demo_manager", "password")

	mealID := createMeal(t, r, token, "Pasta", 180)

	addToCart(t, r, "cust-1", mealID, 2)
	addToCart(t, r, "cust-1", mealID, 1)

	orderID := checkout(t, r, "cust-1", models.ServingMethodDineIn)

	// The order shows up in the work queue with the reconciled total
	orders := listOpenOrders(t, r, token)
	assert.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
	assert.Equal(t, 540, orders[0].TotalAmount)

	// Line items render with the snapshot price
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var viewResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &viewResp))
	items := viewResp["data"].(map[string]interface{})["items"].([]interface{})
	assert.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Pasta", item["meal_name"])
	assert.Equal(t, float64(3), item["quantity"])
	assert.Equal(t, float64(180), item["price_at_order"])
	assert.Equal(t, float64(540), item["total"])

	// Complete it; the queue empties
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/orders/%d/complete", orderID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	orders = listOpenOrders(t, r, token)
	assert.Len(t, orders, 0)
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.Meal{},
		&models.Staff{},
		&models.Order{},
		&models.OrderDetail{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Staff{
		Account:  "demo_manager",
		Password: "password",
		Class:    models.StaffClassManager,
	})

	return db
}

func loginAs(t *testing.T, r *gin.Engine, account, password string) string {
	body, _ := json.Marshal(map[string]string{
		"account":  account,
		"password": password,
	})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	token := resp["data"].(map[string]interface{})["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func createMeal(t *testing.T, r *gin.Engine, token, name string, price int) uint {
	body, _ := json.Marshal(map[string]interface{}{
		"name":     name,
		"price":    price,
		"pic_name": "p.jpg",
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/meals", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return uint(resp["data"].(map[string]interface{})["id"].(float64))
}

func addToCart(t *testing.T, r *gin.Engine, session string, mealID uint, quantity int) {
	body, _ := json.Marshal(map[string]interface{}{
		"meal_id":  mealID,
		"quantity": quantity,
	})
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: session})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func checkout(t *testing.T, r *gin.Engine, session, servingMethod string) uint {
	body, _ := json.Marshal(map[string]string{
		"serving_method": servingMethod,
	})
	req := httptest.NewRequest(http.MethodPost, "/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "cart_session", Value: session})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return uint(resp["data"].(map[string]interface{})["order_id"].(float64))
}

func listOpenOrders(t *testing.T, r *gin.Engine, token string) []models.Order {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}
