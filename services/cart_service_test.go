package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ordering-system/models"
	"ordering-system/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Meal{}, &models.Order{}, &models.OrderDetail{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	db.Create(&models.Meal{Name: "Pasta", Price: 180, PicName: "p.jpg", IsAvailable: true})
	db.Create(&models.Meal{Name: "Iced Tea", Price: 45, IsAvailable: true})
	db.Create(&models.Meal{Name: "Corn Soup", Price: 40, IsAvailable: false})
	return db
}

func TestAddToCartAccumulates(t *testing.T) {
	cs := NewCartService(setupCartTestDB(t))
	ctx := context.Background()

	line, err := cs.AddToCart(ctx, "s1", 1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, 360, line.LineTotal)

	line, err = cs.AddToCart(ctx, "s1", 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 5*180, line.LineTotal)
	assert.Equal(t, 5*180, cs.CartTotal("s1"))
	assert.Equal(t, 5, cs.CartItemCount("s1"))
}

func TestAddToCartRejections(t *testing.T) {
	cs := NewCartService(setupCartTestDB(t))
	ctx := context.Background()

	_, err := cs.AddToCart(ctx, "s1", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = cs.AddToCart(ctx, "s1", 1, -3)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = cs.AddToCart(ctx, "s1", 999, 1)
	assert.ErrorIs(t, err, ErrMealNotFound)
	_, err = cs.AddToCart(ctx, "s1", 3, 1)
	assert.ErrorIs(t, err, ErrMealUnavailable)

	assert.Equal(t, 0, cs.CartTotal("s1"))
}

// The unit price is snapshotted at first add; later catalog edits must not
// leak into an open cart.
func TestUnitPriceSnapshot(t *testing.T) {
	db := setupCartTestDB(t)
	cs := NewCartService(db)
	ctx := context.Background()

	_, err := cs.AddToCart(ctx, "s1", 1, 1)
	assert.NoError(t, err)

	db.Model(&models.Meal{}).Where("id = ?", 1).Update("price", 999)

	line, err := cs.AddToCart(ctx, "s1", 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 180, line.UnitPrice)
	assert.Equal(t, 360, line.LineTotal)
}

func TestSetLineQuantity(t *testing.T) {
	cs := NewCartService(setupCartTestDB(t))
	ctx := context.Background()

	_, err := cs.AddToCart(ctx, "s1", 1, 3)
	assert.NoError(t, err)

	assert.NoError(t, cs.SetLineQuantity("s1", 1, 7))
	assert.Equal(t, 7*180, cs.CartTotal("s1"))

	// Zero removes the line and the total excludes it
	assert.NoError(t, cs.SetLineQuantity("s1", 1, 0))
	assert.Equal(t, 0, cs.CartTotal("s1"))
	assert.Empty(t, cs.Lines("s1"))

	assert.ErrorIs(t, cs.SetLineQuantity("s1", 1, 2), ErrLineNotFound)
	assert.ErrorIs(t, cs.SetLineQuantity("ghost", 1, 2), ErrLineNotFound)
}

func TestCheckoutTotalsReconcile(t *testing.T) {
	db := setupCartTestDB(t)
	cs := NewCartService(db)
	ctx := context.Background()

	_, err := cs.AddToCart(ctx, "s1", 1, 3)
	assert.NoError(t, err)
	_, err = cs.AddToCart(ctx, "s1", 2, 2)
	assert.NoError(t, err)

	orderID, err := cs.Checkout(ctx, "s1", models.ServingMethodTakeOut)
	assert.NoError(t, err)
	assert.NotZero(t, orderID)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)

	var details []models.OrderDetail
	assert.NoError(t, db.Where("order_id = ?", orderID).Find(&details).Error)
	assert.Len(t, details, 2)

	sum := 0
	for _, d := range details {
		assert.Equal(t, d.Quantity*d.PriceAtOrder, d.Total)
		sum += d.Total
	}
	assert.Equal(t, sum, order.TotalAmount)
	assert.Equal(t, 3*180+2*45, order.TotalAmount)

	// Success empties the cart
	assert.Equal(t, 0, cs.CartTotal("s1"))
	assert.Empty(t, cs.Lines("s1"))
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupCartTestDB(t)
	cs := NewCartService(db)

	_, err := cs.Checkout(context.Background(), "never-seen", models.ServingMethodDineIn)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCheckoutInvalidServingMethod(t *testing.T) {
	cs := NewCartService(setupCartTestDB(t))
	ctx := context.Background()

	_, err := cs.AddToCart(ctx, "s1", 1, 1)
	assert.NoError(t, err)

	_, err = cs.Checkout(ctx, "s1", "Delivery")
	assert.ErrorIs(t, err, ErrInvalidServingMethod)
}

// If any detail insert fails the whole submission rolls back: no Order
// row, no OrderDetail rows, cart untouched for the retry.
func TestCheckoutAtomicity(t *testing.T) {
	db := setupCartTestDB(t)
	cs := NewCartService(db)
	ctx := context.Background()

	_, err := cs.AddToCart(ctx, "s1", 1, 2)
	assert.NoError(t, err)

	// Force the detail insert to fail mid-transaction.
	assert.NoError(t, db.Migrator().DropTable(&models.OrderDetail{}))

	_, err = cs.Checkout(ctx, "s1", models.ServingMethodDineIn)
	assert.ErrorIs(t, err, ErrSubmissionFailed)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)

	assert.Equal(t, 360, cs.CartTotal("s1"))
	assert.Equal(t, 2, cs.CartItemCount("s1"))
}
