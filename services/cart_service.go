package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"ordering-system/models"
	"ordering-system/utils"
)

// storageTimeout bounds every statement the cart engine runs against the
// store. A checkout that exceeds it rolls back and surfaces as retryable.
const storageTimeout = 3 * time.Second

// CartLine is one meal entry in a session's pending order. UnitPrice is
// snapshotted from the catalog at first add and never refreshed within the
// same session.
type CartLine struct {
	MealID    uint   `json:"meal_id"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	PicName   string `json:"pic_name"`
	Quantity  int    `json:"quantity"`
	LineTotal int    `json:"line_total"`
}

type cart struct {
	lines map[uint]*CartLine
	order []uint // meal ids in first-add order, for stable listing
}

func newCart() *cart {
	return &cart{lines: make(map[uint]*CartLine)}
}

// CartService holds one transient cart per browsing session, keyed by an
// opaque session token, and converts a cart into a durable Order plus its
// OrderDetail rows in a single transaction.
type CartService struct {
	db    *gorm.DB
	mu    sync.Mutex
	carts map[string]*cart
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:    db,
		carts: make(map[string]*cart),
	}
}

// AddToCart accumulates quantity onto the session's line for the meal,
// snapshotting name and unit price from the catalog on first add.
func (cs *CartService) AddToCart(ctx context.Context, sessionID string, mealID uint, quantity int) (CartLine, error) {
	if quantity <= 0 {
		return CartLine{}, ErrInvalidQuantity
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	ct, ok := cs.carts[sessionID]
	if !ok {
		ct = newCart()
		cs.carts[sessionID] = ct
	}

	line, ok := ct.lines[mealID]
	if !ok {
		tctx, cancel := context.WithTimeout(ctx, storageTimeout)
		defer cancel()

		var meal models.Meal
		if err := cs.db.WithContext(tctx).First(&meal, mealID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return CartLine{}, ErrMealNotFound
			}
			if errors.Is(err, context.DeadlineExceeded) {
				return CartLine{}, ErrStorageUnavailable
			}
			return CartLine{}, err
		}
		if !meal.IsAvailable {
			return CartLine{}, ErrMealUnavailable
		}

		line = &CartLine{
			MealID:    meal.ID,
			Name:      meal.Name,
			UnitPrice: meal.Price,
			PicName:   meal.PicName,
		}
		ct.lines[mealID] = line
		ct.order = append(ct.order, mealID)
	}

	line.Quantity += quantity
	line.LineTotal = line.Quantity * line.UnitPrice

	return *line, nil
}

// SetLineQuantity sets the absolute quantity of a line. Zero or negative
// removes the line entirely.
func (cs *CartService) SetLineQuantity(sessionID string, mealID uint, quantity int) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	ct, ok := cs.carts[sessionID]
	if !ok {
		return ErrLineNotFound
	}
	line, ok := ct.lines[mealID]
	if !ok {
		return ErrLineNotFound
	}

	if quantity <= 0 {
		delete(ct.lines, mealID)
		for i, id := range ct.order {
			if id == mealID {
				ct.order = append(ct.order[:i], ct.order[i+1:]...)
				break
			}
		}
		return nil
	}

	line.Quantity = quantity
	line.LineTotal = line.Quantity * line.UnitPrice
	return nil
}

// Lines returns the session's cart lines in first-add order.
func (cs *CartService) Lines(sessionID string) []CartLine {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	ct, ok := cs.carts[sessionID]
	if !ok {
		return nil
	}
	lines := make([]CartLine, 0, len(ct.order))
	for _, id := range ct.order {
		lines = append(lines, *ct.lines[id])
	}
	return lines
}

func (cs *CartService) CartTotal(sessionID string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	total := 0
	if ct, ok := cs.carts[sessionID]; ok {
		for _, line := range ct.lines {
			total += line.LineTotal
		}
	}
	return total
}

func (cs *CartService) CartItemCount(sessionID string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	count := 0
	if ct, ok := cs.carts[sessionID]; ok {
		for _, line := range ct.lines {
			count += line.Quantity
		}
	}
	return count
}

// Checkout writes the Order row and every OrderDetail row in one
// transaction. On any failure the whole write rolls back and the cart is
// left untouched so the customer can retry; the cart is emptied only after
// a successful commit.
func (cs *CartService) Checkout(ctx context.Context, sessionID, servingMethod string) (uint, error) {
	if !models.ValidServingMethod(servingMethod) {
		return 0, ErrInvalidServingMethod
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	ct, ok := cs.carts[sessionID]
	if !ok || len(ct.lines) == 0 {
		return 0, ErrEmptyCart
	}

	total := 0
	for _, line := range ct.lines {
		total += line.LineTotal
	}
	if total <= 0 {
		return 0, ErrEmptyCart
	}

	order := models.Order{
		Time:          time.Now(),
		TotalAmount:   total,
		Status:        models.OrderStatusPreparing,
		ServingMethod: servingMethod,
	}

	tctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	err := cs.db.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, mealID := range ct.order {
			line := ct.lines[mealID]
			detail := models.OrderDetail{
				OrderID:      order.ID,
				MealID:       line.MealID,
				Quantity:     line.Quantity,
				PriceAtOrder: line.UnitPrice,
				Total:        line.Quantity * line.UnitPrice,
			}
			if err := tx.Create(&detail).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.ErrorLogger.Printf("checkout failed for session %s: %v", sessionID, err)
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, ErrStorageUnavailable
		}
		return 0, ErrSubmissionFailed
	}

	delete(cs.carts, sessionID)
	return order.ID, nil
}
