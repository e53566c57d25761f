package services

import "errors"

var (
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrMealNotFound         = errors.New("meal not found")
	ErrMealUnavailable      = errors.New("meal is not available for ordering")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrLineNotFound         = errors.New("meal is not in the cart")
	ErrInvalidServingMethod = errors.New("serving method must be DineIn or TakeOut")
	ErrSubmissionFailed     = errors.New("order submission failed, nothing was saved")
	ErrStorageUnavailable   = errors.New("storage unavailable, please retry")
)
