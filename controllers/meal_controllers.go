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
	ErrDuplicateName = errors.New("meal name already exists")
	ErrInvalidPrice  = errors.New("price must be greater than zero")
	ErrMealNotFound  = errors.New("meal not found")
)

type MealController struct {
	DB *gorm.DB
}

func NewMealController(db *gorm.DB) *MealController {
	return &MealController{DB: db}
}

// GetAllMeals -> admin table, every meal by id ascending
func (mc *MealController) GetAllMeals(c *gin.Context) {
	var meals []models.Meal
	if err := mc.DB.Order("id ASC").Find(&meals).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of meals", meals)
}

// GetAvailableMeals -> customer menu, only meals currently on sale
func (mc *MealController) GetAvailableMeals(c *gin.Context) {
	var meals []models.Meal
	if err := mc.DB.Where("is_available = ?", true).Order("id ASC").Find(&meals).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of available meals", meals)
}

type mealRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int    `json:"price" binding:"required"`
	PicName     string `json:"pic_name"`
	IsAvailable *bool  `json:"is_available"`
}

func (mc *MealController) CreateMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidPrice)
		return
	}

	// Name match is case-sensitive and exact, same rule the unique index enforces.
	var count int64
	if err := mc.DB.Model(&models.Meal{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateName)
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	meal := models.Meal{
		Name:        req.Name,
		Price:       req.Price,
		PicName:     req.PicName,
		IsAvailable: available,
	}
	if err := mc.DB.Create(&meal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Meal created: %s (id=%d, price=%d)", meal.Name, meal.ID, meal.Price)
	utils.RespondJSON(c, http.StatusCreated, "Meal created", meal)
}

func (mc *MealController) UpdateMeal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("meal_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid meal id"))
		return
	}

	var meal models.Meal
	if err := mc.DB.First(&meal, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrMealNotFound)
		return
	}

	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price <= 0 {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidPrice)
		return
	}

	if req.Name != meal.Name {
		var count int64
		if err := mc.DB.Model(&models.Meal{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		if count > 0 {
			utils.RespondError(c, http.StatusConflict, ErrDuplicateName)
			return
		}
	}

	meal.Name = req.Name
	meal.Price = req.Price
	meal.PicName = req.PicName
	if req.IsAvailable != nil {
		meal.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Save(&meal).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal updated", meal)
}

// DeleteMeal removes the meal from the catalog. Historical OrderDetail rows
// keep referencing the dead id; they carry their own price snapshot and the
// order view falls back to a placeholder name.
func (mc *MealController) DeleteMeal(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("meal_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid meal id"))
		return
	}

	result := mc.DB.Delete(&models.Meal{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrMealNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Meal deleted", gin.H{"meal_id": id})
}
