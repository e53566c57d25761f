package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ordering-system/models"
	"ordering-system/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidClass       = errors.New("class must be Manager or Staff")
	ErrStaffNotFound      = errors.New("staff account not found")
	ErrSelfDeletion       = errors.New("cannot delete the account you are logged in with")
)

type StaffController struct {
	DB *gorm.DB
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{DB: db}
}

// Login -> exact account/password match, returns JWT carrying the staff
// identity. The response never reveals which of the two fields was wrong.
func (sc *StaffController) Login(c *gin.Context) {
	var input struct {
		Account  string `json:"account" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var staff models.Staff
	if err := sc.DB.Where("account = ?", input.Account).First(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	// Plaintext comparison, matching how passwords are stored.
	if staff.Password != input.Password {
		utils.RespondError(c, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token, err := utils.GenerateToken(staff.ID, staff.Account, staff.Class)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for account: %s (class=%s)", staff.Account, staff.Class)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":   token,
		"account": staff.Account,
		"class":   staff.Class,
	})
}

// Logout revokes the presented token. The client discards its copy.
func (sc *StaffController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString != "" {
		utils.BlacklistToken(tokenString)
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

// GetAllStaff lists staff accounts by id ascending. Password never leaves
// the model (json:"-").
func (sc *StaffController) GetAllStaff(c *gin.Context) {
	var staff []models.Staff
	if err := sc.DB.Order("id ASC").Find(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of staff", staff)
}

func (sc *StaffController) CreateStaff(c *gin.Context) {
	var req struct {
		Account  string `json:"account" binding:"required"`
		Password string `json:"password" binding:"required"`
		Class    string `json:"class" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStaffClass(req.Class) {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidClass)
		return
	}

	var count int64
	if err := sc.DB.Model(&models.Staff{}).Where("account = ?", req.Account).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondError(c, http.StatusConflict, ErrDuplicateAccount)
		return
	}

	staff := models.Staff{
		Account:  req.Account,
		Password: req.Password,
		Class:    req.Class,
	}
	if err := sc.DB.Create(&staff).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New staff account created: %s (class=%s)", staff.Account, staff.Class)
	utils.RespondJSON(c, http.StatusCreated, "Staff created", staff)
}

// UpdatePassword is keyed by account, the natural key for staff operations.
func (sc *StaffController) UpdatePassword(c *gin.Context) {
	account := c.Param("account")

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result := sc.DB.Model(&models.Staff{}).Where("account = ?", account).Update("password", req.Password)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrStaffNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Password updated", gin.H{"account": account})
}

// DeleteStaff removes an account. Deleting the account the caller is
// authenticated as is rejected.
func (sc *StaffController) DeleteStaff(c *gin.Context) {
	account := c.Param("account")

	if caller, exists := c.Get("account"); exists && caller == account {
		utils.RespondError(c, http.StatusForbidden, ErrSelfDeletion)
		return
	}

	result := sc.DB.Where("account = ?", account).Delete(&models.Staff{})
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, ErrStaffNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Staff deleted", gin.H{"account": account})
}
