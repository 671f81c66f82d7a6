package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/kds"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

func (ic *InventoryController) GetAllIngredients(c *gin.Context) {
	query := ic.DB.Order("name asc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", ingredients)
}

func (ic *InventoryController) GetIngredientByID(c *gin.Context) {
	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient detail", ingredient)
}

func (ic *InventoryController) CreateIngredient(c *gin.Context) {
	var req struct {
		Name          string     `json:"name" binding:"required"`
		Quantity      float64    `json:"quantity" binding:"gte=0"`
		Unit          string     `json:"unit" binding:"required"`
		MinStockLevel float64    `json:"min_stock_level" binding:"gte=0"`
		ReorderPoint  float64    `json:"reorder_point" binding:"gte=0"`
		MaxStockLevel float64    `json:"max_stock_level" binding:"gte=0"`
		CostPerUnit   float64    `json:"cost_per_unit" binding:"gte=0"`
		ExpiryDate    *time.Time `json:"expiry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Ingredient
	if err := ic.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("ingredient with this name already exists"))
		return
	}

	now := time.Now()
	ingredient := models.Ingredient{
		Name:          req.Name,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		MinStockLevel: req.MinStockLevel,
		ReorderPoint:  req.ReorderPoint,
		MaxStockLevel: req.MaxStockLevel,
		CostPerUnit:   req.CostPerUnit,
		ExpiryDate:    req.ExpiryDate,
	}
	ingredient.RefreshStatus(now)

	if err := ic.DB.Create(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", ingredient)
}

func (ic *InventoryController) UpdateIngredient(c *gin.Context) {
	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name          *string    `json:"name"`
		Unit          *string    `json:"unit"`
		MinStockLevel *float64   `json:"min_stock_level" binding:"omitempty,gte=0"`
		ReorderPoint  *float64   `json:"reorder_point" binding:"omitempty,gte=0"`
		MaxStockLevel *float64   `json:"max_stock_level" binding:"omitempty,gte=0"`
		CostPerUnit   *float64   `json:"cost_per_unit" binding:"omitempty,gte=0"`
		ExpiryDate    *time.Time `json:"expiry_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		ingredient.Name = *req.Name
	}
	if req.Unit != nil {
		ingredient.Unit = *req.Unit
	}
	if req.MinStockLevel != nil {
		ingredient.MinStockLevel = *req.MinStockLevel
	}
	if req.ReorderPoint != nil {
		ingredient.ReorderPoint = *req.ReorderPoint
	}
	if req.MaxStockLevel != nil {
		ingredient.MaxStockLevel = *req.MaxStockLevel
	}
	if req.CostPerUnit != nil {
		ingredient.CostPerUnit = *req.CostPerUnit
	}
	if req.ExpiryDate != nil {
		ingredient.ExpiryDate = req.ExpiryDate
	}

	ingredient.RefreshStatus(time.Now())
	if err := ic.DB.Save(&ingredient).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", ingredient)
}

func (ic *InventoryController) DeleteIngredient(c *gin.Context) {
	id := c.Param("id")

	if err := ic.DB.Where("ingredient_id = ?", id).Delete(&models.StockEntry{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := ic.DB.Delete(&models.Ingredient{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Ingredient deleted", gin.H{"id": id})
}

// AdjustStock applies an add or remove movement and appends to the ledger.
// The insufficient-stock check happens here, before the model floors at
// zero, so a short removal never silently succeeds through the API.
func (ic *InventoryController) AdjustStock(c *gin.Context) {
	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Type     string  `json:"type" binding:"required,oneof=add remove"`
		Quantity float64 `json:"quantity" binding:"required,gt=0"`
		Note     string  `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var recordedBy *uint
	if userIDInterface, exists := c.Get("user_id"); exists {
		if userID, ok := userIDInterface.(uint); ok {
			recordedBy = &userID
		}
	}

	now := time.Now()
	var entry models.StockEntry
	if req.Type == models.StockEntryAdd {
		entry = ingredient.AddStock(req.Quantity, req.Note, recordedBy, now)
	} else {
		if ingredient.Quantity < req.Quantity {
			utils.RespondError(c, http.StatusBadRequest, ErrInsufficientStock)
			return
		}
		entry = ingredient.RemoveStock(req.Quantity, req.Note, recordedBy, now)
	}

	tx := ic.DB.Begin()
	if err := tx.Save(&ingredient).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	if ingredient.Status == models.StockLow || ingredient.Status == models.StockOut {
		kds.BroadcastStockAlert(ingredient)
	}

	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", gin.H{
		"ingredient": ingredient,
		"entry":      entry,
	})
}

// GetStockHistory returns the ledger, newest first.
func (ic *InventoryController) GetStockHistory(c *gin.Context) {
	var ingredient models.Ingredient
	if err := ic.DB.First(&ingredient, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var entries []models.StockEntry
	if err := ic.DB.Where("ingredient_id = ?", ingredient.ID).
		Order("created_at desc").Find(&entries).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock history", gin.H{
		"ingredient": ingredient,
		"history":    entries,
	})
}

// GetAlerts lists everything low, out of stock, expired, or at its reorder
// point.
func (ic *InventoryController) GetAlerts(c *gin.Context) {
	var flagged []models.Ingredient
	if err := ic.DB.Where("status IN ?", []string{models.StockLow, models.StockOut, models.StockExpired}).
		Or("quantity <= reorder_point").
		Order("name asc").Find(&flagged).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory alerts", flagged)
}
