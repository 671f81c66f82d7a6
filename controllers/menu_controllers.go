package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllItems lists menu items; the public menu filters to available only.
func (mc *MenuController) GetAllItems(c *gin.Context) {
	query := mc.DB.Preload("Category").Preload("Options")
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetItemsByCategory groups available items under their categories, ordered
// by display order, for the QR-scan menu page. Categories outside their
// availability window are left off the menu entirely.
func (mc *MenuController) GetItemsByCategory(c *gin.Context) {
	var categories []models.Category
	if err := mc.DB.Where("is_active = ?", true).Order("display_order asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type group struct {
		Category models.Category   `json:"category"`
		Items    []models.MenuItem `json:"items"`
	}

	now := time.Now()
	groups := make([]group, 0, len(categories))
	for _, cat := range categories {
		if !cat.IsAvailableAt(now) {
			continue
		}
		var items []models.MenuItem
		if err := mc.DB.Preload("Options").
			Where("category_id = ? AND is_available = ?", cat.ID, true).
			Find(&items).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		groups = append(groups, group{Category: cat, Items: items})
	}

	utils.RespondJSON(c, http.StatusOK, "Menu by category", groups)
}

func (mc *MenuController) GetItemByID(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("Category").Preload("Options").First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateItem(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required,gte=0"`
		Description string  `json:"description"`
		ImageURL    *string `json:"image_url"`
		IsVeg       bool    `json:"is_veg"`
		Calories    int     `json:"calories"`
		Allergens   string  `json:"allergens"`
		PrepMinutes int     `json:"prep_minutes"`
		Options     []struct {
			Name       string  `json:"name" binding:"required"`
			ExtraPrice float64 `json:"extra_price"`
		} `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	item := models.MenuItem{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsAvailable: true,
		IsVeg:       req.IsVeg,
		Calories:    req.Calories,
		Allergens:   req.Allergens,
		PrepMinutes: req.PrepMinutes,
	}
	for _, opt := range req.Options {
		item.Options = append(item.Options, models.MenuOption{
			Name:       opt.Name,
			ExtraPrice: opt.ExtraPrice,
		})
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

func (mc *MenuController) UpdateItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.Preload("Options").First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		IsAvailable *bool    `json:"is_available"`
		IsVeg       *bool    `json:"is_veg"`
		Calories    *int     `json:"calories"`
		Allergens   *string  `json:"allergens"`
		PrepMinutes *int     `json:"prep_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ImageURL != nil {
		item.ImageURL = req.ImageURL
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if req.Allergens != nil {
		item.Allergens = *req.Allergens
	}
	if req.PrepMinutes != nil {
		item.PrepMinutes = *req.PrepMinutes
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteItem soft-disables items that already appear on orders; otherwise
// removes them outright.
func (mc *MenuController) DeleteItem(c *gin.Context) {
	var item models.MenuItem
	if err := mc.DB.First(&item, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orderCount int64
	mc.DB.Model(&models.OrderItem{}).Where("menu_item_id = ?", item.ID).Count(&orderCount)
	if orderCount > 0 {
		item.IsAvailable = false
		if err := mc.DB.Save(&item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Menu item disabled (referenced by orders)", item)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
