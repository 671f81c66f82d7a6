package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := cc.DB.Order("display_order asc").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	var category models.Category
	if err := cc.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name           string `json:"name" binding:"required"`
		DisplayOrder   int    `json:"display_order"`
		KitchenStation string `json:"kitchen_station"`
		AvailableFrom  string `json:"available_from"`
		AvailableTo    string `json:"available_to"`
		ActiveDays     string `json:"active_days"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Category
	if err := cc.DB.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("category with this name already exists"))
		return
	}

	category := models.Category{
		Name:           req.Name,
		DisplayOrder:   req.DisplayOrder,
		KitchenStation: req.KitchenStation,
		AvailableFrom:  req.AvailableFrom,
		AvailableTo:    req.AvailableTo,
		ActiveDays:     req.ActiveDays,
		IsActive:       true,
	}
	if category.KitchenStation == "" {
		category.KitchenStation = "main"
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := cc.DB.First(&category, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name           *string `json:"name"`
		DisplayOrder   *int    `json:"display_order"`
		KitchenStation *string `json:"kitchen_station"`
		AvailableFrom  *string `json:"available_from"`
		AvailableTo    *string `json:"available_to"`
		ActiveDays     *string `json:"active_days"`
		IsActive       *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.DisplayOrder != nil {
		category.DisplayOrder = *req.DisplayOrder
	}
	if req.KitchenStation != nil {
		category.KitchenStation = *req.KitchenStation
	}
	if req.AvailableFrom != nil {
		category.AvailableFrom = *req.AvailableFrom
	}
	if req.AvailableTo != nil {
		category.AvailableTo = *req.AvailableTo
	}
	if req.ActiveDays != nil {
		category.ActiveDays = *req.ActiveDays
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	var itemCount int64
	cc.DB.Model(&models.MenuItem{}).Where("category_id = ?", id).Count(&itemCount)
	if itemCount > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("cannot delete category with menu items attached"))
		return
	}

	if err := cc.DB.Delete(&models.Category{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": id})
}
