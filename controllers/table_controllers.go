package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/kds"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Order("table_number asc").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Table
	if err := tc.DB.Where("table_number = ?", req.TableNumber).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("table number already exists"))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		Status:      models.TableAvailable,
		QRSlug:      uuid.NewString(),
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		TableNumber *string `json:"table_number"`
		Capacity    *int    `json:"capacity"`
		Status      *string `json:"status" binding:"omitempty,oneof=available occupied reserved cleaning"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Status != nil {
		table.Status = *req.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.CurrentSessionID != nil {
		utils.RespondError(c, http.StatusConflict, errors.New("cannot delete a table with an active session"))
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

// ScanTable is the public QR entry point, resolved by the slug printed in
// the table's QR code. Scanning an available table opens a session and marks
// the table occupied; rescanning an occupied table returns the running
// session so a second phone can join.
func (tc *TableController) ScanTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.Where("qr_slug = ?", c.Param("slug")).First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.CurrentSessionID != nil {
		var session models.TableSession
		if err := tc.DB.Preload("Orders").First(&session, *table.CurrentSessionID).Error; err == nil &&
			session.Status == models.SessionActive {
			utils.RespondJSON(c, http.StatusOK, "Active session", gin.H{
				"table":   table,
				"session": session,
			})
			return
		}
	}

	if table.Status == models.TableReserved || table.Status == models.TableCleaning {
		utils.RespondError(c, http.StatusConflict, ErrTableOccupied)
		return
	}

	session := models.TableSession{
		TableID:    table.ID,
		SessionKey: uuid.NewString(),
		Status:     models.SessionActive,
		GuestCount: 1,
		StartedAt:  time.Now(),
	}
	if err := tc.DB.Create(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	table.Status = models.TableOccupied
	table.CurrentSessionID = &session.ID
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Session %d opened at table %s", session.ID, table.TableNumber)
	kds.BroadcastTableUpdate(table)

	utils.RespondJSON(c, http.StatusCreated, "Session started", gin.H{
		"table":   table,
		"session": session,
	})
}

// ClearTable detaches a finished session and moves the table to cleaning.
func (tc *TableController) ClearTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.CurrentSessionID != nil {
		var session models.TableSession
		if err := tc.DB.First(&session, *table.CurrentSessionID).Error; err == nil &&
			session.Status == models.SessionActive {
			utils.RespondError(c, http.StatusConflict, errors.New("session still active, close it first"))
			return
		}
	}

	table.CurrentSessionID = nil
	table.Status = models.TableCleaning
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	kds.BroadcastTableUpdate(table)
	utils.RespondJSON(c, http.StatusOK, "Table cleared", table)
}
