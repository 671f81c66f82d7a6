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

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

func (sc *SessionController) GetAllSessions(c *gin.Context) {
	query := sc.DB.Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var sessions []models.TableSession
	if err := query.Order("started_at desc").Find(&sessions).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of sessions", sessions)
}

func (sc *SessionController) GetSessionByID(c *gin.Context) {
	var session models.TableSession
	if err := sc.DB.Preload("Table").Preload("Orders").Preload("Orders.Items").
		First(&session, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	session.RecalculateTotal()
	utils.RespondJSON(c, http.StatusOK, "Session detail", session)
}

// CloseSession ends a visit. Every order must be completed or cancelled and
// the session must already be billed (or have no billable orders).
func (sc *SessionController) CloseSession(c *gin.Context) {
	var session models.TableSession
	if err := sc.DB.Preload("Orders").First(&session, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if session.Status == models.SessionClosed {
		utils.RespondError(c, http.StatusConflict, errors.New("session already closed"))
		return
	}

	for _, o := range session.Orders {
		if o.Status != models.OrderCompleted && o.Status != models.OrderCancelled {
			utils.RespondError(c, http.StatusConflict, errors.New("session has unfinished orders"))
			return
		}
	}

	now := time.Now()
	session.Status = models.SessionClosed
	session.ClosedAt = &now
	session.RecalculateTotal()
	if err := sc.DB.Save(&session).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// release the table
	var table models.Table
	if err := sc.DB.First(&table, session.TableID).Error; err == nil {
		table.CurrentSessionID = nil
		table.Status = models.TableCleaning
		sc.DB.Save(&table)
		kds.BroadcastTableUpdate(table)
	}

	utils.RespondJSON(c, http.StatusOK, "Session closed", session)
}
