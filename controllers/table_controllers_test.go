package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/controllers"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	sessionCtrl := controllers.NewSessionController(db)
	r.GET("/tables/scan/:slug", tableCtrl.ScanTable)
	r.POST("/tables", fakeAuth(1, "admin"), tableCtrl.CreateTable)
	r.POST("/tables/:id/clear", fakeAuth(1, "admin"), tableCtrl.ClearTable)
	r.POST("/sessions/:id/close", fakeAuth(1, "admin"), sessionCtrl.CloseSession)
	return r
}

func TestScanTableOpensSession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	table := models.Table{TableNumber: "T5", Capacity: 2, Status: models.TableAvailable, QRSlug: "slug-t5"}
	assert.NoError(t, db.Create(&table).Error)

	req, _ := http.NewRequest("GET", "/tables/scan/slug-t5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var savedTable models.Table
	assert.NoError(t, db.First(&savedTable, table.ID).Error)
	assert.Equal(t, models.TableOccupied, savedTable.Status)
	assert.NotNil(t, savedTable.CurrentSessionID)

	var session models.TableSession
	assert.NoError(t, db.First(&session, *savedTable.CurrentSessionID).Error)
	assert.Equal(t, models.SessionActive, session.Status)
	assert.NotEmpty(t, session.SessionKey)
}

func TestScanUnknownSlug(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	req, _ := http.NewRequest("GET", "/tables/scan/no-such-slug", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// A second scan of an occupied table joins the running session instead of
// opening a new one.
func TestScanOccupiedTableReturnsSameSession(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	table := models.Table{TableNumber: "T5", Capacity: 2, Status: models.TableAvailable, QRSlug: "slug-t5"}
	assert.NoError(t, db.Create(&table).Error)

	req, _ := http.NewRequest("GET", "/tables/scan/slug-t5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req2, _ := http.NewRequest("GET", "/tables/scan/slug-t5", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)

	var count int64
	db.Model(&models.TableSession{}).Where("table_id = ?", table.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestScanReservedTableRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	table := models.Table{TableNumber: "T5", Capacity: 2, Status: models.TableReserved, QRSlug: "slug-t5"}
	assert.NoError(t, db.Create(&table).Error)

	req, _ := http.NewRequest("GET", "/tables/scan/slug-t5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateTableDuplicateNumber(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	assert.NoError(t, db.Create(&models.Table{TableNumber: "T7", Capacity: 4, QRSlug: "slug-t7"}).Error)

	body, _ := json.Marshal(gin.H{"table_number": "T7", "capacity": 4})
	req, _ := http.NewRequest("POST", "/tables", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestClearTableWithActiveSessionRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	session, _ := seedSessionWithMenu(t, db)
	assert.NoError(t, db.Model(&models.Table{}).Where("id = ?", session.TableID).
		Update("current_session_id", session.ID).Error)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/tables/%d/clear", session.TableID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCloseSessionWithUnfinishedOrdersRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	session, _ := seedSessionWithMenu(t, db)
	order := models.Order{SessionID: session.ID, TableID: session.TableID, Status: models.OrderPreparing}
	assert.NoError(t, db.Create(&order).Error)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/sessions/%d/close", session.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCloseSessionReleasesTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupTableRouter(db)

	session, _ := seedSessionWithMenu(t, db)
	order := models.Order{SessionID: session.ID, TableID: session.TableID, Status: models.OrderCompleted, TotalAmount: 210}
	assert.NoError(t, db.Create(&order).Error)
	assert.NoError(t, db.Model(&models.Table{}).Where("id = ?", session.TableID).
		Update("current_session_id", session.ID).Error)

	req, _ := http.NewRequest("POST", fmt.Sprintf("/sessions/%d/close", session.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var savedSession models.TableSession
	assert.NoError(t, db.First(&savedSession, session.ID).Error)
	assert.Equal(t, models.SessionClosed, savedSession.Status)
	assert.NotNil(t, savedSession.ClosedAt)
	assert.Equal(t, 210.0, savedSession.TotalAmount)
	assert.WithinDuration(t, time.Now(), *savedSession.ClosedAt, 5*time.Second)

	var savedTable models.Table
	assert.NoError(t, db.First(&savedTable, session.TableID).Error)
	assert.Equal(t, models.TableCleaning, savedTable.Status)
	assert.Nil(t, savedTable.CurrentSessionID)
}
