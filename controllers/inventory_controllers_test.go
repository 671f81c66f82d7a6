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

func setupInventoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	invCtrl := controllers.NewInventoryController(db)
	grp := r.Group("/inventory", fakeAuth(1, "manager"))
	grp.POST("", invCtrl.CreateIngredient)
	grp.PUT("/:id/stock", invCtrl.AdjustStock)
	grp.GET("/:id/stock", invCtrl.GetStockHistory)
	grp.GET("/alerts", invCtrl.GetAlerts)
	return r
}

func TestAdjustStockAdd(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupInventoryRouter(db)

	ing := models.Ingredient{Name: "Rice", Quantity: 5, Unit: "kg", MinStockLevel: 2, Status: models.StockIn}
	assert.NoError(t, db.Create(&ing).Error)

	body, _ := json.Marshal(map[string]interface{}{"type": "add", "quantity": 10, "note": "delivery"})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/inventory/%d/stock", ing.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var saved models.Ingredient
	assert.NoError(t, db.First(&saved, ing.ID).Error)
	assert.Equal(t, 15.0, saved.Quantity)

	var entry models.StockEntry
	assert.NoError(t, db.Where("ingredient_id = ?", ing.ID).First(&entry).Error)
	assert.Equal(t, models.StockEntryAdd, entry.Type)
	assert.Equal(t, 5.0, entry.PreviousQuantity)
	assert.Equal(t, 15.0, entry.NewQuantity)
	assert.NotNil(t, entry.RecordedByID)
	assert.Equal(t, uint(1), *entry.RecordedByID)
}

// Removing more than is on hand must fail up front, before anything is
// written.
func TestAdjustStockInsufficientRejected(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupInventoryRouter(db)

	ing := models.Ingredient{Name: "Rice", Quantity: 5, Unit: "kg", Status: models.StockIn}
	assert.NoError(t, db.Create(&ing).Error)

	body, _ := json.Marshal(map[string]interface{}{"type": "remove", "quantity": 10})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/inventory/%d/stock", ing.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var saved models.Ingredient
	assert.NoError(t, db.First(&saved, ing.ID).Error)
	assert.Equal(t, 5.0, saved.Quantity)

	var count int64
	db.Model(&models.StockEntry{}).Where("ingredient_id = ?", ing.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAdjustStockRejectsUnknownType(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupInventoryRouter(db)

	ing := models.Ingredient{Name: "Rice", Quantity: 5, Unit: "kg"}
	assert.NoError(t, db.Create(&ing).Error)

	body, _ := json.Marshal(map[string]interface{}{"type": "transfer", "quantity": 1})
	req, _ := http.NewRequest("PUT", fmt.Sprintf("/inventory/%d/stock", ing.ID), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStockHistoryNewestFirst(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupInventoryRouter(db)

	ing := models.Ingredient{Name: "Flour", Quantity: 20, Unit: "kg"}
	assert.NoError(t, db.Create(&ing).Error)

	old := models.StockEntry{IngredientID: ing.ID, Type: models.StockEntryAdd, Quantity: 20, NewQuantity: 20, CreatedAt: time.Now().Add(-time.Hour)}
	recent := models.StockEntry{IngredientID: ing.ID, Type: models.StockEntryRemove, Quantity: -5, PreviousQuantity: 20, NewQuantity: 15, CreatedAt: time.Now()}
	assert.NoError(t, db.Create(&old).Error)
	assert.NoError(t, db.Create(&recent).Error)

	req, _ := http.NewRequest("GET", fmt.Sprintf("/inventory/%d/stock", ing.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			History []models.StockEntry `json:"history"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.History, 2)
	assert.Equal(t, models.StockEntryRemove, resp.Data.History[0].Type)
}

func TestGetAlerts(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupInventoryRouter(db)

	healthy := models.Ingredient{Name: "Salt", Quantity: 50, Unit: "kg", MinStockLevel: 5, Status: models.StockIn}
	low := models.Ingredient{Name: "Oil", Quantity: 2, Unit: "l", MinStockLevel: 5, Status: models.StockLow}
	reorder := models.Ingredient{Name: "Butter", Quantity: 4, Unit: "kg", ReorderPoint: 5, Status: models.StockIn}
	assert.NoError(t, db.Create(&healthy).Error)
	assert.NoError(t, db.Create(&low).Error)
	assert.NoError(t, db.Create(&reorder).Error)

	req, _ := http.NewRequest("GET", "/inventory/alerts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Ingredient `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)

	names := []string{resp.Data[0].Name, resp.Data[1].Name}
	assert.ElementsMatch(t, []string{"Oil", "Butter"}, names)
}

func TestCreateIngredientDuplicateName(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupInventoryRouter(db)

	assert.NoError(t, db.Create(&models.Ingredient{Name: "Sugar", Unit: "kg"}).Error)

	body, _ := json.Marshal(map[string]interface{}{"name": "Sugar", "unit": "kg", "quantity": 10})
	req, _ := http.NewRequest("POST", "/inventory", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}
