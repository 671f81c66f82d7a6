package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/config"
	"github.com/dinescan/restaurant-backend/kds"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

type OrderController struct {
	DB *gorm.DB

	TaxPercent           float64
	ServiceChargePercent float64
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:                   db,
		TaxPercent:           config.GetFloat("TAX_PERCENT", 5),
		ServiceChargePercent: config.GetFloat("SERVICE_CHARGE_PERCENT", 0),
	}
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if sessionID := c.Query("session_id"); sessionID != "" {
		query = query.Where("session_id = ?", sessionID)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.MenuItem").Preload("Table").
		First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder places an order against an active table session. Guests reach
// this through the QR flow with their session key; staff pass a session id.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		MenuItemID uint   `json:"menu_item_id" binding:"required"`
		Quantity   int    `json:"quantity" binding:"required,gt=0"`
		Notes      string `json:"notes"`
	}
	var req struct {
		SessionID      uint      `json:"session_id"`
		SessionKey     string    `json:"session_key"`
		Items          []itemReq `json:"items" binding:"required,min=1,dive"`
		DiscountType   string    `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
		DiscountValue  float64   `json:"discount_value" binding:"omitempty,gte=0"`
		DeliveryCharge float64   `json:"delivery_charge" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.TableSession
	sessionQuery := oc.DB.Where("status = ?", models.SessionActive)
	if req.SessionKey != "" {
		sessionQuery = sessionQuery.Where("session_key = ?", req.SessionKey)
	} else {
		sessionQuery = sessionQuery.Where("id = ?", req.SessionID)
	}
	if err := sessionQuery.First(&session).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrNoActiveSession)
		return
	}

	now := time.Now()
	order := models.Order{
		SessionID:            session.ID,
		TableID:              session.TableID,
		Status:               models.OrderPending,
		TaxPercent:           oc.TaxPercent,
		ServiceChargePercent: oc.ServiceChargePercent,
		DiscountType:         models.DiscountPercentage,
		DiscountValue:        req.DiscountValue,
		DeliveryCharge:       req.DeliveryCharge,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if req.DiscountType != "" {
		order.DiscountType = req.DiscountType
	}
	if userIDInterface, exists := c.Get("user_id"); exists {
		if userID, ok := userIDInterface.(uint); ok {
			order.PlacedByID = &userID
		}
	}

	for _, item := range req.Items {
		var menuItem models.MenuItem
		if err := oc.DB.Preload("Category").First(&menuItem, item.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown menu item %d", item.MenuItemID))
			return
		}
		if !menuItem.IsAvailable {
			utils.RespondError(c, http.StatusConflict, fmt.Errorf("%s is not available", menuItem.Name))
			return
		}
		if !menuItem.Category.IsAvailableAt(now) {
			utils.RespondError(c, http.StatusConflict, fmt.Errorf("%s is not served at this time", menuItem.Name))
			return
		}
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   item.Quantity,
			Price:      menuItem.Price,
			Notes:      item.Notes,
			Status:     models.OrderPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	order.CalculateTotals()

	if err := oc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	session.TotalAmount = session.TotalAmount + order.TotalAmount
	oc.DB.Save(&session)

	kds.BroadcastOrderCreated(order)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// UpdateOrder lets staff adjust pricing inputs and item notes/quantities on
// an order that has not reached the kitchen. Totals are recomputed here;
// nothing recalculates them implicitly on write.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderPending && order.Status != models.OrderConfirmed {
		utils.RespondError(c, http.StatusConflict, errors.New("order is already in the kitchen"))
		return
	}

	var req struct {
		DiscountType   *string  `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
		DiscountValue  *float64 `json:"discount_value" binding:"omitempty,gte=0"`
		DeliveryCharge *float64 `json:"delivery_charge" binding:"omitempty,gte=0"`
		Items          []struct {
			ID       uint    `json:"id" binding:"required"`
			Quantity *int    `json:"quantity" binding:"omitempty,gt=0"`
			Notes    *string `json:"notes"`
		} `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.DiscountType != nil {
		order.DiscountType = *req.DiscountType
	}
	if req.DiscountValue != nil {
		order.DiscountValue = *req.DiscountValue
	}
	if req.DeliveryCharge != nil {
		order.DeliveryCharge = *req.DeliveryCharge
	}

	tx := oc.DB.Begin()
	for _, update := range req.Items {
		for i := range order.Items {
			if order.Items[i].ID != update.ID {
				continue
			}
			if update.Quantity != nil {
				order.Items[i].Quantity = *update.Quantity
			}
			if update.Notes != nil {
				order.Items[i].Notes = *update.Notes
			}
			order.Items[i].UpdatedAt = time.Now()
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				tx.Rollback()
				utils.RespondError(c, http.StatusInternalServerError, err)
				return
			}
		}
	}

	order.CalculateTotals()
	order.UpdatedAt = time.Now()
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Commit()

	kds.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// UpdateStatus moves the order through its lifecycle and stamps the
// matching timestamp. Confirming cascades item statuses. Cancellation goes
// through CancelOrder, which applies the pending/confirmed guard.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status %q", req.Status))
		return
	}
	if req.Status == models.OrderCancelled {
		utils.RespondError(c, http.StatusBadRequest, errors.New("use the cancel endpoint to cancel an order"))
		return
	}

	now := time.Now()
	order.SetStatus(req.Status, now)

	tx := oc.DB.Begin()
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for i := range order.Items {
		if err := tx.Save(&order.Items[i]).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	tx.Commit()

	kds.BroadcastOrderUpdate(order)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder rejects anything already being prepared. This is the one
// transition rule enforced on orders.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !order.CanCancel() {
		utils.RespondError(c, http.StatusBadRequest, ErrOrderNotCancellable)
		return
	}

	order.SetStatus(models.OrderCancelled, time.Now())
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// cancelled orders no longer count toward the session total
	var session models.TableSession
	if err := oc.DB.Preload("Orders").First(&session, order.SessionID).Error; err == nil {
		session.RecalculateTotal()
		oc.DB.Save(&session)
	}

	kds.BroadcastOrderUpdate(order)
	kds.BroadcastStaffNotification(fmt.Sprintf("Order #%d cancelled", order.ID))
	utils.RespondJSON(c, http.StatusOK, "Order cancelled", order)
}

// BulkComplete marks all served orders completed, typically at shift close.
func (oc *OrderController) BulkComplete(c *gin.Context) {
	var req struct {
		OrderIDs []uint `json:"order_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	completed := make([]uint, 0, len(req.OrderIDs))
	skipped := make([]uint, 0)

	for _, id := range req.OrderIDs {
		var order models.Order
		if err := oc.DB.First(&order, id).Error; err != nil {
			skipped = append(skipped, id)
			continue
		}
		if order.Status != models.OrderServed {
			skipped = append(skipped, id)
			continue
		}
		order.SetStatus(models.OrderCompleted, now)
		if err := oc.DB.Save(&order).Error; err != nil {
			skipped = append(skipped, id)
			continue
		}
		completed = append(completed, id)
	}

	utils.RespondJSON(c, http.StatusOK, "Bulk complete finished", gin.H{
		"completed": completed,
		"skipped":   skipped,
	})
}

// GetKitchenOrders is the KOT view: confirmed and preparing orders with
// their items, oldest first, grouped by the category's kitchen station.
func (oc *OrderController) GetKitchenOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").Preload("Items.MenuItem").Preload("Items.MenuItem.Category").
		Preload("Table").
		Where("status IN ?", []string{models.OrderConfirmed, models.OrderPreparing}).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stations := make(map[string][]models.Order)
	for _, o := range orders {
		station := "main"
		if len(o.Items) > 0 {
			station = o.Items[0].MenuItem.Category.KitchenStation
		}
		stations[station] = append(stations[station], o)
	}

	utils.RespondJSON(c, http.StatusOK, "Kitchen orders", stations)
}
