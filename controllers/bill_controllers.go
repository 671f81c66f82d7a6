package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/kds"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/services"
	"github.com/dinescan/restaurant-backend/utils"
)

type BillController struct {
	DB       *gorm.DB
	Payments *services.PaymentService
}

func NewBillController(db *gorm.DB, payments *services.PaymentService) *BillController {
	return &BillController{DB: db, Payments: payments}
}

func (bc *BillController) GetAllBills(c *gin.Context) {
	query := bc.DB.Preload("Items")
	if status := c.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var bills []models.Bill
	if err := query.Order("created_at desc").Find(&bills).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bills", bills)
}

func (bc *BillController) GetBillByID(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.Preload("Items").First(&bill, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

// CreateBill snapshots the session's served/completed orders into a bill.
// Later edits to menus or orders cannot change the snapshot.
func (bc *BillController) CreateBill(c *gin.Context) {
	var req struct {
		SessionID uint   `json:"session_id" binding:"required"`
		OrderIDs  []uint `json:"order_ids"` // empty = all billable orders of the session
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var session models.TableSession
	if err := bc.DB.First(&session, req.SessionID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	if session.Status == models.SessionClosed {
		utils.RespondError(c, http.StatusConflict, errors.New("session is closed"))
		return
	}

	orderQuery := bc.DB.Preload("Items").
		Where("session_id = ? AND status NOT IN ?", session.ID,
			[]string{models.OrderCancelled, models.OrderPending})
	if len(req.OrderIDs) > 0 {
		orderQuery = orderQuery.Where("id IN ?", req.OrderIDs)
	}

	var orders []models.Order
	if err := orderQuery.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(orders) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no billable orders in this session"))
		return
	}

	now := time.Now()
	bill := models.Bill{
		BillNumber: models.GenerateBillNumber(now),
		SessionID:  session.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, strconv.FormatUint(uint64(o.ID), 10))
		bill.Subtotal += o.Subtotal
		bill.TaxAmount += o.TaxAmount
		bill.DiscountAmount += o.DiscountAmount
		bill.ServiceChargeAmount += o.ServiceChargeAmount
		bill.TotalAmount += o.TotalAmount
		for _, it := range o.Items {
			if it.Status == models.OrderCancelled {
				continue
			}
			bill.Items = append(bill.Items, models.BillItem{
				MenuItemID: it.MenuItemID,
				Name:       it.Name,
				Quantity:   it.Quantity,
				UnitPrice:  it.Price,
				Subtotal:   float64(it.Quantity) * it.Price,
			})
		}
	}
	bill.OrderIDs = strings.Join(ids, ",")
	bill.RoundAmounts()

	if err := bc.DB.Create(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	session.Status = models.SessionBilled
	bc.DB.Save(&session)

	utils.InfoLogger.Printf("Bill %s generated for session %d (total %s)",
		bill.BillNumber, session.ID, utils.FormatCurrency(bill.TotalAmount))
	kds.BroadcastBillUpdate(bill)

	utils.RespondJSON(c, http.StatusCreated, "Bill generated", bill)
}

// SettleBill records the payment. Split mode requires the per-mode amounts
// to add up to the bill total.
func (bc *BillController) SettleBill(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.Preload("Items").First(&bill, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if bill.PaymentStatus == models.BillPaid {
		utils.RespondError(c, http.StatusConflict, errors.New("bill already settled"))
		return
	}

	var req struct {
		PaymentMode string  `json:"payment_mode" binding:"required,oneof=cash card upi qris split"`
		CashAmount  float64 `json:"cash_amount" binding:"omitempty,gte=0"`
		CardAmount  float64 `json:"card_amount" binding:"omitempty,gte=0"`
		UPIAmount   float64 `json:"upi_amount" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill.PaymentMode = req.PaymentMode
	bill.CashAmount = req.CashAmount
	bill.CardAmount = req.CardAmount
	bill.UPIAmount = req.UPIAmount

	if req.PaymentMode == models.PaymentSplit && !bill.SplitCoversTotal() {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("split amounts (%s) do not match bill total (%s)",
				utils.FormatCurrency(bill.SplitTotal()), utils.FormatCurrency(bill.TotalAmount)))
		return
	}

	now := time.Now()
	bill.PaymentStatus = models.BillPaid
	bill.SettledAt = &now
	if userIDInterface, exists := c.Get("user_id"); exists {
		if userID, ok := userIDInterface.(uint); ok {
			bill.SettledByID = &userID
		}
	}

	if err := bc.DB.Save(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// orders covered by a settled bill are done
	for _, idStr := range strings.Split(bill.OrderIDs, ",") {
		var order models.Order
		if err := bc.DB.First(&order, idStr).Error; err != nil {
			continue
		}
		if order.Status == models.OrderServed || order.Status == models.OrderReady {
			order.SetStatus(models.OrderCompleted, now)
			bc.DB.Save(&order)
		}
	}

	kds.BroadcastBillUpdate(bill)
	utils.RespondJSON(c, http.StatusOK, "Bill settled", bill)
}

// ChargeQRIS creates a QRIS payment for the bill through the gateway and
// stores the QR payload for the front-of-house screen.
func (bc *BillController) ChargeQRIS(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.First(&bill, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if bill.PaymentStatus == models.BillPaid {
		utils.RespondError(c, http.StatusConflict, errors.New("bill already settled"))
		return
	}

	charge, err := bc.Payments.ChargeQRIS(bill.BillNumber, bill.TotalAmount)
	if err != nil {
		utils.RespondError(c, http.StatusBadGateway, err)
		return
	}

	bill.PaymentMode = models.PaymentQRIS
	bill.QRCode = charge.QRString
	bill.ReferenceID = charge.TransactionID
	if err := bc.DB.Save(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "QRIS charge created", gin.H{
		"bill":   bill,
		"charge": charge,
	})
}
