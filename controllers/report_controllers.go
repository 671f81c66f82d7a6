package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// startOfDay returns midnight of now's calendar day in now's location.
// Truncating the unix timestamp would give UTC midnight instead and shift
// the service day for any non-UTC deployment.
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// GetDashboardStats summarizes the current service day for the back office.
func (rc *ReportController) GetDashboardStats(c *gin.Context) {
	dayStart := startOfDay(time.Now())

	var stats struct {
		OrdersToday     int64   `json:"orders_today"`
		RevenueToday    float64 `json:"revenue_today"`
		ActiveSessions  int64   `json:"active_sessions"`
		OccupiedTables  int64   `json:"occupied_tables"`
		PendingOrders   int64   `json:"pending_orders"`
		PreparingOrders int64   `json:"preparing_orders"`
		LowStockItems   int64   `json:"low_stock_items"`
		UnpaidBills     int64   `json:"unpaid_bills"`
	}

	rc.DB.Model(&models.Order{}).Where("created_at >= ?", dayStart).Count(&stats.OrdersToday)
	rc.DB.Model(&models.Bill{}).
		Where("payment_status = ? AND settled_at >= ?", models.BillPaid, dayStart).
		Select("COALESCE(SUM(total_amount), 0)").Row().Scan(&stats.RevenueToday)
	rc.DB.Model(&models.TableSession{}).Where("status = ?", models.SessionActive).Count(&stats.ActiveSessions)
	rc.DB.Model(&models.Table{}).Where("status = ?", models.TableOccupied).Count(&stats.OccupiedTables)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&stats.PendingOrders)
	rc.DB.Model(&models.Order{}).Where("status = ?", models.OrderPreparing).Count(&stats.PreparingOrders)
	rc.DB.Model(&models.Ingredient{}).
		Where("status IN ?", []string{models.StockLow, models.StockOut}).Count(&stats.LowStockItems)
	rc.DB.Model(&models.Bill{}).Where("payment_status = ?", models.BillPending).Count(&stats.UnpaidBills)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

type salesRow struct {
	Day     string  `json:"day"`
	Bills   int64   `json:"bills"`
	Revenue float64 `json:"revenue"`
}

func (rc *ReportController) salesByDay(days int) ([]salesRow, error) {
	since := time.Now().AddDate(0, 0, -days)

	var rows []salesRow
	err := rc.DB.Model(&models.Bill{}).
		Select("DATE(settled_at) as day, COUNT(*) as bills, SUM(total_amount) as revenue").
		Where("payment_status = ? AND settled_at >= ?", models.BillPaid, since).
		Group("DATE(settled_at)").
		Order("day asc").
		Scan(&rows).Error
	return rows, err
}

// GetSalesReport returns revenue per day plus the best selling items.
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	rows, err := rc.salesByDay(30)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var popular []struct {
		Name     string  `json:"name"`
		Quantity int64   `json:"quantity"`
		Revenue  float64 `json:"revenue"`
	}
	rc.DB.Raw(`
		SELECT bi.name AS name, SUM(bi.quantity) AS quantity, SUM(bi.subtotal) AS revenue
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.payment_status = ?
		GROUP BY bi.name
		ORDER BY quantity DESC
		LIMIT 10
	`, models.BillPaid).Scan(&popular)

	utils.RespondJSON(c, http.StatusOK, "Sales report", gin.H{
		"by_day":        rows,
		"popular_items": popular,
	})
}

// ExportPDF writes the 30-day sales report as a PDF download.
func (rc *ReportController) ExportPDF(c *gin.Context) {
	rows, err := rc.salesByDay(30)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Sales Report (last 30 days)")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(60, 8, "Day", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Bills", "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Revenue", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	var total float64
	for _, row := range rows {
		pdf.CellFormat(60, 8, row.Day, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", row.Bills), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 8, utils.FormatCurrency(row.Revenue), "1", 1, "R", false, 0, "")
		total += row.Revenue
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(100, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, utils.FormatCurrency(total), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="sales-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// SalesChart renders revenue-by-day as a PNG bar chart.
func (rc *ReportController) SalesChart(c *gin.Context) {
	rows, err := rc.salesByDay(14)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(rows) == 0 {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no settled bills to chart"))
		return
	}

	bars := make([]chart.Value, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, chart.Value{Label: row.Day, Value: row.Revenue})
	}

	graph := chart.BarChart{
		Title:    "Revenue by day",
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
