package services

import (
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dinescan/restaurant-backend/kds"
	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

// StockMonitor periodically rescans the inventory, refreshes derived
// statuses (an ingredient can expire without any write touching it) and
// pushes alerts for anything that newly dropped below its thresholds.
type StockMonitor struct {
	DB       *gorm.DB
	Interval time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	alerted  map[uint]string // ingredient id -> last alerted status
}

func NewStockMonitor(db *gorm.DB) *StockMonitor {
	return &StockMonitor{
		DB:       db,
		Interval: time.Minute,
		stop:     make(chan struct{}),
		alerted:  make(map[uint]string),
	}
}

func (sm *StockMonitor) Start() {
	go func() {
		ticker := time.NewTicker(sm.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sm.Sweep(time.Now())
			case <-sm.stop:
				return
			}
		}
	}()
}

func (sm *StockMonitor) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stop)
	})
}

// Sweep runs one pass. Exported so tests can drive it without the ticker.
func (sm *StockMonitor) Sweep(now time.Time) {
	var ingredients []models.Ingredient
	if err := sm.DB.Find(&ingredients).Error; err != nil {
		utils.ErrorLogger.Errorf("stock monitor: %v", err)
		return
	}

	for i := range ingredients {
		ing := &ingredients[i]
		before := ing.Status
		ing.RefreshStatus(now)
		if ing.Status != before {
			if err := sm.DB.Model(&models.Ingredient{}).Where("id = ?", ing.ID).
				Update("status", ing.Status).Error; err != nil {
				utils.ErrorLogger.Errorf("stock monitor: %v", err)
				continue
			}
		}

		alertable := ing.Status == models.StockLow || ing.Status == models.StockOut ||
			ing.Status == models.StockExpired
		if alertable && sm.alerted[ing.ID] != ing.Status {
			sm.alerted[ing.ID] = ing.Status
			utils.InfoLogger.Printf("stock alert: %s is %s (qty=%.3f)", ing.Name, ing.Status, ing.Quantity)
			kds.BroadcastStockAlert(*ing)
		}
		if !alertable {
			delete(sm.alerted, ing.ID)
		}
	}
}
