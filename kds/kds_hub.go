package kds

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/dinescan/restaurant-backend/models"
	"github.com/dinescan/restaurant-backend/utils"
)

// Event types pushed to kitchen/captain/admin screens.
const (
	EventOrderUpdate  = "order_update"
	EventOrderCreated = "order_created"
	EventTableUpdate  = "table_update"
	EventStockAlert   = "stock_alert"
	EventBillUpdate   = "bill_update"
	EventStaffNotif   = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// KDSHub holds all connected display clients keyed by role.
type KDSHub struct {
	clients map[*websocket.Conn]string
	mutex   sync.Mutex
}

var kdsHub = KDSHub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	kdsHub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()
	delete(kdsHub.clients, conn)
	conn.Close()
}

func BroadcastOrderCreated(order models.Order) {
	broadcast(Message{Event: EventOrderCreated, Data: order})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{Event: EventTableUpdate, Data: table})
}

func BroadcastStockAlert(ingredient models.Ingredient) {
	broadcast(Message{Event: EventStockAlert, Data: ingredient})
}

func BroadcastBillUpdate(bill models.Bill) {
	broadcast(Message{Event: EventBillUpdate, Data: bill})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{Event: EventStaffNotif, Data: message})
}

func broadcast(msg Message) {
	kdsHub.mutex.Lock()
	defer kdsHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Errorf("kds: error marshaling message: %v", err)
		return
	}

	for conn, role := range kdsHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Errorf("kds: error sending to %s client: %v", role, err)
		}
	}
}
