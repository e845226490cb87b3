package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/davinpratama/resto-ops/models"
)

// Event types
const (
	EventBookingCreate   = "booking_create"
	EventBookingPromote  = "booking_promote"
	EventBookingReject   = "booking_reject"
	EventOrderUpdate     = "order_update"
	EventTableUpdate     = "table_update"
	EventPaymentUpdate   = "payment_update"
	EventDashboardUpdate = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub menampung koneksi dashboard back-office (admin/staff) dan
// menyiarkan event booking/order/table ke semuanya.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient -> menambahkan connection ke set dengan role
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastBookingCreate -> booking baru masuk
func BroadcastBookingCreate(booking models.Booking) {
	broadcast(Message{
		Event: EventBookingCreate,
		Data:  booking,
	})
}

// BroadcastBookingPromote -> booking dipromosikan jadi order
func BroadcastBookingPromote(bookingID, orderID uint) {
	broadcast(Message{
		Event: EventBookingPromote,
		Data: map[string]interface{}{
			"booking_id": bookingID,
			"order_id":   orderID,
		},
	})
}

// BroadcastBookingReject -> booking ditolak
func BroadcastBookingReject(bookingID uint) {
	broadcast(Message{
		Event: EventBookingReject,
		Data: map[string]interface{}{
			"booking_id": bookingID,
		},
	})
}

// BroadcastOrderUpdate -> perubahan status order
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastTableUpdate -> perubahan katalog meja
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

// BroadcastPaymentUpdate -> pembayaran dibuat/dikonfirmasi
func BroadcastPaymentUpdate(payment models.Payment) {
	broadcast(Message{
		Event: EventPaymentUpdate,
		Data:  payment,
	})
}

// BroadcastDashboardUpdate -> refresh statistik dashboard
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

// broadcast -> fungsi internal untuk mengirim pesan
func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
