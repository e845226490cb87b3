package models

import "time"

// Status order. Berbeda dengan versi lama yang memakai string bebas,
// status sekarang himpunan tertutup dengan tabel transisi eksplisit.
const (
	OrderStatusPendingConfirmation = "Pending confirmation"
	OrderStatusInService           = "In service"
	OrderStatusUnpaid              = "Unpaid"
	OrderStatusPaid                = "Paid"
	OrderStatusCancelled           = "Cancelled"
)

// orderTransitions memetakan status asal ke status tujuan yang sah.
var orderTransitions = map[string][]string{
	OrderStatusPendingConfirmation: {OrderStatusInService, OrderStatusUnpaid, OrderStatusCancelled},
	OrderStatusInService:           {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusUnpaid:              {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:                {},
	OrderStatusCancelled:           {},
}

// IsValidOrderStatus -> cek apakah status dikenal
func IsValidOrderStatus(status string) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransition -> cek apakah perpindahan status diizinkan
func CanTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus -> Paid / Cancelled, order boleh dihapus
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusPaid || status == OrderStatusCancelled
}

// Order adalah kunjungan aktif atau selesai, dibuat langsung (walk-in)
// atau hasil promosi Booking.
type Order struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	CustomerName     string     `gorm:"type:varchar(255);not null" json:"customer_name"`
	Phone            string     `gorm:"type:varchar(30)" json:"phone"`
	OrderDate        string     `gorm:"type:varchar(10);not null" json:"order_date"`
	TimeSlot         string     `gorm:"type:varchar(10)" json:"time_slot"`
	PartySize        int        `gorm:"not null;default:1" json:"party_size"`
	Note             string     `gorm:"type:text" json:"note"`
	TotalPrice       float64    `gorm:"type:decimal(12,2);not null;default:0.00" json:"total_price"`
	Status           string     `gorm:"type:varchar(30);not null;default:'Pending confirmation'" json:"status"`
	TableID          *uint      `gorm:"index" json:"table_id,omitempty"`
	Table            *Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table,omitempty"`
	ServiceStartTime *time.Time `json:"service_start_time,omitempty"`
	ServiceEndTime   *time.Time `json:"service_end_time,omitempty"`
	Items            []LineItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt        time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"not null" json:"updated_at"`
}
