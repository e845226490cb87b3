package models

import "time"

// LineItem adalah satu menu dengan jumlah dan harga snapshot. Item milik
// tepat satu Booking ATAU satu Order; saat promosi, item sisi booking
// dihapus dan diganti item baru dengan BookingID nil. Price diambil dari
// harga menu saat pemesanan -- perubahan harga menu setelah itu tidak
// boleh mengubah total historis.
type LineItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID *uint     `gorm:"index" json:"booking_id,omitempty"`
	OrderID   *uint     `gorm:"index" json:"order_id,omitempty"`
	MenuID    uint      `gorm:"not null" json:"menu_id"`
	Menu      Menu      `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
