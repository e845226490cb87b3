package models

import "time"

// Status booking. Tidak ada tabel transisi untuk booking -- staff boleh
// mengubah status secara langsung (berbeda dengan Order, lihat order.go).
const (
	BookingStatusPending   = "Pending"
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
	BookingStatusCompleted = "Completed"
)

// Booking adalah reservasi meja yang belum menjadi order.
// Kombinasi (table_id, booking_date, time_slot) dijaga unik oleh index
// uniq_booking_slot; booking yang dibatalkan dihapus, bukan disimpan,
// sehingga index polos aman dipakai.
type Booking struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CustomerName string     `gorm:"type:varchar(255);not null" json:"customer_name"`
	Phone        string     `gorm:"type:varchar(30);not null" json:"phone"`
	BookingDate  string     `gorm:"type:varchar(10);not null;uniqueIndex:uniq_booking_slot" json:"booking_date"`
	TimeSlot     string     `gorm:"type:varchar(10);not null;uniqueIndex:uniq_booking_slot" json:"time_slot"`
	PartySize    int        `gorm:"not null" json:"party_size"`
	Note         string     `gorm:"type:text" json:"note"`
	Status       string     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	TableID      uint       `gorm:"not null;uniqueIndex:uniq_booking_slot" json:"table_id"`
	Table        Table      `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Items        []LineItem `gorm:"foreignKey:BookingID" json:"items"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
