package models

import "time"

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodQRIS = "qris"
)

// Payment mencatat pembayaran satu order (cash atau QRIS via Midtrans).
type Payment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	OrderID      uint       `gorm:"not null;index" json:"order_id"`
	Order        Order      `gorm:"foreignKey:OrderID;references:ID" json:"order"`
	Amount       float64    `gorm:"type:decimal(12,2);not null" json:"amount"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Method       string     `gorm:"type:varchar(20);not null;default:'cash'" json:"method"`
	ReferenceID  string     `gorm:"type:varchar(100)" json:"reference_id"`
	QRCode       string     `gorm:"type:text" json:"qr_code,omitempty"`
	CashReceived float64    `gorm:"type:decimal(12,2)" json:"cash_received"`
	Change       float64    `gorm:"type:decimal(12,2)" json:"change"`
	PaymentTime  *time.Time `json:"payment_time,omitempty"`
	VerifiedBy   *uint      `json:"verified_by,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
