package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davinpratama/resto-ops/models"
)

// Jalur QRIS tidak diuji di sini karena memanggil Midtrans sungguhan;
// yang diuji adalah cash dan konfirmasi payment pending.

func TestPayCash(t *testing.T) {
	db := setupServiceTestDB(t)
	orders := NewOrderService(db)
	payments := NewPaymentService(db)

	menu := seedMenu(t, db, "Nasi Goreng", 50000)
	orderID := seedWalkInOrder(t, db, orders, []BookingItemInput{
		{MenuID: menu.ID, Quantity: 2},
	})
	_, err := orders.UpdateStatus(orderID, models.OrderStatusInService)
	assert.NoError(t, err)

	cashier := uint(7)

	// Uang kurang -> PreconditionError, tidak ada payment tertulis
	var precondition *PreconditionError
	_, err = payments.PayCash(orderID, 50000, &cashier)
	assert.ErrorAs(t, err, &precondition)

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Zero(t, count)

	payment, err := payments.PayCash(orderID, 150000, &cashier)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.Equal(t, float64(100000), payment.Amount)
	assert.Equal(t, float64(50000), payment.Change)
	assert.NotNil(t, payment.PaymentTime)
	assert.Equal(t, cashier, *payment.VerifiedBy)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.NotNil(t, order.ServiceEndTime)

	// Order yang sudah Paid tidak bisa dibayar lagi
	_, err = payments.PayCash(orderID, 150000, &cashier)
	assert.ErrorAs(t, err, &precondition)
}

func TestConfirmPayment(t *testing.T) {
	db := setupServiceTestDB(t)
	orders := NewOrderService(db)
	payments := NewPaymentService(db)

	menu := seedMenu(t, db, "Sate", 40000)
	orderID := seedWalkInOrder(t, db, orders, []BookingItemInput{
		{MenuID: menu.ID, Quantity: 1},
	})
	_, err := orders.UpdateStatus(orderID, models.OrderStatusUnpaid)
	assert.NoError(t, err)

	// Payment pending seolah-olah hasil charge QRIS
	pending := models.Payment{
		OrderID:     orderID,
		Amount:      40000,
		Status:      models.PaymentStatusPending,
		Method:      models.PaymentMethodQRIS,
		ReferenceID: "RESTO-TEST-1",
	}
	assert.NoError(t, db.Create(&pending).Error)

	cashier := uint(3)
	payment, err := payments.ConfirmPayment(pending.ID, &cashier)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.NotNil(t, payment.PaymentTime)

	var order models.Order
	assert.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	// Konfirmasi kedua -> bukan pending lagi
	var precondition *PreconditionError
	_, err = payments.ConfirmPayment(pending.ID, &cashier)
	assert.ErrorAs(t, err, &precondition)

	var notFound *NotFoundError
	_, err = payments.ConfirmPayment(999, &cashier)
	assert.ErrorAs(t, err, &notFound)
}

// Konfirmasi yang transisinya gagal harus rollback total: payment tetap
// pending, tidak ada payment sukses menempel pada order yang bukan Paid.
func TestConfirmPaymentRollsBackOnBadTransition(t *testing.T) {
	db := setupServiceTestDB(t)
	payments := NewPaymentService(db)

	// Order sudah Paid; payment pending tertinggal dari percobaan lama
	order := models.Order{
		CustomerName: "Walk-in",
		OrderDate:    "2025-06-01",
		PartySize:    2,
		TotalPrice:   40000,
		Status:       models.OrderStatusPaid,
	}
	assert.NoError(t, db.Create(&order).Error)

	stale := models.Payment{
		OrderID:     order.ID,
		Amount:      40000,
		Status:      models.PaymentStatusPending,
		Method:      models.PaymentMethodQRIS,
		ReferenceID: "RESTO-TEST-2",
	}
	assert.NoError(t, db.Create(&stale).Error)

	cashier := uint(3)
	var precondition *PreconditionError
	_, err := payments.ConfirmPayment(stale.ID, &cashier)
	assert.ErrorAs(t, err, &precondition)

	// Status payment di DB tidak berubah
	var reloaded models.Payment
	assert.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, reloaded.Status)
	assert.Nil(t, reloaded.PaymentTime)
}
