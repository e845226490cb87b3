package services

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// PaymentService menangani pembayaran order: cash di kasir atau QRIS
// lewat Midtrans. Pembayaran sukses menggerakkan order ke Paid melalui
// state machine di OrderService.
type PaymentService struct {
	DB     *gorm.DB
	Orders *OrderService
	core   coreapi.Client
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	ps := &PaymentService{
		DB:     db,
		Orders: NewOrderService(db),
	}

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_ENV") == "production" {
		env = midtrans.Production
	}
	ps.core.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)

	return ps
}

// payableOrder memuat order dan memastikan statusnya boleh menuju Paid.
func (ps *PaymentService) payableOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := ps.DB.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "order", ID: orderID}
		}
		return nil, err
	}

	if !models.CanTransition(order.Status, models.OrderStatusPaid) {
		return nil, &PreconditionError{
			Message: fmt.Sprintf("order %d is %q and cannot be paid", order.ID, order.Status),
		}
	}
	return &order, nil
}

// PayCash mencatat pembayaran tunai dan langsung menandai order Paid.
// Insert payment dan perpindahan status order satu transaksi: tidak
// pernah ada payment sukses menempel pada order yang bukan Paid.
func (ps *PaymentService) PayCash(orderID uint, cashReceived float64, verifiedBy *uint) (*models.Payment, error) {
	order, err := ps.payableOrder(orderID)
	if err != nil {
		return nil, err
	}

	if cashReceived < order.TotalPrice {
		return nil, &PreconditionError{
			Message: fmt.Sprintf("cash received %s is less than order total %s",
				utils.FormatCurrencyIDR(cashReceived), utils.FormatCurrencyIDR(order.TotalPrice)),
		}
	}

	now := time.Now()
	payment := models.Payment{
		OrderID:      order.ID,
		Amount:       order.TotalPrice,
		Status:       models.PaymentStatusSuccess,
		Method:       models.PaymentMethodCash,
		ReferenceID:  fmt.Sprintf("CASH-%s", uuid.NewString()[:8]),
		CashReceived: cashReceived,
		Change:       cashReceived - order.TotalPrice,
		PaymentTime:  &now,
		VerifiedBy:   verifiedBy,
	}

	err = ps.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		_, err := ps.Orders.updateStatus(tx, order.ID, models.OrderStatusPaid)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d paid cash (received=%s, change=%s)",
		order.ID, utils.FormatCurrencyIDR(cashReceived), utils.FormatCurrencyIDR(payment.Change))
	return &payment, nil
}

// CreateQRISCharge membuat tagihan QRIS di Midtrans dan menyimpan payment
// berstatus pending. Order belum berpindah status sampai dikonfirmasi.
func (ps *PaymentService) CreateQRISCharge(orderID uint) (*models.Payment, error) {
	order, err := ps.payableOrder(orderID)
	if err != nil {
		return nil, err
	}

	referenceID := fmt.Sprintf("RESTO-%d-%s", order.ID, uuid.NewString()[:8])

	chargeReq := &coreapi.ChargeReq{
		PaymentType: coreapi.PaymentTypeQris,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  referenceID,
			GrossAmt: int64(order.TotalPrice),
		},
	}

	resp, chargeErr := ps.core.ChargeTransaction(chargeReq)
	if chargeErr != nil {
		utils.ErrorLogger.Printf("Midtrans charge failed for order %d: %v", order.ID, chargeErr)
		return nil, fmt.Errorf("payment gateway error")
	}

	qrCode := resp.QRString
	if qrCode == "" {
		for _, action := range resp.Actions {
			if action.Name == "generate-qr-code" {
				qrCode = action.URL
				break
			}
		}
	}

	payment := models.Payment{
		OrderID:     order.ID,
		Amount:      order.TotalPrice,
		Status:      models.PaymentStatusPending,
		Method:      models.PaymentMethodQRIS,
		ReferenceID: referenceID,
		QRCode:      qrCode,
	}

	if err := ps.DB.Create(&payment).Error; err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("QRIS charge created for order %d (ref=%s)", order.ID, referenceID)
	return &payment, nil
}

// ConfirmPayment menandai payment pending menjadi success dan
// memindahkan order ke Paid, keduanya dalam satu transaksi. Transisi
// yang gagal membatalkan perubahan payment juga.
func (ps *PaymentService) ConfirmPayment(paymentID uint, verifiedBy *uint) (*models.Payment, error) {
	var payment models.Payment
	if err := ps.DB.First(&payment, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "payment", ID: paymentID}
		}
		return nil, err
	}

	if payment.Status != models.PaymentStatusPending {
		return nil, &PreconditionError{
			Message: fmt.Sprintf("payment %d is %q, not pending", payment.ID, payment.Status),
		}
	}

	now := time.Now()
	payment.Status = models.PaymentStatusSuccess
	payment.PaymentTime = &now
	payment.VerifiedBy = verifiedBy

	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		_, err := ps.Orders.updateStatus(tx, payment.OrderID, models.OrderStatusPaid)
		return err
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Payment %d confirmed for order %d", payment.ID, payment.OrderID)
	return &payment, nil
}
