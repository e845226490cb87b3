package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/events"
	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/services"
	"github.com/davinpratama/resto-ops/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:      db,
		Service: services.NewPaymentService(db),
	}
}

func verifierID(c *gin.Context) *uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

// PayCash -> kasir menerima tunai; order langsung Paid
func (pc *PaymentController) PayCash(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		CashReceived float64 `json:"cash_received" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Service.PayCash(uint(orderID), req.CashReceived, verifierID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastPaymentUpdate(*payment)
	events.BroadcastDashboardUpdate(gin.H{"order_id": payment.OrderID})

	utils.RespondJSON(c, http.StatusCreated, "Cash payment recorded", payment)
}

// CreateQRIS -> buat tagihan QRIS Midtrans untuk satu order
func (pc *PaymentController) CreateQRIS(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	payment, err := pc.Service.CreateQRISCharge(uint(orderID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastPaymentUpdate(*payment)

	utils.RespondJSON(c, http.StatusCreated, "QRIS charge created", payment)
}

// ConfirmPayment -> staff menandai payment pending sebagai sukses
func (pc *PaymentController) ConfirmPayment(c *gin.Context) {
	paymentID, err := strconv.Atoi(c.Param("payment_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid payment id"))
		return
	}

	payment, err := pc.Service.ConfirmPayment(uint(paymentID), verifierID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastPaymentUpdate(*payment)
	events.BroadcastDashboardUpdate(gin.H{"order_id": payment.OrderID})

	utils.RespondJSON(c, http.StatusOK, "Payment confirmed", payment)
}

// GetPayments -> daftar pembayaran
func (pc *PaymentController) GetPayments(c *gin.Context) {
	query := pc.DB.Preload("Order")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var payments []models.Payment
	if err := query.Order("created_at desc").Find(&payments).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}

// GetPaymentByID -> detail satu pembayaran
func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	paymentID := c.Param("payment_id")

	var payment models.Payment
	if err := pc.DB.Preload("Order").First(&payment, paymentID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment detail", payment)
}
