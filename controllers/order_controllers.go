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

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:      db,
		Service: services.NewOrderService(db),
	}
}

// GetAllOrders -> list orders beserta items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Preload("Table")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("order_date = ?", date)
	}

	var orders []models.Order
	if err := query.Order("created_at desc").Find(&orders).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").Preload("Items.Menu").Preload("Table").
		First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> buat order walk-in (status 'Pending confirmation')
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orderID, err := oc.Service.CreateOrder(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, orderID).Error; err == nil {
		events.BroadcastOrderUpdate(order)
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id": orderID,
	})
}

// UpdateOrderStatus -> staff memindahkan order mengikuti tabel transisi
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.UpdateStatus(uint(orderID), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastOrderUpdate(*order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> hanya dari status terminal (Paid/Cancelled)
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	if err := oc.Service.DeleteOrder(uint(orderID)); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{
		"order_id": orderID,
	})
}
