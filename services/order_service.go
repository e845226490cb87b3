package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// OrderService menangani order walk-in dan state machine status order.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type CreateOrderInput struct {
	CustomerName string             `json:"customer_name"`
	Phone        string             `json:"phone"`
	OrderDate    string             `json:"order_date"`
	TimeSlot     string             `json:"time_slot"`
	PartySize    int                `json:"party_size"`
	Note         string             `json:"note"`
	TableID      *uint              `json:"table_id"`
	Items        []BookingItemInput `json:"items"`
}

// CreateOrder membuat order walk-in dengan status Pending confirmation.
// Harga item di-snapshot dari harga menu saat order dibuat.
func (os *OrderService) CreateOrder(input CreateOrderInput) (uint, error) {
	var orderID uint

	err := os.DB.Transaction(func(tx *gorm.DB) error {
		if input.TableID != nil {
			var table models.Table
			if err := tx.First(&table, *input.TableID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "table", ID: *input.TableID}
				}
				return err
			}
			if input.PartySize > table.Capacity {
				return &CapacityExceededError{
					TableID:   table.ID,
					Capacity:  table.Capacity,
					PartySize: input.PartySize,
				}
			}
		}

		order := models.Order{
			CustomerName: input.CustomerName,
			Phone:        input.Phone,
			OrderDate:    input.OrderDate,
			TimeSlot:     input.TimeSlot,
			PartySize:    input.PartySize,
			Note:         input.Note,
			Status:       models.OrderStatusPendingConfirmation,
			TableID:      input.TableID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for _, item := range input.Items {
			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "menu", ID: item.MenuID}
				}
				return err
			}

			lineItem := models.LineItem{
				OrderID:  &order.ID,
				MenuID:   menu.ID,
				Quantity: item.Quantity,
				Price:    menu.Price,
				Notes:    item.Notes,
			}
			if err := tx.Create(&lineItem).Error; err != nil {
				return err
			}
			total += menu.Price * float64(item.Quantity)
		}

		order.TotalPrice = total
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})

	if err != nil {
		return 0, err
	}

	utils.InfoLogger.Printf("Order %d created (walk-in)", orderID)
	return orderID, nil
}

// UpdateStatus memindahkan order ke status baru sesuai tabel transisi.
// Masuk In service menstempel ServiceStartTime jika belum ada (idempoten);
// masuk Paid menstempel ServiceEndTime.
func (os *OrderService) UpdateStatus(orderID uint, newStatus string) (*models.Order, error) {
	var order *models.Order
	err := os.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = os.updateStatus(tx, orderID, newStatus)
		return err
	})

	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order %d status changed to %s", order.ID, order.Status)
	return order, nil
}

// updateStatus adalah inti state machine, berjalan dalam transaksi milik
// pemanggil sehingga payment dan perpindahan status bisa satu atomik.
func (os *OrderService) updateStatus(tx *gorm.DB, orderID uint, newStatus string) (*models.Order, error) {
	if !models.IsValidOrderStatus(newStatus) {
		return nil, &PreconditionError{Message: "unknown order status: " + newStatus}
	}

	var order models.Order
	if err := tx.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "order", ID: orderID}
		}
		return nil, err
	}

	if !models.CanTransition(order.Status, newStatus) {
		return nil, &PreconditionError{
			Message: fmt.Sprintf("cannot transition order %d from %q to %q",
				order.ID, order.Status, newStatus),
		}
	}

	now := time.Now()
	order.Status = newStatus
	switch newStatus {
	case models.OrderStatusInService:
		if order.ServiceStartTime == nil {
			order.ServiceStartTime = &now
		}
	case models.OrderStatusPaid:
		order.ServiceEndTime = &now
	}

	if err := tx.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder menghapus order beserta line item-nya. Hanya boleh dari
// status terminal (Paid/Cancelled).
func (os *OrderService) DeleteOrder(orderID uint) error {
	err := os.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "order", ID: orderID}
			}
			return err
		}

		if !models.IsTerminalOrderStatus(order.Status) {
			return &PreconditionError{
				Message: fmt.Sprintf("order %d is %q; only Paid or Cancelled orders can be deleted",
					order.ID, order.Status),
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})

	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Order %d deleted", orderID)
	return nil
}
