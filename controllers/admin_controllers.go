package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik untuk dashboard back-office
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	today := time.Now().Format("2006-01-02")
	startOfDay := now.BeginningOfDay()
	endOfDay := now.EndOfDay()

	var stats struct {
		TotalBookings int64   `json:"total_bookings"`
		TodayBookings int64   `json:"today_bookings"`
		TotalOrders   int64   `json:"total_orders"`
		TodayOrders   int64   `json:"today_orders"`
		TotalRevenue  float64 `json:"total_revenue"`
		TodayRevenue  float64 `json:"today_revenue"`
		OrderStats    struct {
			PendingConfirmation int64 `json:"pending_confirmation"`
			InService           int64 `json:"in_service"`
			Unpaid              int64 `json:"unpaid"`
			Paid                int64 `json:"paid"`
			Cancelled           int64 `json:"cancelled"`
		} `json:"order_stats"`
		TableStats struct {
			Total      int64 `json:"total"`
			Active     int64 `json:"active"`
			BookedNow  int64 `json:"booked_today"`
			FloorOne   int64 `json:"floor_1"`
			FloorTwo   int64 `json:"floor_2"`
			Rooftop    int64 `json:"rooftop"`
		} `json:"table_stats"`
	}

	ac.DB.Model(&models.Booking{}).Count(&stats.TotalBookings)
	ac.DB.Model(&models.Booking{}).Where("booking_date = ?", today).Count(&stats.TodayBookings)

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).
		Where("created_at BETWEEN ? AND ?", startOfDay, endOfDay).
		Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPendingConfirmation).Count(&stats.OrderStats.PendingConfirmation)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusInService).Count(&stats.OrderStats.InService)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusUnpaid).Count(&stats.OrderStats.Unpaid)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPaid).Count(&stats.OrderStats.Paid)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.OrderStats.Cancelled)

	// Revenue dari payment sukses
	ac.DB.Model(&models.Payment{}).Where("status = ?", models.PaymentStatusSuccess).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&stats.TotalRevenue)
	ac.DB.Model(&models.Payment{}).
		Where("status = ? AND payment_time BETWEEN ? AND ?", models.PaymentStatusSuccess, startOfDay, endOfDay).
		Select("COALESCE(SUM(amount), 0)").Row().Scan(&stats.TodayRevenue)

	ac.DB.Model(&models.Table{}).Count(&stats.TableStats.Total)
	ac.DB.Model(&models.Table{}).Where("active = ?", true).Count(&stats.TableStats.Active)
	ac.DB.Model(&models.Booking{}).
		Where("booking_date = ? AND status != ?", today, models.BookingStatusCancelled).
		Distinct("table_id").Count(&stats.TableStats.BookedNow)
	ac.DB.Model(&models.Table{}).Where("floor = ?", models.FloorOne).Count(&stats.TableStats.FloorOne)
	ac.DB.Model(&models.Table{}).Where("floor = ?", models.FloorTwo).Count(&stats.TableStats.FloorTwo)
	ac.DB.Model(&models.Table{}).Where("floor = ?", models.FloorRooftop).Count(&stats.TableStats.Rooftop)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetPopularMenus -> menu terlaris berdasarkan line item historis
func (ac *AdminController) GetPopularMenus(c *gin.Context) {
	var popular []struct {
		MenuID   uint    `json:"menu_id"`
		MenuName string  `json:"menu_name"`
		Count    int64   `json:"count"`
		Revenue  float64 `json:"revenue"`
	}

	ac.DB.Raw(`
		SELECT m.id as menu_id, m.name as menu_name,
		COUNT(li.id) as count, SUM(li.price * li.quantity) as revenue
		FROM line_items li
		JOIN menus m ON li.menu_id = m.id
		WHERE li.order_id IS NOT NULL
		GROUP BY m.id, m.name
		ORDER BY count DESC
		LIMIT 10
	`).Scan(&popular)

	utils.RespondJSON(c, http.StatusOK, "Popular menus", popular)
}
