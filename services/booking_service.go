package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// BookingService menangani workflow reservasi meja: cek ketersediaan,
// pembuatan booking, promosi booking menjadi order, dan penolakan.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type BookingItemInput struct {
	MenuID   uint   `json:"menu_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

type CreateBookingInput struct {
	TableID      uint               `json:"table_id"`
	CustomerName string             `json:"customer_name"`
	Phone        string             `json:"phone"`
	BookingDate  string             `json:"booking_date"`
	TimeSlot     string             `json:"time_slot"`
	PartySize    int                `json:"party_size"`
	Note         string             `json:"note"`
	Items        []BookingItemInput `json:"items"`
}

// ListAvailableTables -> meja aktif di lantai tertentu dengan kapasitas
// cukup, dikurangi meja yang sudah punya booking non-cancelled pada
// (tanggal, slot) yang sama. Slot dibandingkan exact-match, bukan interval.
// Order aktif TIDAK ikut dicek di sini (perilaku lama yang dipertahankan).
func (bs *BookingService) ListAvailableTables(floor string, partySize int, date, timeSlot string) ([]models.Table, error) {
	if partySize <= 0 {
		return nil, &PreconditionError{Message: "party size must be positive"}
	}
	if !models.IsKnownFloor(floor) {
		return nil, &PreconditionError{Message: "unknown floor: " + floor}
	}

	var bookedIDs []uint
	if err := bs.DB.Model(&models.Booking{}).
		Where("booking_date = ? AND time_slot = ? AND status != ?",
			date, timeSlot, models.BookingStatusCancelled).
		Pluck("table_id", &bookedIDs).Error; err != nil {
		return nil, err
	}

	query := bs.DB.Where("floor = ? AND capacity >= ? AND active = ?", floor, partySize, true)
	if len(bookedIDs) > 0 {
		query = query.Where("id NOT IN ?", bookedIDs)
	}

	var tables []models.Table
	if err := query.Order("capacity asc").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// IsTableAvailable -> true jika tidak ada booking non-cancelled lain yang
// menempati (meja, tanggal, slot). excludeBookingID dipakai alur edit agar
// booking tidak bentrok dengan dirinya sendiri.
func (bs *BookingService) IsTableAvailable(tableID uint, date, timeSlot string, excludeBookingID *uint) (bool, error) {
	return bs.isTableAvailable(bs.DB, tableID, date, timeSlot, excludeBookingID)
}

func (bs *BookingService) isTableAvailable(tx *gorm.DB, tableID uint, date, timeSlot string, excludeBookingID *uint) (bool, error) {
	query := tx.Model(&models.Booking{}).
		Where("table_id = ? AND booking_date = ? AND time_slot = ? AND status != ?",
			tableID, date, timeSlot, models.BookingStatusCancelled)
	if excludeBookingID != nil {
		query = query.Where("id != ?", *excludeBookingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateBooking membuat reservasi Pending beserta line item dengan harga
// snapshot. Cek ketersediaan dan insert berjalan dalam satu transaksi, dan
// index unik uniq_booking_slot menutup race check-then-act: insert yang
// kalah balapan gagal duplicate key dan diterjemahkan ke SlotConflictError.
func (bs *BookingService) CreateBooking(input CreateBookingInput) (uint, error) {
	var bookingID uint

	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, input.TableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "table", ID: input.TableID}
			}
			return err
		}
		if !table.Active {
			return &NotFoundError{Entity: "table", ID: input.TableID}
		}

		if input.PartySize > table.Capacity {
			return &CapacityExceededError{
				TableID:   table.ID,
				Capacity:  table.Capacity,
				PartySize: input.PartySize,
			}
		}

		available, err := bs.isTableAvailable(tx, table.ID, input.BookingDate, input.TimeSlot, nil)
		if err != nil {
			return err
		}
		if !available {
			return &SlotConflictError{
				TableID:  table.ID,
				Date:     input.BookingDate,
				TimeSlot: input.TimeSlot,
			}
		}

		booking := models.Booking{
			CustomerName: input.CustomerName,
			Phone:        input.Phone,
			BookingDate:  input.BookingDate,
			TimeSlot:     input.TimeSlot,
			PartySize:    input.PartySize,
			Note:         input.Note,
			Status:       models.BookingStatusPending,
			TableID:      table.ID,
		}

		if err := tx.Create(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &SlotConflictError{
					TableID:  table.ID,
					Date:     input.BookingDate,
					TimeSlot: input.TimeSlot,
				}
			}
			return err
		}

		for _, item := range input.Items {
			var menu models.Menu
			if err := tx.First(&menu, item.MenuID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &NotFoundError{Entity: "menu", ID: item.MenuID}
				}
				return err
			}

			lineItem := models.LineItem{
				BookingID: &booking.ID,
				MenuID:    menu.ID,
				Quantity:  item.Quantity,
				Price:     menu.Price, // snapshot harga saat booking
				Notes:     item.Notes,
			}
			if err := tx.Create(&lineItem).Error; err != nil {
				return err
			}
		}

		bookingID = booking.ID
		return nil
	})

	if err != nil {
		return 0, err
	}

	utils.InfoLogger.Printf("Booking %d created for table %d (%s %s, party=%d)",
		bookingID, input.TableID, input.BookingDate, input.TimeSlot, input.PartySize)
	return bookingID, nil
}

// PromoteBookingToOrder mengubah booking menjadi order In service dalam
// satu transaksi: hitung total dari item booking, buat order, salin item
// tanpa referensi booking, hapus item lama, hapus booking. Pembaca
// konkuren tidak pernah melihat promosi setengah jadi.
func (bs *BookingService) PromoteBookingToOrder(bookingID uint) (uint, error) {
	var orderID uint

	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Preload("Items").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "booking", ID: bookingID}
			}
			return err
		}

		var total float64
		for _, item := range booking.Items {
			total += item.Price * float64(item.Quantity)
		}

		now := time.Now()
		order := models.Order{
			CustomerName:     booking.CustomerName,
			Phone:            booking.Phone,
			OrderDate:        booking.BookingDate,
			TimeSlot:         booking.TimeSlot,
			PartySize:        booking.PartySize,
			Note:             booking.Note,
			TotalPrice:       total,
			Status:           models.OrderStatusInService,
			TableID:          &booking.TableID,
			ServiceStartTime: &now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, item := range booking.Items {
			orderItem := models.LineItem{
				OrderID:  &order.ID,
				MenuID:   item.MenuID,
				Quantity: item.Quantity,
				Price:    item.Price,
				Notes:    item.Notes,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&booking).Error; err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})

	if err != nil {
		return 0, err
	}

	utils.InfoLogger.Printf("Booking %d promoted to order %d", bookingID, orderID)
	return orderID, nil
}

// RejectBooking menghapus booking beserta line item-nya. Booking yang
// ditolak tidak disimpan sebagai Cancelled -- hard delete, mengikuti
// kontrak yang berlaku untuk booking (berbeda dengan Order).
func (bs *BookingService) RejectBooking(bookingID uint, reason string) error {
	err := bs.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "booking", ID: bookingID}
			}
			return err
		}

		if err := tx.Where("booking_id = ?", booking.ID).Delete(&models.LineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})

	if err != nil {
		return err
	}

	if reason != "" {
		utils.InfoLogger.Printf("Booking %d rejected: %s", bookingID, reason)
	} else {
		utils.InfoLogger.Printf("Booking %d rejected", bookingID)
	}
	return nil
}
