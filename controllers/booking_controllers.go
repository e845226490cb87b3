package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/events"
	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/services"
	"github.com/davinpratama/resto-ops/session"
	"github.com/davinpratama/resto-ops/utils"
)

type BookingController struct {
	DB      *gorm.DB
	Service *services.BookingService
	Drafts  *session.Store
}

func NewBookingController(db *gorm.DB, drafts *session.Store) *BookingController {
	return &BookingController{
		DB:      db,
		Service: services.NewBookingService(db),
		Drafts:  drafts,
	}
}

// sessionToken mengambil token sesi browser dari header/cookie, membuat
// yang baru bila belum ada.
func sessionToken(c *gin.Context) string {
	token := c.GetHeader("X-Session-Token")
	if token == "" {
		token, _ = c.Cookie("session_token")
	}
	if token == "" {
		token = uuid.NewString()
		c.SetCookie("session_token", token, int(session.DraftTTL.Seconds()), "/", "", false, true)
	}
	return token
}

// ListAvailableTables -> daftar meja yang masih bebas untuk satu slot
func (bc *BookingController) ListAvailableTables(c *gin.Context) {
	floor := c.Query("floor")
	date := c.Query("date")
	timeSlot := c.Query("time_slot")
	partySize, err := strconv.Atoi(c.Query("party_size"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("party_size must be a number"))
		return
	}

	tables, err := bc.Service.ListAvailableTables(floor, partySize, date, timeSlot)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Available tables", tables)
}

// CheckTableAvailability -> cek satu meja untuk satu slot
func (bc *BookingController) CheckTableAvailability(c *gin.Context) {
	tableID, err := strconv.Atoi(c.Param("table_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table id"))
		return
	}

	available, err := bc.Service.IsTableAvailable(uint(tableID), c.Query("date"), c.Query("time_slot"), nil)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table availability", gin.H{
		"table_id":  tableID,
		"available": available,
	})
}

// SaveDraft menyimpan isi formulir booking yang sedang berjalan di Redis,
// dikunci token sesi, supaya customer bisa pindah halaman tanpa kehilangan
// isian.
func (bc *BookingController) SaveDraft(c *gin.Context) {
	if bc.Drafts == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("draft storage unavailable"))
		return
	}

	var draft session.BookingDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token := sessionToken(c)
	if err := bc.Drafts.SaveDraft(c.Request.Context(), token, &draft); err != nil {
		utils.ErrorLogger.Printf("Failed to save booking draft: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to save draft"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Draft saved", gin.H{"session_token": token})
}

// GetDraft mengambil draft booking milik sesi ini.
func (bc *BookingController) GetDraft(c *gin.Context) {
	if bc.Drafts == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("draft storage unavailable"))
		return
	}

	token := sessionToken(c)
	draft, err := bc.Drafts.GetDraft(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, session.ErrDraftNotFound) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.ErrorLogger.Printf("Failed to load booking draft: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("failed to load draft"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking draft", draft)
}

// CreateBooking -> customer mengirim reservasi final
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bookingID, err := bc.Service.CreateBooking(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Draft sesi ini sudah terpakai
	if bc.Drafts != nil {
		token := c.GetHeader("X-Session-Token")
		if token == "" {
			token, _ = c.Cookie("session_token")
		}
		if token != "" {
			_ = bc.Drafts.DeleteDraft(c.Request.Context(), token)
		}
	}

	var booking models.Booking
	if err := bc.DB.Preload("Items").Preload("Table").First(&booking, bookingID).Error; err == nil {
		events.BroadcastBookingCreate(booking)
	}

	utils.RespondJSON(c, http.StatusCreated, "Booking created", gin.H{
		"booking_id": bookingID,
	})
}

// GetAllBookings -> list booking untuk back-office
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	query := bc.DB.Preload("Items").Preload("Table")
	if date := c.Query("date"); date != "" {
		query = query.Where("booking_date = ?", date)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("booking_date asc, time_slot asc").Find(&bookings).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of bookings", bookings)
}

// GetBookingByID -> detail satu booking
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var booking models.Booking
	if err := bc.DB.Preload("Items").Preload("Items.Menu").Preload("Table").
		First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// UpdateBooking -> staff mengubah booking. Status boleh di-set langsung
// (tidak ada tabel transisi untuk booking), kecuali Cancelled yang
// diperlakukan sebagai reject; pindah meja/tanggal/slot dicek ulang
// kapasitas dan ketersediaannya dengan mengabaikan booking ini sendiri.
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	bookingID := c.Param("booking_id")

	var booking models.Booking
	if err := bc.DB.First(&booking, bookingID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CustomerName *string `json:"customer_name"`
		Phone        *string `json:"phone"`
		BookingDate  *string `json:"booking_date"`
		TimeSlot     *string `json:"time_slot"`
		PartySize    *int    `json:"party_size"`
		Note         *string `json:"note"`
		Status       *string `json:"status"`
		TableID      *uint   `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Membatalkan lewat PATCH berperilaku sama dengan reject: record
	// dihapus dan slot langsung bebas. Booking Cancelled tidak pernah
	// disimpan, sehingga index unik slot tidak menyimpan tombstone.
	if req.Status != nil && *req.Status == models.BookingStatusCancelled {
		if err := bc.Service.RejectBooking(booking.ID, "cancelled by staff"); err != nil {
			respondServiceError(c, err)
			return
		}
		events.BroadcastBookingReject(booking.ID)
		utils.RespondJSON(c, http.StatusOK, "Booking cancelled", gin.H{
			"booking_id": booking.ID,
		})
		return
	}

	if req.CustomerName != nil {
		booking.CustomerName = *req.CustomerName
	}
	if req.Phone != nil {
		booking.Phone = *req.Phone
	}
	if req.BookingDate != nil {
		booking.BookingDate = *req.BookingDate
	}
	if req.TimeSlot != nil {
		booking.TimeSlot = *req.TimeSlot
	}
	if req.PartySize != nil {
		booking.PartySize = *req.PartySize
	}
	if req.Note != nil {
		booking.Note = *req.Note
	}
	if req.Status != nil {
		booking.Status = *req.Status
	}
	if req.TableID != nil {
		booking.TableID = *req.TableID
	}

	// Pindah meja atau ubah jumlah tamu wajib lolos cek kapasitas lagi,
	// sama seperti saat booking dibuat
	if req.PartySize != nil || req.TableID != nil {
		var table models.Table
		if err := bc.DB.First(&table, booking.TableID).Error; err != nil {
			respondServiceError(c, &services.NotFoundError{Entity: "table", ID: booking.TableID})
			return
		}
		if booking.PartySize > table.Capacity {
			respondServiceError(c, &services.CapacityExceededError{
				TableID:   table.ID,
				Capacity:  table.Capacity,
				PartySize: booking.PartySize,
			})
			return
		}
	}

	if req.BookingDate != nil || req.TimeSlot != nil || req.TableID != nil {
		available, err := bc.Service.IsTableAvailable(booking.TableID, booking.BookingDate, booking.TimeSlot, &booking.ID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if !available {
			respondServiceError(c, &services.SlotConflictError{
				TableID:  booking.TableID,
				Date:     booking.BookingDate,
				TimeSlot: booking.TimeSlot,
			})
			return
		}
	}

	if err := bc.DB.Save(&booking).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Booking %d updated", booking.ID)
	utils.RespondJSON(c, http.StatusOK, "Booking updated", booking)
}

// PromoteBooking -> staff mengkonfirmasi booking menjadi order live
func (bc *BookingController) PromoteBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("booking_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking id"))
		return
	}

	orderID, err := bc.Service.PromoteBookingToOrder(uint(bookingID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastBookingPromote(uint(bookingID), orderID)

	utils.RespondJSON(c, http.StatusOK, "Booking promoted to order", gin.H{
		"order_id": orderID,
	})
}

// RejectBooking -> staff menolak booking; record dihapus
func (bc *BookingController) RejectBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("booking_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid booking id"))
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req) // reason opsional

	if err := bc.Service.RejectBooking(uint(bookingID), req.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastBookingReject(uint(bookingID))

	utils.RespondJSON(c, http.StatusOK, "Booking rejected", gin.H{
		"booking_id": bookingID,
	})
}
