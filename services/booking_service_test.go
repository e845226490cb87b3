package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// setupServiceTestDB membuat SQLite in-memory terpisah per test.
// TranslateError aktif supaya pelanggaran index unik slot terdeteksi
// sebagai gorm.ErrDuplicatedKey, sama seperti di MySQL.
func setupServiceTestDB(t *testing.T) *gorm.DB {
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Table{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Booking{},
		&models.Order{},
		&models.LineItem{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedTable(t *testing.T, db *gorm.DB, name, floor string, capacity int) models.Table {
	table := models.Table{Name: name, Floor: floor, Capacity: capacity, Active: true}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func seedMenu(t *testing.T, db *gorm.DB, name string, price float64) models.Menu {
	category := models.MenuCategory{Name: "Main - " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	menu := models.Menu{CategoryID: category.ID, Name: name, Price: price, Available: true}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("failed to seed menu: %v", err)
	}
	return menu
}

func TestListAvailableTables(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "A1", models.FloorOne, 4)
	t2 := seedTable(t, db, "A2", models.FloorOne, 2)
	seedTable(t, db, "R1", models.FloorRooftop, 6)

	// Meja nonaktif tidak boleh muncul
	inactive := models.Table{Name: "A3", Floor: models.FloorOne, Capacity: 8, Active: false}
	db.Create(&inactive)
	db.Model(&inactive).Update("active", false)

	tables, err := svc.ListAvailableTables(models.FloorOne, 2, "2025-06-01", "18:00")
	assert.NoError(t, err)
	assert.Len(t, tables, 2)

	// Booking di t1 menghilangkan t1 dari daftar
	_, err = svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Budi",
		Phone:        "0812",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
	})
	assert.NoError(t, err)

	tables, err = svc.ListAvailableTables(models.FloorOne, 2, "2025-06-01", "18:00")
	assert.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Equal(t, t2.ID, tables[0].ID)

	// Slot lain tetap bebas (exact-match, bukan interval)
	tables, err = svc.ListAvailableTables(models.FloorOne, 2, "2025-06-01", "18:01")
	assert.NoError(t, err)
	assert.Len(t, tables, 2)

	// Kapasitas kurang -> tersaring
	tables, err = svc.ListAvailableTables(models.FloorOne, 3, "2025-06-02", "18:00")
	assert.NoError(t, err)
	assert.Len(t, tables, 1)
	assert.Equal(t, t1.ID, tables[0].ID)

	// Tidak ada yang cocok -> list kosong, bukan error
	tables, err = svc.ListAvailableTables(models.FloorTwo, 2, "2025-06-01", "18:00")
	assert.NoError(t, err)
	assert.Empty(t, tables)
}

func TestListAvailableTablesInputValidation(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	var precondition *PreconditionError

	_, err := svc.ListAvailableTables(models.FloorOne, 0, "2025-06-01", "18:00")
	assert.ErrorAs(t, err, &precondition)

	_, err = svc.ListAvailableTables("Basement", 2, "2025-06-01", "18:00")
	assert.ErrorAs(t, err, &precondition)
}

// Scenario A + B: sukses booking lalu konflik slot yang sama
func TestCreateBookingAndSlotConflict(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)

	bookingID, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Sari",
		Phone:        "0813",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    4,
	})
	assert.NoError(t, err)
	assert.NotZero(t, bookingID)

	available, err := svc.IsTableAvailable(t1.ID, "2025-06-01", "18:00", nil)
	assert.NoError(t, err)
	assert.False(t, available)

	// Booking kedua di slot yang sama harus konflik
	_, err = svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Andi",
		Phone:        "0814",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
	})
	var conflict *SlotConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, t1.ID, conflict.TableID)
}

// Scenario C: kapasitas terlampaui, tidak ada row yang tertulis
func TestCreateBookingCapacityExceeded(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t2 := seedTable(t, db, "T2", models.FloorOne, 2)

	_, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t2.ID,
		CustomerName: "Rina",
		Phone:        "0815",
		BookingDate:  "2025-06-01",
		TimeSlot:     "19:00",
		PartySize:    5,
	})

	var capacity *CapacityExceededError
	assert.ErrorAs(t, err, &capacity)
	assert.Equal(t, 2, capacity.Capacity)
	assert.Equal(t, 5, capacity.PartySize)
	assert.Contains(t, err.Error(), "capacity of 2")

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateBookingTableNotFound(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	var notFound *NotFoundError
	_, err := svc.CreateBooking(CreateBookingInput{
		TableID:      999,
		CustomerName: "Dewi",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
	})
	assert.ErrorAs(t, err, &notFound)

	// Meja nonaktif diperlakukan sama dengan tidak ada
	inactive := models.Table{Name: "X", Floor: models.FloorOne, Capacity: 4, Active: false}
	db.Create(&inactive)
	db.Model(&inactive).Update("active", false)

	_, err = svc.CreateBooking(CreateBookingInput{
		TableID:      inactive.ID,
		CustomerName: "Dewi",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
	})
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateBookingUnknownMenuRollsBack(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)

	var notFound *NotFoundError
	_, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Tono",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
		Items: []BookingItemInput{
			{MenuID: 12345, Quantity: 1},
		},
	})
	assert.ErrorAs(t, err, &notFound)

	// Transaksi harus rollback total
	var bookings, items int64
	db.Model(&models.Booking{}).Count(&bookings)
	db.Model(&models.LineItem{}).Count(&items)
	assert.Zero(t, bookings)
	assert.Zero(t, items)
}

func TestIsTableAvailableExcludesOwnBooking(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)

	bookingID, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Sari",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
	})
	assert.NoError(t, err)

	available, err := svc.IsTableAvailable(t1.ID, "2025-06-01", "18:00", nil)
	assert.NoError(t, err)
	assert.False(t, available)

	// Alur edit: booking tidak bentrok dengan dirinya sendiri
	available, err = svc.IsTableAvailable(t1.ID, "2025-06-01", "18:00", &bookingID)
	assert.NoError(t, err)
	assert.True(t, available)
}

// Scenario D: promosi membawa item dan total, booking lenyap
func TestPromoteBookingToOrder(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)
	menuX := seedMenu(t, db, "Nasi Goreng", 50000)
	menuY := seedMenu(t, db, "Es Teh", 30000)

	bookingID, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Sari",
		Phone:        "0813",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    4,
		Items: []BookingItemInput{
			{MenuID: menuX.ID, Quantity: 2},
			{MenuID: menuY.ID, Quantity: 1},
		},
	})
	assert.NoError(t, err)

	// Harga menu berubah SETELAH booking; total harus pakai snapshot
	db.Model(&models.Menu{}).Where("id = ?", menuX.ID).Update("price", 90000)

	orderID, err := svc.PromoteBookingToOrder(bookingID)
	assert.NoError(t, err)
	assert.NotZero(t, orderID)

	var order models.Order
	assert.NoError(t, db.Preload("Items").First(&order, orderID).Error)
	assert.Equal(t, float64(130000), order.TotalPrice)
	assert.Equal(t, models.OrderStatusInService, order.Status)
	assert.NotNil(t, order.ServiceStartTime)
	assert.Equal(t, "Sari", order.CustomerName)
	assert.NotNil(t, order.TableID)
	assert.Equal(t, t1.ID, *order.TableID)

	assert.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Nil(t, item.BookingID)
	}

	// Booking sudah tidak bisa diambil lagi
	var booking models.Booking
	err = db.First(&booking, bookingID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Tidak ada line item yatim sisi booking
	var orphaned int64
	db.Model(&models.LineItem{}).Where("booking_id IS NOT NULL").Count(&orphaned)
	assert.Zero(t, orphaned)

	// Meja kembali tersedia untuk slot itu
	available, err := svc.IsTableAvailable(t1.ID, "2025-06-01", "18:00", nil)
	assert.NoError(t, err)
	assert.True(t, available)
}

// Idempotensi: promosi kedua pada id yang sama gagal NotFound,
// tidak pernah membuat order kedua
func TestPromoteBookingTwice(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)

	bookingID, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Sari",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
	})
	assert.NoError(t, err)

	_, err = svc.PromoteBookingToOrder(bookingID)
	assert.NoError(t, err)

	var notFound *NotFoundError
	_, err = svc.PromoteBookingToOrder(bookingID)
	assert.ErrorAs(t, err, &notFound)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRejectBooking(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)
	menu := seedMenu(t, db, "Sate Ayam", 40000)

	bookingID, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Sari",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
		Items: []BookingItemInput{
			{MenuID: menu.ID, Quantity: 2},
		},
	})
	assert.NoError(t, err)

	assert.NoError(t, svc.RejectBooking(bookingID, "customer called to cancel"))

	// Booking dan item-nya terhapus
	var bookings, items int64
	db.Model(&models.Booking{}).Count(&bookings)
	db.Model(&models.LineItem{}).Count(&items)
	assert.Zero(t, bookings)
	assert.Zero(t, items)

	// Slot bebas kembali
	available, err := svc.IsTableAvailable(t1.ID, "2025-06-01", "18:00", nil)
	assert.NoError(t, err)
	assert.True(t, available)

	// Reject kedua -> NotFound
	var notFound *NotFoundError
	err = svc.RejectBooking(bookingID, "")
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateBookingPriceSnapshot(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewBookingService(db)

	t1 := seedTable(t, db, "T1", models.FloorOne, 4)
	menu := seedMenu(t, db, "Gado Gado", 25000)

	bookingID, err := svc.CreateBooking(CreateBookingInput{
		TableID:      t1.ID,
		CustomerName: "Sari",
		BookingDate:  "2025-06-01",
		TimeSlot:     "18:00",
		PartySize:    2,
		Items: []BookingItemInput{
			{MenuID: menu.ID, Quantity: 3},
		},
	})
	assert.NoError(t, err)

	// Harga menu naik setelah booking
	db.Model(&models.Menu{}).Where("id = ?", menu.ID).Update("price", 35000)

	var items []models.LineItem
	assert.NoError(t, db.Where("booking_id = ?", bookingID).Find(&items).Error)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(25000), items[0].Price)
}
