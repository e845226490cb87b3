package database

import (
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// Migrate menjalankan AutoMigrate untuk seluruh model lalu memverifikasi
// index unik slot booking. Index (table_id, booking_date, time_slot)
// membuat insert booking yang kalah balapan gagal di storage layer,
// bukan hanya di pengecekan aplikasi.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Booking{},
		&models.Order{},
		&models.LineItem{},
		&models.Payment{},
	)
	if err != nil {
		return err
	}

	if db.Migrator().HasIndex(&models.Booking{}, "uniq_booking_slot") {
		utils.InfoLogger.Println("Unique booking slot index verified")
	} else {
		utils.ErrorLogger.Println("Unique booking slot index missing after migration")
	}

	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
