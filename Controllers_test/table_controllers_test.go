package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/controllers"
	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

// setupTestDBForTables menggunakan SQLite in-memory khusus untuk TableController
func setupTestDBForTables(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Table{}, &models.Booking{}, &models.Order{})
	if err != nil {
		panic(err)
	}
	return db
}

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	router.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

func TestCreateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)
	router := setupTableRouter(db)

	w := postJSON(router, "POST", "/tables", map[string]interface{}{
		"name":     "A1",
		"floor":    models.FloorRooftop,
		"capacity": 6,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Table created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "A1", data["name"])
	assert.Equal(t, true, data["active"])

	// Lantai asing ditolak
	w = postJSON(router, "POST", "/tables", map[string]interface{}{
		"name":     "B1",
		"floor":    "Basement",
		"capacity": 4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Kapasitas nol ditolak oleh binding
	w = postJSON(router, "POST", "/tables", map[string]interface{}{
		"name":     "B1",
		"floor":    models.FloorOne,
		"capacity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAllTablesFilterByFloor(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	db.Create(&models.Table{Name: "A1", Floor: models.FloorOne, Capacity: 4, Active: true})
	db.Create(&models.Table{Name: "R1", Floor: models.FloorRooftop, Capacity: 6, Active: true})

	router := setupTableRouter(db)

	req, _ := http.NewRequest("GET", "/tables?floor=Rooftop", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}

func TestUpdateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{Name: "A1", Floor: models.FloorOne, Capacity: 4, Active: true}
	db.Create(&table)

	router := setupTableRouter(db)

	url := "/tables/" + strconv.Itoa(int(table.ID))
	w := postJSON(router, "PATCH", url, map[string]interface{}{
		"capacity": 8,
		"active":   false,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Table
	assert.NoError(t, db.First(&updated, table.ID).Error)
	assert.Equal(t, 8, updated.Capacity)
	assert.False(t, updated.Active)
	// Field lain tidak tersentuh
	assert.Equal(t, "A1", updated.Name)
}

func TestDeleteTableBlockedWhileReferenced(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables(t)

	table := models.Table{Name: "A1", Floor: models.FloorOne, Capacity: 4, Active: true}
	db.Create(&table)
	db.Create(&models.Booking{
		CustomerName: "Budi", Phone: "0812",
		BookingDate: "2025-06-01", TimeSlot: "18:00",
		PartySize: 2, Status: models.BookingStatusPending, TableID: table.ID,
	})

	router := setupTableRouter(db)
	url := "/tables/" + strconv.Itoa(int(table.ID))

	req, _ := http.NewRequest("DELETE", url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Setelah booking hilang, hapus boleh
	db.Where("table_id = ?", table.ID).Delete(&models.Booking{})

	req, _ = http.NewRequest("DELETE", url, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Table{}).Count(&count)
	assert.Zero(t, count)
}
