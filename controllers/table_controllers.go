package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/events"
	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/services"
	"github.com/davinpratama/resto-ops/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Floor       string `json:"floor" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required,gt=0"`
		Description string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsKnownFloor(req.Floor) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown floor: %s", req.Floor))
		return
	}

	table := models.Table{
		Name:        req.Name,
		Floor:       req.Floor,
		Capacity:    req.Capacity,
		Active:      true,
		Description: req.Description,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("New table created: %s (%s, capacity=%d)", table.Name, table.Floor, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja
func (tc *TableController) GetAllTables(c *gin.Context) {
	query := tc.DB.Session(&gorm.Session{})
	if floor := c.Query("floor"); floor != "" {
		query = query.Where("floor = ?", floor)
	}

	var tables []models.Table
	if err := query.Find(&tables).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> edit meja oleh admin
func (tc *TableController) UpdateTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Floor       *string `json:"floor"`
		Capacity    *int    `json:"capacity"`
		Active      *bool   `json:"active"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Floor != nil && !models.IsKnownFloor(*req.Floor) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown floor: %s", *req.Floor))
		return
	}

	if req.Name != nil {
		table.Name = *req.Name
	}
	if req.Floor != nil {
		table.Floor = *req.Floor
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Active != nil {
		table.Active = *req.Active
	}
	if req.Description != nil {
		table.Description = *req.Description
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	events.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeleteTable -> menghapus meja. Ditolak selama masih dirujuk oleh
// booking atau order.
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var bookingCount, orderCount int64
	tc.DB.Model(&models.Booking{}).Where("table_id = ?", table.ID).Count(&bookingCount)
	tc.DB.Model(&models.Order{}).Where("table_id = ?", table.ID).Count(&orderCount)

	if bookingCount > 0 || orderCount > 0 {
		respondServiceError(c, &services.PreconditionError{
			Message: fmt.Sprintf("table %d is still referenced by %d bookings and %d orders",
				table.ID, bookingCount, orderCount),
		})
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": table.ID,
	})
}
