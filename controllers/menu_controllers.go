package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// CreateMenu -> menambahkan menu baru
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required,gt=0"`
		Stock       int     `json:"stock"`
		Description string  `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	menu := models.Menu{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
		Available:   true,
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New menu created: %s (%s)", menu.Name, utils.FormatCurrencyIDR(menu.Price))
	utils.RespondJSON(c, http.StatusCreated, "Menu created successfully", menu)
}

// GetAllMenus -> seluruh menu beserta kategorinya
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Preload("Category").Find(&menus).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByCategory -> menu dalam satu kategori
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	categoryID := c.Query("category_id")

	var menus []models.Menu
	if err := mc.DB.Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&menus).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus by category", menus)
}

// GetMenuByID -> detail 1 menu
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	menuID := c.Param("menu_id")

	var menu models.Menu
	if err := mc.DB.Preload("Category").First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

// UpdateMenu -> edit menu. Mengubah harga TIDAK menyentuh line item lama:
// harga di item adalah snapshot saat pemesanan.
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	menuID := c.Param("menu_id")

	var menu models.Menu
	if err := mc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		CategoryID  *uint    `json:"category_id"`
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Description *string  `json:"description"`
		Available   *bool    `json:"available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CategoryID != nil {
		menu.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		menu.Name = *req.Name
	}
	if req.Price != nil {
		menu.Price = *req.Price
	}
	if req.Stock != nil {
		menu.Stock = *req.Stock
	}
	if req.Description != nil {
		menu.Description = *req.Description
	}
	if req.Available != nil {
		menu.Available = *req.Available
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu %d updated", menu.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu -> menghapus menu
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	menuID := c.Param("menu_id")

	var menu models.Menu
	if err := mc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := mc.DB.Delete(&menu).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Menu %d deleted", menu.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{
		"id": menu.ID,
	})
}
