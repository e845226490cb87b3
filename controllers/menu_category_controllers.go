package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davinpratama/resto-ops/models"
	"github.com/davinpratama/resto-ops/utils"
)

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// CreateCategory -> menambahkan kategori menu
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{Name: req.Name}
	if err := cc.DB.Create(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// GetAllCategories -> seluruh kategori
func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Find(&categories).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// UpdateCategory -> ganti nama kategori
func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	catID := c.Param("cat_id")

	var category models.MenuCategory
	if err := cc.DB.First(&category, catID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category.Name = req.Name
	if err := cc.DB.Save(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory -> hapus kategori (menu di dalamnya harus dipindah dulu)
func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	catID := c.Param("cat_id")

	var category models.MenuCategory
	if err := cc.DB.First(&category, catID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{
		"id": category.ID,
	})
}
