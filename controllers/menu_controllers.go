package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/services"
	"github.com/rakapane/dineflow/utils"
)

type MenuController struct {
	DB    *gorm.DB
	Cache *services.MenuCache
}

func NewMenuController(db *gorm.DB, cache *services.MenuCache) *MenuController {
	return &MenuController{DB: db, Cache: cache}
}

// GetAllMenuItems serves the public menu, read-through via the cache.
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	if items, ok := mc.Cache.Get(c.Request.Context()); ok {
		utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Order("category, name").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Set(c.Request.Context(), items)
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem adds a dish (admin only).
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Name     string   `json:"name" binding:"required"`
		Category string   `json:"category" binding:"required"`
		Price    *float64 `json:"price" binding:"required,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
	}
	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem modifies name/category/price of an existing dish.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var req struct {
		Name     *string  `json:"name"`
		Category *string  `json:"category"`
		Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Price != nil {
		item.Price = *req.Price
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem removes a dish; subsequent GET /menu no longer lists it.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Invalidate(c.Request.Context())
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}
