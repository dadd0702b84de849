package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/utils"
)

type OrderController struct {
	DB      *gorm.DB
	TaxRate float64
}

func NewOrderController(db *gorm.DB, taxRate float64) *OrderController {
	return &OrderController{DB: db, TaxRate: taxRate}
}

// CreateOrder builds an order from menu references. Every amount is
// recomputed here from the authoritative menu price; client-submitted
// totals are never trusted.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		MenuItemID          uint   `json:"menu_item_id" binding:"required"`
		Quantity            int    `json:"quantity" binding:"required,min=1"`
		SpecialInstructions string `json:"special_instructions" binding:"omitempty,max=300"`
	}
	var req struct {
		TableNumber     int       `json:"table_number" binding:"required,min=1,max=20"`
		Items           []itemReq `json:"items" binding:"required,min=1,dive"`
		Discount        float64   `json:"discount" binding:"omitempty,gte=0"`
		PaymentMethod   string    `json:"payment_method" binding:"omitempty,oneof=cash card qris"`
		SpecialRequests string    `json:"special_requests" binding:"omitempty,max=500"`
		ReservationID   *uint     `json:"reservation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cash"
	}

	if req.ReservationID != nil {
		var reservation models.Reservation
		if err := oc.DB.First(&reservation, *req.ReservationID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
			return
		}
	}

	var subtotal float64
	orderItems := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		var menuItem models.MenuItem
		if err := oc.DB.First(&menuItem, item.MenuItemID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound,
				fmt.Errorf("menu item %d not found", item.MenuItemID))
			return
		}

		subtotal += menuItem.Price * float64(item.Quantity)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:          menuItem.ID,
			ItemName:            menuItem.Name,
			Quantity:            item.Quantity,
			Price:               menuItem.Price,
			SpecialInstructions: item.SpecialInstructions,
		})
	}

	tax, total := models.CalculateTotals(subtotal, oc.TaxRate, req.Discount)

	order := models.Order{
		UserID:          c.GetUint("user_id"),
		ReservationID:   req.ReservationID,
		OrderNumber:     models.GenerateOrderNumber(),
		TableNumber:     req.TableNumber,
		Items:           orderItems,
		Subtotal:        subtotal,
		Tax:             tax,
		Discount:        req.Discount,
		Total:           total,
		Status:          models.OrderPending,
		PaymentStatus:   models.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
		SpecialRequests: req.SpecialRequests,
	}

	// Order row and items commit together. A rare order-number collision
	// trips the unique constraint and fails the whole create.
	if err := oc.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created: table %d, total %.2f",
		order.OrderNumber, order.TableNumber, order.Total)

	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// GetUserOrders lists the caller's orders, newest first.
func (oc *OrderController) GetUserOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Where("user_id = ?", c.GetUint("user_id"))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) loadOwned(c *gin.Context) (*models.Order, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return nil, false
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return nil, false
	}

	if c.GetString("role") != models.RoleAdmin && order.UserID != c.GetUint("user_id") {
		utils.RespondError(c, http.StatusForbidden, errors.New("unauthorized access"))
		return nil, false
	}

	return &order, true
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, ok := oc.loadOwned(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order details", order)
}

// GetAllOrders lists every order (admin) with optional filters.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items").Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("payment_status"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}
	if tableNumber := c.Query("table_number"); tableNumber != "" {
		query = query.Where("table_number = ?", tableNumber)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All orders", orders)
}

// GetTableOrders returns the active orders for one table, oldest first.
func (oc *OrderController) GetTableOrders(c *gin.Context) {
	tableNumber, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table number"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Where("table_number = ? AND status IN ?", tableNumber, models.ActiveOrderStatuses()).
		Order("created_at ASC").Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table orders", gin.H{
		"table_number": tableNumber,
		"orders":       orders,
	})
}

// UpdateOrderStatus forces any status in the valid set (admin path).
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order status: %s", req.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("Order status updated to %s", req.Status), order)
}

// UpdatePaymentStatus updates the payment track independently of the
// order status track.
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
		PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=cash card qris"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidPaymentStatus(req.PaymentStatus) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid payment status: %s", req.PaymentStatus))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	order.PaymentStatus = req.PaymentStatus
	if req.PaymentMethod != "" {
		order.PaymentMethod = req.PaymentMethod
	}
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Payment status updated", order)
}

// CancelOrder flips an order to cancelled. Blocked once the kitchen has
// started (preparing/ready) or if the order is already cancelled.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	order, ok := oc.loadOwned(c)
	if !ok {
		return
	}

	if !order.CanCancel() {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("cannot cancel order with status: %s", order.Status))
		return
	}

	order.Status = models.OrderCancelled
	if err := oc.DB.Save(order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled successfully", order)
}
