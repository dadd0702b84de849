package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/services"
	"github.com/rakapane/dineflow/utils"
)

type ReservationController struct {
	DB *gorm.DB
	QR services.QRGenerator
}

func NewReservationController(db *gorm.DB, qr services.QRGenerator) *ReservationController {
	return &ReservationController{DB: db, QR: qr}
}

var errSlotTaken = errors.New("this table is already reserved for this time slot")

// slotQuery scopes tx to the active reservations holding one
// (table, date, time) slot. On MySQL the read locks the idx_slot range
// so a concurrent booking of the same slot blocks until commit; sqlite
// has a single writer and rejects FOR UPDATE.
func slotQuery(tx *gorm.DB, tableNumber int, date, timeOfDay string) *gorm.DB {
	q := tx.Model(&models.Reservation{}).
		Where("table_number = ? AND reservation_date = ? AND reservation_time = ? AND status IN ?",
			tableNumber, date, timeOfDay, models.ActiveStatuses())
	if tx.Dialector.Name() == "mysql" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

func parseSlot(date, timeOfDay string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return errors.New("reservation_date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", timeOfDay); err != nil {
		return errors.New("reservation_time must be HH:MM")
	}
	return nil
}

// CreateReservation books a slot. The availability check is a locking
// read inside the insert transaction so concurrent requests for the
// same slot serialize instead of both committing.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		CustomerName    string `json:"customer_name" binding:"required"`
		CustomerEmail   string `json:"customer_email" binding:"required,email"`
		CustomerPhone   string `json:"customer_phone" binding:"required"`
		TableNumber     int    `json:"table_number" binding:"required,min=1,max=20"`
		GuestCount      int    `json:"guest_count" binding:"required,min=1,max=12"`
		ReservationDate string `json:"reservation_date" binding:"required"`
		ReservationTime string `json:"reservation_time" binding:"required"`
		SpecialRequests string `json:"special_requests" binding:"omitempty,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := parseSlot(req.ReservationDate, req.ReservationTime); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation := models.Reservation{
		UserID:          c.GetUint("user_id"),
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		TableNumber:     req.TableNumber,
		GuestCount:      req.GuestCount,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		Status:          models.ReservationPending,
		SpecialRequests: req.SpecialRequests,
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := slotQuery(tx, req.TableNumber, req.ReservationDate, req.ReservationTime).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errSlotTaken
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			utils.RespondError(c, http.StatusConflict, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation %d created: table %d at %s %s",
		reservation.ID, reservation.TableNumber, reservation.ReservationDate, reservation.ReservationTime)

	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", reservation)
}

// GetUserReservations lists the caller's reservations, newest date first.
func (rc *ReservationController) GetUserReservations(c *gin.Context) {
	query := rc.DB.Where("user_id = ?", c.GetUint("user_id"))
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Order("reservation_date DESC, reservation_time DESC").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// loadOwned fetches a reservation and enforces the owner-or-admin rule.
func (rc *ReservationController) loadOwned(c *gin.Context) (*models.Reservation, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return nil, false
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return nil, false
	}

	if c.GetString("role") != models.RoleAdmin && reservation.UserID != c.GetUint("user_id") {
		utils.RespondError(c, http.StatusForbidden, errors.New("unauthorized access"))
		return nil, false
	}

	return &reservation, true
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	reservation, ok := rc.loadOwned(c)
	if !ok {
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation details", reservation)
}

// UpdateReservation applies a whitelisted set of field updates.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	reservation, ok := rc.loadOwned(c)
	if !ok {
		return
	}

	var req struct {
		CustomerName    *string `json:"customer_name"`
		CustomerEmail   *string `json:"customer_email" binding:"omitempty,email"`
		CustomerPhone   *string `json:"customer_phone"`
		TableNumber     *int    `json:"table_number" binding:"omitempty,min=1,max=20"`
		GuestCount      *int    `json:"guest_count" binding:"omitempty,min=1,max=12"`
		ReservationDate *string `json:"reservation_date"`
		ReservationTime *string `json:"reservation_time"`
		SpecialRequests *string `json:"special_requests" binding:"omitempty,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.CustomerName != nil {
		reservation.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		reservation.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerPhone != nil {
		reservation.CustomerPhone = *req.CustomerPhone
	}
	if req.TableNumber != nil {
		reservation.TableNumber = *req.TableNumber
	}
	if req.GuestCount != nil {
		reservation.GuestCount = *req.GuestCount
	}
	if req.ReservationDate != nil {
		reservation.ReservationDate = *req.ReservationDate
	}
	if req.ReservationTime != nil {
		reservation.ReservationTime = *req.ReservationTime
	}
	if req.SpecialRequests != nil {
		reservation.SpecialRequests = *req.SpecialRequests
	}
	if err := parseSlot(reservation.ReservationDate, reservation.ReservationTime); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := rc.DB.Save(reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully", reservation)
}

// CancelReservation is a soft cancel: the row stays, status flips.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	reservation, ok := rc.loadOwned(c)
	if !ok {
		return
	}

	if reservation.Status == models.ReservationCancelled {
		utils.RespondError(c, http.StatusBadRequest, errors.New("reservation is already cancelled"))
		return
	}

	reservation.Status = models.ReservationCancelled
	if err := rc.DB.Save(reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled successfully", reservation)
}

// GetAvailableTables returns the 1..20 universe minus tables with an
// active reservation at the exact (date, time) slot. Public endpoint.
func (rc *ReservationController) GetAvailableTables(c *gin.Context) {
	date := c.Query("date")
	timeOfDay := c.Query("time")
	if date == "" || timeOfDay == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date and time are required"))
		return
	}
	if err := parseSlot(date, timeOfDay); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var booked []int
	if err := rc.DB.Model(&models.Reservation{}).
		Distinct("table_number").
		Where("reservation_date = ? AND reservation_time = ? AND status IN ?",
			date, timeOfDay, models.ActiveStatuses()).
		Pluck("table_number", &booked).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	bookedSet := make(map[int]bool, len(booked))
	for _, n := range booked {
		bookedSet[n] = true
	}

	available := make([]int, 0, models.TotalTables)
	for i := 1; i <= models.TotalTables; i++ {
		if !bookedSet[i] {
			available = append(available, i)
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Available tables", gin.H{
		"date":             date,
		"time":             timeOfDay,
		"available_tables": available,
	})
}

// GetReservationQR streams a PNG QR code linking to the reservation.
func (rc *ReservationController) GetReservationQR(c *gin.Context) {
	reservation, ok := rc.loadOwned(c)
	if !ok {
		return
	}

	png, err := rc.QR.Generate(reservation.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// GetAllReservations lists every reservation (admin), with optional
// status and date filters.
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	query := rc.DB.Model(&models.Reservation{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("reservation_date = ?", date)
	}

	var reservations []models.Reservation
	if err := query.Order("reservation_date DESC, reservation_time DESC").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All reservations", reservations)
}

// UpdateReservationStatus lets an admin force any status in the valid
// set. No transition check on this path.
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidReservationStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid status: %s", req.Status))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}

	reservation.Status = req.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", reservation)
}
