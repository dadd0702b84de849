package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/utils"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// SubmitFeedback records a rating and comment, optionally tied to a
// reservation.
func (fc *FeedbackController) SubmitFeedback(c *gin.Context) {
	var req struct {
		Rating        int    `json:"rating" binding:"required,min=1,max=5"`
		Comment       string `json:"comment" binding:"required,min=10,max=1000"`
		ReservationID *uint  `json:"reservation_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.ReservationID != nil {
		var reservation models.Reservation
		if err := fc.DB.First(&reservation, *req.ReservationID).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
			return
		}
	}

	feedback := models.Feedback{
		UserID:        c.GetUint("user_id"),
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Feedback submitted successfully", feedback)
}

// GetUserFeedback lists the caller's feedback, newest first.
func (fc *FeedbackController) GetUserFeedback(c *gin.Context) {
	var feedback []models.Feedback
	if err := fc.DB.Where("user_id = ?", c.GetUint("user_id")).
		Order("created_at DESC").Find(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of feedback", feedback)
}

func (fc *FeedbackController) GetFeedbackByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid feedback id"))
		return
	}

	var feedback models.Feedback
	if err := fc.DB.First(&feedback, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("feedback not found"))
		return
	}

	if c.GetString("role") != models.RoleAdmin && feedback.UserID != c.GetUint("user_id") {
		utils.RespondError(c, http.StatusForbidden, errors.New("unauthorized access"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Feedback details", feedback)
}

// GetAllFeedback lists every feedback entry (admin), optional rating filter.
func (fc *FeedbackController) GetAllFeedback(c *gin.Context) {
	query := fc.DB.Model(&models.Feedback{})
	if rating := c.Query("rating"); rating != "" {
		query = query.Where("rating = ?", rating)
	}

	var feedback []models.Feedback
	if err := query.Order("created_at DESC").Find(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All feedback", feedback)
}

// RespondToFeedback attaches an admin response to an entry.
func (fc *FeedbackController) RespondToFeedback(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid feedback id"))
		return
	}

	var req struct {
		Response string `json:"response" binding:"required,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var feedback models.Feedback
	if err := fc.DB.First(&feedback, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("feedback not found"))
		return
	}

	feedback.AdminResponse = &req.Response
	if err := fc.DB.Save(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Response recorded", feedback)
}

// DeleteFeedback removes an entry permanently (admin).
func (fc *FeedbackController) DeleteFeedback(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid feedback id"))
		return
	}

	var feedback models.Feedback
	if err := fc.DB.First(&feedback, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("feedback not found"))
		return
	}

	if err := fc.DB.Delete(&feedback).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Feedback deleted successfully", nil)
}
