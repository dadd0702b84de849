package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/controllers"
	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/utils"
)

func setupFeedbackRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewFeedbackController(db)

	auth := r.Group("/", asUser(userID, role))
	auth.POST("/feedback", ctrl.SubmitFeedback)
	auth.GET("/feedback/my-feedback", ctrl.GetUserFeedback)
	auth.GET("/feedback/:id", ctrl.GetFeedbackByID)

	admin := r.Group("/admin", asUser(userID, role))
	admin.GET("/feedback", ctrl.GetAllFeedback)
	admin.PUT("/feedback/:id/respond", ctrl.RespondToFeedback)
	admin.DELETE("/feedback/:id", ctrl.DeleteFeedback)
	return r
}

func TestSubmitFeedback(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupFeedbackRouter(db, 1, "user")

	w := doJSON(t, r, http.MethodPost, "/feedback", map[string]interface{}{
		"rating":  5,
		"comment": "Great food and service, will return!",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.NotZero(t, data["id"])
	assert.Equal(t, float64(5), data["rating"])
	assert.Equal(t, "Great food and service, will return!", data["comment"])
	assert.NotEmpty(t, data["created_at"])
}

func TestFeedbackValidationBounds(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupFeedbackRouter(db, 1, "user")

	// rating above range
	w := doJSON(t, r, http.MethodPost, "/feedback", map[string]interface{}{
		"rating":  6,
		"comment": "Great food and service, will return!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// comment too short
	w = doJSON(t, r, http.MethodPost, "/feedback", map[string]interface{}{
		"rating":  4,
		"comment": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown reservation reference
	w = doJSON(t, r, http.MethodPost, "/feedback", map[string]interface{}{
		"rating":         4,
		"comment":        "Lovely evening, very attentive staff.",
		"reservation_id": 9999,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRespondsAndDeletes(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	user := setupFeedbackRouter(db, 1, "user")
	admin := setupFeedbackRouter(db, 2, "admin")

	w := doJSON(t, user, http.MethodPost, "/feedback", map[string]interface{}{
		"rating":  2,
		"comment": "The soup arrived cold, disappointing.",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, admin, http.MethodPut, "/admin/feedback/1/respond", map[string]string{
		"response": "Apologies - please come again on us.",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Apologies - please come again on us.", data["admin_response"])

	w = doJSON(t, admin, http.MethodDelete, "/admin/feedback/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Feedback{}).Count(&count)
	assert.Equal(t, int64(0), count)

	w = doJSON(t, admin, http.MethodDelete, "/admin/feedback/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedbackOwnershipEnforced(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	owner := setupFeedbackRouter(db, 1, "user")
	stranger := setupFeedbackRouter(db, 2, "user")

	w := doJSON(t, owner, http.MethodPost, "/feedback", map[string]interface{}{
		"rating":  4,
		"comment": "Solid menu, generous portions too.",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, stranger, http.MethodGet, "/feedback/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, owner, http.MethodGet, "/feedback/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
