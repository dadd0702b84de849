package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/rakapane/dineflow/controllers"
	"github.com/rakapane/dineflow/models"
	"github.com/rakapane/dineflow/services"
	"github.com/rakapane/dineflow/utils"
)

func setupReservationRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := controllers.NewReservationController(db, services.QRGenerator{BaseURL: "http://localhost:8080"})

	r.GET("/reservations/available-tables", ctrl.GetAvailableTables)

	auth := r.Group("/", asUser(userID, role))
	auth.POST("/reservations", ctrl.CreateReservation)
	auth.GET("/reservations", ctrl.GetUserReservations)
	auth.GET("/reservations/:id", ctrl.GetReservationByID)
	auth.PUT("/reservations/:id", ctrl.UpdateReservation)
	auth.DELETE("/reservations/:id", ctrl.CancelReservation)
	auth.GET("/reservations/:id/qr", ctrl.GetReservationQR)

	admin := r.Group("/admin", asUser(userID, role))
	admin.GET("/reservations", ctrl.GetAllReservations)
	admin.PUT("/reservations/:id/status", ctrl.UpdateReservationStatus)
	return r
}

func reservationPayload(table int) map[string]interface{} {
	return map[string]interface{}{
		"customer_name":    "Jamie Doe",
		"customer_email":   "jamie@example.com",
		"customer_phone":   "+6281234567890",
		"table_number":     table,
		"guest_count":      4,
		"reservation_date": "2026-09-15",
		"reservation_time": "19:00",
		"special_requests": "window seat",
	}
}

func TestCreateReservation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "user")

	w := doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(5))
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(5), data["table_number"])
	assert.NotEmpty(t, data["created_at"])
}

func TestDoubleBookingConflicts(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "user")

	w := doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(5))
	assert.Equal(t, http.StatusCreated, w.Code)

	// Same slot again: conflict, and no second row is created.
	w = doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(5))
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// A cancelled reservation frees the slot.
	db.Model(&models.Reservation{}).Where("table_number = ?", 5).
		Update("status", models.ReservationCancelled)

	w = doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(5))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAvailableTablesExcludesBookedSlot(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "user")

	for _, table := range []int{3, 7} {
		w := doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(table))
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/reservations/available-tables?date=2026-09-15&time=19:00", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w)["data"].(map[string]interface{})
	available := data["available_tables"].([]interface{})
	assert.Len(t, available, models.TotalTables-2)
	for _, raw := range available {
		n := int(raw.(float64))
		assert.NotEqual(t, 3, n)
		assert.NotEqual(t, 7, n)
	}

	// A different time slot sees the full universe.
	w = doJSON(t, r, http.MethodGet, "/reservations/available-tables?date=2026-09-15&time=20:00", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Len(t, data["available_tables"].([]interface{}), models.TotalTables)
}

func TestAvailableTablesRequiresDateAndTime(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "user")

	w := doJSON(t, r, http.MethodGet, "/reservations/available-tables?date=2026-09-15", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelReservation(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "user")

	w := doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(2))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/reservations/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "cancelled", data["status"])

	// Cancelling twice is rejected.
	w = doJSON(t, r, http.MethodDelete, "/reservations/1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationOwnershipEnforced(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)

	owner := setupReservationRouter(db, 1, "user")
	w := doJSON(t, owner, http.MethodPost, "/reservations", reservationPayload(9))
	assert.Equal(t, http.StatusCreated, w.Code)

	stranger := setupReservationRouter(db, 2, "user")
	w = doJSON(t, stranger, http.MethodGet, "/reservations/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := setupReservationRouter(db, 3, "admin")
	w = doJSON(t, admin, http.MethodGet, "/reservations/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminForcesReservationStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "admin")

	w := doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(4))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPut, "/admin/reservations/1/status", map[string]string{
		"status": "completed",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])

	w = doJSON(t, r, http.MethodPut, "/admin/reservations/1/status", map[string]string{
		"status": "no-show",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationQRServesPNG(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	r := setupReservationRouter(db, 1, "user")

	w := doJSON(t, r, http.MethodPost, "/reservations", reservationPayload(6))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/reservations/1/qr", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestReservationListFilters(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	user := setupReservationRouter(db, 1, "user")
	admin := setupReservationRouter(db, 9, "admin")

	w := doJSON(t, user, http.MethodPost, "/reservations", reservationPayload(3))
	assert.Equal(t, http.StatusCreated, w.Code)

	later := reservationPayload(4)
	later["reservation_date"] = "2026-09-16"
	w = doJSON(t, user, http.MethodPost, "/reservations", later)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Cancel the first booking so the status filters have a split.
	w = doJSON(t, user, http.MethodDelete, "/reservations/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, admin, http.MethodGet, "/admin/reservations", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeResponse(t, w)["data"], 2)

	w = doJSON(t, admin, http.MethodGet, "/admin/reservations?status=cancelled", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, float64(3), data[0].(map[string]interface{})["table_number"])

	w = doJSON(t, admin, http.MethodGet, "/admin/reservations?date=2026-09-16", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, "2026-09-16", data[0].(map[string]interface{})["reservation_date"])

	// The user listing honors the same status filter.
	w = doJSON(t, user, http.MethodGet, "/reservations?status=pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].([]interface{})
	assert.Len(t, data, 1)
	assert.Equal(t, float64(4), data[0].(map[string]interface{})["table_number"])
}
