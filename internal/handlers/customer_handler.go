package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// List returns the users who booked with the company at least once.
func (h *CustomerHandler) List(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	booked := h.db.Model(&models.Booking{}).
		Select("customer_id").
		Where("company_id = ?", companyID)

	q := h.db.WithContext(c.Request.Context()).
		Where("id IN (?)", booked)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?", like, like, like)
	}

	customers := []models.User{}
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, customers)
}
