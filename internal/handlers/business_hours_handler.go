package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	companydomain "github.com/BruksfildServices01/booking-api/internal/domain/company"
	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/models"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
)

type BusinessHoursHandler struct {
	db    *gorm.DB
	audit ucBooking.Auditor
}

func NewBusinessHoursHandler(db *gorm.DB, audit ucBooking.Auditor) *BusinessHoursHandler {
	return &BusinessHoursHandler{db: db, audit: audit}
}

func (h *BusinessHoursHandler) Get(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var hours []models.BusinessHours
	if err := h.db.WithContext(c.Request.Context()).
		Where("company_id = ?", companyID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, companydomain.FromModels(hours))
}

// Update replaces the whole week. Days left out of the body become closed.
func (h *BusinessHoursHandler) Update(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var week companydomain.Week
	if err := c.ShouldBindJSON(&week); err != nil {
		writeBindError(c, err)
		return
	}

	rows, err := week.ToModels(companyID)
	if err != nil {
		writeError(c, err)
		return
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("company_id = ?", companyID).Delete(&models.BusinessHours{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, companyID, "business_hours_updated", "company", companyID, nil)

	c.JSON(http.StatusOK, companydomain.FromModels(rows))
}

// Slots lists the 48 half-hour marks the editor offers for open and close times.
func (h *BusinessHoursHandler) Slots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"slots": slot.DaySlots()})
}
