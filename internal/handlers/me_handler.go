package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe returns the signed-in user and, when registered, their company.
func (h *MeHandler) GetMe(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		writeLookupError(c, err, "user_not_found")
		return
	}

	resp := gin.H{"user": user, "company": nil}

	if user.CompanyID != 0 {
		var company models.Company
		if err := db.First(&company, user.CompanyID).Error; err != nil {
			writeLookupError(c, err, "company_not_found")
			return
		}
		resp["company"] = company
	}

	c.JSON(http.StatusOK, resp)
}
