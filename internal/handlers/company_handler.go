package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/auth"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	companydomain "github.com/BruksfildServices01/booking-api/internal/domain/company"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/timezone"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

// defaultMinAdvance applies when a company is registered without a notice period.
const defaultMinAdvance = 120

type CompanyHandler struct {
	db     *gorm.DB
	tokens *auth.Tokens
	audit  ucBooking.Auditor
	now    func() time.Time
}

func NewCompanyHandler(db *gorm.DB, tokens *auth.Tokens, audit ucBooking.Auditor) *CompanyHandler {
	return &CompanyHandler{db: db, tokens: tokens, audit: audit, now: time.Now}
}

type AddCompanyRequest struct {
	Name                string             `json:"name" binding:"required"`
	Alias               string             `json:"alias" binding:"required"`
	Phone               string             `json:"phone"`
	Email               string             `json:"email"`
	Address             string             `json:"address"`
	Timezone            string             `json:"timezone"`
	MinAdvanceMinutes   *int               `json:"minAdvanceMinutes"`
	RequireConfirmation bool               `json:"requireConfirmation"`
	BusinessHours       companydomain.Week `json:"businessHours"`
}

type UpdateCompanyRequest struct {
	Name                *string `json:"name"`
	Alias               *string `json:"alias"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email"`
	Address             *string `json:"address"`
	Timezone            *string `json:"timezone"`
	MinAdvanceMinutes   *int    `json:"minAdvanceMinutes"`
	RequireConfirmation *bool   `json:"requireConfirmation"`
}

// companyProfile is the public view: company fields plus the week keyed by day name.
type companyProfile struct {
	models.Company
	BusinessHours companydomain.Week `json:"businessHours"`
}

// applyCompanyFields validates and copies contact settings onto company.
func applyCompanyFields(company *models.Company, alias, phone, email, tz string, minAdvance int) []httperr.FieldError {
	var fields []httperr.FieldError

	normAlias, ok := companydomain.NormalizeAlias(alias)
	if !ok {
		fields = append(fields, httperr.FieldError{Field: "alias", Code: "invalid_alias"})
	}

	normPhone, ok := validators.NormalizePhone(phone)
	if !ok {
		fields = append(fields, httperr.FieldError{Field: "phone", Code: "invalid_phone"})
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !validators.IsEmailSyntaxValid(email) {
		fields = append(fields, httperr.FieldError{Field: "email", Code: "invalid_email"})
	}

	tz = strings.TrimSpace(tz)
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		fields = append(fields, httperr.FieldError{Field: "timezone", Code: "invalid_timezone"})
	}

	if minAdvance < 0 {
		fields = append(fields, httperr.FieldError{Field: "minAdvanceMinutes", Code: "invalid_request"})
	}

	company.Alias = normAlias
	company.Phone = normPhone
	company.Email = email
	company.Timezone = tz
	company.MinAdvanceMinutes = minAdvance

	return fields
}

// Add registers the caller's company and promotes them to owner. The
// response carries a fresh token since the claims change.
func (h *CompanyHandler) Add(c *gin.Context) {
	var req AddCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var user models.User
	if err := db.First(&user, currentUserID(c)).Error; err != nil {
		writeLookupError(c, err, "user_not_found")
		return
	}
	if user.CompanyID != 0 {
		writeError(c, httperr.ErrBusiness("company_already_registered"))
		return
	}

	minAdvance := defaultMinAdvance
	if req.MinAdvanceMinutes != nil {
		minAdvance = *req.MinAdvanceMinutes
	}

	company := models.Company{
		OwnerID:             user.ID,
		Name:                strings.TrimSpace(req.Name),
		Address:             strings.TrimSpace(req.Address),
		RequireConfirmation: req.RequireConfirmation,
	}
	fields := applyCompanyFields(&company, req.Alias, req.Phone, req.Email, req.Timezone, minAdvance)

	hours, err := req.BusinessHours.ToModels(0)
	if be, ok := httperr.AsBusiness(err); ok {
		fields = append(fields, be.Fields...)
	} else if err != nil {
		writeError(c, err)
		return
	}

	if len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Company{}).Where("alias = ?", company.Alias).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return httperr.ErrField("alias", "alias_taken")
		}

		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		for i := range hours {
			hours[i].CompanyID = company.ID
		}
		if err := tx.Create(&hours).Error; err != nil {
			return err
		}

		user.Role = models.RoleOwner
		user.CompanyID = company.ID
		return tx.Model(&user).Updates(map[string]any{
			"role":       user.Role,
			"company_id": user.CompanyID,
		}).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			err = httperr.ErrField("alias", "alias_taken")
		}
		writeError(c, err)
		return
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, company.ID, "company_created", "company", company.ID, gin.H{"alias": company.Alias})

	company.BusinessHours = hours
	c.JSON(http.StatusCreated, gin.H{
		"company": company,
		"token":   token,
	})
}

func (h *CompanyHandler) GetDetails(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var company models.Company
	if err := h.db.WithContext(c.Request.Context()).First(&company, companyID).Error; err != nil {
		writeLookupError(c, err, "company_not_found")
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateDetails(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var company models.Company
	if err := db.First(&company, companyID).Error; err != nil {
		writeLookupError(c, err, "company_not_found")
		return
	}

	prevAlias := company.Alias
	alias := pick(req.Alias, company.Alias)
	phone := pick(req.Phone, company.Phone)
	email := pick(req.Email, company.Email)
	tz := pick(req.Timezone, company.Timezone)

	minAdvance := company.MinAdvanceMinutes
	if req.MinAdvanceMinutes != nil {
		minAdvance = *req.MinAdvanceMinutes
	}

	fields := applyCompanyFields(&company, alias, phone, email, tz, minAdvance)

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			fields = append(fields, httperr.FieldError{Field: "name", Code: "required"})
		}
		company.Name = name
	}
	if req.Address != nil {
		company.Address = strings.TrimSpace(*req.Address)
	}
	if req.RequireConfirmation != nil {
		company.RequireConfirmation = *req.RequireConfirmation
	}

	if len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	if company.Alias != prevAlias {
		var taken int64
		if err := db.Model(&models.Company{}).
			Where("alias = ? AND id <> ?", company.Alias, company.ID).
			Count(&taken).Error; err != nil {
			writeError(c, err)
			return
		}
		if taken > 0 {
			writeError(c, httperr.ErrField("alias", "alias_taken"))
			return
		}
	}

	if err := db.Save(&company).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			writeError(c, httperr.ErrField("alias", "alias_taken"))
			return
		}
		writeError(c, err)
		return
	}

	record(h.audit, c, company.ID, "company_updated", "company", company.ID, req)

	c.JSON(http.StatusOK, company)
}

func pick(v *string, current string) string {
	if v == nil {
		return current
	}
	return *v
}

// ======================================================
// Public profile
// ======================================================

func (h *CompanyHandler) GetByAlias(c *gin.Context) {
	alias := strings.ToLower(strings.TrimSpace(c.Param("alias")))
	h.profile(c, h.db.Where("alias = ?", alias))
}

func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	h.profile(c, h.db.Where("id = ?", id))
}

func (h *CompanyHandler) profile(c *gin.Context, q *gorm.DB) {
	var company models.Company
	if err := q.WithContext(c.Request.Context()).
		Preload("BusinessHours").
		First(&company).Error; err != nil {
		writeLookupError(c, err, "company_not_found")
		return
	}

	week := companydomain.FromModels(company.BusinessHours)
	company.BusinessHours = nil

	c.JSON(http.StatusOK, companyProfile{Company: company, BusinessHours: week})
}

// ======================================================
// Dashboard
// ======================================================

type statusCount struct {
	Status string
	Total  int64
}

// Dashboard summarises today, the upcoming agenda and the current month.
func (h *CompanyHandler) Dashboard(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var company models.Company
	if err := db.First(&company, companyID).Error; err != nil {
		writeLookupError(c, err, "company_not_found")
		return
	}

	loc := timezone.Location(company.Timezone)
	now := h.now().In(loc)
	today := timezone.FormatDate(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	var todays []models.Booking
	if err := db.Preload("Employee").Preload("Work").Preload("Customer").
		Where("company_id = ? AND booking_date = ?", companyID, today).
		Order("start_time ASC").
		Find(&todays).Error; err != nil {
		writeError(c, err)
		return
	}

	var upcoming int64
	if err := db.Model(&models.Booking{}).
		Where("company_id = ? AND status IN ? AND start_time >= ?", companyID, domain.ActiveStatuses, now.UTC()).
		Count(&upcoming).Error; err != nil {
		writeError(c, err)
		return
	}

	var rows []statusCount
	if err := db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS total").
		Where("company_id = ? AND booking_date BETWEEN ? AND ?",
			companyID, timezone.FormatDate(monthStart), timezone.FormatDate(monthEnd)).
		Group("status").
		Scan(&rows).Error; err != nil {
		writeError(c, err)
		return
	}

	month := map[string]int64{
		string(domain.StatusPending):   0,
		string(domain.StatusConfirmed): 0,
		string(domain.StatusCompleted): 0,
		string(domain.StatusCancelled): 0,
	}
	for _, r := range rows {
		month[r.Status] = r.Total
	}

	var employees, works int64
	if err := db.Model(&models.Employee{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Count(&employees).Error; err != nil {
		writeError(c, err)
		return
	}
	if err := db.Model(&models.Work{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Count(&works).Error; err != nil {
		writeError(c, err)
		return
	}

	if todays == nil {
		todays = []models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"date":              today,
		"todayBookings":     todays,
		"upcomingCount":     upcoming,
		"monthStatusCounts": month,
		"activeEmployees":   employees,
		"activeWorks":       works,
	})
}
