package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/imaging"
	"github.com/BruksfildServices01/booking-api/internal/infra/storage"
	"github.com/BruksfildServices01/booking-api/internal/models"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

type EmployeeHandler struct {
	db       *gorm.DB
	pictures storage.PictureStore
	audit    ucBooking.Auditor
}

// NewEmployeeHandler accepts a nil picture store when uploads are not configured.
func NewEmployeeHandler(db *gorm.DB, pictures storage.PictureStore, audit ucBooking.Auditor) *EmployeeHandler {
	return &EmployeeHandler{db: db, pictures: pictures, audit: audit}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	WorkIDs []uint `json:"workIds"`
}

type UpdateEmployeeRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	WorkIDs []uint  `json:"workIds,omitempty"`
}

type employeeAssignment struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	PictureURL string `json:"pictureUrl"`
	IsActive   bool   `json:"isActive"`
	WorkIDs    []uint `json:"workIds"`
}

func validateEmployee(emp *models.Employee, email, phone string) []httperr.FieldError {
	var fields []httperr.FieldError

	if strings.TrimSpace(emp.Name) == "" {
		fields = append(fields, httperr.FieldError{Field: "name", Code: "required"})
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !validators.IsEmailSyntaxValid(email) {
		fields = append(fields, httperr.FieldError{Field: "email", Code: "invalid_email"})
	}

	normPhone, ok := validators.NormalizePhone(phone)
	if !ok {
		fields = append(fields, httperr.FieldError{Field: "phone", Code: "invalid_phone"})
	}

	emp.Name = strings.TrimSpace(emp.Name)
	emp.Email = email
	emp.Phone = normPhone
	return fields
}

// companyWorks loads the given works, all of which must belong to the company.
func companyWorks(db *gorm.DB, companyID uint, ids []uint) ([]models.Work, error) {
	if len(ids) == 0 {
		return []models.Work{}, nil
	}

	var works []models.Work
	if err := db.Where("company_id = ? AND id IN ?", companyID, ids).Find(&works).Error; err != nil {
		return nil, err
	}
	if len(works) != len(uniqueIDs(ids)) {
		return nil, httperr.ErrField("workIds", "work_not_found")
	}
	return works, nil
}

// linkUser turns an existing account without a company into this employee's login.
func linkUser(tx *gorm.DB, emp *models.Employee) error {
	if emp.Email == "" {
		return nil
	}
	return tx.Model(&models.User{}).
		Where("email = ? AND company_id = ?", emp.Email, 0).
		Updates(map[string]any{
			"role":        models.RoleEmployee,
			"company_id":  emp.CompanyID,
			"employee_id": emp.ID,
		}).Error
}

func (h *EmployeeHandler) find(c *gin.Context, companyID uint) (*models.Employee, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	var emp models.Employee
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Works").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&emp).Error; err != nil {
		writeLookupError(c, err, "employee_not_found")
		return nil, false
	}
	return &emp, true
}

// --------- Handlers ---------

func (h *EmployeeHandler) Add(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	emp := models.Employee{
		CompanyID: companyID,
		Name:      req.Name,
		IsActive:  true,
	}
	if fields := validateEmployee(&emp, req.Email, req.Phone); len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		works, err := companyWorks(tx, companyID, req.WorkIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&emp).Error; err != nil {
			return err
		}
		if len(works) > 0 {
			emp.Works = works
			if err := tx.Model(&emp).Association("Works").Replace(works); err != nil {
				return err
			}
		}
		return linkUser(tx, &emp)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, companyID, "employee_created", "employee", emp.ID, gin.H{"name": emp.Name})

	c.JSON(http.StatusCreated, emp)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	emp, ok := h.find(c, companyID)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	fields := validateEmployee(emp, pick(req.Email, emp.Email), pick(req.Phone, emp.Phone))
	if len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Works").Save(emp).Error; err != nil {
			return err
		}
		if req.WorkIDs == nil {
			return nil
		}
		works, err := companyWorks(tx, companyID, req.WorkIDs)
		if err != nil {
			return err
		}
		emp.Works = works
		if len(works) == 0 {
			return tx.Model(emp).Association("Works").Clear()
		}
		return tx.Model(emp).Association("Works").Replace(works)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, companyID, "employee_updated", "employee", emp.ID, req)

	c.JSON(http.StatusOK, emp)
}

// UploadPicture stores the multipart "picture" field as a resized WebP.
func (h *EmployeeHandler) UploadPicture(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	if h.pictures == nil {
		writeError(c, httperr.ErrBusiness("storage_unavailable"))
		return
	}
	emp, ok := h.find(c, companyID)
	if !ok {
		return
	}

	header, err := c.FormFile("picture")
	if err != nil {
		writeError(c, httperr.ErrField("picture", "required"))
		return
	}
	if header.Size > imaging.MaxUploadBytes {
		writeError(c, httperr.ErrField("picture", "invalid_picture"))
		return
	}

	file, err := header.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	body, err := imaging.ToWebP(file)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			writeError(c, httperr.ErrField("picture", "invalid_picture"))
			return
		}
		writeError(c, err)
		return
	}

	url, err := h.pictures.Put(c.Request.Context(), "employees", imaging.ContentType, body)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(emp).
		Update("picture_url", url).Error; err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, companyID, "employee_picture_updated", "employee", emp.ID, nil)

	c.JSON(http.StatusOK, gin.H{"pictureUrl": url})
}

// WorkAssignments lists every employee of the company with the works they perform.
func (h *EmployeeHandler) WorkAssignments(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var emps []models.Employee
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Works").
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&emps).Error; err != nil {
		writeError(c, err)
		return
	}

	out := make([]employeeAssignment, 0, len(emps))
	for _, e := range emps {
		ids := make([]uint, 0, len(e.Works))
		for _, w := range e.Works {
			ids = append(ids, w.ID)
		}
		out = append(out, employeeAssignment{
			ID:         e.ID,
			Name:       e.Name,
			PictureURL: e.PictureURL,
			IsActive:   e.IsActive,
			WorkIDs:    ids,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

// Inactivate stops new bookings. Existing bookings are kept.
func (h *EmployeeHandler) Inactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *EmployeeHandler) setActive(c *gin.Context, active bool) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	emp, ok := h.find(c, companyID)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(emp).
		Update("is_active", active).Error; err != nil {
		writeError(c, err)
		return
	}
	emp.IsActive = active

	action := "employee_inactivated"
	if active {
		action = "employee_activated"
	}
	record(h.audit, c, companyID, action, "employee", emp.ID, nil)

	c.JSON(http.StatusOK, emp)
}
