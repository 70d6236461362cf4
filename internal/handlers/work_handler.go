package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
)

type WorkHandler struct {
	db    *gorm.DB
	audit ucBooking.Auditor
}

func NewWorkHandler(db *gorm.DB, audit ucBooking.Auditor) *WorkHandler {
	return &WorkHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateWorkRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	EmployeeIDs     []uint  `json:"employeeIds"`
}

type UpdateWorkRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	IsActive        *bool    `json:"isActive,omitempty"`
	EmployeeIDs     []uint   `json:"employeeIds,omitempty"`
}

type workView struct {
	models.Work
	EmployeeIDs []uint `json:"employeeIds"`
}

func viewOfWork(w models.Work) workView {
	ids := make([]uint, 0, len(w.Employees))
	for _, e := range w.Employees {
		ids = append(ids, e.ID)
	}
	w.Employees = nil
	return workView{Work: w, EmployeeIDs: ids}
}

// validDuration accepts whole grid steps that fit in one day.
func validDuration(minutes int) bool {
	return minutes > 0 && minutes%slot.StepMinutes == 0 && minutes <= slot.MinutesPerDay
}

func validateWork(name string, duration int, price float64, description string) []httperr.FieldError {
	var fields []httperr.FieldError
	if strings.TrimSpace(name) == "" {
		fields = append(fields, httperr.FieldError{Field: "name", Code: "required"})
	}
	if len(name) > 100 {
		fields = append(fields, httperr.FieldError{Field: "name", Code: "too_long"})
	}
	if len(description) > 255 {
		fields = append(fields, httperr.FieldError{Field: "description", Code: "too_long"})
	}
	if !validDuration(duration) {
		fields = append(fields, httperr.FieldError{Field: "durationMinutes", Code: "invalid_duration"})
	}
	if price < 0 {
		fields = append(fields, httperr.FieldError{Field: "price", Code: "invalid_request"})
	}
	return fields
}

// companyEmployees loads the given employees, all of which must belong to the company.
func companyEmployees(db *gorm.DB, companyID uint, ids []uint) ([]models.Employee, error) {
	if len(ids) == 0 {
		return []models.Employee{}, nil
	}

	var emps []models.Employee
	if err := db.Where("company_id = ? AND id IN ?", companyID, ids).Find(&emps).Error; err != nil {
		return nil, err
	}
	if len(emps) != len(uniqueIDs(ids)) {
		return nil, httperr.ErrField("employeeIds", "employee_not_found")
	}
	return emps, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// --------- Handlers ---------

// ListAll is the public catalog of a company's active works.
func (h *WorkHandler) ListAll(c *gin.Context) {
	companyID := queryID(c, "companyId")
	if companyID == 0 {
		writeError(c, httperr.ErrField("companyId", "required"))
		return
	}

	var works []models.Work
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Employees", "is_active = ?", true).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("name ASC").
		Find(&works).Error; err != nil {
		writeError(c, err)
		return
	}

	out := make([]workView, 0, len(works))
	for _, w := range works {
		out = append(out, viewOfWork(w))
	}

	c.JSON(http.StatusOK, out)
}

func (h *WorkHandler) Add(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	var req CreateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if fields := validateWork(req.Name, req.DurationMinutes, req.Price, req.Description); len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	work := models.Work{
		CompanyID:       companyID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		emps, err := companyEmployees(tx, companyID, req.EmployeeIDs)
		if err != nil {
			return err
		}
		if err := tx.Create(&work).Error; err != nil {
			return err
		}
		if len(emps) == 0 {
			return nil
		}
		work.Employees = emps
		return tx.Model(&work).Association("Employees").Replace(emps)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, companyID, "work_created", "work", work.ID, gin.H{"name": work.Name})

	c.JSON(http.StatusCreated, viewOfWork(work))
}

func (h *WorkHandler) Update(c *gin.Context) {
	companyID, ok := requireCompany(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var work models.Work
	if err := db.Preload("Employees").
		Where("id = ? AND company_id = ?", id, companyID).
		First(&work).Error; err != nil {
		writeLookupError(c, err, "work_not_found")
		return
	}

	var req UpdateWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if req.Name != nil {
		work.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		work.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		work.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		work.Price = *req.Price
	}
	if req.IsActive != nil {
		work.IsActive = *req.IsActive
	}

	if fields := validateWork(work.Name, work.DurationMinutes, work.Price, work.Description); len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Employees").Save(&work).Error; err != nil {
			return err
		}
		if req.EmployeeIDs == nil {
			return nil
		}
		emps, err := companyEmployees(tx, companyID, req.EmployeeIDs)
		if err != nil {
			return err
		}
		work.Employees = emps
		if len(emps) == 0 {
			return tx.Model(&work).Association("Employees").Clear()
		}
		return tx.Model(&work).Association("Employees").Replace(emps)
	})
	if err != nil {
		writeError(c, err)
		return
	}

	record(h.audit, c, companyID, "work_updated", "work", work.ID, req)

	c.JSON(http.StatusOK, viewOfWork(work))
}
