package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
)

// writeError renders business errors through the status table and logs
// everything else as an internal failure.
func writeError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.WriteBusiness(c, be)
		return
	}

	log := middleware.Logger(c)
	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	httperr.Internal(c, httperr.CodeInternal, "Unexpected error, please try again.")
}

// writeLookupError turns a missing row into code, anything else into writeError.
func writeLookupError(c *gin.Context, err error, code string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.WriteBusiness(c, httperr.BusinessError{Code: code})
		return
	}
	writeError(c, err)
}

func writeBindError(c *gin.Context, err error) {
	httperr.Write(c, http.StatusBadRequest, httperr.CodeInvalidRequest, "Invalid request body.",
		httperr.FieldError{Code: httperr.CodeInvalidRequest, Message: err.Error()})
}

// --------------------------------------------------
// Context
// --------------------------------------------------

func currentUserID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

// requireCompany returns the caller's company, writing company_required when
// the account has not registered one yet.
func requireCompany(c *gin.Context) (uint, bool) {
	id := c.GetUint(middleware.ContextCompanyID)
	if id == 0 {
		httperr.WriteBusiness(c, httperr.BusinessError{Code: "company_required"})
		return 0, false
	}
	return id, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

func queryID(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}

func uintPtr(v uint) *uint {
	return &v
}

// record dispatches an audit event for the current caller.
func record(d ucBooking.Auditor, c *gin.Context, companyID uint, action, entity string, entityID uint, meta any) {
	if d == nil {
		return
	}
	d.Dispatch(audit.Event{
		CompanyID: companyID,
		UserID:    uintPtr(currentUserID(c)),
		Action:    action,
		Entity:    entity,
		EntityID:  uintPtr(entityID),
		Metadata:  meta,
	})
}
