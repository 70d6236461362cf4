package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/export"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/models"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BookingUseCases groups what BookingHandler needs so routes can build it in one place.
type BookingUseCases struct {
	Slots          *ucBooking.GetAvailableSlots
	Create         *ucBooking.CreateBooking
	CancelCustomer *ucBooking.CancelByCustomer
	ChangeStatus   *ucBooking.ChangeBookingStatus
	ListCustomer   *ucBooking.ListCustomerBookings
	ListCompany    *ucBooking.ListCompanyBookings
}

type BookingHandler struct {
	uc BookingUseCases
}

func NewBookingHandler(uc BookingUseCases) *BookingHandler {
	return &BookingHandler{uc: uc}
}

type CreateBookingRequest struct {
	EmployeeID  uint   `json:"employeeId"`
	WorkID      uint   `json:"workId"`
	BookingDate string `json:"bookingDate"`
	StartOnSlot int    `json:"startOnSlot"`
	Notes       string `json:"notes"`
}

// ======================================================
// PUBLIC
// ======================================================

// AvailableSlots answers ?employeeId&workId&date with the free starts of that day.
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	out, err := h.uc.Slots.Execute(c.Request.Context(), domain.AvailabilityInput{
		EmployeeID: queryID(c, "employeeId"),
		WorkID:     queryID(c, "workId"),
		Date:       c.Query("date"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	b, err := h.uc.Create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID:  currentUserID(c),
		EmployeeID:  req.EmployeeID,
		WorkID:      req.WorkID,
		BookingDate: req.BookingDate,
		StartOnSlot: req.StartOnSlot,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	list, err := h.uc.ListCustomer.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) CancelMine(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.uc.CancelCustomer.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// EMPLOYEE / OWNER
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.transition(c, ucBooking.ActionCancel)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.transition(c, ucBooking.ActionComplete)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, ucBooking.ActionConfirm)
}

// transition lets owners act on any employee of their company and
// employees act only on their own agenda.
func (h *BookingHandler) transition(c *gin.Context, action ucBooking.Action) {
	employeeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	bookingID, ok := paramID(c, "bookingId")
	if !ok {
		return
	}

	companyID, ok := requireCompany(c)
	if !ok {
		return
	}

	role := c.GetString(middleware.ContextUserRole)
	if role == models.RoleEmployee && c.GetUint(middleware.ContextEmployeeID) != employeeID {
		httperr.Forbidden(c, httperr.CodeForbidden, "You can only manage your own bookings.")
		return
	}

	b, err := h.uc.ChangeStatus.Execute(c.Request.Context(), ucBooking.TransitionInput{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		BookingID:  bookingID,
		ActorID:    currentUserID(c),
		Action:     action,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// ======================================================
// COMPANY
// ======================================================

type companyRange struct {
	bookings []models.Booking
	loc      *time.Location
	in       ucBooking.CompanyBookingsInput
}

func (h *BookingHandler) companyBookings(c *gin.Context) (companyRange, bool) {
	companyID, ok := requireCompany(c)
	if !ok {
		return companyRange{}, false
	}

	in := ucBooking.CompanyBookingsInput{
		CompanyID: companyID,
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	list, loc, err := h.uc.ListCompany.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return companyRange{}, false
	}

	return companyRange{bookings: list, loc: loc, in: in}, true
}

func (h *BookingHandler) ListCompany(c *gin.Context) {
	r, ok := h.companyBookings(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r.bookings)
}

// Export returns the same range as ListCompany as an XLSX workbook.
func (h *BookingHandler) Export(c *gin.Context) {
	r, ok := h.companyBookings(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.BookingsXLSX(&buf, r.bookings, r.loc); err != nil {
		writeError(c, err)
		return
	}

	name := "bookings.xlsx"
	if r.in.StartDate != "" {
		name = fmt.Sprintf("bookings-%s.xlsx", r.in.StartDate)
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
