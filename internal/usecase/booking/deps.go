package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// Auditor is satisfied by *audit.Dispatcher.
type Auditor interface {
	Dispatch(ev audit.Event)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFound maps a missing row to code and passes other errors through.
func notFound(err error, code string) error {
	if isNotFound(err) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// bookable loads the employee and work of a request and checks they can be
// booked together: both active, same company, work assigned to employee.
func bookable(
	ctx context.Context,
	repo domain.Repository,
	employeeID uint,
	workID uint,
) (*models.Employee, *models.Work, error) {

	emp, err := repo.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, nil, notFound(err, "employee_not_found")
	}
	if !emp.IsActive {
		return nil, nil, httperr.ErrField("employeeId", "employee_inactive")
	}

	work, err := repo.GetWork(ctx, workID)
	if err != nil {
		return nil, nil, notFound(err, "work_not_found")
	}
	if work.CompanyID != emp.CompanyID {
		return nil, nil, httperr.ErrBusiness("work_not_found")
	}
	if !work.IsActive {
		return nil, nil, httperr.ErrField("workId", "work_inactive")
	}
	if !emp.HasWork(work.ID) {
		return nil, nil, httperr.ErrField("workId", "work_not_assigned")
	}

	return emp, work, nil
}
