package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/config"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/booking"
	"github.com/BruksfildServices01/booking-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-api/internal/infra/repository"
	"github.com/BruksfildServices01/booking-api/internal/infra/storage"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/models"
	ucBooking "github.com/BruksfildServices01/booking-api/internal/usecase/booking"
)

// Deps are the process wide singletons the HTTP layer is built from.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Tokens   *auth.Tokens
	Google   auth.GoogleVerifier
	Locker   domain.Locker
	Cache    domain.SlotCache
	Pictures storage.PictureStore // nil when uploads are disabled
	Audit    ucBooking.Auditor
	Limiter  *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	bookingUC := handlers.BookingUseCases{
		Slots:          ucBooking.NewGetAvailableSlots(bookingRepo, d.Cache),
		Create:         ucBooking.NewCreateBooking(bookingRepo, d.Locker, d.Cache, d.Audit, d.Config.BookingLockTTL),
		CancelCustomer: ucBooking.NewCancelByCustomer(bookingRepo, d.Cache, d.Audit),
		ChangeStatus:   ucBooking.NewChangeBookingStatus(bookingRepo, d.Cache, d.Audit),
		ListCustomer:   ucBooking.NewListCustomerBookings(bookingRepo),
		ListCompany:    ucBooking.NewListCompanyBookings(bookingRepo),
	}

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Tokens, d.Google)
	meHandler := handlers.NewMeHandler(d.DB)
	companyHandler := handlers.NewCompanyHandler(d.DB, d.Tokens, d.Audit)
	hoursHandler := handlers.NewBusinessHoursHandler(d.DB, d.Audit)
	workHandler := handlers.NewWorkHandler(d.DB, d.Audit)
	employeeHandler := handlers.NewEmployeeHandler(d.DB, d.Pictures, d.Audit)
	customerHandler := handlers.NewCustomerHandler(d.DB)
	bookingHandler := handlers.NewBookingHandler(bookingUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	owner := middleware.RequireOwner()

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/")
		if d.Limiter != nil {
			public.Use(middleware.RateLimit(d.Limiter))
		}
		{
			public.POST("/auth/google", authHandler.Google)
			public.POST("/auth/register", authHandler.Register)
			public.POST("/auth/login", authHandler.Login)

			public.GET("/company/alias/:alias", companyHandler.GetByAlias)
			public.GET("/company/id/:id", companyHandler.GetByID)
			public.GET("/work/all", workHandler.ListAll)
			public.GET("/customer/available-slots", bookingHandler.AvailableSlots)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			// any signed-in user may register a company or book
			secured.POST("/company/add", companyHandler.Add)

			secured.POST("/customer/bookings", bookingHandler.Create)
			secured.GET("/customer/bookings", bookingHandler.ListMine)
			secured.PUT("/customer/bookings/:id/cancel", bookingHandler.CancelMine)

			staff := secured.Group("/employee/:id/bookings/:bookingId")
			staff.Use(middleware.RequireRole(models.RoleOwner, models.RoleEmployee))
			{
				staff.PUT("/cancel", bookingHandler.Cancel)
				staff.PUT("/complete", bookingHandler.Complete)
				staff.PUT("/confirm", bookingHandler.Confirm)
			}

			company := secured.Group("/company", owner)
			{
				company.GET("/details", companyHandler.GetDetails)
				company.PUT("/details", companyHandler.UpdateDetails)
				company.GET("/dashboard", companyHandler.Dashboard)

				company.GET("/business-hours", hoursHandler.Get)
				company.PUT("/business-hours", hoursHandler.Update)
				company.GET("/business-hours/slots", hoursHandler.Slots)

				company.GET("/bookings", bookingHandler.ListCompany)
				company.GET("/bookings/export", bookingHandler.Export)

				company.GET("/customers", customerHandler.List)

				company.GET("/employees/work-assignments", employeeHandler.WorkAssignments)
				company.PUT("/employees/:id/activate", employeeHandler.Activate)
				company.PUT("/employees/:id/inactivate", employeeHandler.Inactivate)

				company.GET("/audit-logs", auditLogsHandler.List)
			}

			work := secured.Group("/work", owner)
			{
				work.POST("/add", workHandler.Add)
				work.PUT("/:id", workHandler.Update)
			}

			employee := secured.Group("/employee", owner)
			{
				employee.POST("/add", employeeHandler.Add)
				employee.PUT("/picture/:id", employeeHandler.UploadPicture)
				employee.PUT("/:id", employeeHandler.Update)
			}
		}
	}
}
