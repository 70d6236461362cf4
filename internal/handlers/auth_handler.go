package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
	"github.com/BruksfildServices01/booking-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *auth.Tokens
	google auth.GoogleVerifier

	// checkDomain is nil in tests to keep them off the network.
	checkDomain func(c *gin.Context, email string) bool
}

func NewAuthHandler(db *gorm.DB, tokens *auth.Tokens, google auth.GoogleVerifier) *AuthHandler {
	return &AuthHandler{
		db:     db,
		tokens: tokens,
		google: google,
		checkDomain: func(c *gin.Context, email string) bool {
			return validators.IsEmailDomainValid(c.Request.Context(), email)
		},
	}
}

// --------- Requests ---------

type GoogleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Token             string       `json:"token"`
	User              *models.User `json:"user"`
	CompanyRegistered bool         `json:"companyRegistered"`
}

// --------- Handlers ---------

// Google signs in with a Google ID token. Unknown accounts are created as
// customers, or linked to the employee record sharing their e-mail.
func (h *AuthHandler) Google(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	id, err := h.google.Verify(c.Request.Context(), req.Credential)
	if err != nil {
		httperr.WriteBusiness(c, httperr.BusinessError{Code: "invalid_google_token"})
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var user models.User
	err = db.Where("google_sub = ?", id.Subject).
		Or("email = ?", id.Email).
		First(&user).Error

	switch {
	case err == nil:
		if user.GoogleSub == "" {
			user.GoogleSub = id.Subject
			if err := db.Model(&user).Update("google_sub", id.Subject).Error; err != nil {
				writeError(c, err)
				return
			}
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{
			Name:      id.Name,
			Email:     id.Email,
			GoogleSub: id.Subject,
			Role:      models.RoleCustomer,
		}
		h.linkEmployee(db, &user)

		if err := db.Create(&user).Error; err != nil {
			writeError(c, err)
			return
		}

	default:
		writeError(c, err)
		return
	}

	h.respondSession(c, http.StatusOK, &user)
}

// linkEmployee upgrades a new account to employee when an active employee
// was registered with the same e-mail.
func (h *AuthHandler) linkEmployee(db *gorm.DB, user *models.User) {
	var emp models.Employee
	if err := db.Where("LOWER(email) = ? AND is_active = ?", user.Email, true).
		First(&emp).Error; err != nil {
		return
	}

	user.Role = models.RoleEmployee
	user.CompanyID = emp.CompanyID
	user.EmployeeID = uintPtr(emp.ID)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone, phoneOK := validators.NormalizePhone(req.Phone)

	var fields []httperr.FieldError
	if !validators.IsEmailSyntaxValid(email) {
		fields = append(fields, httperr.FieldError{Field: "email", Code: "invalid_email"})
	} else if h.checkDomain != nil && !h.checkDomain(c, email) {
		fields = append(fields, httperr.FieldError{Field: "email", Code: "invalid_email_domain"})
	}
	if !phoneOK {
		fields = append(fields, httperr.FieldError{Field: "phone", Code: "invalid_phone"})
	}
	if len(fields) > 0 {
		writeError(c, httperr.ErrValidation(fields...))
		return
	}

	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		writeError(c, err)
		return
	}
	if count > 0 {
		writeError(c, httperr.ErrField("email", "email_taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(c, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hashed),
		Role:         models.RoleCustomer,
	}
	h.linkEmployee(h.db.WithContext(c.Request.Context()), &user)

	if err := h.db.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			writeError(c, httperr.ErrField("email", "email_taken"))
			return
		}
		writeError(c, err)
		return
	}

	h.respondSession(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.WriteBusiness(c, httperr.BusinessError{Code: "invalid_credentials"})
			return
		}
		writeError(c, err)
		return
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.WriteBusiness(c, httperr.BusinessError{Code: "invalid_credentials"})
		return
	}

	h.respondSession(c, http.StatusOK, &user)
}

func (h *AuthHandler) respondSession(c *gin.Context, status int, user *models.User) {
	token, err := h.tokens.Issue(user)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(status, sessionResponse{
		Token:             token,
		User:              user,
		CompanyRegistered: user.CompanyID != 0,
	})
}
