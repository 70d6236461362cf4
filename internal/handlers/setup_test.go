package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/auth"
	"github.com/BruksfildServices01/booking-api/internal/db"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/middleware"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type obj map[string]any

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *auditRecorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *auditRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

type fakeGoogle struct {
	id  auth.GoogleIdentity
	err error
}

func (f fakeGoogle) Verify(context.Context, string) (auth.GoogleIdentity, error) {
	return f.id, f.err
}

type env struct {
	db     *gorm.DB
	tokens *auth.Tokens
	audit  *auditRecorder
	router *gin.Engine
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// newEnv returns an engine with request logging and auth wired like production;
// tests mount the handlers they exercise on pub and sec.
func newEnv(t *testing.T) (*env, *gin.RouterGroup, *gin.RouterGroup) {
	t.Helper()

	e := &env{
		db:     newTestDB(t),
		tokens: auth.NewTokens("test-secret"),
		audit:  &auditRecorder{},
		router: gin.New(),
	}
	e.router.Use(middleware.RequestID(zerolog.New(io.Discard)))

	pub := e.router.Group("/api")
	sec := e.router.Group("/api", middleware.AuthMiddleware(e.tokens))
	return e, pub, sec
}

func (e *env) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := e.tokens.Issue(u)
	require.NoError(t, err)
	return token
}

func (e *env) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	return decode[httperr.HTTPError](t, w)
}

// ------------------------------------------------------
// Fixtures
// ------------------------------------------------------

type world struct {
	owner    models.User
	customer models.User
	company  models.Company
	work     models.Work
	employee models.Employee
}

// seedWorld creates a UTC company open 09:00 to 18:00 every day with one
// employee performing one 60 minute work.
func seedWorld(t *testing.T, gdb *gorm.DB) world {
	t.Helper()

	w := world{
		owner:    models.User{Name: "Olivia", Email: "owner@example.com", Role: models.RoleOwner},
		customer: models.User{Name: "Carl", Email: "carl@example.com", Role: models.RoleCustomer},
	}
	require.NoError(t, gdb.Create(&w.owner).Error)
	require.NoError(t, gdb.Create(&w.customer).Error)

	w.company = models.Company{
		OwnerID:           w.owner.ID,
		Name:              "Studio",
		Alias:             "studio",
		Timezone:          "UTC",
		MinAdvanceMinutes: 60,
	}
	require.NoError(t, gdb.Create(&w.company).Error)

	w.owner.CompanyID = w.company.ID
	require.NoError(t, gdb.Model(&w.owner).Update("company_id", w.company.ID).Error)

	for wd := 0; wd < 7; wd++ {
		require.NoError(t, gdb.Create(&models.BusinessHours{
			CompanyID: w.company.ID, Weekday: wd, IsOpen: true, OpenTime: "09:00", CloseTime: "18:00",
		}).Error)
	}

	w.work = models.Work{CompanyID: w.company.ID, Name: "Cut", DurationMinutes: 60, Price: 30, IsActive: true}
	require.NoError(t, gdb.Create(&w.work).Error)

	w.employee = models.Employee{
		CompanyID: w.company.ID,
		Name:      "Ana",
		Email:     "ana@example.com",
		IsActive:  true,
		Works:     []models.Work{w.work},
	}
	require.NoError(t, gdb.Create(&w.employee).Error)

	return w
}
