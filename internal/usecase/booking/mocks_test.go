package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// ------------------------------------------------------
// Repository
// ------------------------------------------------------

type repoMock struct {
	mock.Mock
}

func (m *repoMock) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Company)
	return c, args.Error(1)
}

func (m *repoMock) GetBusinessHours(ctx context.Context, companyID uint, weekday time.Weekday) (*models.BusinessHours, error) {
	args := m.Called(ctx, companyID, weekday)
	bh, _ := args.Get(0).(*models.BusinessHours)
	return bh, args.Error(1)
}

func (m *repoMock) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*models.Employee)
	return e, args.Error(1)
}

func (m *repoMock) GetWork(ctx context.Context, id uint) (*models.Work, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*models.Work)
	return w, args.Error(1)
}

func (m *repoMock) CreateIfFree(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *repoMock) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*models.Booking)
	return b, args.Error(1)
}

func (m *repoMock) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *repoMock) ListActiveForDay(ctx context.Context, employeeID uint, date string) ([]models.Booking, error) {
	args := m.Called(ctx, employeeID, date)
	l, _ := args.Get(0).([]models.Booking)
	return l, args.Error(1)
}

func (m *repoMock) ListForCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	args := m.Called(ctx, customerID)
	l, _ := args.Get(0).([]models.Booking)
	return l, args.Error(1)
}

func (m *repoMock) ListForCompany(ctx context.Context, companyID uint, start, end time.Time) ([]models.Booking, error) {
	args := m.Called(ctx, companyID, start, end)
	l, _ := args.Get(0).([]models.Booking)
	return l, args.Error(1)
}

// ------------------------------------------------------
// Lock / cache / audit
// ------------------------------------------------------

type fakeLocker struct {
	busy     bool
	err      error
	locked   []string
	unlocked []string
}

func (f *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	if f.busy {
		return "", false, nil
	}
	f.locked = append(f.locked, key)
	return "token", true, nil
}

func (f *fakeLocker) Unlock(_ context.Context, key, _ string) error {
	f.unlocked = append(f.unlocked, key)
	return nil
}

type memCache struct {
	data        map[string][]slot.TimeSlot
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]slot.TimeSlot{}}
}

func cacheKey(employeeID uint, date string, duration int) string {
	return fmt.Sprintf("%d/%s/%d", employeeID, date, duration)
}

func (c *memCache) Get(_ context.Context, employeeID uint, date string, duration int) ([]slot.TimeSlot, bool) {
	s, ok := c.data[cacheKey(employeeID, date, duration)]
	return s, ok
}

func (c *memCache) Set(_ context.Context, employeeID uint, date string, duration int, slots []slot.TimeSlot) {
	c.data[cacheKey(employeeID, date, duration)] = slots
}

func (c *memCache) Invalidate(_ context.Context, employeeID uint, date string) {
	c.invalidated = append(c.invalidated, date)
	for k := range c.data {
		delete(c.data, k)
	}
}

type auditRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *auditRecorder) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

// ------------------------------------------------------
// Fixtures
// ------------------------------------------------------

// Monday 2026-03-02, 07:00 UTC.
var fixedNow = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testCompany() *models.Company {
	return &models.Company{ID: 1, Name: "Studio", Timezone: "UTC", MinAdvanceMinutes: 60}
}

func testWork() *models.Work {
	return &models.Work{ID: 5, CompanyID: 1, Name: "Cut", DurationMinutes: 60, IsActive: true}
}

func testEmployee() *models.Employee {
	return &models.Employee{ID: 3, CompanyID: 1, Name: "Ana", IsActive: true, Works: []models.Work{*testWork()}}
}

func mondayHours() *models.BusinessHours {
	return &models.BusinessHours{CompanyID: 1, Weekday: int(time.Monday), IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"}
}
