package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/booking-api/internal/logger"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	args := m.Called(ctx, from, to)
	list, _ := args.Get(0).([]models.Booking)
	return list, args.Error(1)
}

func (m *repoMock) MarkReminderSent(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mailerMock struct {
	mock.Mock
}

func (m *mailerMock) Send(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

func TestRemindersRun(t *testing.T) {
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		{
			ID:          1,
			BookingDate: "2026-03-02",
			StartOnSlot: 19,
			Customer:    &models.User{Name: "Bob", Email: "bob@example.com"},
			Work:        &models.Work{Name: "Cut"},
			Employee:    &models.Employee{Name: "Ana"},
		},
		{ID: 2, Customer: &models.User{Name: "NoMail"}},
		{ID: 3, BookingDate: "2026-03-02", StartOnSlot: 19, Customer: &models.User{Name: "Eve", Email: "eve@example.com"}},
	}

	repo := &repoMock{}
	repo.On("ListDueReminders", mock.Anything, now.Add(55*time.Minute), now.Add(65*time.Minute)).Return(bookings, nil)
	repo.On("MarkReminderSent", mock.Anything, uint(1), now).Return(nil)

	mailer := &mailerMock{}
	mailer.On("Send", "bob@example.com", "Reminder: Cut at 09:00", mock.MatchedBy(func(body string) bool {
		return assert.Contains(t, body, "Ana") && assert.Contains(t, body, "2026-03-02")
	})).Return(nil)
	mailer.On("Send", "eve@example.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	r := NewReminders(repo, mailer, logger.Nop())
	r.now = func() time.Time { return now }

	assert.Equal(t, 1, r.Run(context.Background()))
	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
	repo.AssertNotCalled(t, "MarkReminderSent", mock.Anything, uint(3), mock.Anything)
}

func TestRemindersRepoError(t *testing.T) {
	repo := &repoMock{}
	repo.On("ListDueReminders", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	r := NewReminders(repo, &mailerMock{}, logger.Nop())
	assert.Equal(t, 0, r.Run(context.Background()))
}

func TestStartSchedulerRejectsBadSchedule(t *testing.T) {
	_, err := StartScheduler("not a cron", NewReminders(&repoMock{}, &mailerMock{}, logger.Nop()), logger.Nop())
	assert.Error(t, err)

	c, err := StartScheduler("*/5 * * * *", NewReminders(&repoMock{}, &mailerMock{}, logger.Nop()), logger.Nop())
	require.NoError(t, err)
	<-c.Stop().Done()
}
