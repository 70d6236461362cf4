package notify

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

// Bookings starting inside [now+leadMin, now+leadMax) get a reminder. The
// window is wider than the default schedule period so no booking slips
// between two runs; ReminderSentAt keeps it to one email.
const (
	leadMin = 55 * time.Minute
	leadMax = 65 * time.Minute
)

type ReminderRepository interface {
	ListDueReminders(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	MarkReminderSent(ctx context.Context, bookingID uint, at time.Time) error
}

type Reminders struct {
	repo   ReminderRepository
	mailer Mailer
	log    zerolog.Logger
	now    func() time.Time
}

func NewReminders(repo ReminderRepository, mailer Mailer, log zerolog.Logger) *Reminders {
	return &Reminders{repo: repo, mailer: mailer, log: log, now: time.Now}
}

// Run sends every due reminder and returns how many went out.
func (r *Reminders) Run(ctx context.Context) int {
	now := r.now()

	list, err := r.repo.ListDueReminders(ctx, now.Add(leadMin), now.Add(leadMax))
	if err != nil {
		r.log.Error().Err(err).Msg("list due reminders")
		return 0
	}

	sent := 0
	for i := range list {
		b := &list[i]
		if b.Customer == nil || b.Customer.Email == "" {
			continue
		}

		subject, body := reminderEmail(b)
		if err := r.mailer.Send(b.Customer.Email, subject, body); err != nil {
			metrics.RecordReminder("failed")
			r.log.Error().Err(err).Uint("booking_id", b.ID).Msg("send reminder")
			continue
		}

		if err := r.repo.MarkReminderSent(ctx, b.ID, now); err != nil {
			r.log.Error().Err(err).Uint("booking_id", b.ID).Msg("mark reminder sent")
		}

		metrics.RecordReminder("sent")
		sent++
	}

	if sent > 0 {
		r.log.Info().Int("sent", sent).Msg("booking reminders sent")
	}
	return sent
}

func reminderEmail(b *models.Booking) (string, string) {
	work, employee := "", ""
	if b.Work != nil {
		work = b.Work.Name
	}
	if b.Employee != nil {
		employee = b.Employee.Name
	}

	start, err := slot.TimeOf(b.StartOnSlot)
	if err != nil {
		start = b.StartTime.Format("15:04")
	}

	subject := fmt.Sprintf("Reminder: %s at %s", work, start)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>This is a reminder of your booking in about one hour.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>Date:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
		</ul>
		<p>If you cannot make it, please cancel the booking so the time can be offered to someone else.</p>
	`,
		html.EscapeString(b.Customer.Name),
		html.EscapeString(work),
		html.EscapeString(employee),
		b.BookingDate,
		start,
	)

	return subject, body
}

// StartScheduler runs the reminder job on schedule until the returned cron is stopped.
func StartScheduler(schedule string, job *Reminders, log zerolog.Logger) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		job.Run(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("add reminder job: %w", err)
	}

	c.Start()
	log.Info().Str("schedule", schedule).Msg("reminder scheduler started")
	return c, nil
}
