package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tabletalk/config"
	"tabletalk/models"

	"github.com/hibiken/asynq"
)

const TypeTableReminder = "reminder:table"

// reminderLead is how long before the reservation the reminder fires.
const reminderLead = 2 * time.Hour

func NewTableReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeTableReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues table reminders on the shared Redis queue.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{client: client}
}

// ScheduleTableReminder enqueues a reminder two hours before the reservation.
// Bookings too close to (or past) their start time get no reminder.
func (s *AsynqReminderScheduler) ScheduleTableReminder(ctx context.Context, booking models.Booking, restaurantName string) error {
	startAt, err := time.ParseInLocation("2006-01-02 15:04", booking.BookingDate+" "+booking.BookingTime, time.Local)
	if err != nil {
		return fmt.Errorf("unparsable booking date/time %q %q: %w", booking.BookingDate, booking.BookingTime, err)
	}

	fireAt := startAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID:      booking.ID,
		RestaurantName: restaurantName,
		CustomerName:   booking.CustomerName,
		FireDate:       fireAt.Format(time.RFC3339),
		Title:          "Table reminder",
		Body: fmt.Sprintf("Your table for %d at %s is booked for %s today.",
			booking.NumberOfGuests, restaurantName, booking.BookingTime),
	}

	task, opts, err := NewTableReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}
