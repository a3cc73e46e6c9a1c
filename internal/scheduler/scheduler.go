package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/example/recallbot/internal/config"
	"github.com/example/recallbot/pkg/models"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// UserSource lists learners who asked for a reminder at a given local hour.
type UserSource interface {
	GetForNotificationHour(ctx context.Context, hour int) ([]models.User, error)
}

// DueCounter counts a learner's cards due at a moment.
type DueCounter interface {
	CountDue(ctx context.Context, userID int64, now time.Time) (int, error)
}

// Notifier interface for sending notifications.
type Notifier interface {
	SendReminder(ctx context.Context, userID int64, due int) error
}

// Scheduler manages scheduled tasks for the application.
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserSource
	progress  DueCounter
	notifier  Notifier
	cfg       config.RemindersConfig
	loc       *time.Location
	now       func() time.Time
	log       *zap.Logger
}

// New creates a new scheduler instance. Notification hours are read in loc.
func New(users UserSource, progress DueCounter, notifier Notifier, cfg config.RemindersConfig, loc *time.Location, log *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		users:     users,
		progress:  progress,
		notifier:  notifier,
		cfg:       cfg,
		loc:       loc,
		now:       time.Now,
		log:       log,
	}
}

// Start begins running all scheduled tasks.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.log.Info("reminders disabled")
		return nil
	}

	every := max(s.cfg.Every, 1)
	_, err := s.scheduler.Every(every).Hours().Do(func() {
		if _, err := s.CheckAndSendReminders(context.Background()); err != nil {
			s.log.Error("reminder check failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// CheckAndSendReminders reminds every learner whose notification hour is the
// current local hour and who has at least one due card. It returns the number
// of reminders sent. A failure for one learner does not stop the others.
func (s *Scheduler) CheckAndSendReminders(ctx context.Context) (int, error) {
	now := s.now()
	currentHour := now.In(s.loc).Hour()

	if currentHour < s.cfg.StartHour || currentHour > s.cfg.EndHour {
		s.log.Debug("outside notification hours, skipping reminders",
			zap.Int("hour", currentHour),
			zap.Int("start_hour", s.cfg.StartHour),
			zap.Int("end_hour", s.cfg.EndHour),
		)
		return 0, nil
	}

	users, err := s.users.GetForNotificationHour(ctx, currentHour)
	if err != nil {
		return 0, fmt.Errorf("failed to get users for notification: %w", err)
	}

	sent := 0
	for _, user := range users {
		ok, err := s.remind(ctx, user.ID, now)
		if err != nil {
			s.log.Error("failed to remind user", zap.Int64("user_id", user.ID), zap.Error(err))
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// RunManualCheck forces a check for a specific user.
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) (bool, error) {
	return s.remind(ctx, userID, s.now())
}

func (s *Scheduler) remind(ctx context.Context, userID int64, now time.Time) (bool, error) {
	due, err := s.progress.CountDue(ctx, userID, now)
	if err != nil {
		return false, fmt.Errorf("failed to count due words: %w", err)
	}
	if due == 0 {
		return false, nil
	}
	if err := s.notifier.SendReminder(ctx, userID, due); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}
	return true, nil
}
