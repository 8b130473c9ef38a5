package main

import (
	"context"
	"time"

	"submission_service/internal/domain"
	"submission_service/internal/service"
	"submission_service/pkg/logger"
)

type dueSoonFinder interface {
	FindAssignmentsDueSoon(ctx context.Context, window time.Duration) ([]*domain.Assignment, error)
}

type ReminderWorker struct {
	assignments dueSoonFinder
	producer    service.EventProducer
	logger      *logger.Logger
	interval    time.Duration
	window      time.Duration
}

func NewReminderWorker(
	assignments dueSoonFinder,
	producer service.EventProducer,
	logger *logger.Logger,
	interval time.Duration,
	window time.Duration,
) *ReminderWorker {
	return &ReminderWorker{
		assignments: assignments,
		producer:    producer,
		logger:      logger,
		interval:    interval,
		window:      window,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.processReminders(ctx)
		}
	}
}

func (w *ReminderWorker) processReminders(ctx context.Context) {
	assignments, err := w.assignments.FindAssignmentsDueSoon(ctx, w.window)
	if err != nil {
		w.logger.Errorf("Failed to get assignments due soon: %v", err)
		return
	}

	for _, assignment := range assignments {
		message := map[string]interface{}{
			"assignment_id": assignment.ID,
			"instructor_id": assignment.InstructorID,
			"deadline":      assignment.Deadline,
			"title":         assignment.Title,
		}

		if err := w.producer.Send(ctx, service.TopicAssignmentReminders, message); err != nil {
			w.logger.Errorf("Failed to send reminder for assignment %s: %v", assignment.ID, err)
			continue
		}

		w.logger.Infof("Sent reminder for assignment %s", assignment.ID)
	}
}
