package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tohally/academy-web/internal/config"
	"github.com/tohally/academy-web/internal/events"
)

// NotificationService gives the academy staff a trace of record activity:
// every public intake and every admin action on a record is logged, and
// intakes additionally trigger the email stub so staff hear about new
// submissions without watching the panel.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventIntakeReceived, n.handleIntakeReceived)
	n.dispatcher.Subscribe(events.EventStudentEnrolled, n.handleStudentEnrolled)
	n.dispatcher.Subscribe(events.EventStudentUpdated, n.handleStudentUpdated)
	n.dispatcher.Subscribe(events.EventStudentDeleted, n.handleStudentDeleted)
}

func (n *NotificationService) handleIntakeReceived(ctx context.Context, event events.Event) error {
	n.logger.Info("IntakeReceived", zap.Int64("student_id", event.StudentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleStudentEnrolled(_ context.Context, event events.Event) error {
	n.logger.Info("StudentEnrolled", zap.Int64("student_id", event.StudentID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStudentUpdated(_ context.Context, event events.Event) error {
	n.logger.Info("StudentUpdated", zap.Int64("student_id", event.StudentID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleStudentDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("StudentDeleted", zap.Int64("student_id", event.StudentID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(n.cfg.EmailTo) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", n.cfg.EmailTo),
		zap.Int64("student_id", event.StudentID),
		zap.String("event_type", string(event.Type)))
}
