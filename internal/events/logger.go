package events

import (
	"context"
	"encoding/json"

	"github.com/edumetric/edumetric/internal/logger"
	"github.com/edumetric/edumetric/pkg/database"
	"github.com/edumetric/edumetric/pkg/models"
)

type EventLogger struct {
	db        *database.DB
	eventChan <-chan *models.Event
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewEventLogger(db *database.DB, eventChan <-chan *models.Event) *EventLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventLogger{
		db:        db,
		eventChan: eventChan,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (l *EventLogger) Start() {
	go l.run()
}

func (l *EventLogger) Stop() {
	l.cancel()
}

func (l *EventLogger) run() {
	for {
		select {
		case <-l.ctx.Done():
			return
		case event, ok := <-l.eventChan:
			if !ok {
				return
			}
			l.processEvent(event)
		}
	}
}

func (l *EventLogger) processEvent(event *models.Event) {
	// Log to structured logger
	entry := logger.WithFields(map[string]interface{}{
		"event_type": event.Type,
		"rno":        event.RNO,
		"severity":   event.Severity,
		"trace_id":   event.TraceID,
	})

	switch event.Severity {
	case models.SeverityCritical:
		entry.Error(event.Message)
	case models.SeverityWarning:
		entry.Warn(event.Message)
	default:
		entry.Info(event.Message)
	}

	// Persist specific events to database
	switch event.Type {
	case models.EventTypeMentorAlert:
		l.persistMentorAlert(event)
	case models.EventTypeChatMessage:
		l.persistChatMessage(event)
	}
}

func (l *EventLogger) persistMentorAlert(event *models.Event) {
	alert, ok := event.Data.(*models.MentorAlert)
	if !ok {
		return
	}

	query := `
		INSERT INTO mentor_alerts
			(rno, student_name, mentor, mentor_email, performance_label, risk_label, dropout_label, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := l.db.ExecContext(l.ctx, query,
		alert.RNO,
		alert.StudentName,
		alert.Mentor,
		alert.MentorEmail,
		alert.PerformanceLabel,
		alert.RiskLabel,
		alert.DropoutLabel,
		alert.Reason,
	)

	if err != nil {
		logger.Errorf("Failed to persist mentor alert: %v", err)
	}
}

func (l *EventLogger) persistChatMessage(event *models.Event) {
	entry, ok := event.Data.(*models.ChatLogEntry)
	if !ok {
		return
	}

	query := `
		INSERT INTO chat_log (username, query, action, response)
		VALUES ($1, $2, $3, $4)`

	_, err := l.db.ExecContext(l.ctx, query,
		entry.Username,
		entry.Query,
		entry.Action,
		entry.Response,
	)

	if err != nil {
		logger.Errorf("Failed to persist chat message: %v", err)
	}
}

func (l *EventLogger) LogToJSON(event *models.Event) string {
	data, _ := json.Marshal(event)
	return string(data)
}
