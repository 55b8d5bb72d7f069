package events

import (
	"github.com/edumetric/edumetric/pkg/models"
)

type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) StudentAnalyzed(dive *models.StudentDeepDive) {
	event := models.NewEvent(models.EventTypeStudentAnalyzed, dive.RNO, "Student analyzed").
		WithData(dive)

	if dive.NeedAlert {
		event.WithSeverity(models.SeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) QueryExecuted(query string, intent *models.Intent) {
	msg := "Query executed: " + string(intent.Action)
	event := models.NewEvent(models.EventTypeQueryExecuted, intent.Filters.RollNumber, msg).
		WithData(map[string]interface{}{
			"query":  query,
			"intent": intent,
		})
	p.publish(event)
}

func (p *Publisher) ChatMessage(entry *models.ChatLogEntry) {
	event := models.NewEvent(models.EventTypeChatMessage, "", "Chat message from "+entry.Username).
		WithData(entry)
	p.publish(event)
}

func (p *Publisher) MentorAlert(alert *models.MentorAlert) {
	event := models.NewEvent(models.EventTypeMentorAlert, alert.RNO, "Mentor alert: "+alert.Reason).
		WithSeverity(models.SeverityCritical).
		WithData(alert)
	p.publish(event)
}

func (p *Publisher) ModelFallback(label string, err error) {
	event := models.NewEvent(models.EventTypeModelFallback, "", "Model fallback for "+label).
		WithSeverity(models.SeverityWarning).
		WithData(map[string]interface{}{
			"label": label,
			"error": err.Error(),
		})
	p.publish(event)
}

func (p *Publisher) Error(rno string, message string, err error) {
	event := models.NewEvent(models.EventTypeError, rno, message).
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}
