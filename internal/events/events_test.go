package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetric/edumetric/pkg/models"
)

func receiveEvent(t *testing.T, ch <-chan *models.Event) *models.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestEventBusSubscribe(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypeMentorAlert)

	bus.Publish(models.NewEvent(models.EventTypeMentorAlert, "22G31A3167", "needs attention"))
	bus.Publish(models.NewEvent(models.EventTypeChatMessage, "", "ignored by this subscriber"))

	event := receiveEvent(t, ch)
	assert.Equal(t, models.EventTypeMentorAlert, event.Type)
	assert.Equal(t, "22G31A3167", event.RNO)

	select {
	case unexpected := <-ch:
		t.Fatalf("received event for unsubscribed type: %s", unexpected.Type)
	default:
	}
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.SubscribeAll()

	bus.Publish(models.NewEvent(models.EventTypeQueryExecuted, "", "query"))
	bus.Publish(models.NewEvent(models.EventTypeStudentAnalyzed, "20CSE001", "analyzed"))

	assert.Equal(t, models.EventTypeQueryExecuted, receiveEvent(t, ch).Type)
	assert.Equal(t, models.EventTypeStudentAnalyzed, receiveEvent(t, ch).Type)
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus(1)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypeError)

	bus.Publish(models.NewEvent(models.EventTypeError, "", "first"))
	bus.Publish(models.NewEvent(models.EventTypeError, "", "dropped"))

	assert.Equal(t, "first", receiveEvent(t, ch).Message)
	select {
	case event := <-ch:
		t.Fatalf("expected second event dropped, got %q", event.Message)
	default:
	}
}

func TestEventBusPublishAfterClose(t *testing.T) {
	bus := NewEventBus(10)
	bus.Subscribe(models.EventTypeError)
	bus.Close()

	require.NotPanics(t, func() {
		bus.Publish(models.NewEvent(models.EventTypeError, "", "after close"))
	})
}

func TestPublisherMentorAlertSeverity(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypeMentorAlert)

	NewPublisher(bus).MentorAlert(&models.MentorAlert{
		RNO:         "21A91A0502",
		StudentName: "Ravi",
		Reason:      "high dropout risk",
	})

	event := receiveEvent(t, ch)
	assert.Equal(t, models.SeverityCritical, event.Severity)
	assert.Equal(t, "21A91A0502", event.RNO)
}

func TestPublisherCarriesTraceID(t *testing.T) {
	bus := NewEventBus(10)
	defer bus.Close()

	ch := bus.Subscribe(models.EventTypeQueryExecuted)

	NewPublisher(bus).WithTraceID("trace-123").QueryExecuted("top performers", &models.Intent{
		Action: models.ActionTopPerformers,
	})

	assert.Equal(t, "trace-123", receiveEvent(t, ch).TraceID)
}
