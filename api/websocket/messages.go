package websocket

import (
	"encoding/json"
	"time"

	"github.com/edumetric/edumetric/pkg/models"
)

type MessageType string

const (
	MessageTypeMentorAlert   MessageType = "mentor_alert"
	MessageTypeStudentUpdate MessageType = "student_update"
	MessageTypeQueryResult   MessageType = "query_result"
	MessageTypeStats         MessageType = "stats"
)

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Dept      string      `json:"dept,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewMessage(msgType MessageType, dept string, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Dept:      dept,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

type StudentUpdateData struct {
	RNO              string `json:"rno"`
	Name             string `json:"name"`
	PerformanceLabel string `json:"performance_label"`
	RiskLabel        string `json:"risk_label"`
	DropoutLabel     string `json:"dropout_label"`
	NeedAlert        bool   `json:"need_alert"`
}

// BroadcastMentorAlert pushes an alert to every connected client.
func BroadcastMentorAlert(hub *Hub, alert *models.MentorAlert) {
	msg := NewMessage(MessageTypeMentorAlert, "", alert)
	hub.Broadcast(msg.JSON())
}

// BroadcastStudentUpdate pushes a fresh analysis result to clients watching
// the student's department.
func BroadcastStudentUpdate(hub *Hub, dept string, dive *models.StudentDeepDive) {
	data := StudentUpdateData{
		RNO:              dive.RNO,
		Name:             dive.Name,
		PerformanceLabel: dive.Prediction.PerformanceLabel,
		RiskLabel:        dive.Prediction.RiskLabel,
		DropoutLabel:     dive.Prediction.DropoutLabel,
		NeedAlert:        dive.NeedAlert,
	}
	msg := NewMessage(MessageTypeStudentUpdate, dept, data)
	hub.BroadcastToDept(dept, msg.JSON())
}

// BroadcastStats pushes refreshed group statistics to every client.
func BroadcastStats(hub *Hub, stats *models.Stats) {
	msg := NewMessage(MessageTypeStats, "", stats)
	hub.Broadcast(msg.JSON())
}
