package models

import "time"

// MaxChatQueryLength bounds free-text questions before parsing.
const MaxChatQueryLength = 500

// ChatLogEntry is one persisted question/answer exchange.
type ChatLogEntry struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Query     string    `json:"query"`
	Action    string    `json:"action"`
	Response  string    `json:"response,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MentorAlert is a persisted notification that a student needs attention.
type MentorAlert struct {
	ID               int       `json:"id"`
	RNO              string    `json:"rno"`
	StudentName      string    `json:"student_name"`
	Mentor           string    `json:"mentor,omitempty"`
	MentorEmail      string    `json:"mentor_email,omitempty"`
	PerformanceLabel string    `json:"performance_label"`
	RiskLabel        string    `json:"risk_label"`
	DropoutLabel     string    `json:"dropout_label"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}
