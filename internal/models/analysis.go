package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisMessage is the enriched analysis payload consumed by the output
// consolidation stage. Its schema is the authoritative contract for
// whatever upstream producer fills it in.
type AnalysisMessage struct {
	InteractionID string `json:"interaction_id"`

	AssignedTo           string  `json:"assigned_to"`
	DueDate              *string `json:"due_date"`
	Topic                string  `json:"topic"`
	SatisfactionScore    float64 `json:"satisfaction_score"`
	SentimentAnalysis    string  `json:"sentiment_analysis"`
	FeedbackComments     string  `json:"feedback_comments"`
	ComplianceStatus     string  `json:"compliance_status"`
	EscalationFlag       bool    `json:"escalation_flag"`
	EscalationReason     string  `json:"escalation_reason"`
	AgentEfficiencyScore float64 `json:"agent_efficiency_score"`
	FollowUpFlag         bool    `json:"follow_up_flag"`
	FollowUpNotes        string  `json:"follow_up_notes"`
}

// InteractionAnalysis is the consolidated analytics row. Written exactly
// once per interaction at the output stage, never mutated afterwards.
type InteractionAnalysis struct {
	InteractionID string `gorm:"column:interaction_id;type:uuid;primaryKey" json:"interaction_id"`

	AgentID      string `gorm:"column:agent_id;type:text;index" json:"agent_id"`
	CustomerID   string `gorm:"column:customer_id;type:text;index" json:"customer_id"`
	CallDuration int    `gorm:"column:call_duration;type:integer" json:"call_duration"`

	AssignedTo           string  `gorm:"column:assigned_to;type:text" json:"assigned_to"`
	DueDate              *string `gorm:"column:due_date;type:text" json:"due_date"`
	Topic                string  `gorm:"column:topic;type:text" json:"topic"`
	SatisfactionScore    float64 `gorm:"column:satisfaction_score;type:numeric" json:"satisfaction_score"`
	SentimentAnalysis    string  `gorm:"column:sentiment_analysis;type:text" json:"sentiment_analysis"`
	FeedbackComments     string  `gorm:"column:feedback_comments;type:text" json:"feedback_comments"`
	ComplianceStatus     string  `gorm:"column:compliance_status;type:text" json:"compliance_status"`
	EscalationFlag       bool    `gorm:"column:escalation_flag" json:"escalation_flag"`
	EscalationReason     string  `gorm:"column:escalation_reason;type:text" json:"escalation_reason"`
	AgentEfficiencyScore float64 `gorm:"column:agent_efficiency_score;type:numeric" json:"agent_efficiency_score"`
	FollowUpFlag         bool    `gorm:"column:follow_up_flag" json:"follow_up_flag"`
	FollowUpNotes        string  `gorm:"column:follow_up_notes;type:text" json:"follow_up_notes"`

	RawPayload datatypes.JSON `gorm:"column:raw_payload;type:jsonb" json:"raw_payload,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (InteractionAnalysis) TableName() string { return "interaction_analyses" }
