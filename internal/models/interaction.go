package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the lifecycle marker tracked per interaction. It is the only
// piece of shared mutable state in the pipeline; each stage writes its own
// target value for its own interaction and nothing else.
type Status string

const (
	StatusUploaded            Status = "Uploaded"
	StatusTranscribing        Status = "transcribing"
	StatusTranscriptionFailed Status = "error starting transcription job"
)

// Interaction is one customer-agent call record, keyed by a generated
// interaction_id that is stable across the blob store, the interactions
// collection, and every queue payload.
type Interaction struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	InteractionID string             `bson:"interaction_id" json:"interaction_id"` // uuid v4

	CustomerID   string `bson:"customer_id" json:"customer_id"` // ^C[0-9]+$
	AgentID      string `bson:"agent_id" json:"agent_id"`       // ^A[0-9]+$
	Timestamp    string `bson:"timestamp" json:"timestamp"`     // RFC3339
	CallDuration int    `bson:"call_duration" json:"call_duration"`
	AudioFormat  string `bson:"audio_format" json:"audio_format"` // wav|mp3|flac
	AudioFileKey string `bson:"audio_file_key" json:"audio_file_key"`

	Status    Status    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// CallMetadata is the validated shape of the metadata part of an upload.
type CallMetadata struct {
	CustomerID   string `json:"customer_id"`
	AgentID      string `json:"agent_id"`
	Timestamp    string `json:"timestamp"`
	CallDuration int    `json:"call_duration"`
	AudioFormat  string `json:"audio_format"`
}
