// Package schema holds the versioned JSON Schema documents shared across
// pipeline stages, and the validators built on them. Validation always
// runs before any storage side effect.
package schema

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/utils"
)

// MetadataSchemaV1 constrains the metadata part of an upload: five
// required fields, no extras.
const MetadataSchemaV1 = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "customer_id": {"type": "string", "pattern": "^C[0-9]+$"},
    "agent_id": {"type": "string", "pattern": "^A[0-9]+$"},
    "timestamp": {"type": "string", "format": "date-time"},
    "call_duration": {"type": "integer", "minimum": 1},
    "audio_format": {"type": "string", "enum": ["wav", "mp3", "flac"]}
  },
  "required": ["customer_id", "agent_id", "timestamp", "call_duration", "audio_format"],
  "additionalProperties": false
}`

// AnalysisSchemaV1 constrains the analysis message consumed by the output
// consolidation stage. due_date is explicitly nullable.
const AnalysisSchemaV1 = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "interaction_id": {"type": "string"},
    "assigned_to": {"type": "string"},
    "due_date": {"type": ["string", "null"]},
    "topic": {"type": "string"},
    "satisfaction_score": {"type": "number"},
    "sentiment_analysis": {"type": "string"},
    "feedback_comments": {"type": "string"},
    "compliance_status": {"type": "string"},
    "escalation_flag": {"type": "boolean"},
    "escalation_reason": {"type": "string"},
    "agent_efficiency_score": {"type": "number"},
    "follow_up_flag": {"type": "boolean"},
    "follow_up_notes": {"type": "string"}
  },
  "required": ["interaction_id", "assigned_to", "topic", "satisfaction_score", "sentiment_analysis", "feedback_comments", "compliance_status", "escalation_flag", "agent_efficiency_score", "follow_up_flag"]
}`

var (
	metadataSchema = mustCompile(MetadataSchemaV1)
	analysisSchema = mustCompile(AnalysisSchemaV1)
)

func mustCompile(doc string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(doc))
	if err != nil {
		panic(err)
	}
	return s
}

// ValidateMetadata parses raw as JSON and validates it against
// MetadataSchemaV1. On success the typed metadata is returned with field
// values unchanged; any failure comes back as a CodeInvalidArgument error
// carrying the human-readable reasons.
func ValidateMetadata(raw []byte) (models.CallMetadata, error) {
	const op = "schema.ValidateMetadata"

	var md models.CallMetadata
	if err := validate(metadataSchema, raw, op); err != nil {
		return models.CallMetadata{}, err
	}
	if err := json.Unmarshal(raw, &md); err != nil {
		return models.CallMetadata{}, utils.E(utils.CodeInvalidArgument, op, "invalid metadata", err)
	}
	return md, nil
}

// ValidateAnalysisMessage validates a queue message body against
// AnalysisSchemaV1 and decodes it.
func ValidateAnalysisMessage(raw []byte) (models.AnalysisMessage, error) {
	const op = "schema.ValidateAnalysisMessage"

	var msg models.AnalysisMessage
	if err := validate(analysisSchema, raw, op); err != nil {
		return models.AnalysisMessage{}, err
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return models.AnalysisMessage{}, utils.E(utils.CodeInvalidArgument, op, "invalid analysis message", err)
	}
	return msg, nil
}

func validate(s *gojsonschema.Schema, raw []byte, op string) error {
	if !json.Valid(raw) {
		return utils.E(utils.CodeInvalidArgument, op, "payload is not valid JSON", nil)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return utils.E(utils.CodeInvalidArgument, op, "payload is not valid JSON", err)
	}
	if !res.Valid() {
		reasons := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			reasons = append(reasons, e.String())
		}
		return utils.E(utils.CodeInvalidArgument, op, strings.Join(reasons, "; "), nil)
	}
	return nil
}
