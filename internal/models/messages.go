package models

// Queue payloads. Both carry interaction_id as the foreign key joining the
// blob store, the interactions collection, and the analytics table.

// TranscriptionRequest travels from the ingest stage to the transcription
// dispatch consumer.
type TranscriptionRequest struct {
	InteractionID string `json:"interaction_id"`
	AudioFileKey  string `json:"audio_file_key"`
	AudioFormat   string `json:"audio_format"`
}

// SummaryResult is what the extraction stage produces. Note this is a
// narrower shape than AnalysisMessage; the output stage validates against
// the analysis schema and the enrichment producer owns the gap.
type SummaryResult struct {
	InteractionID string `json:"interaction_id"`
	Summary       string `json:"summary"`
}
