package transcribe

import "context"

// Fixed transcription settings. Calls are customer-agent dialogs, so two
// speakers is a domain constraint, not a knob.
const (
	LanguageCode = "en-US"
	MaxSpeakers  = 2
)

// StartJobInput addresses one transcription job. JobName doubles as the
// interaction_id so the completion event can be joined back.
type StartJobInput struct {
	JobName     string
	MediaKey    string
	MediaFormat string // wav|mp3|flac
	OutputKey   string
}

// JobEvent signals that a job finished and its transcript document is
// available at TranscriptKey.
type JobEvent struct {
	JobName       string
	TranscriptKey string
}

// Engine starts long-running transcription jobs. StartJob returns an
// error only when the engine rejects the job up front; completion (or
// silent failure) is reported asynchronously through Events.
type Engine interface {
	StartJob(ctx context.Context, in StartJobInput) error
	Events() <-chan JobEvent
	Close() error
}
