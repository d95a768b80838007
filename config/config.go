package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries everything the pipeline needs from the environment.
type Config struct {
	Port string

	Bucket      string // audio/, transcription/ and template keys share it
	TemplateKey string

	MongoDB string

	TranscriptionStream string
	SummaryStream       string
	QueueGroup          string

	VertexProject  string
	VertexLocation string
	VertexModel    string

	TranscriptionWorkers int
	OutputPollInterval   time.Duration
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		Bucket:      getenv("BUCKET_NAME", "callsight"),
		TemplateKey: getenv("TEMPLATE_KEY", "template.txt"),

		MongoDB: getenv("MONGO_DB", "callsight"),

		TranscriptionStream: getenv("TRANSCRIPTION_STREAM", "transcriptions"),
		SummaryStream:       getenv("SUMMARY_STREAM", "summaries"),
		QueueGroup:          getenv("QUEUE_GROUP", "callsight"),

		VertexProject:  os.Getenv("VERTEX_PROJECT"),
		VertexLocation: getenv("VERTEX_LOCATION", "us-central1"),
		VertexModel:    getenv("VERTEX_MODEL", "gemini-1.5-flash"),

		TranscriptionWorkers: getint("TRANSCRIPTION_WORKERS", 4),
		OutputPollInterval:   getduration("OUTPUT_POLL_INTERVAL", 5*time.Second),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
