package storage

import "fmt"

// Blob key layout. interaction_id is the join key across namespaces.

func AudioKey(interactionID, audioFormat string) string {
	return fmt.Sprintf("audio/%s.%s", interactionID, audioFormat)
}

func TranscriptKey(interactionID string) string {
	return fmt.Sprintf("transcription/%s.json", interactionID)
}
