// Package transcript parses the word-level transcript documents the
// transcription engine writes to the blob store and reconstructs them
// into speaker-labeled text.
package transcript

import (
	"encoding/json"
	"strings"

	"github.com/yoockh/callsight/internal/utils"
)

// ItemTypePunctuation marks items that attach to the preceding word
// without a space.
const ItemTypePunctuation = "punctuation"

// Document is the stored transcript artifact: word-level items in
// document order, each optionally carrying a speaker label.
type Document struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts,omitempty"`
		Items []Item `json:"items"`
	} `json:"results"`
}

type Item struct {
	Type         string        `json:"type"`
	SpeakerLabel string        `json:"speaker_label,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
}

type Alternative struct {
	Confidence string `json:"confidence,omitempty"`
	Content    string `json:"content"`
}

// Parse decodes a raw transcript document.
func Parse(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, utils.E(utils.CodeInvalidArgument, "transcript.Parse", "malformed transcript document", err)
	}
	return doc, nil
}

// Render walks the items in order and rebuilds a single speaker-labeled
// transcript. A speaker change emits a newline plus the new label and a
// colon; punctuation attaches without a preceding space; every item is
// followed by a single trailing space.
func Render(doc Document) string {
	var out string
	var current string

	for _, item := range doc.Results.Items {
		if len(item.Alternatives) == 0 {
			continue
		}
		content := item.Alternatives[0].Content

		if item.SpeakerLabel != "" && item.SpeakerLabel != current {
			current = item.SpeakerLabel
			out += "\n" + current + ": "
		}

		if item.Type == ItemTypePunctuation {
			out = strings.TrimRight(out, " \t\n")
		}

		out += content + " "
	}

	return out
}
