package transcribe

import (
	"testing"

	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/yoockh/callsight/internal/transcript"
)

func longRunningResponse(words ...*speechpb.WordInfo) *speechpb.LongRunningRecognizeResponse {
	return &speechpb.LongRunningRecognizeResponse{
		Results: []*speechpb.SpeechRecognitionResult{
			{
				Alternatives: []*speechpb.SpeechRecognitionAlternative{
					{Words: words},
				},
			},
		},
	}
}

func TestNormalizeSplitsTrailingPunctuation(t *testing.T) {
	resp := longRunningResponse(
		&speechpb.WordInfo{Word: "Hello,", SpeakerTag: 1},
		&speechpb.WordInfo{Word: "hi", SpeakerTag: 2},
	)

	doc := normalize(resp)
	items := doc.Results.Items
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].SpeakerLabel != "spk_1" || items[0].Alternatives[0].Content != "Hello" {
		t.Fatalf("first item = %+v", items[0])
	}
	if items[1].Type != transcript.ItemTypePunctuation || items[1].Alternatives[0].Content != "," {
		t.Fatalf("punctuation item = %+v", items[1])
	}
	if items[2].SpeakerLabel != "spk_2" || items[2].Alternatives[0].Content != "hi" {
		t.Fatalf("last item = %+v", items[2])
	}
}

func TestNormalizeRendersSpeakerTurns(t *testing.T) {
	resp := longRunningResponse(
		&speechpb.WordInfo{Word: "Hello,", SpeakerTag: 1},
		&speechpb.WordInfo{Word: "Hi", SpeakerTag: 2},
	)

	got := transcript.Render(normalize(resp))
	want := "\nspk_1: Hello, \nspk_2: Hi "
	if got != want {
		t.Fatalf("rendered = %q, want %q", got, want)
	}
}

func TestNormalizeEmptyResponse(t *testing.T) {
	doc := normalize(&speechpb.LongRunningRecognizeResponse{})
	if len(doc.Results.Items) != 0 {
		t.Fatalf("items = %d, want 0", len(doc.Results.Items))
	}
}

func TestEncodingFor(t *testing.T) {
	tests := []struct {
		format  string
		want    speechpb.RecognitionConfig_AudioEncoding
		wantErr bool
	}{
		{"wav", speechpb.RecognitionConfig_LINEAR16, false},
		{"flac", speechpb.RecognitionConfig_FLAC, false},
		{"mp3", speechpb.RecognitionConfig_MP3, false},
		{"ogg", speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, true},
	}

	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			got, err := encodingFor(tc.format)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v", err)
			}
			if got != tc.want {
				t.Fatalf("encoding = %v, want %v", got, tc.want)
			}
		})
	}
}
