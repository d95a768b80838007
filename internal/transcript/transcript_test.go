package transcript

import "testing"

func item(speaker, typ, content string) Item {
	return Item{
		Type:         typ,
		SpeakerLabel: speaker,
		Alternatives: []Alternative{{Content: content}},
	}
}

func TestRenderSpeakerChangeAndPunctuation(t *testing.T) {
	var doc Document
	doc.Results.Items = []Item{
		item("spk0", "pronunciation", "Hello"),
		item("spk0", "punctuation", ","),
		item("spk1", "pronunciation", "Hi"),
	}

	got := Render(doc)
	want := "\nspk0: Hello, \nspk1: Hi "
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name:  "empty document",
			items: nil,
			want:  "",
		},
		{
			name: "single speaker run",
			items: []Item{
				item("spk0", "pronunciation", "How"),
				item("spk0", "pronunciation", "are"),
				item("spk0", "pronunciation", "you"),
				item("", "punctuation", "?"),
			},
			want: "\nspk0: How are you? ",
		},
		{
			name: "speaker returns after the other",
			items: []Item{
				item("spk0", "pronunciation", "Hi"),
				item("spk1", "pronunciation", "Hello"),
				item("spk0", "pronunciation", "Bye"),
			},
			want: "\nspk0: Hi \nspk1: Hello \nspk0: Bye ",
		},
		{
			name: "unlabeled punctuation keeps current speaker",
			items: []Item{
				item("spk0", "pronunciation", "Sure"),
				item("", "punctuation", "."),
				item("spk0", "pronunciation", "Thanks"),
			},
			want: "\nspk0: Sure. Thanks ",
		},
		{
			name: "item without alternatives is skipped",
			items: []Item{
				item("spk0", "pronunciation", "Hey"),
				{Type: "pronunciation", SpeakerLabel: "spk1"},
			},
			want: "\nspk0: Hey ",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var doc Document
			doc.Results.Items = tc.items
			if got := Render(doc); got != tc.want {
				t.Fatalf("Render = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	raw := []byte(`{"results":{"items":[
		{"type":"pronunciation","speaker_label":"spk_0","alternatives":[{"confidence":"0.99","content":"Hello"}]},
		{"type":"punctuation","alternatives":[{"content":"."}]}
	]}}`)

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Results.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(doc.Results.Items))
	}
	if doc.Results.Items[0].SpeakerLabel != "spk_0" {
		t.Fatalf("speaker = %q", doc.Results.Items[0].SpeakerLabel)
	}

	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}
