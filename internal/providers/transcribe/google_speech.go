package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/transcript"
)

// GoogleSpeech runs diarized long-running recognition jobs and writes the
// normalized word-level transcript document to the blob store before
// emitting a completion event. A job that fails after acceptance emits
// nothing; absence of the event is the failure signal downstream.
type GoogleSpeech struct {
	c      *speech.Client
	blobs  storage.BlobStore
	bucket string
	log    *logrus.Logger
	events chan JobEvent
}

func NewGoogleSpeech(ctx context.Context, blobs storage.BlobStore, bucket string, log *logrus.Logger) (*GoogleSpeech, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
	}
	return &GoogleSpeech{
		c:      c,
		blobs:  blobs,
		bucket: bucket,
		log:    log,
		events: make(chan JobEvent, 16),
	}, nil
}

func (g *GoogleSpeech) Close() error {
	close(g.events)
	return g.c.Close()
}

func (g *GoogleSpeech) Events() <-chan JobEvent { return g.events }

func (g *GoogleSpeech) StartJob(ctx context.Context, in StartJobInput) error {
	enc, err := encodingFor(in.MediaFormat)
	if err != nil {
		return err
	}

	op, err := g.c.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   enc,
			LanguageCode:               LanguageCode,
			EnableAutomaticPunctuation: true,
			DiarizationConfig: &speechpb.SpeakerDiarizationConfig{
				EnableSpeakerDiarization: true,
				MaxSpeakerCount:          MaxSpeakers,
			},
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Uri{
				Uri: fmt.Sprintf("gs://%s/%s", g.bucket, in.MediaKey),
			},
		},
	})
	if err != nil {
		return err
	}

	go g.await(op, in)
	return nil
}

// await runs detached from the initiating request; the job outlives the
// dispatch invocation.
func (g *GoogleSpeech) await(op *speech.LongRunningRecognizeOperation, in StartJobInput) {
	ctx := context.Background()
	log := g.log.WithFields(logrus.Fields{"job_name": in.JobName, "output_key": in.OutputKey})

	resp, err := op.Wait(ctx)
	if err != nil {
		log.WithError(err).Error("transcription job failed")
		return
	}

	doc := normalize(resp)
	raw, err := json.Marshal(doc)
	if err != nil {
		log.WithError(err).Error("failed to encode transcript document")
		return
	}
	if err := g.blobs.Put(ctx, in.OutputKey, "application/json", bytes.NewReader(raw)); err != nil {
		log.WithError(err).Error("failed to store transcript document")
		return
	}

	log.Info("transcription job completed")
	g.events <- JobEvent{JobName: in.JobName, TranscriptKey: in.OutputKey}
}

// normalize flattens the diarized recognition response into the word-item
// transcript document. Diarized words arrive on the final result; trailing
// punctuation is split into its own item so rendering can attach it
// without a space.
func normalize(resp *speechpb.LongRunningRecognizeResponse) transcript.Document {
	var doc transcript.Document
	if len(resp.GetResults()) == 0 {
		return doc
	}

	last := resp.GetResults()[len(resp.GetResults())-1]
	if len(last.GetAlternatives()) == 0 {
		return doc
	}

	for _, w := range last.GetAlternatives()[0].GetWords() {
		word := w.GetWord()
		label := "spk_" + strconv.Itoa(int(w.GetSpeakerTag()))

		trimmed := strings.TrimRight(word, ".,?!")
		doc.Results.Items = append(doc.Results.Items, transcript.Item{
			Type:         "pronunciation",
			SpeakerLabel: label,
			Alternatives: []transcript.Alternative{{Content: trimmed}},
		})
		if punct := word[len(trimmed):]; punct != "" {
			doc.Results.Items = append(doc.Results.Items, transcript.Item{
				Type:         transcript.ItemTypePunctuation,
				Alternatives: []transcript.Alternative{{Content: punct}},
			})
		}
	}
	return doc
}

func encodingFor(format string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch format {
	case "wav":
		return speechpb.RecognitionConfig_LINEAR16, nil
	case "flac":
		return speechpb.RecognitionConfig_FLAC, nil
	case "mp3":
		return speechpb.RecognitionConfig_MP3, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio format %q", format)
	}
}
