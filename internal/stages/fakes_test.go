package stages

import (
	"context"
	"errors"
	"io"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/providers/transcribe"
	"github.com/yoockh/callsight/internal/queue"
	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/utils"
)

// fakeInteractionRepo records writes and serves rows from a map.
type fakeInteractionRepo struct {
	rows      map[string]*models.Interaction
	created   []*models.Interaction
	statuses  []models.Status
	createErr error
	getErr    error
	statusErr error
	order     *[]string
}

func newFakeInteractionRepo() *fakeInteractionRepo {
	return &fakeInteractionRepo{rows: make(map[string]*models.Interaction)}
}

func (r *fakeInteractionRepo) Create(ctx context.Context, it *models.Interaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	if r.order != nil {
		*r.order = append(*r.order, "row")
	}
	r.created = append(r.created, it)
	r.rows[it.InteractionID] = it
	return nil
}

func (r *fakeInteractionRepo) GetByInteractionID(ctx context.Context, id string) (*models.Interaction, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	it, ok := r.rows[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return it, nil
}

func (r *fakeInteractionRepo) SetStatus(ctx context.Context, id string, status models.Status) error {
	if r.statusErr != nil {
		return r.statusErr
	}
	r.statuses = append(r.statuses, status)
	if it, ok := r.rows[id]; ok {
		it.Status = status
	}
	return nil
}

// fakeAnalysisRepo records inserts.
type fakeAnalysisRepo struct {
	inserted  []*models.InteractionAnalysis
	insertErr error
}

func (r *fakeAnalysisRepo) Insert(ctx context.Context, a *models.InteractionAnalysis) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, a)
	return nil
}

func (r *fakeAnalysisRepo) GetByInteractionID(ctx context.Context, id string) (*models.InteractionAnalysis, error) {
	for _, a := range r.inserted {
		if a.InteractionID == id {
			return a, nil
		}
	}
	return nil, utils.ErrNotFound
}

// fakeEngine records start calls and optionally rejects them.
type fakeEngine struct {
	started  []transcribe.StartJobInput
	startErr error
	events   chan transcribe.JobEvent
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{events: make(chan transcribe.JobEvent, 1)}
}

func (e *fakeEngine) StartJob(ctx context.Context, in transcribe.StartJobInput) error {
	if e.startErr != nil {
		return e.startErr
	}
	e.started = append(e.started, in)
	return nil
}

func (e *fakeEngine) Events() <-chan transcribe.JobEvent { return e.events }
func (e *fakeEngine) Close() error                       { return nil }

// fakeSummarizer returns a canned summary and records the prompt.
type fakeSummarizer struct {
	prompt  string
	summary string
	err     error
}

func (s *fakeSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.prompt = prompt
	return s.summary, nil
}

func (s *fakeSummarizer) Close() error { return nil }

// orderedBlobStore wraps a store and appends to a shared side-effect log.
type orderedBlobStore struct {
	inner storage.BlobStore
	order *[]string
	err   error
}

func (s *orderedBlobStore) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	if s.err != nil {
		return s.err
	}
	*s.order = append(*s.order, "blob")
	return s.inner.Put(ctx, key, contentType, r)
}

func (s *orderedBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.inner.Get(ctx, key)
}

// orderedQueue wraps a queue so sends land in the side-effect log too.
type orderedQueue struct {
	inner   queue.Queue
	order   *[]string
	sendErr error
}

func (q *orderedQueue) Send(ctx context.Context, stream string, body []byte) error {
	if q.sendErr != nil {
		return q.sendErr
	}
	*q.order = append(*q.order, "queue")
	return q.inner.Send(ctx, stream, body)
}

func (q *orderedQueue) Receive(ctx context.Context, stream string, max int64) ([]queue.Message, error) {
	return q.inner.Receive(ctx, stream, max)
}

func (q *orderedQueue) Ack(ctx context.Context, stream string, ids ...string) error {
	return q.inner.Ack(ctx, stream, ids...)
}

var errBoom = errors.New("boom")
