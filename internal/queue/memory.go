package queue

import (
	"context"
	"strconv"
	"sync"
)

// MemoryQueue is an in-process Queue used in tests and local runs.
// Received messages stay pending until Ack'd.
type MemoryQueue struct {
	mu      sync.Mutex
	nextID  int
	ready   map[string][]Message
	pending map[string]map[string]Message
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{
		ready:   make(map[string][]Message),
		pending: make(map[string]map[string]Message),
	}
}

func (q *MemoryQueue) Send(ctx context.Context, stream string, body []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	b := make([]byte, len(body))
	copy(b, body)
	q.ready[stream] = append(q.ready[stream], Message{ID: strconv.Itoa(q.nextID), Body: b})
	return nil
}

func (q *MemoryQueue) Receive(ctx context.Context, stream string, max int64) ([]Message, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := int64(len(q.ready[stream]))
	if n == 0 {
		return nil, nil
	}
	if max < n {
		n = max
	}

	out := q.ready[stream][:n]
	q.ready[stream] = q.ready[stream][n:]

	if q.pending[stream] == nil {
		q.pending[stream] = make(map[string]Message)
	}
	for _, m := range out {
		q.pending[stream][m.ID] = m
	}
	return out, nil
}

func (q *MemoryQueue) Ack(ctx context.Context, stream string, ids ...string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, id := range ids {
		delete(q.pending[stream], id)
	}
	return nil
}

// Len reports the number of undelivered messages on stream.
func (q *MemoryQueue) Len(stream string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.ready[stream])
}

// Pending reports the number of delivered-but-unacked messages on stream.
func (q *MemoryQueue) Pending(stream string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending[stream])
}
