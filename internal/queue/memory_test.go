package queue

import (
	"context"
	"testing"
)

func TestMemoryQueueSendReceiveAck(t *testing.T) {
	q := NewMemoryQueue()
	ctx := context.Background()

	if err := q.Send(ctx, "s", []byte("a")); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := q.Send(ctx, "s", []byte("b")); err != nil {
		t.Fatalf("send: %v", err)
	}

	msgs, err := q.Receive(ctx, "s", 1)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(msgs) != 1 || string(msgs[0].Body) != "a" {
		t.Fatalf("receive = %+v", msgs)
	}
	if q.Len("s") != 1 || q.Pending("s") != 1 {
		t.Fatalf("len=%d pending=%d", q.Len("s"), q.Pending("s"))
	}

	if err := q.Ack(ctx, "s", msgs[0].ID); err != nil {
		t.Fatalf("ack: %v", err)
	}
	if q.Pending("s") != 0 {
		t.Fatalf("pending = %d after ack", q.Pending("s"))
	}
}

func TestMemoryQueueReceiveEmpty(t *testing.T) {
	q := NewMemoryQueue()
	msgs, err := q.Receive(context.Background(), "empty", 1)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(msgs))
	}
}
