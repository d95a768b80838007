// Package queue is the message transport between pipeline stages.
package queue

import "context"

// Message is one received queue entry. ID is the transport-level handle
// used for acknowledgment.
type Message struct {
	ID   string
	Body []byte
}

// Queue provides send/receive-once semantics per named stream. Receive
// returns at most max messages and may return none; a message stays
// pending until Ack'd, so an unacked message is redelivered by the
// transport.
type Queue interface {
	Send(ctx context.Context, stream string, body []byte) error
	Receive(ctx context.Context, stream string, max int64) ([]Message, error)
	Ack(ctx context.Context, stream string, ids ...string) error
}
