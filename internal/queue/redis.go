package queue

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const payloadField = "payload"

// RedisQueue implements Queue on Redis Streams with a consumer group per
// pipeline, so multiple stage instances share a stream without double
// delivery.
type RedisQueue struct {
	rdb      *redis.Client
	group    string
	consumer string
	block    time.Duration
}

func NewRedisQueue(rdb *redis.Client, group, consumer string) *RedisQueue {
	if group == "" {
		group = "callsight"
	}
	if consumer == "" {
		consumer = "c-1"
	}
	return &RedisQueue{rdb: rdb, group: group, consumer: consumer, block: 5 * time.Second}
}

// EnsureGroup creates the consumer group for stream if it does not exist
// yet. BUSYGROUP from a concurrent creator is not an error.
func (q *RedisQueue) EnsureGroup(ctx context.Context, stream string) error {
	err := q.rdb.XGroupCreateMkStream(ctx, stream, q.group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (q *RedisQueue) Send(ctx context.Context, stream string, body []byte) error {
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{payloadField: string(body)},
	}).Err()
}

func (q *RedisQueue) Receive(ctx context.Context, stream string, max int64) ([]Message, error) {
	res, err := q.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.group,
		Consumer: q.consumer,
		Streams:  []string{stream, ">"},
		Count:    max,
		Block:    q.block,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var out []Message
	for _, sr := range res {
		for _, m := range sr.Messages {
			body, _ := m.Values[payloadField].(string)
			out = append(out, Message{ID: m.ID, Body: []byte(body)})
		}
	}
	return out, nil
}

func (q *RedisQueue) Ack(ctx context.Context, stream string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return q.rdb.XAck(ctx, stream, q.group, ids...).Err()
}
