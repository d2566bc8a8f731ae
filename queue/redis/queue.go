package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcelsud/approval-relay/delivery"
)

/* Redis Streams implementation of the job queue
 * One stream with a consumer group gives at-least-once handoff to the
 * delivery workers: entries are acknowledged only after the attempt ran
 */

const (
	streamKey    = "jobs:webhook"      // Single stream for delivery jobs
	groupName    = "delivery-workers"  // Consumer group shared by all workers
	consumerName = "worker"            // Consumer name (can be made dynamic for multiple workers)
)

type Queue struct {
	client *redis.Client
}

// NewQueue creates a new Redis-backed job queue
func NewQueue(addr, password string, db int) (*Queue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Queue{
		client: client,
	}, nil
}

// Enqueue adds one delivery job to the stream
// The call returns once Redis accepted the entry; the caller gets no
// execution result and no ordering guarantee
func (q *Queue) Enqueue(ctx context.Context, task string, job delivery.Job) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validating job: %w", err)
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling job: %w", err)
	}

	_, err = q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamKey,
		Values: map[string]interface{}{
			"task":   task,
			"job_id": job.ID,
			"job":    data,
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("adding to stream: %w", err)
	}

	return nil
}

// Message is one consumed stream entry awaiting acknowledgment
type Message struct {
	ID   string
	Task string
	Job  delivery.Job
}

// Consume reads pending jobs from the stream via the consumer group
// Returns an empty slice when no job arrived within the block window
func (q *Queue) Consume(ctx context.Context) ([]Message, error) {
	// Create consumer group if it doesn't exist
	q.client.XGroupCreateMkStream(ctx, streamKey, groupName, "0")
	// Ignore error if group already exists

	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamKey, ">"},
		Count:    1,
		Block:    1 * time.Second,
	}).Result()
	if err == redis.Nil {
		// No messages available
		return []Message{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return []Message{}, nil
	}

	var messages []Message
	for _, msg := range streams[0].Messages {
		task, _ := msg.Values["task"].(string)
		raw, ok := msg.Values["job"].(string)
		if !ok {
			// Malformed entry: ack it away instead of redelivering forever
			q.Acknowledge(ctx, msg.ID)
			continue
		}

		var job delivery.Job
		if err := json.Unmarshal([]byte(raw), &job); err != nil {
			q.Acknowledge(ctx, msg.ID)
			continue
		}

		messages = append(messages, Message{
			ID:   msg.ID,
			Task: task,
			Job:  job,
		})
	}

	return messages, nil
}

// Acknowledge removes a consumed entry from the group's pending list
func (q *Queue) Acknowledge(ctx context.Context, messageID string) error {
	if err := q.client.XAck(ctx, streamKey, groupName, messageID).Err(); err != nil {
		return fmt.Errorf("acknowledging message: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (q *Queue) Close(_ context.Context) error {
	return q.client.Close()
}
