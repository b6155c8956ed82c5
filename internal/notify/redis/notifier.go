package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"CourseForge/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Notifier publishes toast notifications to a per-course Redis channel so
// any connected editor UI can surface them. Publishing is fire-and-forget;
// a failed publish is logged and swallowed.
type Notifier struct {
	log     logger.Log
	client  *redis.Client
	channel string
}

type message struct {
	CourseID string `json:"course_id"`
	Message  string `json:"message"`
	Kind     string `json:"kind"`
}

func NewNotifier(log logger.Log, address, password string, db int, channel string) (*Notifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Notifier{log: log, client: client, channel: channel}, nil
}

func (n *Notifier) Notify(ctx context.Context, courseID uuid.UUID, text, kind string) {
	payload, err := json.Marshal(message{
		CourseID: courseID.String(),
		Message:  text,
		Kind:     kind,
	})
	if err != nil {
		n.log.ErrorErr("failed to marshal notification", err)
		return
	}
	channel := fmt.Sprintf("%s:%s", n.channel, courseID)
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		n.log.ErrorErr("failed to publish notification", err, "channel", channel)
	}
}

func (n *Notifier) Close() error {
	return n.client.Close()
}
