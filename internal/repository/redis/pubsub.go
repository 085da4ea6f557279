package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/studiodesk/studiodesk/internal/notify"
)

// NotificationsPubSub publishes user notifications to a per-user Redis
// channel so connected front ends can display them. Delivery is fire
// and forget; a failed publish is dropped.
type NotificationsPubSub struct {
	rdb *redis.Client
}

func NewNotificationsPubSub(rdb *redis.Client) *NotificationsPubSub {
	return &NotificationsPubSub{rdb: rdb}
}

type notificationMsg struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	TsUnix      int64  `json:"ts_unix"`
}

func (p *NotificationsPubSub) Notify(ctx context.Context, userID uuid.UUID, n notify.Notification) {
	msg := notificationMsg{
		Title:       n.Title,
		Description: n.Description,
		Severity:    string(n.Severity),
		TsUnix:      time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	_ = p.rdb.Publish(ctx, ChannelUserNotifications(userID), b).Err()
}

// Subscribe streams a user's notifications until ctx is cancelled.
func (p *NotificationsPubSub) Subscribe(
	ctx context.Context,
	userID uuid.UUID,
	handler func(ctx context.Context, n notify.Notification),
) error {
	sub := p.rdb.Subscribe(ctx, ChannelUserNotifications(userID))
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var msg notificationMsg
			if err := json.Unmarshal([]byte(m.Payload), &msg); err == nil {
				handler(ctx, notify.Notification{
					Title:       msg.Title,
					Description: msg.Description,
					Severity:    notify.Severity(msg.Severity),
				})
			}
		}
	}
}
