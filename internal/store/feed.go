package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// changeChannelPrefix namespaces the per-collection pub/sub channels, e.g.
// "sudepo.changes.orders".
const changeChannelPrefix = "sudepo.changes."

type feedEnvelope struct {
	Kind ChangeKind      `json:"kind"`
	Row  json.RawMessage `json:"row"`
}

// RedisFeed carries change events over redis pub/sub, one channel per
// collection. Every subscriber receives every event, including echoes of
// its own writes; the store's id dedupe makes those echoes harmless.
type RedisFeed struct {
	client *redis.Client
}

// NewRedisFeed wraps a redis client as a change feed.
func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

// Publish sends a change event on the collection's channel.
func (f *RedisFeed) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(feedEnvelope{Kind: change.Kind, Row: change.Row})
	if err != nil {
		return fmt.Errorf("feed: marshal: %w", err)
	}
	channel := changeChannelPrefix + change.Collection
	if err := f.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("feed: publish %s: %w", channel, err)
	}
	return nil
}

// Subscribe listens on every collection channel until ctx is cancelled.
func (f *RedisFeed) Subscribe(ctx context.Context) (<-chan Change, error) {
	pubsub := f.client.PSubscribe(ctx, changeChannelPrefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("feed: subscribe: %w", err)
	}

	out := make(chan Change, 64)
	go func() {
		defer close(out)
		defer func() { _ = pubsub.Close() }()
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var envelope feedEnvelope
				if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
					continue
				}
				change := Change{
					Collection: strings.TrimPrefix(msg.Channel, changeChannelPrefix),
					Kind:       envelope.Kind,
					Row:        envelope.Row,
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
