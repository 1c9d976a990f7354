package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	channelPrefix  = "shearbook:changes:"
	reconnectDelay = 5 * time.Second
)

// Change is one entity mutation broadcast to listeners. Consumers are
// expected to reload the affected list rather than patch incrementally.
type Change struct {
	Entity   string `json:"entity"`
	Action   string `json:"action"` // created | updated | deleted
	EntityID uint   `json:"entity_id"`
	ShopID   uint   `json:"shop_id"`
}

// Notifier fans entity changes out over redis pub/sub. Publishing is
// fire-and-forget through a buffered queue; a full queue drops the
// change, it never fails the request that produced it. A nil redis
// client turns the notifier into a no-op.
type Notifier struct {
	rdb   *redis.Client
	queue chan Change
}

func NewNotifier(rdb *redis.Client) *Notifier {
	n := &Notifier{
		rdb:   rdb,
		queue: make(chan Change, 256),
	}

	if rdb != nil {
		go n.worker()
	}
	return n
}

func (n *Notifier) worker() {
	ctx := context.Background()

	for ch := range n.queue {
		payload, err := json.Marshal(ch)
		if err != nil {
			continue
		}

		channel := channelPrefix + ch.Entity
		if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
			log.Printf("realtime publish failed on %s: %v", channel, err)
		}
	}
}

func (n *Notifier) Publish(ch Change) {
	if n.rdb == nil {
		return
	}

	select {
	case n.queue <- ch:
	default:
		log.Println("realtime queue full, dropping change")
	}
}

// Subscribe consumes changes for one entity, invoking handler per
// message. On subscription failure it reconnects after a fixed delay;
// this is the only automatic retry in the system.
func Subscribe(ctx context.Context, rdb *redis.Client, entity string, handler func(Change)) {
	channel := channelPrefix + entity

	go func() {
		for {
			if ctx.Err() != nil {
				return
			}

			sub := rdb.Subscribe(ctx, channel)
			for msg := range sub.Channel() {
				var ch Change
				if err := json.Unmarshal([]byte(msg.Payload), &ch); err != nil {
					continue
				}
				handler(ch)
			}
			_ = sub.Close()

			log.Printf("realtime subscription to %s lost, reconnecting in %s", channel, reconnectDelay)
			time.Sleep(reconnectDelay)
		}
	}()
}

// EntityChannel names the redis channel carrying changes for an entity;
// exported for external consumers wiring their own clients.
func EntityChannel(entity string) string {
	return fmt.Sprintf("%s%s", channelPrefix, entity)
}
