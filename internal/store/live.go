// Package store adapts the Postgres repositories and Redis pub/sub into the
// generic real-time document store the forum engine consumes: point
// reads/writes live in the repositories, while Live turns per-collection
// change notifications into full-snapshot subscriptions.
package store

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// MaxInValues is the upstream bound on equality-IN live filters: a snapshot
// query may match on at most this many ids at once.
const MaxInValues = 10

// FetchFunc re-runs a subscription's equality query and returns the full
// matching snapshot.
type FetchFunc func() (interface{}, error)

// Live delivers live-query snapshots. Every mutation on a logical collection
// publishes on that collection's channel; each subscriber then re-fetches and
// receives the complete matching set, not a diff.
type Live struct {
	client *redis.Client
	ctx    context.Context
	prefix string
}

// NewLive connects to Redis and verifies the connection
func NewLive(addr, password string, db int) (*Live, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Live{client: client, ctx: ctx, prefix: "forum:"}, nil
}

// NewLiveWithClient wraps an existing Redis client (used by tests)
func NewLiveWithClient(client *redis.Client) *Live {
	return &Live{client: client, ctx: context.Background(), prefix: "forum:"}
}

// Close closes the Redis connection
func (l *Live) Close() error {
	return l.client.Close()
}

func (l *Live) channel(collection string) string {
	return l.prefix + collection
}

// MessagesChannel names the change channel for one context's message set
func MessagesChannel(forumContext string) string {
	return "messages:" + forumContext
}

// ReactionsChannel names the change channel for one context's reaction set
func ReactionsChannel(forumContext string) string {
	return "reactions:" + forumContext
}

// NotifyChanged publishes a change notification for a collection. Callers
// invoke it after every successful write so live queries re-deliver.
func (l *Live) NotifyChanged(collection string) error {
	if err := l.client.Publish(l.ctx, l.channel(collection), "changed").Err(); err != nil {
		return fmt.Errorf("failed to publish change: %w", err)
	}
	return nil
}

// Subscription is a cancelable live query. Updates carries one full snapshot
// per delivery; Cancel stops delivery and closes the channel.
type Subscription struct {
	updates chan interface{}
	cancel  context.CancelFunc
}

// Updates returns the snapshot channel. It is closed after Cancel.
func (s *Subscription) Updates() <-chan interface{} {
	return s.updates
}

// Cancel stops the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.cancel()
}

// Subscribe opens a live query on a collection. The initial snapshot is
// fetched synchronously (so a broken query surfaces immediately) and
// delivered as the first update; afterwards every change notification
// triggers a re-fetch. Fetch errors after the first are logged; the previous
// snapshot stays current.
func (l *Live) Subscribe(collection string, fetch FetchFunc) (*Subscription, error) {
	first, err := fetch()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch initial snapshot: %w", err)
	}

	ctx, cancel := context.WithCancel(l.ctx)
	pubsub := l.client.Subscribe(ctx, l.channel(collection))

	sub := &Subscription{
		updates: make(chan interface{}, 1),
		cancel:  cancel,
	}
	sub.updates <- first

	go func() {
		defer close(sub.updates)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				snapshot, err := fetch()
				if err != nil {
					log.Printf("live query refetch failed on %s: %v", collection, err)
					continue
				}
				select {
				case sub.updates <- snapshot:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return sub, nil
}
