package docstore

import (
	"context"
	"encoding/json"
)

// Snapshot is a full-collection replacement delivered to subscribers. It is
// never an incremental delta.
type Snapshot struct {
	Collection string
	Docs       map[string]json.RawMessage
}

// Subscription is a live feed over one collection: the current snapshot is
// delivered immediately, then a fresh full snapshot after every remote change
// notification.
type Subscription struct {
	snapshots chan Snapshot
	errs      chan error
	cancel    context.CancelFunc
	done      chan struct{}
}

// Snapshots delivers full-collection states. The channel is closed on Close
// or context cancellation.
func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Errs delivers classified subscription errors. The feed keeps running after
// an error; callers decide whether to fall back.
func (s *Subscription) Errs() <-chan error {
	return s.errs
}

// Close tears down the feed and waits for the pump goroutine to exit.
func (s *Subscription) Close() error {
	if s == nil {
		return nil
	}
	s.cancel()
	<-s.done
	return nil
}

// Subscribe opens a live subscription on the collection. The returned error
// is classified; a permission denial here means the whole feed is off-limits.
func (c *Client) Subscribe(ctx context.Context, collection string) (*Subscription, error) {
	if c == nil || c.raw == nil {
		return nil, classifyUnavailable()
	}

	subCtx, cancel := context.WithCancel(ctx)
	pubsub := c.raw.Subscribe(subCtx, c.changeChannel(collection))
	if _, err := pubsub.Receive(subCtx); err != nil {
		cancel()
		_ = pubsub.Close()
		return nil, classify(err, "subscribe collection")
	}

	sub := &Subscription{
		snapshots: make(chan Snapshot, 1),
		errs:      make(chan error, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.snapshots)
		defer func() { _ = pubsub.Close() }()

		sub.deliver(subCtx, c, collection)

		changes := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				sub.deliver(subCtx, c, collection)
			}
		}
	}()

	return sub, nil
}

func (s *Subscription) deliver(ctx context.Context, c *Client, collection string) {
	docs, err := c.Snapshot(ctx, collection)
	if err != nil {
		select {
		case s.errs <- err:
		default:
		}
		return
	}
	select {
	case s.snapshots <- Snapshot{Collection: collection, Docs: docs}:
	case <-ctx.Done():
	}
}

func classifyUnavailable() error {
	return classify(errNotConnected, "subscribe collection")
}
