// Package docstore is the client for the remote document store backing the
// marketplace. Collections are hashes of JSON documents keyed by opaque ids,
// and every successful write publishes a change notification so live
// subscribers re-read the full collection.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/assoumso/au-djassa/pkg/config"
	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
	"github.com/assoumso/au-djassa/pkg/logger"
)

const keyNamespace = "djassa"

var errNotConnected = errors.New("remote store not connected")

// Collection names as persisted remotely. Suppliers and orders keep the
// legacy French collection names.
const (
	CollectionProducts  = "products"
	CollectionSuppliers = "Fournisseurs"
	CollectionOrders    = "Commandes"
)

type cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Client wraps the remote store connection used by the sync engine.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// New connects to the remote store and verifies the anonymous session. A
// classified error is returned so callers can decide to degrade to local mode.
func New(ctx context.Context, cfg config.RedisConfig, logg *logger.Logger) (*Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, classify(err, "ping remote store")
	}
	return &Client{store: raw, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("remote store url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing remote store url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// Create stores doc under a freshly generated id and returns that id.
func (c *Client) Create(ctx context.Context, collection string, doc any) (string, error) {
	id := uuid.NewString()
	if err := c.Set(ctx, collection, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// Set stores doc under a caller-chosen id, replacing any previous version.
func (c *Client) Set(ctx context.Context, collection, id string, doc any) error {
	if c == nil || c.store == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "remote store not connected")
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode document")
	}
	if err := c.store.HSet(ctx, c.collectionKey(collection), id, payload).Err(); err != nil {
		return classify(err, "write document")
	}
	c.notify(ctx, collection)
	return nil
}

// Update performs a partial field merge on the stored document.
func (c *Client) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if c == nil || c.store == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "remote store not connected")
	}
	raw, err := c.store.HGet(ctx, c.collectionKey(collection), id).Result()
	if err != nil {
		return classify(err, "read document")
	}
	doc := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode document")
	}
	for k, v := range fields {
		doc[k] = v
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode document")
	}
	if err := c.store.HSet(ctx, c.collectionKey(collection), id, payload).Err(); err != nil {
		return classify(err, "write document")
	}
	c.notify(ctx, collection)
	return nil
}

// Delete removes the document with the given id.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if c == nil || c.store == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "remote store not connected")
	}
	if err := c.store.HDel(ctx, c.collectionKey(collection), id).Err(); err != nil {
		return classify(err, "delete document")
	}
	c.notify(ctx, collection)
	return nil
}

// Snapshot returns every document of the collection keyed by id.
func (c *Client) Snapshot(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	if c == nil || c.store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "remote store not connected")
	}
	rows, err := c.store.HGetAll(ctx, c.collectionKey(collection)).Result()
	if err != nil {
		return nil, classify(err, "read collection")
	}
	docs := make(map[string]json.RawMessage, len(rows))
	for id, raw := range rows {
		docs[id] = json.RawMessage(raw)
	}
	return docs, nil
}

// Ping verifies the connection.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("remote store not connected")
	}
	return c.store.Ping(ctx).Err()
}

// Close shuts down the underlying connection if available.
func (c *Client) Close() error {
	if c == nil || c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// notify is best-effort: a missed notification only delays convergence until
// the next change on the collection.
func (c *Client) notify(ctx context.Context, collection string) {
	_ = c.store.Publish(ctx, c.changeChannel(collection), "changed").Err()
}

func (c *Client) collectionKey(collection string) string {
	return keyNamespace + ":collection:" + collection
}

func (c *Client) changeChannel(collection string) string {
	return keyNamespace + ":changes:" + collection
}

// classify maps raw store errors onto the structured error kinds the sync
// engine branches on. ACL denials (NOPERM/NOAUTH/WRONGPASS) play the role of
// the managed store's permission-denied responses; message inspection happens
// only here, at the storage boundary.
func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, op)
	}
	msg := err.Error()
	if strings.Contains(msg, "NOPERM") || strings.Contains(msg, "NOAUTH") || strings.Contains(msg, "WRONGPASS") {
		return pkgerrors.Wrap(pkgerrors.CodePermissionDenied, err, op)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
