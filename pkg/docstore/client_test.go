package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"

	pkgerrors "github.com/assoumso/au-djassa/pkg/errors"
)

type fakeStore struct {
	hashes    map[string]map[string]string
	writeErr  error
	readErr   error
	published []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{hashes: map[string]map[string]string{}}
}

func (f *fakeStore) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeStore) HSet(ctx context.Context, key string, values ...any) *redis.IntCmd {
	if f.writeErr != nil {
		return redis.NewIntResult(0, f.writeErr)
	}
	bucket, ok := f.hashes[key]
	if !ok {
		bucket = map[string]string{}
		f.hashes[key] = bucket
	}
	for i := 0; i+1 < len(values); i += 2 {
		field := values[i].(string)
		switch v := values[i+1].(type) {
		case []byte:
			bucket[field] = string(v)
		case string:
			bucket[field] = v
		}
	}
	return redis.NewIntResult(1, nil)
}

func (f *fakeStore) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	if f.readErr != nil {
		return redis.NewStringResult("", f.readErr)
	}
	if bucket, ok := f.hashes[key]; ok {
		if raw, ok := bucket[field]; ok {
			return redis.NewStringResult(raw, nil)
		}
	}
	return redis.NewStringResult("", redis.Nil)
}

func (f *fakeStore) HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd {
	if f.readErr != nil {
		return redis.NewMapStringStringResult(nil, f.readErr)
	}
	return redis.NewMapStringStringResult(f.hashes[key], nil)
}

func (f *fakeStore) HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd {
	if f.writeErr != nil {
		return redis.NewIntResult(0, f.writeErr)
	}
	bucket := f.hashes[key]
	for _, field := range fields {
		delete(bucket, field)
	}
	return redis.NewIntResult(int64(len(fields)), nil)
}

func (f *fakeStore) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	f.published = append(f.published, channel)
	return redis.NewIntResult(1, nil)
}

func newTestClient(store cmdable) *Client {
	return &Client{store: store}
}

func TestCreateAssignsIDAndNotifies(t *testing.T) {
	fake := newFakeStore()
	client := newTestClient(fake)

	id, err := client.Create(context.Background(), CollectionProducts, map[string]any{"name": "Cacao"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	docs, err := client.Snapshot(context.Background(), CollectionProducts)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, ok := docs[id]; !ok {
		t.Fatalf("expected document %s in snapshot", id)
	}
	if len(fake.published) != 1 {
		t.Fatalf("expected one change notification, got %d", len(fake.published))
	}
}

func TestUpdateMergesFields(t *testing.T) {
	fake := newFakeStore()
	client := newTestClient(fake)

	if err := client.Set(context.Background(), CollectionProducts, "p1", map[string]any{
		"name":       "Cacao",
		"price":      1000,
		"isPromoted": false,
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	if err := client.Update(context.Background(), CollectionProducts, "p1", map[string]any{
		"isPromoted": true,
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	docs, err := client.Snapshot(context.Background(), CollectionProducts)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var doc struct {
		Name       string `json:"name"`
		Price      int    `json:"price"`
		IsPromoted bool   `json:"isPromoted"`
	}
	if err := json.Unmarshal(docs["p1"], &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !doc.IsPromoted {
		t.Fatal("expected promotion flag merged in")
	}
	if doc.Name != "Cacao" || doc.Price != 1000 {
		t.Fatal("partial merge must preserve untouched fields")
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	client := newTestClient(newFakeStore())

	err := client.Update(context.Background(), CollectionOrders, "missing", map[string]any{"status": "CONFIRMED"})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClassifyPermissionDenied(t *testing.T) {
	fake := newFakeStore()
	fake.writeErr = errors.New("NOPERM this user has no permissions to run the 'hset' command")
	client := newTestClient(fake)

	err := client.Set(context.Background(), CollectionSuppliers, "s1", map[string]any{"name": "x"})
	if !pkgerrors.IsPermissionDenied(err) {
		t.Fatalf("expected permission denied classification, got %v", err)
	}
}

func TestClassifyDependencyError(t *testing.T) {
	fake := newFakeStore()
	fake.readErr = errors.New("connection refused")
	client := newTestClient(fake)

	_, err := client.Snapshot(context.Background(), CollectionOrders)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestDeleteNotifies(t *testing.T) {
	fake := newFakeStore()
	client := newTestClient(fake)

	if err := client.Set(context.Background(), CollectionProducts, "p1", map[string]any{"name": "x"}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := client.Delete(context.Background(), CollectionProducts, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	docs, _ := client.Snapshot(context.Background(), CollectionProducts)
	if len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
	if len(fake.published) != 2 {
		t.Fatalf("expected notifications for set and delete, got %d", len(fake.published))
	}
}
