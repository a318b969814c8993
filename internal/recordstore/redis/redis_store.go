package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/NH-Portal/portal-service/internal/recordstore"
)

// Store is a redis-backed document store. Each record is a JSON string
// at doc:<collection>:<key>; collection membership is tracked in a set
// at col:<collection> so full-collection reads do not need SCAN.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) docKey(collection, key string) string {
	return fmt.Sprintf("doc:%s:%s", collection, key)
}

func (s *Store) colKey(collection string) string {
	return fmt.Sprintf("col:%s", collection)
}

func (s *Store) Get(ctx context.Context, collection, key string) (*recordstore.Document, error) {
	data, err := s.client.Get(ctx, s.docKey(collection, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, recordstore.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	return &recordstore.Document{Key: key, Data: json.RawMessage(data)}, nil
}

func (s *Store) GetAll(ctx context.Context, collection string) ([]recordstore.Document, error) {
	keys, err := s.client.SMembers(ctx, s.colKey(collection)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	if len(keys) == 0 {
		return []recordstore.Document{}, nil
	}

	// SMembers order is unspecified; sort for a stable scan order.
	sort.Strings(keys)

	docKeys := make([]string, len(keys))
	for i, key := range keys {
		docKeys[i] = s.docKey(collection, key)
	}

	values, err := s.client.MGet(ctx, docKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	docs := make([]recordstore.Document, 0, len(keys))
	for i, value := range values {
		str, ok := value.(string)
		if !ok {
			// Membership entry without a document; skip stale index rows.
			continue
		}
		docs = append(docs, recordstore.Document{Key: keys[i], Data: json.RawMessage(str)})
	}

	return docs, nil
}

func (s *Store) QueryOrdered(ctx context.Context, collection, field string) ([]recordstore.Document, error) {
	docs, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	sortDocumentsByField(docs, field)
	return docs, nil
}

func (s *Store) Set(ctx context.Context, collection, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(collection, key), data, 0)
	pipe.SAdd(ctx, s.colKey(collection), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (s *Store) Update(ctx context.Context, collection, key string, fields map[string]interface{}) error {
	doc, err := s.Get(ctx, collection, key)
	if err != nil {
		return err
	}

	var merged map[string]interface{}
	if err := json.Unmarshal(doc.Data, &merged); err != nil {
		return fmt.Errorf("unmarshal record: %w", err)
	}
	for name, value := range fields {
		merged[name] = value
	}

	return s.Set(ctx, collection, key, merged)
}

func (s *Store) Delete(ctx context.Context, collection, key string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.docKey(collection, key))
	pipe.SRem(ctx, s.colKey(collection), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}

	return nil
}

func (s *Store) Push(ctx context.Context, collection string, value interface{}) (string, error) {
	key := uuid.NewString()
	if err := s.Set(ctx, collection, key, value); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Store) Exists(ctx context.Context, collection, key string) (bool, error) {
	count, err := s.client.Exists(ctx, s.docKey(collection, key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return count > 0, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

// sortDocumentsByField orders documents descending by a top-level JSON
// field. Numbers compare numerically; everything else compares as its
// string form (RFC3339 timestamps order correctly this way). The sort
// is stable so ties keep the scan order.
func sortDocumentsByField(docs []recordstore.Document, field string) {
	type keyed struct {
		doc   recordstore.Document
		value interface{}
	}

	pairs := make([]keyed, len(docs))
	for i, doc := range docs {
		pairs[i].doc = doc
		var record map[string]interface{}
		if err := json.Unmarshal(doc.Data, &record); err == nil {
			pairs[i].value = record[field]
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return compareFieldValues(pairs[i].value, pairs[j].value)
	})

	for i := range pairs {
		docs[i] = pairs[i].doc
	}
}

func compareFieldValues(a, b interface{}) bool {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		return af > bf
	}

	return fmt.Sprint(a) > fmt.Sprint(b)
}
