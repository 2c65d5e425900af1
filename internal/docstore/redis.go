package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
)

const (
	docKeyPrefix   = "portfolio:doc:" // JSON document: portfolio:doc:{collection}:{id}
	indexKeyPrefix = "portfolio:idx:" // Sorted set of ids: portfolio:idx:{collection}:{field}
)

// RedisStore keeps each document as a JSON string and maintains one sorted set
// per collection and ordering field, scored by the field's timestamp.
type RedisStore struct {
	client      *redis.Client
	orderFields []string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps client. orderFields lists the fields List may order by;
// createdAt is used when none are given.
func NewRedisStore(client *redis.Client, orderFields ...string) *RedisStore {
	if len(orderFields) == 0 {
		orderFields = []string{"createdAt"}
	}
	return &RedisStore{client: client, orderFields: orderFields}
}

// OpenRedis connects to addr and verifies the connection.
func OpenRedis(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(client), nil
}

func (r *RedisStore) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := uuid.NewString()

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.docKey(collection, id), data, 0)
	for _, f := range r.orderFields {
		pipe.ZAdd(ctx, r.indexKey(collection, f), redis.Z{Score: score(fields[f]), Member: id})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to add document: %w", err)
	}
	return id, nil
}

func (r *RedisStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	data, err := r.client.Get(ctx, r.docKey(collection, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	fields, err := decodeJSON(data)
	if err != nil {
		return nil, err
	}
	return &Document{ID: id, Fields: fields}, nil
}

// Update merges fields under WATCH so a concurrent write to the same document
// aborts the transaction instead of being overwritten.
func (r *RedisStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	key := r.docKey(collection, id)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return apperr.ErrNotFound
		}
		if err != nil {
			return err
		}

		existing, err := decodeJSON(data)
		if err != nil {
			return err
		}
		for k, v := range fields {
			existing[k] = v
		}
		merged, err := json.Marshal(existing)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, merged, 0)
			for _, f := range r.orderFields {
				if v, ok := fields[f]; ok {
					pipe.ZAdd(ctx, r.indexKey(collection, f), redis.Z{Score: score(v), Member: id})
				}
			}
			return nil
		})
		return err
	}, key)

	if errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, collection, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.docKey(collection, id))
	for _, f := range r.orderFields {
		pipe.ZRem(ctx, r.indexKey(collection, f), id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (r *RedisStore) List(ctx context.Context, collection, orderBy string) ([]Document, error) {
	if !slices.Contains(r.orderFields, orderBy) {
		return nil, fmt.Errorf("field %q is not indexed for ordering", orderBy)
	}

	ids, err := r.client.ZRevRange(ctx, r.indexKey(collection, orderBy), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	if len(ids) == 0 {
		return []Document{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.docKey(collection, id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", collection, err)
	}

	out := make([]Document, 0, len(ids))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			// index entry outlived its document
			continue
		}
		fields, err := decodeJSON([]byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, Document{ID: ids[i], Fields: fields})
	}
	return out, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) docKey(collection, id string) string {
	return fmt.Sprintf("%s%s:%s", docKeyPrefix, collection, id)
}

func (r *RedisStore) indexKey(collection, field string) string {
	return fmt.Sprintf("%s%s:%s", indexKeyPrefix, collection, field)
}

func score(v any) float64 {
	n, _, _ := sortKey(v)
	return n
}

func decodeJSON(data []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
