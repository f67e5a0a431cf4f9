package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/visigraph/pkg/errors"
	"github.com/matzehuels/visigraph/pkg/settings"
)

// RedisStore keeps documents as JSON strings under prefix+"doc:"+id and
// tracks their ids in the set prefix+"docs".
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore connects to the configured server and checks it with a
// PING, retrying while the server is unreachable.
func NewRedisStore(ctx context.Context, cfg settings.Redis) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	err := RetryWithBackoff(ctx, func() error {
		return Retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return NewRedisStoreWithClient(client, cfg.Prefix), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + "doc:" + id }

func (s *RedisStore) index() string { return s.prefix + "docs" }

func (s *RedisStore) read(ctx context.Context, id string) (*Document, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get document %s", id)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode document %s", id)
	}
	return &doc, nil
}

func (s *RedisStore) Put(ctx context.Context, doc *Document) (err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendRedis, "put", doc.ID, start, err) }()

	var created time.Time
	if doc.ID != "" && errors.ValidateDocumentID(doc.ID) == nil {
		if old, err := s.read(ctx, doc.ID); err == nil {
			created = old.CreatedAt
		}
	}
	if err := prepare(doc, created); err != nil {
		return err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.key(doc.ID), data, 0)
		p.SAdd(ctx, s.index(), doc.ID)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "put document %s", doc.ID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (doc *Document, err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendRedis, "get", id, start, err) }()

	if err := errors.ValidateDocumentID(id); err != nil {
		return nil, err
	}
	return s.read(ctx, id)
}

func (s *RedisStore) List(ctx context.Context) (out []Summary, err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendRedis, "list", "", start, err) }()

	ids, err := s.client.SMembers(ctx, s.index()).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	out = []Summary{}
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.key(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var doc Document
		if json.Unmarshal([]byte(str), &doc) != nil {
			continue
		}
		out = append(out, doc.Summary())
	}
	sortSummaries(out)
	return out, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(ctx, BackendRedis, "delete", id, start, err) }()

	if err := errors.ValidateDocumentID(id); err != nil {
		return err
	}
	var del *redis.IntCmd
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		del = p.Del(ctx, s.key(id))
		p.SRem(ctx, s.index(), id)
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete document %s", id)
	}
	if del.Val() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

var _ Store = (*RedisStore)(nil)
