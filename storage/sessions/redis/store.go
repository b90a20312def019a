package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/core/session"
)

const keyPrefix = "darasa:session:"

// Store persists session records in redis, one JSON value per session with
// the TTL handled by redis itself.
type Store struct {
	rdb *redis.Client
}

var _ session.Store = (*Store)(nil)

func New(conf core.RedisConfig) *Store {
	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     conf.Addr,
			Password: conf.Password,
			DB:       conf.DB,
		}),
	}
}

// Ping verifies connectivity at boot.
func (s *Store) Ping(ctx context.Context) error {
	return errors.Wrap(s.rdb.Ping(ctx).Err(), "pinging redis")
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func (s *Store) GetSession(ctx context.Context, id string) (*session.Record, error) {
	data, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Wrap(err, "reading session")
	}
	rec := new(session.Record)
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, errors.Wrap(err, "decoding session")
	}
	return rec, nil
}

func (s *Store) PutSession(ctx context.Context, rec *session.Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(s.rdb.Set(ctx, keyPrefix+rec.ID, data, ttl).Err(), "writing session")
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return errors.Wrap(s.rdb.Del(ctx, keyPrefix+id).Err(), "deleting session")
}
