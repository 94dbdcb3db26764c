package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kbsess:"

// RedisStore keeps sessions in redis so they survive restarts and can
// be shared if the app ever runs more than one process.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func sessionKey(sid string) string { return keyPrefix + sid }
func flashKey(sid string) string   { return keyPrefix + sid + ":flash" }

func (s *RedisStore) Create(ctx context.Context) (string, error) {
	sid := uuid.NewString()
	if err := s.rdb.Set(ctx, sessionKey(sid), "0", s.ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

func (s *RedisStore) SetUser(ctx context.Context, sid string, userID uint) error {
	ok, err := s.rdb.Expire(ctx, sessionKey(sid), s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}
	return s.rdb.Set(ctx, sessionKey(sid), strconv.FormatUint(uint64(userID), 10), s.ttl).Err()
}

func (s *RedisStore) UserID(ctx context.Context, sid string) (uint, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sid)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	// sliding expiry on every touch
	s.rdb.Expire(ctx, sessionKey(sid), s.ttl)
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (s *RedisStore) ClearUser(ctx context.Context, sid string) error {
	return s.SetUser(ctx, sid, 0)
}

func (s *RedisStore) Destroy(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, sessionKey(sid), flashKey(sid)).Err()
}

func (s *RedisStore) PushFlash(ctx context.Context, sid string, f Flash) error {
	n, err := s.rdb.Exists(ctx, sessionKey(sid)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSession
	}
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	if err := s.rdb.RPush(ctx, flashKey(sid), b).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, flashKey(sid), s.ttl).Err()
}

func (s *RedisStore) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	pipe := s.rdb.TxPipeline()
	items := pipe.LRange(ctx, flashKey(sid), 0, -1)
	pipe.Del(ctx, flashKey(sid))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	var flashes []Flash
	for _, raw := range items.Val() {
		var f Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
