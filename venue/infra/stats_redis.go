package infra

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stadium-bar/venue/domain"

	"github.com/redis/go-redis/v9"
)

type RedisStatsStore struct {
	rdb *redis.Client

	prefix string
	// ttl aplica apenas em chaves de série temporal.
	// total é cumulativo e não expira.
	ttl time.Duration

	bucket string // "minute" (padrão) ou "none"
}

type RedisStatsOption func(*RedisStatsStore)

func WithStatsPrefix(prefix string) RedisStatsOption {
	return func(s *RedisStatsStore) {
		s.prefix = strings.Trim(prefix, ":")
	}
}

func WithStatsTTL(d time.Duration) RedisStatsOption {
	return func(s *RedisStatsStore) { s.ttl = d }
}

func WithStatsBucket(bucket string) RedisStatsOption {
	return func(s *RedisStatsStore) { s.bucket = strings.ToLower(strings.TrimSpace(bucket)) }
}

func NewRedisStatsStore(rdb *redis.Client, opts ...RedisStatsOption) *RedisStatsStore {
	s := &RedisStatsStore{
		rdb:    rdb,
		prefix: "stadiumbar:stats",
		ttl:    24 * time.Hour,
		bucket: "minute",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Keys expõe os nomes das chaves usadas para um instante (útil em dashboards e testes).
func (s *RedisStatsStore) Keys(at time.Time) (total, bucket, state string) {
	total = s.prefix + ":total"
	if s.bucket == "minute" {
		bucket = fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
	}
	state = s.prefix + ":state"
	return total, bucket, state
}

func (s *RedisStatsStore) Record(ctx context.Context, ev domain.Event) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}

	field := ev.Kind.String()
	totalKey, bucketKey, stateKey := s.Keys(at)

	pipe := s.rdb.Pipeline()
	pipe.HIncrBy(ctx, totalKey, field, 1)

	if bucketKey != "" {
		pipe.HIncrBy(ctx, bucketKey, field, 1)
		if s.ttl > 0 {
			pipe.Expire(ctx, bucketKey, s.ttl)
		}
	}

	pipe.HSet(ctx, stateKey,
		"occupancy", strconv.Itoa(ev.Occupancy),
		"capacity", strconv.Itoa(ev.Capacity),
		"affiliation", ev.Affiliation.String(),
		"last_event", field,
	)
	if ev.VisitorID != "" {
		pipe.HSet(ctx, stateKey, "last_visitor", ev.VisitorID)
	}

	_, err := pipe.Exec(ctx)
	return err
}
