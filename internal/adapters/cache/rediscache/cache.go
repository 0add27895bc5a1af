// Package rediscache guarda resultados de recomendaciones en Redis.
// Un hash por usuario (field = limit) para poder invalidar todo con un DEL,
// y un contador de versión por usuario que Set verifica con WATCH.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	goredis "github.com/redis/go-redis/v9"

	"petmatch/internal/domain/recommendations"
)

const (
	keyPrefix     = "petmatch:recs:"
	versionPrefix = "petmatch:recs-version:"

	// Tiene que superar el TTL de los resultados.
	versionTTL = 24 * time.Hour
)

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type Cache struct {
	rdb goredis.UniversalClient
	ttl time.Duration
}

// Dial abre el cliente y verifica conectividad.
func Dial(ctx context.Context, opts Options) (*Cache, *goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	return New(rdb, opts.TTL), rdb, nil
}

func New(rdb goredis.UniversalClient, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, userID string, limit int) (recommendations.Result, bool, error) {
	raw, err := c.rdb.HGet(ctx, key(userID), strconv.Itoa(limit)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return recommendations.Result{}, false, nil
		}
		return recommendations.Result{}, false, err
	}

	var r recommendations.Result
	if err := json.Unmarshal(raw, &r); err != nil {
		return recommendations.Result{}, false, fmt.Errorf("decode cached recommendations: %w", err)
	}
	return r, true, nil
}

func (c *Cache) Version(ctx context.Context, userID string) (int64, error) {
	return readVersion(ctx, c.rdb, versionKey(userID))
}

// Set guarda r solo si la versión del usuario sigue siendo version.
// Si cambió devuelve recommendations.ErrStaleCache.
func (c *Cache) Set(ctx context.Context, userID string, limit int, version int64, r recommendations.Result) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}

	k, vk := key(userID), versionKey(userID)
	err = c.rdb.Watch(ctx, func(tx *goredis.Tx) error {
		cur, err := readVersion(ctx, tx, vk)
		if err != nil {
			return err
		}
		if cur != version {
			return recommendations.ErrStaleCache
		}
		_, err = tx.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			p.HSet(ctx, k, strconv.Itoa(limit), raw)
			p.Expire(ctx, k, c.ttl)
			return nil
		})
		return err
	}, vk)
	if errors.Is(err, goredis.TxFailedErr) {
		return recommendations.ErrStaleCache
	}
	return err
}

// Invalidate sube la versión y borra los resultados en una transacción.
func (c *Cache) Invalidate(ctx context.Context, userID string) error {
	vk := versionKey(userID)
	_, err := c.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Incr(ctx, vk)
		p.Expire(ctx, vk, versionTTL)
		p.Del(ctx, key(userID))
		return nil
	})
	return err
}

type stringGetter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func readVersion(ctx context.Context, g stringGetter, vk string) (int64, error) {
	v, err := g.Get(ctx, vk).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return v, err
}

func key(userID string) string {
	return keyPrefix + userID
}

func versionKey(userID string) string {
	return versionPrefix + userID
}
