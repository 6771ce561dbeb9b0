package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
)

// There is exactly one profile, so one key suffices.
const profileKey = "portfolio:profile:current"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg RedisConfig) ProfileCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisCache{client: rdb, ttl: cfg.TTL}
}

func (r *redisCache) Get(ctx context.Context) (*models.Profile, error) {
	val, err := r.client.Get(ctx, profileKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	doc := &models.Profile{}
	if err := json.Unmarshal(val, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *redisCache) Set(ctx context.Context, doc *models.Profile) error {
	val, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, profileKey, val, r.ttl).Err()
}
