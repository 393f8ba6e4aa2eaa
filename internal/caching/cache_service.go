package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"kasirhub/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Sales report caching
	GetSalesReport(ctx context.Context, key string) (*models.SalesReport, error)
	SetSalesReport(ctx context.Context, key string, report *models.SalesReport, ttl time.Duration) error

	// License caching
	GetPartnerLicenses(ctx context.Context, partnerID uuid.UUID) ([]*models.License, error)
	SetPartnerLicenses(ctx context.Context, partnerID uuid.UUID, licenses []*models.License, ttl time.Duration) error
	InvalidatePartnerLicenses(ctx context.Context, partnerID uuid.UUID) error

	// Cache invalidation
	InvalidatePartnerCache(ctx context.Context, partnerID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for tokens and verification codes
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port URLs as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetSalesReport(ctx context.Context, key string) (*models.SalesReport, error) {
	cacheKey := fmt.Sprintf("kasirhub:report:%s", key)
	data, err := r.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var report models.SalesReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *redisCacheService) SetSalesReport(ctx context.Context, key string, report *models.SalesReport, ttl time.Duration) error {
	cacheKey := fmt.Sprintf("kasirhub:report:%s", key)
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cacheKey, data, ttl).Err()
}

func (r *redisCacheService) GetPartnerLicenses(ctx context.Context, partnerID uuid.UUID) ([]*models.License, error) {
	key := fmt.Sprintf("kasirhub:licenses:%s", partnerID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var licenses []*models.License
	if err := json.Unmarshal(data, &licenses); err != nil {
		return nil, err
	}
	return licenses, nil
}

func (r *redisCacheService) SetPartnerLicenses(ctx context.Context, partnerID uuid.UUID, licenses []*models.License, ttl time.Duration) error {
	key := fmt.Sprintf("kasirhub:licenses:%s", partnerID.String())
	data, err := json.Marshal(licenses)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidatePartnerLicenses(ctx context.Context, partnerID uuid.UUID) error {
	key := fmt.Sprintf("kasirhub:licenses:%s", partnerID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidatePartnerCache(ctx context.Context, partnerID uuid.UUID) error {
	pattern := fmt.Sprintf("kasirhub:*%s*", partnerID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := fmt.Sprintf("kasirhub:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return true, err
	}

	// Set expiry on first request
	if count == 1 {
		r.client.Expire(ctx, cacheKey, window)
	}

	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
