package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assetnest-http-service/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService defines the Redis service interface
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheReport(householdID uint, reportName string, payload interface{}, expiration time.Duration) error
	GetCachedReport(householdID uint, reportName string, dest interface{}) error
	InvalidateReports(householdID uint) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// 1 Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// 2 Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// 3 Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// 4 CacheReport 缓存家庭维度的报表结果
func (s *RedisService) CacheReport(householdID uint, reportName string, payload interface{}, expiration time.Duration) error {
	key := reportKey(householdID, reportName)
	return s.Set(key, payload, expiration)
}

// 5 GetCachedReport 读取缓存的报表结果
func (s *RedisService) GetCachedReport(householdID uint, reportName string, dest interface{}) error {
	key := reportKey(householdID, reportName)
	return s.Get(key, dest)
}

// 6 InvalidateReports 清除家庭全部报表缓存，资产或交易写入后调用
func (s *RedisService) InvalidateReports(householdID uint) error {
	pattern := fmt.Sprintf("report:%d:*", householdID)
	keys, err := s.Client.Keys(s.Ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.Client.Del(s.Ctx, keys...).Err()
}

func reportKey(householdID uint, reportName string) string {
	return fmt.Sprintf("report:%d:%s", householdID, reportName)
}
