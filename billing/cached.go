package billing

import (
	"context"
	"errors"
	"time"

	"github.com/muslewski/eventizer-sub001/contracts"
	"github.com/redis/go-redis/v9"
	"github.com/techmaster-vietnam/goerrorkit"
)

const cacheKeyPrefix = "eventizer:subscription:"

// CachedChecker bọc một SubscriptionChecker và cache kết quả trong Redis với TTL.
// Lỗi Redis không chặn request: checker gốc vẫn được gọi.
type CachedChecker struct {
	next   contracts.SubscriptionChecker
	client *redis.Client
	ttl    time.Duration
}

// NewCachedChecker tạo checker có cache. ttl <= 0 dùng 5 phút.
func NewCachedChecker(next contracts.SubscriptionChecker, client *redis.Client, ttl time.Duration) *CachedChecker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedChecker{next: next, client: client, ttl: ttl}
}

// HasActiveSubscription implements contracts.SubscriptionChecker
func (c *CachedChecker) HasActiveSubscription(ctx context.Context, customerID string) (bool, error) {
	if customerID == "" {
		return false, nil
	}
	key := cacheKeyPrefix + customerID

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached == "1", nil
	case !errors.Is(err, redis.Nil):
		goerrorkit.LogError(goerrorkit.WrapWithMessage(err, "Lỗi khi đọc cache subscription").WithData(map[string]interface{}{
			"customer_id": customerID,
		}), "billing.CachedChecker.HasActiveSubscription")
	}

	active, err := c.next.HasActiveSubscription(ctx, customerID)
	if err != nil {
		return false, err
	}

	value := "0"
	if active {
		value = "1"
	}
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		goerrorkit.LogError(goerrorkit.WrapWithMessage(err, "Lỗi khi ghi cache subscription").WithData(map[string]interface{}{
			"customer_id": customerID,
		}), "billing.CachedChecker.HasActiveSubscription")
	}
	return active, nil
}

// Invalidate xóa kết quả đã cache, gọi khi billing báo subscription thay đổi
func (c *CachedChecker) Invalidate(ctx context.Context, customerID string) error {
	if err := c.client.Del(ctx, cacheKeyPrefix+customerID).Err(); err != nil {
		return goerrorkit.WrapWithMessage(err, "Lỗi khi xóa cache subscription").WithData(map[string]interface{}{
			"customer_id": customerID,
		})
	}
	return nil
}

// NewRedisClient tạo client và ping thử trong 5 giây
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, goerrorkit.WrapWithMessage(err, "Không kết nối được Redis").WithData(map[string]interface{}{
			"addr": addr,
		})
	}
	return client, nil
}
