// Package billing cung cấp các SubscriptionChecker cho việc kiểm tra subscription của service provider
package billing

import (
	"context"
	"sync"
)

// StaticChecker giữ tập customer có subscription trong bộ nhớ.
// Dùng cho môi trường dev/test hoặc khi chưa tích hợp nhà cung cấp billing.
type StaticChecker struct {
	mu     sync.RWMutex
	active map[string]bool
}

// NewStaticChecker tạo checker với danh sách customer đang active
func NewStaticChecker(customerIDs ...string) *StaticChecker {
	s := &StaticChecker{active: make(map[string]bool, len(customerIDs))}
	for _, id := range customerIDs {
		s.active[id] = true
	}
	return s
}

// HasActiveSubscription implements contracts.SubscriptionChecker
func (s *StaticChecker) HasActiveSubscription(ctx context.Context, customerID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active[customerID], nil
}

// Set bật/tắt subscription của customer
func (s *StaticChecker) Set(customerID string, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.active[customerID] = true
		return
	}
	delete(s.active, customerID)
}
