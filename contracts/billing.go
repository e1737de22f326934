package contracts

import "context"

// SubscriptionChecker kiểm tra khách hàng billing có subscription đang hoạt động không
type SubscriptionChecker interface {
	HasActiveSubscription(ctx context.Context, customerID string) (bool, error)
}
