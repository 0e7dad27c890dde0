package dashboard

import (
	"context"

	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
)

const pendingStatus = "PENDING"

type PendingSource interface {
	PendingOrders(ctx context.Context) ([]marketplace.PendingOrder, error)
}

// PendingOrders keeps only the orders still waiting for a driver; the
// marketplace also returns accepted, in progress and completed ones.
func PendingOrders(ctx context.Context, source PendingSource) ([]marketplace.PendingOrder, error) {
	orders, err := source.PendingOrders(ctx)
	if err != nil {
		return nil, err
	}

	pending := make([]marketplace.PendingOrder, 0, len(orders))
	for _, o := range orders {
		if o.EffectiveStatus() == pendingStatus {
			pending = append(pending, o)
		}
	}

	return pending, nil
}
