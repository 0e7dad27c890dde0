package dashboard

import (
	"context"

	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
)

type TransferSource interface {
	TransferHistory(ctx context.Context, params marketplace.TransferQuery) ([]marketplace.Transfer, error)
}

type TransferFilter struct {
	Skip   int    `form:"skip" binding:"gte=0"`
	Limit  int    `form:"limit" binding:"gte=0,lte=500"`
	Status string `form:"status" binding:"omitempty,oneof=all Pending Approved Rejected"`
}

const defaultTransferLimit = 100

func Transfers(ctx context.Context, source TransferSource, filter TransferFilter) ([]marketplace.Transfer, error) {
	limit := filter.Limit
	if limit == 0 {
		limit = defaultTransferLimit
	}

	transfers, err := source.TransferHistory(ctx, marketplace.TransferQuery{Skip: filter.Skip, Limit: limit})
	if err != nil {
		return nil, err
	}

	if filter.Status == "" || filter.Status == filterAll {
		return transfers, nil
	}

	filtered := make([]marketplace.Transfer, 0, len(transfers))
	for _, transfer := range transfers {
		if string(transfer.Status) == filter.Status {
			filtered = append(filtered, transfer)
		}
	}

	return filtered, nil
}
