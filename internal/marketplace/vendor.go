package marketplace

import (
	"context"

	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"github.com/google/go-querystring/query"
)

func (c *Client) RentalPackages(ctx context.Context) ([]pricing.Package, error) {
	return FetchList[pricing.Package](ctx, c, schema.PackagesRequest, "/orders/rental_hrs_data")
}

func (c *Client) VendorProfile(ctx context.Context) (VendorProfile, error) {
	return getJSON[VendorProfile](ctx, c, schema.VendorProfileRequest, "/users/vendor-details/me")
}

func (c *Client) VendorOrders(ctx context.Context) ([]VendorOrder, error) {
	return FetchList[VendorOrder](ctx, c, schema.VendorOrdersRequest, "/orders/pending/vendor")
}

type TransferQuery struct {
	Skip  int `url:"skip"`
	Limit int `url:"limit"`
}

func (c *Client) TransferHistory(ctx context.Context, params TransferQuery) ([]Transfer, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, err
	}

	history, err := getJSON[TransferHistory](ctx, c, schema.TransfersRequest, "/transfer/history?"+values.Encode())
	if err != nil {
		return nil, err
	}

	if history.Transactions == nil {
		return []Transfer{}, nil
	}

	return history.Transactions, nil
}
