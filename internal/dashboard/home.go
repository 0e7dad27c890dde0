package dashboard

import (
	"context"
	"sort"
	"strings"

	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const filterAll = "all"

type VendorSource interface {
	VendorProfile(ctx context.Context) (marketplace.VendorProfile, error)
	VendorOrders(ctx context.Context) ([]marketplace.VendorOrder, error)
}

// HomeFilter narrows the order list; empty or "all" disables a filter.
type HomeFilter struct {
	Search       string `form:"search"`
	Status       string `form:"status"`
	TripType     string `form:"trip_type"`
	CarType      string `form:"car_type"`
	AcceptStatus string `form:"accept_status" binding:"omitempty,oneof=all accepted pending"`
}

type Stats struct {
	TotalOrders    int             `json:"total_orders"`
	AcceptedOrders int             `json:"accepted_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
}

type Home struct {
	Vendor marketplace.VendorProfile `json:"vendor"`
	Orders []marketplace.VendorOrder `json:"orders"`
	Stats  Stats                     `json:"stats"`
}

// LoadHome fetches the profile and the orders together. Stats cover every
// order, the list only the filtered ones, newest first.
func LoadHome(ctx context.Context, source VendorSource, filter HomeFilter) (*Home, error) {
	var (
		profile marketplace.VendorProfile
		orders  []marketplace.VendorOrder
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		profile, err = source.VendorProfile(groupCtx)
		return err
	})

	group.Go(func() error {
		var err error
		orders, err = source.VendorOrders(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedTime().After(orders[j].CreatedTime())
	})

	return &Home{
		Vendor: profile,
		Orders: FilterOrders(orders, filter),
		Stats:  StatsFor(orders),
	}, nil
}

func StatsFor(orders []marketplace.VendorOrder) Stats {
	stats := Stats{
		TotalOrders:  len(orders),
		TotalRevenue: decimal.Zero,
	}

	for _, o := range orders {
		if o.OrderAcceptStatus {
			stats.AcceptedOrders++
		}
		stats.TotalRevenue = stats.TotalRevenue.Add(o.VendorPrice)
	}

	return stats
}

func FilterOrders(orders []marketplace.VendorOrder, filter HomeFilter) []marketplace.VendorOrder {
	filtered := make([]marketplace.VendorOrder, 0, len(orders))

	for _, o := range orders {
		if matchesSearch(o, filter.Search) &&
			matches(filter.Status, o.TripStatus) &&
			matches(filter.TripType, o.TripType) &&
			matches(filter.CarType, o.CarType) &&
			matchesAccepted(filter.AcceptStatus, o.OrderAcceptStatus) {
			filtered = append(filtered, o)
		}
	}

	return filtered
}

func matches(expected string, value string) bool {
	return expected == "" || expected == filterAll || expected == value
}

func matchesAccepted(expected string, accepted bool) bool {
	switch expected {
	case "accepted":
		return accepted
	case "pending":
		return !accepted
	}
	return true
}

// matchesSearch looks at the customer, the first two stops and the number.
func matchesSearch(o marketplace.VendorOrder, search string) bool {
	if strings.TrimSpace(search) == "" {
		return true
	}

	needle := strings.ToLower(search)

	candidates := []string{
		o.CustomerName,
		o.PickupDropLocation["0"],
		o.PickupDropLocation["1"],
	}
	for _, candidate := range candidates {
		if strings.Contains(strings.ToLower(candidate), needle) {
			return true
		}
	}

	return strings.Contains(o.CustomerNumber, search)
}
