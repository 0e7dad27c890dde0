package marketplace

import (
	"context"
	"fmt"

	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
)

// VehicleOwner rejects an identity without an id; every fleet path is built from it.
func (c *Client) VehicleOwner(ctx context.Context) (VehicleOwner, error) {
	owner, err := getJSON[VehicleOwner](ctx, c, schema.OwnerRequest, "/users/vehicle-owner/me")
	if err != nil {
		return owner, err
	}

	if owner.ID == "" {
		return VehicleOwner{}, fmt.Errorf("%w: %s: missing owner id", ErrMalformedBody, schema.OwnerRequest)
	}

	return owner, nil
}

// CarEndpoints lists the car listing endpoints in the order they are tried;
// backends of different versions serve different ones.
func CarEndpoints(owner VehicleOwner) ([]string, error) {
	byOrganization, err := pathWith("/users/cardetails/organization/%s", "orgId", owner.OrganizationID)
	if err != nil {
		return nil, err
	}

	byOwner, err := pathWith("/users/vehicle-owner/%s/cars", "id", owner.ID)
	if err != nil {
		return nil, err
	}

	return []string{byOrganization, "/assignments/available-cars", byOwner}, nil
}

func DriverEndpoints(owner VehicleOwner) ([]string, error) {
	byOrganization, err := pathWith("/users/cardriver/organization/%s", "orgId", owner.OrganizationID)
	if err != nil {
		return nil, err
	}

	byOwner, err := pathWith("/users/vehicle-owner/%s/drivers", "id", owner.ID)
	if err != nil {
		return nil, err
	}

	return []string{byOrganization, "/assignments/available-drivers", byOwner}, nil
}

func (c *Client) Cars(ctx context.Context, path string) ([]Car, error) {
	return FetchList[Car](ctx, c, schema.CarsRequest, path)
}

func (c *Client) Drivers(ctx context.Context, path string) ([]Driver, error) {
	return FetchList[Driver](ctx, c, schema.DriversRequest, path)
}

// PendingOrders returns every order of pending-all, unfiltered.
func (c *Client) PendingOrders(ctx context.Context) ([]PendingOrder, error) {
	return FetchList[PendingOrder](ctx, c, schema.PendingOrdersRequest, "/orders/pending-all")
}
