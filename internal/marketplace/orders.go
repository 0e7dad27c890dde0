package marketplace

import (
	"context"
	"encoding/json"
	"net/http"

	"bitbucket.org/dropcars/vendor-gateway/internal/order"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
)

const DefaultRecreateMinutes = 30

const (
	distanceQuotePath   = "/orders/oneway/quote"
	hourlyQuotePath     = "/orders/hourly/quote"
	distanceConfirmPath = "/orders/oneway/confirm"
	hourlyConfirmPath   = "/orders/hourly/confirm"
)

func (c *Client) DistanceQuote(ctx context.Context, request order.DistanceQuoteRequest) (json.RawMessage, error) {
	return c.send(ctx, schema.QuoteRequest, http.MethodPost, distanceQuotePath, request)
}

func (c *Client) HourlyQuote(ctx context.Context, request order.HourlyQuoteRequest) (json.RawMessage, error) {
	return c.send(ctx, schema.QuoteRequest, http.MethodPost, hourlyQuotePath, request)
}

func (c *Client) DistanceConfirm(ctx context.Context, request order.DistanceConfirmRequest) (json.RawMessage, error) {
	return c.send(ctx, schema.ConfirmRequest, http.MethodPost, distanceConfirmPath, request)
}

func (c *Client) HourlyConfirm(ctx context.Context, request order.HourlyConfirmRequest) (json.RawMessage, error) {
	return c.send(ctx, schema.ConfirmRequest, http.MethodPost, hourlyConfirmPath, request)
}

func (c *Client) OrderDetails(ctx context.Context, orderID int) (OrderDetails, error) {
	path, err := pathWith("/orders/vendor/%s", "id", orderID)
	if err != nil {
		return OrderDetails{}, err
	}

	return getJSON[OrderDetails](ctx, c, schema.OrderDetailsRequest, path)
}

type recreateRequest struct {
	OrderID              int `json:"order_id"`
	MaxTimeToAssignOrder int `json:"max_time_to_assign_order"`
}

// RecreateOrder re-publishes an auto cancelled order with a new assign
// window in minutes.
func (c *Client) RecreateOrder(ctx context.Context, orderID int, minutes int) (json.RawMessage, error) {
	if minutes <= 0 {
		minutes = DefaultRecreateMinutes
	}

	return c.send(ctx, schema.RecreateRequest, http.MethodPost, "/orders/recreate", recreateRequest{
		OrderID:              orderID,
		MaxTimeToAssignOrder: minutes,
	})
}

type visibilityRequest struct {
	DataVisibilityVehicleOwner bool `json:"data_visibility_vehicle_owner"`
}

func (c *Client) SetVehicleOwnerVisibility(ctx context.Context, orderID int, visible bool) (json.RawMessage, error) {
	path, err := pathWith("/orders/%s/visibility/vehicle-owner/show", "id", orderID)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, schema.VisibilityRequest, http.MethodPatch, path, visibilityRequest{DataVisibilityVehicleOwner: visible})
}

func (c *Client) CancelOrder(ctx context.Context, orderID int) (json.RawMessage, error) {
	path, err := pathWith("/assignments/vendor/cancel-order/%s", "id", orderID)
	if err != nil {
		return nil, err
	}

	return c.send(ctx, schema.CancelRequest, http.MethodPatch, path, nil)
}
