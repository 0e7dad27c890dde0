package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/dropcars/vendor-gateway/internal/dashboard"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/responding"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/slowlog"
	"github.com/gin-gonic/gin"
)

var errInvalidOrderID = errors.New("order id must be a positive number")

func (h *handlers) dashboard(c *gin.Context) {
	log := logger(c)
	defer slowlog.CreateLogger(log).Track("dashboard:load")()

	loaded, err := h.loader(c).Load(c.Request.Context(), log)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, loaded)
}

func (h *handlers) pendingOrders(c *gin.Context) {
	orders, err := dashboard.PendingOrders(c.Request.Context(), client(c))
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to load pending orders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *handlers) vendorHome(c *gin.Context) {
	filter := params[dashboard.HomeFilter](c)

	home, err := dashboard.LoadHome(c.Request.Context(), client(c), *filter)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to load orders")
		return
	}

	c.JSON(http.StatusOK, home)
}

func (h *handlers) orderDetails(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	details, err := client(c).OrderDetails(c.Request.Context(), orderID)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to load order details")
		return
	}

	c.JSON(http.StatusOK, details)
}

func (h *handlers) recreateOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var p recreateParams
	if err := bindOptionalJSON(c, &p); err != nil {
		responding.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
		return
	}

	result, err := client(c).RecreateOrder(c.Request.Context(), orderID, p.MaxTimeToAssignOrder)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to recreate order")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handlers) setVisibility(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	p := params[visibilityParams](c)

	result, err := client(c).SetVehicleOwnerVisibility(c.Request.Context(), orderID, *p.Visible)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to update order visibility")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handlers) cancelOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	result, err := client(c).CancelOrder(c.Request.Context(), orderID)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to cancel order")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *handlers) transfers(c *gin.Context) {
	filter := params[dashboard.TransferFilter](c)

	transfers, err := dashboard.Transfers(c.Request.Context(), client(c), *filter)
	if err != nil {
		responding.HandleResponseError(c, err, "Failed to load transfers")
		return
	}

	c.JSON(http.StatusOK, transfers)
}

func orderIDParam(c *gin.Context) (int, bool) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		responding.HandleError(c, http.StatusBadRequest, "Please select a valid order", errInvalidOrderID)
		return 0, false
	}
	return orderID, true
}
