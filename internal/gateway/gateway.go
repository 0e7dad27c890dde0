package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/dashboard"
	"bitbucket.org/dropcars/vendor-gateway/internal/grouping"
	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
	"bitbucket.org/dropcars/vendor-gateway/internal/metrics"
	"bitbucket.org/dropcars/vendor-gateway/internal/order"
	"bitbucket.org/dropcars/vendor-gateway/internal/session"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Marketplace *marketplace.Factory
	Sessions    *session.Store
	// Nil disables dashboard grouping.
	GroupingCache *caching.Cacher
	GroupingTTL   time.Duration
	Metrics       *metrics.Metrics
	VendorID      string
}

type handlers struct {
	sessions *session.Store
	metrics  *metrics.Metrics
	now      func() time.Time
}

func (h *handlers) orchestrator(c *gin.Context) *order.Orchestrator {
	return order.NewOrchestrator(client(c), h.metrics)
}

func (h *handlers) loader(c *gin.Context) *dashboard.Loader {
	return dashboard.NewLoader(client(c), h.metrics)
}

func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	h := &handlers{
		sessions: deps.Sessions,
		metrics:  deps.Metrics,
		now:      time.Now,
	}

	groupingTTL := deps.GroupingTTL
	if groupingTTL <= 0 {
		groupingTTL = grouping.DefaultResponseTTL
	}

	group := router.Group(
		"",
		TapLogger,
		Authenticate(deps.VendorID),
		PrepareMarketplace(deps.Marketplace),
	)

	group.GET("/trip-types", h.tripTypes)
	group.GET("/packages", h.packages)

	group.POST("/sessions", h.createSession)
	group.GET("/sessions/:id", h.getSession)
	group.DELETE("/sessions/:id", h.deleteSession)
	group.PUT("/sessions/:id/trip-type", PrepareParams(tripTypeParams{}), h.setTripType)
	group.PUT("/sessions/:id/locations/:position", PrepareParams(locationParams{}), h.setLocation)
	group.POST("/sessions/:id/locations", h.addStop)
	group.POST("/sessions/:id/locations/move", PrepareParams(moveParams{}), h.moveLocation)
	group.DELETE("/sessions/:id/locations/:position", h.removeLocation)
	group.PATCH("/sessions/:id/details", PrepareParams(order.Update{}), h.updateDetails)
	group.POST("/sessions/:id/quote", h.requestQuote)
	group.POST("/sessions/:id/confirm", h.confirm)
	group.POST("/sessions/:id/dismiss", h.dismiss)

	group.GET("/dashboard",
		grouping.Middleware(grouping.MiddlewareOptions{
			CreateManager: grouping.ManagerWithTTL(groupingTTL, grouping.DefaultErrorTTL),
			Cache:         deps.GroupingCache,
			CacheKey:      dashboardCacheKey,
		}),
		h.dashboard,
	)
	group.GET("/orders/pending", h.pendingOrders)
	group.GET("/vendor/home", PrepareParams(dashboard.HomeFilter{}), h.vendorHome)
	group.GET("/orders/:id", h.orderDetails)
	group.POST("/orders/:id/recreate", h.recreateOrder)
	group.PATCH("/orders/:id/visibility", PrepareParams(visibilityParams{}), h.setVisibility)
	group.PATCH("/orders/:id/cancel", h.cancelOrder)
	group.GET("/transfers", PrepareParams(dashboard.TransferFilter{}), h.transfers)
}

// dashboardCacheKey groups dashboard loads per caller; the token itself never
// reaches the cache.
func dashboardCacheKey(c *gin.Context) string {
	sum := sha256.Sum256([]byte(c.GetString(TokenKey)))
	return "dashboard:" + hex.EncodeToString(sum[:])
}
