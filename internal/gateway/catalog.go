package gateway

import (
	"net/http"

	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
	"github.com/gin-gonic/gin"
)

type tripTypesResponse struct {
	TripTypes []trip.Policy  `json:"trip_types"`
	CarTypes  []trip.CarType `json:"car_types"`
	Default   trip.CarType   `json:"default_car_type"`
}

func (h *handlers) tripTypes(c *gin.Context) {
	c.JSON(http.StatusOK, tripTypesResponse{
		TripTypes: trip.Policies(),
		CarTypes:  trip.CarTypes(),
		Default:   trip.DefaultCarType,
	})
}

func (h *handlers) packages(c *gin.Context) {
	packages := pricing.NewCatalog(client(c)).Packages(c.Request.Context(), logger(c))
	c.JSON(http.StatusOK, packages)
}
