package gateway

import (
	"errors"
	"net/http"
	"strconv"

	"bitbucket.org/dropcars/vendor-gateway/internal/locations"
	"bitbucket.org/dropcars/vendor-gateway/internal/order"
	"bitbucket.org/dropcars/vendor-gateway/internal/pricing"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/session"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/responding"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
	"github.com/gin-gonic/gin"
)

const (
	sessionNotFoundMessage = "Order form not found, please start again"
	sessionBusyMessage     = "Please wait for the current request to finish"
	notReorderableMessage  = "Locations can not be reordered for this trip type"
	maxLocationsMessage    = "Maximum number of locations reached"
	minLocationsMessage    = "Minimum number of locations reached"
	invalidPositionMessage = "Please select a valid location position"
)

var (
	errNotReorderable  = schema.NewValidationError("locations", notReorderableMessage)
	errMaxLocations    = schema.NewValidationError("locations", maxLocationsMessage)
	errMinLocations    = schema.NewValidationError("locations", minLocationsMessage)
	errInvalidPosition = schema.NewValidationError("position", invalidPositionMessage)
)

func (h *handlers) createSession(c *gin.Context) {
	ctx := c.Request.Context()

	packages := pricing.NewCatalog(client(c)).Packages(ctx, logger(c))
	s := order.NewSession(c.GetString(VendorKey), packages, h.now())

	if err := h.sessions.Save(ctx, s); err != nil {
		responding.HandleError(c, http.StatusInternalServerError, "Failed to create order form", err)
		return
	}

	c.JSON(http.StatusCreated, s.View())
}

func (h *handlers) getSession(c *gin.Context) {
	s, err := h.sessions.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.View())
}

func (h *handlers) deleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		responding.HandleError(c, http.StatusInternalServerError, "Failed to discard order form", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) setTripType(c *gin.Context) {
	p := params[tripTypeParams](c)

	h.mutate(c, func(form *order.Form) error {
		form.Locations.Reset(trip.Parse(p.TripType))
		return nil
	})
}

func (h *handlers) setLocation(c *gin.Context) {
	position, ok := positionParam(c)
	if !ok {
		return
	}

	p := params[locationParams](c)

	h.mutate(c, func(form *order.Form) error {
		if err := form.Locations.OpenEditor(position); err != nil {
			return err
		}
		form.Locations.SetLocation(position, p.Value)
		return nil
	})
}

func (h *handlers) addStop(c *gin.Context) {
	h.mutate(c, func(form *order.Form) error {
		if !form.Locations.AddStop() {
			return errMaxLocations
		}
		return nil
	})
}

func (h *handlers) moveLocation(c *gin.Context) {
	p := params[moveParams](c)

	h.mutate(c, func(form *order.Form) error {
		if !form.TripType().Policy().Reorderable {
			return errNotReorderable
		}
		// out of range and equal positions leave the order as it is
		form.Locations.Move(*p.From, *p.To)
		return nil
	})
}

func (h *handlers) removeLocation(c *gin.Context) {
	position, ok := positionParam(c)
	if !ok {
		return
	}

	h.mutate(c, func(form *order.Form) error {
		if _, exists := form.Locations.At(position); !exists {
			return errInvalidPosition
		}
		if !form.Locations.Remove(position) {
			return errMinLocations
		}
		return nil
	})
}

func (h *handlers) updateDetails(c *gin.Context) {
	update := params[order.Update](c)

	h.update(c, func(s *order.Session) error {
		return s.Mutate(func(form *order.Form) error {
			return form.Apply(*update, s.Packages)
		})
	})
}

func (h *handlers) requestQuote(c *gin.Context) {
	orchestrator := h.orchestrator(c)

	h.update(c, func(s *order.Session) error {
		return orchestrator.RequestQuote(c.Request.Context(), logger(c), s)
	})
}

func (h *handlers) confirm(c *gin.Context) {
	var distribution *order.Distribution
	if err := bindOptionalJSON(c, &distribution); err != nil {
		responding.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
		return
	}

	orchestrator := h.orchestrator(c)

	h.update(c, func(s *order.Session) error {
		return orchestrator.Confirm(c.Request.Context(), logger(c), s, distribution)
	})
}

func (h *handlers) dismiss(c *gin.Context) {
	orchestrator := h.orchestrator(c)

	h.update(c, func(s *order.Session) error {
		return orchestrator.Dismiss(logger(c), s)
	})
}

func (h *handlers) mutate(c *gin.Context, change func(form *order.Form) error) {
	h.update(c, func(s *order.Session) error {
		return s.Mutate(change)
	})
}

// update runs change under the session lock and answers with the session
// view, or with the error of change once the session is saved.
func (h *handlers) update(c *gin.Context, change func(s *order.Session) error) {
	s, err := h.sessions.Update(c.Request.Context(), c.Param("id"), change)
	if err != nil {
		h.sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, s.View())
}

func (h *handlers) sessionError(c *gin.Context, err error) {
	var responseError *schema.ResponseError

	switch {
	case errors.Is(err, session.ErrNotFound):
		responding.HandleError(c, http.StatusNotFound, sessionNotFoundMessage, err)
	case errors.Is(err, session.ErrBusy):
		responding.HandleError(c, http.StatusConflict, sessionBusyMessage, err)
	case errors.Is(err, order.ErrInvalidTransition):
		responding.HandleError(c, http.StatusConflict, "This action is not available right now", err)
	case errors.Is(err, locations.ErrDerivedSlot):
		responding.HandleError(c, http.StatusUnprocessableEntity, locations.DerivedSlotMessage, err)
	case errors.Is(err, locations.ErrOutOfRange):
		responding.HandleError(c, http.StatusUnprocessableEntity, invalidPositionMessage, err)
	case errors.As(err, &responseError):
		responding.HandleResponseError(c, responseError, order.QuoteFailedMessage)
	default:
		responding.HandleError(c, http.StatusInternalServerError, "Failed to update order form", err)
	}
}

func positionParam(c *gin.Context) (int, bool) {
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil || position < 0 {
		responding.HandleError(c, http.StatusBadRequest, invalidPositionMessage, err)
		return 0, false
	}
	return position, true
}
