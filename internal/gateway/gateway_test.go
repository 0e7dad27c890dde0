package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/gateway"
	"bitbucket.org/dropcars/vendor-gateway/internal/grouping"
	"bitbucket.org/dropcars/vendor-gateway/internal/locations"
	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
	"bitbucket.org/dropcars/vendor-gateway/internal/order"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/session"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/caching"
	"bitbucket.org/dropcars/vendor-gateway/internal/trip"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const (
	defaultVendor = "vendor-default"
	token         = "vendor-token"
)

// upstream records the marketplace calls per path and captures request
// bodies for assertions.
type upstream struct {
	sync.Mutex
	server  *httptest.Server
	routes  map[string]func(w http.ResponseWriter, body []byte)
	hits    map[string]int
	bodies  map[string][]byte
	headers map[string]http.Header
}

func newUpstream() *upstream {
	u := &upstream{
		routes:  map[string]func(w http.ResponseWriter, body []byte){},
		hits:    map[string]int{},
		bodies:  map[string][]byte{},
		headers: map[string]http.Header{},
	}

	u.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		key := r.Method + " " + r.URL.Path

		u.Lock()
		u.hits[key]++
		u.bodies[key] = body
		u.headers[key] = r.Header.Clone()
		route, ok := u.routes[key]
		u.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not Found"}`))
			return
		}

		route(w, body)
	}))

	return u
}

func (u *upstream) on(method string, path string, status int, response string) {
	u.Lock()
	defer u.Unlock()

	u.routes[method+" "+path] = func(w http.ResponseWriter, body []byte) {
		w.WriteHeader(status)
		w.Write([]byte(response))
	}
}

func (u *upstream) hitsFor(method string, path string) int {
	u.Lock()
	defer u.Unlock()
	return u.hits[method+" "+path]
}

func (u *upstream) bodyFor(method string, path string) map[string]any {
	u.Lock()
	defer u.Unlock()

	decoded := map[string]any{}
	_ = json.Unmarshal(u.bodies[method+" "+path], &decoded)
	return decoded
}

type testGateway struct {
	router   *gin.Engine
	sessions *session.Store
	upstream *upstream
	out      *bytes.Buffer
}

func newGateway(t *testing.T, groupingCache *caching.Cacher) *testGateway {
	gin.SetMode(gin.TestMode)

	out := &bytes.Buffer{}
	log := zerolog.New(out)

	u := newUpstream()
	t.Cleanup(u.server.Close)

	sessions := session.NewStore(caching.NewMemoryCache(), time.Minute, 5*time.Second)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("logger", &log)
	})

	gateway.RegisterRoutes(router, gateway.Dependencies{
		Marketplace:   marketplace.NewFactory(nil, marketplace.WithBaseURL(u.server.URL), marketplace.WithTimeout(time.Second)),
		Sessions:      sessions,
		GroupingCache: groupingCache,
		GroupingTTL:   time.Minute,
		VendorID:      defaultVendor,
	})

	return &testGateway{
		router:   router,
		sessions: sessions,
		upstream: u,
		out:      out,
	}
}

func (g *testGateway) requestWithToken(method string, path string, body string, bearer string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	request, _ := http.NewRequest(method, path, reader)
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response := httptest.NewRecorder()
	g.router.ServeHTTP(response, request)

	return response
}

func (g *testGateway) request(method string, path string, body string) *httptest.ResponseRecorder {
	return g.requestWithToken(method, path, body, token)
}

func decodeView(t *testing.T, response *httptest.ResponseRecorder) order.View {
	var view order.View
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &view))
	return view
}

func decodeError(t *testing.T, response *httptest.ResponseRecorder) schema.ResponseError {
	var responseError schema.ResponseError
	assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &responseError))
	return responseError
}

func locationValues(view order.View) []string {
	values := make([]string, 0, len(view.Locations))
	for _, location := range view.Locations {
		values = append(values, location.Value)
	}
	return values
}

func (g *testGateway) createSession(t *testing.T) order.View {
	response := g.request(http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusCreated, response.Code)
	return decodeView(t, response)
}

func TestAuthentication(t *testing.T) {
	g := newGateway(t, nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic dXNlcjpwYXNz"},
		{"empty bearer token", "Bearer "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request, _ := http.NewRequest(http.MethodGet, "/trip-types", nil)
			if test.header != "" {
				request.Header.Set("Authorization", test.header)
			}

			response := httptest.NewRecorder()
			g.router.ServeHTTP(response, request)

			assert.Equal(t, http.StatusUnauthorized, response.Code)
			assert.Equal(t, schema.AuthError, decodeError(t, response).Code)
			assert.Equal(t, schema.AuthErrorMessage, decodeError(t, response).Message)
		})
	}

	t.Run("should answer with the trip type table", func(t *testing.T) {
		response := g.request(http.MethodGet, "/trip-types", "")

		var body struct {
			TripTypes []trip.Policy  `json:"trip_types"`
			CarTypes  []trip.CarType `json:"car_types"`
		}
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &body))

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, trip.Policies(), body.TripTypes)
		assert.Equal(t, trip.CarTypes(), body.CarTypes)
	})
}

func TestOnewayOrder(t *testing.T) {
	g := newGateway(t, nil)
	u := g.upstream

	u.on(http.MethodGet, "/api/orders/rental_hrs_data", http.StatusOK, `[{"hours":4,"km_range":40}]`)
	u.on(http.MethodPost, "/api/orders/oneway/quote", http.StatusOK, `{"estimated_price":1200}`)
	u.on(http.MethodPost, "/api/orders/oneway/confirm", http.StatusCreated, `{"order_id":77}`)

	view := g.createSession(t)
	path := "/sessions/" + view.ID

	assert.Equal(t, trip.Oneway, view.Policy.Type)
	assert.Len(t, view.Locations, 2)
	assert.Equal(t, order.Idle, view.Flow.State)
	assert.Equal(t, 1, len(view.Packages))

	assert.Equal(t, http.StatusOK, g.request(http.MethodPut, path+"/locations/0", `{"value":"Chennai"}`).Code)
	assert.Equal(t, http.StatusOK, g.request(http.MethodPut, path+"/locations/1", `{"value":"Bangalore"}`).Code)

	response := g.request(http.MethodPatch, path+"/details", `{
		"customer_name": "Raj",
		"customer_number": "9999999999",
		"pricing": {"cost_per_km": 12}
	}`)
	assert.Equal(t, http.StatusOK, response.Code)

	t.Run("should request a distance quote", func(t *testing.T) {
		response := g.request(http.MethodPost, path+"/quote", "")
		view := decodeView(t, response)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, order.QuoteReceived, view.Flow.State)
		assert.JSONEq(t, `{"estimated_price":1200}`, string(view.Flow.Quote))

		payload := u.bodyFor(http.MethodPost, "/api/orders/oneway/quote")
		assert.Equal(t, "Oneway", payload["trip_type"])
		assert.Equal(t, map[string]any{"0": "Chennai", "1": "Bangalore"}, payload["pickup_drop_location"])
		assert.Equal(t, float64(12), payload["cost_per_km"])
		assert.Equal(t, defaultVendor, payload["vendor_id"])
		assert.NotContains(t, payload, "cost_per_hour")
		assert.NotContains(t, payload, "package_hours")

		assert.Equal(t, "Bearer "+token, u.headers["POST /api/orders/oneway/quote"].Get("Authorization"))
	})

	t.Run("should reject an incomplete distribution target", func(t *testing.T) {
		response := g.request(http.MethodPost, path+"/confirm", `{"send_to":"NEAR_CITY","near_city":[]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
		assert.Equal(t, "near_city", decodeError(t, response).Field)
		assert.Equal(t, 0, u.hitsFor(http.MethodPost, "/api/orders/oneway/confirm"))

		stored, err := g.sessions.Load(context.Background(), view.ID)
		assert.NoError(t, err)
		assert.Equal(t, order.QuoteReceived, stored.Flow.State)
	})

	t.Run("should confirm and reset the form", func(t *testing.T) {
		response := g.request(http.MethodPost, path+"/confirm", `{"send_to":"NEAR_CITY","near_city":["Chennai"]}`)
		view := decodeView(t, response)

		assert.Equal(t, http.StatusOK, response.Code)
		assert.Equal(t, order.Confirmed, view.Flow.State)
		assert.JSONEq(t, `{"order_id":77}`, string(view.Flow.Order))
		assert.Equal(t, []string{"", ""}, locationValues(view))
		assert.Equal(t, "", view.Form.CustomerName)

		payload := u.bodyFor(http.MethodPost, "/api/orders/oneway/confirm")
		assert.Equal(t, "NEAR_CITY", payload["send_to"])
		assert.Equal(t, []any{"Chennai"}, payload["near_city"])
		assert.Equal(t, "Raj", payload["customer_name"])
	})
}

func TestHourlyOrderUsesTokenVendor(t *testing.T) {
	g := newGateway(t, nil)
	u := g.upstream

	u.on(http.MethodGet, "/api/orders/rental_hrs_data", http.StatusInternalServerError, ``)
	u.on(http.MethodPost, "/api/orders/hourly/quote", http.StatusOK, `{"estimated_price":1200}`)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, marketplace.Claims{VendorID: "vendor-42"}).SignedString([]byte("secret"))
	assert.NoError(t, err)

	response := g.requestWithToken(http.MethodPost, "/sessions", "", signed)
	view := decodeView(t, response)
	path := "/sessions/" + view.ID

	assert.Equal(t, "vendor-42", view.Form.VendorID)
	assert.NotEmpty(t, view.Packages)

	assert.Equal(t, http.StatusOK, g.requestWithToken(http.MethodPut, path+"/trip-type", `{"trip_type":"Hourly Rental"}`, signed).Code)
	assert.Equal(t, http.StatusOK, g.requestWithToken(http.MethodPut, path+"/locations/0", `{"value":"Chennai"}`, signed).Code)
	assert.Equal(t, http.StatusOK, g.requestWithToken(http.MethodPatch, path+"/details", `{
		"customer_name": "Raj",
		"customer_number": "9999999999",
		"package_hours": {"hours": 4, "km_range": 40},
		"pricing": {"cost_per_hour": 300, "cost_per_km": 12}
	}`, signed).Code)

	response = g.requestWithToken(http.MethodPost, path+"/quote", "", signed)
	assert.Equal(t, http.StatusOK, response.Code)

	payload := u.bodyFor(http.MethodPost, "/api/orders/hourly/quote")
	assert.Equal(t, "vendor-42", payload["vendor_id"])
	assert.Equal(t, "Hourly Rental", payload["trip_type"])
	assert.Equal(t, map[string]any{"hours": float64(4), "km_range": float64(40)}, payload["package_hours"])
	assert.Equal(t, float64(300), payload["cost_per_hour"])
	assert.NotContains(t, payload, "cost_per_km")
	assert.NotContains(t, payload, "driver_allowance")
}

func TestQuoteFailures(t *testing.T) {
	t.Run("should stop at validation without calling the marketplace", func(t *testing.T) {
		g := newGateway(t, nil)
		view := g.createSession(t)
		path := "/sessions/" + view.ID

		g.request(http.MethodPut, path+"/locations/0", `{"value":"Chennai"}`)
		g.request(http.MethodPut, path+"/locations/1", `{"value":"Bangalore"}`)
		g.request(http.MethodPatch, path+"/details", `{"customer_number":"9999999999","pricing":{"cost_per_km":12}}`)

		response := g.request(http.MethodPost, path+"/quote", "")

		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
		assert.Equal(t, schema.ValidationError, decodeError(t, response).Code)
		assert.Equal(t, "Please enter customer name", decodeError(t, response).Message)
		assert.Equal(t, 0, g.upstream.hitsFor(http.MethodPost, "/api/orders/oneway/quote"))

		stored := decodeView(t, g.request(http.MethodGet, path, ""))
		assert.Equal(t, order.Failed, stored.Flow.State)
		assert.Equal(t, order.Validating, stored.Flow.ErrorFrom)

		dismissed := decodeView(t, g.request(http.MethodPost, path+"/dismiss", ""))
		assert.Equal(t, order.Validating, dismissed.Flow.State)
		assert.Nil(t, dismissed.Flow.Error)
	})

	t.Run("should record classified marketplace errors", func(t *testing.T) {
		g := newGateway(t, nil)
		g.upstream.on(http.MethodPost, "/api/orders/oneway/quote", http.StatusBadGateway, ``)

		view := g.createSession(t)
		path := "/sessions/" + view.ID

		g.request(http.MethodPut, path+"/locations/0", `{"value":"Chennai"}`)
		g.request(http.MethodPut, path+"/locations/1", `{"value":"Bangalore"}`)
		g.request(http.MethodPatch, path+"/details", `{"customer_name":"Raj","customer_number":"9999999999","pricing":{"cost_per_km":12}}`)

		response := g.request(http.MethodPost, path+"/quote", "")

		assert.Equal(t, http.StatusBadGateway, response.Code)
		assert.Equal(t, schema.ServerErrorMessage, decodeError(t, response).Message)

		stored := decodeView(t, g.request(http.MethodGet, path, ""))
		assert.Equal(t, order.Failed, stored.Flow.State)
		assert.Equal(t, order.QuoteRequested, stored.Flow.ErrorFrom)
		assert.Equal(t, schema.ServerError, stored.Flow.Error.Code)

		assert.Equal(t, http.StatusConflict, g.request(http.MethodPost, path+"/confirm", "").Code)
	})

	t.Run("should refuse a second submission while one is in flight", func(t *testing.T) {
		g := newGateway(t, nil)
		view := g.createSession(t)

		release, err := g.sessions.Lock(context.Background(), view.ID)
		assert.NoError(t, err)
		defer release()

		response := g.request(http.MethodPost, "/sessions/"+view.ID+"/quote", "")

		assert.Equal(t, http.StatusConflict, response.Code)
		assert.Equal(t, schema.ConflictError, decodeError(t, response).Code)
	})
}

func TestLocations(t *testing.T) {
	g := newGateway(t, nil)
	view := g.createSession(t)
	path := "/sessions/" + view.ID

	t.Run("should not reorder or shrink a one way trip", func(t *testing.T) {
		response := g.request(http.MethodPost, path+"/locations/move", `{"from":0,"to":1}`)
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)

		response = g.request(http.MethodDelete, path+"/locations/1", "")
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)

		response = g.request(http.MethodPost, path+"/locations", "")
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
	})

	t.Run("should mirror the pickup on round trips", func(t *testing.T) {
		view := decodeView(t, g.request(http.MethodPut, path+"/trip-type", `{"trip_type":"Round Trip"}`))
		assert.Len(t, view.Locations, 3)
		assert.Equal(t, "Return to Pickup", view.Locations[2].Label)
		assert.True(t, view.Locations[2].Derived)

		view = decodeView(t, g.request(http.MethodPut, path+"/locations/0", `{"value":"Chennai"}`))
		assert.Equal(t, []string{"Chennai", "", "Chennai"}, locationValues(view))

		response := g.request(http.MethodPut, path+"/locations/2", `{"value":"Madurai"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, response.Code)
		assert.Equal(t, locations.DerivedSlotMessage, decodeError(t, response).Message)

		view = decodeView(t, g.request(http.MethodPost, path+"/locations", ""))
		assert.Len(t, view.Locations, 4)
		assert.Equal(t, "Chennai", view.Locations[3].Value)

		g.request(http.MethodPut, path+"/locations/2", `{"value":"Vellore"}`)
		view = decodeView(t, g.request(http.MethodPost, path+"/locations/move", `{"from":2,"to":1}`))
		assert.Equal(t, []string{"Chennai", "Vellore", "", "Chennai"}, locationValues(view))

		view = decodeView(t, g.request(http.MethodDelete, path+"/locations/2", ""))
		assert.Equal(t, []string{"Chennai", "Vellore", "Chennai"}, locationValues(view))
	})

	t.Run("should reject malformed positions", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, g.request(http.MethodPut, path+"/locations/first", `{"value":"x"}`).Code)
		assert.Equal(t, http.StatusUnprocessableEntity, g.request(http.MethodPut, path+"/locations/9", `{"value":"x"}`).Code)
	})

	t.Run("should answer 404 for unknown and discarded sessions", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, g.request(http.MethodGet, "/sessions/missing", "").Code)

		assert.Equal(t, http.StatusNoContent, g.request(http.MethodDelete, path, "").Code)
		assert.Equal(t, http.StatusNotFound, g.request(http.MethodGet, path, "").Code)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("should fail with the auth message when the owner call is rejected", func(t *testing.T) {
		g := newGateway(t, nil)
		g.upstream.on(http.MethodGet, "/api/users/vehicle-owner/me", http.StatusUnauthorized, `{"detail":"Token expired"}`)

		response := g.request(http.MethodGet, "/dashboard", "")

		assert.Equal(t, http.StatusUnauthorized, response.Code)
		assert.Equal(t, schema.AuthErrorMessage, decodeError(t, response).Message)
		assert.Equal(t, 0, g.upstream.hitsFor(http.MethodGet, "/api/users/cardetails/organization/org-1"))
	})

	t.Run("should group dashboard loads of the same caller", func(t *testing.T) {
		g := newGateway(t, caching.NewMemoryCache())
		u := g.upstream

		u.on(http.MethodGet, "/api/users/vehicle-owner/me", http.StatusOK, `{"id":"own-1","organization_id":"org-1","wallet_balance":250}`)
		u.on(http.MethodGet, "/api/users/cardetails/organization/org-1", http.StatusOK, `{"detail":"moved"}`)
		u.on(http.MethodGet, "/api/assignments/available-cars", http.StatusOK, `[{"id":"car-1","car_name":"Swift"}]`)
		u.on(http.MethodGet, "/api/users/cardriver/organization/org-1", http.StatusOK, `[{"id":"drv-1"}]`)

		first := g.request(http.MethodGet, "/dashboard", "")
		second := g.request(http.MethodGet, "/dashboard", "")

		var loaded struct {
			UserInfo marketplace.VehicleOwner `json:"user_info"`
			Cars     []marketplace.Car        `json:"cars"`
			Drivers  []marketplace.Driver     `json:"drivers"`
		}
		assert.NoError(t, json.Unmarshal(first.Body.Bytes(), &loaded))

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "own-1", loaded.UserInfo.ID)
		assert.Equal(t, "car-1", loaded.Cars[0].ID)
		assert.Equal(t, "drv-1", loaded.Drivers[0].ID)
		assert.Equal(t, 0, u.hitsFor(http.MethodGet, "/api/users/vehicle-owner/own-1/cars"))

		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
		assert.Equal(t, "hit", second.Header().Get(grouping.HitHeader))
		assert.Equal(t, 1, u.hitsFor(http.MethodGet, "/api/users/vehicle-owner/me"))
	})
}

func TestOrders(t *testing.T) {
	g := newGateway(t, nil)
	u := g.upstream

	t.Run("should list only pending orders", func(t *testing.T) {
		u.on(http.MethodGet, "/api/orders/pending-all", http.StatusOK, `[
			{"order_id":1,"trip_status":"PENDING"},
			{"order_id":2,"trip_status":"COMPLETED"},
			{"order_id":3,"status":"pending"}
		]`)

		response := g.request(http.MethodGet, "/orders/pending", "")

		var orders []marketplace.PendingOrder
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &orders))
		assert.Len(t, orders, 2)
		assert.Equal(t, 3, orders[1].OrderID)
	})

	t.Run("should recreate with the default assign time", func(t *testing.T) {
		u.on(http.MethodPost, "/api/orders/recreate", http.StatusOK, `{"order_id":8}`)

		response := g.request(http.MethodPost, "/orders/5/recreate", "")

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"order_id":8}`, response.Body.String())
		assert.Equal(t, map[string]any{"order_id": float64(5), "max_time_to_assign_order": float64(30)}, u.bodyFor(http.MethodPost, "/api/orders/recreate"))
	})

	t.Run("should toggle visibility and cancel", func(t *testing.T) {
		u.on(http.MethodPatch, "/api/orders/5/visibility/vehicle-owner/show", http.StatusOK, `{"ok":true}`)
		u.on(http.MethodPatch, "/api/assignments/vendor/cancel-order/5", http.StatusOK, `{"ok":true}`)

		assert.Equal(t, http.StatusOK, g.request(http.MethodPatch, "/orders/5/visibility", `{"visible":true}`).Code)
		assert.Equal(t, true, u.bodyFor(http.MethodPatch, "/api/orders/5/visibility/vehicle-owner/show")["data_visibility_vehicle_owner"])

		assert.Equal(t, http.StatusBadRequest, g.request(http.MethodPatch, "/orders/5/visibility", `{}`).Code)
		assert.Equal(t, http.StatusOK, g.request(http.MethodPatch, "/orders/5/cancel", "").Code)
	})

	t.Run("should classify upstream failures", func(t *testing.T) {
		u.on(http.MethodGet, "/api/orders/vendor/9", http.StatusNotFound, `{"detail":"Order not found"}`)

		response := g.request(http.MethodGet, "/orders/9", "")

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "Order not found", decodeError(t, response).Message)
	})

	t.Run("should reject malformed order ids and filters", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, g.request(http.MethodGet, "/orders/abc", "").Code)
		assert.Equal(t, http.StatusBadRequest, g.request(http.MethodGet, "/vendor/home?accept_status=maybe", "").Code)
		assert.Equal(t, http.StatusBadRequest, g.request(http.MethodGet, "/transfers?status=Lost", "").Code)
	})

	t.Run("should filter transfers", func(t *testing.T) {
		u.on(http.MethodGet, "/api/transfer/history", http.StatusOK, `{"transactions":[
			{"id":"t1","status":"Approved"},
			{"id":"t2","status":"Pending"}
		]}`)

		response := g.request(http.MethodGet, "/transfers?status=Approved", "")

		var transfers []marketplace.Transfer
		assert.NoError(t, json.Unmarshal(response.Body.Bytes(), &transfers))
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, transfers, 1)
	})
}
