package gateway

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"bitbucket.org/dropcars/vendor-gateway/internal/marketplace"
	"bitbucket.org/dropcars/vendor-gateway/internal/schema"
	"bitbucket.org/dropcars/vendor-gateway/internal/tools/responding"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	LoggerKey      string = "logger"
	TokenKey       string = "token"
	VendorKey      string = "vendorId"
	MarketplaceKey string = "marketplace"
	ParamsKey      string = "params"
)

var errMissingToken = errors.New("missing bearer token")

func TapLogger(c *gin.Context) {
	logger := c.MustGet(LoggerKey).(*zerolog.Logger)

	logContext := logger.
		With().
		Str("route", c.FullPath()).
		Str("operationId", uuid.New().String())

	// set by the OpenAPI validator for documented routes
	if operation := c.GetString("operation"); operation != "" {
		logContext = logContext.Str("operation", operation)
	}

	requestLogger := logContext.Logger()

	c.Set(LoggerKey, &requestLogger)
}

// Authenticate requires a bearer token, which is forwarded to the
// marketplace untouched. The vendor comes from the token claims when they
// carry one.
func Authenticate(fallbackVendorID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		token = strings.TrimSpace(token)

		if !found || token == "" {
			responding.HandleError(c, http.StatusUnauthorized, schema.AuthErrorMessage, errMissingToken)
			return
		}

		vendorID := fallbackVendorID

		claims, err := marketplace.ParseClaims(token)
		if err != nil {
			logger(c).Debug().Err(err).Msg("Token claims unreadable, using configured vendor")
		} else if vendor := claims.Vendor(); vendor != "" {
			vendorID = vendor
		}

		c.Set(TokenKey, token)
		c.Set(VendorKey, vendorID)
	}
}

// PrepareMarketplace gives the request a marketplace client bound to its
// token and logs the upstream calls once the handler is done.
func PrepareMarketplace(factory *marketplace.Factory) gin.HandlerFunc {
	return func(c *gin.Context) {
		client := factory.ForToken(c.GetString(TokenKey), logger(c))
		c.Set(MarketplaceKey, client)

		c.Next()

		client.LogHistory()
	}
}

func PrepareParams(val any) gin.HandlerFunc {
	value := reflect.ValueOf(val)
	if value.Kind() == reflect.Ptr {
		panic(`Bind struct can not be a pointer.`)
	}

	typ := value.Type()

	return func(c *gin.Context) {
		params := reflect.New(typ).Interface()

		err := c.ShouldBind(params)
		if err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Failed to bind request params", err)
			return
		}

		c.Set(ParamsKey, params)
	}
}

// bindOptionalJSON leaves dest untouched when the request has no body.
func bindOptionalJSON(c *gin.Context, dest any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}

	err := c.ShouldBindJSON(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func logger(c *gin.Context) *zerolog.Logger {
	return c.MustGet(LoggerKey).(*zerolog.Logger)
}

func client(c *gin.Context) *marketplace.Client {
	return c.MustGet(MarketplaceKey).(*marketplace.Client)
}

func params[T any](c *gin.Context) *T {
	return c.MustGet(ParamsKey).(*T)
}
