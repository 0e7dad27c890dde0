package web

import (
	"errors"
	"net/http"

	"bitbucket.org/dropcars/vendor-gateway/internal/tools/responding"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const OperationKey = "operation"

// OpenapiValidator checks requests against the document. Routes the
// document does not describe are let through; without a usable document
// nothing is validated.
func OpenapiValidator(document []byte, log *zerolog.Logger) gin.HandlerFunc {
	router, err := openapiRouter(document)
	if err != nil {
		log.Warn().
			Err(err).
			Str("label", "openapi").
			Msg("OpenAPI document unusable, requests are not validated")

		return func(c *gin.Context) {}
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         false,
	}

	return func(c *gin.Context) {
		route, pathParams, err := router.FindRoute(c.Request)
		if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
			return
		}
		if err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Invalid request", err)
			return
		}

		c.Set(OperationKey, route.Operation.OperationID)

		err = openapi3filter.ValidateRequest(c.Request.Context(), &openapi3filter.RequestValidationInput{
			Request:    c.Request,
			PathParams: pathParams,
			Route:      route,
			Options:    options,
		})
		if err != nil {
			responding.HandleError(c, http.StatusBadRequest, "Invalid request", err)
			return
		}
	}
}

func openapiRouter(document []byte) (routers.Router, error) {
	if len(document) == 0 {
		return nil, errors.New("empty OpenAPI document")
	}

	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, err
	}

	return gorillamux.NewRouter(doc)
}
