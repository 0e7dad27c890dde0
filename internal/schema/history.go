package schema

import (
	"net/http"
	"sync"
	"time"

	"bitbucket.org/dropcars/vendor-gateway/internal/tools/converting"
)

type Key string

const (
	RequestingTypeKey Key = "requestingType"
)

type RequestContent struct {
	Url     string         `json:"url"`
	Method  string         `json:"method"`
	Body    string         `json:"body,omitempty"`
	Headers map[string]any `json:"headers,omitempty"`
}

type ResponseContent struct {
	StatusCode int            `json:"status_code"`
	Body       string         `json:"body,omitempty"`
	Headers    map[string]any `json:"headers,omitempty"`
}

// UpstreamRequest is one call made to the marketplace while serving a
// gateway request.
type UpstreamRequest struct {
	Name            RequestName      `json:"name"`
	StartDateTime   time.Time        `json:"start_date_time"`
	Duration        int              `json:"duration"`
	RequestContent  RequestContent   `json:"request"`
	ResponseContent *ResponseContent `json:"response,omitempty"`
}

type UpstreamRequests []UpstreamRequest

type upstreamRequestsBucket struct {
	upstreamRequests UpstreamRequests
	sync.Mutex
}

func NewUpstreamRequestsBucket() *upstreamRequestsBucket {
	return &upstreamRequestsBucket{
		upstreamRequests: []UpstreamRequest{},
	}
}

func (r *upstreamRequestsBucket) UpstreamRequests() UpstreamRequests {
	r.Lock()
	defer r.Unlock()

	result := make(UpstreamRequests, len(r.upstreamRequests))
	copy(result, r.upstreamRequests)
	return result
}

// FinishedRequest records a call; status 0 means no response was received.
func (r *upstreamRequestsBucket) FinishedRequest(
	requestType RequestName,
	startTime time.Time,
	statusCode int,
	method string,
	url string,
	requestBody string,
	requestHeaders http.Header,
	responseBody string,
	responseHeaders http.Header,
) {
	historyRequest := UpstreamRequest{
		Name:          requestType,
		StartDateTime: startTime,
		Duration:      int(time.Since(startTime).Milliseconds()),
		RequestContent: RequestContent{
			Url:     url,
			Method:  method,
			Body:    requestBody,
			Headers: converting.HeadersToMap(requestHeaders, "Authorization"),
		},
	}

	if statusCode != 0 {
		historyRequest.ResponseContent = &ResponseContent{
			StatusCode: statusCode,
			Body:       responseBody,
			Headers:    converting.HeadersToMap(responseHeaders),
		}
	}

	r.Lock()
	r.upstreamRequests = append(r.upstreamRequests, historyRequest)
	r.Unlock()
}
