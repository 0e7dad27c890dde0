package converting

import "net/http"

const redactedValue = "[REDACTED]"

// HeadersToMap converts headers for logging, masking the given header names.
func HeadersToMap(headers http.Header, redacted ...string) map[string]any {
	convertedMap := make(map[string]any, len(headers))

	for key, values := range headers {
		convertedMap[key] = values
	}

	for _, name := range redacted {
		key := http.CanonicalHeaderKey(name)
		if _, ok := convertedMap[key]; ok {
			convertedMap[key] = []string{redactedValue}
		}
	}

	return convertedMap
}
