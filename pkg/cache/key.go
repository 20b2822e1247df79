package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key identifies a cached Lomography API response. Path parameters (camera
// IDs, bounding boxes) are already part of the endpoint path, so the key is
// the path plus sorted query parameters.
type Key struct {
	// Endpoint is the API path (e.g., "/cameras/3314883/photos/popular")
	Endpoint string

	// QueryParams are the query parameters (e.g., {"page": "2"})
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: lomo:endpoint:query1=val1:query2=val2
//
// The api_key query parameter is never included: credentials must not leak
// into Redis keys, and responses do not vary by key holder.
//
// Example:
//
//	lomo:photos/popular:page=2
func (k Key) String() string {
	parts := []string{"lomo"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			if key == "api_key" {
				continue
			}
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}
